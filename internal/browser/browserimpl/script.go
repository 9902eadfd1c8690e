package browserimpl

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// probeScript evaluates one locator strategy in the page. A candidate is
// accepted only when it has a rendered box (offsetParent is non-null), which
// filters hidden duplicates. The winner is tagged with targetAttr; any stale
// tag from an earlier probe is removed first. Invalid selectors come back as
// a plain miss so broken entries never block the rest of the chain.
func probeScript(s Strategy, token string) string {
	return fmt.Sprintf(`(function() {
	try {
		var nodes = document.querySelectorAll(%s);
		var match = null;
		for (var i = 0; i < nodes.length; i++) {
			var n = nodes[i];
			if (%s !== "" && n.textContent.indexOf(%s) === -1) continue;
			var el = n;
			if (%s !== "") {
				el = n.closest(%s);
				if (!el) continue;
			}
			if (el.offsetParent === null) continue;
			match = el;
			break;
		}
		if (!match) return false;
		var prev = document.querySelectorAll('[%s]');
		for (var j = 0; j < prev.length; j++) prev[j].removeAttribute('%s');
		match.setAttribute('%s', %s);
		return true;
	} catch (e) {
		return false;
	}
})()`,
		strconv.Quote(s.Selector),
		strconv.Quote(s.Text), strconv.Quote(s.Text),
		strconv.Quote(s.Closest), strconv.Quote(s.Closest),
		targetAttr, targetAttr, targetAttr, strconv.Quote(token))
}

// setValueScript assigns a formatted value to an input and dispatches input,
// change, blur in that order. Blur matters: LinkedIn validates the schedule
// fields on blur, not on change.
func setValueScript(selector, value string) string {
	return fmt.Sprintf(`(function() {
	var el = document.querySelector(%s);
	if (!el) return false;
	el.focus();
	el.value = %s;
	el.dispatchEvent(new Event('input', { bubbles: true }));
	el.dispatchEvent(new Event('change', { bubbles: true }));
	el.dispatchEvent(new Event('blur', { bubbles: true }));
	return true;
})()`, strconv.Quote(selector), strconv.Quote(value))
}

// fillEditorScript clears the contenteditable editor and appends one <p>
// block per caption line, then dispatches input so the page's controlled
// editor registers the change.
func fillEditorScript(selector string, lines []string) string {
	encoded, _ := json.Marshal(lines)
	return fmt.Sprintf(`(function() {
	var editor = document.querySelector(%s);
	if (!editor) return false;
	var lines = %s;
	editor.focus();
	editor.innerHTML = '';
	for (var i = 0; i < lines.length; i++) {
		var p = document.createElement('p');
		p.textContent = lines[i];
		editor.appendChild(p);
	}
	editor.dispatchEvent(new Event('input', { bubbles: true }));
	return true;
})()`, strconv.Quote(selector), string(encoded))
}

// dispatchChangeScript notifies the page that a file input's files changed.
func dispatchChangeScript(selector string) string {
	return fmt.Sprintf(`(function() {
	var el = document.querySelector(%s);
	if (!el) return false;
	el.dispatchEvent(new Event('change', { bubbles: true }));
	return true;
})()`, strconv.Quote(selector))
}

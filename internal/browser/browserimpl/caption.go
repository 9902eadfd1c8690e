package browserimpl

import "strings"

// LinkedIn's Quill editor collapses a genuinely empty <p> block, so blank
// caption lines are carried as a zero-width space instead.
const blankLinePlaceholder = "\u200B"

// captionLines splits a caption on newline boundaries into one entry per
// editor block, substituting the placeholder for empty lines.
func captionLines(caption string) []string {
	lines := strings.Split(caption, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			out[i] = blankLinePlaceholder
		} else {
			out[i] = line
		}
	}
	return out
}

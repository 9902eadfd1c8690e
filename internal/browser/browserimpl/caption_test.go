package browserimpl

import (
	"reflect"
	"testing"
)

func TestCaptionLines(t *testing.T) {
	tests := []struct {
		name    string
		caption string
		want    []string
	}{
		{"single line", "Hello", []string{"Hello"}},
		{"blank line becomes placeholder", "Hello\n\nWorld", []string{"Hello", blankLinePlaceholder, "World"}},
		{"trailing newline", "Hello\n", []string{"Hello", blankLinePlaceholder}},
		{"empty caption", "", []string{blankLinePlaceholder}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := captionLines(tt.caption); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("captionLines(%q) = %q, want %q", tt.caption, got, tt.want)
			}
		})
	}
}

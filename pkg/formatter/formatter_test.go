package formatter

import (
	"testing"
	"time"
)

func TestComposerDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero padded month and day", time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC), "01/02/2026"},
		{"double digit", time.Date(2026, 11, 24, 9, 0, 0, 0, time.UTC), "11/24/2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComposerDate(tt.in); got != tt.want {
				t.Errorf("ComposerDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposerTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"midnight is 12 AM", time.Date(2026, 1, 2, 0, 5, 0, 0, time.UTC), "12:05 AM"},
		{"noon is 12 PM", time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC), "12:00 PM"},
		{"afternoon without leading zero", time.Date(2026, 1, 2, 13, 0, 0, 0, time.UTC), "1:00 PM"},
		{"morning", time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC), "9:30 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComposerTime(tt.in); got != tt.want {
				t.Errorf("ComposerTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

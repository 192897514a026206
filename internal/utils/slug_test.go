package utils

import (
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Wireless Mouse", "wireless-mouse"},
		{"punctuation run", "iPhone 15 Pro (256GB) - Black!", "iphone-15-pro-256gb-black"},
		{"leading and trailing junk", "  --Hello World--  ", "hello-world"},
		{"unicode letters", "Café Déjà Vu", "café-déjà-vu"},
		{"digits only", "12345", "12345"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugWithSuffix(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	got := SlugWithSuffix("wireless-mouse", now)
	want := "wireless-mouse-1700000000000"
	if got != want {
		t.Errorf("SlugWithSuffix() = %q, want %q", got, want)
	}
}

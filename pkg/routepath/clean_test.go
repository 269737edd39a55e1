package routepath

import (
	"errors"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/read/10", "/read/10"},
		{"/read//10", "/read/10"},
		{"/read/./10", "/read/10"},
		{"/items/../read/10", "/read/10"},
		{"/submit/", "/submit/"},
		{"/a/b/..", "/a"},
		{"/read/10?x=1", "/read/10?x=1"},
		{"/a%20b", "/a%20b"},
		{"/..x", "/..x"},
	}
	for _, tt := range tests {
		got, err := Clean(tt.in)
		if err != nil {
			t.Errorf("Clean(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"read/10", ErrNotRelative},
		{"//evil.com/x", ErrNotRelative},
		{"http://evil.com/", ErrNotRelative},
		{`/a\b`, ErrBackslash},
		{"/a%00b", ErrNullByte},
		{"/a\x00b", ErrNullByte},
		{"/a%2", ErrInvalidPercentEscape},
		{"/a%GGb", ErrInvalidPercentEscape},
		{"/..", ErrEscapesRoot},
		{"/a/../../b", ErrEscapesRoot},
	}
	for _, tt := range tests {
		_, err := Clean(tt.in)
		if !errors.Is(err, tt.want) {
			t.Errorf("Clean(%q) error = %v, want %v", tt.in, err, tt.want)
		}
	}
}

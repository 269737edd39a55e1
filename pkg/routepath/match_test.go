package routepath

import (
	"reflect"
	"strconv"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"/", []string{""}},
		{"", []string{""}},
		{"/read/10", []string{"read", "10"}},
		{"read/10", []string{"read", "10"}},
		{"/read/", []string{"read", ""}},
		{"/a//b", []string{"a", "", "b"}},
		{"//a", []string{"", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Split(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchLiteral(t *testing.T) {
	p := New(Literal("submit"))

	tests := []struct {
		path string
		want bool
	}{
		{"/submit", true},
		{"/submit/", false},
		{"/Submit", false},
		{"/submit/extra", false},
		{"/", false},
	}

	for _, tt := range tests {
		if got := Matches(p, tt.path); got != tt.want {
			t.Errorf("Matches(%s, %q) = %v, want %v", p, tt.path, got, tt.want)
		}
	}
}

func TestMatchTrailingSlash(t *testing.T) {
	p := New(Literal("docs"), Literal(""))

	if !Matches(p, "/docs/") {
		t.Error("pattern with empty literal should match trailing slash")
	}
	if Matches(p, "/docs") {
		t.Error("pattern with empty literal should not match path without trailing slash")
	}
}

func TestAnyInteger(t *testing.T) {
	p := New(Literal("read"), AnyInteger("n"))

	tests := []struct {
		segment string
		want    bool
		value   uint64
	}{
		{"123", true, 123},
		{"0", true, 0},
		{"007", true, 7},
		{"18446744073709551615", true, 18446744073709551615},
		{"18446744073709551616", false, 0},
		{"99999999999999999999999", false, 0},
		{"12a", false, 0},
		{"-1", false, 0},
		{"+1", false, 0},
		{" 1", false, 0},
		{"1.5", false, 0},
		{"", false, 0},
	}

	for _, tt := range tests {
		t.Run(strconv.Quote(tt.segment), func(t *testing.T) {
			params, ok := Match(p, "/read/"+tt.segment)
			if ok != tt.want {
				t.Fatalf("Match(/read/%s) ok = %v, want %v", tt.segment, ok, tt.want)
			}
			if !ok {
				if params.Len() != 0 {
					t.Errorf("failed match returned %d params", params.Len())
				}
				return
			}
			n, found := params.Uint("n")
			if !found {
				t.Fatal("Uint(n) not found")
			}
			if n != tt.value {
				t.Errorf("Uint(n) = %d, want %d", n, tt.value)
			}
		})
	}
}

func TestAnySegment(t *testing.T) {
	p := New(Literal("users"), AnySegment("name"))

	params, ok := Match(p, "/users/alice")
	if !ok {
		t.Fatal("expected match")
	}
	if name, _ := params.String("name"); name != "alice" {
		t.Errorf("String(name) = %q, want alice", name)
	}
	if _, ok := params.Uint("name"); ok {
		t.Error("Uint on a string capture should report false")
	}

	if Matches(p, "/users/") {
		t.Error("AnySegment should not match an empty segment")
	}
}

func TestSegmentCountRejectsFirst(t *testing.T) {
	// A pattern whose first segment would fail must still be rejected on
	// count alone; the observable contract is that a count mismatch never
	// yields a match, whatever the segments contain.
	p := New(AnySegment("a"), AnySegment("b"))

	for _, path := range []string{"/x", "/x/y/z", "/"} {
		if Matches(p, path) {
			t.Errorf("Matches(%q) = true, want false", path)
		}
	}
	if !Matches(p, "/x/y") {
		t.Error("Matches(/x/y) = false, want true")
	}
}

func TestMatchDeterministic(t *testing.T) {
	p := MustParse("/read/{n:uint}/{tag}")
	first, ok1 := Match(p, "/read/42/go")
	second, ok2 := Match(p, "/read/42/go")

	if ok1 != ok2 || !reflect.DeepEqual(first, second) {
		t.Errorf("Match not deterministic: (%v, %v) vs (%v, %v)", first, ok1, second, ok2)
	}
}

func TestUnnamedCapturesAreNotRecorded(t *testing.T) {
	p := New(Literal("read"), AnyInteger(""))

	params, ok := Match(p, "/read/5")
	if !ok {
		t.Fatal("expected match")
	}
	if params.Len() != 0 {
		t.Errorf("Len() = %d, want 0", params.Len())
	}
}

func TestParseUint(t *testing.T) {
	if _, ok := ParseUint("1e3"); ok {
		t.Error("ParseUint(1e3) should fail")
	}
	if n, ok := ParseUint("42"); !ok || n != 42 {
		t.Errorf("ParseUint(42) = %d, %v", n, ok)
	}
}

package routepath

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPattern is returned when a pattern string cannot be parsed.
var ErrInvalidPattern = errors.New("routepath: invalid pattern")

// SegmentKind discriminates segment matchers.
type SegmentKind uint8

const (
	KindLiteral    SegmentKind = iota // exact text
	KindAnyInteger                    // unsigned decimal integer
	KindAnySegment                    // any non-empty segment
)

// String returns the string representation of the SegmentKind.
func (k SegmentKind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindAnyInteger:
		return "AnyInteger"
	case KindAnySegment:
		return "AnySegment"
	default:
		return "Unknown"
	}
}

// Segment matches one path segment.
type Segment struct {
	Kind SegmentKind

	// Value is the literal text for KindLiteral.
	Value string

	// Name is the capture name for wildcard kinds. It may be empty,
	// in which case the segment is matched but not captured.
	Name string
}

// Literal matches a segment equal to s.
func Literal(s string) Segment {
	return Segment{Kind: KindLiteral, Value: s}
}

// AnyInteger matches a non-negative decimal integer that fits in a uint64.
func AnyInteger(name string) Segment {
	return Segment{Kind: KindAnyInteger, Name: name}
}

// AnySegment matches any non-empty segment.
func AnySegment(name string) Segment {
	return Segment{Kind: KindAnySegment, Name: name}
}

// String renders the segment in the syntax accepted by Parse.
func (s Segment) String() string {
	switch s.Kind {
	case KindAnyInteger:
		return "{" + s.Name + ":uint}"
	case KindAnySegment:
		return "{" + s.Name + "}"
	default:
		return s.Value
	}
}

// Pattern is an ordered sequence of segment matchers.
type Pattern []Segment

// New builds a pattern from segments.
func New(segments ...Segment) Pattern {
	return Pattern(segments)
}

// String renders the pattern with a leading slash.
func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.String()
	}
	return "/" + strings.Join(parts, "/")
}

// Parse builds a Pattern from its string form.
//
//	/submit          → [Literal("submit")]
//	/read/{n:uint}   → [Literal("read"), AnyInteger("n")]
//	/users/{name}    → [Literal("users"), AnySegment("name")]
//	/docs/           → [Literal("docs"), Literal("")]
//
// Capture types are "uint" for AnyInteger (digits only, no sign) and
// "string" or nothing for AnySegment.
//
// "/" alone is the pattern with a single empty segment, which is what
// Split produces for the root path.
func Parse(s string) (Pattern, error) {
	if !strings.HasPrefix(s, "/") {
		return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, s)
	}

	raw := Split(s)
	p := make(Pattern, 0, len(raw))
	seen := make(map[string]bool)

	for _, seg := range raw {
		if !strings.HasPrefix(seg, "{") {
			if strings.ContainsAny(seg, "{}") {
				return nil, fmt.Errorf("%w: %q has a stray brace", ErrInvalidPattern, seg)
			}
			p = append(p, Literal(seg))
			continue
		}
		if !strings.HasSuffix(seg, "}") {
			return nil, fmt.Errorf("%w: %q is not closed", ErrInvalidPattern, seg)
		}

		name, typ, _ := strings.Cut(seg[1:len(seg)-1], ":")
		if name != "" {
			if seen[name] {
				return nil, fmt.Errorf("%w: duplicate capture %q", ErrInvalidPattern, name)
			}
			seen[name] = true
		}

		switch typ {
		case "", "string":
			p = append(p, AnySegment(name))
		case "uint":
			p = append(p, AnyInteger(name))
		default:
			return nil, fmt.Errorf("%w: unknown segment type %q", ErrInvalidPattern, typ)
		}
	}

	return p, nil
}

// MustParse is like Parse but panics on error.
// It is meant for route registration at startup.
func MustParse(s string) Pattern {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

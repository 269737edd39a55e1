package routepath

import (
	"strconv"
	"strings"
)

// Split splits a path into its "/"-delimited segments.
// A single leading slash is ignored; every other slash delimits, so a
// trailing slash yields an empty final segment and "//" yields an empty
// segment in the middle.
//
//	Split("/read/10")  → ["read", "10"]
//	Split("/read/")    → ["read", ""]
//	Split("/")         → [""]
func Split(path string) []string {
	path = strings.TrimPrefix(path, "/")
	return strings.Split(path, "/")
}

// Matches reports whether path matches p.
func Matches(p Pattern, path string) bool {
	_, ok := Match(p, path)
	return ok
}

// Match matches path against p and returns the captured parameters.
// Segment counts are compared before any segment is inspected; segments
// are then matched left to right and the first failure rejects.
func Match(p Pattern, path string) (Params, bool) {
	return MatchSegments(p, Split(path))
}

// MatchSegments is Match over an already split path.
func MatchSegments(p Pattern, segments []string) (Params, bool) {
	if len(segments) != len(p) {
		return Params{}, false
	}

	var params Params
	for i, seg := range p {
		value := segments[i]
		switch seg.Kind {
		case KindLiteral:
			if value != seg.Value {
				return Params{}, false
			}

		case KindAnyInteger:
			n, ok := ParseUint(value)
			if !ok {
				return Params{}, false
			}
			if seg.Name != "" {
				params.add(Param{Name: seg.Name, Raw: value, Kind: KindAnyInteger, Uint: n})
			}

		case KindAnySegment:
			if value == "" {
				return Params{}, false
			}
			if seg.Name != "" {
				params.add(Param{Name: seg.Name, Raw: value, Kind: KindAnySegment})
			}

		default:
			return Params{}, false
		}
	}

	return params, true
}

// ParseUint parses s using the AnyInteger grammar: one or more ASCII
// digits, no sign, no whitespace, value within uint64. Leading zeros are
// allowed. Overflow reports false.
func ParseUint(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Package routepath matches URL paths against segment patterns.
//
// A Pattern is an ordered list of segment matchers. Each matcher is one of:
//
//	Literal("read")    matches the segment "read" exactly
//	AnyInteger("n")    matches [0-9]+ that fits in a uint64, captured as "n"
//	AnySegment("slug") matches any non-empty segment, captured as "slug"
//
// Patterns can be built directly or parsed from their string form:
//
//	p := routepath.MustParse("/read/{n:uint}")
//	params, ok := routepath.Match(p, "/read/10")
//	n, _ := params.Uint("n") // 10
//
// A path matches only when it has the same number of segments as the
// pattern. The single leading slash is not a segment; a trailing slash
// produces an empty final segment that only Literal("") accepts.
//
// Values captured by AnyInteger are parsed once here and exposed as
// uint64, so handlers never reparse a segment the matcher already accepted.
package routepath

package request

import (
	"net/url"
	"unicode/utf8"
)

// Body is a request body taken from a Request.
type Body struct {
	data []byte
}

// Bytes returns the raw body.
func (b Body) Bytes() []byte { return b.data }

// Len returns the body size in bytes.
func (b Body) Len() int { return len(b.data) }

// String returns the body as text. Invalid UTF-8 is kept as is.
func (b Body) String() string { return string(b.data) }

// ValidUTF8 reports whether the body is valid UTF-8 text.
func (b Body) ValidUTF8() bool { return utf8.Valid(b.data) }

// Form parses the body as application/x-www-form-urlencoded.
func (b Body) Form() (url.Values, error) {
	return url.ParseQuery(string(b.data))
}

package routepath

import (
	"errors"
	"strings"
)

// Errors returned by Clean.
var (
	ErrNotRelative          = errors.New("routepath: path must start with / and name no host")
	ErrBackslash            = errors.New("routepath: path contains backslash")
	ErrNullByte             = errors.New("routepath: path contains null byte")
	ErrInvalidPercentEscape = errors.New("routepath: invalid percent escape")
	ErrEscapesRoot          = errors.New("routepath: path escapes root via ..")
)

// Clean validates a client-supplied path and returns it in canonical form.
// Repeated slashes collapse, "." segments drop and ".." segments pop their
// parent. A trailing slash and the query string are kept as given, since
// both are significant to matching.
//
// Clean rejects absolute URLs, backslashes, NUL bytes, malformed percent
// escapes and ".." segments that would climb above the root.
func Clean(input string) (string, error) {
	if input == "" {
		return "/", nil
	}
	path, query, hasQuery := strings.Cut(input, "?")

	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.Contains(path, "://") {
		return "", ErrNotRelative
	}
	if strings.Contains(path, `\`) {
		return "", ErrBackslash
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", ErrNullByte
	}
	if err := checkPercentEscapes(path); err != nil {
		return "", err
	}

	trailing := len(path) > 1 && strings.HasSuffix(path, "/")
	var out []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(out) == 0 {
				return "", ErrEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}

	cleaned := "/" + strings.Join(out, "/")
	if trailing && len(out) > 0 {
		cleaned += "/"
	}
	if hasQuery {
		cleaned += "?" + query
	}
	return cleaned, nil
}

func checkPercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHex(path[i+1]) || !isHex(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

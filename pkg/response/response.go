// Package response defines the response value produced by handlers and
// its byte-level encoding.
package response

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
)

// ErrAlreadyResponded is returned when a Sink is asked to respond twice.
var ErrAlreadyResponded = errors.New("response: already responded")

// Response is a status, a header set and a body.
type Response struct {
	Status  int
	Reason  string
	Headers map[string]string
	Body    []byte
}

// Builder assembles a Response.
type Builder struct {
	resp Response
}

// Build starts a Response with status 200.
func Build() *Builder {
	return &Builder{resp: Response{Status: http.StatusOK, Headers: map[string]string{}}}
}

// Status sets the status code. The reason phrase follows unless set explicitly.
func (b *Builder) Status(code int) *Builder {
	b.resp.Status = code
	return b
}

// Reason overrides the reason phrase.
func (b *Builder) Reason(reason string) *Builder {
	b.resp.Reason = reason
	return b
}

// Header sets a header. Names are kept exactly as given.
func (b *Builder) Header(name, value string) *Builder {
	b.resp.Headers[name] = value
	return b
}

// Body sets the body.
func (b *Builder) Body(body []byte) *Builder {
	b.resp.Body = body
	return b
}

// BodyString sets the body from a string.
func (b *Builder) BodyString(body string) *Builder {
	b.resp.Body = []byte(body)
	return b
}

// Build returns the Response.
func (b *Builder) Build() *Response {
	resp := b.resp
	if resp.Reason == "" {
		resp.Reason = http.StatusText(resp.Status)
	}
	headers := make(map[string]string, len(resp.Headers))
	for k, v := range resp.Headers {
		headers[k] = v
	}
	resp.Headers = headers
	return &resp
}

// Clone returns a deep copy of r.
func (r *Response) Clone() *Response {
	clone := *r
	if r.Headers != nil {
		clone.Headers = make(map[string]string, len(r.Headers))
		for k, v := range r.Headers {
			clone.Headers[k] = v
		}
	}
	clone.Body = append([]byte(nil), r.Body...)
	return &clone
}

// HTML returns a text/html response.
func HTML(status int, body []byte) *Response {
	return Build().Status(status).Header("Content-Type", "text/html").Body(body).Build()
}

// Text returns a text/plain response.
func Text(status int, body string) *Response {
	return Build().Status(status).Header("Content-Type", "text/plain").BodyString(body).Build()
}

// JSON returns an application/json response with a pre-encoded body.
func JSON(status int, body []byte) *Response {
	return Build().Status(status).Header("Content-Type", "application/json").Body(body).Build()
}

// Error returns a text/plain response whose body is the status line,
// e.g. "404 Not Found".
func Error(status int) *Response {
	return Text(status, strconv.Itoa(status)+" "+http.StatusText(status))
}

// Err400 is the canned Bad Request response.
func Err400() *Response { return Error(http.StatusBadRequest) }

// Err404 is the canned Not Found response.
func Err404() *Response { return Error(http.StatusNotFound) }

// Err500 is the canned Internal Server Error response.
func Err500() *Response { return Error(http.StatusInternalServerError) }

// Err503 is the canned Service Unavailable response.
func Err503() *Response { return Error(http.StatusServiceUnavailable) }

// sortedHeaderNames returns header names in byte order.
func (r *Response) sortedHeaderNames() []string {
	names := make([]string, 0, len(r.Headers))
	for name := range r.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Encode writes the response in HTTP/1.1 wire form: the status line,
// headers sorted by name, a blank line, then the body verbatim.
// A Content-Length header is not added; set one explicitly if needed.
func (r *Response) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)

	reason := r.Reason
	if reason == "" {
		reason = http.StatusText(r.Status)
	}
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", r.Status, reason); err != nil {
		return err
	}
	for _, name := range r.sortedHeaderNames() {
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", name, r.Headers[name]); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\r\n"); err != nil {
		return err
	}
	if _, err := bw.Write(r.Body); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteTo writes the response through a net/http ResponseWriter.
func (r *Response) WriteTo(w http.ResponseWriter) error {
	h := w.Header()
	for _, name := range r.sortedHeaderNames() {
		h.Set(name, r.Headers[name])
	}
	if h.Get("Content-Length") == "" {
		h.Set("Content-Length", strconv.Itoa(len(r.Body)))
	}
	w.WriteHeader(r.Status)
	_, err := w.Write(r.Body)
	return err
}

package response

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBuilderDefaults(t *testing.T) {
	resp := Build().BodyString("ok").Build()

	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200", resp.Status)
	}
	if resp.Reason != "OK" {
		t.Errorf("Reason = %q, want OK", resp.Reason)
	}
	if string(resp.Body) != "ok" {
		t.Errorf("Body = %q", resp.Body)
	}
}

func TestBuilderIsolation(t *testing.T) {
	b := Build().Header("A", "1")
	first := b.Build()
	b.Header("B", "2")

	if _, ok := first.Headers["B"]; ok {
		t.Error("headers set after Build leaked into the built response")
	}
}

func TestCannedErrors(t *testing.T) {
	tests := []struct {
		resp *Response
		code int
	}{
		{Err400(), http.StatusBadRequest},
		{Err404(), http.StatusNotFound},
		{Err500(), http.StatusInternalServerError},
		{Err503(), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		if tt.resp.Status != tt.code {
			t.Errorf("Status = %d, want %d", tt.resp.Status, tt.code)
		}
		if tt.resp.Reason != http.StatusText(tt.code) {
			t.Errorf("Reason = %q, want %q", tt.resp.Reason, http.StatusText(tt.code))
		}
	}
}

func TestEncode(t *testing.T) {
	resp := Build().
		Status(http.StatusCreated).
		Header("X-Zeta", "z").
		Header("Content-Type", "text/html").
		Header("X-Alpha", "a").
		BodyString("<p>hi</p>").
		Build()

	var buf bytes.Buffer
	if err := resp.Encode(&buf); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := "HTTP/1.1 201 Created\r\n" +
		"Content-Type: text/html\r\n" +
		"X-Alpha: a\r\n" +
		"X-Zeta: z\r\n" +
		"\r\n" +
		"<p>hi</p>"
	if buf.String() != want {
		t.Errorf("Encode() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriteTo(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := HTML(http.StatusOK, []byte("<h1>x</h1>")).WriteTo(rec); err != nil {
		t.Fatalf("WriteTo() error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Code = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cl := rec.Header().Get("Content-Length"); cl != "10" {
		t.Errorf("Content-Length = %q", cl)
	}
	if rec.Body.String() != "<h1>x</h1>" {
		t.Errorf("Body = %q", rec.Body.String())
	}
}

func TestRecorderRespondOnce(t *testing.T) {
	rec := NewRecorder()
	if rec.Responded() {
		t.Fatal("new recorder should be empty")
	}

	if err := rec.Respond(Err404()); err != nil {
		t.Fatalf("Respond() error: %v", err)
	}
	if err := rec.Respond(Err500()); !errors.Is(err, ErrAlreadyResponded) {
		t.Errorf("second Respond() error = %v, want ErrAlreadyResponded", err)
	}
	if rec.Response().Status != http.StatusNotFound {
		t.Errorf("kept status = %d, want 404", rec.Response().Status)
	}
}

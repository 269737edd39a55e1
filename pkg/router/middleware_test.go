package router

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/liveview/pkg/request"
	"github.com/vango-dev/liveview/pkg/response"
)

func tagging(tag string) Middleware[*[]string] {
	return func(next Handler[*[]string]) Handler[*[]string] {
		return func(req *request.Request, w response.Sink, log *[]string) {
			*log = append(*log, tag+":before")
			next(req, w, log)
			*log = append(*log, tag+":after")
		}
	}
}

func TestComposeOrder(t *testing.T) {
	var log []string
	h := Compose(textHandler("h"), tagging("a"), tagging("b"))
	h(newGet("/"), response.NewRecorder(), &log)

	want := []string{"a:before", "b:before", "h", "b:after", "a:after"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestChainMatchesCompose(t *testing.T) {
	var log []string
	h := Chain(tagging("a"), tagging("b"))(textHandler("h"))
	h(newGet("/"), response.NewRecorder(), &log)

	want := []string{"a:before", "b:before", "h", "b:after", "a:after"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestTableUse(t *testing.T) {
	tbl := New[*[]string]().Use(tagging("mw")).Fallback("all", textHandler("h"))

	var log []string
	m, _ := tbl.Dispatch(newGet("/"))
	m.Serve(response.NewRecorder(), &log)

	want := []string{"mw:before", "h", "mw:after"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestOnly(t *testing.T) {
	mw := Only(Path("/admin"), tagging("admin"))
	h := mw(textHandler("h"))

	var log []string
	h(newGet("/admin"), response.NewRecorder(), &log)
	h(newGet("/public"), response.NewRecorder(), &log)

	want := []string{"admin:before", "h", "admin:after", "h"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestRecover(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Recover[int](logger)(func(*request.Request, response.Sink, int) {
		panic("boom")
	})

	rec := response.NewRecorder()
	h(newGet("/"), rec, 0)

	resp := rec.Response()
	if resp == nil {
		t.Fatal("no response after panic")
	}
	if resp.Status != 500 {
		t.Errorf("Status = %d, want 500", resp.Status)
	}
}

func TestRecoverAfterRespond(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Recover[int](logger)(func(_ *request.Request, w response.Sink, _ int) {
		_ = w.Respond(response.Text(200, "ok"))
		panic("late")
	})

	rec := response.NewRecorder()
	h(newGet("/"), rec, 0)

	if got := rec.Response().Status; got != 200 {
		t.Errorf("Status = %d, want 200 (first response kept)", got)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func statusHandler(route string, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if route != "" {
			SetRoute(r.Context(), route)
		}
		w.WriteHeader(status)
	})
}

func TestMetricsRecordsRouteAndStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	h := m.Handler(statusHandler("read", http.StatusOK))
	for i := 0; i < 2; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/read/1", nil))
	}
	m.Handler(statusHandler("", http.StatusNotFound)).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("read", "GET", "200")); got != 2 {
		t.Errorf("requests_total(read) = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues(UnmatchedRoute, "GET", "404")); got != 1 {
		t.Errorf("requests_total(unmatched) = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.inFlight); got != 0 {
		t.Errorf("in_flight = %v, want 0", got)
	}
	if n := testutil.CollectAndCount(m.requestDuration); n != 2 {
		t.Errorf("duration series = %d, want 2", n)
	}
}

func TestMetricsDefaultStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues(UnmatchedRoute, "GET", "200")); got != 1 {
		t.Errorf("requests_total = %v, want 1", got)
	}
}

func TestMetricsLiveAndActor(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	closed := m.LiveConnected()
	if got := testutil.ToFloat64(m.liveConnections); got != 1 {
		t.Errorf("live_connections = %v, want 1", got)
	}
	closed()
	if got := testutil.ToFloat64(m.liveConnections); got != 0 {
		t.Errorf("live_connections = %v, want 0", got)
	}

	m.LiveFrame("tree")
	m.LiveFrame("tree")
	if got := testutil.ToFloat64(m.liveFrames.WithLabelValues("tree")); got != 2 {
		t.Errorf("live_frames_total(tree) = %v, want 2", got)
	}

	m.ObserveActor("list", func() uint64 { return 7 }, func() int { return 3 })
	expected := `
# HELP liveview_actor_mailbox_pending Messages waiting in the state actor mailbox
# TYPE liveview_actor_mailbox_pending gauge
liveview_actor_mailbox_pending{actor="list"} 3
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "liveview_actor_mailbox_pending"); err != nil {
		t.Error(err)
	}
}

func TestNilMetricsHelpers(t *testing.T) {
	var m *Metrics
	m.LiveConnected()()
	m.LiveFrame("tree")
	m.ObserveActor("x", nil, nil)
}

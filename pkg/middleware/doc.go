// Package middleware provides HTTP middleware for liveview servers.
//
// All middleware has the net/http shape func(http.Handler) http.Handler
// and can be mounted on a chi router or any other mux.
//
// # Prometheus Metrics
//
//	m := middleware.NewMetrics(middleware.WithNamespace("liveview"))
//	r.Use(m.Handler)
//
// Metrics collected:
//   - liveview_http_requests_total: requests by route, method and status
//   - liveview_http_request_duration_seconds: request latency by route and method
//   - liveview_http_requests_in_flight: requests currently being served
//   - liveview_live_connections: open live channel connections
//   - liveview_live_frames_total: live channel frames sent
//
// # OpenTelemetry Tracing
//
//	r.Use(middleware.Tracing(middleware.WithTracerName("liveview")))
//
// The tracer uses the global OpenTelemetry tracer provider.
//
// # Rate Limiting
//
//	r.Use(middleware.RateLimit(middleware.RateLimitConfig{RPS: 50, Burst: 100}))
//
// # Route Names
//
// Route names are only known after dispatch. The server reports them with
// SetRoute so that metrics, traces and logs can label requests by route
// instead of raw path.
package middleware

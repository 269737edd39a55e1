package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/liveview/pkg/middleware"
	"github.com/vango-dev/liveview/pkg/request"
	"github.com/vango-dev/liveview/pkg/response"
	"github.com/vango-dev/liveview/pkg/router"
)

// Server serves a route table over HTTP.
type Server[S any] struct {
	config *Config
	table  *router.Table[S]
	state  S

	mux      *chi.Mux
	metrics  *middleware.Metrics
	upgrader websocket.Upgrader

	mu            sync.Mutex
	httpServer    *http.Server
	listener      net.Listener
	shutdownHooks []func()
	liveConns     map[*websocket.Conn]struct{}
	closed        bool

	logger *slog.Logger
}

// New creates a Server dispatching through table with state as the
// handle passed to every handler. A nil config uses DefaultConfig.
func New[S any](config *Config, table *router.Table[S], state S) *Server[S] {
	if config == nil {
		config = DefaultConfig()
	} else {
		config = config.Clone()
	}
	config.applyDefaults()

	logger := config.Logger.With("component", "server")
	if err := config.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
	}
	if !table.HasCatchAll() {
		logger.Debug("route table has no catch-all; unmatched requests use the fallback response")
	}

	s := &Server[S]{
		config: config,
		table:  table,
		state:  state,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.Live.ReadBufferSize,
			WriteBufferSize: config.Live.WriteBufferSize,
			CheckOrigin:     config.Live.CheckOrigin,
		},
		liveConns: make(map[*websocket.Conn]struct{}),
		logger:    logger,
	}

	if config.Metrics.Enabled {
		opts := []middleware.MetricsOption{middleware.WithNamespace(config.Metrics.Namespace)}
		if config.Metrics.Registry != nil {
			opts = append(opts, middleware.WithRegistry(config.Metrics.Registry))
		}
		s.metrics = middleware.NewMetrics(opts...)
	}

	s.mux = s.buildMux()
	return s
}

// buildMux assembles the chi router with the ambient middleware stack.
func (s *Server[S]) buildMux() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RouteSlot)
	if s.metrics != nil {
		r.Use(s.metrics.Handler)
	}
	if s.config.TracingEnabled {
		r.Use(middleware.Tracing(middleware.WithTracerName(s.config.TracerName)))
	}
	r.Use(middleware.RequestLogger(s.config.Logger))
	r.Use(chimw.Recoverer)
	if s.config.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RPS:   s.config.RateLimitRPS,
			Burst: s.config.RateLimitBurst,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		middleware.SetRoute(r.Context(), "healthz")
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("OK"))
	})

	if s.metrics != nil {
		var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
		if s.config.Metrics.Registry != nil {
			gatherer = s.config.Metrics.Registry
		}
		r.Method(http.MethodGet, s.config.Metrics.Path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	if s.config.Live.Enabled {
		r.Get(LivePrefix+"/", s.serveLiveIndex)
		r.Get(LivePrefix+"/js", s.serveLiveScript)
		r.Get(LivePrefix+"/ws", s.serveLive)
	}

	app := http.HandlerFunc(s.serveApp)
	r.Handle("/*", app)
	r.NotFound(app)
	r.MethodNotAllowed(app)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server[S]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Router returns the chi router so callers can mount extra endpoints.
// Routes added here take precedence over the route table.
func (s *Server[S]) Router() chi.Router {
	return s.mux
}

// serveApp runs the request pipeline for one HTTP request.
func (s *Server[S]) serveApp(w http.ResponseWriter, r *http.Request) {
	req, err := request.FromHTTP(r, s.config.MaxBodyBytes)
	if err != nil {
		s.logger.Debug("rejecting request", "method", r.Method, "path", r.URL.Path, "error", err)
		writeResponse(w, r, ErrorResponse(err), s.logger)
		return
	}

	resp, route := s.Dispatch(req, response.NewRecorder())
	middleware.SetRoute(r.Context(), route)
	writeResponse(w, r, resp, s.logger)
}

func writeResponse(w http.ResponseWriter, r *http.Request, resp *response.Response, logger *slog.Logger) {
	if r.Method == http.MethodHead {
		resp = resp.Clone()
		if resp.Headers == nil {
			resp.Headers = make(map[string]string)
		}
		resp.Headers["Content-Length"] = strconv.Itoa(len(resp.Body))
		resp.Body = nil
	}
	if err := resp.WriteTo(w); err != nil {
		logger.Debug("write response failed", "error", err)
	}
}

// Sink is a response sink that can also report what it recorded.
type Sink interface {
	response.Sink
	Response() *response.Response
}

// Dispatch routes req through the table and returns the response the
// handler produced together with the matched route name. The handler
// writes into sink.
func (s *Server[S]) Dispatch(req *request.Request, sink Sink) (*response.Response, string) {
	m, ok := s.table.Dispatch(req)
	if !ok {
		return s.config.Fallback(), middleware.UnmatchedRoute
	}

	if err := s.invoke(m, sink); err != nil {
		herr := &HandlerError{Route: m.Route.Name, Method: req.Method(), Path: req.Path(), Err: err}
		s.logger.Error("handler failed", "error", herr)
		if resp := sink.Response(); resp != nil {
			return resp, m.Route.Name
		}
		return response.Err500(), m.Route.Name
	}
	return sink.Response(), m.Route.Name
}

// invoke runs the matched handler, converting panics and missing
// responses into errors.
func (s *Server[S]) invoke(m router.Match[S], sink Sink) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				"route", m.Route.Name,
				"panic", r,
				"stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()

	m.Serve(sink, s.state)
	if sink.Response() == nil {
		return ErrNoResponse
	}
	return nil
}

// Metrics returns the metrics collectors, or nil when disabled.
func (s *Server[S]) Metrics() *middleware.Metrics {
	return s.metrics
}

// Config returns the server configuration.
func (s *Server[S]) Config() *Config {
	return s.config
}

// Logger returns the server logger.
func (s *Server[S]) Logger() *slog.Logger {
	return s.logger
}

// OnShutdown registers fn to run during Shutdown once in-flight requests
// have drained. Hooks run in registration order.
func (s *Server[S]) OnShutdown(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdownHooks = append(s.shutdownHooks, fn)
}

// Addr returns the listening address once Serve has started, else nil.
func (s *Server[S]) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run listens on Config.Address and serves until ctx is cancelled or the
// process receives SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server[S]) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.config.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server[S]) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrServerClosed
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}
	httpServer := s.httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server. It runs the shutdown hooks,
// closes live connections and waits for in-flight requests up to
// Config.ShutdownTimeout.
func (s *Server[S]) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	hooks := append([]func(){}, s.shutdownHooks...)
	httpServer := s.httpServer
	conns := make([]*websocket.Conn, 0, len(s.liveConns))
	for c := range s.liveConns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		closeLive(c, websocket.CloseGoingAway, "server shutting down")
	}

	var err error
	if httpServer != nil {
		err = httpServer.Shutdown(ctx)
	}
	for _, hook := range hooks {
		hook()
	}
	if err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}

	s.logger.Info("server shutdown complete")
	return nil
}

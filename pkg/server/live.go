package server

import (
	"context"
	"crypto/sha256"
	_ "embed"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/liveview/pkg/request"
	"github.com/vango-dev/liveview/pkg/response"
	"github.com/vango-dev/liveview/pkg/routepath"
	"github.com/vango-dev/liveview/pkg/vdom"
)

// LivePrefix is where the live channel is mounted.
const LivePrefix = "/_live"

// Live frame and message types.
const (
	FrameTree     = "tree"
	FrameError    = "error"
	MsgRefresh    = "refresh"
	MsgNavigate   = "navigate"
	MsgEvent      = "event"
	defaultLiveAt = "/"
)

//go:embed client/live.js
var liveScript []byte

var liveScriptETag = func() string {
	sum := sha256.Sum256(liveScript)
	return fmt.Sprintf("%q", fmt.Sprintf("%x", sum[:8]))
}()

const liveIndex = `<!DOCTYPE html>
<html>
    <head>
        <script src="./js"></script>
    </head>
    <body>
    </body>
</html>
`

// LiveFrame is a server-to-client message.
type LiveFrame struct {
	Type   string        `json:"type"`
	Path   string        `json:"path,omitempty"`
	Title  string        `json:"title,omitempty"`
	Tree   *vdom.Element `json:"tree,omitempty"`
	Status int           `json:"status,omitempty"`
}

// LiveMessage is a client-to-server message.
type LiveMessage struct {
	Type    string `json:"type"`
	Path    string `json:"path,omitempty"`
	ID      uint64 `json:"id,omitempty"`
	Event   string `json:"event,omitempty"`
	Handler string `json:"handler,omitempty"`
}

// treeRecorder records the response and the tree rendered into it.
type treeRecorder struct {
	*response.Recorder

	mu    sync.Mutex
	title string
	tree  *vdom.Element
}

func newTreeRecorder() *treeRecorder {
	return &treeRecorder{Recorder: response.NewRecorder()}
}

// CaptureTree implements TreeCapturer.
func (t *treeRecorder) CaptureTree(title string, el vdom.Element) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.title = title
	t.tree = &el
}

func (t *treeRecorder) captured() (string, *vdom.Element) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.title, t.tree
}

func (s *Server[S]) serveLiveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(liveIndex))
}

func (s *Server[S]) serveLiveScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", liveScriptETag)
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")
	if r.Header.Get("If-None-Match") == liveScriptETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	_, _ = w.Write(liveScript)
}

// serveLive upgrades to a WebSocket and pushes trees until the client
// disconnects or the server shuts down.
func (s *Server[S]) serveLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written an HTTP error.
		s.logger.Debug("live upgrade failed", "error", err)
		return
	}
	if !s.trackLive(conn) {
		closeLive(conn, websocket.CloseGoingAway, "server shutting down")
		return
	}
	defer s.untrackLive(conn)
	defer conn.Close()
	defer s.metrics.LiveConnected()()

	conn.SetReadLimit(s.config.Live.MaxMessageSize)

	// The HTTP request context ends with the handler; keep its values only.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	path, err := normalizeLivePath(r.URL.Query().Get("path"))
	if err != nil {
		s.logger.Debug("live path rejected", "error", err)
		_ = s.writeFrame(conn, LiveFrame{Type: FrameError, Status: http.StatusBadRequest})
		return
	}
	headers := r.Header.Clone()
	if err := s.pushTree(ctx, conn, path, headers); err != nil {
		s.logger.Debug("live write failed", "error", err)
		return
	}

	for {
		var msg LiveMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("live read ended", "error", err)
			}
			return
		}

		switch msg.Type {
		case MsgRefresh:
		case MsgNavigate:
			next, err := normalizeLivePath(msg.Path)
			if err != nil {
				if err := s.writeFrame(conn, LiveFrame{Type: FrameError, Path: msg.Path, Status: http.StatusBadRequest}); err != nil {
					return
				}
				continue
			}
			path = next
		case MsgEvent:
			s.logger.Debug("live event", "path", path, "id", msg.ID, "event", msg.Event, "handler", msg.Handler)
		default:
			if err := s.writeFrame(conn, LiveFrame{Type: FrameError, Status: http.StatusBadRequest}); err != nil {
				return
			}
			continue
		}

		if err := s.pushTree(ctx, conn, path, headers); err != nil {
			s.logger.Debug("live write failed", "error", err)
			return
		}
	}
}

// Capture is the result of rendering a path without a network round trip.
type Capture struct {
	// Response is what the handler (or the fallback) produced.
	Response *response.Response

	// Route is the matched route name.
	Route string

	// Title and Tree are set when the handler rendered a page with Render.
	Title string
	Tree  *vdom.Element
}

// Capture dispatches a GET for path and records the page tree along with
// the response. Tree is nil when the response is not a rendered page. An
// error is returned only when path is not a valid relative path.
func (s *Server[S]) Capture(ctx context.Context, path string, headers http.Header) (Capture, error) {
	path, err := normalizeLivePath(path)
	if err != nil {
		return Capture{}, err
	}
	req := request.New(request.MethodGet, path, headers, nil).WithContext(ctx)
	rec := newTreeRecorder()
	resp, route := s.Dispatch(req, rec)

	c := Capture{Response: resp, Route: route}
	if title, tree := rec.captured(); tree != nil && resp == rec.Response() {
		c.Title = title
		c.Tree = tree
	}
	return c, nil
}

// pushTree sends the tree for path, or an error frame carrying the status
// when the handler produced no tree.
func (s *Server[S]) pushTree(ctx context.Context, conn *websocket.Conn, path string, headers http.Header) error {
	c, err := s.Capture(ctx, path, headers)
	if err != nil {
		return s.writeFrame(conn, LiveFrame{Type: FrameError, Path: path, Status: http.StatusBadRequest})
	}
	frame := LiveFrame{Type: FrameTree, Path: path, Title: c.Title, Tree: c.Tree}
	if c.Tree == nil {
		frame.Type = FrameError
		frame.Status = c.Response.Status
	}
	return s.writeFrame(conn, frame)
}

func (s *Server[S]) writeFrame(conn *websocket.Conn, frame LiveFrame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(s.config.Live.WriteTimeout)); err != nil {
		return err
	}
	if err := conn.WriteJSON(frame); err != nil {
		return err
	}
	s.metrics.LiveFrame(frame.Type)
	return nil
}

func (s *Server[S]) trackLive(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.liveConns[conn] = struct{}{}
	return true
}

func (s *Server[S]) untrackLive(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.liveConns, conn)
}

// LiveConnections returns the number of open live connections.
func (s *Server[S]) LiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.liveConns)
}

func closeLive(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	_ = conn.Close()
}

// normalizeLivePath roots a client-supplied path and cleans it.
func normalizeLivePath(path string) (string, error) {
	if path == "" {
		return defaultLiveAt, nil
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return routepath.Clean(path)
}

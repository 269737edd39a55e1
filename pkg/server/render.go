package server

import (
	"net/http"

	"github.com/vango-dev/liveview/pkg/render"
	"github.com/vango-dev/liveview/pkg/response"
	"github.com/vango-dev/liveview/pkg/vdom"
)

// TreeCapturer is implemented by sinks that want the materialized tree in
// addition to the HTML response. The live channel uses it.
type TreeCapturer interface {
	CaptureTree(title string, el vdom.Element)
}

// Render materializes n with a fresh IDGen and responds with a full HTML
// page titled title.
func Render(w response.Sink, title string, n *vdom.Node) error {
	return RenderStatus(w, http.StatusOK, title, n)
}

// RenderStatus is Render with an explicit status code.
func RenderStatus(w response.Sink, status int, title string, n *vdom.Node) error {
	el, err := vdom.Materialize(n, vdom.NewIDGen())
	if err != nil {
		return err
	}
	if tc, ok := w.(TreeCapturer); ok {
		tc.CaptureTree(title, el)
	}
	return w.Respond(response.HTML(status, render.Page(title, el)))
}

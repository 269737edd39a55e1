package listapp

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/vango-dev/liveview/pkg/request"
	"github.com/vango-dev/liveview/pkg/response"
	"github.com/vango-dev/liveview/pkg/router"
	"github.com/vango-dev/liveview/pkg/server"
)

// messagePrefix is the only body shape POST /submit accepts.
const messagePrefix = "message="

// NotFoundRoute names the catch-all that ends the route table.
const NotFoundRoute = "not-found"

// Routes returns the application's route table. Order matters: the
// first matching route wins, and the table ends in a catch-all so every
// request is answered by a route.
func Routes() *router.Table[*Store] {
	return router.New[*Store]().
		Route("submit-form", router.MethodPath(request.MethodGet, "/submit"), submitForm).
		Route("submit", router.MethodPath(request.MethodPost, "/submit"), submit).
		Route("read", router.MethodPath(request.MethodGet, "/read/{n:uint}"), read).
		Route("items", router.MethodPath(request.MethodGet, "/items.json"), itemsJSON).
		Fallback(NotFoundRoute, notFound)
}

func notFound(_ *request.Request, w response.Sink, _ *Store) {
	_ = w.Respond(response.Err404())
}

func submitForm(_ *request.Request, w response.Sink, _ *Store) {
	_ = server.Render(w, "Submit", SubmitPage())
}

func submit(req *request.Request, w response.Sink, store *Store) {
	body, err := req.TakeBody()
	if err != nil {
		_ = server.RespondError(w, err)
		return
	}

	message, ok := parseMessage(body.String())
	if !ok {
		_ = w.Respond(response.Err400())
		return
	}
	if err := store.Add(req.Context(), message); err != nil {
		_ = server.RespondError(w, err)
		return
	}
	_ = server.Render(w, "Added", AddedPage())
}

// parseMessage extracts the value of a "message=<value>" body. A value
// that fails to URL-decode is used as sent.
func parseMessage(body string) (string, bool) {
	raw, ok := strings.CutPrefix(body, messagePrefix)
	if !ok {
		return "", false
	}
	if decoded, err := url.QueryUnescape(raw); err == nil {
		return decoded, true
	}
	return raw, true
}

func read(req *request.Request, w response.Sink, store *Store) {
	n, _ := req.Params().Uint("n")
	items, err := store.LastN(req.Context(), n)
	if err != nil {
		_ = server.RespondError(w, err)
		return
	}
	_ = server.Render(w, "Messages", ListPage(items))
}

func itemsJSON(req *request.Request, w response.Sink, store *Store) {
	items, err := store.All(req.Context())
	if err != nil {
		_ = server.RespondError(w, err)
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		_ = server.RespondError(w, err)
		return
	}
	_ = w.Respond(response.JSON(http.StatusOK, data))
}

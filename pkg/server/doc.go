// Package server connects route tables to net/http.
//
// A Server owns a router.Table, the application state handle passed to
// every handler, and a chi mux carrying the ambient middleware (request
// ids, real IP, metrics, tracing, request logging, panic recovery and
// optional rate limiting).
//
// # Request Pipeline
//
// For every request that is not a built-in endpoint the server:
//  1. Builds a request.Request, reading the body up to Config.MaxBodyBytes
//  2. Dispatches it through the table (first match wins)
//  3. Invokes the handler with a response sink and the state handle
//  4. Writes the single response the handler produced
//
// An unmatched request gets Config.Fallback (404 by default). A handler
// that panics or never responds produces a 500.
//
// # Rendering
//
// Handlers build a vdom.Node and call Render, which materializes it with
// a fresh IDGen and responds with a full HTML page.
//
// # Live Channel
//
// When enabled, the server mounts a small live channel under /_live/:
//
//	GET /_live/          index page loading the client script
//	GET /_live/js        client script
//	GET /_live/ws?path=  WebSocket pushing materialized trees as JSON
//
// The socket dispatches a GET for path through the same table and pushes
// {"type":"tree","tree":...}. The client may send {"type":"refresh"} or
// {"type":"navigate","path":"/read/10"} to receive a new tree. IDs restart
// at 0 on every pass.
//
// # Built-in Endpoints
//
//	GET /healthz   200 "OK"
//	GET /metrics   Prometheus exposition when metrics are enabled
//
// Built-in endpoints shadow application routes with the same path.
package server

// Package render writes materialized element trees as HTML.
//
// The render package converts vdom.Element trees into HTML, handling:
//
//   - Deterministic attribute order (sorted by name)
//   - Element addressing through data-lv-id
//   - Listener markers (data-lv-on-<event>="<handler>")
//   - Text and attribute escaping
//   - Void elements (br, img, input) without closing tags or children
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(el)
//
// # Full Page Rendering
//
//	page := render.PageData{
//	    Title: "Message list",
//	    Body:  el,
//	}
//	err := renderer.RenderPage(w, page)
//
// Page(title, el) is a shortcut returning the document bytes.
//
// # Security
//
// All text content and attribute values are escaped. There is no raw HTML
// escape hatch.
package render

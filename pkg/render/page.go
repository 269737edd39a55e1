package render

import (
	"bytes"
	"io"

	"github.com/vango-dev/liveview/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Title is the page title.
	Title string

	// Body is the root element of the page content.
	Body vdom.Element

	// Scripts contains script sources appended to the body.
	Scripts []string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string
}

// RenderPage writes a complete HTML document.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	ew := &errWriter{w: w}
	ew.WriteString("<!DOCTYPE html>\n")
	ew.WriteString(`<html lang="` + escapeAttr(lang) + `">` + "\n")
	ew.WriteString("<head>\n")
	ew.WriteString(`  <meta charset="utf-8">` + "\n")
	ew.WriteString(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	ew.WriteString("  <title>" + escapeHTML(page.Title) + "</title>\n")
	ew.WriteString("</head>\n")
	ew.WriteString("<body>\n")
	if err := r.renderElement(ew, &page.Body, 0); err != nil {
		return err
	}
	if !r.config.Pretty {
		ew.WriteString("\n")
	}
	for _, src := range page.Scripts {
		ew.WriteString(`<script src="` + escapeAttr(src) + `"></script>` + "\n")
	}
	ew.WriteString("</body>\n")
	ew.WriteString("</html>\n")
	return ew.err
}

// Page renders a complete document with the default configuration.
func Page(title string, el vdom.Element) []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer only fail for elements without a tag,
	// which Materialize never produces.
	_ = NewRenderer(RendererConfig{}).RenderPage(&buf, PageData{Title: title, Body: el})
	return buf.Bytes()
}

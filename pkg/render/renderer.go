package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/vango-dev/liveview/pkg/vdom"
)

const (
	// IDAttr carries the element ID in rendered HTML.
	IDAttr = "data-lv-id"

	// ListenerAttrPrefix prefixes listener marker attributes.
	ListenerAttrPrefix = "data-lv-on-"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"br":    true,
	"img":   true,
	"input": true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Text-bearing elements stay on one
	// line so their content is unchanged.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// OmitIDs drops the data-lv-id attribute.
	OmitIDs bool
}

// Renderer writes Element trees as HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders el to an HTML string.
func (r *Renderer) RenderToString(el vdom.Element) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, el); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams el to w.
func (r *Renderer) RenderToWriter(w io.Writer, el vdom.Element) error {
	return r.renderElement(&errWriter{w: w}, &el, 0)
}

// RenderElement renders el with the default configuration.
func RenderElement(w io.Writer, el vdom.Element) error {
	return NewRenderer(RendererConfig{}).RenderToWriter(w, el)
}

// errWriter remembers the first write error so rendering code can write
// freely and check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) WriteString(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (r *Renderer) renderElement(w *errWriter, el *vdom.Element, depth int) error {
	if el.Name == "" {
		return fmt.Errorf("render: element %d has no tag name", el.ID)
	}

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteString("<")
	w.WriteString(el.Name)
	r.renderAttributes(w, el)
	w.WriteString(">")

	if IsVoidElement(el.Name) {
		if r.config.Pretty {
			w.WriteString("\n")
		}
		return w.err
	}

	if el.Text != nil {
		w.WriteString(escapeHTML(*el.Text))
	}

	block := r.config.Pretty && len(el.Children) > 0
	if block {
		w.WriteString("\n")
	}
	for i := range el.Children {
		if err := r.renderElement(w, &el.Children[i], depth+1); err != nil {
			return err
		}
	}
	if block {
		r.writeIndent(w, depth)
	}

	w.WriteString("</")
	w.WriteString(el.Name)
	w.WriteString(">")
	if r.config.Pretty {
		w.WriteString("\n")
	}
	return w.err
}

// renderAttributes writes the element attributes sorted by name, then the
// ID marker, then one marker per listener in declaration order.
func (r *Renderer) renderAttributes(w *errWriter, el *vdom.Element) {
	keys := make([]string, 0, len(el.Attributes))
	for key := range el.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		w.WriteString(" ")
		w.WriteString(key)
		w.WriteString(`="`)
		w.WriteString(escapeAttr(el.Attributes[key]))
		w.WriteString(`"`)
	}

	if !r.config.OmitIDs {
		w.WriteString(" " + IDAttr + `="`)
		w.WriteString(strconv.FormatUint(el.ID, 10))
		w.WriteString(`"`)
	}

	for _, l := range el.Listeners {
		w.WriteString(" " + ListenerAttrPrefix)
		w.WriteString(escapeAttr(l.Event))
		w.WriteString(`="`)
		w.WriteString(escapeAttr(l.Handler))
		w.WriteString(`"`)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w *errWriter, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}

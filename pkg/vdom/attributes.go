package vdom

import (
	"strconv"
	"strings"
)

// attr creates an Attr with the given key and value.
func attr(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// boolAttr creates a present-or-absent attribute.
func boolAttr(key string, on bool) Attr {
	if !on {
		return Attr{}
	}
	return attr(key, key)
}

// Attribute creates an arbitrary attribute.
func Attribute(key, value string) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", strconv.FormatBool(hidden)) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// TabIndex sets the tabindex attribute.
func TabIndex(index int) Attr { return attr("tabindex", strconv.Itoa(index)) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Target sets the target attribute.
func Target(target string) Attr { return attr("target", target) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Media attributes

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Width sets the width attribute.
func Width(w int) Attr { return attr("width", strconv.Itoa(w)) }

// Height sets the height attribute.
func Height(h int) Attr { return attr("height", strconv.Itoa(h)) }

// Form attributes

// Action sets the form action attribute.
func Action(url string) Attr { return attr("action", url) }

// Method sets the form method attribute.
func Method(method string) Attr { return attr("method", method) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// For sets the for attribute of a label.
func For(id string) Attr { return attr("for", id) }

// Disabled marks an element disabled.
func Disabled(on bool) Attr { return boolAttr("disabled", on) }

// Required marks an input required.
func Required(on bool) Attr { return boolAttr("required", on) }

// Checked marks a checkbox or radio checked.
func Checked(on bool) Attr { return boolAttr("checked", on) }

// Autofocus marks an input for initial focus.
func Autofocus(on bool) Attr { return boolAttr("autofocus", on) }

// MaxLength sets the maxlength attribute.
func MaxLength(n int) Attr { return attr("maxlength", strconv.Itoa(n)) }

package vdom

// Listener binds a DOM event to a named server-side handler.
type Listener struct {
	Event   string `json:"event"`
	Handler string `json:"handler"`
}

// On creates a listener for an arbitrary event name, e.g. On("click", "add").
func On(event, handler string) Listener {
	return Listener{Event: event, Handler: handler}
}

// Mouse events

// OnClick handles click events.
func OnClick(handler string) Listener { return On("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler string) Listener { return On("dblclick", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler string) Listener { return On("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler string) Listener { return On("keyup", handler) }

// Form events

// OnInput handles input events (fired when value changes).
func OnInput(handler string) Listener { return On("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler string) Listener { return On("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler string) Listener { return On("submit", handler) }

// OnFocus handles focus events.
func OnFocus(handler string) Listener { return On("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler string) Listener { return On("blur", handler) }

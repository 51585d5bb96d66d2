//go:build js && wasm

// Package browser binds the page behaviors to the live DOM through syscall/js.
package browser

import (
	"syscall/js"

	"github.com/couchcryptid/radiooperator-site/internal/domain"
)

// Document implements domain.Document over window.document.
type Document struct {
	doc js.Value
}

// NewDocument wraps the global document.
func NewDocument() *Document {
	return &Document{doc: js.Global().Get("document")}
}

func (d *Document) lookup(id string) (js.Value, bool) {
	el := d.doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return js.Value{}, false
	}
	return el, true
}

// Select returns the <select> with the given id.
func (d *Document) Select(id string) (domain.SelectControl, bool) {
	el, ok := d.lookup(id)
	if !ok {
		return nil, false
	}
	return &selectControl{el: el}, true
}

// Text returns the element with the given id.
func (d *Document) Text(id string) (domain.TextElement, bool) {
	el, ok := d.lookup(id)
	if !ok {
		return nil, false
	}
	return textElement{el: el}, true
}

// SetBackgroundColor sets body.style.backgroundColor.
func (d *Document) SetBackgroundColor(color string) {
	body := d.doc.Get("body")
	if body.IsNull() || body.IsUndefined() {
		return
	}
	body.Get("style").Set("backgroundColor", color)
}

// ExternalToolURL returns the body's data-external-tool attribute, or "".
func (d *Document) ExternalToolURL() string {
	body := d.doc.Get("body")
	if body.IsNull() || body.IsUndefined() {
		return ""
	}
	v := body.Get("dataset").Get("externalTool")
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

type selectControl struct {
	el       js.Value
	handlers []js.Func
}

func (s *selectControl) Value() string {
	return s.el.Get("value").String()
}

func (s *selectControl) SetSelectedIndex(i int) {
	s.el.Set("selectedIndex", i)
}

// OnChange adds a "change" listener. Listeners live as long as the page, so
// the js.Func is never released.
func (s *selectControl) OnChange(fn func()) {
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	s.handlers = append(s.handlers, cb)
	s.el.Call("addEventListener", "change", cb)
}

type textElement struct {
	el js.Value
}

func (t textElement) SetText(text string) {
	t.el.Set("textContent", text)
}

// Window implements domain.Navigator over window.
type Window struct {
	win js.Value
}

// NewWindow wraps the global window.
func NewWindow() *Window {
	return &Window{win: js.Global()}
}

func (w *Window) Navigate(url string) {
	w.win.Get("location").Set("href", url)
}

func (w *Window) OpenDetached(url string) {
	w.win.Call("open", url, "_blank", "noopener")
}

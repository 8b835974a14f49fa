//go:build js && wasm

// Package jsdom binds the dom interfaces to the browser through syscall/js.
package jsdom

import (
	"syscall/js"

	"itinerary-planner/internal/dom"
)

// Document wraps the global browser document.
type Document struct {
	v js.Value
}

// Element wraps a browser element.
type Element struct {
	v js.Value
}

// Location wraps window.location.
type Location struct {
	v js.Value
}

// ConsoleWriter forwards log output to console.log.
type ConsoleWriter struct{}

var (
	_ dom.Document = Document{}
	_ dom.Element  = Element{}
	_ dom.Location = Location{}
)

// Global returns the page's document.
func Global() Document {
	return Document{v: js.Global().Get("document")}
}

// WindowLocation returns the page's location object.
func WindowLocation() Location {
	return Location{v: js.Global().Get("location")}
}

func (d Document) GetElementByID(id string) (dom.Element, bool) {
	v := d.v.Call("getElementById", id)
	if !v.Truthy() {
		return nil, false
	}
	return Element{v: v}, true
}

func (d Document) QuerySelector(selector string) (dom.Element, bool) {
	v := d.v.Call("querySelector", selector)
	if !v.Truthy() {
		return nil, false
	}
	return Element{v: v}, true
}

func (d Document) CreateElement(tag string) dom.Element {
	return Element{v: d.v.Call("createElement", tag)}
}

func (e Element) ID() string {
	return e.v.Get("id").String()
}

func (e Element) Value() string {
	v := e.v.Get("value")
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (e Element) SetValue(value string) {
	e.v.Set("value", value)
}

// Attribute returns an attribute value, or "" when unset.
func (e Element) Attribute(name string) string {
	v := e.v.Call("getAttribute", name)
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (e Element) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e Element) SetText(text string) {
	e.v.Set("textContent", text)
}

func (e Element) AppendChild(child dom.Element) {
	c, ok := child.(Element)
	if !ok {
		return
	}
	e.v.Call("appendChild", c.v)
}

func (e Element) ReplaceChildren() {
	e.v.Call("replaceChildren")
}

// AddEventListener registers fn and returns a Release that also frees the
// underlying js.Func.
func (e Element) AddEventListener(event string, fn func(dom.Event)) dom.Release {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		var raw js.Value
		if len(args) > 0 {
			raw = args[0]
		}
		fn(convertEvent(event, raw))
		return nil
	})
	e.v.Call("addEventListener", event, cb)

	released := false
	return func() {
		if released {
			return
		}
		released = true
		e.v.Call("removeEventListener", event, cb)
		cb.Release()
	}
}

func (l Location) Pathname() string {
	return l.v.Get("pathname").String()
}

// Origin returns scheme, host and port of the page, e.g. "https://example.com".
func (l Location) Origin() string {
	return l.v.Get("origin").String()
}

func (l Location) Assign(url string) {
	l.v.Call("assign", url)
}

func (ConsoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", string(p))
	return len(p), nil
}

// convertEvent reads event.target.value?.formattedAddress the way the place
// picker exposes it. A truthy value without an address yields an empty Place.
func convertEvent(eventType string, raw js.Value) dom.Event {
	if !raw.Truthy() {
		return dom.NewEvent(eventType, nil, nil)
	}
	prevent := func() { raw.Call("preventDefault") }

	var place *dom.Place
	if target := raw.Get("target"); target.Truthy() {
		if value := target.Get("value"); value.Truthy() && value.Type() == js.TypeObject {
			place = &dom.Place{}
			if addr := value.Get("formattedAddress"); addr.Type() == js.TypeString {
				place.FormattedAddress = addr.String()
			}
		}
	}
	return dom.NewEvent(eventType, place, prevent)
}

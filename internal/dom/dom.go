// Package dom describes the small slice of the browser document the activity
// form relies on. Adapters exist for the live browser (jsdom) and for an
// in-memory HTML tree (htmldom).
package dom

// Release detaches a previously registered listener.
type Release func()

// Element is a node the form reads from, writes to or listens on.
type Element interface {
	ID() string
	Value() string
	SetValue(value string)
	SetAttribute(name, value string)
	SetText(text string)
	AppendChild(child Element)
	// ReplaceChildren removes every child node.
	ReplaceChildren()
	AddEventListener(event string, fn func(Event)) Release
}

// Document looks up and creates elements.
type Document interface {
	GetElementByID(id string) (Element, bool)
	QuerySelector(selector string) (Element, bool)
	CreateElement(tag string) Element
}

// Location exposes the page URL and full-page navigation.
type Location interface {
	Pathname() string
	Assign(url string)
}

// Place is the value carried by the address picker's place-change event.
type Place struct {
	FormattedAddress string
}

// Event is the adapter-neutral view of a DOM event.
type Event struct {
	Type string
	// Place is set for place-change events when the picker holds a place.
	Place *Place

	preventDefault func()
}

// NewEvent builds an Event. prevent may be nil.
func NewEvent(eventType string, place *Place, prevent func()) Event {
	return Event{Type: eventType, Place: place, preventDefault: prevent}
}

// PreventDefault cancels the browser's default action for the event.
func (e Event) PreventDefault() {
	if e.preventDefault != nil {
		e.preventDefault()
	}
}

// Package htmldom implements the dom interfaces over an in-memory HTML tree.
// It lets the activity form run without a browser and is used to prepare
// served pages.
package htmldom

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"itinerary-planner/internal/dom"
)

// Document is a parsed HTML page with listener bookkeeping.
type Document struct {
	doc *goquery.Document

	mu        sync.Mutex
	nextID    int
	listeners map[*html.Node]map[string][]listener
}

type listener struct {
	id int
	fn func(dom.Event)
}

var _ dom.Document = (*Document)(nil)

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc, listeners: make(map[*html.Node]map[string][]listener)}, nil
}

// ParseString is Parse for a literal page.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Selection exposes the underlying goquery document root.
func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

// HTML renders the current tree.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// GetElementByID returns the first element with the given id.
func (d *Document) GetElementByID(id string) (dom.Element, bool) {
	if id == "" {
		return nil, false
	}
	var found *html.Node
	d.doc.Find("[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.AttrOr("id", "") == id {
			found = s.Get(0)
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return d.wrap(found), true
}

// QuerySelector returns the first element matching a CSS selector.
func (d *Document) QuerySelector(selector string) (dom.Element, bool) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return d.wrap(sel.Get(0)), true
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return d.wrap(node)
}

// Dispatch delivers ev to the listeners registered on el for ev.Type and
// reports how many ran.
func (d *Document) Dispatch(el dom.Element, ev dom.Event) int {
	e, ok := el.(*Element)
	if !ok || e == nil {
		return 0
	}
	d.mu.Lock()
	registered := append([]listener(nil), d.listeners[e.node][ev.Type]...)
	d.mu.Unlock()

	for _, l := range registered {
		l.fn(ev)
	}
	return len(registered)
}

// DispatchByID is Dispatch for the element with the given id.
func (d *Document) DispatchByID(id string, ev dom.Event) int {
	el, ok := d.GetElementByID(id)
	if !ok {
		return 0
	}
	return d.Dispatch(el, ev)
}

func (d *Document) wrap(node *html.Node) *Element {
	return &Element{doc: d, node: node}
}

func (d *Document) addListener(node *html.Node, event string, fn func(dom.Event)) dom.Release {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	byEvent := d.listeners[node]
	if byEvent == nil {
		byEvent = make(map[string][]listener)
		d.listeners[node] = byEvent
	}
	byEvent[event] = append(byEvent[event], listener{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { d.removeListener(node, event, id) })
	}
}

func (d *Document) removeListener(node *html.Node, event string, id int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list := d.listeners[node][event]
	for i, l := range list {
		if l.id == id {
			d.listeners[node][event] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

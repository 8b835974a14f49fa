package htmldom

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"itinerary-planner/internal/dom"
)

// Element wraps a single node of a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

var _ dom.Element = (*Element)(nil)

// Node returns the wrapped html node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Tag returns the lower-case element name.
func (e *Element) Tag() string {
	return e.node.Data
}

func (e *Element) sel() *goquery.Selection {
	return goquery.NewDocumentFromNode(e.node).Selection
}

// Attr returns an attribute value.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel().Attr(name)
}

// Text returns the combined text of the element and its descendants.
func (e *Element) Text() string {
	return e.sel().Text()
}

// Children returns the element children in document order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

func (e *Element) ID() string {
	return e.sel().AttrOr("id", "")
}

// Value mirrors the browser's value property for inputs and selects.
func (e *Element) Value() string {
	if e.node.Data != "select" {
		return e.sel().AttrOr("value", "")
	}
	options := e.sel().Find("option")
	if selected := options.Filter("[selected]").First(); selected.Length() > 0 {
		return optionValue(selected)
	}
	if enabled := options.Not("[disabled]").First(); enabled.Length() > 0 {
		return optionValue(enabled)
	}
	return ""
}

// SetValue updates the value attribute, or the selected option of a select.
func (e *Element) SetValue(value string) {
	if e.node.Data != "select" {
		e.sel().SetAttr("value", value)
		return
	}
	matched := false
	e.sel().Find("option").Each(func(_ int, opt *goquery.Selection) {
		if !matched && optionValue(opt) == value {
			opt.SetAttr("selected", "")
			matched = true
			return
		}
		opt.RemoveAttr("selected")
	})
}

func (e *Element) SetAttribute(name, value string) {
	e.sel().SetAttr(name, value)
}

func (e *Element) SetText(text string) {
	e.ReplaceChildren()
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// AppendChild moves child under e. Children from another adapter are ignored.
func (e *Element) AppendChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return
	}
	if c.node.Parent != nil {
		c.node.Parent.RemoveChild(c.node)
	}
	e.node.AppendChild(c.node)
}

func (e *Element) ReplaceChildren() {
	for c := e.node.FirstChild; c != nil; c = e.node.FirstChild {
		e.node.RemoveChild(c)
	}
}

func (e *Element) AddEventListener(event string, fn func(dom.Event)) dom.Release {
	return e.doc.addListener(e.node, event, fn)
}

// optionValue falls back to the option text when no value attribute is set.
func optionValue(opt *goquery.Selection) string {
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return opt.Text()
}

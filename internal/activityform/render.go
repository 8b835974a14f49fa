package activityform

import (
	"fmt"
	"strconv"
	"strings"

	"itinerary-planner/internal/catalog"
	"itinerary-planner/internal/dom"
)

// PlaceholderText is the label of the leading, unselectable option.
const PlaceholderText = "Choose a Category!"

// SlotID returns the element id of the select for the i-th activity (1-based).
func SlotID(i int) string {
	return "activity" + strconv.Itoa(i)
}

// ParseCount coerces the activity-count field to a slot count. It accepts a
// leading integer ("3", " 4 ", "2.5", "6abc") and returns 0 for empty,
// non-numeric, negative or overflowing input. It does not cap the result;
// Controller applies Options.MaxCount.
func ParseCount(raw string) int {
	s := strings.TrimSpace(raw)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || negative {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// Renderer builds activity slots inside a container.
type Renderer struct {
	Document dom.Document
	Catalog  catalog.Catalog
}

// Render replaces the container's contents with count label/select pairs,
// numbered from 1. A count of zero or less leaves the container empty.
func (r Renderer) Render(container dom.Element, count int) {
	container.ReplaceChildren()
	categories := r.Catalog.Categories()
	for i := 1; i <= count; i++ {
		id := SlotID(i)

		label := r.Document.CreateElement("label")
		label.SetAttribute("for", id)
		label.SetText(fmt.Sprintf("Activity %d", i))

		sel := r.Document.CreateElement("select")
		sel.SetAttribute("id", id)
		sel.SetAttribute("name", id)
		sel.AppendChild(r.placeholder())
		for _, c := range categories {
			opt := r.Document.CreateElement("option")
			opt.SetAttribute("value", string(c))
			opt.SetText(string(c))
			sel.AppendChild(opt)
		}

		container.AppendChild(label)
		container.AppendChild(sel)
	}
}

func (r Renderer) placeholder() dom.Element {
	opt := r.Document.CreateElement("option")
	opt.SetAttribute("value", "")
	opt.SetAttribute("disabled", "")
	opt.SetAttribute("selected", "")
	opt.SetText(PlaceholderText)
	return opt
}

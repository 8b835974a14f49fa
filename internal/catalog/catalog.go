// Package catalog holds the ordered list of activity categories a user can
// pick for an itinerary slot.
package catalog

// Category is a single selectable activity category.
type Category string

var defaultCategories = []Category{
	"Random",
	"Food",
	"Hiking",
	"Tours",
	"Shopping",
	"Adventure",
	"Outdoors",
}

// Catalog is an immutable, ordered set of categories.
type Catalog struct {
	categories []Category
}

// Default returns the catalog used by the activity form.
func Default() Catalog {
	return New(defaultCategories...)
}

// New builds a catalog preserving the given order. Duplicates and empty
// names are dropped.
func New(categories ...Category) Catalog {
	seen := make(map[Category]struct{}, len(categories))
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return Catalog{categories: out}
}

// Categories returns a copy of the catalog entries in order.
func (c Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Len reports the number of categories.
func (c Catalog) Len() int {
	return len(c.categories)
}

// Contains reports whether value names a category in the catalog.
func (c Catalog) Contains(value string) bool {
	for _, cat := range c.categories {
		if string(cat) == value {
			return true
		}
	}
	return false
}

// Package listing implements the category filter shared by the portfolio and
// blog list pages.
package listing

// All is the pseudo-category that selects every item.
const All = "All"

// Item is anything that can be listed and filtered.
type Item interface {
	ListID() string
	ListCategory() string
}

// Filter holds a de-duplicated collection and the selected category.
type Filter[T Item] struct {
	items      []T
	categories []string
	selected   string
}

// New merges the collections in order. When two items share an id the first one
// wins.
func New[T Item](collections ...[]T) *Filter[T] {
	f := &Filter[T]{selected: All}
	seenID := make(map[string]bool)
	seenCat := make(map[string]bool)
	f.categories = []string{All}
	for _, c := range collections {
		for _, it := range c {
			id := it.ListID()
			if seenID[id] {
				continue
			}
			seenID[id] = true
			f.items = append(f.items, it)

			cat := it.ListCategory()
			if !seenCat[cat] {
				seenCat[cat] = true
				f.categories = append(f.categories, cat)
			}
		}
	}
	return f
}

// Categories returns "All" followed by the distinct categories in first-seen
// order.
func (f *Filter[T]) Categories() []string {
	out := make([]string, len(f.categories))
	copy(out, f.categories)
	return out
}

// Items returns every item, ignoring the selection.
func (f *Filter[T]) Items() []T {
	out := make([]T, len(f.items))
	copy(out, f.items)
	return out
}

// Select changes the active category. Unknown categories are kept as-is and
// simply match nothing.
func (f *Filter[T]) Select(category string) {
	if category == "" {
		category = All
	}
	f.selected = category
}

func (f *Filter[T]) Selected() string { return f.selected }

// Visible returns the items in the selected category, in collection order.
func (f *Filter[T]) Visible() []T {
	if f.selected == All {
		return f.Items()
	}
	var out []T
	for _, it := range f.items {
		if it.ListCategory() == f.selected {
			out = append(out, it)
		}
	}
	return out
}

// Empty reports whether the selection matches nothing.
func (f *Filter[T]) Empty() bool {
	return len(f.Visible()) == 0
}

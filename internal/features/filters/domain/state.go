package domain

// Option is a facet value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Node is one level of the category tree.
type Node struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PriceRange holds the raw price bounds as typed by the buyer. Empty means unbounded.
type PriceRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CategoryPath is the four-level category selection. A level is only set when every
// level above it is set.
type CategoryPath struct {
	Category      *Node `json:"category"`
	Subcategory   *Node `json:"subcategory"`
	ChildCategory *Node `json:"childCategory"`
	Item          *Node `json:"item"`
}

// Depth returns how many levels are selected.
func (p CategoryPath) Depth() int {
	switch {
	case p.Item != nil:
		return 4
	case p.ChildCategory != nil:
		return 3
	case p.Subcategory != nil:
		return 2
	case p.Category != nil:
		return 1
	}
	return 0
}

// State is the buyer's filter and category selection. Null facets are unset.
type State struct {
	Brand      *string      `json:"brand"`
	Condition  *Option      `json:"condition"`
	Color      *string      `json:"color"`
	Material   *string      `json:"material"`
	SortBy     *string      `json:"sortBy"`
	Size       *string      `json:"size"`
	Price      PriceRange   `json:"price"`
	SearchText string       `json:"searchText"`
	Categories CategoryPath `json:"categories"`
}

// NewState returns the empty selection: every facet null, price {"", ""}, no search text
// and no category.
func NewState() State {
	return State{}
}

// IsEmpty reports whether nothing is selected.
func (s State) IsEmpty() bool {
	return s == NewState()
}

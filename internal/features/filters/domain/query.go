package domain

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// QueryParams renders the selection as product search parameters. Price bounds that are
// not non-negative numbers are left out, as are inverted ranges.
func (s State) QueryParams() url.Values {
	q := url.Values{}
	set := func(key string, v *string) {
		if v != nil {
			q.Set(key, *v)
		}
	}

	set("brand", s.Brand)
	set("color", s.Color)
	set("material", s.Material)
	set("size", s.Size)
	set("sort", s.SortBy)
	if s.Condition != nil {
		q.Set("condition", s.Condition.Value)
	}
	if text := strings.TrimSpace(s.SearchText); text != "" {
		q.Set("q", text)
	}

	from, fromOK := parsePrice(s.Price.From)
	to, toOK := parsePrice(s.Price.To)
	if fromOK && toOK && from.GreaterThan(to) {
		fromOK, toOK = false, false
	}
	if fromOK {
		q.Set("price_min", from.String())
	}
	if toOK {
		q.Set("price_max", to.String())
	}

	c := s.Categories
	for _, level := range []struct {
		key  string
		node *Node
	}{
		{"category", c.Category},
		{"subcategory", c.Subcategory},
		{"child_category", c.ChildCategory},
		{"item", c.Item},
	} {
		if level.node != nil {
			q.Set(level.key, level.node.ID)
		}
	}

	return q
}

func parsePrice(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

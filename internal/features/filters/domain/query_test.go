package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryParams_Empty(t *testing.T) {
	assert.Empty(t, NewState().QueryParams())
}

func TestQueryParams_AllFacets(t *testing.T) {
	state := mustReduce(t, fullPath(t),
		Action{Type: ActionSetBrand, Value: "Nike"},
		Action{Type: ActionSetColor, Value: "red"},
		Action{Type: ActionSetMaterial, Value: "leather"},
		Action{Type: ActionSetSortBy, Value: "newest"},
		Action{Type: ActionSetSize, Value: "M"},
		Action{Type: ActionSetCondition, Value: "used", Label: "Used"},
		Action{Type: ActionSetSearchText, Value: "  jacket "},
		Action{Type: ActionSetPrice, From: "10.50", To: "200"},
	)

	q := state.QueryParams()
	assert.Equal(t, "Nike", q.Get("brand"))
	assert.Equal(t, "red", q.Get("color"))
	assert.Equal(t, "leather", q.Get("material"))
	assert.Equal(t, "newest", q.Get("sort"))
	assert.Equal(t, "M", q.Get("size"))
	assert.Equal(t, "used", q.Get("condition"))
	assert.Equal(t, "jacket", q.Get("q"))
	assert.Equal(t, "10.5", q.Get("price_min"))
	assert.Equal(t, "200", q.Get("price_max"))
	assert.Equal(t, "c", q.Get("category"))
	assert.Equal(t, "s", q.Get("subcategory"))
	assert.Equal(t, "ch", q.Get("child_category"))
	assert.Equal(t, "i", q.Get("item"))
}

func TestQueryParams_PriceBounds(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		min, max string
	}{
		{"only min", "5", "", "5", ""},
		{"only max", "", "20", "", "20"},
		{"not a number", "cheap", "20", "", "20"},
		{"negative", "-1", "20", "", "20"},
		{"inverted", "50", "10", "", ""},
		{"equal", "10", "10", "10", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustReduce(t, NewState(), Action{Type: ActionSetPrice, From: tt.from, To: tt.to})
			q := state.QueryParams()
			assert.Equal(t, tt.min, q.Get("price_min"))
			assert.Equal(t, tt.max, q.Get("price_max"))
		})
	}
}

package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownAction is returned for action types the reducer does not handle.
	ErrUnknownAction = errors.New("unknown filter action")
	// ErrMissingParent is returned when a category level is selected before its parent.
	ErrMissingParent = errors.New("parent category not selected")
	// ErrMissingNode is returned when a category action carries no node.
	ErrMissingNode = errors.New("category node is required")
)

// ActionType names a state transition.
type ActionType string

const (
	ActionSetBrand            ActionType = "set_brand"
	ActionSetCondition        ActionType = "set_condition"
	ActionSetColor            ActionType = "set_color"
	ActionSetMaterial         ActionType = "set_material"
	ActionSetSortBy           ActionType = "set_sort_by"
	ActionSetSize             ActionType = "set_size"
	ActionSetPrice            ActionType = "set_price"
	ActionSetSearchText       ActionType = "set_search_text"
	ActionSelectCategory      ActionType = "select_category"
	ActionSelectSubcategory   ActionType = "select_subcategory"
	ActionSelectChildCategory ActionType = "select_child_category"
	ActionSelectItem          ActionType = "select_item"
	ActionClearCategory       ActionType = "clear_category"
	ActionReset               ActionType = "reset"
	ActionHomeLogoClicked     ActionType = "home_logo_clicked"
)

// Action is a dispatched change. Which fields are read depends on Type:
// facet setters read Value (empty clears the facet), set_condition also reads Label,
// set_price reads From and To, and the select_* actions read Node.
type Action struct {
	Type  ActionType `json:"type"`
	Value string     `json:"value,omitempty"`
	Label string     `json:"label,omitempty"`
	From  string     `json:"from,omitempty"`
	To    string     `json:"to,omitempty"`
	Node  *Node      `json:"node,omitempty"`
}

// Reduce applies action to state and returns the new state. state is not modified.
func Reduce(state State, action Action) (State, error) {
	next := state

	switch action.Type {
	case ActionSetBrand:
		next.Brand = optional(action.Value)
	case ActionSetColor:
		next.Color = optional(action.Value)
	case ActionSetMaterial:
		next.Material = optional(action.Value)
	case ActionSetSortBy:
		next.SortBy = optional(action.Value)
	case ActionSetSize:
		next.Size = optional(action.Value)
	case ActionSetCondition:
		next.Condition = nil
		if v := strings.TrimSpace(action.Value); v != "" {
			label := action.Label
			if label == "" {
				label = v
			}
			next.Condition = &Option{Value: v, Label: label}
		}
	case ActionSetPrice:
		next.Price = PriceRange{From: strings.TrimSpace(action.From), To: strings.TrimSpace(action.To)}
	case ActionSetSearchText:
		next.SearchText = action.Value

	case ActionSelectCategory:
		node, err := nodeOf(action)
		if err != nil {
			return state, err
		}
		next.Categories = CategoryPath{Category: node}
	case ActionSelectSubcategory:
		node, err := nodeOf(action)
		if err != nil {
			return state, err
		}
		if state.Categories.Category == nil {
			return state, fmt.Errorf("%w: select a category first", ErrMissingParent)
		}
		next.Categories = CategoryPath{Category: state.Categories.Category, Subcategory: node}
	case ActionSelectChildCategory:
		node, err := nodeOf(action)
		if err != nil {
			return state, err
		}
		if state.Categories.Subcategory == nil {
			return state, fmt.Errorf("%w: select a subcategory first", ErrMissingParent)
		}
		next.Categories = CategoryPath{
			Category:      state.Categories.Category,
			Subcategory:   state.Categories.Subcategory,
			ChildCategory: node,
		}
	case ActionSelectItem:
		node, err := nodeOf(action)
		if err != nil {
			return state, err
		}
		if state.Categories.ChildCategory == nil {
			return state, fmt.Errorf("%w: select a child category first", ErrMissingParent)
		}
		next.Categories = state.Categories
		next.Categories.Item = node
	case ActionClearCategory:
		next.Categories = CategoryPath{}

	case ActionReset, ActionHomeLogoClicked:
		return NewState(), nil

	default:
		return state, fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
	}

	return next, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func nodeOf(action Action) (*Node, error) {
	if action.Node == nil || strings.TrimSpace(action.Node.ID) == "" {
		return nil, fmt.Errorf("%w for %s", ErrMissingNode, action.Type)
	}
	node := *action.Node
	return &node, nil
}

package domain

import (
	"slices"
	"strings"
)

// RateQuote is the set of quotes returned to the checkout, cheapest first.
type RateQuote struct {
	Rates []Rate `json:"rates"`
	// Cheapest and Fastest are IDs into Rates; empty when there are no rates.
	Cheapest string `json:"cheapest,omitempty"`
	Fastest  string `json:"fastest,omitempty"`
}

// NewRateQuote orders rates by amount, then by delivery days, then by provider, and
// picks the cheapest and fastest. Rates with a negative amount are dropped.
func NewRateQuote(rates []Rate) RateQuote {
	sorted := make([]Rate, 0, len(rates))
	for _, r := range rates {
		if r.Amount.IsNegative() {
			continue
		}
		sorted = append(sorted, r)
	}

	slices.SortStableFunc(sorted, func(a, b Rate) int {
		if c := a.Amount.Cmp(b.Amount); c != 0 {
			return c
		}
		if a.EstimatedDays != b.EstimatedDays {
			return a.EstimatedDays - b.EstimatedDays
		}
		return strings.Compare(a.Provider, b.Provider)
	})

	quote := RateQuote{Rates: sorted}
	if len(sorted) == 0 {
		return quote
	}
	quote.Cheapest = sorted[0].ID

	fastest := sorted[0]
	for _, r := range sorted[1:] {
		if r.EstimatedDays > 0 && (fastest.EstimatedDays == 0 || r.EstimatedDays < fastest.EstimatedDays) {
			fastest = r
		}
	}
	quote.Fastest = fastest.ID
	return quote
}

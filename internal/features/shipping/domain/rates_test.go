package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rate(id, provider, amount string, days int) Rate {
	return Rate{ID: id, Provider: provider, Amount: decimal.RequireFromString(amount), Currency: "USD", EstimatedDays: days}
}

func TestNewRateQuote(t *testing.T) {
	quote := NewRateQuote([]Rate{
		rate("ups-ground", "ups", "12.40", 5),
		rate("fedex-2day", "fedex", "24.10", 2),
		rate("usps-priority", "usps", "12.40", 3),
		rate("broken", "dhl", "-1", 1),
	})

	ids := make([]string, 0, len(quote.Rates))
	for _, r := range quote.Rates {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"usps-priority", "ups-ground", "fedex-2day"}, ids)
	assert.Equal(t, "usps-priority", quote.Cheapest)
	assert.Equal(t, "fedex-2day", quote.Fastest)
}

func TestNewRateQuote_UnknownDeliveryDays(t *testing.T) {
	quote := NewRateQuote([]Rate{
		rate("pickup", "local", "0", 0),
		rate("ups-ground", "ups", "9.99", 4),
	})

	assert.Equal(t, "pickup", quote.Cheapest)
	assert.Equal(t, "ups-ground", quote.Fastest)
}

func TestNewRateQuote_Empty(t *testing.T) {
	quote := NewRateQuote(nil)

	assert.Empty(t, quote.Rates)
	assert.NotNil(t, quote.Rates)
	assert.Empty(t, quote.Cheapest)
	assert.Empty(t, quote.Fastest)
}

package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// maxExpiryYears bounds how far in the future a card may expire.
const maxExpiryYears = 20

// CardData is raw card-entry input. It must never be persisted or logged;
// String only reveals the last four digits.
type CardData struct {
	Number         string         `json:"number"`
	ExpMonth       int            `json:"expMonth"`
	ExpYear        int            `json:"expYear"`
	CVC            string         `json:"cvc"`
	HolderName     string         `json:"holderName"`
	BillingAddress BillingAddress `json:"billingAddress"`
}

// BillingAddress is the cardholder's billing address.
type BillingAddress struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// NormalizedNumber returns the card number with whitespace removed.
func (c CardData) NormalizedNumber() string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, c.Number)
}

// FullExpYear returns the expiry year, expanding two-digit years into the 2000s.
func (c CardData) FullExpYear() int {
	if c.ExpYear >= 0 && c.ExpYear < 100 {
		return 2000 + c.ExpYear
	}
	return c.ExpYear
}

// Last4 returns the last four digits of the card number.
func (c CardData) Last4() string {
	n := c.NormalizedNumber()
	if len(n) < 4 {
		return ""
	}
	return n[len(n)-4:]
}

// String masks the card so it is safe to print.
func (c CardData) String() string {
	return fmt.Sprintf("card ****%s", c.Last4())
}

// GoString keeps %#v from dumping the raw fields.
func (c CardData) GoString() string {
	return c.String()
}

// ValidationError names the card field that failed local validation.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// ValidateCard checks card before any network call and returns a *ValidationError
// for the first failing field. now decides which expiry dates are in the past.
func ValidateCard(card CardData, now time.Time) error {
	number := card.NormalizedNumber()
	switch {
	case number == "":
		return &ValidationError{Field: "number", Reason: "is required"}
	case !digitsOnly(number):
		return &ValidationError{Field: "number", Reason: "must contain only digits"}
	case len(number) < 13 || len(number) > 19:
		return &ValidationError{Field: "number", Reason: "must be between 13 and 19 digits"}
	case !luhnValid(number):
		return &ValidationError{Field: "number", Reason: "is not a valid card number"}
	}

	if card.ExpMonth < 1 || card.ExpMonth > 12 {
		return &ValidationError{Field: "expMonth", Reason: "must be between 1 and 12"}
	}

	year := card.FullExpYear()
	currentYear, currentMonth := now.Year(), int(now.Month())
	switch {
	case year < currentYear:
		return &ValidationError{Field: "expYear", Reason: "card has expired"}
	case year == currentYear && card.ExpMonth < currentMonth:
		return &ValidationError{Field: "expMonth", Reason: "card has expired"}
	case year > currentYear+maxExpiryYears:
		return &ValidationError{Field: "expYear", Reason: "is too far in the future"}
	}

	if n := len(card.CVC); n < 3 || n > 4 || !digitsOnly(card.CVC) {
		return &ValidationError{Field: "cvc", Reason: "must be 3 or 4 digits"}
	}

	if len([]rune(strings.TrimSpace(card.HolderName))) < 2 {
		return &ValidationError{Field: "holderName", Reason: "must be at least 2 characters"}
	}

	return nil
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// luhnValid runs the mod-10 checksum over a digits-only string.
func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

package domain

import (
	"errors"
	"strings"
)

// FallbackMessage is shown when the provider gave no usable message.
const FallbackMessage = "An unexpected error occurred. Please try again."

var userMessages = map[string]string{
	"Your card was declined.":                               "Your card was declined. Please try a different payment method.",
	"Your card has insufficient funds.":                     "Your card has insufficient funds. Please use a different card.",
	"Your card has expired.":                                "Your card has expired. Please use a different card.",
	"Your card's security code is incorrect.":               "The security code (CVC) is incorrect. Please check it and try again.",
	"Your card's expiration date is incorrect.":             "The expiration date is incorrect. Please check it and try again.",
	"Your card number is incorrect.":                        "The card number is incorrect. Please check it and try again.",
	"Your card number is invalid.":                          "The card number is invalid. Please check it and try again.",
	"Your card does not support this type of purchase.":     "This card cannot be used for this purchase. Please try a different payment method.",
	"Your card is not supported.":                           "This card type is not supported. Please try a different payment method.",
	"Your postal code is incorrect.":                        "The billing postal code is incorrect. Please check it and try again.",
	"This payment requires additional user action.":         "Your bank requires additional authentication. Please complete verification and try again.",
	"No such payment_intent.":                               "This checkout session has expired. Please start the checkout again.",

	"An error occurred while processing your card. Try again in a little bit.": "We could not process your card right now. Please try again in a moment.",
}

// UserMessage maps a provider error message to user-facing text. Unknown messages are
// returned unchanged; an empty message becomes FallbackMessage.
func UserMessage(providerMessage string) string {
	msg := strings.TrimSpace(providerMessage)
	if msg == "" {
		return FallbackMessage
	}
	if mapped, ok := userMessages[msg]; ok {
		return mapped
	}
	// The provider appends the object id to "No such ..." messages.
	if strings.HasPrefix(msg, "No such payment_intent") {
		return userMessages["No such payment_intent."]
	}
	return msg
}

// ErrInvalidClientSecret is returned when a client secret does not name a payment intent.
var ErrInvalidClientSecret = errors.New("invalid client secret")

// ProviderError is a rejection reported by the payment provider, as opposed to a
// transport failure.
type ProviderError struct {
	Message     string
	Code        string
	DeclineCode string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return "payment provider: " + e.Code + ": " + e.Message
	}
	return "payment provider: " + e.Message
}

// PaymentMethodCreationError is returned when the provider could not tokenize the card.
type PaymentMethodCreationError struct {
	ProviderMessage string
	UserMessage     string
	Err             error
}

func (e *PaymentMethodCreationError) Error() string {
	return "payment method creation failed: " + e.Err.Error()
}

func (e *PaymentMethodCreationError) Unwrap() error {
	return e.Err
}

// PaymentConfirmationError is returned when the payment intent could not be confirmed.
type PaymentConfirmationError struct {
	ProviderMessage string
	UserMessage     string
	Err             error
}

func (e *PaymentConfirmationError) Error() string {
	return "payment confirmation failed: " + e.Err.Error()
}

func (e *PaymentConfirmationError) Unwrap() error {
	return e.Err
}

// NewPaymentMethodCreationError wraps err, pulling the provider message when there is one.
func NewPaymentMethodCreationError(err error) *PaymentMethodCreationError {
	msg := providerMessage(err)
	return &PaymentMethodCreationError{ProviderMessage: msg, UserMessage: UserMessage(msg), Err: err}
}

// NewPaymentConfirmationError wraps err, pulling the provider message when there is one.
func NewPaymentConfirmationError(err error) *PaymentConfirmationError {
	msg := providerMessage(err)
	return &PaymentConfirmationError{ProviderMessage: msg, UserMessage: UserMessage(msg), Err: err}
}

func providerMessage(err error) string {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return pErr.Message
	}
	return ""
}

// IntentStatus is the state of a payment intent after confirmation.
type IntentStatus string

const (
	IntentSucceeded  IntentStatus = "succeeded"
	IntentProcessing IntentStatus = "processing"
)

// PaymentResult is the outcome of a confirmed payment.
type PaymentResult struct {
	PaymentIntentID string       `json:"paymentIntentId"`
	PaymentMethodID string       `json:"paymentMethodId"`
	Status          IntentStatus `json:"status"`
}

package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-gateway/internal/core/config"
	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/features/payments/domain"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"
	"github.com/stripe/stripe-go/v84/paymentmethod"
	"go.uber.org/zap"
)

const (
	testEnv = "test"
	liveEnv = "live"
)

var (
	errAPIKeyRequired   = errors.New("stripe api key is required")
	errInvalidStripeEnv = fmt.Errorf("stripe environment must be %q or %q", testEnv, liveEnv)
)

// StripeAdapter implements ports.Gateway with the Stripe API.
type StripeAdapter struct {
	environment string
	newKey      func() string
}

// NewStripeAdapter configures the Stripe SDK with the secret key after checking it
// matches the configured environment.
func NewStripeAdapter(cfg config.StripeConfig) (*StripeAdapter, error) {
	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if env == "" {
		env = testEnv
	}
	if env != testEnv && env != liveEnv {
		return nil, errInvalidStripeEnv
	}

	key := strings.TrimSpace(cfg.SecretKey)
	if key == "" {
		return nil, errAPIKeyRequired
	}
	if !strings.HasPrefix(key, "sk_"+env) && !strings.HasPrefix(key, "rk_"+env) {
		return nil, fmt.Errorf("stripe environment %q requires a %s secret key (sk_%s/rk_%s)", env, env, env, env)
	}

	stripe.Key = key
	logger.Named("payments").Info("Stripe client initialized", zap.String("stripe_env", env))

	return &StripeAdapter{environment: env, newKey: uuid.NewString}, nil
}

// Environment reports "test" or "live".
func (a *StripeAdapter) Environment() string {
	return a.environment
}

// CreatePaymentMethod creates a card payment method.
func (a *StripeAdapter) CreatePaymentMethod(ctx context.Context, card domain.CardData) (string, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.NormalizedNumber()),
			ExpMonth: stripe.Int64(int64(card.ExpMonth)),
			ExpYear:  stripe.Int64(int64(card.FullExpYear())),
			CVC:      stripe.String(card.CVC),
		},
		BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
			Name:    stripe.String(strings.TrimSpace(card.HolderName)),
			Address: addressParams(card.BillingAddress),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(a.newKey())

	pm, err := paymentmethod.New(params)
	if err != nil {
		return "", providerError(err)
	}
	return pm.ID, nil
}

// ConfirmPayment confirms the intent named by clientSecret with the payment method.
// Intents that end in any state other than succeeded or processing are reported as
// provider rejections.
func (a *StripeAdapter) ConfirmPayment(ctx context.Context, paymentMethodID, clientSecret string) (*domain.PaymentResult, error) {
	intentID, err := IntentIDFromSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodID),
	}
	params.Context = ctx
	params.SetIdempotencyKey(a.newKey())

	pi, err := paymentintent.Confirm(intentID, params)
	if err != nil {
		return nil, providerError(err)
	}
	return resultFromIntent(pi, paymentMethodID)
}

func resultFromIntent(pi *stripe.PaymentIntent, paymentMethodID string) (*domain.PaymentResult, error) {
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return &domain.PaymentResult{PaymentIntentID: pi.ID, PaymentMethodID: paymentMethodID, Status: domain.IntentSucceeded}, nil
	case stripe.PaymentIntentStatusProcessing:
		return &domain.PaymentResult{PaymentIntentID: pi.ID, PaymentMethodID: paymentMethodID, Status: domain.IntentProcessing}, nil
	case stripe.PaymentIntentStatusRequiresAction:
		return nil, &domain.ProviderError{Message: "This payment requires additional user action.", Code: string(pi.Status)}
	}

	if pi.LastPaymentError != nil {
		return nil, providerError(pi.LastPaymentError)
	}
	return nil, &domain.ProviderError{Message: "Payment intent ended in status " + string(pi.Status) + ".", Code: string(pi.Status)}
}

// IntentIDFromSecret extracts the payment intent id from a client secret of the form
// pi_<id>_secret_<token>.
func IntentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(strings.TrimSpace(clientSecret), "_secret_")
	if !found || !strings.HasPrefix(id, "pi_") || len(id) <= len("pi_") {
		return "", domain.ErrInvalidClientSecret
	}
	return id, nil
}

func providerError(err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) {
		return &domain.ProviderError{
			Message:     sErr.Msg,
			Code:        string(sErr.Code),
			DeclineCode: string(sErr.DeclineCode),
		}
	}
	return err
}

func addressParams(a domain.BillingAddress) *stripe.AddressParams {
	if a == (domain.BillingAddress{}) {
		return nil
	}
	params := &stripe.AddressParams{}
	set := func(dst **string, v string) {
		if v != "" {
			*dst = stripe.String(v)
		}
	}
	set(&params.Line1, a.Line1)
	set(&params.Line2, a.Line2)
	set(&params.City, a.City)
	set(&params.State, a.State)
	set(&params.PostalCode, a.PostalCode)
	set(&params.Country, a.Country)
	return params
}

package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/features/payments/domain"
	"storefront-gateway/internal/features/payments/ports"

	"github.com/juju/clock"
	"go.uber.org/zap"
)

// ErrAlreadyProcessed is returned when an auto-processed checkout is triggered again.
var ErrAlreadyProcessed = errors.New("payment already submitted for this checkout")

// Flow validates card data locally and then confirms the payment in two provider calls.
// Failures are never retried: the caller must resubmit.
type Flow struct {
	gateway ports.Gateway
	clock   clock.Clock
}

// NewFlow creates a Flow. clk decides which card expiry dates are in the past.
func NewFlow(gateway ports.Gateway, clk clock.Clock) *Flow {
	return &Flow{gateway: gateway, clock: clk}
}

// Confirm runs validation, payment method creation and intent confirmation in order.
// It returns *domain.ValidationError, *domain.PaymentMethodCreationError or
// *domain.PaymentConfirmationError on failure.
func (f *Flow) Confirm(ctx context.Context, card domain.CardData, clientSecret string) (*domain.PaymentResult, error) {
	if err := domain.ValidateCard(card, f.clock.Now()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(clientSecret) == "" {
		return nil, &domain.ValidationError{Field: "clientSecret", Reason: "is required"}
	}

	log := logger.FromContext(ctx).Named("payments")

	paymentMethodID, err := f.gateway.CreatePaymentMethod(ctx, card)
	if err != nil {
		log.Warn("Payment method creation failed", zap.Stringer("card", card), zap.Error(err))
		return nil, domain.NewPaymentMethodCreationError(err)
	}

	result, err := f.gateway.ConfirmPayment(ctx, paymentMethodID, clientSecret)
	if err != nil {
		log.Warn("Payment confirmation failed", zap.String("payment_method", paymentMethodID), zap.Error(err))
		return nil, domain.NewPaymentConfirmationError(err)
	}

	log.Info("Payment confirmed",
		zap.String("payment_intent", result.PaymentIntentID),
		zap.String("status", string(result.Status)),
	)
	return result, nil
}

// ErrCallerRequired is returned when an auto-process request carries no bearer token.
var ErrCallerRequired = errors.New("auto-processing requires an authenticated caller")

// AutoProcessor runs the flow at most once per checkout for card data carried over
// from an earlier checkout step. Marks are scoped to the caller's bearer token, so one
// buyer can neither claim nor re-arm another buyer's checkout.
type AutoProcessor struct {
	flow *Flow

	mu        sync.Mutex
	submitted map[submission]struct{}
}

type submission struct {
	token      string
	checkoutID string
}

// NewAutoProcessor creates an AutoProcessor.
func NewAutoProcessor(flow *Flow) *AutoProcessor {
	return &AutoProcessor{flow: flow, submitted: make(map[submission]struct{})}
}

func submissionFor(ctx context.Context, checkoutID string) (submission, error) {
	token := apiclient.TokenFromContext(ctx)
	if token == "" {
		return submission{}, ErrCallerRequired
	}
	return submission{token: token, checkoutID: checkoutID}, nil
}

// Process runs the flow for the caller's checkoutID. The checkout is marked as submitted
// before any provider call, so a repeated or concurrent call returns ErrAlreadyProcessed
// without touching the network. A failed attempt stays marked until Reset.
func (p *AutoProcessor) Process(ctx context.Context, checkoutID string, card domain.CardData, clientSecret string) (*domain.PaymentResult, error) {
	key, err := submissionFor(ctx, checkoutID)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if _, ok := p.submitted[key]; ok {
		p.mu.Unlock()
		return nil, ErrAlreadyProcessed
	}
	p.submitted[key] = struct{}{}
	p.mu.Unlock()

	return p.flow.Confirm(ctx, card, clientSecret)
}

// Submitted reports whether the caller's checkoutID has been auto-processed.
func (p *AutoProcessor) Submitted(ctx context.Context, checkoutID string) bool {
	key, err := submissionFor(ctx, checkoutID)
	if err != nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.submitted[key]
	return ok
}

// Reset clears the caller's submitted mark so the buyer can resubmit explicitly.
func (p *AutoProcessor) Reset(ctx context.Context, checkoutID string) error {
	key, err := submissionFor(ctx, checkoutID)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.submitted, key)
	return nil
}

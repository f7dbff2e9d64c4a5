package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/features/payments/domain"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGateway is a mock implementation of ports.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreatePaymentMethod(ctx context.Context, card domain.CardData) (string, error) {
	args := m.Called(ctx, card)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) ConfirmPayment(ctx context.Context, paymentMethodID, clientSecret string) (*domain.PaymentResult, error) {
	args := m.Called(ctx, paymentMethodID, clientSecret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}

const secret = "pi_42_secret_abc"

var succeeded = &domain.PaymentResult{PaymentIntentID: "pi_42", PaymentMethodID: "pm_1", Status: domain.IntentSucceeded}

func newFlow(gw *MockGateway) *Flow {
	return NewFlow(gw, testclock.NewClock(time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))
}

func card() domain.CardData {
	return domain.CardData{Number: "4242424242424242", ExpMonth: 6, ExpYear: 2026, CVC: "123", HolderName: "Ada"}
}

func TestFlow_Confirm_CreatesMethodBeforeConfirming(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	var order []string
	gw.On("CreatePaymentMethod", ctx, card()).Run(func(mock.Arguments) {
		order = append(order, "create")
	}).Return("pm_1", nil).Once()
	gw.On("ConfirmPayment", ctx, "pm_1", secret).Run(func(mock.Arguments) {
		order = append(order, "confirm")
	}).Return(succeeded, nil).Once()

	result, err := newFlow(gw).Confirm(ctx, card(), secret)

	require.NoError(t, err)
	assert.Equal(t, succeeded, result)
	assert.Equal(t, []string{"create", "confirm"}, order)
	gw.AssertExpectations(t)
}

func TestFlow_Confirm_ValidationMakesNoCalls(t *testing.T) {
	gw := new(MockGateway)
	bad := card()
	bad.Number = "4242424242424241"

	_, err := newFlow(gw).Confirm(context.Background(), bad, secret)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "number", vErr.Field)
	gw.AssertNotCalled(t, "CreatePaymentMethod", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlow_Confirm_MissingSecret(t *testing.T) {
	gw := new(MockGateway)

	_, err := newFlow(gw).Confirm(context.Background(), card(), " ")

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "clientSecret", vErr.Field)
	gw.AssertNotCalled(t, "CreatePaymentMethod", mock.Anything, mock.Anything)
}

func TestFlow_Confirm_CreationFailureSkipsConfirmation(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	gw.On("CreatePaymentMethod", ctx, card()).Return("", &domain.ProviderError{Message: "Your card is not supported."}).Once()

	_, err := newFlow(gw).Confirm(ctx, card(), secret)

	var cErr *domain.PaymentMethodCreationError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "Your card is not supported.", cErr.ProviderMessage)
	assert.Equal(t, "This card type is not supported. Please try a different payment method.", cErr.UserMessage)
	gw.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlow_Confirm_ConfirmationDeclined(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	gw.On("CreatePaymentMethod", ctx, card()).Return("pm_1", nil).Once()
	gw.On("ConfirmPayment", ctx, "pm_1", secret).Return(nil, &domain.ProviderError{Message: "Your card was declined.", Code: "card_declined"}).Once()

	_, err := newFlow(gw).Confirm(ctx, card(), secret)

	var cErr *domain.PaymentConfirmationError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "Your card was declined. Please try a different payment method.", cErr.UserMessage)
	gw.AssertNumberOfCalls(t, "ConfirmPayment", 1)
}

func TestFlow_Confirm_NoAutomaticRetry(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	gw.On("CreatePaymentMethod", ctx, card()).Return("pm_1", nil)
	gw.On("ConfirmPayment", ctx, "pm_1", secret).Return(nil, errors.New("connection reset"))

	_, err := newFlow(gw).Confirm(ctx, card(), secret)

	var cErr *domain.PaymentConfirmationError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, domain.FallbackMessage, cErr.UserMessage)
	gw.AssertNumberOfCalls(t, "CreatePaymentMethod", 1)
	gw.AssertNumberOfCalls(t, "ConfirmPayment", 1)
}

func TestAutoProcessor_SecondCallMakesNoNetworkCalls(t *testing.T) {
	ctx := apiclient.WithToken(context.Background(), "buyer-A")
	gw := new(MockGateway)
	gw.On("CreatePaymentMethod", ctx, card()).Return("pm_1", nil).Once()
	gw.On("ConfirmPayment", ctx, "pm_1", secret).Return(succeeded, nil).Once()
	p := NewAutoProcessor(newFlow(gw))

	_, err := p.Process(ctx, "chk_1", card(), secret)
	require.NoError(t, err)

	_, err = p.Process(ctx, "chk_1", card(), secret)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)

	gw.AssertNumberOfCalls(t, "CreatePaymentMethod", 1)
	gw.AssertNumberOfCalls(t, "ConfirmPayment", 1)
}

func TestAutoProcessor_ConcurrentTriggersSubmitOnce(t *testing.T) {
	ctx := apiclient.WithToken(context.Background(), "buyer-A")
	gw := new(MockGateway)
	gw.On("CreatePaymentMethod", ctx, card()).Return("pm_1", nil)
	gw.On("ConfirmPayment", ctx, "pm_1", secret).Return(succeeded, nil)
	p := NewAutoProcessor(newFlow(gw))

	var wg sync.WaitGroup
	var mu sync.Mutex
	already := 0
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.Process(ctx, "chk_1", card(), secret); errors.Is(err, ErrAlreadyProcessed) {
				mu.Lock()
				already++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 7, already)
	gw.AssertNumberOfCalls(t, "CreatePaymentMethod", 1)
}

func TestAutoProcessor_FailureStaysMarkedUntilReset(t *testing.T) {
	ctx := apiclient.WithToken(context.Background(), "buyer-A")
	gw := new(MockGateway)
	gw.On("CreatePaymentMethod", ctx, card()).Return("", &domain.ProviderError{Message: "Your card was declined."}).Once()
	p := NewAutoProcessor(newFlow(gw))

	_, err := p.Process(ctx, "chk_1", card(), secret)
	require.Error(t, err)
	assert.True(t, p.Submitted(ctx, "chk_1"))

	_, err = p.Process(ctx, "chk_1", card(), secret)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)

	require.NoError(t, p.Reset(ctx, "chk_1"))
	assert.False(t, p.Submitted(ctx, "chk_1"))

	gw.On("CreatePaymentMethod", ctx, card()).Return("pm_2", nil).Once()
	gw.On("ConfirmPayment", ctx, "pm_2", secret).Return(succeeded, nil).Once()
	_, err = p.Process(ctx, "chk_1", card(), secret)
	assert.NoError(t, err)
}

func TestAutoProcessor_CheckoutsAreIndependent(t *testing.T) {
	ctx := apiclient.WithToken(context.Background(), "buyer-A")
	gw := new(MockGateway)
	gw.On("CreatePaymentMethod", ctx, card()).Return("pm_1", nil)
	gw.On("ConfirmPayment", ctx, "pm_1", secret).Return(succeeded, nil)
	p := NewAutoProcessor(newFlow(gw))

	_, err := p.Process(ctx, "chk_1", card(), secret)
	require.NoError(t, err)
	_, err = p.Process(ctx, "chk_2", card(), secret)
	require.NoError(t, err)

	gw.AssertNumberOfCalls(t, "CreatePaymentMethod", 2)
}

func TestAutoProcessor_MarksAreScopedToCaller(t *testing.T) {
	buyerA := apiclient.WithToken(context.Background(), "buyer-A")
	buyerB := apiclient.WithToken(context.Background(), "buyer-B")
	gw := new(MockGateway)
	gw.On("CreatePaymentMethod", mock.Anything, card()).Return("pm_1", nil)
	gw.On("ConfirmPayment", mock.Anything, "pm_1", secret).Return(succeeded, nil)
	p := NewAutoProcessor(newFlow(gw))

	_, err := p.Process(buyerA, "chk_1", card(), secret)
	require.NoError(t, err)
	assert.False(t, p.Submitted(buyerB, "chk_1"))

	require.NoError(t, p.Reset(buyerB, "chk_1"))
	assert.True(t, p.Submitted(buyerA, "chk_1"))

	_, err = p.Process(buyerB, "chk_1", card(), secret)
	require.NoError(t, err)
	gw.AssertNumberOfCalls(t, "CreatePaymentMethod", 2)
}

func TestAutoProcessor_RequiresCallerToken(t *testing.T) {
	gw := new(MockGateway)
	p := NewAutoProcessor(newFlow(gw))

	_, err := p.Process(context.Background(), "chk_1", card(), secret)
	assert.ErrorIs(t, err, ErrCallerRequired)
	assert.ErrorIs(t, p.Reset(context.Background(), "chk_1"), ErrCallerRequired)
	assert.False(t, p.Submitted(context.Background(), "chk_1"))
	gw.AssertNotCalled(t, "CreatePaymentMethod", mock.Anything, mock.Anything)
}

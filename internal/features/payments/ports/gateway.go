package ports

import (
	"context"

	"storefront-gateway/internal/features/payments/domain"
)

// Gateway is the payment provider. Rejections are reported as *domain.ProviderError.
type Gateway interface {
	// CreatePaymentMethod tokenizes card and returns the provider's payment method handle.
	CreatePaymentMethod(ctx context.Context, card domain.CardData) (string, error)
	// ConfirmPayment confirms the payment intent identified by clientSecret with the handle.
	ConfirmPayment(ctx context.Context, paymentMethodID, clientSecret string) (*domain.PaymentResult, error)
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the order-details record returned by the marketplace backend.
type Order struct {
	// ID is the unique identifier for the order.
	ID string `json:"id"`
	// Status is the fulfillment status recorded by the backend.
	Status string `json:"status"`
	// BuyerID identifies the purchasing user.
	BuyerID string `json:"buyerId,omitempty"`
	// SellerID identifies the selling user.
	SellerID string `json:"sellerId,omitempty"`
	// Items contains the purchased products.
	Items []OrderItem `json:"items"`
	// Total is the amount charged for the order.
	Total decimal.Decimal `json:"total"`
	// Currency is the ISO currency code of Total.
	Currency string `json:"currency,omitempty"`
	// Payment holds the payment sub-record, when the backend has one.
	Payment *Payment `json:"payment,omitempty"`
	// Shipping holds the shipping sub-record, when the order has been dispatched.
	Shipping *Shipping `json:"shipping,omitempty"`
	// CreatedAt is the timestamp when the order was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp of the last change.
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItem represents an individual item within an order.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
}

// Payment is the payment sub-record of an order.
type Payment struct {
	Status string `json:"status"`
	Method string `json:"method,omitempty"`
}

// Shipping is the shipping sub-record of an order. Empty strings mean "not provided".
type Shipping struct {
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	Provider       string     `json:"provider,omitempty"`
	ShippedAt      *time.Time `json:"shippedAt,omitempty"`
	Address        string     `json:"address,omitempty"`
	City           string     `json:"city,omitempty"`
	PostalCode     string     `json:"postalCode,omitempty"`
	Country        string     `json:"country,omitempty"`
}

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	ProductID       string          `json:"productId" validate:"required"`
	Quantity        int             `json:"quantity" validate:"required,min=1"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	DeliveryOption  string          `json:"deliveryOptionId,omitempty"`
	Notes           string          `json:"notes,omitempty" validate:"max=1000"`
}

// ShippingAddress is the destination given at checkout.
type ShippingAddress struct {
	FullName   string `json:"fullName" validate:"required"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required,len=2"`
	Phone      string `json:"phone,omitempty"`
}

// StatusUpdateRequest is the payload of PUT /orders/{id}/status.
type StatusUpdateRequest struct {
	Status   string          `json:"status" validate:"required"`
	Shipping *ShippingUpdate `json:"shipping,omitempty"`
	Notes    string          `json:"notes,omitempty" validate:"max=1000"`
}

// ShippingUpdate carries carrier details when an order is marked shipped.
type ShippingUpdate struct {
	TrackingNumber string `json:"trackingNumber" validate:"required"`
	Provider       string `json:"provider" validate:"required"`
	Description    string `json:"description,omitempty"`
}

// ListOrdersQuery filters the order list.
type ListOrdersQuery struct {
	Role   string `query:"role"`
	Status string `query:"status"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// OrderList is one page of orders.
type OrderList struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
}

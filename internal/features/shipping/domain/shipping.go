package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provider is a carrier the marketplace can buy labels from.
type Provider struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Services []string `json:"services"`
	Enabled  bool     `json:"enabled"`
}

// Address is a shipping origin or destination.
type Address struct {
	Name       string `json:"name" validate:"required"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required,len=2"`
	Phone      string `json:"phone,omitempty"`
}

// Parcel describes the package. Weight is in kilograms, dimensions in centimetres.
type Parcel struct {
	Weight float64 `json:"weight" validate:"gt=0"`
	Length float64 `json:"length" validate:"gt=0"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

// RateRequest asks carriers to quote a shipment.
type RateRequest struct {
	Origin      Address  `json:"origin"`
	Destination Address  `json:"destination"`
	Parcel      Parcel   `json:"parcel"`
	Providers   []string `json:"providers,omitempty"`
}

// Rate is one carrier quote.
type Rate struct {
	ID            string          `json:"id"`
	Provider      string          `json:"provider"`
	Service       string          `json:"service"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	EstimatedDays int             `json:"estimatedDays"`
}

// CreateShipmentRequest buys a label for an order.
type CreateShipmentRequest struct {
	OrderID     string  `json:"orderId" validate:"required"`
	RateID      string  `json:"rateId,omitempty"`
	Provider    string  `json:"provider" validate:"required"`
	Service     string  `json:"service" validate:"required"`
	Origin      Address `json:"origin"`
	Destination Address `json:"destination"`
	Parcel      Parcel  `json:"parcel"`
}

// Shipment is a purchased label.
type Shipment struct {
	ID             string          `json:"id"`
	OrderID        string          `json:"orderId"`
	Provider       string          `json:"provider"`
	Service        string          `json:"service"`
	TrackingNumber string          `json:"trackingNumber"`
	LabelURL       string          `json:"labelUrl,omitempty"`
	Status         string          `json:"status"`
	Cost           decimal.Decimal `json:"cost"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// DeliveryOption is a seller-defined way of getting an item to the buyer.
type DeliveryOption struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Type          string          `json:"type"`
	Price         decimal.Decimal `json:"price"`
	EstimatedDays int             `json:"estimatedDays"`
	Regions       []string        `json:"regions,omitempty"`
	Enabled       bool            `json:"enabled"`
}

// DeliveryOptionInput is the payload for creating or replacing a delivery option.
type DeliveryOptionInput struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Description   string          `json:"description,omitempty" validate:"max=500"`
	Type          string          `json:"type" validate:"required,oneof=shipping pickup local_delivery"`
	Price         decimal.Decimal `json:"price"`
	EstimatedDays int             `json:"estimatedDays" validate:"min=0,max=90"`
	Regions       []string        `json:"regions,omitempty"`
	Enabled       bool            `json:"enabled"`
}

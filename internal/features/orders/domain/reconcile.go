package domain

import (
	"regexp"
	"slices"
	"time"

	txdomain "storefront-gateway/internal/features/transactions/domain"
)

// DeliveredMessage replaces the tracking block once an order is delivered.
const DeliveredMessage = "Your order has been delivered. Thank you for shopping with us!"

var (
	trackingNumberPattern = regexp.MustCompile(`(?i)Tracking:\s*([^\s,;]+)`)
	providerPattern       = regexp.MustCompile(`(?i)Shipped via\s+([^\s-]+)`)
)

// TrackingInfo is shipment tracking derived from the transaction history and the order record.
// Empty fields mean the information is not available from either source.
type TrackingInfo struct {
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	Provider       string     `json:"provider,omitempty"`
	Description    string     `json:"description,omitempty"`
	ShippedAt      *time.Time `json:"shippedAt,omitempty"`
}

// HasDetails reports whether there is anything to show about the shipment.
func (t TrackingInfo) HasDetails() bool {
	return t.TrackingNumber != "" || t.Description != ""
}

// CurrentStatus derives the status shown to the buyer.
// The order record is authoritative. Without it, a shipped event in the transaction
// history outranks a paid event, which outranks the raw transaction status.
func CurrentStatus(order *Order, tx *txdomain.TransactionStatus) Status {
	if order != nil {
		return ParseStatus(order.Status)
	}
	if tx != nil {
		if tx.HasHistoryStatus(string(StatusShipped)) {
			return StatusShipped
		}
		if tx.HasHistoryStatus(string(StatusPaid)) {
			return StatusPaid
		}
		return ParseStatus(tx.Status)
	}
	return StatusUnknown
}

// PaymentStatus derives the payment state shown to the buyer.
func PaymentStatus(order *Order, tx *txdomain.TransactionStatus) Status {
	if tx != nil {
		if tx.HasHistoryStatus(string(StatusPaid)) {
			return StatusPaid
		}
		if ParseStatus(tx.Status) == StatusProcessing {
			return StatusProcessing
		}
		return StatusUnknown
	}
	if order != nil && order.Payment != nil {
		return ParseStatus(order.Payment.Status)
	}
	return StatusUnknown
}

// ParseTrackingDescription extracts the tracking number and provider from a shipped
// event description such as "Shipped via fedex - Tracking: ABC123".
// Either value is empty when its marker is absent.
func ParseTrackingDescription(description string) (trackingNumber, provider string) {
	if m := trackingNumberPattern.FindStringSubmatch(description); m != nil {
		trackingNumber = m[1]
	}
	if m := providerPattern.FindStringSubmatch(description); m != nil {
		provider = m[1]
	}
	return trackingNumber, provider
}

// DeriveTracking merges tracking data from the shipped history event with the order's
// shipping record. Fields present on the order overwrite the history values; fields the
// order lacks leave the history values in place.
func DeriveTracking(order *Order, tx *txdomain.TransactionStatus) TrackingInfo {
	var info TrackingInfo

	if entry := tx.FindHistory(string(StatusShipped)); entry != nil && entry.Description != "" {
		info.Description = entry.Description
		info.TrackingNumber, info.Provider = ParseTrackingDescription(entry.Description)
		shippedAt := entry.Timestamp
		info.ShippedAt = &shippedAt
	}

	if order != nil && order.Shipping != nil {
		s := order.Shipping
		if s.TrackingNumber != "" {
			info.TrackingNumber = s.TrackingNumber
		}
		if s.Provider != "" {
			info.Provider = s.Provider
		}
		if s.ShippedAt != nil {
			shippedAt := *s.ShippedAt
			info.ShippedAt = &shippedAt
		}
	}

	return info
}

// ShippingDetails tells the view what to render in the shipping section.
type ShippingDetails struct {
	// Visible is true when the section is rendered at all.
	Visible bool `json:"visible"`
	// ShowTracking is true when the raw tracking block is rendered.
	ShowTracking bool `json:"showTracking"`
	// Message is the completion message shown instead of tracking for delivered orders.
	Message string `json:"message,omitempty"`
}

// ShippingDetailsFor decides the shipping section for a derived status.
// It is visible only for shipped or delivered orders with tracking data; delivered
// orders get a completion message instead of the tracking block.
func ShippingDetailsFor(info TrackingInfo, status Status) ShippingDetails {
	if !info.HasDetails() {
		return ShippingDetails{}
	}
	switch status {
	case StatusShipped:
		return ShippingDetails{Visible: true, ShowTracking: true}
	case StatusDelivered:
		return ShippingDetails{Visible: true, Message: DeliveredMessage}
	}
	return ShippingDetails{}
}

// Timeline returns the status history most-recent-first. The record is not modified.
func Timeline(tx *txdomain.TransactionStatus) []txdomain.StatusHistoryEntry {
	if tx == nil || len(tx.StatusHistory) == 0 {
		return []txdomain.StatusHistoryEntry{}
	}
	timeline := slices.Clone(tx.StatusHistory)
	slices.Reverse(timeline)
	return timeline
}

// RatingEligibility reports whether the buyer may rate the seller for an order.
type RatingEligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason"`
}

// CheckRatingEligibility is disabled: ratings are never offered until the product rules
// for eligibility are defined.
func CheckRatingEligibility(Status) RatingEligibility {
	return RatingEligibility{Eligible: false, Reason: "ratings are not available yet"}
}

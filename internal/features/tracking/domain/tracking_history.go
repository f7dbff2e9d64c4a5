package domain

import (
	"strings"
	"time"
)

// TrackingStatus represents the current global status of a shipment.
type TrackingStatus string

const (
	// TrackingStatusUnknown is used when the carrier reported nothing recognizable.
	TrackingStatusUnknown TrackingStatus = "unknown"
	// TrackingStatusPending indicates the label exists but the carrier has not picked it up.
	TrackingStatusPending TrackingStatus = "pending"
	// TrackingStatusInTransit indicates the shipment is moving through the carrier network.
	TrackingStatusInTransit TrackingStatus = "in_transit"
	// TrackingStatusOutForDelivery indicates the shipment is on the final delivery vehicle.
	TrackingStatusOutForDelivery TrackingStatus = "out_for_delivery"
	// TrackingStatusDelivered indicates the shipment has been delivered.
	TrackingStatusDelivered TrackingStatus = "delivered"
	// TrackingStatusException indicates there is an issue with the shipment.
	TrackingStatusException TrackingStatus = "exception"
	// TrackingStatusReturned indicates the shipment was returned to sender.
	TrackingStatusReturned TrackingStatus = "returned"
)

// ParseTrackingStatus normalizes a carrier status ("In Transit", "IN-TRANSIT", ...).
func ParseTrackingStatus(raw string) TrackingStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	switch TrackingStatus(s) {
	case TrackingStatusPending, TrackingStatusInTransit, TrackingStatusOutForDelivery,
		TrackingStatusDelivered, TrackingStatusException, TrackingStatusReturned:
		return TrackingStatus(s)
	}
	return TrackingStatusUnknown
}

// Final reports whether the shipment will not change any more.
func (s TrackingStatus) Final() bool {
	return s == TrackingStatusDelivered || s == TrackingStatusReturned
}

// TrackingHistory represents the complete tracking information for a shipment.
type TrackingHistory struct {
	// TrackingNumber is the carrier tracking number.
	TrackingNumber string `json:"trackingNumber"`
	// Provider is the carrier code.
	Provider string `json:"provider,omitempty"`
	// Status is the overall status of the shipment.
	Status TrackingStatus `json:"status"`
	// EstimatedDelivery is the carrier's delivery estimate, when known.
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	// Events contains the tracking events reported by the carrier.
	Events []TrackingEvent `json:"events"`
}

// TrackingEvent represents a single event in the shipment's tracking history.
type TrackingEvent struct {
	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`
	// Description is the carrier's text for the event.
	Description string `json:"description"`
	// Location is where the event occurred.
	Location string `json:"location,omitempty"`
	// Status is the carrier status code for this event.
	Status string `json:"status,omitempty"`
}

// Latest returns the most recent event, or nil when there are none.
func (h *TrackingHistory) Latest() *TrackingEvent {
	if h == nil || len(h.Events) == 0 {
		return nil
	}
	latest := &h.Events[0]
	for i := range h.Events[1:] {
		if h.Events[i+1].Timestamp.After(latest.Timestamp) {
			latest = &h.Events[i+1]
		}
	}
	return latest
}

// Snapshot is the last tracking result known to the gateway.
type Snapshot struct {
	History *TrackingHistory `json:"history"`
	// FetchedAt is when History was read from the backend.
	FetchedAt time.Time `json:"fetchedAt"`
	// Refreshes counts background refreshes applied since the number was first requested.
	Refreshes int `json:"refreshes"`
}

package domain

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// StatusHistoryEntry is one status change of an escrow transaction.
// Entries are append-only; their order in StatusHistory is chronological.
type StatusHistoryEntry struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description,omitempty"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
}

// TransactionStatus is the response of the transaction-status API.
type TransactionStatus struct {
	TransactionID        string               `json:"transactionId,omitempty"`
	OrderID              string               `json:"orderId,omitempty"`
	Status               string               `json:"status"`
	StatusHistory        []StatusHistoryEntry `json:"statusHistory"`
	Progress             int                  `json:"progress"`
	NextPossibleStatuses []string             `json:"nextPossibleStatuses"`
}

// UnmarshalJSON clamps Progress into [0,100].
func (t *TransactionStatus) UnmarshalJSON(data []byte) error {
	type alias TransactionStatus
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw.Progress = min(max(raw.Progress, 0), 100)
	*t = TransactionStatus(raw)
	return nil
}

// HasHistoryStatus reports whether any history entry has the given status (case-insensitive).
func (t *TransactionStatus) HasHistoryStatus(status string) bool {
	return t.FindHistory(status) != nil
}

// FindHistory returns the first history entry with the given status (case-insensitive), or nil.
func (t *TransactionStatus) FindHistory(status string) *StatusHistoryEntry {
	if t == nil {
		return nil
	}
	for i := range t.StatusHistory {
		if strings.EqualFold(t.StatusHistory[i].Status, status) {
			return &t.StatusHistory[i]
		}
	}
	return nil
}

// CanTransitionTo reports whether status is one of the next possible statuses.
func (t *TransactionStatus) CanTransitionTo(status string) bool {
	return slices.ContainsFunc(t.NextPossibleStatuses, func(s string) bool {
		return strings.EqualFold(s, status)
	})
}

// EscrowTransaction is the legacy transaction detail record.
type EscrowTransaction struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"orderId"`
	BuyerID       string     `json:"buyerId"`
	SellerID      string     `json:"sellerId"`
	Amount        string     `json:"amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	EscrowRelease *time.Time `json:"escrowReleaseDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Transitions lists the statuses a transaction may move to next.
type Transitions struct {
	CurrentStatus        string   `json:"currentStatus"`
	NextPossibleStatuses []string `json:"nextPossibleStatuses"`
}

// StatusUpdate is the payload of a transaction status change.
type StatusUpdate struct {
	Status      string `json:"status" validate:"required"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// BulkStatusUpdate changes the status of several transactions at once.
type BulkStatusUpdate struct {
	TransactionIDs []string `json:"transactionIds" validate:"required,min=1,dive,required"`
	Status         string   `json:"status" validate:"required"`
	Description    string   `json:"description,omitempty" validate:"max=500"`
}

// BulkStatusResult reports the outcome of a bulk update.
type BulkStatusResult struct {
	Updated []string          `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}

package domain

import "strings"

// Status is a normalized order or payment status.
type Status string

const (
	StatusUnknown    Status = "unknown"
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusPaid       Status = "paid"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
	StatusDisputed   Status = "disputed"
)

// ParseStatus lower-cases raw. Values outside the known set are kept as-is so the
// backend can introduce statuses without the gateway dropping them. Empty input is unknown.
func ParseStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return StatusUnknown
	}
	return Status(s)
}

// Known reports whether s is one of the declared statuses.
func (s Status) Known() bool {
	switch s {
	case StatusUnknown, StatusPending, StatusProcessing, StatusPaid, StatusShipped,
		StatusDelivered, StatusCompleted, StatusCancelled, StatusRefunded, StatusDisputed:
		return true
	}
	return false
}

// Tone is the visual emphasis used when rendering a status.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
)

// Presentation is how a status is shown to the buyer.
type Presentation struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
	Icon  string `json:"icon"`
}

// Present returns the display metadata of s.
// Keep this switch exhaustive over the declared statuses.
func (s Status) Present() Presentation {
	switch s {
	case StatusPending:
		return Presentation{Label: "Pending", Tone: ToneWarning, Icon: "clock"}
	case StatusProcessing:
		return Presentation{Label: "Processing", Tone: ToneInfo, Icon: "loader"}
	case StatusPaid:
		return Presentation{Label: "Paid", Tone: ToneInfo, Icon: "credit-card"}
	case StatusShipped:
		return Presentation{Label: "Shipped", Tone: ToneInfo, Icon: "truck"}
	case StatusDelivered:
		return Presentation{Label: "Delivered", Tone: ToneSuccess, Icon: "package-check"}
	case StatusCompleted:
		return Presentation{Label: "Completed", Tone: ToneSuccess, Icon: "check-circle"}
	case StatusCancelled:
		return Presentation{Label: "Cancelled", Tone: ToneDanger, Icon: "x-circle"}
	case StatusRefunded:
		return Presentation{Label: "Refunded", Tone: ToneNeutral, Icon: "rotate-ccw"}
	case StatusDisputed:
		return Presentation{Label: "Disputed", Tone: ToneDanger, Icon: "alert-triangle"}
	case StatusUnknown:
		return Presentation{Label: "Unknown", Tone: ToneNeutral, Icon: "help-circle"}
	}
	return Presentation{Label: titleCase(string(s)), Tone: ToneNeutral, Icon: "help-circle"}
}

func titleCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

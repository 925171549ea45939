package booking

import "fmt"

// Status represents the current state of a booking in its lifecycle.
type Status string

const (
	StatusPending         Status = "pending"
	StatusQuoteSent       Status = "quote_sent"
	StatusQuoteApproved   Status = "quote_approved"
	StatusConfirmed       Status = "confirmed"
	StatusPaymentPending  Status = "payment_pending"
	StatusPaymentPartial  Status = "payment_partial"
	StatusPaymentComplete Status = "payment_complete"
	StatusDocumentsSent   Status = "documents_sent"
	StatusInProgress      Status = "in_progress"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
	StatusRefunded        Status = "refunded"
	StatusOnHold          Status = "on_hold"
)

// validTransitions defines the state machine for booking status transitions.
// completed and refunded are terminal; cancelled can still move to refunded.
var validTransitions = map[Status][]Status{
	StatusPending:         {StatusQuoteSent, StatusCancelled, StatusOnHold},
	StatusQuoteSent:       {StatusQuoteApproved, StatusCancelled, StatusOnHold},
	StatusQuoteApproved:   {StatusConfirmed, StatusCancelled, StatusOnHold},
	StatusConfirmed:       {StatusPaymentPending, StatusCancelled},
	StatusPaymentPending:  {StatusPaymentPartial, StatusPaymentComplete, StatusCancelled},
	StatusPaymentPartial:  {StatusPaymentComplete, StatusCancelled},
	StatusPaymentComplete: {StatusDocumentsSent, StatusCancelled},
	StatusDocumentsSent:   {StatusInProgress, StatusCancelled},
	StatusInProgress:      {StatusCompleted, StatusCancelled},
	StatusCompleted:       {},
	StatusCancelled:       {StatusRefunded},
	StatusRefunded:        {},
	StatusOnHold:          {StatusPending, StatusCancelled},
}

// progressPercent maps each status to how far along the happy path it sits.
var progressPercent = map[Status]int{
	StatusPending:         10,
	StatusQuoteSent:       20,
	StatusQuoteApproved:   30,
	StatusConfirmed:       40,
	StatusPaymentPending:  50,
	StatusPaymentPartial:  60,
	StatusPaymentComplete: 75,
	StatusDocumentsSent:   85,
	StatusInProgress:      90,
	StatusCompleted:       100,
	StatusCancelled:       0,
	StatusRefunded:        0,
	StatusOnHold:          25,
}

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal next states from this status.
func (s Status) NextStatuses() []Status {
	allowed := validTransitions[s]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// ProgressPercent returns how far the booking has progressed along the workflow.
func (s Status) ProgressPercent() int {
	return progressPercent[s]
}

// IsEditable returns true if the booking can still be modified in this status.
func (s Status) IsEditable() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRefunded:
		return false
	}
	return true
}

// RequiresPayment returns true for the statuses awaiting customer payment.
func (s Status) RequiresPayment() bool {
	return s == StatusPaymentPending || s == StatusPaymentPartial
}

// CanBeCancelled returns true if the booking can be cancelled from this status.
func (s Status) CanBeCancelled() bool {
	return s.CanTransitionTo(StatusCancelled)
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Booking is the aggregate root for the booking domain. The customer contact
// fields are a snapshot taken at creation time and are never re-synced from the
// customer record afterward.
type Booking struct {
	ID               uuid.UUID
	BookingReference string
	Status           Status

	CustomerID       *uuid.UUID
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	CustomerCountry  string
	CustomerAddress  string
	EmergencyContact string

	BookingType        BookingType
	ItemID             string
	ItemName           string
	NumberOfTravelers  int
	NumberOfAdults     int
	NumberOfChildren   int
	PreferredStartDate time.Time
	PreferredEndDate   *time.Time
	TravelDuration     string

	DietaryRequirements     string
	SpecialRequests         string
	AccommodationPreference string
	BudgetRange             string
	NeedsInsurance          bool
	NeedsVisa               bool
	NeedsFlights            bool

	Travelers []Traveler

	TotalAmount     float64
	PaidAmount      float64
	RemainingAmount float64
	Currency        string
	PaymentStatus   PaymentStatus

	BookingConfirmedAt *time.Time
	TravelCompletedAt  *time.Time
	LastContactDate    *time.Time

	Priority                   Priority
	RequiresImmediateAttention bool
	IsActive                   bool
	AssignedAgent              string
	Notes                      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewFromSubmission builds a pending booking from a submission that already
// passed ValidateSubmission. The booking reference is assigned exactly once here
// and never recomputed.
func NewFromSubmission(sub Submission, customerID *uuid.UUID, now time.Time) (*Booking, error) {
	ref, err := GenerateReference()
	if err != nil {
		return nil, err
	}

	start, err := ParseDate(sub.PreferredStartDate)
	if err != nil {
		return nil, err
	}
	var end *time.Time
	if strings.TrimSpace(sub.PreferredEndDate) != "" {
		if parsed, err := ParseDate(sub.PreferredEndDate); err == nil {
			end = &parsed
		}
	}

	bookingType := BookingType(sub.BookingType)
	if !bookingType.IsValid() {
		bookingType = TypePackage
	}
	currency := sub.Currency
	if currency == "" {
		currency = "USD"
	}

	b := &Booking{
		ID:               uuid.New(),
		BookingReference: ref,
		Status:           StatusPending,

		CustomerID:       customerID,
		CustomerName:     sub.CustomerName,
		CustomerEmail:    sub.CustomerEmail,
		CustomerPhone:    sub.CustomerPhone,
		CustomerCountry:  sub.CustomerCountry,
		CustomerAddress:  sub.CustomerAddress,
		EmergencyContact: sub.EmergencyContact,

		BookingType:        bookingType,
		ItemID:             sub.ItemID,
		ItemName:           sub.ItemName,
		NumberOfTravelers:  sub.NumberOfTravelers,
		NumberOfAdults:     sub.NumberOfAdults,
		NumberOfChildren:   sub.NumberOfChildren,
		PreferredStartDate: start,
		PreferredEndDate:   end,
		TravelDuration:     TravelDuration(start, end),

		DietaryRequirements:     sub.DietaryRequirements,
		SpecialRequests:         sub.SpecialRequests,
		AccommodationPreference: sub.AccommodationPreference,
		BudgetRange:             sub.BudgetRange,
		NeedsInsurance:          sub.NeedsInsurance,
		NeedsVisa:               sub.NeedsVisa,
		NeedsFlights:            sub.NeedsFlights,

		Travelers: sub.Travelers,

		Currency: currency,
		Priority: PriorityMedium,
		IsActive: true,

		CreatedAt: now,
		UpdatedAt: now,
	}

	b.ApplyFinancials(&sub.TotalAmount, nil)
	return b, nil
}

// UpdateFields carries a partial booking update. Nil fields retain their stored
// values.
type UpdateFields struct {
	Status                     *Status
	TotalAmount                *float64
	PaidAmount                 *float64
	Currency                   *string
	Priority                   *Priority
	RequiresImmediateAttention *bool
	AssignedAgent              *string
	Notes                      *string
	SpecialRequests            *string
	ItemName                   *string
	NumberOfTravelers          *int
	NumberOfAdults             *int
	NumberOfChildren           *int
	PreferredStartDate         *time.Time
	PreferredEndDate           *time.Time
}

// ApplyUpdate merges the partial fields into the booking and recomputes every
// derived field. The financial and status triggers are independent; both may
// fire in the same update. Returns true when the status changed.
func (b *Booking) ApplyUpdate(u UpdateFields, now time.Time) bool {
	if u.Currency != nil {
		b.Currency = *u.Currency
	}
	if u.Priority != nil {
		b.Priority = *u.Priority
	}
	if u.RequiresImmediateAttention != nil {
		b.RequiresImmediateAttention = *u.RequiresImmediateAttention
	}
	if u.AssignedAgent != nil {
		b.AssignedAgent = *u.AssignedAgent
	}
	if u.Notes != nil {
		b.Notes = *u.Notes
	}
	if u.SpecialRequests != nil {
		b.SpecialRequests = *u.SpecialRequests
	}
	if u.ItemName != nil {
		b.ItemName = *u.ItemName
	}
	if u.NumberOfTravelers != nil {
		b.NumberOfTravelers = *u.NumberOfTravelers
	}
	if u.NumberOfAdults != nil {
		b.NumberOfAdults = *u.NumberOfAdults
	}
	if u.NumberOfChildren != nil {
		b.NumberOfChildren = *u.NumberOfChildren
	}
	if u.PreferredStartDate != nil || u.PreferredEndDate != nil {
		if u.PreferredStartDate != nil {
			b.PreferredStartDate = *u.PreferredStartDate
		}
		if u.PreferredEndDate != nil {
			b.PreferredEndDate = u.PreferredEndDate
		}
		b.TravelDuration = TravelDuration(b.PreferredStartDate, b.PreferredEndDate)
	}

	if u.TotalAmount != nil || u.PaidAmount != nil {
		b.ApplyFinancials(u.TotalAmount, u.PaidAmount)
	}

	statusChanged := false
	if u.Status != nil && *u.Status != b.Status {
		b.ApplyStatus(*u.Status, now)
		statusChanged = true
	}

	b.UpdatedAt = now
	return statusChanged
}

// ApplyFinancials recomputes the derived payment fields from the effective
// amounts, falling back to the stored value for whichever amount is nil.
func (b *Booking) ApplyFinancials(totalAmount, paidAmount *float64) {
	total := b.TotalAmount
	if totalAmount != nil {
		total = *totalAmount
	}
	paid := b.PaidAmount
	if paidAmount != nil {
		paid = *paidAmount
	}

	b.TotalAmount = total
	b.PaidAmount = paid
	b.RemainingAmount = total - paid
	b.PaymentStatus = DerivePaymentStatus(total, paid)
}

// ApplyStatus moves the booking into the given status and stamps lifecycle
// timestamps. Each timestamp is write-once: revisiting a status never
// overwrites an already-set value.
func (b *Booking) ApplyStatus(next Status, now time.Time) {
	b.Status = next

	contact := now
	b.LastContactDate = &contact

	if next == StatusConfirmed && b.BookingConfirmedAt == nil {
		confirmed := now
		b.BookingConfirmedAt = &confirmed
	}
	if next == StatusCompleted && b.TravelCompletedAt == nil {
		completed := now
		b.TravelCompletedAt = &completed
	}
}

// Cancel soft-deletes the booking: status cancelled, inactive, with a system
// note appended. Idempotent; a repeat cancel reports no change and appends
// nothing.
func (b *Booking) Cancel(note string, now time.Time) bool {
	if b.Status == StatusCancelled && !b.IsActive {
		return false
	}

	if b.Status != StatusCancelled {
		b.ApplyStatus(StatusCancelled, now)
	}
	b.IsActive = false
	if note != "" {
		if b.Notes != "" {
			b.Notes += "\n"
		}
		b.Notes += note
	}
	b.UpdatedAt = now
	return true
}

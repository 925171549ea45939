package booking

// Traveler is one entry in the booking's traveler roster. The roster is
// persisted as a serialized JSON string inside the booking record.
type Traveler struct {
	Name                string `json:"name"`
	Age                 *int   `json:"age,omitempty"`
	PassportNumber      string `json:"passportNumber,omitempty"`
	Nationality         string `json:"nationality,omitempty"`
	DietaryRequirements string `json:"dietaryRequirements,omitempty"`
}

// BookingType distinguishes what kind of catalog item a booking refers to.
type BookingType string

const (
	TypePackage BookingType = "package"
	TypeTrip    BookingType = "trip"
)

// IsValid returns true if the booking type is recognized.
func (t BookingType) IsValid() bool {
	return t == TypePackage || t == TypeTrip
}

// Priority classifies how urgently a booking needs agent attention.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid returns true if the priority is recognized.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// PaymentStatus is derived from the paid and total amounts, never set directly.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentComplete PaymentStatus = "complete"
)

// DerivePaymentStatus computes the payment status from the two amounts:
// nothing paid is pending, fully (or over) paid is complete, anything in
// between is partial.
func DerivePaymentStatus(totalAmount, paidAmount float64) PaymentStatus {
	switch {
	case paidAmount == 0:
		return PaymentPending
	case paidAmount >= totalAmount:
		return PaymentComplete
	default:
		return PaymentPartial
	}
}

package customer

import (
	"time"

	"github.com/google/uuid"
)

// CustomerStatus classifies a customer by booking history.
type CustomerStatus string

const (
	StatusNew       CustomerStatus = "new"
	StatusReturning CustomerStatus = "returning"
	StatusVIP       CustomerStatus = "vip"
	StatusInactive  CustomerStatus = "inactive"
)

// IsValid returns true if the customer status is recognized.
func (s CustomerStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusReturning, StatusVIP, StatusInactive:
		return true
	}
	return false
}

// Customer is one person who has submitted at least one booking, keyed by
// email (first match wins on lookup).
type Customer struct {
	ID               uuid.UUID
	Name             string
	Email            string
	Phone            string
	Country          string
	Address          string
	EmergencyContact string

	PassportNumber   string
	Nationality      string
	Preferences      string
	MarketingConsent bool

	TotalBookings   int
	TotalSpent      float64
	CustomerStatus  CustomerStatus
	LastBookingDate *time.Time
	LastContactDate *time.Time

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a customer with zeroed aggregates.
func New(name, email, phone, country, address, emergencyContact string, now time.Time) *Customer {
	return &Customer{
		ID:               uuid.New(),
		Name:             name,
		Email:            email,
		Phone:            phone,
		Country:          country,
		Address:          address,
		EmergencyContact: emergencyContact,
		TotalBookings:    0,
		TotalSpent:       0,
		CustomerStatus:   StatusNew,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// UpdateContact overwrites the contact fields with the latest submission values
// and stamps the contact date. Aggregates are untouched.
func (c *Customer) UpdateContact(name, phone, country, address, emergencyContact string, now time.Time) {
	c.Name = name
	c.Phone = phone
	c.Country = country
	c.Address = address
	c.EmergencyContact = emergencyContact
	contact := now
	c.LastContactDate = &contact
	c.UpdatedAt = now
}

// RecordBooking increments the booking aggregates after a booking for this
// customer has been persisted. The status flips to returning once the customer
// had at least one prior booking at increment time.
func (c *Customer) RecordBooking(now time.Time) {
	if c.TotalBookings > 0 {
		c.CustomerStatus = StatusReturning
	} else {
		c.CustomerStatus = StatusNew
	}
	c.TotalBookings++
	booked := now
	c.LastBookingDate = &booked
	c.UpdatedAt = now
}

package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows a booking listing. Nil/empty fields are ignored; all set
// predicates are ANDed together.
type ListFilter struct {
	Status        *Status
	BookingType   *BookingType
	CustomerEmail string
	Priority      *Priority
	IsActive      *bool
	AssignedAgent string
	SortBy        string
	SortDesc      bool
}

// BookingRepository defines the persistence contract for booking records.
type BookingRepository interface {
	// FindByID retrieves a booking by its store identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByReference retrieves a booking by its human-shareable reference.
	FindByReference(ctx context.Context, reference string) (*Booking, error)

	// List retrieves bookings matching the filter with pagination.
	List(ctx context.Context, filter ListFilter, page, limit int) ([]*Booking, int64, error)

	// ListForStats retrieves a bounded window of bookings for in-memory
	// aggregation, optionally restricted to a creation-date range.
	ListForStats(ctx context.Context, from, to *time.Time, limit int) ([]*Booking, error)

	// Save persists a new booking.
	Save(ctx context.Context, b *Booking) error

	// Update persists the full booking record (read-modify-write,
	// last-write-wins).
	Update(ctx context.Context, b *Booking) error
}

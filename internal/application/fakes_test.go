package application

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingDomain "github.com/bright-horizons-travel/service-booking/internal/domain/booking"
	customerDomain "github.com/bright-horizons-travel/service-booking/internal/domain/customer"
	"github.com/bright-horizons-travel/service-booking/internal/pkg/domain"
	"github.com/bright-horizons-travel/service-booking/internal/pkg/kafka"
	"github.com/google/uuid"
)

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*bookingDomain.Booking
	saveErr  error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uuid.UUID]*bookingDomain.Booking{}}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	clone := *bk
	return &clone, nil
}

func (r *fakeBookingRepo) FindByReference(_ context.Context, reference string) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bk := range r.bookings {
		if bk.BookingReference == reference {
			clone := *bk
			return &clone, nil
		}
	}
	return nil, domain.NewNotFoundError("Booking", reference)
}

func (r *fakeBookingRepo) List(_ context.Context, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if filter.Status != nil && bk.Status != *filter.Status {
			continue
		}
		if filter.CustomerEmail != "" && bk.CustomerEmail != filter.CustomerEmail {
			continue
		}
		if filter.IsActive != nil && bk.IsActive != *filter.IsActive {
			continue
		}
		clone := *bk
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeBookingRepo) ListForStats(_ context.Context, from, to *time.Time, limit int) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if from != nil && bk.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && bk.CreatedAt.After(*to) {
			continue
		}
		clone := *bk
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *bk
	r.bookings[bk.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *bk
	r.bookings[bk.ID] = &clone
	return nil
}

// fakeCustomerRepo is an in-memory CustomerRepository.
type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*customerDomain.Customer
	saveErr   error
	updateErr error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[uuid.UUID]*customerDomain.Customer{}}
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*customerDomain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.NewNotFoundError("Customer", id.String())
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*customerDomain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var oldest *customerDomain.Customer
	for _, c := range r.customers {
		if c.Email != email {
			continue
		}
		if oldest == nil || c.CreatedAt.Before(oldest.CreatedAt) {
			oldest = c
		}
	}
	if oldest == nil {
		return nil, domain.NewNotFoundError("Customer", email)
	}
	clone := *oldest
	return &clone, nil
}

func (r *fakeCustomerRepo) List(_ context.Context, page, limit int) ([]*customerDomain.Customer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*customerDomain.Customer
	for _, c := range r.customers {
		clone := *c
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, int64(len(all)), nil
}

func (r *fakeCustomerRepo) Save(_ context.Context, c *customerDomain.Customer) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	r.customers[c.ID] = &clone
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *customerDomain.Customer) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	r.customers[c.ID] = &clone
	return nil
}

// publishedEvent captures one PublishEvent call.
type publishedEvent struct {
	Topic string
	Event kafka.CloudEvent
}

// fakePublisher records published events, optionally failing every call.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic string, evt kafka.CloudEvent) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Event: evt})
	return nil
}

func (p *fakePublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]publishedEvent, len(p.events))
	copy(out, p.events)
	return out
}

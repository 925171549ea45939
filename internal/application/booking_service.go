package application

import (
	"context"
	"fmt"
	"time"

	bookingDomain "github.com/bright-horizons-travel/service-booking/internal/domain/booking"
	customerDomain "github.com/bright-horizons-travel/service-booking/internal/domain/customer"
	"github.com/bright-horizons-travel/service-booking/internal/events"
	"github.com/bright-horizons-travel/service-booking/internal/pkg/domain"
	"github.com/bright-horizons-travel/service-booking/internal/pkg/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const eventSource = "service-booking"

// EventPublisher publishes CloudEvents to a topic. Satisfied by kafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, evt kafka.CloudEvent) error
}

// UpdateBookingRequest carries a partial booking update. Nil fields are left
// untouched on the stored record.
type UpdateBookingRequest struct {
	Status                     *string    `json:"status"`
	TotalAmount                *float64   `json:"totalAmount"`
	PaidAmount                 *float64   `json:"paidAmount"`
	Currency                   *string    `json:"currency"`
	Priority                   *string    `json:"priority"`
	RequiresImmediateAttention *bool      `json:"requiresImmediateAttention"`
	AssignedAgent              *string    `json:"assignedAgent"`
	Notes                      *string    `json:"notes"`
	SpecialRequests            *string    `json:"specialRequests"`
	ItemName                   *string    `json:"itemName"`
	NumberOfTravelers          *int       `json:"numberOfTravelers"`
	NumberOfAdults             *int       `json:"numberOfAdults"`
	NumberOfChildren           *int       `json:"numberOfChildren"`
	PreferredStartDate         *string    `json:"preferredStartDate"`
	PreferredEndDate           *string    `json:"preferredEndDate"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID               uuid.UUID  `json:"id"`
	BookingReference string     `json:"bookingReference"`
	Status           string     `json:"status"`
	ProgressPercent  int        `json:"progressPercent"`
	Editable         bool       `json:"editable"`
	RequiresPayment  bool       `json:"requiresPayment"`
	Cancelable       bool       `json:"cancelable"`
	CustomerID       *uuid.UUID `json:"customerId,omitempty"`

	CustomerName     string `json:"customerName"`
	CustomerEmail    string `json:"customerEmail"`
	CustomerPhone    string `json:"customerPhone"`
	CustomerCountry  string `json:"customerCountry,omitempty"`
	CustomerAddress  string `json:"customerAddress,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty"`

	BookingType        string     `json:"bookingType"`
	ItemID             string     `json:"itemId"`
	ItemName           string     `json:"itemName"`
	NumberOfTravelers  int        `json:"numberOfTravelers"`
	NumberOfAdults     int        `json:"numberOfAdults"`
	NumberOfChildren   int        `json:"numberOfChildren"`
	PreferredStartDate string     `json:"preferredStartDate"`
	PreferredEndDate   string     `json:"preferredEndDate,omitempty"`
	TravelDuration     string     `json:"travelDuration"`

	DietaryRequirements     string `json:"dietaryRequirements,omitempty"`
	SpecialRequests         string `json:"specialRequests,omitempty"`
	AccommodationPreference string `json:"accommodationPreference,omitempty"`
	BudgetRange             string `json:"budgetRange,omitempty"`
	NeedsInsurance          bool   `json:"needsInsurance"`
	NeedsVisa               bool   `json:"needsVisa"`
	NeedsFlights            bool   `json:"needsFlights"`

	Travelers []bookingDomain.Traveler `json:"travelers"`

	TotalAmount     float64 `json:"totalAmount"`
	PaidAmount      float64 `json:"paidAmount"`
	RemainingAmount float64 `json:"remainingAmount"`
	Currency        string  `json:"currency"`
	PaymentStatus   string  `json:"paymentStatus"`

	BookingConfirmedAt *time.Time `json:"bookingConfirmedAt,omitempty"`
	TravelCompletedAt  *time.Time `json:"travelCompletedAt,omitempty"`
	LastContactDate    *time.Time `json:"lastContactDate,omitempty"`

	Priority                   string `json:"priority"`
	RequiresImmediateAttention bool   `json:"requiresImmediateAttention"`
	IsActive                   bool   `json:"isActive"`
	AssignedAgent              string `json:"assignedAgent,omitempty"`
	Notes                      string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingService orchestrates the booking lifecycle use cases.
type BookingService struct {
	bookings  bookingDomain.BookingRepository
	customers customerDomain.CustomerRepository
	producer  EventPublisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	customers customerDomain.CustomerRepository,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		customers: customers,
		producer:  producer,
		logger:    logger,
	}
}

// CreateBooking validates a submission, resolves the customer best-effort and
// persists a pending booking. The booking is the primary artifact: a failure on
// the customer side never aborts creation, it only leaves the booking unlinked.
func (s *BookingService) CreateBooking(ctx context.Context, sub bookingDomain.Submission) (*BookingDTO, error) {
	now := time.Now().UTC()

	result := bookingDomain.ValidateSubmission(sub, now)
	if !result.Valid {
		return nil, domain.NewValidationErrors(result.Errors)
	}

	customerID := s.resolveCustomer(ctx, sub, now)

	bk, err := bookingDomain.NewFromSubmission(sub, customerID, now)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.recordCustomerBooking(ctx, customerID)

	evt := events.BookingCreatedEvent{
		BookingID:        bk.ID,
		BookingReference: bk.BookingReference,
		CustomerEmail:    bk.CustomerEmail,
		ItemID:           bk.ItemID,
		ItemName:         bk.ItemName,
		TotalAmount:      bk.TotalAmount,
		Currency:         bk.Currency,
		OccurredAt:       time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCreated, evt)

	dto := toBookingDTO(bk)
	return &dto, nil
}

// UpdateBooking merges a partial update into the stored booking, recomputes the
// derived financial fields and stamps lifecycle timestamps on status changes.
func (s *BookingService) UpdateBooking(ctx context.Context, id uuid.UUID, req UpdateBookingRequest) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := toUpdateFields(req)
	if err != nil {
		return nil, err
	}

	fromStatus := bk.Status
	statusChanged := bk.ApplyUpdate(fields, time.Now().UTC())

	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	if statusChanged {
		evt := events.BookingStatusChangedEvent{
			BookingID:        bk.ID,
			BookingReference: bk.BookingReference,
			FromStatus:       string(fromStatus),
			ToStatus:         string(bk.Status),
			OccurredAt:       time.Now().UTC(),
		}
		s.publishEvent(ctx, events.TopicBookingEvents, events.BookingStatusChanged, evt)
	}

	dto := toBookingDTO(bk)
	return &dto, nil
}

// CancelBooking soft-deletes a booking. Always succeeds when the id exists and
// is idempotent on repeat calls.
func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID, reason string) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	note := "Booking cancelled"
	if reason != "" {
		note = "Booking cancelled: " + reason
	}

	if bk.Cancel(note, time.Now().UTC()) {
		if err := s.bookings.Update(ctx, bk); err != nil {
			return nil, err
		}

		evt := events.BookingCancelledEvent{
			BookingID:        bk.ID,
			BookingReference: bk.BookingReference,
			Reason:           reason,
			OccurredAt:       time.Now().UTC(),
		}
		s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCancelled, evt)
	}

	dto := toBookingDTO(bk)
	return &dto, nil
}

// RecordPayment adds a received amount to the booking's paid total through the
// standard update path.
func (s *BookingService) RecordPayment(ctx context.Context, id uuid.UUID, amount float64) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	paid := bk.PaidAmount + amount
	return s.UpdateBooking(ctx, id, UpdateBookingRequest{PaidAmount: &paid})
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toBookingDTO(bk)
	return &dto, nil
}

// GetBookingByReference retrieves a single booking by its booking reference.
func (s *BookingService) GetBookingByReference(ctx context.Context, reference string) (*BookingDTO, error) {
	bk, err := s.bookings.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	dto := toBookingDTO(bk)
	return &dto, nil
}

// ListBookings retrieves a filtered, paginated booking listing.
func (s *BookingService) ListBookings(ctx context.Context, filter bookingDomain.ListFilter, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.List(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// --- Customer upsert coordination ---

// resolveCustomer finds or creates the customer for a submission. Best-effort:
// any failure is logged and the booking proceeds without a linked customer.
func (s *BookingService) resolveCustomer(ctx context.Context, sub bookingDomain.Submission, now time.Time) *uuid.UUID {
	cust, err := s.customers.FindByEmail(ctx, sub.CustomerEmail)
	if err == nil {
		cust.UpdateContact(sub.CustomerName, sub.CustomerPhone, sub.CustomerCountry, sub.CustomerAddress, sub.EmergencyContact, now)
		if err := s.customers.Update(ctx, cust); err != nil {
			s.logger.Warn("failed to update customer, booking will be unlinked",
				zap.String("email", sub.CustomerEmail),
				zap.Error(err),
			)
			return nil
		}
		return &cust.ID
	}

	cust = customerDomain.New(sub.CustomerName, sub.CustomerEmail, sub.CustomerPhone, sub.CustomerCountry, sub.CustomerAddress, sub.EmergencyContact, now)
	if err := s.customers.Save(ctx, cust); err != nil {
		s.logger.Warn("failed to create customer, booking will be unlinked",
			zap.String("email", sub.CustomerEmail),
			zap.Error(err),
		)
		return nil
	}
	return &cust.ID
}

// recordCustomerBooking bumps the customer's booking aggregates after the
// booking has been persisted. Best-effort, same as resolveCustomer.
func (s *BookingService) recordCustomerBooking(ctx context.Context, customerID *uuid.UUID) {
	if customerID == nil {
		return
	}

	cust, err := s.customers.FindByID(ctx, *customerID)
	if err != nil {
		s.logger.Warn("failed to refetch customer for booking count",
			zap.String("customer_id", customerID.String()),
			zap.Error(err),
		)
		return
	}

	cust.RecordBooking(time.Now().UTC())
	if err := s.customers.Update(ctx, cust); err != nil {
		s.logger.Warn("failed to update customer booking count",
			zap.String("customer_id", customerID.String()),
			zap.Error(err),
		)
	}
}

// --- Helpers ---

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toUpdateFields(req UpdateBookingRequest) (bookingDomain.UpdateFields, error) {
	fields := bookingDomain.UpdateFields{
		TotalAmount:                req.TotalAmount,
		PaidAmount:                 req.PaidAmount,
		Currency:                   req.Currency,
		RequiresImmediateAttention: req.RequiresImmediateAttention,
		AssignedAgent:              req.AssignedAgent,
		Notes:                      req.Notes,
		SpecialRequests:            req.SpecialRequests,
		ItemName:                   req.ItemName,
		NumberOfTravelers:          req.NumberOfTravelers,
		NumberOfAdults:             req.NumberOfAdults,
		NumberOfChildren:           req.NumberOfChildren,
	}

	if req.Status != nil {
		status, err := bookingDomain.ParseStatus(*req.Status)
		if err != nil {
			return fields, domain.NewValidationError(err.Error())
		}
		fields.Status = &status
	}
	if req.Priority != nil {
		priority := bookingDomain.Priority(*req.Priority)
		if !priority.IsValid() {
			return fields, domain.NewValidationError(fmt.Sprintf("invalid priority: %s", *req.Priority))
		}
		fields.Priority = &priority
	}
	if req.PreferredStartDate != nil {
		start, err := bookingDomain.ParseDate(*req.PreferredStartDate)
		if err != nil {
			return fields, domain.NewValidationError("Preferred start date is invalid")
		}
		fields.PreferredStartDate = &start
	}
	if req.PreferredEndDate != nil {
		end, err := bookingDomain.ParseDate(*req.PreferredEndDate)
		if err != nil {
			return fields, domain.NewValidationError("Preferred end date is invalid")
		}
		fields.PreferredEndDate = &end
	}

	return fields, nil
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	endDate := ""
	if bk.PreferredEndDate != nil {
		endDate = bk.PreferredEndDate.Format(bookingDomain.DateLayout)
	}

	return BookingDTO{
		ID:               bk.ID,
		BookingReference: bk.BookingReference,
		Status:           string(bk.Status),
		ProgressPercent:  bk.Status.ProgressPercent(),
		Editable:         bk.Status.IsEditable(),
		RequiresPayment:  bk.Status.RequiresPayment(),
		Cancelable:       bk.Status.CanBeCancelled(),
		CustomerID:       bk.CustomerID,

		CustomerName:     bk.CustomerName,
		CustomerEmail:    bk.CustomerEmail,
		CustomerPhone:    bk.CustomerPhone,
		CustomerCountry:  bk.CustomerCountry,
		CustomerAddress:  bk.CustomerAddress,
		EmergencyContact: bk.EmergencyContact,

		BookingType:        string(bk.BookingType),
		ItemID:             bk.ItemID,
		ItemName:           bk.ItemName,
		NumberOfTravelers:  bk.NumberOfTravelers,
		NumberOfAdults:     bk.NumberOfAdults,
		NumberOfChildren:   bk.NumberOfChildren,
		PreferredStartDate: bk.PreferredStartDate.Format(bookingDomain.DateLayout),
		PreferredEndDate:   endDate,
		TravelDuration:     bk.TravelDuration,

		DietaryRequirements:     bk.DietaryRequirements,
		SpecialRequests:         bk.SpecialRequests,
		AccommodationPreference: bk.AccommodationPreference,
		BudgetRange:             bk.BudgetRange,
		NeedsInsurance:          bk.NeedsInsurance,
		NeedsVisa:               bk.NeedsVisa,
		NeedsFlights:            bk.NeedsFlights,

		Travelers: bk.Travelers,

		TotalAmount:     bk.TotalAmount,
		PaidAmount:      bk.PaidAmount,
		RemainingAmount: bk.RemainingAmount,
		Currency:        bk.Currency,
		PaymentStatus:   string(bk.PaymentStatus),

		BookingConfirmedAt: bk.BookingConfirmedAt,
		TravelCompletedAt:  bk.TravelCompletedAt,
		LastContactDate:    bk.LastContactDate,

		Priority:                   string(bk.Priority),
		RequiresImmediateAttention: bk.RequiresImmediateAttention,
		IsActive:                   bk.IsActive,
		AssignedAgent:              bk.AssignedAgent,
		Notes:                      bk.Notes,

		CreatedAt: bk.CreatedAt,
		UpdatedAt: bk.UpdatedAt,
	}
}

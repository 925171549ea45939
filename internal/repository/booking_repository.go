package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bookingDomain "github.com/bright-horizons-travel/service-booking/internal/domain/booking"
	"github.com/bright-horizons-travel/service-booking/internal/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// statsScanLimit bounds the window the statistics aggregator reads.
const statsScanLimit = 5000

// BookingModel is the GORM model for the bookings table. The traveler roster is
// serialized to a JSON string column and parsed back on every read.
type BookingModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BookingReference string     `gorm:"uniqueIndex;not null;size:20"`
	Status           string     `gorm:"not null;size:30;index"`
	CustomerID       *uuid.UUID `gorm:"type:uuid;index"`

	CustomerName     string `gorm:"not null;size:200"`
	CustomerEmail    string `gorm:"not null;size:320;index"`
	CustomerPhone    string `gorm:"size:50"`
	CustomerCountry  string `gorm:"size:100"`
	CustomerAddress  string `gorm:"size:500"`
	EmergencyContact string `gorm:"size:200"`

	BookingType        string     `gorm:"not null;size:20;index"`
	ItemID             string     `gorm:"not null;size:64;index"`
	ItemName           string     `gorm:"not null;size:300"`
	NumberOfTravelers  int        `gorm:"not null"`
	NumberOfAdults     int        `gorm:"not null"`
	NumberOfChildren   int        `gorm:"not null"`
	PreferredStartDate time.Time  `gorm:"not null"`
	PreferredEndDate   *time.Time `gorm:""`
	TravelDuration     string     `gorm:"size:50"`

	DietaryRequirements     string `gorm:"size:500"`
	SpecialRequests         string `gorm:"size:1000"`
	AccommodationPreference string `gorm:"size:200"`
	BudgetRange             string `gorm:"size:100"`
	NeedsInsurance          bool   `gorm:"not null;default:false"`
	NeedsVisa               bool   `gorm:"not null;default:false"`
	NeedsFlights            bool   `gorm:"not null;default:false"`

	Travelers string `gorm:"type:text"`

	TotalAmount     float64 `gorm:"not null;default:0"`
	PaidAmount      float64 `gorm:"not null;default:0"`
	RemainingAmount float64 `gorm:"not null;default:0"`
	Currency        string  `gorm:"not null;size:3;default:'USD'"`
	PaymentStatus   string  `gorm:"not null;size:20"`

	BookingConfirmedAt *time.Time `gorm:""`
	TravelCompletedAt  *time.Time `gorm:""`
	LastContactDate    *time.Time `gorm:""`

	Priority                   string `gorm:"not null;size:10;default:'medium'"`
	RequiresImmediateAttention bool   `gorm:"not null;default:false"`
	IsActive                   bool   `gorm:"not null;default:true;index"`
	AssignedAgent              string `gorm:"size:200"`
	Notes                      string `gorm:"size:2000"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// sortColumns whitelists the columns a listing can sort by.
var sortColumns = map[string]string{
	"createdAt":          "created_at",
	"preferredStartDate": "preferred_start_date",
	"totalAmount":        "total_amount",
	"status":             "status",
	"priority":           "priority",
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its store identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByReference retrieves a booking by its booking reference.
func (r *GormBookingRepository) FindByReference(ctx context.Context, reference string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("booking_reference = ?", reference).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", reference)
		}
		return nil, fmt.Errorf("failed to find booking by reference: %w", err)
	}
	return toDomainBooking(&model)
}

// List retrieves bookings matching the filter with pagination.
func (r *GormBookingRepository) List(ctx context.Context, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&BookingModel{})
	query = applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	order := "created_at DESC"
	if col, ok := sortColumns[filter.SortBy]; ok {
		direction := "ASC"
		if filter.SortDesc {
			direction = "DESC"
		}
		order = col + " " + direction
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := query.
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}

// ListForStats retrieves a bounded window of bookings for in-memory aggregation.
func (r *GormBookingRepository) ListForStats(ctx context.Context, from, to *time.Time, limit int) ([]*bookingDomain.Booking, error) {
	if limit <= 0 || limit > statsScanLimit {
		limit = statsScanLimit
	}

	query := r.db.WithContext(ctx).Model(&BookingModel{})
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	var models []BookingModel
	if err := query.
		Order("created_at ASC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings for stats: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists the full booking record. There is no optimistic locking:
// concurrent updates are last-write-wins.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return nil
}

func applyFilter(query *gorm.DB, filter bookingDomain.ListFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.BookingType != nil {
		query = query.Where("booking_type = ?", string(*filter.BookingType))
	}
	if filter.CustomerEmail != "" {
		query = query.Where("customer_email = ?", filter.CustomerEmail)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", string(*filter.Priority))
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.AssignedAgent != "" {
		query = query.Where("assigned_agent = ?", filter.AssignedAgent)
	}
	return query
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	travelers := bk.Travelers
	if travelers == nil {
		travelers = []bookingDomain.Traveler{}
	}
	// Marshal of a traveler slice cannot fail; the roster is plain data.
	travelersJSON, _ := json.Marshal(travelers)

	return &BookingModel{
		ID:               bk.ID,
		BookingReference: bk.BookingReference,
		Status:           string(bk.Status),
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
		PreferredStartDate: bk.PreferredStartDate,
		PreferredEndDate:   bk.PreferredEndDate,
		TravelDuration:     bk.TravelDuration,

		DietaryRequirements:     bk.DietaryRequirements,
		SpecialRequests:         bk.SpecialRequests,
		AccommodationPreference: bk.AccommodationPreference,
		BudgetRange:             bk.BudgetRange,
		NeedsInsurance:          bk.NeedsInsurance,
		NeedsVisa:               bk.NeedsVisa,
		NeedsFlights:            bk.NeedsFlights,

		Travelers: string(travelersJSON),

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

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}

	// A corrupt roster degrades to an empty list rather than failing the read.
	var travelers []bookingDomain.Traveler
	if m.Travelers != "" {
		if err := json.Unmarshal([]byte(m.Travelers), &travelers); err != nil {
			travelers = []bookingDomain.Traveler{}
		}
	}
	if travelers == nil {
		travelers = []bookingDomain.Traveler{}
	}

	return &bookingDomain.Booking{
		ID:               m.ID,
		BookingReference: m.BookingReference,
		Status:           status,
		CustomerID:       m.CustomerID,

		CustomerName:     m.CustomerName,
		CustomerEmail:    m.CustomerEmail,
		CustomerPhone:    m.CustomerPhone,
		CustomerCountry:  m.CustomerCountry,
		CustomerAddress:  m.CustomerAddress,
		EmergencyContact: m.EmergencyContact,

		BookingType:        bookingDomain.BookingType(m.BookingType),
		ItemID:             m.ItemID,
		ItemName:           m.ItemName,
		NumberOfTravelers:  m.NumberOfTravelers,
		NumberOfAdults:     m.NumberOfAdults,
		NumberOfChildren:   m.NumberOfChildren,
		PreferredStartDate: m.PreferredStartDate,
		PreferredEndDate:   m.PreferredEndDate,
		TravelDuration:     m.TravelDuration,

		DietaryRequirements:     m.DietaryRequirements,
		SpecialRequests:         m.SpecialRequests,
		AccommodationPreference: m.AccommodationPreference,
		BudgetRange:             m.BudgetRange,
		NeedsInsurance:          m.NeedsInsurance,
		NeedsVisa:               m.NeedsVisa,
		NeedsFlights:            m.NeedsFlights,

		Travelers: travelers,

		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		RemainingAmount: m.RemainingAmount,
		Currency:        m.Currency,
		PaymentStatus:   bookingDomain.PaymentStatus(m.PaymentStatus),

		BookingConfirmedAt: m.BookingConfirmedAt,
		TravelCompletedAt:  m.TravelCompletedAt,
		LastContactDate:    m.LastContactDate,

		Priority:                   bookingDomain.Priority(m.Priority),
		RequiresImmediateAttention: m.RequiresImmediateAttention,
		IsActive:                   m.IsActive,
		AssignedAgent:              m.AssignedAgent,
		Notes:                      m.Notes,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

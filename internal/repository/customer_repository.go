package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	customerDomain "github.com/bright-horizons-travel/service-booking/internal/domain/customer"
	"github.com/bright-horizons-travel/service-booking/internal/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerModel is the GORM model for the customers table.
type CustomerModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"not null;size:200"`
	Email            string    `gorm:"not null;size:320;index"`
	Phone            string    `gorm:"size:50"`
	Country          string    `gorm:"size:100"`
	Address          string    `gorm:"size:500"`
	EmergencyContact string    `gorm:"size:200"`

	PassportNumber   string `gorm:"size:64"`
	Nationality      string `gorm:"size:100"`
	Preferences      string `gorm:"size:1000"`
	MarketingConsent bool   `gorm:"not null;default:false"`

	TotalBookings   int        `gorm:"not null;default:0"`
	TotalSpent      float64    `gorm:"not null;default:0"`
	CustomerStatus  string     `gorm:"not null;size:20;default:'new'"`
	LastBookingDate *time.Time `gorm:""`
	LastContactDate *time.Time `gorm:""`

	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CustomerModel) TableName() string {
	return "customers"
}

// GormCustomerRepository is the GORM-based implementation of CustomerRepository.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository.
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID retrieves a customer by its store identifier.
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customerDomain.Customer, error) {
	var model CustomerModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Customer", id.String())
		}
		return nil, fmt.Errorf("failed to find customer by ID: %w", err)
	}
	return toDomainCustomer(&model), nil
}

// FindByEmail retrieves the first customer with an exact email match, oldest
// record first.
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email string) (*customerDomain.Customer, error) {
	var model CustomerModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Customer", email)
		}
		return nil, fmt.Errorf("failed to find customer by email: %w", err)
	}
	return toDomainCustomer(&model), nil
}

// List retrieves customers with pagination, newest first.
func (r *GormCustomerRepository) List(ctx context.Context, page, limit int) ([]*customerDomain.Customer, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&CustomerModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	var models []CustomerModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}

	customers := make([]*customerDomain.Customer, len(models))
	for i, m := range models {
		customers[i] = toDomainCustomer(&m)
	}
	return customers, total, nil
}

// Save persists a new customer.
func (r *GormCustomerRepository) Save(ctx context.Context, c *customerDomain.Customer) error {
	if err := r.db.WithContext(ctx).Create(toCustomerModel(c)).Error; err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

// Update persists changes to an existing customer.
func (r *GormCustomerRepository) Update(ctx context.Context, c *customerDomain.Customer) error {
	if err := r.db.WithContext(ctx).Save(toCustomerModel(c)).Error; err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

func toCustomerModel(c *customerDomain.Customer) *CustomerModel {
	return &CustomerModel{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Country:          c.Country,
		Address:          c.Address,
		EmergencyContact: c.EmergencyContact,
		PassportNumber:   c.PassportNumber,
		Nationality:      c.Nationality,
		Preferences:      c.Preferences,
		MarketingConsent: c.MarketingConsent,
		TotalBookings:    c.TotalBookings,
		TotalSpent:       c.TotalSpent,
		CustomerStatus:   string(c.CustomerStatus),
		LastBookingDate:  c.LastBookingDate,
		LastContactDate:  c.LastContactDate,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func toDomainCustomer(m *CustomerModel) *customerDomain.Customer {
	return &customerDomain.Customer{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Phone:            m.Phone,
		Country:          m.Country,
		Address:          m.Address,
		EmergencyContact: m.EmergencyContact,
		PassportNumber:   m.PassportNumber,
		Nationality:      m.Nationality,
		Preferences:      m.Preferences,
		MarketingConsent: m.MarketingConsent,
		TotalBookings:    m.TotalBookings,
		TotalSpent:       m.TotalSpent,
		CustomerStatus:   customerDomain.CustomerStatus(m.CustomerStatus),
		LastBookingDate:  m.LastBookingDate,
		LastContactDate:  m.LastContactDate,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

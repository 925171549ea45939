package application

import (
	"context"
	"time"

	customerDomain "github.com/bright-horizons-travel/service-booking/internal/domain/customer"
	"github.com/bright-horizons-travel/service-booking/internal/pkg/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerDTO is the response representation of a customer.
type CustomerDTO struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	Country          string     `json:"country,omitempty"`
	Address          string     `json:"address,omitempty"`
	EmergencyContact string     `json:"emergencyContact,omitempty"`
	PassportNumber   string     `json:"passportNumber,omitempty"`
	Nationality      string     `json:"nationality,omitempty"`
	Preferences      string     `json:"preferences,omitempty"`
	MarketingConsent bool       `json:"marketingConsent"`
	TotalBookings    int        `json:"totalBookings"`
	TotalSpent       float64    `json:"totalSpent"`
	CustomerStatus   string     `json:"customerStatus"`
	LastBookingDate  *time.Time `json:"lastBookingDate,omitempty"`
	LastContactDate  *time.Time `json:"lastContactDate,omitempty"`
	IsActive         bool       `json:"isActive"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// CustomerService serves the admin read surface over customer aggregates.
type CustomerService struct {
	customers customerDomain.CustomerRepository
	logger    *zap.Logger
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customers customerDomain.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, logger: logger}
}

// GetCustomer retrieves a single customer by ID.
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerDTO, error) {
	cust, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toCustomerDTO(cust)
	return &dto, nil
}

// ListCustomers retrieves a paginated customer listing.
func (s *CustomerService) ListCustomers(ctx context.Context, page, limit int) (*domain.PaginatedResult[CustomerDTO], error) {
	customers, total, err := s.customers.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]CustomerDTO, len(customers))
	for i, c := range customers {
		dtos[i] = toCustomerDTO(c)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

func toCustomerDTO(c *customerDomain.Customer) CustomerDTO {
	return CustomerDTO{
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
	}
}

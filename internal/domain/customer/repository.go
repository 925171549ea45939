package customer

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository defines the persistence contract for customer records.
type CustomerRepository interface {
	// FindByID retrieves a customer by its store identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByEmail retrieves the first customer with an exact email match.
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// List retrieves customers with pagination, newest first.
	List(ctx context.Context, page, limit int) ([]*Customer, int64, error)

	// Save persists a new customer.
	Save(ctx context.Context, c *Customer) error

	// Update persists changes to an existing customer.
	Update(ctx context.Context, c *Customer) error
}

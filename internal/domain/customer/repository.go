package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/domain/shared"
)

// BalanceMutation inspects and changes a customer inside the atomic balance
// update. Returning an error aborts the update and nothing is written.
type BalanceMutation func(c *Customer) error

// Repository defines customer persistence.
type Repository interface {
	shared.ShopRepository[Customer]

	// UpdateProfile persists Name, Phone and UpdatedAt only.
	UpdateProfile(ctx context.Context, c *Customer) error

	// UpdateBalance reads the customer, runs mutate and writes DueBalance,
	// TotalSpent and UpdatedAt as one all-or-nothing step. Concurrent calls
	// for the same id are serialized; calls for different ids do not block
	// each other. Returns the customer as written.
	UpdateBalance(ctx context.Context, id uuid.UUID, mutate BalanceMutation) (*Customer, error)
}

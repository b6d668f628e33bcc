package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the append-only transaction store.
type Repository interface {
	// Append stores a new entry. Entries are never rewritten.
	Append(ctx context.Context, tx *Transaction) error

	// ListForCustomer returns a shop's entries for one customer, newest first.
	ListForCustomer(ctx context.Context, shopID string, customerID uuid.UUID) ([]Transaction, error)
}

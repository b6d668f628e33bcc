package inventory

import (
	"context"

	"github.com/neardukaan/backend/internal/domain/shared"
)

// Repository defines inventory persistence. FindAllForShop orders by name.
// Save only inserts.
type Repository interface {
	shared.ShopRepository[InventoryItem]

	// Update rewrites the mutable columns of an existing item owned by
	// item.ShopID. A row that is gone, or owned by another shop, yields
	// shared.ErrNotFound and nothing is written.
	Update(ctx context.Context, item *InventoryItem) error
}

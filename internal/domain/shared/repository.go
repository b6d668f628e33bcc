package shared

import (
	"context"

	"github.com/google/uuid"
)

// ShopRepository is the base interface for repositories of shop-owned entities.
// FindByID does not filter by shop; callers verify ownership on the result so
// that absent and foreign rows can be told apart where the API needs it.
type ShopRepository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAllForShop(ctx context.Context, shopID string) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

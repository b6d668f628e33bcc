package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a base entity with a generated ID stamped at now.
func NewBaseEntity(now time.Time) BaseEntity {
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch moves UpdatedAt forward.
func (e *BaseEntity) Touch(now time.Time) {
	e.UpdatedAt = now
}

// ShopOwned is implemented by every entity that belongs to a single shop.
type ShopOwned interface {
	OwnerShopID() string
}

// CheckOwnership returns ErrForbidden when the entity belongs to another shop.
func CheckOwnership(entity ShopOwned, shopID string) error {
	if entity.OwnerShopID() != shopID {
		return ErrForbidden
	}
	return nil
}

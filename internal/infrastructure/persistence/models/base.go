package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BaseModel provides common persistence fields for all models.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// ShopModel adds the owning shop to BaseModel.
type ShopModel struct {
	BaseModel
	ShopID string `gorm:"type:varchar(128);not null;index"`
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&CustomerModel{},
		&TransactionModel{},
		&InventoryItemModel{},
	}
}

package models

import (
	"github.com/neardukaan/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for the InventoryItem domain entity.
type InventoryItemModel struct {
	ShopModel
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Quantity     int             `gorm:"not null;default:0"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpiryDate   *string         `gorm:"type:varchar(32)"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem.
func (m *InventoryItemModel) ToDomain() *inventory.InventoryItem {
	return &inventory.InventoryItem{
		BaseEntity:   m.BaseModel.ToDomain(),
		ShopID:       m.ShopID,
		Name:         m.Name,
		Quantity:     m.Quantity,
		UnitCost:     m.UnitCost,
		SellingPrice: m.SellingPrice,
		ExpiryDate:   m.ExpiryDate,
	}
}

// InventoryItemModelFromDomain creates a persistence model from a domain InventoryItem.
func InventoryItemModelFromDomain(i *inventory.InventoryItem) *InventoryItemModel {
	m := &InventoryItemModel{
		Name:         i.Name,
		Quantity:     i.Quantity,
		UnitCost:     i.UnitCost,
		SellingPrice: i.SellingPrice,
		ExpiryDate:   i.ExpiryDate,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	m.ShopID = i.ShopID
	return m
}

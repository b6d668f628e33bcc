package inventory

import (
	"time"

	"github.com/neardukaan/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents a request to add a stock line
type CreateItemRequest struct {
	Name         string
	Quantity     int
	UnitCost     decimal.Decimal
	SellingPrice decimal.Decimal
	ExpiryDate   *string
}

// UpdateItemRequest is a partial update; nil fields are unchanged.
type UpdateItemRequest = inventory.Patch

// InventoryItemResponse represents an inventory item in API responses
type InventoryItemResponse struct {
	ID           string    `json:"id"`
	ShopID       string    `json:"shopId"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	UnitCost     float64   `json:"unitCost"`
	SellingPrice float64   `json:"sellingPrice"`
	ExpiryDate   *string   `json:"expiryDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToInventoryItemResponse converts a domain InventoryItem to its response shape
func ToInventoryItemResponse(item *inventory.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:           item.ID.String(),
		ShopID:       item.ShopID,
		Name:         item.Name,
		Quantity:     item.Quantity,
		UnitCost:     item.UnitCost.InexactFloat64(),
		SellingPrice: item.SellingPrice.InexactFloat64(),
		ExpiryDate:   item.ExpiryDate,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// ToInventoryItemResponses converts a slice of domain InventoryItems
func ToInventoryItemResponses(items []inventory.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, len(items))
	for i := range items {
		out[i] = ToInventoryItemResponse(&items[i])
	}
	return out
}

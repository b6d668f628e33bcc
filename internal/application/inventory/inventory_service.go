package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/domain/inventory"
	"github.com/neardukaan/backend/internal/domain/shared"
	"github.com/neardukaan/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrItemNotFound is returned when the id does not resolve.
var ErrItemNotFound = shared.NewDomainError(shared.CodeNotFound, "Inventory item not found.")

// InventoryService handles inventory CRUD for a shop
type InventoryService struct {
	inventoryRepo inventory.Repository
	now           func() time.Time
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(inventoryRepo inventory.Repository) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Create adds a stock line
func (s *InventoryService) Create(ctx context.Context, shopID string, req CreateItemRequest) (uuid.UUID, error) {
	item, err := inventory.NewInventoryItem(shopID, req.Name, req.Quantity, req.UnitCost, req.SellingPrice, req.ExpiryDate, s.now())
	if err != nil {
		return uuid.Nil, err
	}
	if err := s.inventoryRepo.Save(ctx, item); err != nil {
		return uuid.Nil, err
	}

	logger.L(ctx).Info("Inventory item created",
		zap.String("item_id", item.ID.String()),
		zap.Int("quantity", item.Quantity),
	)
	return item.ID, nil
}

// List returns the shop's items ordered by name
func (s *InventoryService) List(ctx context.Context, shopID string) ([]InventoryItemResponse, error) {
	items, err := s.inventoryRepo.FindAllForShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return ToInventoryItemResponses(items), nil
}

// GetByID retrieves an item. An item of another shop yields ErrForbidden.
func (s *InventoryService) GetByID(ctx context.Context, shopID, rawID string) (*InventoryItemResponse, error) {
	item, err := s.load(ctx, shopID, rawID)
	if err != nil {
		return nil, err
	}
	response := ToInventoryItemResponse(item)
	return &response, nil
}

// Update applies the present fields of req
func (s *InventoryService) Update(ctx context.Context, shopID, rawID string, req UpdateItemRequest) error {
	if req.IsEmpty() {
		return shared.NewValidationError("No update data provided.")
	}
	item, err := s.load(ctx, shopID, rawID)
	if err != nil {
		return err
	}
	if err := item.Apply(req, s.now()); err != nil {
		return err
	}
	return s.inventoryRepo.Update(ctx, item)
}

// Delete removes an item
func (s *InventoryService) Delete(ctx context.Context, shopID, rawID string) error {
	item, err := s.load(ctx, shopID, rawID)
	if err != nil {
		return err
	}
	if err := s.inventoryRepo.Delete(ctx, item.ID); err != nil {
		if de, ok := shared.AsDomainError(err); ok && de.Code == shared.CodeNotFound {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

func (s *InventoryService) load(ctx context.Context, shopID, rawID string) (*inventory.InventoryItem, error) {
	id, err := inventory.ParseID(rawID)
	if err != nil {
		return nil, ErrItemNotFound
	}
	item, err := s.inventoryRepo.FindByID(ctx, id)
	if err != nil {
		if de, ok := shared.AsDomainError(err); ok && de.Code == shared.CodeNotFound {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if err := shared.CheckOwnership(item, shopID); err != nil {
		return nil, err
	}
	return item, nil
}

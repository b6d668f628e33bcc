package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/domain/inventory"
	"github.com/neardukaan/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInventoryRepository is a mock implementation of inventory.Repository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) FindAllForShop(ctx context.Context, shopID string) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepository) Update(ctx context.Context, item *inventory.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func newItem(t *testing.T, shopID, name string, qty int) *inventory.InventoryItem {
	t.Helper()
	item, err := inventory.NewInventoryItem(shopID, name, qty, decimal.NewFromInt(8), decimal.NewFromInt(10), nil, time.Now())
	require.NoError(t, err)
	return item
}

func TestInventoryService_Create(t *testing.T) {
	repo := new(MockInventoryRepository)
	svc := NewInventoryService(repo)
	expiry := "2025-12-31"

	repo.On("Save", mock.Anything, mock.MatchedBy(func(item *inventory.InventoryItem) bool {
		return item.ShopID == "shop-1" && item.Name == "Milk" && item.Quantity == 12 &&
			item.UnitCost.IsZero() && *item.ExpiryDate == expiry
	})).Return(nil)

	id, err := svc.Create(context.Background(), "shop-1", CreateItemRequest{
		Name:         "Milk",
		Quantity:     12,
		SellingPrice: decimal.NewFromInt(30),
		ExpiryDate:   &expiry,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	repo.AssertExpectations(t)
}

func TestInventoryService_CreateRejectsNegativeQuantity(t *testing.T) {
	repo := new(MockInventoryRepository)

	_, err := NewInventoryService(repo).Create(context.Background(), "shop-1", CreateItemRequest{Name: "Milk", Quantity: -1})

	de, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, shared.CodeValidation, de.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInventoryService_List(t *testing.T) {
	repo := new(MockInventoryRepository)
	repo.On("FindAllForShop", mock.Anything, "shop-1").Return([]inventory.InventoryItem{
		*newItem(t, "shop-1", "Atta", 3),
		*newItem(t, "shop-1", "Dal", 20),
	}, nil)

	list, err := NewInventoryService(repo).List(context.Background(), "shop-1")

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Atta", list[0].Name)
	assert.Equal(t, 10.0, list[0].SellingPrice)
	assert.Nil(t, list[0].ExpiryDate)
}

func TestInventoryService_Update(t *testing.T) {
	repo := new(MockInventoryRepository)
	item := newItem(t, "shop-1", "Atta", 3)
	repo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(saved *inventory.InventoryItem) bool {
		return saved.Quantity == 25 && saved.Name == "Atta"
	})).Return(nil)

	qty := 25
	err := NewInventoryService(repo).Update(context.Background(), "shop-1", item.ID.String(), UpdateItemRequest{Quantity: &qty})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestInventoryService_UpdateEmpty(t *testing.T) {
	repo := new(MockInventoryRepository)

	err := NewInventoryService(repo).Update(context.Background(), "shop-1", uuid.NewString(), UpdateItemRequest{})

	de, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "No update data provided.", de.Message)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestInventoryService_Ownership(t *testing.T) {
	repo := new(MockInventoryRepository)
	item := newItem(t, "shop-1", "Atta", 3)
	missing := uuid.New()
	repo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)
	svc := NewInventoryService(repo)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "shop-2", item.ID.String())
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, "shop-2", item.ID.String()), shared.ErrForbidden)

	_, err = svc.GetByID(ctx, "shop-1", missing.String())
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = svc.GetByID(ctx, "shop-1", "bogus")
	assert.ErrorIs(t, err, ErrItemNotFound)

	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestInventoryService_Delete(t *testing.T) {
	repo := new(MockInventoryRepository)
	item := newItem(t, "shop-1", "Atta", 3)
	repo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	repo.On("Delete", mock.Anything, item.ID).Return(nil).Once()

	require.NoError(t, NewInventoryService(repo).Delete(context.Background(), "shop-1", item.ID.String()))
	repo.AssertExpectations(t)
}

func TestInventoryService_StoreErrorPassesThrough(t *testing.T) {
	repo := new(MockInventoryRepository)
	boom := errors.New("db down")
	repo.On("FindAllForShop", mock.Anything, "shop-1").Return([]inventory.InventoryItem(nil), boom)

	_, err := NewInventoryService(repo).List(context.Background(), "shop-1")
	assert.ErrorIs(t, err, boom)
}

func TestInventoryService_UpdateAfterConcurrentDelete(t *testing.T) {
	repo := new(MockInventoryRepository)
	item := newItem(t, "shop-1", "Atta", 3)
	repo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(shared.ErrNotFound)

	qty := 1
	err := NewInventoryService(repo).Update(context.Background(), "shop-1", item.ID.String(), UpdateItemRequest{Quantity: &qty})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/domain/customer"
	"github.com/neardukaan/backend/internal/domain/shared"
	"github.com/neardukaan/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements customer.Repository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID regardless of shop
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForShop returns a shop's customers ordered by name
func (r *GormCustomerRepository) FindAllForShop(ctx context.Context, shopID string) ([]customer.Customer, error) {
	var rows []models.CustomerModel
	if err := r.db.WithContext(ctx).
		Scopes(ShopScope(shopID)).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]customer.Customer, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save inserts a new customer
func (r *GormCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	return r.db.WithContext(ctx).Create(models.CustomerModelFromDomain(c)).Error
}

// UpdateProfile writes name, phone and updated_at. Balance columns are never part of the statement.
func (r *GormCustomerRepository) UpdateProfile(ctx context.Context, c *customer.Customer) error {
	result := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":       c.Name,
			"phone":      c.Phone,
			"updated_at": c.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateBalance locks the customer row, lets mutate change it, and writes the
// balance columns before committing. An error from mutate rolls back.
func (r *GormCustomerRepository) UpdateBalance(ctx context.Context, id uuid.UUID, mutate customer.BalanceMutation) (*customer.Customer, error) {
	var updated *customer.Customer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.CustomerModel
		if err := ForUpdate(tx).First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		c := model.ToDomain()
		if err := mutate(c); err != nil {
			return err
		}

		if err := tx.Model(&models.CustomerModel{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"due_balance": c.DueBalance,
				"total_spent": c.TotalSpent,
				"updated_at":  c.UpdatedAt,
			}).Error; err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a customer. Ledger rows for the customer are kept.
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ customer.Repository = (*GormCustomerRepository)(nil)

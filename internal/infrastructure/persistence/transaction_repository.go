package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/domain/ledger"
	"github.com/neardukaan/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTransactionRepository implements ledger.Repository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Append inserts a ledger row
func (r *GormTransactionRepository) Append(ctx context.Context, tx *ledger.Transaction) error {
	return r.db.WithContext(ctx).Create(models.TransactionModelFromDomain(tx)).Error
}

// ListForCustomer returns a shop's rows for one customer, newest first
func (r *GormTransactionRepository) ListForCustomer(ctx context.Context, shopID string, customerID uuid.UUID) ([]ledger.Transaction, error) {
	var rows []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Scopes(ShopScope(shopID)).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ledger.Transaction, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

var _ ledger.Repository = (*GormTransactionRepository)(nil)

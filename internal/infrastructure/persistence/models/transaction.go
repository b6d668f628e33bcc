package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// TransactionModel is an append-only ledger row. It has no UpdatedAt.
type TransactionModel struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	ShopID     string            `gorm:"type:varchar(128);not null;index:idx_transactions_shop_customer,priority:1"`
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;index:idx_transactions_shop_customer,priority:2"`
	Type       string            `gorm:"type:varchar(32);not null"`
	Amount     decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Items      []ledger.LineItem `gorm:"type:text;serializer:json"`
	Notes      string            `gorm:"type:text"`
	CreatedAt  time.Time         `gorm:"not null;index:idx_transactions_shop_customer,priority:3"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction.
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	items := m.Items
	if items == nil {
		items = []ledger.LineItem{}
	}
	return &ledger.Transaction{
		ID:         m.ID,
		ShopID:     m.ShopID,
		CustomerID: m.CustomerID,
		Kind:       ledger.Kind(m.Type),
		Amount:     m.Amount,
		Items:      items,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
	}
}

// TransactionModelFromDomain creates a persistence model from a domain Transaction.
func TransactionModelFromDomain(t *ledger.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:         t.ID,
		ShopID:     t.ShopID,
		CustomerID: t.CustomerID,
		Type:       string(t.Kind),
		Amount:     t.Amount,
		Items:      t.Items,
		Notes:      t.Notes,
		CreatedAt:  t.CreatedAt,
	}
}

package ledger

import (
	"github.com/neardukaan/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EventTypeTransactionRecorded is published after an entry is appended.
const EventTypeTransactionRecorded = "TransactionRecorded"

// TransactionRecorded carries the entry and the balances it produced.
type TransactionRecorded struct {
	shared.BaseDomainEvent
	CustomerID    string          `json:"customer_id"`
	Kind          Kind            `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	DueBalance    decimal.Decimal `json:"due_balance"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	TransactionID string          `json:"transaction_id"`
}

// NewTransactionRecorded builds the event for tx with the resulting balances.
func NewTransactionRecorded(tx *Transaction, dueBalance, totalSpent decimal.Decimal) *TransactionRecorded {
	return &TransactionRecorded{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionRecorded, tx.CustomerID, tx.ShopID, tx.CreatedAt),
		CustomerID:      tx.CustomerID.String(),
		Kind:            tx.Kind,
		Amount:          tx.Amount,
		DueBalance:      dueBalance,
		TotalSpent:      totalSpent,
		TransactionID:   tx.ID.String(),
	}
}

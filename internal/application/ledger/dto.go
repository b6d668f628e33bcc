package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest is a validated request to record one ledger entry.
type RecordTransactionRequest struct {
	CustomerID string
	Kind       *string // nil means credit; any other value is kept verbatim
	Amount     decimal.Decimal
	Items      []ledger.LineItem
	Notes      string
}

// RecordTransactionResult describes the committed entry and the balances it produced.
type RecordTransactionResult struct {
	TransactionID uuid.UUID
	Kind          ledger.Kind
	DueBalance    decimal.Decimal
	TotalSpent    decimal.Decimal
}

// LineItemResponse is a line item in API responses.
type LineItemResponse struct {
	ID       int     `json:"id,omitempty"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID         string             `json:"id"`
	ShopID     string             `json:"shopId"`
	CustomerID string             `json:"customerId"`
	Type       string             `json:"type"`
	Amount     float64            `json:"amount"`
	Items      []LineItemResponse `json:"items"`
	Notes      string             `json:"notes"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// ToTransactionResponse converts a domain Transaction to its response shape
func ToTransactionResponse(tx *ledger.Transaction) TransactionResponse {
	items := make([]LineItemResponse, 0, len(tx.Items))
	for _, it := range tx.Items {
		items = append(items, LineItemResponse{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity.InexactFloat64(),
			Price:    it.Price.InexactFloat64(),
			Total:    it.Total.InexactFloat64(),
		})
	}
	return TransactionResponse{
		ID:         tx.ID.String(),
		ShopID:     tx.ShopID,
		CustomerID: tx.CustomerID.String(),
		Type:       string(tx.Kind),
		Amount:     tx.Amount.InexactFloat64(),
		Items:      items,
		Notes:      tx.Notes,
		CreatedAt:  tx.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain Transactions
func ToTransactionResponses(txs []ledger.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i := range txs {
		out[i] = ToTransactionResponse(&txs[i])
	}
	return out
}

package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Kind is the transaction type sent by the client as paymentType.
type Kind string

const (
	// KindCredit is goods taken on credit: the customer owes more.
	KindCredit Kind = "credit"
	// KindPayment is money received against dues.
	KindPayment Kind = "payment"
)

// DefaultKind is used when the client omits paymentType. An explicit value,
// including an empty string, is kept as sent.
const DefaultKind = KindCredit

// IsKnown reports whether the kind moves balances.
func (k Kind) IsKnown() bool {
	return k == KindCredit || k == KindPayment
}

// Deltas returns the change to due balance and total spent for amount.
// Kinds other than credit and payment ("cash", typos) change nothing.
func (k Kind) Deltas(amount decimal.Decimal) (due, spent decimal.Decimal) {
	switch k {
	case KindCredit:
		return amount, amount
	case KindPayment:
		return amount.Neg(), decimal.Zero
	default:
		return decimal.Zero, decimal.Zero
	}
}

// LineItem is one row of a credit sale as entered at the counter.
type LineItem struct {
	ID       int             `json:"id,omitempty"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// Transaction is an immutable ledger entry. There is no update or delete.
type Transaction struct {
	ID         uuid.UUID
	ShopID     string
	CustomerID uuid.UUID
	Kind       Kind
	Amount     decimal.Decimal
	Items      []LineItem
	Notes      string
	CreatedAt  time.Time
}

// NewTransaction validates and stamps a ledger entry. kind is stored
// verbatim; only credit and payment move balances.
func NewTransaction(shopID string, customerID uuid.UUID, kind Kind, amount decimal.Decimal, items []LineItem, notes string, now time.Time) (*Transaction, error) {
	if shopID == "" {
		return nil, shared.NewValidationError("Shop ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("Missing customer ID or amount.")
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if items == nil {
		items = []LineItem{}
	}

	return &Transaction{
		ID:         uuid.New(),
		ShopID:     shopID,
		CustomerID: customerID,
		Kind:       kind,
		Amount:     amount,
		Items:      items,
		Notes:      notes,
		CreatedAt:  now,
	}, nil
}

// ValidateAmount requires a strictly positive amount with at most
// shared.MoneyScale decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Amount must be greater than zero.")
	}
	if !shared.FitsMoneyScale(amount) {
		return shared.NewValidationError("Amount supports at most 4 decimal places.")
	}
	return nil
}

// OwnerShopID implements shared.ShopOwned
func (t *Transaction) OwnerShopID() string {
	return t.ShopID
}

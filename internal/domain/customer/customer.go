package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customer is a shop's customer with a running khata balance.
//
// DueBalance and TotalSpent change only through ApplyBalanceDelta inside
// Repository.UpdateBalance; profile edits touch Name and Phone only.
type Customer struct {
	shared.BaseEntity
	ShopID     string
	Name       string
	Phone      string
	DueBalance decimal.Decimal // positive = customer owes the shop
	TotalSpent decimal.Decimal // gross credit volume, payments excluded
}

// NewCustomer creates a customer with an optional opening due balance.
func NewCustomer(shopID, name, phone string, initialDue decimal.Decimal, now time.Time) (*Customer, error) {
	if shopID == "" {
		return nil, shared.NewValidationError("Shop ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return nil, shared.NewValidationError("Missing customer name or phone.")
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(now),
		ShopID:     shopID,
		Name:       name,
		Phone:      phone,
		DueBalance: initialDue,
		TotalSpent: decimal.Zero,
	}, nil
}

// OwnerShopID implements shared.ShopOwned
func (c *Customer) OwnerShopID() string {
	return c.ShopID
}

// UpdateProfile applies the non-nil fields. Balances are never touched here.
func (c *Customer) UpdateProfile(name, phone *string, now time.Time) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return shared.NewValidationError("Customer name cannot be empty.")
		}
		c.Name = n
	}
	if phone != nil {
		p := strings.TrimSpace(*phone)
		if p == "" {
			return shared.NewValidationError("Customer phone cannot be empty.")
		}
		c.Phone = p
	}
	c.Touch(now)
	return nil
}

// ApplyBalanceDelta adds the given deltas to the running counters.
func (c *Customer) ApplyBalanceDelta(due, spent decimal.Decimal, now time.Time) {
	c.DueBalance = c.DueBalance.Add(due)
	c.TotalSpent = c.TotalSpent.Add(spent)
	c.Touch(now)
}

// HasDues reports whether the customer currently owes the shop money.
func (c *Customer) HasDues() bool {
	return c.DueBalance.IsPositive()
}

// ParseID parses a customer id from a path or body value. Malformed ids
// are reported as not found.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, shared.ErrNotFound
	}
	return id, nil
}

package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	// LowStockThreshold is the quantity below which an item counts as low in stock.
	LowStockThreshold = 10
	// ExpiryWindowDays is how far ahead expiry alerts look, inclusive.
	ExpiryWindowDays = 30
	// ExpiryDateLayout is the calendar date format clients send.
	ExpiryDateLayout = "2006-01-02"
	// expiryParseLayout also accepts unpadded months and days, e.g. 2026-1-5.
	expiryParseLayout = "2006-1-2"
)

// InventoryItem is a stock line on a shop's shelf. It is independent of the ledger.
type InventoryItem struct {
	shared.BaseEntity
	ShopID       string
	Name         string
	Quantity     int
	UnitCost     decimal.Decimal
	SellingPrice decimal.Decimal
	// ExpiryDate is kept as the client sent it; nil when absent.
	ExpiryDate *string
}

// Patch carries a partial update; nil fields are left as they are.
type Patch struct {
	Name         *string
	Quantity     *int
	UnitCost     *decimal.Decimal
	SellingPrice *decimal.Decimal
	ExpiryDate   *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Quantity == nil && p.UnitCost == nil && p.SellingPrice == nil && p.ExpiryDate == nil
}

// NewInventoryItem creates a stock line.
func NewInventoryItem(shopID, name string, quantity int, unitCost, sellingPrice decimal.Decimal, expiryDate *string, now time.Time) (*InventoryItem, error) {
	if shopID == "" {
		return nil, shared.NewValidationError("Shop ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Missing item name, quantity, or selling price.")
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := validatePrices(unitCost, sellingPrice); err != nil {
		return nil, err
	}

	return &InventoryItem{
		BaseEntity:   shared.NewBaseEntity(now),
		ShopID:       shopID,
		Name:         name,
		Quantity:     quantity,
		UnitCost:     unitCost,
		SellingPrice: sellingPrice,
		ExpiryDate:   expiryDate,
	}, nil
}

// OwnerShopID implements shared.ShopOwned
func (i *InventoryItem) OwnerShopID() string {
	return i.ShopID
}

// Apply validates and applies a partial update.
func (i *InventoryItem) Apply(p Patch, now time.Time) error {
	next := *i
	if p.Name != nil {
		n := strings.TrimSpace(*p.Name)
		if n == "" {
			return shared.NewValidationError("Item name cannot be empty.")
		}
		next.Name = n
	}
	if p.Quantity != nil {
		if err := validateQuantity(*p.Quantity); err != nil {
			return err
		}
		next.Quantity = *p.Quantity
	}
	if p.UnitCost != nil {
		next.UnitCost = *p.UnitCost
	}
	if p.SellingPrice != nil {
		next.SellingPrice = *p.SellingPrice
	}
	if err := validatePrices(next.UnitCost, next.SellingPrice); err != nil {
		return err
	}
	if p.ExpiryDate != nil {
		next.ExpiryDate = p.ExpiryDate
	}
	next.Touch(now)
	*i = next
	return nil
}

// IsLowStock reports quantity strictly below LowStockThreshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity < LowStockThreshold
}

// DaysUntilExpiry returns whole calendar days from today to the expiry date.
// ok is false when the date is missing or not a year-month-day date.
func (i *InventoryItem) DaysUntilExpiry(today time.Time) (days int, ok bool) {
	if i.ExpiryDate == nil {
		return 0, false
	}
	expiry, err := time.Parse(expiryParseLayout, strings.TrimSpace(*i.ExpiryDate))
	if err != nil {
		return 0, false
	}
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(expiry.Sub(start).Hours() / 24), true
}

// ExpiresWithin reports an expiry date in [today, today+days].
func (i *InventoryItem) ExpiresWithin(today time.Time, days int) bool {
	left, ok := i.DaysUntilExpiry(today)
	return ok && left >= 0 && left <= days
}

// ParseID parses an item id; malformed ids are reported as not found.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, shared.ErrNotFound
	}
	return id, nil
}

func validateQuantity(q int) error {
	if q < 0 {
		return shared.NewValidationError("Quantity cannot be negative.")
	}
	return nil
}

func validatePrices(unitCost, sellingPrice decimal.Decimal) error {
	if unitCost.IsNegative() || sellingPrice.IsNegative() {
		return shared.NewValidationError("Prices cannot be negative.")
	}
	if !shared.FitsMoneyScale(unitCost) || !shared.FitsMoneyScale(sellingPrice) {
		return shared.NewValidationError("Prices support at most 4 decimal places.")
	}
	return nil
}

package persistence

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShopScope restricts a query to one shop's rows.
func ShopScope(shopID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("shop_id = ?", shopID)
	}
}

// ForUpdate takes an exclusive row lock on dialects that support it. SQLite
// has no row locks; its single writer connection gives the same isolation.
func ForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

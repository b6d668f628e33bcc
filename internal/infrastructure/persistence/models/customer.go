package models

import (
	"github.com/neardukaan/backend/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	ShopModel
	Name       string              `gorm:"type:varchar(200);not null;index"`
	Phone      string              `gorm:"type:varchar(50);not null"`
	DueBalance decimal.NullDecimal `gorm:"type:decimal(18,4);default:0"`
	TotalSpent decimal.NullDecimal `gorm:"type:decimal(18,4);default:0"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *customer.Customer {
	return &customer.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		ShopID:     m.ShopID,
		Name:       m.Name,
		Phone:      m.Phone,
		DueBalance: orZero(m.DueBalance),
		TotalSpent: orZero(m.TotalSpent),
	}
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *customer.Customer) *CustomerModel {
	m := &CustomerModel{
		Name:       c.Name,
		Phone:      c.Phone,
		DueBalance: decimal.NewNullDecimal(c.DueBalance),
		TotalSpent: decimal.NewNullDecimal(c.TotalSpent),
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	m.ShopID = c.ShopID
	return m
}

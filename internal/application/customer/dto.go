package customer

import (
	"time"

	"github.com/neardukaan/backend/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name       string
	Phone      string
	InitialDue decimal.Decimal
}

// UpdateCustomerRequest carries profile fields only. Balances cannot be set here.
type UpdateCustomerRequest struct {
	Name  *string
	Phone *string
}

// IsEmpty reports whether the request changes nothing.
func (r UpdateCustomerRequest) IsEmpty() bool {
	return r.Name == nil && r.Phone == nil
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID         string    `json:"id"`
	ShopID     string    `json:"shopId"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	DueBalance float64   `json:"due_balance"`
	TotalSpent float64   `json:"total_spent"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToCustomerResponse converts a domain Customer to its response shape
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID.String(),
		ShopID:     c.ShopID,
		Name:       c.Name,
		Phone:      c.Phone,
		DueBalance: c.DueBalance.InexactFloat64(),
		TotalSpent: c.TotalSpent.InexactFloat64(),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain Customers
func ToCustomerResponses(customers []customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out
}

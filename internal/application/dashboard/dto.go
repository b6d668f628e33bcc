package dashboard

import "time"

// MetricsResponse is the dashboard rollup for one shop
type MetricsResponse struct {
	TotalOutstandingDues float64 `json:"totalOutstandingDues"`
	ActiveCustomerCount  int     `json:"activeCustomerCount"`
	ItemsLowInStock      int     `json:"itemsLowInStock"`
	ExpiryAlerts         int     `json:"expiryAlerts"`
}

// Reminder types
const (
	ReminderPaymentDue      = "Payment Due"
	ReminderInventoryExpiry = "Inventory Expiry"
	ReminderLowStock        = "Low Stock"
)

// ReminderResponse is one entry on the reminders page
type ReminderResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	CustomerID   string    `json:"customerId,omitempty"`
	CustomerName string    `json:"customerName,omitempty"`
	AmountDue    float64   `json:"amountDue,omitempty"`
	ItemID       string    `json:"itemId,omitempty"`
	ItemName     string    `json:"itemName,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

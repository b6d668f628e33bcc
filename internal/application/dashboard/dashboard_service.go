// Package dashboard derives read-only rollups and reminders from a shop's
// customers and inventory. Nothing is cached; every call rescans.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/neardukaan/backend/internal/domain/customer"
	"github.com/neardukaan/backend/internal/domain/inventory"
	"github.com/neardukaan/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// DashboardService computes dashboard metrics and reminders
type DashboardService struct {
	customerRepo  customer.Repository
	inventoryRepo inventory.Repository
	location      *time.Location
	now           func() time.Time
}

// NewDashboardService creates a new DashboardService. loc decides what
// "today" means for expiry windows; nil means UTC.
func NewDashboardService(customerRepo customer.Repository, inventoryRepo inventory.Repository, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		customerRepo:  customerRepo,
		inventoryRepo: inventoryRepo,
		location:      loc,
		now:           time.Now,
	}
}

func (s *DashboardService) today() time.Time {
	return s.now().In(s.location)
}

// ComputeMetrics sums dues and counts customers, low-stock items and items
// expiring within the next 30 days.
func (s *DashboardService) ComputeMetrics(ctx context.Context, shopID string) (*MetricsResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "compute_metrics", telemetry.SpanAttrShopID, shopID)
	defer span.End()

	customers, err := s.customerRepo.FindAllForShop(ctx, shopID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	items, err := s.inventoryRepo.FindAllForShop(ctx, shopID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	totalDues := decimal.Zero
	for i := range customers {
		totalDues = totalDues.Add(customers[i].DueBalance)
	}

	today := s.today()
	var lowStock, expiring int
	for i := range items {
		if items[i].IsLowStock() {
			lowStock++
		}
		if items[i].ExpiresWithin(today, inventory.ExpiryWindowDays) {
			expiring++
		}
	}

	return &MetricsResponse{
		TotalOutstandingDues: totalDues.Round(2).InexactFloat64(),
		ActiveCustomerCount:  len(customers),
		ItemsLowInStock:      lowStock,
		ExpiryAlerts:         expiring,
	}, nil
}

// ListReminders returns payment-due reminders (largest first), then expiry
// reminders (soonest first), then low-stock reminders (fewest left first).
func (s *DashboardService) ListReminders(ctx context.Context, shopID string) ([]ReminderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "list_reminders", telemetry.SpanAttrShopID, shopID)
	defer span.End()

	customers, err := s.customerRepo.FindAllForShop(ctx, shopID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	items, err := s.inventoryRepo.FindAllForShop(ctx, shopID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	now := s.now().UTC()
	today := s.today()

	dues := make([]customer.Customer, 0, len(customers))
	for _, c := range customers {
		if c.HasDues() {
			dues = append(dues, c)
		}
	}
	sort.SliceStable(dues, func(i, j int) bool {
		return dues[i].DueBalance.GreaterThan(dues[j].DueBalance)
	})

	type expiringItem struct {
		item inventory.InventoryItem
		days int
	}
	var expiring []expiringItem
	var low []inventory.InventoryItem
	for _, it := range items {
		if days, ok := it.DaysUntilExpiry(today); ok && days >= 0 && days <= inventory.ExpiryWindowDays {
			expiring = append(expiring, expiringItem{item: it, days: days})
		}
		if it.IsLowStock() {
			low = append(low, it)
		}
	}
	sort.SliceStable(expiring, func(i, j int) bool { return expiring[i].days < expiring[j].days })
	sort.SliceStable(low, func(i, j int) bool { return low[i].Quantity < low[j].Quantity })

	reminders := make([]ReminderResponse, 0, len(dues)+len(expiring)+len(low))
	for _, c := range dues {
		reminders = append(reminders, ReminderResponse{
			ID:           "due-" + c.ID.String(),
			Type:         ReminderPaymentDue,
			CustomerID:   c.ID.String(),
			CustomerName: c.Name,
			AmountDue:    c.DueBalance.Round(2).InexactFloat64(),
			Status:       "Pending",
			CreatedAt:    now,
		})
	}
	for _, e := range expiring {
		reminders = append(reminders, ReminderResponse{
			ID:        "expiry-" + e.item.ID.String(),
			Type:      ReminderInventoryExpiry,
			ItemID:    e.item.ID.String(),
			ItemName:  e.item.Name,
			Status:    expiryStatus(e.days),
			CreatedAt: now,
		})
	}
	for _, it := range low {
		reminders = append(reminders, ReminderResponse{
			ID:        "stock-" + it.ID.String(),
			Type:      ReminderLowStock,
			ItemID:    it.ID.String(),
			ItemName:  it.Name,
			Status:    fmt.Sprintf("Only %d left", it.Quantity),
			CreatedAt: now,
		})
	}
	return reminders, nil
}

func expiryStatus(days int) string {
	switch days {
	case 0:
		return "Expires today"
	case 1:
		return "Expires in 1 day"
	default:
		return fmt.Sprintf("Expires in %d days", days)
	}
}

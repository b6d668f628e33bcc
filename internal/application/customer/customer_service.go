package customer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/domain/customer"
	"github.com/neardukaan/backend/internal/domain/shared"
	"github.com/neardukaan/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrCustomerNotFound is returned when the id does not resolve.
var ErrCustomerNotFound = shared.NewDomainError(shared.CodeNotFound, "Customer not found.")

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo customer.Repository
	now          func() time.Time
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo customer.Repository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create creates a new customer with an opening due balance
func (s *CustomerService) Create(ctx context.Context, shopID string, req CreateCustomerRequest) (uuid.UUID, error) {
	c, err := customer.NewCustomer(shopID, req.Name, req.Phone, req.InitialDue, s.now())
	if err != nil {
		return uuid.Nil, err
	}
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return uuid.Nil, err
	}

	logger.L(ctx).Info("Customer created", zap.String("customer_id", c.ID.String()))
	return c.ID, nil
}

// List returns the shop's customers ordered by name
func (s *CustomerService) List(ctx context.Context, shopID string) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.FindAllForShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(customers), nil
}

// GetByID retrieves a customer. A customer of another shop yields ErrForbidden.
func (s *CustomerService) GetByID(ctx context.Context, shopID, rawID string) (*CustomerResponse, error) {
	c, err := s.load(ctx, shopID, rawID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(c)
	return &response, nil
}

// Update changes name and/or phone. Due balance and total spent are never written here.
func (s *CustomerService) Update(ctx context.Context, shopID, rawID string, req UpdateCustomerRequest) error {
	if req.IsEmpty() {
		return shared.NewValidationError("No update data provided.")
	}
	c, err := s.load(ctx, shopID, rawID)
	if err != nil {
		return err
	}
	if err := c.UpdateProfile(req.Name, req.Phone, s.now()); err != nil {
		return err
	}
	if err := s.customerRepo.UpdateProfile(ctx, c); err != nil {
		return s.mapNotFound(err)
	}
	return nil
}

// Delete removes a customer. Ledger entries for it are kept.
func (s *CustomerService) Delete(ctx context.Context, shopID, rawID string) error {
	c, err := s.load(ctx, shopID, rawID)
	if err != nil {
		return err
	}
	if err := s.customerRepo.Delete(ctx, c.ID); err != nil {
		return s.mapNotFound(err)
	}

	logger.L(ctx).Info("Customer deleted", zap.String("customer_id", c.ID.String()))
	return nil
}

func (s *CustomerService) load(ctx context.Context, shopID, rawID string) (*customer.Customer, error) {
	id, err := customer.ParseID(rawID)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	if err := shared.CheckOwnership(c, shopID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) mapNotFound(err error) error {
	if de, ok := shared.AsDomainError(err); ok && de.Code == shared.CodeNotFound {
		return ErrCustomerNotFound
	}
	return err
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	customerapp "github.com/neardukaan/backend/internal/application/customer"
	"github.com/neardukaan/backend/internal/interfaces/http/dto"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *customerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *customerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name       *string  `json:"name" binding:"required"`
	Phone      *string  `json:"phone" binding:"required"`
	InitialDue *float64 `json:"initialDue"`
}

// UpdateCustomerRequest represents a request to update a customer profile.
// Balances are not editable here.
type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// CreateCustomerResponse is the body of a successful create
type CreateCustomerResponse struct {
	Message    string `json:"message"`
	CustomerID string `json:"customerId"`
}

// Create handles POST /api/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if !h.BindJSON(c, &req, "Missing customer name or phone.") {
		return
	}

	id, err := h.customerService.Create(c.Request.Context(), getShopID(c), customerapp.CreateCustomerRequest{
		Name:       *req.Name,
		Phone:      *req.Phone,
		InitialDue: toDecimalOrZero(req.InitialDue),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateCustomerResponse{
		Message:    "Customer added successfully.",
		CustomerID: id.String(),
	})
}

// List handles GET /api/customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context(), getShopID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetByID handles GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *gin.Context) {
	customer, err := h.customerService.GetByID(c.Request.Context(), getShopID(c), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Update handles PUT /api/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	var req UpdateCustomerRequest
	if !h.BindJSON(c, &req, "No update data provided.") {
		return
	}

	err := h.customerService.Update(c.Request.Context(), getShopID(c), c.Param("id"), customerapp.UpdateCustomerRequest{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Customer updated successfully."})
}

// Delete handles DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customerService.Delete(c.Request.Context(), getShopID(c), c.Param("id")); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Customer deleted successfully."})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	inventoryapp "github.com/neardukaan/backend/internal/application/inventory"
	"github.com/neardukaan/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles inventory-related API endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// CreateInventoryItemRequest represents a request to add a stock line
type CreateInventoryItemRequest struct {
	Name         *string  `json:"name" binding:"required"`
	Quantity     *int     `json:"quantity" binding:"required"`
	UnitCost     *float64 `json:"unitCost"`
	SellingPrice *float64 `json:"sellingPrice" binding:"required"`
	ExpiryDate   *string  `json:"expiryDate"`
}

// UpdateInventoryItemRequest is a partial update. A null field is left unchanged.
type UpdateInventoryItemRequest struct {
	Name         *string  `json:"name"`
	Quantity     *int     `json:"quantity"`
	UnitCost     *float64 `json:"unitCost"`
	SellingPrice *float64 `json:"sellingPrice"`
	ExpiryDate   *string  `json:"expiryDate"`
}

// CreateInventoryItemResponse is the body of a successful create
type CreateInventoryItemResponse struct {
	Message string `json:"message"`
	ItemID  string `json:"itemId"`
}

// Create handles POST /api/inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateInventoryItemRequest
	if !h.BindJSON(c, &req, "Missing item name, quantity, or selling price.") {
		return
	}

	id, err := h.inventoryService.Create(c.Request.Context(), getShopID(c), inventoryapp.CreateItemRequest{
		Name:         *req.Name,
		Quantity:     *req.Quantity,
		UnitCost:     toDecimalOrZero(req.UnitCost),
		SellingPrice: toDecimal(*req.SellingPrice),
		ExpiryDate:   req.ExpiryDate,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateInventoryItemResponse{
		Message: "Inventory item added successfully.",
		ItemID:  id.String(),
	})
}

// List handles GET /api/inventory
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.inventoryService.List(c.Request.Context(), getShopID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetByID handles GET /api/inventory/:id
func (h *InventoryHandler) GetByID(c *gin.Context) {
	item, err := h.inventoryService.GetByID(c.Request.Context(), getShopID(c), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Update handles PUT /api/inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	var req UpdateInventoryItemRequest
	if !h.BindJSON(c, &req, "No update data provided.") {
		return
	}

	err := h.inventoryService.Update(c.Request.Context(), getShopID(c), c.Param("id"), inventoryapp.UpdateItemRequest{
		Name:         req.Name,
		Quantity:     req.Quantity,
		UnitCost:     toDecimalPtr(req.UnitCost),
		SellingPrice: toDecimalPtr(req.SellingPrice),
		ExpiryDate:   req.ExpiryDate,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Inventory item updated successfully."})
}

// Delete handles DELETE /api/inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.inventoryService.Delete(c.Request.Context(), getShopID(c), c.Param("id")); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Inventory item deleted successfully."})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ledgerapp "github.com/neardukaan/backend/internal/application/ledger"
	"github.com/neardukaan/backend/internal/domain/ledger"
)

const msgTransactionInternal = "Internal server error during transaction."

// TransactionHandler exposes the ledger engine
type TransactionHandler struct {
	BaseHandler
	ledgerService *ledgerapp.LedgerService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(ledgerService *ledgerapp.LedgerService) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
	}
}

// LineItemRequest is one purchased line as sent by the client
type LineItemRequest struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// RecordTransactionRequest represents a credit sale or a payment
type RecordTransactionRequest struct {
	CustomerID  *string           `json:"customerId" binding:"required"`
	TotalAmount *float64          `json:"totalAmount" binding:"required"`
	PaymentType optionalString    `json:"paymentType"`
	Items       []LineItemRequest `json:"items"`
	Notes       string            `json:"notes"`
}

// RecordTransactionResponse is the body of a successful record
type RecordTransactionResponse struct {
	Message       string `json:"message"`
	Type          string `json:"type"`
	TransactionID string `json:"transactionId"`
}

// Record handles POST /api/transactions
func (h *TransactionHandler) Record(c *gin.Context) {
	var req RecordTransactionRequest
	if !h.BindJSON(c, &req, "Missing customer ID or amount.") {
		return
	}

	items := make([]ledger.LineItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = ledger.LineItem{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: toDecimal(it.Quantity),
			Price:    toDecimal(it.Price),
			Total:    toDecimal(it.Total),
		}
	}

	result, err := h.ledgerService.RecordTransaction(c.Request.Context(), getShopID(c), ledgerapp.RecordTransactionRequest{
		CustomerID: *req.CustomerID,
		Kind:       paymentKind(req.PaymentType),
		Amount:     toDecimal(*req.TotalAmount),
		Items:      items,
		Notes:      req.Notes,
	})
	if err != nil {
		h.handleError(c, err, msgTransactionInternal)
		return
	}

	c.JSON(http.StatusCreated, RecordTransactionResponse{
		Message:       "Transaction recorded successfully. Customer balance updated.",
		Type:          string(result.Kind),
		TransactionID: result.TransactionID.String(),
	})
}

// paymentKind maps paymentType to the ledger kind: nil when absent so the
// ledger default applies, "" for an explicit null, the raw string otherwise.
func paymentKind(pt optionalString) *string {
	if !pt.Present {
		return nil
	}
	if pt.Value == nil {
		empty := ""
		return &empty
	}
	return pt.Value
}

// ListByCustomer handles GET /api/transactions/:customerId
func (h *TransactionHandler) ListByCustomer(c *gin.Context) {
	transactions, err := h.ledgerService.ListTransactions(c.Request.Context(), getShopID(c), c.Param("customerId"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

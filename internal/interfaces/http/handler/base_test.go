package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/neardukaan/backend/internal/domain/shared"
	"github.com/neardukaan/backend/internal/interfaces/http/dto"
	"github.com/neardukaan/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type bindTarget struct {
	Name     *string  `json:"name" binding:"required"`
	Amount   *float64 `json:"amount"`
	Quantity *int     `json:"quantity" binding:"omitempty,gte=0"`
}

func newContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.RequestIDKey, "req-1")
	return c, w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestBindJSON(t *testing.T) {
	h := &BaseHandler{}

	cases := []struct {
		name    string
		body    string
		code    string
		message string
	}{
		{"empty body", "", dto.ErrCodeValidation, "missing"},
		{"null body", "null", dto.ErrCodeValidation, "missing"},
		{"required field absent", `{"amount": 1}`, dto.ErrCodeValidation, "missing"},
		{"wrong type", `{"name": "x", "amount": "ten"}`, dto.ErrCodeValidation, "Invalid value for field 'amount'."},
		{"top-level array", `[1, 2]`, dto.ErrCodeInvalidJSON, msgInvalidJSON},
		{"truncated", `{"name": "x"`, dto.ErrCodeInvalidJSON, msgInvalidJSON},
		{"syntax", `{name}`, dto.ErrCodeInvalidJSON, msgInvalidJSON},
		{"rule failure", `{"name": "x", "quantity": -1}`, dto.ErrCodeValidation, "quantity: Must be greater than or equal to 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newContext(http.MethodPost, tc.body)
			var req bindTarget

			ok := h.BindJSON(c, &req, "missing")

			assert.False(t, ok)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := errorBody(t, w)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.message, body.Error)
			assert.Equal(t, "req-1", body.RequestID)
		})
	}

	t.Run("valid body", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, `{"name": "Rice", "amount": 12.5}`)
		var req bindTarget

		require.True(t, h.BindJSON(c, &req, "missing"))
		assert.Equal(t, "Rice", *req.Name)
		assert.InDelta(t, 12.5, *req.Amount, 1e-9)
	})

	t.Run("oversized body", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "")
		c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{"name": "`+strings.Repeat("x", 64)+`"}`)))
		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, 16)
		var req bindTarget

		assert.False(t, h.BindJSON(c, &req, "missing"))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, dto.ErrCodeRequestTooLarge, errorBody(t, w).Code)
	})
}

func TestHandleDomainError(t *testing.T) {
	h := &BaseHandler{}

	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", shared.NewValidationError("Missing customer name or phone."), http.StatusBadRequest, dto.ErrCodeValidation, "Missing customer name or phone."},
		{"not found", shared.NewDomainError(shared.CodeNotFound, "Customer not found."), http.StatusNotFound, dto.ErrCodeNotFound, "Customer not found."},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, dto.ErrCodeForbidden, "Unauthorized access."},
		{"wrapped", fmt.Errorf("load: %w", shared.ErrForbidden), http.StatusForbidden, dto.ErrCodeForbidden, "Unauthorized access."},
		{"store failure", errors.New("pq: connection reset by peer"), http.StatusInternalServerError, dto.ErrCodeInternal, msgInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newContext(http.MethodGet, "")

			h.HandleDomainError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			body := errorBody(t, w)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.message, body.Error)
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}

	t.Run("custom internal message", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "")

		h.handleError(c, errors.New("boom"), msgTransactionInternal)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error during transaction.", errorBody(t, w).Error)
		assert.Len(t, c.Errors, 1)
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "")
		h.HandleDomainError(c, nil)
		assert.False(t, c.Writer.Written())
		assert.Equal(t, 0, w.Body.Len())
	})
}

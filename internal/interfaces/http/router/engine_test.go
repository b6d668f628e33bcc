package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	customerapp "github.com/neardukaan/backend/internal/application/customer"
	dashboardapp "github.com/neardukaan/backend/internal/application/dashboard"
	inventoryapp "github.com/neardukaan/backend/internal/application/inventory"
	ledgerapp "github.com/neardukaan/backend/internal/application/ledger"
	"github.com/neardukaan/backend/internal/infrastructure/auth"
	"github.com/neardukaan/backend/internal/infrastructure/config"
	"github.com/neardukaan/backend/internal/infrastructure/persistence"
	"github.com/neardukaan/backend/internal/infrastructure/persistence/models"
	"github.com/neardukaan/backend/internal/interfaces/http/dto"
	"github.com/neardukaan/backend/internal/interfaces/http/handler"
	"github.com/neardukaan/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	engine *gin.Engine
	jwt    *auth.JWTService
}

// tickingClock advances one second per call so ledger entries order deterministically.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	customerRepo := persistence.NewGormCustomerRepository(db)
	transactionRepo := persistence.NewGormTransactionRepository(db)
	inventoryRepo := persistence.NewGormInventoryRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "engine-test-secret-that-is-long-enough",
		Issuer:                "near-dukaan",
		AccessTokenExpiration: time.Hour,
	}, auth.NewInMemoryTokenBlacklist())

	engine := NewEngine(EngineConfig{
		Verifier:    jwtService,
		CORS:        middleware.DefaultCORSConfig(),
		Security:    middleware.DefaultSecurityConfig(),
		MaxBodySize: 1 << 20,
	}, Handlers{
		System:      handler.NewSystemHandler(persistence.NewDatabaseFromGorm(db), "test"),
		Auth:        handler.NewAuthHandler(jwtService),
		Customer:    handler.NewCustomerHandler(customerapp.NewCustomerService(customerRepo)),
		Transaction: handler.NewTransactionHandler(ledgerapp.NewLedgerService(customerRepo, transactionRepo, ledgerapp.WithClock(tickingClock()))),
		Inventory:   handler.NewInventoryHandler(inventoryapp.NewInventoryService(inventoryRepo)),
		Dashboard:   handler.NewDashboardHandler(dashboardapp.NewDashboardService(customerRepo, inventoryRepo, nil)),
	})

	return &testApp{engine: engine, jwt: jwtService}
}

func (a *testApp) token(t *testing.T, shopID string) string {
	t.Helper()
	tok, _, err := a.jwt.Issue(shopID, shopID+"@example.com")
	require.NoError(t, err)
	return tok
}

func (a *testApp) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *testApp) createCustomer(t *testing.T, token, name string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/customers", token, `{"name":"`+name+`","phone":"9876543210"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[handler.CreateCustomerResponse](t, w).CustomerID
}

func TestEngine_PublicRoutes(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/status", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[handler.StatusResponse](t, w)
	assert.Equal(t, "API Running", status.Status)
	assert.Equal(t, "Near Dukaan Backend", status.Service)
	assert.Equal(t, "Connected", status.Database)
	assert.Equal(t, "test", status.Environment)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = app.do(t, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decode[dto.ErrorResponse](t, w).Code)
}

func TestEngine_AuthRequired(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/customers", "/api/inventory", "/api/dashboard/metrics", "/api/notifications", "/api/secure/test"} {
		w := app.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, dto.ErrCodeUnauthenticated, decode[dto.ErrorResponse](t, w).Code)
	}

	w := app.do(t, http.MethodGet, "/api/customers", "not-a-jwt", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid or expired authorization token.", decode[dto.ErrorResponse](t, w).Error)
}

func TestEngine_SecureTest(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/secure/test", app.token(t, "shop-a"), "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode[handler.SecureTestResponse](t, w)
	assert.Equal(t, "shop-a", body.ShopID)
	assert.Equal(t, "shop-a", body.UserID)
	assert.Equal(t, "shop-a@example.com", body.Email)
	assert.Equal(t, auth.TokenSource, body.TokenPayloadSource)
}

func TestEngine_LedgerScenario(t *testing.T) {
	app := newTestApp(t)
	shopA := app.token(t, "shop-a")
	shopB := app.token(t, "shop-b")

	customerID := app.createCustomer(t, shopA, "Asha")

	w := app.do(t, http.MethodPost, "/api/transactions", shopA,
		`{"customerId":"`+customerID+`","totalAmount":100,"items":[{"id":1,"name":"Rice","quantity":2,"price":50,"total":100}],"notes":"Items purchased"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	credit := decode[handler.RecordTransactionResponse](t, w)
	assert.Equal(t, "credit", credit.Type)
	assert.Equal(t, "Transaction recorded successfully. Customer balance updated.", credit.Message)
	assert.NotEmpty(t, credit.TransactionID)

	w = app.do(t, http.MethodPost, "/api/transactions", shopA,
		`{"customerId":"`+customerID+`","totalAmount":40,"paymentType":"payment"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "payment", decode[handler.RecordTransactionResponse](t, w).Type)

	w = app.do(t, http.MethodGet, "/api/customers/"+customerID, shopA, "")
	require.Equal(t, http.StatusOK, w.Code)
	c := decode[customerapp.CustomerResponse](t, w)
	assert.InDelta(t, 60.0, c.DueBalance, 1e-9)
	assert.InDelta(t, 100.0, c.TotalSpent, 1e-9)

	w = app.do(t, http.MethodGet, "/api/transactions/"+customerID, shopA, "")
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]ledgerapp.TransactionResponse](t, w)
	require.Len(t, history, 2)
	assert.Equal(t, "payment", history[0].Type)
	assert.Equal(t, "credit", history[1].Type)
	require.Len(t, history[1].Items, 1)
	assert.Equal(t, "Rice", history[1].Items[0].Name)
	assert.Empty(t, history[0].Items)

	// Another shop can neither read the history nor move the balance.
	w = app.do(t, http.MethodGet, "/api/customers/"+customerID, shopB, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodGet, "/api/transactions/"+customerID, shopB, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = app.do(t, http.MethodPost, "/api/transactions", shopB,
		`{"customerId":"`+customerID+`","totalAmount":500}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Customer not found or unauthorized.", decode[dto.ErrorResponse](t, w).Error)

	w = app.do(t, http.MethodGet, "/api/customers/"+customerID, shopA, "")
	assert.InDelta(t, 60.0, decode[customerapp.CustomerResponse](t, w).DueBalance, 1e-9)

	w = app.do(t, http.MethodGet, "/api/dashboard/metrics", shopA, "")
	require.Equal(t, http.StatusOK, w.Code)
	metrics := decode[dashboardapp.MetricsResponse](t, w)
	assert.InDelta(t, 60.0, metrics.TotalOutstandingDues, 1e-9)
	assert.Equal(t, 1, metrics.ActiveCustomerCount)

	w = app.do(t, http.MethodGet, "/api/dashboard/metrics", shopB, "")
	assert.Equal(t, 0, decode[dashboardapp.MetricsResponse](t, w).ActiveCustomerCount)
}

func TestEngine_TransactionValidation(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, "shop-a")
	customerID := app.createCustomer(t, token, "Asha")

	cases := []struct {
		name    string
		body    string
		status  int
		code    string
		message string
	}{
		{"empty body", "", http.StatusBadRequest, dto.ErrCodeValidation, "Missing customer ID or amount."},
		{"missing amount", `{"customerId":"` + customerID + `"}`, http.StatusBadRequest, dto.ErrCodeValidation, "Missing customer ID or amount."},
		{"missing customer", `{"totalAmount":10}`, http.StatusBadRequest, dto.ErrCodeValidation, "Missing customer ID or amount."},
		{"zero amount", `{"customerId":"` + customerID + `","totalAmount":0}`, http.StatusBadRequest, dto.ErrCodeValidation, "Amount must be greater than zero."},
		{"negative amount", `{"customerId":"` + customerID + `","totalAmount":-5}`, http.StatusBadRequest, dto.ErrCodeValidation, "Amount must be greater than zero."},
		{"sub-scale amount", `{"customerId":"` + customerID + `","totalAmount":0.00001}`, http.StatusBadRequest, dto.ErrCodeValidation, "Amount supports at most 4 decimal places."},
		{"string amount", `{"customerId":"` + customerID + `","totalAmount":"abc"}`, http.StatusBadRequest, dto.ErrCodeValidation, "Invalid value for field 'totalAmount'."},
		{"malformed json", `{"customerId":`, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid JSON body."},
		{"unknown customer", `{"customerId":"3f1c7c1e-8d6b-4a43-9b8e-2f4a2b9c0d11","totalAmount":10}`, http.StatusNotFound, dto.ErrCodeNotFound, "Customer not found or unauthorized."},
		{"malformed customer id", `{"customerId":"not-a-uuid","totalAmount":10}`, http.StatusNotFound, dto.ErrCodeNotFound, "Customer not found or unauthorized."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := app.do(t, http.MethodPost, "/api/transactions", token, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			body := decode[dto.ErrorResponse](t, w)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.message, body.Error)
		})
	}

	w := app.do(t, http.MethodGet, "/api/customers/"+customerID, token, "")
	c := decode[customerapp.CustomerResponse](t, w)
	assert.True(t, c.DueBalance == 0 && c.TotalSpent == 0)
}

func TestEngine_UnknownKindRecordedWithoutBalanceChange(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, "shop-a")
	customerID := app.createCustomer(t, token, "Asha")

	w := app.do(t, http.MethodPost, "/api/transactions", token,
		`{"customerId":"`+customerID+`","totalAmount":25,"paymentType":"cash"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "cash", decode[handler.RecordTransactionResponse](t, w).Type)

	w = app.do(t, http.MethodGet, "/api/customers/"+customerID, token, "")
	c := decode[customerapp.CustomerResponse](t, w)
	assert.Zero(t, c.DueBalance)
	assert.Zero(t, c.TotalSpent)

	w = app.do(t, http.MethodGet, "/api/transactions/"+customerID, token, "")
	assert.Len(t, decode[[]ledgerapp.TransactionResponse](t, w), 1)
}

func TestEngine_PaymentTypeIsTakenVerbatim(t *testing.T) {
	cases := []struct {
		name        string
		paymentType string // raw JSON fragment, empty means the field is omitted
		kind        string
		due         float64
	}{
		{"absent defaults to credit", "", "credit", 40},
		{"payment", `"payment"`, "payment", -40},
		{"padded payment", `" payment"`, " payment", 0},
		{"upper case", `"Credit"`, "Credit", 0},
		{"empty string", `""`, "", 0},
		{"null", `null`, "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)
			token := app.token(t, "shop-a")
			customerID := app.createCustomer(t, token, "Asha")

			body := `{"customerId":"` + customerID + `","totalAmount":40`
			if tc.paymentType != "" {
				body += `,"paymentType":` + tc.paymentType
			}
			body += `}`

			w := app.do(t, http.MethodPost, "/api/transactions", token, body)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			assert.Equal(t, tc.kind, decode[handler.RecordTransactionResponse](t, w).Type)

			w = app.do(t, http.MethodGet, "/api/customers/"+customerID, token, "")
			assert.InDelta(t, tc.due, decode[customerapp.CustomerResponse](t, w).DueBalance, 1e-9)

			w = app.do(t, http.MethodGet, "/api/transactions/"+customerID, token, "")
			history := decode[[]ledgerapp.TransactionResponse](t, w)
			require.Len(t, history, 1)
			assert.Equal(t, tc.kind, history[0].Type)
		})
	}
}

func TestEngine_HistorySurvivesCustomerDelete(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, "shop-a")
	customerID := app.createCustomer(t, token, "Asha")

	w := app.do(t, http.MethodPost, "/api/transactions", token, `{"customerId":"`+customerID+`","totalAmount":100}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodDelete, "/api/customers/"+customerID, token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/transactions/"+customerID, token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	history := decode[[]ledgerapp.TransactionResponse](t, w)
	require.Len(t, history, 1)
	assert.Equal(t, "credit", history[0].Type)
	assert.InDelta(t, 100.0, history[0].Amount, 1e-9)

	w = app.do(t, http.MethodGet, "/api/transactions/3f1c7c1e-8d6b-4a43-9b8e-2f4a2b9c0d11", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/transactions/not-a-uuid", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestEngine_Logout(t *testing.T) {
	app := newTestApp(t)
	session := app.token(t, "shop-a")
	other := app.token(t, "shop-a")

	w := app.do(t, http.MethodPost, "/api/auth/logout", session, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Logged out successfully.", decode[dto.MessageResponse](t, w).Message)

	w = app.do(t, http.MethodGet, "/api/customers", session, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidCredential, decode[dto.ErrorResponse](t, w).Code)

	w = app.do(t, http.MethodGet, "/api/customers", other, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEngine_LogoutAll(t *testing.T) {
	app := newTestApp(t)
	first := app.token(t, "shop-a")
	second := app.token(t, "shop-a")
	otherShop := app.token(t, "shop-b")

	w := app.do(t, http.MethodPost, "/api/auth/logout-all", first, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, tok := range []string{first, second} {
		w = app.do(t, http.MethodGet, "/api/customers", tok, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	}

	w = app.do(t, http.MethodGet, "/api/customers", otherShop, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEngine_CustomerCRUD(t *testing.T) {
	app := newTestApp(t)
	shopA := app.token(t, "shop-a")
	shopB := app.token(t, "shop-b")

	w := app.do(t, http.MethodPost, "/api/customers", shopA, `{"name":"Zoya"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing customer name or phone.", decode[dto.ErrorResponse](t, w).Error)

	w = app.do(t, http.MethodPost, "/api/customers", shopA, `{"name":"Zoya","phone":"1","initialDue":12.5}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[handler.CreateCustomerResponse](t, w)
	assert.Equal(t, "Customer added successfully.", created.Message)
	zoya := created.CustomerID
	app.createCustomer(t, shopA, "Asha")
	app.createCustomer(t, shopB, "Bilal")

	w = app.do(t, http.MethodGet, "/api/customers", shopA, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]customerapp.CustomerResponse](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "Asha", list[0].Name)
	assert.Equal(t, "Zoya", list[1].Name)
	assert.InDelta(t, 12.5, list[1].DueBalance, 1e-9)

	w = app.do(t, http.MethodPut, "/api/customers/"+zoya, shopA, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No update data provided.", decode[dto.ErrorResponse](t, w).Error)

	w = app.do(t, http.MethodPut, "/api/customers/"+zoya, shopA, `{"phone":"2","due_balance":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Customer updated successfully.", decode[dto.MessageResponse](t, w).Message)

	w = app.do(t, http.MethodGet, "/api/customers/"+zoya, shopA, "")
	c := decode[customerapp.CustomerResponse](t, w)
	assert.Equal(t, "2", c.Phone)
	assert.InDelta(t, 12.5, c.DueBalance, 1e-9)

	w = app.do(t, http.MethodPut, "/api/customers/"+zoya, shopB, `{"name":"Hacked"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized access.", decode[dto.ErrorResponse](t, w).Error)

	w = app.do(t, http.MethodDelete, "/api/customers/"+zoya, shopB, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodDelete, "/api/customers/"+zoya, shopA, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Customer deleted successfully.", decode[dto.MessageResponse](t, w).Message)

	w = app.do(t, http.MethodGet, "/api/customers/"+zoya, shopA, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Customer not found.", decode[dto.ErrorResponse](t, w).Error)

	w = app.do(t, http.MethodGet, "/api/customers/garbage", shopA, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEngine_InventoryAndNotifications(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, "shop-a")

	w := app.do(t, http.MethodPost, "/api/inventory", token, `{"name":"Rice","quantity":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing item name, quantity, or selling price.", decode[dto.ErrorResponse](t, w).Error)

	w = app.do(t, http.MethodPost, "/api/inventory", token, `{"name":"Rice","quantity":5,"sellingPrice":60,"unitCost":45.5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[handler.CreateInventoryItemResponse](t, w)
	assert.Equal(t, "Inventory item added successfully.", created.Message)

	w = app.do(t, http.MethodGet, "/api/inventory/"+created.ItemID, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	item := decode[inventoryapp.InventoryItemResponse](t, w)
	assert.Equal(t, 5, item.Quantity)
	assert.InDelta(t, 45.5, item.UnitCost, 1e-9)
	assert.Nil(t, item.ExpiryDate)

	w = app.do(t, http.MethodPut, "/api/inventory/"+created.ItemID, token, `{"quantity":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Inventory item updated successfully.", decode[dto.MessageResponse](t, w).Message)

	customerID := app.createCustomer(t, token, "Asha")
	w = app.do(t, http.MethodPost, "/api/transactions", token, `{"customerId":"`+customerID+`","totalAmount":80}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/api/notifications", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	reminders := decode[[]dashboardapp.ReminderResponse](t, w)
	require.Len(t, reminders, 2)
	assert.Equal(t, dashboardapp.ReminderPaymentDue, reminders[0].Type)
	assert.Equal(t, "Asha", reminders[0].CustomerName)
	assert.InDelta(t, 80.0, reminders[0].AmountDue, 1e-9)
	assert.Equal(t, dashboardapp.ReminderLowStock, reminders[1].Type)
	assert.Equal(t, "Only 3 left", reminders[1].Status)

	w = app.do(t, http.MethodGet, "/api/dashboard/metrics", token, "")
	assert.Equal(t, 1, decode[dashboardapp.MetricsResponse](t, w).ItemsLowInStock)

	w = app.do(t, http.MethodDelete, "/api/inventory/"+created.ItemID, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodGet, "/api/inventory", token, "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestEngine_CORSPreflightSkipsAuth(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/transactions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestEngine_BodyLimit(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, "shop-a")

	body := `{"name":"` + strings.Repeat("x", 2<<20) + `","phone":"1"}`
	w := app.do(t, http.MethodPost, "/api/customers", token, body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

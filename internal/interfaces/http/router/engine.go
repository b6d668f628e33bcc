package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neardukaan/backend/internal/infrastructure/logger"
	"github.com/neardukaan/backend/internal/interfaces/http/dto"
	"github.com/neardukaan/backend/internal/interfaces/http/handler"
	"github.com/neardukaan/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Paths reachable without a bearer token
const (
	HealthPath = "/health"
	StatusPath = "/api/status"
)

// Handlers bundles the resource handlers mounted by NewEngine
type Handlers struct {
	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	Customer    *handler.CustomerHandler
	Transaction *handler.TransactionHandler
	Inventory   *handler.InventoryHandler
	Dashboard   *handler.DashboardHandler
}

// EngineConfig holds the middleware settings for NewEngine
type EngineConfig struct {
	Logger         *zap.Logger
	Verifier       middleware.TokenVerifier
	CORS           middleware.CORSConfig
	Security       middleware.SecurityConfig
	Tracing        middleware.TracingConfig
	MaxBodySize    int64
	TrustedProxies []string
}

// NewEngine builds the gin engine with the middleware stack and every route.
//
// Order: request id, recovery, request log, tracing, security headers,
// CORS, body limit. Bearer auth applies to /api except the status route.
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(cfg.Tracing))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.SecureWithConfig(cfg.Security))
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Resource not found", middleware.GetRequestID(c),
		))
	})

	engine.GET(HealthPath, h.System.Health)

	r := NewRouter(engine)
	r.Use(middleware.BearerAuth(middleware.AuthConfig{
		Verifier:  cfg.Verifier,
		Logger:    log,
		SkipPaths: []string{StatusPath},
	}))

	systemRoutes := NewDomainGroup("")
	systemRoutes.GET("/status", h.System.Status)
	systemRoutes.GET("/secure/test", h.System.SecureTest)
	r.Register(systemRoutes)

	authRoutes := NewDomainGroup("/auth")
	authRoutes.POST("/logout", h.Auth.Logout)
	authRoutes.POST("/logout-all", h.Auth.LogoutAll)
	r.Register(authRoutes)

	customerRoutes := NewDomainGroup("/customers")
	customerRoutes.POST("", h.Customer.Create)
	customerRoutes.GET("", h.Customer.List)
	customerRoutes.GET("/:id", h.Customer.GetByID)
	customerRoutes.PUT("/:id", h.Customer.Update)
	customerRoutes.DELETE("/:id", h.Customer.Delete)
	r.Register(customerRoutes)

	transactionRoutes := NewDomainGroup("/transactions")
	transactionRoutes.POST("", h.Transaction.Record)
	transactionRoutes.GET("/:customerId", h.Transaction.ListByCustomer)
	r.Register(transactionRoutes)

	inventoryRoutes := NewDomainGroup("/inventory")
	inventoryRoutes.POST("", h.Inventory.Create)
	inventoryRoutes.GET("", h.Inventory.List)
	inventoryRoutes.GET("/:id", h.Inventory.GetByID)
	inventoryRoutes.PUT("/:id", h.Inventory.Update)
	inventoryRoutes.DELETE("/:id", h.Inventory.Delete)
	r.Register(inventoryRoutes)

	dashboardRoutes := NewDomainGroup("/dashboard")
	dashboardRoutes.GET("/metrics", h.Dashboard.Metrics)
	r.Register(dashboardRoutes)

	notificationRoutes := NewDomainGroup("/notifications")
	notificationRoutes.GET("", h.Dashboard.Notifications)
	r.Register(notificationRoutes)

	r.Setup()
	return engine
}

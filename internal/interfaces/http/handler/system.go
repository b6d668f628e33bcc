package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neardukaan/backend/internal/infrastructure/auth"
	"github.com/neardukaan/backend/internal/infrastructure/logger"
	"github.com/neardukaan/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

const serviceName = "Near Dukaan Backend"

var errNoDatabase = errors.New("database client missing")

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves status, liveness and the authenticated smoke test
type SystemHandler struct {
	BaseHandler
	db          Pinger
	environment string
	pingTimeout time.Duration
}

// NewSystemHandler creates a new SystemHandler. db may be nil.
func NewSystemHandler(db Pinger, environment string) *SystemHandler {
	return &SystemHandler{
		db:          db,
		environment: environment,
		pingTimeout: 2 * time.Second,
	}
}

// StatusResponse is the body of GET /api/status
type StatusResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Database    string `json:"database"`
	Environment string `json:"environment"`
}

// Status reports that the API is up along with store connectivity
func (h *SystemHandler) Status(c *gin.Context) {
	database := "Connected"
	if err := h.ping(c.Request.Context()); err != nil {
		logger.L(c.Request.Context()).Warn("Database ping failed", zap.Error(err))
		database = "Error: database unreachable"
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status:      "API Running",
		Service:     serviceName,
		Database:    database,
		Environment: h.environment,
	})
}

// Health is the liveness probe
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.ping(c.Request.Context()); err != nil {
		logger.L(c.Request.Context()).Error("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// SecureTestResponse is the body of GET /api/secure/test
type SecureTestResponse struct {
	Message            string `json:"message"`
	UserID             string `json:"user_id"`
	ShopID             string `json:"shop_id"`
	Email              string `json:"email"`
	TokenPayloadSource string `json:"token_payload_source"`
}

// SecureTest echoes the authenticated principal
func (h *SystemHandler) SecureTest(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		h.InternalError(c, msgInternal)
		return
	}
	email := principal.Email
	if email == "" {
		email = "N/A"
	}

	c.JSON(http.StatusOK, SecureTestResponse{
		Message:            "Access Granted: You are successfully authenticated.",
		UserID:             principal.UserID,
		ShopID:             principal.ShopID,
		Email:              email,
		TokenPayloadSource: auth.TokenSource,
	})
}

func (h *SystemHandler) ping(ctx context.Context) error {
	if h.db == nil {
		return errNoDatabase
	}
	ctx, cancel := context.WithTimeout(ctx, h.pingTimeout)
	defer cancel()
	return h.db.Ping(ctx)
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neardukaan/backend/internal/infrastructure/auth"
	"github.com/neardukaan/backend/internal/infrastructure/logger"
	"github.com/neardukaan/backend/internal/interfaces/http/dto"
	"github.com/neardukaan/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

const msgRevokeFailed = "Could not revoke the session."

// TokenRevoker writes to the revocation list consulted by BearerAuth.
// *auth.JWTService satisfies it.
type TokenRevoker interface {
	Revoke(ctx context.Context, claims *auth.Claims) error
	RevokeAll(ctx context.Context, shopID string) error
}

// AuthHandler ends bearer sessions
type AuthHandler struct {
	BaseHandler
	revoker TokenRevoker
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(revoker TokenRevoker) *AuthHandler {
	return &AuthHandler{revoker: revoker}
}

// Logout handles POST /api/auth/logout by revoking the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.Claims == nil {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthenticated, "Authorization token missing or invalid format.")
		return
	}

	if err := h.revoker.Revoke(c.Request.Context(), principal.Claims); err != nil {
		logger.L(c.Request.Context()).Error("Failed to revoke token",
			zap.String("jti", principal.Claims.ID),
			zap.Error(err),
		)
		h.InternalError(c, msgRevokeFailed)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully."})
}

// LogoutAll handles POST /api/auth/logout-all: every token issued to the
// shop up to now stops working.
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	shopID := getShopID(c)
	if err := h.revoker.RevokeAll(c.Request.Context(), shopID); err != nil {
		logger.L(c.Request.Context()).Error("Failed to revoke shop tokens", zap.Error(err))
		h.InternalError(c, msgRevokeFailed)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "All sessions logged out."})
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/neardukaan/backend/internal/infrastructure/auth"
	"github.com/neardukaan/backend/internal/infrastructure/logger"
	"github.com/neardukaan/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Gin context keys populated by BearerAuth
const (
	ShopIDKey    = "shop_id"
	UserIDKey    = "user_id"
	EmailKey     = "email"
	PrincipalKey = "principal"
)

// TokenVerifier verifies a raw bearer token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Principal, error)
}

// AuthConfig holds bearer authentication middleware configuration
type AuthConfig struct {
	Verifier TokenVerifier
	Logger   *zap.Logger
	// SkipPaths lists full paths that pass through unauthenticated.
	SkipPaths []string
}

// BearerAuth verifies "Authorization: Bearer <token>" and stores the
// authenticated shop in the gin and request contexts.
func BearerAuth(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortAuth(c, http.StatusUnauthorized, dto.ErrCodeUnauthenticated,
				"Authorization token missing or invalid format.")
			return
		}

		principal, err := cfg.Verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if auth.IsCredentialError(err) {
				log.Debug("Bearer token rejected",
					zap.String("request_id", GetRequestID(c)),
					zap.Error(err),
				)
				abortAuth(c, http.StatusForbidden, dto.ErrCodeInvalidCredential,
					"Invalid or expired authorization token.")
				return
			}
			log.Error("Token verification failed",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			abortAuth(c, http.StatusInternalServerError, dto.ErrCodeInternal,
				"Authentication failed due to a server error.")
			return
		}

		c.Set(ShopIDKey, principal.ShopID)
		c.Set(UserIDKey, principal.UserID)
		c.Set(EmailKey, principal.Email)
		c.Set(PrincipalKey, principal)

		ctx, _ := logger.WithShopID(c.Request.Context(), logger.FromContext(c.Request.Context()), principal.ShopID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// bearerToken extracts the credential from an Authorization header value.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

func abortAuth(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetShopID returns the authenticated shop id, or "" on public routes.
func GetShopID(c *gin.Context) string {
	return c.GetString(ShopIDKey)
}

// GetPrincipal returns the verified principal stored by BearerAuth.
func GetPrincipal(c *gin.Context) (*auth.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*auth.Principal)
	return p, ok
}

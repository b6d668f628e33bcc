package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/neardukaan/backend/internal/infrastructure/config"
)

// TokenSource is reported by the secure test endpoint.
const TokenSource = "Verified HS256 JWT"

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingSubject   = errors.New("missing subject in claims")
	ErrTokenRevoked     = errors.New("token has been revoked")
	ErrMissingShopID    = errors.New("shop id is required")
)

// Claims are the bearer token claims. The shop id is the subject; user_id
// and uid are accepted for tokens minted by older identity providers.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id,omitempty"`
	UID    string `json:"uid,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Principal returns the stable principal id: sub, then user_id, then uid.
func (c *Claims) Principal() string {
	switch {
	case c.Subject != "":
		return c.Subject
	case c.UserID != "":
		return c.UserID
	default:
		return c.UID
	}
}

// Principal is an authenticated shopkeeper. One shopkeeper owns one shop,
// so ShopID and UserID are the same value.
type Principal struct {
	UserID string
	ShopID string
	Email  string
	Claims *Claims
}

// JWTService issues and verifies bearer tokens
type JWTService struct {
	secret      []byte
	issuer      string
	audience    string
	expiration  time.Duration
	revocations TokenBlacklist
}

// NewJWTService creates a new JWT service. revocations may be nil.
func NewJWTService(cfg config.JWTConfig, revocations TokenBlacklist) *JWTService {
	return &JWTService{
		secret:      []byte(cfg.Secret),
		issuer:      cfg.Issuer,
		audience:    cfg.Audience,
		expiration:  cfg.AccessTokenExpiration,
		revocations: revocations,
	}
}

// Issue mints a token for shopID valid for the configured expiration.
func (s *JWTService) Issue(shopID, email string) (string, time.Time, error) {
	if shopID == "" {
		return "", time.Time{}, ErrMissingShopID
	}
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   shopID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify checks signature, time claims, issuer, audience and revocation.
// Errors other than those declared in this package come from the
// revocation store and are not the caller's fault.
func (s *JWTService) Verify(ctx context.Context, tokenString string) (*Principal, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		default:
			return nil, ErrInvalidToken
		}
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	principal := claims.Principal()
	if principal == "" {
		return nil, ErrMissingSubject
	}

	if s.revocations != nil {
		if err := s.checkRevoked(ctx, principal, claims); err != nil {
			return nil, err
		}
	}

	return &Principal{
		UserID: principal,
		ShopID: principal,
		Email:  claims.Email,
		Claims: claims,
	}, nil
}

func (s *JWTService) checkRevoked(ctx context.Context, principal string, claims *Claims) error {
	if claims.ID != "" {
		revoked, err := s.revocations.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			return err
		}
		if revoked {
			return ErrTokenRevoked
		}
	}
	if claims.IssuedAt != nil {
		invalidated, err := s.revocations.IsUserTokenInvalidated(ctx, principal, claims.IssuedAt.Time)
		if err != nil {
			return err
		}
		if invalidated {
			return ErrTokenRevoked
		}
	}
	return nil
}

// Revoke blacklists one token until it would have expired anyway.
func (s *JWTService) Revoke(ctx context.Context, claims *Claims) error {
	if s.revocations == nil || claims.ID == "" {
		return nil
	}
	return s.revocations.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL())
}

// RevokeAll invalidates every token issued to shopID so far.
func (s *JWTService) RevokeAll(ctx context.Context, shopID string) error {
	if s.revocations == nil {
		return nil
	}
	return s.revocations.AddUserTokensToBlacklist(ctx, shopID, s.expiration)
}

// IsCredentialError reports whether err means the caller presented a bad
// credential, as opposed to a failure checking it.
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrTokenNotYetValid) ||
		errors.Is(err, ErrMissingSubject) ||
		errors.Is(err, ErrTokenRevoked)
}

// RemainingTTL returns the time left until the token expires
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

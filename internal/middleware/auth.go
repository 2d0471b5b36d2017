package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tickerwire/tickerwire/internal/config"
)

// ContextKey type for context keys
type ContextKey string

const (
	// ContextKeyPrincipal holds the authenticated caller
	ContextKeyPrincipal ContextKey = "principal"
)

// Principal is the authenticated caller extracted from a bearer token
type Principal struct {
	Subject string
	Scopes  []string
}

// HasScope reports whether the principal carries the given scope
func (p *Principal) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// AuthMiddleware handles bearer token authentication
type AuthMiddleware struct {
	cfg config.AuthConfig
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(cfg config.AuthConfig) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// RequireAuth validates the bearer token and checks the configured scopes
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "Authorization header required",
			})
		}

		principal, err := m.parseToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "Invalid or expired token",
			})
		}

		for _, required := range m.cfg.RequiredScopes {
			if !principal.HasScope(required) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error":   "Forbidden",
					"message": fmt.Sprintf("missing required scope %q", required),
				})
			}
		}

		c.Locals(string(ContextKeyPrincipal), principal)
		return c.Next()
	}
}

// parseToken verifies the token signature and registered claims
func (m *AuthMiddleware) parseToken(token string) (*Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
	}
	if m.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.cfg.Issuer))
	}
	if m.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(m.cfg.Audience))
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(m.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	subject, _ := claims.GetSubject()
	return &Principal{
		Subject: subject,
		Scopes:  scopesFromClaims(claims),
	}, nil
}

// scopesFromClaims reads scopes from either the space-separated "scope" claim
// or the "scp" claim, which issuers encode as a string or a list
func scopesFromClaims(claims jwt.MapClaims) []string {
	if raw, ok := claims["scope"].(string); ok {
		return strings.Fields(raw)
	}

	switch scp := claims["scp"].(type) {
	case string:
		return strings.Fields(scp)
	case []any:
		scopes := make([]string, 0, len(scp))
		for _, v := range scp {
			if s, ok := v.(string); ok {
				scopes = append(scopes, s)
			}
		}
		return scopes
	}
	return nil
}

// extractBearerToken extracts the token from the Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// GetPrincipal gets the authenticated principal from context
func GetPrincipal(c *fiber.Ctx) (*Principal, bool) {
	principal, ok := c.Locals(string(ContextKeyPrincipal)).(*Principal)
	return principal, ok
}

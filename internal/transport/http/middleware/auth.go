package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/sculptstudio/atelier/internal/presentation/http/response"
	authsvc "github.com/sculptstudio/atelier/internal/service/auth"
)

const (
	identityKey = "admin.identity"
	tokenKey    = "admin.token"
)

// Module provides the admin guard.
var Module = fx.Provide(NewAdminGuard)

// AdminGuard protects dashboard routes behind a bearer session token.
type AdminGuard struct {
	sessions *authsvc.Service
}

// NewAdminGuard constructs the guard.
func NewAdminGuard(sessions *authsvc.Service) *AdminGuard {
	return &AdminGuard{sessions: sessions}
}

// Require rejects requests without a resolvable session and stores the
// identity on the request context for downstream handlers.
func (g *AdminGuard) Require() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			identity, err := g.sessions.Session(c.Request().Context(), token)
			if err != nil {
				return response.New(c).WithError(err).Build()
			}
			c.Set(identityKey, identity)
			c.Set(tokenKey, token)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Require, or nil.
func IdentityFrom(c echo.Context) *authsvc.Identity {
	identity, _ := c.Get(identityKey).(*authsvc.Identity)
	return identity
}

// TokenFrom returns the bearer token stored by Require.
func TokenFrom(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

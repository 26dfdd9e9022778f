package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/suagrafica/portal/pkg/tokens"
)

const (
	AdminIDKey    = "admin_id"
	CustomerIDKey = "customer_id"
)

// AdminResolver maps an admin bearer token to an admin id. Errors are
// handed to the echo error handler unchanged.
type AdminResolver interface {
	ResolveAdmin(ctx context.Context, token string) (uint, error)
}

func BearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func RequireAdmin(resolver AdminResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			adminID, err := resolver.ResolveAdmin(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(AdminIDKey, adminID)
			return next(c)
		}
	}
}

// RequireCustomer accepts only customer JWTs signed with secret and stores
// the token's customer id on the context.
func RequireCustomer(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			claims, err := tokens.CustomerClaimsFromToken(token, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid customer token")
			}
			customerID, err := claims.CustomerID()
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid customer token")
			}
			c.Set(CustomerIDKey, customerID)
			return next(c)
		}
	}
}

func AdminID(c echo.Context) (uint, bool) {
	id, ok := c.Get(AdminIDKey).(uint)
	return id, ok && id != 0
}

func CustomerID(c echo.Context) (uint, bool) {
	id, ok := c.Get(CustomerIDKey).(uint)
	return id, ok && id != 0
}

package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fbafinance/directory-api/internal/model"
	"github.com/fbafinance/directory-api/internal/service"
)

// Context keys for the authenticated account and its raw bearer token.
const (
	accountKey = "account"
	tokenKey   = "access_token"
)

// RequireAuth gates protected routes.  It extracts the bearer token,
// resolves it through the auth service (signature, expiry, revocation
// ledger, subject lookup) and stores the account and raw token in the
// request context.  Every rejection looks the same to the client: 401 with
// a WWW-Authenticate hint and a generic message.
func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return unauthenticated(c)
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			acct, err := auth.ResolveCurrentUser(c.Request().Context(), raw)
			if err != nil {
				if errors.Is(err, service.ErrUnauthenticated) {
					return unauthenticated(c)
				}
				// Store failure, not a bad token.
				c.Logger().Errorf("auth: resolve failed: %v", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "An unexpected error occurred. Please try again later."})
			}

			c.Set(accountKey, acct)
			c.Set(tokenKey, raw)
			return next(c)
		}
	}
}

func unauthenticated(c echo.Context) error {
	c.Response().Header().Set("WWW-Authenticate", "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Could not validate credentials"})
}

// CurrentAccount returns the account stored by RequireAuth.
func CurrentAccount(c echo.Context) (model.Account, bool) {
	acct, ok := c.Get(accountKey).(model.Account)
	return acct, ok
}

// CurrentToken returns the raw bearer token stored by RequireAuth.
func CurrentToken(c echo.Context) string {
	raw, _ := c.Get(tokenKey).(string)
	return raw
}

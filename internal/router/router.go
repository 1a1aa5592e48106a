package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/fbafinance/directory-api/internal/handler"
	"github.com/fbafinance/directory-api/internal/middleware"
	"github.com/fbafinance/directory-api/internal/service"
)

// RegisterRoutes registers the routes that carry no middleware at all: the
// health check for load balancers and the root welcome message.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/", handler.Root)
}

// RegisterAuth wires the authentication endpoints under /api/auth.
// Register and login are public (and rate limited, since both sit in front
// of bcrypt); logout requires a valid bearer token because revocation needs
// to know whose token it is appending to the ledger.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, auth *service.AuthService, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/auth", limiter)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout, middleware.RequireAuth(auth))
}

// RegisterBusiness wires the profile and directory endpoints under
// /v1/api/business.  Profile read/update and advanced search pass the auth
// gate; the plain directory reads are public and response-cached.
func RegisterBusiness(e *echo.Echo, b *handler.BusinessHandler, auth *service.AuthService, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/api/business")

	protected := middleware.RequireAuth(auth)
	g.GET("/profile", b.Profile, protected)
	g.PUT("/profile/update", b.UpdateProfile, protected)
	g.GET("/businesses/advanced-search", b.AdvancedSearch, protected)

	g.GET("/businesses", b.List, cache)
	g.GET("/businesses/search", b.Search, cache)
	g.GET("/businesses/:id", b.GetByID, cache)
}

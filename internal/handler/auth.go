package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"

	"github.com/fbafinance/directory-api/internal/middleware"
	"github.com/fbafinance/directory-api/internal/queue"
	"github.com/fbafinance/directory-api/internal/service"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Auth *service.AuthService
	Reg  *service.Registrar
}

func NewAuthHandler(auth *service.AuthService, reg *service.Registrar) *AuthHandler {
	return &AuthHandler{Auth: auth, Reg: reg}
}

// ----- DTOs -----

type registerReq struct {
	BusinessName string `json:"business_name" form:"business_name"`
	Email        string `json:"business_email" form:"business_email"`
	Password     string `json:"password" form:"password"`
}

type loginReq struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Register creates a business account and returns its public view.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acct, err := h.Reg.Register(ctx, service.RegisterInput{
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Password:     req.Password,
	})
	if err != nil {
		var verr validation.Errors
		switch {
		case errors.As(err, &verr):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation failed", "errors": verr})
		case errors.Is(err, service.ErrDuplicateEmail):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already registered"})
		default:
			c.Logger().Errorf("register failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "An unexpected error occurred. Please try again later."})
		}
	}

	// Best effort; registration already succeeded.
	_ = queue.PublishAccountRegistered(ctx, queue.AccountRegisteredEvent{
		AccountID:    acct.ID,
		BusinessName: acct.BusinessName,
		Email:        acct.Email,
		RegisteredAt: acct.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, newAccountView(acct))
}

// Login implements the OAuth2 password flow: it accepts form fields
// `username`/`password` (JSON with `email` works too) and returns a bearer
// access token.  Unknown email and wrong password produce the identical
// response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	_ = c.Bind(&req)
	email := req.Username
	if email == "" {
		email = req.Email
	}
	email = strings.TrimSpace(email)
	if email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username and password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tok, err := h.Auth.Login(ctx, email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.Response().Header().Set("WWW-Authenticate", "Bearer")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Incorrect username or password"})
		}
		c.Logger().Errorf("login failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "An unexpected error occurred. Please try again later."})
	}
	return c.JSON(http.StatusOK, tok)
}

// Logout blacklists the presented token.  The route sits behind RequireAuth,
// so the token has already been resolved; from here on it is rejected even
// though its signature and expiry remain valid.
func (h *AuthHandler) Logout(c echo.Context) error {
	acct, ok := middleware.CurrentAccount(c)
	if !ok {
		c.Response().Header().Set("WWW-Authenticate", "Bearer")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Could not validate credentials"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.Logout(ctx, middleware.CurrentToken(c), acct); err != nil {
		c.Logger().Errorf("logout failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not blacklist token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Successfully logged out"})
}

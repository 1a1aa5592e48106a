package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fbafinance/directory-api/internal/middleware"
	"github.com/fbafinance/directory-api/internal/repository"
	"github.com/fbafinance/directory-api/internal/service"
)

// advancedSearchCompletion is the profile-completion percentage required to
// use the advanced directory search.
const advancedSearchCompletion = 100

// BusinessHandler serves the profile and directory endpoints.
type BusinessHandler struct {
	Accounts *repository.AccountRepo
}

func NewBusinessHandler(accounts *repository.AccountRepo) *BusinessHandler {
	return &BusinessHandler{Accounts: accounts}
}

// profileResp extends the public view with the derived years_in_operation.
type profileResp struct {
	accountView
	YearsInOperation *int `json:"years_in_operation"`
}

// Profile returns the authenticated business's own record.
func (h *BusinessHandler) Profile(c echo.Context) error {
	acct, ok := middleware.CurrentAccount(c)
	if !ok {
		c.Response().Header().Set("WWW-Authenticate", "Bearer")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Could not validate credentials"})
	}
	resp := profileResp{accountView: newAccountView(acct)}
	if acct.YearFounded != nil {
		years := time.Now().Year() - *acct.YearFounded
		resp.YearsInOperation = &years
	}
	return c.JSON(http.StatusOK, resp)
}

// updateReq mirrors the updatable profile fields; absent keys stay nil and
// leave the column untouched.  Email, id and created_at are not here on
// purpose.
type updateReq struct {
	BusinessName           *string  `json:"business_name"`
	BusinessSize           *int     `json:"business_size"`
	RegistrationNumber     *string  `json:"registrationNumber"`
	YearFounded            *int     `json:"yearFounded"`
	Phone                  *string  `json:"phone"`
	Website                *string  `json:"website"`
	City                   *string  `json:"city"`
	Country                *string  `json:"country"`
	Address                *string  `json:"address"`
	Industry               *string  `json:"industry"`
	PostalCode             *int     `json:"postalcode"`
	AnnualRevenue          *int64   `json:"annualRevenue"`
	EmployeeCount          *int     `json:"employeeCount"`
	HasOutstandingLoans    *bool    `json:"hasOutstandingLoans"`
	ApproxMonthlyRevenue   *float64 `json:"approximateMonthlyRevenue"`
	ApproxMonthlyExpenses  *float64 `json:"approximateMonthlyExpenses"`
	LastYearRevenue        *float64 `json:"lastYearRevenue"`
	ProjectedYearlyRevenue *float64 `json:"currentYearProjectedRevenue"`
}

// UpdateProfile applies a partial update to the caller's own record and
// returns the refreshed view.
func (h *BusinessHandler) UpdateProfile(c echo.Context) error {
	acct, ok := middleware.CurrentAccount(c)
	if !ok {
		c.Response().Header().Set("WWW-Authenticate", "Bearer")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Could not validate credentials"})
	}

	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.YearFounded != nil && (*req.YearFounded < 1800 || *req.YearFounded > 2100) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "yearFounded out of range"})
	}
	if req.BusinessName != nil && strings.TrimSpace(*req.BusinessName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "business_name must not be empty"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Accounts.UpdateProfile(ctx, acct.ID, repository.ProfileUpdate{
		BusinessName:           req.BusinessName,
		BusinessSize:           req.BusinessSize,
		RegistrationNumber:     req.RegistrationNumber,
		YearFounded:            req.YearFounded,
		Phone:                  req.Phone,
		Website:                req.Website,
		City:                   req.City,
		Country:                req.Country,
		Address:                req.Address,
		Industry:               req.Industry,
		PostalCode:             req.PostalCode,
		AnnualRevenue:          req.AnnualRevenue,
		EmployeeCount:          req.EmployeeCount,
		HasOutstandingLoans:    req.HasOutstandingLoans,
		ApproxMonthlyRevenue:   req.ApproxMonthlyRevenue,
		ApproxMonthlyExpenses:  req.ApproxMonthlyExpenses,
		LastYearRevenue:        req.LastYearRevenue,
		ProjectedYearlyRevenue: req.ProjectedYearlyRevenue,
	})
	if err != nil {
		c.Logger().Errorf("profile update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "An unexpected error occurred. Please try again later."})
	}

	updated, err := h.Accounts.FindByID(ctx, acct.ID)
	if err != nil {
		c.Logger().Errorf("profile reload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "An unexpected error occurred. Please try again later."})
	}
	return c.JSON(http.StatusOK, newAccountView(updated))
}

// List returns every business in the directory.
func (h *BusinessHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	accts, err := h.Accounts.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("list businesses failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "An unexpected error occurred. Please try again later."})
	}
	return c.JSON(http.StatusOK, newAccountViews(accts))
}

// GetByID returns one business's public view.
func (h *BusinessHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid business id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acct, err := h.Accounts.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Business not found"})
	}
	if err != nil {
		c.Logger().Errorf("get business failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "An unexpected error occurred. Please try again later."})
	}
	return c.JSON(http.StatusOK, newAccountView(acct))
}

// Search runs the simple text search over name, industry, city and country.
func (h *BusinessHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "query must not be empty"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	accts, err := h.Accounts.Search(ctx, query)
	if err != nil {
		c.Logger().Errorf("search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "An unexpected error occurred. Please try again later."})
	}
	return c.JSON(http.StatusOK, newAccountViews(accts))
}

// AdvancedSearch combines filters, ranges, sorting and pagination.  It is a
// members-only feature gated on a fully completed profile.
func (h *BusinessHandler) AdvancedSearch(c echo.Context) error {
	acct, ok := middleware.CurrentAccount(c)
	if !ok {
		c.Response().Header().Set("WWW-Authenticate", "Bearer")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Could not validate credentials"})
	}
	if err := service.RequireCompletion(acct, advancedSearchCompletion); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	}

	q := repository.DirectorySearchQuery{
		Query:     strings.TrimSpace(c.QueryParam("query")),
		Industry:  c.QueryParam("industry"),
		City:      c.QueryParam("city"),
		Country:   c.QueryParam("country"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}

	var bad string
	q.MinRevenue = int64Param(c, "min_revenue", &bad)
	q.MaxRevenue = int64Param(c, "max_revenue", &bad)
	q.MinEmployees = intParam(c, "min_employees", &bad)
	q.MaxEmployees = intParam(c, "max_employees", &bad)
	q.MinYearFounded = intParam(c, "min_year_founded", &bad)
	q.MaxYearFounded = intParam(c, "max_year_founded", &bad)
	if p := intParam(c, "page", &bad); p != nil {
		q.Page = *p
	}
	if p := intParam(c, "page_size", &bad); p != nil {
		q.PageSize = *p
	}
	if bad != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid value for " + bad})
	}
	if q.SortOrder != "" && !strings.EqualFold(q.SortOrder, "asc") && !strings.EqualFold(q.SortOrder, "desc") {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid sort order: " + q.SortOrder})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	accts, total, err := h.Accounts.AdvancedSearch(ctx, q)
	if errors.Is(err, repository.ErrInvalidSort) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid sort field: " + q.SortBy})
	}
	if err != nil {
		c.Logger().Errorf("advanced search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "An unexpected error occurred. Please try again later."})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"results": newAccountViews(accts),
		"total":   total,
	})
}

func intParam(c echo.Context, name string, bad *string) *int {
	v := c.QueryParam(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*bad = name
		return nil
	}
	return &n
}

func int64Param(c echo.Context, name string, bad *string) *int64 {
	v := c.QueryParam(name)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		*bad = name
		return nil
	}
	return &n
}

package repository

import (
	"context"
	"strings"

	"github.com/fbafinance/directory-api/internal/model"
)

// DirectorySearchQuery defines filters, sorting and pagination for the
// advanced directory search.  Range bounds are pointers so zero values can
// be told apart from "not set".
type DirectorySearchQuery struct {
	Query          string // free text over name/industry/city/country
	Industry       string
	City           string
	Country        string
	MinRevenue     *int64
	MaxRevenue     *int64
	MinEmployees   *int
	MaxEmployees   *int
	MinYearFounded *int
	MaxYearFounded *int
	SortBy         string // one of sortColumns keys
	SortOrder      string // asc | desc
	Page           int
	PageSize       int
}

// sortColumns whitelists the sortable fields.  Sorting is interpolated into
// the ORDER BY clause, so anything outside this map is rejected up front.
var sortColumns = map[string]string{
	"business_name": "business_name",
	"industry":      "industry",
	"city":          "city",
	"country":       "country",
	"annualRevenue": "annual_revenue",
	"employeeCount": "employee_count",
	"yearFounded":   "year_founded",
}

// Search performs the simple case-insensitive text search over name,
// industry, city and country.
func (r *AccountRepo) Search(ctx context.Context, query string) ([]model.Account, error) {
	like := "%" + strings.ToLower(query) + "%"
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+accountColumns+` FROM accounts
		WHERE LOWER(business_name) LIKE ?
		   OR LOWER(industry) LIKE ?
		   OR LOWER(city) LIKE ?
		   OR LOWER(country) LIKE ?
		ORDER BY business_name ASC`,
		like, like, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

// AdvancedSearch combines the free-text search with equality and range
// filters, whitelisted sorting and pagination.  It returns the page of
// accounts plus the total match count.
func (r *AccountRepo) AdvancedSearch(ctx context.Context, q DirectorySearchQuery) ([]model.Account, int64, error) {
	where := []string{}
	args := []any{}

	if q.Query != "" {
		like := "%" + strings.ToLower(q.Query) + "%"
		where = append(where,
			"(LOWER(business_name) LIKE ? OR LOWER(industry) LIKE ? OR LOWER(city) LIKE ? OR LOWER(country) LIKE ?)")
		args = append(args, like, like, like, like)
	}
	if q.Industry != "" {
		where = append(where, "industry = ?")
		args = append(args, q.Industry)
	}
	if q.City != "" {
		where = append(where, "city = ?")
		args = append(args, q.City)
	}
	if q.Country != "" {
		where = append(where, "country = ?")
		args = append(args, q.Country)
	}
	if q.MinRevenue != nil {
		where = append(where, "annual_revenue >= ?")
		args = append(args, *q.MinRevenue)
	}
	if q.MaxRevenue != nil {
		where = append(where, "annual_revenue <= ?")
		args = append(args, *q.MaxRevenue)
	}
	if q.MinEmployees != nil {
		where = append(where, "employee_count >= ?")
		args = append(args, *q.MinEmployees)
	}
	if q.MaxEmployees != nil {
		where = append(where, "employee_count <= ?")
		args = append(args, *q.MaxEmployees)
	}
	if q.MinYearFounded != nil {
		where = append(where, "year_founded >= ?")
		args = append(args, *q.MinYearFounded)
	}
	if q.MaxYearFounded != nil {
		where = append(where, "year_founded <= ?")
		args = append(args, *q.MaxYearFounded)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "business_name"
	}
	col, ok := sortColumns[sortBy]
	if !ok {
		return nil, 0, ErrInvalidSort
	}
	dir := "ASC"
	if strings.EqualFold(q.SortOrder, "desc") {
		dir = "DESC"
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM accounts WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	dataArgs := append(append([]any{}, args...), size, (page-1)*size)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE "+cond+
			" ORDER BY "+col+" "+dir+" LIMIT ? OFFSET ?", dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectAccounts(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/fbafinance/directory-api/internal/model"
)

// accountColumns is the canonical select list; scanAccount scans in the
// same order.  Keep the two in sync.
const accountColumns = `id, business_name, business_email, password_hash,
	business_size, registration_number, year_founded, phone, website, city,
	country, address, industry, postal_code, annual_revenue, employee_count,
	has_outstanding_loans, approx_monthly_revenue, approx_monthly_expenses,
	last_year_revenue, projected_yearly_revenue, kyc_status, created_at`

type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.BusinessName, &a.Email, &a.PasswordHash,
		&a.BusinessSize, &a.RegistrationNumber, &a.YearFounded, &a.Phone,
		&a.Website, &a.City, &a.Country, &a.Address, &a.Industry,
		&a.PostalCode, &a.AnnualRevenue, &a.EmployeeCount,
		&a.HasOutstandingLoans, &a.ApproxMonthlyRevenue,
		&a.ApproxMonthlyExpenses, &a.LastYearRevenue,
		&a.ProjectedYearlyRevenue, &a.KYCStatus, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ErrNotFound
	}
	return a, err
}

// FindByEmail fetches an account by normalized email.
func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE business_email=? LIMIT 1", email)
	return scanAccount(row)
}

// FindByID fetches an account by id.
func (r *AccountRepo) FindByID(ctx context.Context, id uint64) (model.Account, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id=? LIMIT 1", id)
	return scanAccount(row)
}

// Insert persists a new account with every optional profile column NULL and
// kyc_status defaulted to Unverified, then returns the stored row.  A
// duplicate-key violation on business_email maps to ErrEmailExists.
func (r *AccountRepo) Insert(ctx context.Context, d model.AccountDraft) (model.Account, error) {
	email := strings.ToLower(strings.TrimSpace(d.Email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (business_name, business_email, password_hash, kyc_status) VALUES (?,?,?,?)",
		d.BusinessName, email, d.PasswordHash, model.KYCUnverified)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return model.Account{}, ErrEmailExists
		}
		return model.Account{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Account{}, err
	}
	return r.FindByID(ctx, uint64(id))
}

// ProfileUpdate carries the fields a business may change about itself.
// Nil means "leave alone".  Email, id, created_at and kyc_status are
// immutable through this path.
type ProfileUpdate struct {
	BusinessName           *string
	BusinessSize           *int
	RegistrationNumber     *string
	YearFounded            *int
	Phone                  *string
	Website                *string
	City                   *string
	Country                *string
	Address                *string
	Industry               *string
	PostalCode             *int
	AnnualRevenue          *int64
	EmployeeCount          *int
	HasOutstandingLoans    *bool
	ApproxMonthlyRevenue   *float64
	ApproxMonthlyExpenses  *float64
	LastYearRevenue        *float64
	ProjectedYearlyRevenue *float64
}

// UpdateProfile applies the non-nil fields of upd to the account row.
// An update with nothing set is a no-op.
func (r *AccountRepo) UpdateProfile(ctx context.Context, id uint64, upd ProfileUpdate) error {
	set := []string{}
	args := []any{}

	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}

	if upd.BusinessName != nil {
		add("business_name", *upd.BusinessName)
	}
	if upd.BusinessSize != nil {
		add("business_size", *upd.BusinessSize)
	}
	if upd.RegistrationNumber != nil {
		add("registration_number", *upd.RegistrationNumber)
	}
	if upd.YearFounded != nil {
		add("year_founded", *upd.YearFounded)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Website != nil {
		add("website", *upd.Website)
	}
	if upd.City != nil {
		add("city", *upd.City)
	}
	if upd.Country != nil {
		add("country", *upd.Country)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.Industry != nil {
		add("industry", *upd.Industry)
	}
	if upd.PostalCode != nil {
		add("postal_code", *upd.PostalCode)
	}
	if upd.AnnualRevenue != nil {
		add("annual_revenue", *upd.AnnualRevenue)
	}
	if upd.EmployeeCount != nil {
		add("employee_count", *upd.EmployeeCount)
	}
	if upd.HasOutstandingLoans != nil {
		add("has_outstanding_loans", *upd.HasOutstandingLoans)
	}
	if upd.ApproxMonthlyRevenue != nil {
		add("approx_monthly_revenue", *upd.ApproxMonthlyRevenue)
	}
	if upd.ApproxMonthlyExpenses != nil {
		add("approx_monthly_expenses", *upd.ApproxMonthlyExpenses)
	}
	if upd.LastYearRevenue != nil {
		add("last_year_revenue", *upd.LastYearRevenue)
	}
	if upd.ProjectedYearlyRevenue != nil {
		add("projected_yearly_revenue", *upd.ProjectedYearlyRevenue)
	}

	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	return err
}

// ListAll returns every account, ordered by name.  The directory is small
// enough that the original exposed an unpaginated listing; we keep that.
func (r *AccountRepo) ListAll(ctx context.Context) ([]model.Account, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts ORDER BY business_name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func collectAccounts(rows *sql.Rows) ([]model.Account, error) {
	out := []model.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

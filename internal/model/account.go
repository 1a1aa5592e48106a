package model

import "time"

// KYC status values stored in accounts.kyc_status.  Every account starts
// out Unverified; the verification flow itself lives outside this service.
const (
	KYCUnverified = "Unverified"
	KYCVerified   = "Verified"
)

// Account represents a business account row in the `accounts` table.
// The email doubles as the authentication principal and is unique.
// PasswordHash is write-only: it is scanned from the database but must
// never appear in an outward-facing response, so handlers map Account
// into their own response types.
//
// All profile attributes beyond name/email are optional and therefore
// pointers; nil means the column is NULL (the field was never filled in).
type Account struct {
	ID           uint64 // accounts.id
	BusinessName string // accounts.business_name
	Email        string // accounts.business_email (unique)
	PasswordHash string // accounts.password_hash (bcrypt)

	BusinessSize       *int    // accounts.business_size
	RegistrationNumber *string // accounts.registration_number
	YearFounded        *int    // accounts.year_founded
	Phone              *string // accounts.phone
	Website            *string // accounts.website
	City               *string // accounts.city
	Country            *string // accounts.country
	Address            *string // accounts.address
	Industry           *string // accounts.industry
	PostalCode         *int    // accounts.postal_code

	AnnualRevenue          *int64   // accounts.annual_revenue
	EmployeeCount          *int     // accounts.employee_count
	HasOutstandingLoans    *bool    // accounts.has_outstanding_loans
	ApproxMonthlyRevenue   *float64 // accounts.approx_monthly_revenue
	ApproxMonthlyExpenses  *float64 // accounts.approx_monthly_expenses
	LastYearRevenue        *float64 // accounts.last_year_revenue
	ProjectedYearlyRevenue *float64 // accounts.projected_yearly_revenue

	KYCStatus string    // accounts.kyc_status
	CreatedAt time.Time // accounts.created_at
}

// AccountDraft holds the fields Registration persists for a brand new
// account.  Everything else defaults to NULL / "Unverified" in the store.
type AccountDraft struct {
	BusinessName string
	Email        string
	PasswordHash string
}

// RevokedToken models a row in the `revoked_tokens` ledger.  Rows are
// append-only: a token is revoked at logout and the record is never
// updated.  TokenExpiresAt mirrors the JWT exp claim so that records for
// tokens which have since expired on their own can be pruned.
type RevokedToken struct {
	ID             uint64    // revoked_tokens.id
	Token          string    // revoked_tokens.token (exact encoded string)
	AccountID      uint64    // revoked_tokens.account_id
	RevokedAt      time.Time // revoked_tokens.revoked_at
	TokenExpiresAt time.Time // revoked_tokens.token_expires_at
}

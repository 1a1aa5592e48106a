package handler

import (
	"time"

	"github.com/fbafinance/directory-api/internal/model"
)

// accountView is the outward-facing representation of an account.  Field
// names match the wire format clients already consume; the password hash has
// no field here at all, so it cannot leak by accident.
type accountView struct {
	ID                     uint64    `json:"id"`
	BusinessName           string    `json:"business_name"`
	Email                  string    `json:"business_email"`
	BusinessSize           *int      `json:"business_size"`
	RegistrationNumber     *string   `json:"registrationNumber"`
	YearFounded            *int      `json:"yearFounded"`
	Phone                  *string   `json:"phone"`
	Website                *string   `json:"website"`
	City                   *string   `json:"city"`
	Country                *string   `json:"country"`
	Address                *string   `json:"address"`
	Industry               *string   `json:"industry"`
	PostalCode             *int      `json:"postalcode"`
	AnnualRevenue          *int64    `json:"annualRevenue"`
	EmployeeCount          *int      `json:"employeeCount"`
	HasOutstandingLoans    *bool     `json:"hasOutstandingLoans"`
	ApproxMonthlyRevenue   *float64  `json:"approximateMonthlyRevenue"`
	ApproxMonthlyExpenses  *float64  `json:"approximateMonthlyExpenses"`
	LastYearRevenue        *float64  `json:"lastYearRevenue"`
	ProjectedYearlyRevenue *float64  `json:"currentYearProjectedRevenue"`
	CreatedAt              time.Time `json:"created_at"`
	KYCStatus              string    `json:"kycStatus"`
}

func newAccountView(a model.Account) accountView {
	return accountView{
		ID:                     a.ID,
		BusinessName:           a.BusinessName,
		Email:                  a.Email,
		BusinessSize:           a.BusinessSize,
		RegistrationNumber:     a.RegistrationNumber,
		YearFounded:            a.YearFounded,
		Phone:                  a.Phone,
		Website:                a.Website,
		City:                   a.City,
		Country:                a.Country,
		Address:                a.Address,
		Industry:               a.Industry,
		PostalCode:             a.PostalCode,
		AnnualRevenue:          a.AnnualRevenue,
		EmployeeCount:          a.EmployeeCount,
		HasOutstandingLoans:    a.HasOutstandingLoans,
		ApproxMonthlyRevenue:   a.ApproxMonthlyRevenue,
		ApproxMonthlyExpenses:  a.ApproxMonthlyExpenses,
		LastYearRevenue:        a.LastYearRevenue,
		ProjectedYearlyRevenue: a.ProjectedYearlyRevenue,
		CreatedAt:              a.CreatedAt,
		KYCStatus:              a.KYCStatus,
	}
}

func newAccountViews(accts []model.Account) []accountView {
	out := make([]accountView, 0, len(accts))
	for _, a := range accts {
		out = append(out, newAccountView(a))
	}
	return out
}

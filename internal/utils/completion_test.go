package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fbafinance/directory-api/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestCompletionPercentEmptyProfile(t *testing.T) {
	a := model.Account{BusinessName: "Acme Co", Email: "a@acme.test"}
	assert.Zero(t, CompletionPercent(a))
}

func TestCompletionPercentPartialProfile(t *testing.T) {
	a := model.Account{
		Industry:      ptr("Logistics"),
		City:          ptr("Rotterdam"),
		Country:       ptr("NL"),
		EmployeeCount: ptr(12),
	}
	// 4 of 17 optional fields.
	assert.InDelta(t, 4.0/17.0*100, CompletionPercent(a), 0.01)
}

func TestCompletionPercentFullProfile(t *testing.T) {
	a := model.Account{
		BusinessSize:           ptr(2),
		RegistrationNumber:     ptr("NL-123"),
		YearFounded:            ptr(2001),
		Phone:                  ptr("+3110123456"),
		Website:                ptr("https://acme.test"),
		City:                   ptr("Rotterdam"),
		Country:                ptr("NL"),
		Address:                ptr("Dock 4"),
		Industry:               ptr("Logistics"),
		PostalCode:             ptr(3011),
		AnnualRevenue:          ptr(int64(5_000_000)),
		EmployeeCount:          ptr(40),
		HasOutstandingLoans:    ptr(false),
		ApproxMonthlyRevenue:   ptr(400_000.0),
		ApproxMonthlyExpenses:  ptr(310_000.0),
		LastYearRevenue:        ptr(4_700_000.0),
		ProjectedYearlyRevenue: ptr(5_500_000.0),
	}
	assert.InDelta(t, 100.0, CompletionPercent(a), 0.001)
}

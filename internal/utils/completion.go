package utils

import "github.com/fbafinance/directory-api/internal/model"

// CompletionPercent returns how much of an account's optional profile is
// filled in, as a percentage of the 17 optional attributes.  Name and email
// are mandatory at registration and do not count.
func CompletionPercent(a model.Account) float64 {
	filled := 0
	total := 0

	count := func(set bool) {
		total++
		if set {
			filled++
		}
	}

	count(a.BusinessSize != nil)
	count(a.RegistrationNumber != nil)
	count(a.YearFounded != nil)
	count(a.Phone != nil)
	count(a.Website != nil)
	count(a.City != nil)
	count(a.Country != nil)
	count(a.Address != nil)
	count(a.Industry != nil)
	count(a.PostalCode != nil)
	count(a.AnnualRevenue != nil)
	count(a.EmployeeCount != nil)
	count(a.HasOutstandingLoans != nil)
	count(a.ApproxMonthlyRevenue != nil)
	count(a.ApproxMonthlyExpenses != nil)
	count(a.LastYearRevenue != nil)
	count(a.ProjectedYearlyRevenue != nil)

	return float64(filled) / float64(total) * 100
}

package model

import "github.com/shopspring/decimal"

// Offer is a priced loan proposal produced by the conveyor. It is not
// persisted on its own: the quote a client selects is stored verbatim as the
// application's applied offer.
//
// The conveyor owns every numeric field; the application id it stamps on a
// quote is not trusted and is overwritten during reconciliation.
type Offer struct {
	ApplicationID      int64           `json:"application_id"`
	RequestedAmount    decimal.Decimal `json:"requested_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	Term               int             `json:"term"`
	MonthlyPayment     decimal.Decimal `json:"monthly_payment"`
	Rate               decimal.Decimal `json:"rate"`
	IsInsuranceEnabled bool            `json:"is_insurance_enabled"`
	IsSalaryClient     bool            `json:"is_salary_client"`
}

package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanforge/deal-service/internal/domain/valueobject"
)

// PaymentScheduleElement is one period of a credit's payment schedule.
// Elements are ordered by Number, 1-indexed, strictly increasing.
type PaymentScheduleElement struct {
	Number           int             `json:"number"`
	Date             time.Time       `json:"date"`
	TotalPayment     decimal.Decimal `json:"total_payment"`
	InterestPayment  decimal.Decimal `json:"interest_payment"`
	DebtPayment      decimal.Decimal `json:"debt_payment"`
	RemainingDebt    decimal.Decimal `json:"remaining_debt"`
}

// AdditionalServices holds the optional services applied to a credit.
type AdditionalServices struct {
	IsInsuranceEnabled bool `json:"is_insurance_enabled"`
	IsSalaryClient     bool `json:"is_salary_client"`
}

// Credit is the final priced loan produced by the conveyor's calculation.
// At most one credit is created per application and it is never deleted.
type Credit struct {
	ID                 int64                    `json:"id"`
	Amount             decimal.Decimal          `json:"amount"`
	Term               int                      `json:"term"`
	MonthlyPayment     decimal.Decimal          `json:"monthly_payment"`
	Rate               decimal.Decimal          `json:"rate"`
	PSK                decimal.Decimal          `json:"psk"`
	PaymentSchedule    []PaymentScheduleElement `json:"payment_schedule"`
	AdditionalServices AdditionalServices       `json:"additional_services"`
	Status             valueobject.CreditStatus `json:"credit_status"`
}

// CalculationResult is the conveyor's response to a calculation request. Its
// fields are taken verbatim when building a Credit.
type CalculationResult struct {
	Amount             decimal.Decimal          `json:"amount"`
	Term               int                      `json:"term"`
	MonthlyPayment     decimal.Decimal          `json:"monthly_payment"`
	Rate               decimal.Decimal          `json:"rate"`
	PSK                decimal.Decimal          `json:"psk"`
	IsInsuranceEnabled bool                     `json:"is_insurance_enabled"`
	IsSalaryClient     bool                     `json:"is_salary_client"`
	PaymentSchedule    []PaymentScheduleElement `json:"payment_schedule"`
}

// NewCalculatedCredit builds a CALCULATED credit from a conveyor calculation
// result.
func NewCalculatedCredit(result CalculationResult) Credit {
	return Credit{
		Amount:          result.Amount,
		Term:            result.Term,
		MonthlyPayment:  result.MonthlyPayment,
		Rate:            result.Rate,
		PSK:             result.PSK,
		PaymentSchedule: result.PaymentSchedule,
		AdditionalServices: AdditionalServices{
			IsInsuranceEnabled: result.IsInsuranceEnabled,
			IsSalaryClient:     result.IsSalaryClient,
		},
		Status: valueobject.CreditStatusCalculated,
	}
}

// ValidateSchedule checks that the payment schedule is 1-indexed with
// strictly increasing period numbers and no gaps.
func (c Credit) ValidateSchedule() error {
	for i, element := range c.PaymentSchedule {
		if element.Number != i+1 {
			return fmt.Errorf("payment schedule element %d has number %d, want %d", i, element.Number, i+1)
		}
	}
	return nil
}

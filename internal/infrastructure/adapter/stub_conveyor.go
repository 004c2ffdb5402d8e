package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanforge/deal-service/internal/domain/model"
)

// StubConveyorClient is a development/test adapter that performs a simplified
// local calculation instead of calling the conveyor service. It implements
// port.ScoringClient with deterministic output.
type StubConveyorClient struct {
	baseRate decimal.Decimal
}

// NewStubConveyorClient creates a stub conveyor with a base yearly rate of 15%.
func NewStubConveyorClient() *StubConveyorClient {
	return &StubConveyorClient{baseRate: decimal.NewFromInt(15)}
}

// RequestOffers returns four deterministic offers: every combination of the
// insurance and salary-client flags, each with its rate discount applied.
func (c *StubConveyorClient) RequestOffers(_ context.Context, request model.LoanRequest) ([]model.Offer, error) {
	combos := []struct {
		insurance bool
		salary    bool
	}{
		{false, false},
		{false, true},
		{true, false},
		{true, true},
	}

	offers := make([]model.Offer, 0, len(combos))
	for _, combo := range combos {
		rate := c.rateFor(combo.insurance, combo.salary)
		total := request.Amount
		if combo.insurance {
			// Insurance premium of 1% of the requested amount.
			total = total.Add(request.Amount.Div(decimal.NewFromInt(100)))
		}
		offers = append(offers, model.Offer{
			RequestedAmount:    request.Amount,
			TotalAmount:        total,
			Term:               request.Term,
			MonthlyPayment:     annuityPayment(total, rate, request.Term),
			Rate:               rate,
			IsInsuranceEnabled: combo.insurance,
			IsSalaryClient:     combo.salary,
		})
	}
	return offers, nil
}

// RequestCalculation computes an annuity payment schedule locally.
func (c *StubConveyorClient) RequestCalculation(_ context.Context, data model.ScoringData) (*model.CalculationResult, error) {
	rate := c.rateFor(data.IsInsuranceEnabled, data.IsSalaryClient)
	payment := annuityPayment(data.Amount, rate, data.Term)

	monthlyRate := rate.Div(decimal.NewFromInt(1200))
	remaining := data.Amount
	schedule := make([]model.PaymentScheduleElement, 0, data.Term)
	start := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 0; i < data.Term; i++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		debt := payment.Sub(interest)
		if i == data.Term-1 {
			// Final payment clears the remaining debt exactly.
			debt = remaining
		}
		remaining = remaining.Sub(debt)
		schedule = append(schedule, model.PaymentScheduleElement{
			Number:          i + 1,
			Date:            start.AddDate(0, i+1, 0),
			TotalPayment:    debt.Add(interest),
			InterestPayment: interest,
			DebtPayment:     debt,
			RemainingDebt:   remaining,
		})
	}

	psk := payment.Mul(decimal.NewFromInt(int64(data.Term)))
	return &model.CalculationResult{
		Amount:             data.Amount,
		Term:               data.Term,
		MonthlyPayment:     payment,
		Rate:               rate,
		PSK:                psk,
		IsInsuranceEnabled: data.IsInsuranceEnabled,
		IsSalaryClient:     data.IsSalaryClient,
		PaymentSchedule:    schedule,
	}, nil
}

func (c *StubConveyorClient) rateFor(insurance, salary bool) decimal.Decimal {
	rate := c.baseRate
	if insurance {
		rate = rate.Sub(decimal.NewFromInt(3))
	}
	if salary {
		rate = rate.Sub(decimal.NewFromInt(1))
	}
	return rate
}

// annuityPayment computes the fixed monthly annuity payment for the given
// principal, yearly rate (percent) and term in months.
func annuityPayment(principal, yearlyRate decimal.Decimal, term int) decimal.Decimal {
	monthlyRate := yearlyRate.Div(decimal.NewFromInt(1200))
	if monthlyRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(term))).Round(2)
	}
	one := decimal.NewFromInt(1)
	growth := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(term)))
	return principal.Mul(monthlyRate).Mul(growth).Div(growth.Sub(one)).Round(2)
}

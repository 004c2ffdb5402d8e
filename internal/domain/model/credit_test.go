package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/valueobject"
)

func sampleResult() model.CalculationResult {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return model.CalculationResult{
		Amount:             decimal.NewFromInt(300000),
		Term:               3,
		MonthlyPayment:     decimal.NewFromFloat(102337.65),
		Rate:               decimal.NewFromInt(14),
		PSK:                decimal.NewFromFloat(307012.95),
		IsInsuranceEnabled: true,
		PaymentSchedule: []model.PaymentScheduleElement{
			{Number: 1, Date: start, TotalPayment: decimal.NewFromFloat(102337.65)},
			{Number: 2, Date: start.AddDate(0, 1, 0), TotalPayment: decimal.NewFromFloat(102337.65)},
			{Number: 3, Date: start.AddDate(0, 2, 0), TotalPayment: decimal.NewFromFloat(102337.65)},
		},
	}
}

func TestNewCalculatedCredit(t *testing.T) {
	credit := model.NewCalculatedCredit(sampleResult())

	assert.Zero(t, credit.ID)
	assert.True(t, credit.Status.Equal(valueobject.CreditStatusCalculated))
	assert.True(t, credit.Amount.Equal(decimal.NewFromInt(300000)))
	assert.Equal(t, 3, credit.Term)
	assert.True(t, credit.AdditionalServices.IsInsuranceEnabled)
	assert.False(t, credit.AdditionalServices.IsSalaryClient)
	assert.Len(t, credit.PaymentSchedule, 3)
}

func TestCredit_ValidateSchedule(t *testing.T) {
	t.Run("accepts a contiguous 1-indexed schedule", func(t *testing.T) {
		credit := model.NewCalculatedCredit(sampleResult())
		require.NoError(t, credit.ValidateSchedule())
	})

	t.Run("rejects a gap in period numbers", func(t *testing.T) {
		result := sampleResult()
		result.PaymentSchedule[2].Number = 4
		credit := model.NewCalculatedCredit(result)

		err := credit.ValidateSchedule()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "want 3")
	})

	t.Run("rejects a zero-indexed schedule", func(t *testing.T) {
		result := sampleResult()
		for i := range result.PaymentSchedule {
			result.PaymentSchedule[i].Number = i
		}
		credit := model.NewCalculatedCredit(result)
		require.Error(t, credit.ValidateSchedule())
	})

	t.Run("empty schedule is valid", func(t *testing.T) {
		credit := model.Credit{}
		require.NoError(t, credit.ValidateSchedule())
	})
}

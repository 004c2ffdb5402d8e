package postgres_test

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/infrastructure/persistence/postgres"
)

func TestCreditRepository_Save(t *testing.T) {
	credit := model.NewCalculatedCredit(model.CalculationResult{
		Amount:         decimal.NewFromInt(300000),
		Term:           12,
		MonthlyPayment: decimal.NewFromFloat(27375.55),
		Rate:           decimal.NewFromInt(14),
		PSK:            decimal.NewFromFloat(328506.60),
		PaymentSchedule: []model.PaymentScheduleElement{
			{Number: 1, TotalPayment: decimal.NewFromFloat(27375.55)},
		},
	})

	t.Run("insert assigns the id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO credits").
			WithArgs(
				credit.Amount, 12, credit.MonthlyPayment, credit.Rate, credit.PSK,
				pgxmock.AnyArg(), false, false, "CALCULATED",
			).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

		repo := postgres.NewCreditRepository(mock)
		saved, err := repo.Save(context.Background(), credit)

		require.NoError(t, err)
		assert.Equal(t, int64(42), saved.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing credit is updated in place", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE credits").
			WithArgs(
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		existing := credit
		existing.ID = 42

		repo := postgres.NewCreditRepository(mock)
		saved, err := repo.Save(context.Background(), existing)

		require.NoError(t, err)
		assert.Equal(t, int64(42), saved.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

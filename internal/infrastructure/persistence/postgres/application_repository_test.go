package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/valueobject"
	"github.com/loanforge/deal-service/internal/infrastructure/persistence/postgres"
)

func newApplication() model.Application {
	client := newClient()
	client.ID = 5
	return model.NewApplication(client, time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC))
}

func TestApplicationRepository_Save(t *testing.T) {
	t.Run("insert assigns the id and keeps the version", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO applications").
			WithArgs(
				int64(5), pgxmock.AnyArg(), "PREAPPROVAL", pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), 1,
			).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(17)))

		repo := postgres.NewApplicationRepository(mock)
		saved, err := repo.Save(context.Background(), newApplication())

		require.NoError(t, err)
		assert.Equal(t, int64(17), saved.ID())
		assert.Equal(t, 1, saved.Version())
		assert.Len(t, saved.StatusHistory(), 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update bumps the version on success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		app := newApplication()
		offer := model.Offer{ApplicationID: 17, Rate: decimal.NewFromInt(14), Term: 12}
		app = app.ApplyOffer(offer, time.Now().UTC())
		persisted := model.ReconstructApplication(
			17, app.Client(), nil, app.Status(), app.CreationDate(),
			app.AppliedOffer(), nil, nil, app.StatusHistory(), 3,
		)

		mock.ExpectExec("UPDATE applications").
			WithArgs(
				int64(17), int64(5), pgxmock.AnyArg(), "APPROVED",
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), 3,
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewApplicationRepository(mock)
		saved, err := repo.Save(context.Background(), persisted)
		require.NoError(t, err)
		assert.Equal(t, 4, saved.Version())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("losing the optimistic-lock race fails with a conflict", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		app := newApplication()
		persisted := model.ReconstructApplication(
			17, app.Client(), nil, app.Status(), app.CreationDate(),
			nil, nil, nil, app.StatusHistory(), 2,
		)

		mock.ExpectExec("UPDATE applications").
			WithArgs(
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(),
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := postgres.NewApplicationRepository(mock)
		_, err = repo.Save(context.Background(), persisted)

		require.Error(t, err)
		assert.ErrorIs(t, err, valueobject.ErrVersionConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplicationRepository_FindByID(t *testing.T) {
	t.Run("loads the aggregate with its client", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		creation := time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC)
		offer := model.Offer{ApplicationID: 17, Rate: decimal.NewFromInt(14), Term: 12}
		offerDoc, err := json.Marshal(offer)
		require.NoError(t, err)
		historyDoc, err := json.Marshal([]model.StatusHistoryElement{
			{Status: valueobject.ApplicationStatusPreapproval, Date: creation},
			{Status: valueobject.ApplicationStatusApproved, Date: creation.Add(time.Hour)},
		})
		require.NoError(t, err)
		passportDoc, err := json.Marshal(valueobject.Passport{Series: 1234, Number: 567890})
		require.NoError(t, err)

		mock.ExpectQuery("SELECT (.+) FROM applications").
			WithArgs(int64(17)).
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "client_id", "credit_id", "status", "creation_date",
				"applied_offer", "sign_date", "ses_code", "status_history", "version",
			}).AddRow(
				int64(17), int64(5), nil, "APPROVED", creation,
				offerDoc, nil, nil, historyDoc, 2,
			))

		mock.ExpectQuery("SELECT (.+) FROM clients").
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "first_name", "last_name", "middle_name", "birth_date", "email",
				"gender", "marital_status", "dependent_amount", "passport", "employment", "account",
			}).AddRow(
				int64(5), "Anna", "Karimova", "",
				time.Date(1990, 5, 14, 0, 0, 0, 0, time.UTC), "anna@example.com",
				nil, nil, nil, passportDoc, nil, nil,
			))

		repo := postgres.NewApplicationRepository(mock)
		app, err := repo.FindByID(context.Background(), 17)

		require.NoError(t, err)
		assert.Equal(t, int64(17), app.ID())
		assert.True(t, app.Status().Equal(valueobject.ApplicationStatusApproved))
		assert.Equal(t, 2, app.Version())
		assert.Equal(t, "Anna", app.Client().FirstName)
		require.NotNil(t, app.AppliedOffer())
		assert.Equal(t, "14", app.AppliedOffer().Rate.String())
		assert.Nil(t, app.Credit())
		assert.Len(t, app.StatusHistory(), 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT (.+) FROM applications").
			WithArgs(int64(404)).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewApplicationRepository(mock)
		_, err = repo.FindByID(context.Background(), 404)

		require.Error(t, err)
		assert.ErrorIs(t, err, valueobject.ErrApplicationNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

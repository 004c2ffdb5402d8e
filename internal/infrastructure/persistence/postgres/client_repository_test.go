package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/valueobject"
	"github.com/loanforge/deal-service/internal/infrastructure/persistence/postgres"
)

func newClient() model.Client {
	return model.Client{
		FirstName: "Anna",
		LastName:  "Karimova",
		BirthDate: time.Date(1990, 5, 14, 0, 0, 0, 0, time.UTC),
		Email:     "anna@example.com",
		Passport:  valueobject.Passport{Series: 1234, Number: 567890},
	}
}

func TestClientRepository_Save(t *testing.T) {
	t.Run("insert assigns the id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO clients").
			WithArgs(
				"Anna", "Karimova", "", newClient().BirthDate, "anna@example.com",
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))

		repo := postgres.NewClientRepository(mock)
		saved, err := repo.Save(context.Background(), newClient())

		require.NoError(t, err)
		assert.Equal(t, int64(5), saved.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing client is updated in place", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE clients").
			WithArgs(
				int64(5), "Anna", "Karimova", "", pgxmock.AnyArg(), "anna@example.com",
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		client := newClient()
		client.ID = 5
		client.Gender = valueobject.GenderFemale

		repo := postgres.NewClientRepository(mock)
		saved, err := repo.Save(context.Background(), client)

		require.NoError(t, err)
		assert.Equal(t, int64(5), saved.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClientRepository_FindByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	issueDate := time.Date(2015, 3, 10, 0, 0, 0, 0, time.UTC)
	passport, err := json.Marshal(valueobject.Passport{
		Series: 1234, Number: 567890,
		IssueDate: &issueDate, IssueBranch: "Branch 77",
	})
	require.NoError(t, err)

	gender := "FEMALE"
	marital := "MARRIED"
	account := "234234264363"
	dependents := 2

	mock.ExpectQuery("SELECT (.+) FROM clients").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "first_name", "last_name", "middle_name", "birth_date", "email",
			"gender", "marital_status", "dependent_amount", "passport", "employment", "account",
		}).AddRow(
			int64(5), "Anna", "Karimova", "",
			time.Date(1990, 5, 14, 0, 0, 0, 0, time.UTC), "anna@example.com",
			&gender, &marital, &dependents, passport, nil, &account,
		))

	repo := postgres.NewClientRepository(mock)
	client, err := repo.FindByID(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), client.ID)
	assert.True(t, client.Gender.Equal(valueobject.GenderFemale))
	assert.True(t, client.MaritalStatus.Equal(valueobject.MaritalStatusMarried))
	require.NotNil(t, client.DependentAmount)
	assert.Equal(t, 2, *client.DependentAmount)
	require.NotNil(t, client.Passport.IssueDate)
	assert.Equal(t, "Branch 77", client.Passport.IssueBranch)
	assert.Equal(t, "234234264363", client.Account)
	assert.True(t, client.Employment.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanforge/deal-service/internal/application/usecase"
	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/valueobject"
)

func TestGetApplication_Execute(t *testing.T) {
	t.Run("returns the stored application", func(t *testing.T) {
		appRepo := &mockApplicationRepository{
			findByIDFunc: func(_ context.Context, id int64) (model.Application, error) {
				return approvedApplication(id), nil
			},
		}

		uc := usecase.NewGetApplicationUseCase(appRepo)

		resp, err := uc.Execute(context.Background(), 21)
		require.NoError(t, err)

		assert.Equal(t, int64(21), resp.ID)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Equal(t, "Anna", resp.Client.FirstName)
		require.NotNil(t, resp.AppliedOffer)
		assert.Nil(t, resp.Credit)
		assert.Len(t, resp.StatusHistory, 2)
	})

	t.Run("unknown id fails with not found", func(t *testing.T) {
		uc := usecase.NewGetApplicationUseCase(&mockApplicationRepository{})

		_, err := uc.Execute(context.Background(), 404)
		require.Error(t, err)
		assert.ErrorIs(t, err, valueobject.ErrApplicationNotFound)
	})
}

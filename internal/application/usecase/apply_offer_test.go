package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanforge/deal-service/internal/application/usecase"
	"github.com/loanforge/deal-service/internal/domain/event"
	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/valueobject"
)

func storedApplication(id int64) model.Application {
	now := time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC)
	client := model.Client{
		ID:        3,
		FirstName: "Anna",
		LastName:  "Karimova",
		BirthDate: time.Date(1990, 5, 14, 0, 0, 0, 0, time.UTC),
		Email:     "anna@example.com",
		Passport:  valueobject.Passport{Series: 1234, Number: 567890},
	}
	return model.ReconstructApplication(
		id, client, nil, valueobject.ApplicationStatusPreapproval, now,
		nil, nil, nil,
		[]model.StatusHistoryElement{{Status: valueobject.ApplicationStatusPreapproval, Date: now}},
		1,
	)
}

func selectedOffer(appID int64) model.Offer {
	return model.Offer{
		ApplicationID:   appID,
		RequestedAmount: decimal.NewFromInt(300000),
		TotalAmount:     decimal.NewFromInt(300000),
		Term:            12,
		MonthlyPayment:  decimal.NewFromFloat(27375.55),
		Rate:            decimal.NewFromInt(14),
		IsSalaryClient:  true,
	}
}

func TestApplyOffer_Execute(t *testing.T) {
	t.Run("applies the offer and moves the application to APPROVED", func(t *testing.T) {
		appRepo := &mockApplicationRepository{
			findByIDFunc: func(_ context.Context, id int64) (model.Application, error) {
				return storedApplication(id), nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewApplyOfferUseCase(appRepo, publisher)

		err := uc.Execute(context.Background(), selectedOffer(17))
		require.NoError(t, err)

		require.Len(t, appRepo.savedApps, 1)
		saved := appRepo.savedApps[0]
		assert.True(t, saved.Status().Equal(valueobject.ApplicationStatusApproved))
		require.NotNil(t, saved.AppliedOffer())
		assert.True(t, saved.AppliedOffer().IsSalaryClient)

		history := saved.StatusHistory()
		require.Len(t, history, 2)
		assert.True(t, history[1].Status.Equal(valueobject.ApplicationStatusApproved))

		// Client record is not touched by offer selection.
		assert.Equal(t, storedApplication(17).Client(), saved.Client())
	})

	t.Run("publishes an offer applied event", func(t *testing.T) {
		appRepo := &mockApplicationRepository{
			findByIDFunc: func(_ context.Context, id int64) (model.Application, error) {
				return storedApplication(id), nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewApplyOfferUseCase(appRepo, publisher)

		require.NoError(t, uc.Execute(context.Background(), selectedOffer(17)))

		require.Len(t, publisher.publishedEvents, 1)
		applied, ok := publisher.publishedEvents[0].(event.OfferApplied)
		require.True(t, ok)
		assert.Equal(t, "deal.offer.applied", applied.EventType())
		assert.Equal(t, int64(17), applied.AggregateID())
	})

	t.Run("unknown application id fails with no side effects", func(t *testing.T) {
		appRepo := &mockApplicationRepository{} // FindByID misses by default
		publisher := &mockEventPublisher{}

		uc := usecase.NewApplyOfferUseCase(appRepo, publisher)

		err := uc.Execute(context.Background(), selectedOffer(404))
		require.Error(t, err)
		assert.ErrorIs(t, err, valueobject.ErrApplicationNotFound)
		assert.Empty(t, appRepo.savedApps)
		assert.Empty(t, publisher.publishedEvents)
	})
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/loanforge/deal-service/internal/domain/event"
	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/port"
)

// ApplyOfferUseCase records the offer a client selected.
type ApplyOfferUseCase struct {
	appRepo   port.ApplicationRepository
	publisher port.EventPublisher
}

// NewApplyOfferUseCase wires dependencies.
func NewApplyOfferUseCase(appRepo port.ApplicationRepository, publisher port.EventPublisher) *ApplyOfferUseCase {
	return &ApplyOfferUseCase{
		appRepo:   appRepo,
		publisher: publisher,
	}
}

// Execute applies the offer to the application it references: the
// application moves to APPROVED and the offer is stored on it. A lookup
// miss returns valueobject.ErrApplicationNotFound with no side effects.
func (uc *ApplyOfferUseCase) Execute(ctx context.Context, offer model.Offer) error {
	app, err := uc.appRepo.FindByID(ctx, offer.ApplicationID)
	if err != nil {
		return fmt.Errorf("find application %d: %w", offer.ApplicationID, err)
	}

	app = app.ApplyOffer(offer, time.Now().UTC())

	if _, err := uc.appRepo.Save(ctx, app); err != nil {
		return fmt.Errorf("save application: %w", err)
	}

	if err := uc.publisher.Publish(ctx, event.NewOfferApplied(app.ID(), offer.RequestedAmount, offer.Term, offer.Rate)); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}

	return nil
}

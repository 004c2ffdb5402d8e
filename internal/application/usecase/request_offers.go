package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/loanforge/deal-service/internal/application/dto"
	"github.com/loanforge/deal-service/internal/domain/event"
	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/port"
	"github.com/loanforge/deal-service/internal/domain/service"
	"github.com/loanforge/deal-service/internal/domain/valueobject"
)

// RequestOffersUseCase handles the initial loan application: it creates the
// client and application records, asks the conveyor for quotes, and
// reconciles the returned list.
type RequestOffersUseCase struct {
	clientRepo port.ClientRepository
	appRepo    port.ApplicationRepository
	scoring    port.ScoringClient
	reconciler *service.OfferReconciler
	publisher  port.EventPublisher
}

// NewRequestOffersUseCase wires dependencies.
func NewRequestOffersUseCase(
	clientRepo port.ClientRepository,
	appRepo port.ApplicationRepository,
	scoring port.ScoringClient,
	reconciler *service.OfferReconciler,
	publisher port.EventPublisher,
) *RequestOffersUseCase {
	return &RequestOffersUseCase{
		clientRepo: clientRepo,
		appRepo:    appRepo,
		scoring:    scoring,
		reconciler: reconciler,
		publisher:  publisher,
	}
}

// Execute persists a new client and application, fetches quotes from the
// conveyor, and returns them stamped with the application id, ordered from
// worst terms to best.
func (uc *RequestOffersUseCase) Execute(
	ctx context.Context,
	req dto.LoanApplicationRequest,
) ([]model.Offer, error) {
	now := time.Now().UTC()

	// 1. Create the client from prescoring data; persist to obtain its id.
	client := model.Client{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		BirthDate:  req.BirthDate,
		Email:      req.Email,
		Passport: valueobject.Passport{
			Series: req.PassportSeries,
			Number: req.PassportNumber,
		},
	}
	client, err := uc.clientRepo.Save(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("save client: %w", err)
	}

	// 2. Create the application referencing the client; persist for an id.
	app := model.NewApplication(client, now)
	app, err = uc.appRepo.Save(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("save application: %w", err)
	}

	// 3. Ask the conveyor for quotes.
	offers, err := uc.scoring.RequestOffers(ctx, model.LoanRequest{
		Amount:         req.Amount,
		Term:           req.Term,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MiddleName:     req.MiddleName,
		Email:          req.Email,
		BirthDate:      req.BirthDate,
		PassportSeries: req.PassportSeries,
		PassportNumber: req.PassportNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("request offers: %w", err)
	}

	// 4. Stamp the local application id and impose the canonical order.
	reconciled := uc.reconciler.Reconcile(app.ID(), offers)

	if err := uc.publisher.Publish(ctx, event.NewApplicationCreated(app.ID(), client.ID, req.Amount, req.Term)); err != nil {
		return nil, fmt.Errorf("publish events: %w", err)
	}

	return reconciled, nil
}

package usecase_test

import (
	"context"

	"github.com/loanforge/deal-service/internal/domain/event"
	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockApplicationRepository struct {
	saveFunc     func(ctx context.Context, app model.Application) (model.Application, error)
	findByIDFunc func(ctx context.Context, id int64) (model.Application, error)
	savedApps    []model.Application
}

func (m *mockApplicationRepository) Save(ctx context.Context, app model.Application) (model.Application, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, app)
	}
	if app.ID() == 0 {
		app = model.ReconstructApplication(
			int64(len(m.savedApps)+1), app.Client(), app.Credit(), app.Status(),
			app.CreationDate(), app.AppliedOffer(), app.SignDate(), app.SesCode(),
			app.StatusHistory(), app.Version(),
		)
	}
	m.savedApps = append(m.savedApps, app)
	return app, nil
}

func (m *mockApplicationRepository) FindByID(ctx context.Context, id int64) (model.Application, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Application{}, valueobject.ErrApplicationNotFound
}

type mockClientRepository struct {
	saveFunc     func(ctx context.Context, client model.Client) (model.Client, error)
	savedClients []model.Client
}

func (m *mockClientRepository) Save(ctx context.Context, client model.Client) (model.Client, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, client)
	}
	if client.ID == 0 {
		client.ID = int64(len(m.savedClients) + 1)
	}
	m.savedClients = append(m.savedClients, client)
	return client, nil
}

func (m *mockClientRepository) FindByID(_ context.Context, _ int64) (model.Client, error) {
	return model.Client{}, nil
}

type mockCreditRepository struct {
	saveFunc     func(ctx context.Context, credit model.Credit) (model.Credit, error)
	savedCredits []model.Credit
}

func (m *mockCreditRepository) Save(ctx context.Context, credit model.Credit) (model.Credit, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, credit)
	}
	if credit.ID == 0 {
		credit.ID = int64(len(m.savedCredits) + 1)
	}
	m.savedCredits = append(m.savedCredits, credit)
	return credit, nil
}

type mockScoringClient struct {
	requestOffersFunc      func(ctx context.Context, request model.LoanRequest) ([]model.Offer, error)
	requestCalculationFunc func(ctx context.Context, data model.ScoringData) (*model.CalculationResult, error)
	calculationRequests    []model.ScoringData
}

func (m *mockScoringClient) RequestOffers(ctx context.Context, request model.LoanRequest) ([]model.Offer, error) {
	if m.requestOffersFunc != nil {
		return m.requestOffersFunc(ctx, request)
	}
	return nil, nil
}

func (m *mockScoringClient) RequestCalculation(ctx context.Context, data model.ScoringData) (*model.CalculationResult, error) {
	m.calculationRequests = append(m.calculationRequests, data)
	if m.requestCalculationFunc != nil {
		return m.requestCalculationFunc(ctx, data)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, events...)
	}
	m.publishedEvents = append(m.publishedEvents, events...)
	return nil
}

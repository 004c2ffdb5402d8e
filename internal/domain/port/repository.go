package port

import (
	"context"

	"github.com/loanforge/deal-service/internal/domain/event"
	"github.com/loanforge/deal-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ApplicationRepository persists and retrieves applications. Save returns
// the persisted form, assigning an id on first save; FindByID returns
// valueobject.ErrApplicationNotFound when no record matches.
type ApplicationRepository interface {
	Save(ctx context.Context, app model.Application) (model.Application, error)
	FindByID(ctx context.Context, id int64) (model.Application, error)
}

// ClientRepository persists and retrieves clients.
type ClientRepository interface {
	Save(ctx context.Context, client model.Client) (model.Client, error)
	FindByID(ctx context.Context, id int64) (model.Client, error)
}

// CreditRepository persists credits.
type CreditRepository interface {
	Save(ctx context.Context, credit model.Credit) (model.Credit, error)
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// ScoringClient talks to the conveyor service. RequestCalculation returns
// (nil, nil) when the conveyor explicitly declines to price the credit; that
// is a business outcome, not an error. Transport failures are returned as
// errors.
type ScoringClient interface {
	RequestOffers(ctx context.Context, request model.LoanRequest) ([]model.Offer, error)
	RequestCalculation(ctx context.Context, data model.ScoringData) (*model.CalculationResult, error)
}

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

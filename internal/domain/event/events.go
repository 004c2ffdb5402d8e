package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainEvent is implemented by every event the deal service publishes.
type DomainEvent interface {
	EventType() string
	AggregateID() int64
	OccurredAt() time.Time
}

// BaseEvent carries the fields shared by all events. Fields are exported so
// events serialise cleanly to JSON for the broker.
type BaseEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Type          string    `json:"event_type"`
	ApplicationID int64     `json:"application_id"`
	At            time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a BaseEvent with a generated id and the current time.
func NewBaseEvent(eventType string, applicationID int64) BaseEvent {
	return BaseEvent{
		EventID:       uuid.New(),
		Type:          eventType,
		ApplicationID: applicationID,
		At:            time.Now().UTC(),
	}
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() int64    { return e.ApplicationID }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

// ApplicationCreated is raised when a new application enters the system.
type ApplicationCreated struct {
	BaseEvent
	ClientID        int64           `json:"client_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Term            int             `json:"term"`
}

func NewApplicationCreated(applicationID, clientID int64, amount decimal.Decimal, term int) ApplicationCreated {
	return ApplicationCreated{
		BaseEvent:       NewBaseEvent("deal.application.created", applicationID),
		ClientID:        clientID,
		RequestedAmount: amount,
		Term:            term,
	}
}

// OfferApplied is raised when a client selects one of the generated offers.
type OfferApplied struct {
	BaseEvent
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Term            int             `json:"term"`
	Rate            decimal.Decimal `json:"rate"`
}

func NewOfferApplied(applicationID int64, amount decimal.Decimal, term int, rate decimal.Decimal) OfferApplied {
	return OfferApplied{
		BaseEvent:       NewBaseEvent("deal.offer.applied", applicationID),
		RequestedAmount: amount,
		Term:            term,
		Rate:            rate,
	}
}

// CalculationApproved is raised when the conveyor prices the credit.
type CalculationApproved struct {
	BaseEvent
	CreditID       int64           `json:"credit_id"`
	Amount         decimal.Decimal `json:"amount"`
	Term           int             `json:"term"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Rate           decimal.Decimal `json:"rate"`
}

func NewCalculationApproved(applicationID, creditID int64, amount decimal.Decimal, term int, monthlyPayment, rate decimal.Decimal) CalculationApproved {
	return CalculationApproved{
		BaseEvent:      NewBaseEvent("deal.calculation.approved", applicationID),
		CreditID:       creditID,
		Amount:         amount,
		Term:           term,
		MonthlyPayment: monthlyPayment,
		Rate:           rate,
	}
}

// CalculationDenied is raised when the conveyor declines to price the credit.
type CalculationDenied struct {
	BaseEvent
}

func NewCalculationDenied(applicationID int64) CalculationDenied {
	return CalculationDenied{
		BaseEvent: NewBaseEvent("deal.calculation.denied", applicationID),
	}
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/loanforge/deal-service/internal/application/dto"
	"github.com/loanforge/deal-service/internal/domain/event"
	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/port"
)

// CalculateCreditUseCase finishes registration and requests the final credit
// calculation from the conveyor.
type CalculateCreditUseCase struct {
	appRepo    port.ApplicationRepository
	clientRepo port.ClientRepository
	creditRepo port.CreditRepository
	scoring    port.ScoringClient
	publisher  port.EventPublisher
	logger     *slog.Logger
}

// NewCalculateCreditUseCase wires dependencies.
func NewCalculateCreditUseCase(
	appRepo port.ApplicationRepository,
	clientRepo port.ClientRepository,
	creditRepo port.CreditRepository,
	scoring port.ScoringClient,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *CalculateCreditUseCase {
	return &CalculateCreditUseCase{
		appRepo:    appRepo,
		clientRepo: clientRepo,
		creditRepo: creditRepo,
		scoring:    scoring,
		publisher:  publisher,
		logger:     logger,
	}
}

// Execute merges registration data into the client, builds the scoring
// request from the client and the applied offer, invokes the conveyor, and
// records the outcome: a priced result attaches a CALCULATED credit and
// moves the application to CC_APPROVED, an explicit no-result moves it to
// CC_DENIED. Applications already in a terminal denial status are left
// untouched.
func (uc *CalculateCreditUseCase) Execute(
	ctx context.Context,
	req dto.FinishRegistrationRequest,
	applicationID int64,
) error {
	now := time.Now().UTC()

	// 1. Load the application.
	app, err := uc.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("find application %d: %w", applicationID, err)
	}

	// 2. Archived applications accept no further calculation attempts.
	// Deliberate no-op, not an error.
	if app.IsArchived() {
		uc.logger.Warn("skipping calculation: application is archived",
			"application_id", applicationID,
			"status", app.Status().String(),
		)
		return nil
	}

	// 3. Merge registration data into the client and persist it.
	dependents := req.DependentAmount
	client := app.Client().CompleteRegistration(model.Registration{
		Gender:              req.Gender,
		MaritalStatus:       req.MaritalStatus,
		DependentAmount:     &dependents,
		PassportIssueDate:   req.PassportIssueDate,
		PassportIssueBranch: req.PassportIssueBranch,
		Employment:          req.Employment,
		Account:             req.Account,
	})
	client, err = uc.clientRepo.Save(ctx, client)
	if err != nil {
		return fmt.Errorf("save client: %w", err)
	}
	app = app.WithClient(client)

	// 4. Build the scoring request; missing data aborts before any remote
	// call.
	scoringData, err := model.BuildScoringData(app)
	if err != nil {
		return fmt.Errorf("build scoring data: %w", err)
	}

	// 5. Ask the conveyor for the final calculation.
	result, err := uc.scoring.RequestCalculation(ctx, scoringData)
	if err != nil {
		return fmt.Errorf("request calculation: %w", err)
	}

	var evt event.DomainEvent
	if result == nil {
		// Explicit no-result from the conveyor is a business denial.
		app = app.DenyCalculation(now)
		evt = event.NewCalculationDenied(app.ID())
		uc.logger.Info("calculation denied by conveyor", "application_id", applicationID)
	} else {
		credit := model.NewCalculatedCredit(*result)
		credit, err = uc.creditRepo.Save(ctx, credit)
		if err != nil {
			return fmt.Errorf("save credit: %w", err)
		}
		app = app.ApproveCalculation(credit, now)
		evt = event.NewCalculationApproved(app.ID(), credit.ID, credit.Amount, credit.Term, credit.MonthlyPayment, credit.Rate)
	}

	// 6. Persist the application exactly once per invocation.
	if _, err := uc.appRepo.Save(ctx, app); err != nil {
		return fmt.Errorf("save application: %w", err)
	}

	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}

	return nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/loanforge/deal-service/internal/application/dto"
	"github.com/loanforge/deal-service/internal/domain/port"
)

// GetApplicationUseCase serves read requests for a single application.
type GetApplicationUseCase struct {
	appRepo port.ApplicationRepository
}

// NewGetApplicationUseCase wires dependencies.
func NewGetApplicationUseCase(appRepo port.ApplicationRepository) *GetApplicationUseCase {
	return &GetApplicationUseCase{appRepo: appRepo}
}

// Execute fetches an application by id.
func (uc *GetApplicationUseCase) Execute(ctx context.Context, id int64) (dto.ApplicationResponse, error) {
	app, err := uc.appRepo.FindByID(ctx, id)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application %d: %w", id, err)
	}

	return dto.ApplicationResponse{
		ID:            app.ID(),
		Status:        app.Status().String(),
		CreationDate:  app.CreationDate(),
		Client:        app.Client(),
		AppliedOffer:  app.AppliedOffer(),
		Credit:        app.Credit(),
		StatusHistory: app.StatusHistory(),
	}, nil
}

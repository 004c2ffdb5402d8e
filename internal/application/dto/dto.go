package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/valueobject"
)

// LoanApplicationRequest is the prescoring data a client submits when
// requesting offers.
type LoanApplicationRequest struct {
	Amount         decimal.Decimal
	Term           int
	FirstName      string
	LastName       string
	MiddleName     string
	Email          string
	BirthDate      time.Time
	PassportSeries int
	PassportNumber int
}

// FinishRegistrationRequest is the data a client submits to complete
// registration before the final calculation. Enum fields are already parsed
// value objects; unknown names are rejected at the API boundary.
type FinishRegistrationRequest struct {
	Gender              valueobject.Gender
	MaritalStatus       valueobject.MaritalStatus
	DependentAmount     int
	PassportIssueDate   time.Time
	PassportIssueBranch string
	Employment          valueobject.Employment
	Account             string
}

// ApplicationResponse is the read model returned to the API layer.
type ApplicationResponse struct {
	ID            int64
	Status        string
	CreationDate  time.Time
	Client        model.Client
	AppliedOffer  *model.Offer
	Credit        *model.Credit
	StatusHistory []model.StatusHistoryElement
}

package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanforge/deal-service/internal/domain/valueobject"
)

// LoanRequest is the prescoring payload sent to the conveyor when requesting
// offers. It carries only the data known at first contact.
type LoanRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Term           int             `json:"term"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	MiddleName     string          `json:"middle_name,omitempty"`
	Email          string          `json:"email"`
	BirthDate      time.Time       `json:"birthdate"`
	PassportSeries int             `json:"passport_series"`
	PassportNumber int             `json:"passport_number"`
}

// ScoringData is the full scoring payload sent to the conveyor when
// requesting the final calculation. It combines the completed client record
// with the terms of the applied offer.
type ScoringData struct {
	Amount              decimal.Decimal                `json:"amount"`
	Term                int                            `json:"term"`
	FirstName           string                         `json:"first_name"`
	LastName            string                         `json:"last_name"`
	MiddleName          string                         `json:"middle_name,omitempty"`
	Gender              valueobject.Gender             `json:"gender"`
	BirthDate           time.Time                      `json:"birthdate"`
	PassportSeries      int                            `json:"passport_series"`
	PassportNumber      int                            `json:"passport_number"`
	PassportIssueDate   time.Time                      `json:"passport_issue_date"`
	PassportIssueBranch string                         `json:"passport_issue_branch"`
	MaritalStatus       valueobject.MaritalStatus      `json:"marital_status"`
	DependentAmount     int                            `json:"dependent_amount"`
	Employment          valueobject.Employment         `json:"employment"`
	Account             string                         `json:"account"`
	IsInsuranceEnabled  bool                           `json:"is_insurance_enabled"`
	IsSalaryClient      bool                           `json:"is_salary_client"`
}

// BuildScoringData assembles the scoring payload from an application whose
// client finished registration. Any field the conveyor requires that is
// still missing fails with a MissingFieldError before any remote call is
// made.
func BuildScoringData(app Application) (ScoringData, error) {
	offer := app.AppliedOffer()
	if offer == nil {
		return ScoringData{}, valueobject.MissingFieldError{Field: "applied offer"}
	}

	client := app.Client()
	if client.Gender.IsZero() {
		return ScoringData{}, valueobject.MissingFieldError{Field: "gender"}
	}
	if client.MaritalStatus.IsZero() {
		return ScoringData{}, valueobject.MissingFieldError{Field: "marital status"}
	}
	if client.DependentAmount == nil {
		return ScoringData{}, valueobject.MissingFieldError{Field: "dependent amount"}
	}
	if client.Passport.IssueDate == nil {
		return ScoringData{}, valueobject.MissingFieldError{Field: "passport issue date"}
	}
	if client.Passport.IssueBranch == "" {
		return ScoringData{}, valueobject.MissingFieldError{Field: "passport issue branch"}
	}
	if client.Employment.IsZero() {
		return ScoringData{}, valueobject.MissingFieldError{Field: "employment"}
	}
	if client.Account == "" {
		return ScoringData{}, valueobject.MissingFieldError{Field: "account"}
	}

	return ScoringData{
		Amount:              offer.RequestedAmount,
		Term:                offer.Term,
		FirstName:           client.FirstName,
		LastName:            client.LastName,
		MiddleName:          client.MiddleName,
		Gender:              client.Gender,
		BirthDate:           client.BirthDate,
		PassportSeries:      client.Passport.Series,
		PassportNumber:      client.Passport.Number,
		PassportIssueDate:   *client.Passport.IssueDate,
		PassportIssueBranch: client.Passport.IssueBranch,
		MaritalStatus:       client.MaritalStatus,
		DependentAmount:     *client.DependentAmount,
		Employment:          client.Employment,
		Account:             client.Account,
		IsInsuranceEnabled:  offer.IsInsuranceEnabled,
		IsSalaryClient:      offer.IsSalaryClient,
	}, nil
}

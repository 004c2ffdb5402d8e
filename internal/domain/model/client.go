package model

import (
	"time"

	"github.com/loanforge/deal-service/internal/domain/valueobject"
)

// Client is the person behind a credit application. It is created from the
// initial loan request with only prescoring data filled in; the remaining
// fields arrive with the finish-registration request. A client is persisted
// independently of the application that references it.
type Client struct {
	ID              int64                        `json:"id"`
	FirstName       string                       `json:"first_name"`
	LastName        string                       `json:"last_name"`
	MiddleName      string                       `json:"middle_name,omitempty"`
	BirthDate       time.Time                    `json:"birth_date"`
	Email           string                       `json:"email"`
	Gender          valueobject.Gender           `json:"gender,omitzero"`
	MaritalStatus   valueobject.MaritalStatus    `json:"marital_status,omitzero"`
	DependentAmount *int                         `json:"dependent_amount,omitempty"`
	Passport        valueobject.Passport         `json:"passport"`
	Employment      valueobject.Employment       `json:"employment,omitzero"`
	Account         string                       `json:"account,omitempty"`
}

// Registration carries the data submitted when a client finishes
// registration. All fields are required by the scoring step.
type Registration struct {
	Gender              valueobject.Gender
	MaritalStatus       valueobject.MaritalStatus
	DependentAmount     *int
	PassportIssueDate   time.Time
	PassportIssueBranch string
	Employment          valueobject.Employment
	Account             string
}

// CompleteRegistration merges registration data into the client, producing a
// completed copy. Registration fields always overwrite; identity fields
// (names, birth date, email, passport series/number) are carried over
// unchanged.
func (c Client) CompleteRegistration(r Registration) Client {
	next := c
	next.Gender = r.Gender
	next.MaritalStatus = r.MaritalStatus
	next.DependentAmount = r.DependentAmount
	next.Employment = r.Employment
	next.Account = r.Account

	issueDate := r.PassportIssueDate
	next.Passport = valueobject.Passport{
		Series:      c.Passport.Series,
		Number:      c.Passport.Number,
		IssueDate:   &issueDate,
		IssueBranch: r.PassportIssueBranch,
	}
	return next
}

package valueobject

import "time"

// Passport holds a client's passport data. Series and number are known from
// the initial loan request; issue date and issue branch stay empty until the
// client finishes registration.
type Passport struct {
	Series      int        `json:"series"`
	Number      int        `json:"number"`
	IssueDate   *time.Time `json:"issue_date,omitempty"`
	IssueBranch string     `json:"issue_branch,omitempty"`
}

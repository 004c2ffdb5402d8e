package valueobject

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// EmploymentStatus – immutable value object
// ---------------------------------------------------------------------------

// EmploymentStatus represents a client's employment status.
type EmploymentStatus struct {
	value string
}

const (
	employmentUnemployed    = "UNEMPLOYED"
	employmentSelfEmployed  = "SELF_EMPLOYED"
	employmentEmployed      = "EMPLOYED"
	employmentBusinessOwner = "BUSINESS_OWNER"
)

var (
	EmploymentStatusUnemployed    = EmploymentStatus{value: employmentUnemployed}
	EmploymentStatusSelfEmployed  = EmploymentStatus{value: employmentSelfEmployed}
	EmploymentStatusEmployed      = EmploymentStatus{value: employmentEmployed}
	EmploymentStatusBusinessOwner = EmploymentStatus{value: employmentBusinessOwner}
)

var validEmploymentStatuses = map[string]EmploymentStatus{
	employmentUnemployed:    EmploymentStatusUnemployed,
	employmentSelfEmployed:  EmploymentStatusSelfEmployed,
	employmentEmployed:      EmploymentStatusEmployed,
	employmentBusinessOwner: EmploymentStatusBusinessOwner,
}

// NewEmploymentStatus creates an EmploymentStatus from a raw string.
func NewEmploymentStatus(s string) (EmploymentStatus, error) {
	v, ok := validEmploymentStatuses[s]
	if !ok {
		return EmploymentStatus{}, fmt.Errorf("%w: employment status %q", ErrUnknownEnumValue, s)
	}
	return v, nil
}

// String returns the string representation.
func (e EmploymentStatus) String() string { return e.value }

// IsZero returns true when not initialised.
func (e EmploymentStatus) IsZero() bool { return e.value == "" }

// Equal returns true when both values match.
func (e EmploymentStatus) Equal(other EmploymentStatus) bool { return e.value == other.value }

// MarshalJSON serialises the value as its name.
func (e EmploymentStatus) MarshalJSON() ([]byte, error) { return json.Marshal(e.value) }

// UnmarshalJSON parses a name, rejecting unknown values.
func (e *EmploymentStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := NewEmploymentStatus(raw)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ---------------------------------------------------------------------------
// EmploymentPosition – immutable value object
// ---------------------------------------------------------------------------

// EmploymentPosition represents a client's job position.
type EmploymentPosition struct {
	value string
}

const (
	positionWorker     = "WORKER"
	positionMidManager = "MID_MANAGER"
	positionTopManager = "TOP_MANAGER"
	positionOwner      = "OWNER"
)

var (
	EmploymentPositionWorker     = EmploymentPosition{value: positionWorker}
	EmploymentPositionMidManager = EmploymentPosition{value: positionMidManager}
	EmploymentPositionTopManager = EmploymentPosition{value: positionTopManager}
	EmploymentPositionOwner      = EmploymentPosition{value: positionOwner}
)

var validEmploymentPositions = map[string]EmploymentPosition{
	positionWorker:     EmploymentPositionWorker,
	positionMidManager: EmploymentPositionMidManager,
	positionTopManager: EmploymentPositionTopManager,
	positionOwner:      EmploymentPositionOwner,
}

// NewEmploymentPosition creates an EmploymentPosition from a raw string.
func NewEmploymentPosition(s string) (EmploymentPosition, error) {
	v, ok := validEmploymentPositions[s]
	if !ok {
		return EmploymentPosition{}, fmt.Errorf("%w: employment position %q", ErrUnknownEnumValue, s)
	}
	return v, nil
}

// String returns the string representation.
func (p EmploymentPosition) String() string { return p.value }

// IsZero returns true when not initialised.
func (p EmploymentPosition) IsZero() bool { return p.value == "" }

// Equal returns true when both values match.
func (p EmploymentPosition) Equal(other EmploymentPosition) bool { return p.value == other.value }

// MarshalJSON serialises the value as its name.
func (p EmploymentPosition) MarshalJSON() ([]byte, error) { return json.Marshal(p.value) }

// UnmarshalJSON parses a name, rejecting unknown values.
func (p *EmploymentPosition) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := NewEmploymentPosition(raw)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ---------------------------------------------------------------------------
// Employment – value object embedded in Client
// ---------------------------------------------------------------------------

// Employment describes a client's employment record. It is stored verbatim
// as part of the client and copied into scoring requests.
type Employment struct {
	Status                EmploymentStatus   `json:"employment_status"`
	EmployerINN           string             `json:"employer_inn"`
	Salary                decimal.Decimal    `json:"salary"`
	Position              EmploymentPosition `json:"position"`
	WorkExperienceTotal   int                `json:"work_experience_total"`
	WorkExperienceCurrent int                `json:"work_experience_current"`
}

// IsZero reports whether the employment record has not been filled in.
func (e Employment) IsZero() bool {
	return e.Status.IsZero()
}

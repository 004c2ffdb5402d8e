package valueobject

import (
	"encoding/json"
	"fmt"
)

// ---------------------------------------------------------------------------
// Gender – immutable value object
// ---------------------------------------------------------------------------

// Gender represents a client's declared gender.
type Gender struct {
	value string
}

const (
	genderMale      = "MALE"
	genderFemale    = "FEMALE"
	genderNonBinary = "NON_BINARY"
)

var (
	GenderMale      = Gender{value: genderMale}
	GenderFemale    = Gender{value: genderFemale}
	GenderNonBinary = Gender{value: genderNonBinary}
)

var validGenders = map[string]Gender{
	genderMale:      GenderMale,
	genderFemale:    GenderFemale,
	genderNonBinary: GenderNonBinary,
}

// NewGender creates a Gender from a raw string.
func NewGender(s string) (Gender, error) {
	v, ok := validGenders[s]
	if !ok {
		return Gender{}, fmt.Errorf("%w: gender %q", ErrUnknownEnumValue, s)
	}
	return v, nil
}

// String returns the string representation.
func (g Gender) String() string { return g.value }

// IsZero returns true when not initialised.
func (g Gender) IsZero() bool { return g.value == "" }

// Equal returns true when both values match.
func (g Gender) Equal(other Gender) bool { return g.value == other.value }

// MarshalJSON serialises the value as its name.
func (g Gender) MarshalJSON() ([]byte, error) { return json.Marshal(g.value) }

// UnmarshalJSON parses a name, rejecting unknown values.
func (g *Gender) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := NewGender(raw)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ---------------------------------------------------------------------------
// MaritalStatus – immutable value object
// ---------------------------------------------------------------------------

// MaritalStatus represents a client's marital status.
type MaritalStatus struct {
	value string
}

const (
	maritalMarried     = "MARRIED"
	maritalDivorced    = "DIVORCED"
	maritalSingle      = "SINGLE"
	maritalWidowWidower = "WIDOW_WIDOWER"
)

var (
	MaritalStatusMarried      = MaritalStatus{value: maritalMarried}
	MaritalStatusDivorced     = MaritalStatus{value: maritalDivorced}
	MaritalStatusSingle       = MaritalStatus{value: maritalSingle}
	MaritalStatusWidowWidower = MaritalStatus{value: maritalWidowWidower}
)

var validMaritalStatuses = map[string]MaritalStatus{
	maritalMarried:      MaritalStatusMarried,
	maritalDivorced:     MaritalStatusDivorced,
	maritalSingle:       MaritalStatusSingle,
	maritalWidowWidower: MaritalStatusWidowWidower,
}

// NewMaritalStatus creates a MaritalStatus from a raw string.
func NewMaritalStatus(s string) (MaritalStatus, error) {
	v, ok := validMaritalStatuses[s]
	if !ok {
		return MaritalStatus{}, fmt.Errorf("%w: marital status %q", ErrUnknownEnumValue, s)
	}
	return v, nil
}

// String returns the string representation.
func (m MaritalStatus) String() string { return m.value }

// IsZero returns true when not initialised.
func (m MaritalStatus) IsZero() bool { return m.value == "" }

// Equal returns true when both values match.
func (m MaritalStatus) Equal(other MaritalStatus) bool { return m.value == other.value }

// MarshalJSON serialises the value as its name.
func (m MaritalStatus) MarshalJSON() ([]byte, error) { return json.Marshal(m.value) }

// UnmarshalJSON parses a name, rejecting unknown values.
func (m *MaritalStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := NewMaritalStatus(raw)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

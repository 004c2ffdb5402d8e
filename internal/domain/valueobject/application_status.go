package valueobject

import (
	"encoding/json"
	"fmt"
)

// ---------------------------------------------------------------------------
// ApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ApplicationStatus represents the lifecycle stage of a credit application.
type ApplicationStatus struct {
	value string
}

const (
	appStatusPreapproval      = "PREAPPROVAL"
	appStatusApproved         = "APPROVED"
	appStatusCCDenied         = "CC_DENIED"
	appStatusCCApproved       = "CC_APPROVED"
	appStatusPrepareDocuments = "PREPARE_DOCUMENTS"
	appStatusDocumentCreated  = "DOCUMENT_CREATED"
	appStatusClientDenied     = "CLIENT_DENIED"
	appStatusDocumentSigned   = "DOCUMENT_SIGNED"
	appStatusCreditIssued     = "CREDIT_ISSUED"
)

var (
	ApplicationStatusPreapproval      = ApplicationStatus{value: appStatusPreapproval}
	ApplicationStatusApproved         = ApplicationStatus{value: appStatusApproved}
	ApplicationStatusCCDenied         = ApplicationStatus{value: appStatusCCDenied}
	ApplicationStatusCCApproved       = ApplicationStatus{value: appStatusCCApproved}
	ApplicationStatusPrepareDocuments = ApplicationStatus{value: appStatusPrepareDocuments}
	ApplicationStatusDocumentCreated  = ApplicationStatus{value: appStatusDocumentCreated}
	ApplicationStatusClientDenied     = ApplicationStatus{value: appStatusClientDenied}
	ApplicationStatusDocumentSigned   = ApplicationStatus{value: appStatusDocumentSigned}
	ApplicationStatusCreditIssued     = ApplicationStatus{value: appStatusCreditIssued}
)

var validApplicationStatuses = map[string]ApplicationStatus{
	appStatusPreapproval:      ApplicationStatusPreapproval,
	appStatusApproved:         ApplicationStatusApproved,
	appStatusCCDenied:         ApplicationStatusCCDenied,
	appStatusCCApproved:       ApplicationStatusCCApproved,
	appStatusPrepareDocuments: ApplicationStatusPrepareDocuments,
	appStatusDocumentCreated:  ApplicationStatusDocumentCreated,
	appStatusClientDenied:     ApplicationStatusClientDenied,
	appStatusDocumentSigned:   ApplicationStatusDocumentSigned,
	appStatusCreditIssued:     ApplicationStatusCreditIssued,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validApplicationStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("%w: application status %q", ErrUnknownEnumValue, s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool {
	return s.value == other.value
}

// IsArchived reports whether the status is a terminal denial: once an
// application reaches CC_DENIED or CLIENT_DENIED it accepts no further
// calculation attempts.
func (s ApplicationStatus) IsArchived() bool {
	return s.value == appStatusCCDenied || s.value == appStatusClientDenied
}

// MarshalJSON serialises the status as its name.
func (s ApplicationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

// UnmarshalJSON parses a status name, rejecting unknown values.
func (s *ApplicationStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := NewApplicationStatus(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ---------------------------------------------------------------------------
// CreditStatus – immutable value object
// ---------------------------------------------------------------------------

// CreditStatus represents the lifecycle stage of a credit record.
type CreditStatus struct {
	value string
}

const (
	creditStatusCalculated = "CALCULATED"
	creditStatusIssued     = "ISSUED"
)

var (
	CreditStatusCalculated = CreditStatus{value: creditStatusCalculated}
	CreditStatusIssued     = CreditStatus{value: creditStatusIssued}
)

var validCreditStatuses = map[string]CreditStatus{
	creditStatusCalculated: CreditStatusCalculated,
	creditStatusIssued:     CreditStatusIssued,
}

// NewCreditStatus creates a CreditStatus from a raw string.
func NewCreditStatus(s string) (CreditStatus, error) {
	v, ok := validCreditStatuses[s]
	if !ok {
		return CreditStatus{}, fmt.Errorf("%w: credit status %q", ErrUnknownEnumValue, s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s CreditStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s CreditStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s CreditStatus) Equal(other CreditStatus) bool { return s.value == other.value }

// MarshalJSON serialises the status as its name.
func (s CreditStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

// UnmarshalJSON parses a status name, rejecting unknown values.
func (s *CreditStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := NewCreditStatus(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

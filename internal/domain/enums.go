package domain

import "fmt"

// ValidationLevel mirrors the store's validationLevel collection option.
type ValidationLevel string

const (
	ValidationLevelStrict   ValidationLevel = "strict"
	ValidationLevelModerate ValidationLevel = "moderate"
	ValidationLevelOff      ValidationLevel = "off"
)

// ParseValidationLevel returns the ValidationLevel named by s.
func ParseValidationLevel(s string) (ValidationLevel, error) {
	switch l := ValidationLevel(s); l {
	case ValidationLevelStrict, ValidationLevelModerate, ValidationLevelOff:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidValidationLevel, s)
}

// CoercionMode selects what happens to a row when a field fails type coercion.
type CoercionMode string

const (
	// CoercionNull stores null for the field and keeps the row without logging.
	CoercionNull CoercionMode = "null"
	// CoercionReport stores null, keeps the row and counts the failure.
	CoercionReport CoercionMode = "report"
	// CoercionReject drops the row from its batch.
	CoercionReject CoercionMode = "reject"
)

// ParseCoercionMode returns the CoercionMode named by s.
func ParseCoercionMode(s string) (CoercionMode, error) {
	switch m := CoercionMode(s); m {
	case CoercionNull, CoercionReport, CoercionReject:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCoercionMode, s)
}

// RunStatus is the terminal state of an ingest run.
type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusPartial   RunStatus = "partial"
	RunStatusFailed    RunStatus = "failed"
)

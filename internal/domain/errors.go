package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrStoreUnreachable       = errors.New("document store unreachable")
	ErrUnknownDataset         = errors.New("unknown dataset")
	ErrUnknownReport          = errors.New("unknown report")
	ErrInvalidValidationLevel = errors.New("invalid validation level")
	ErrInvalidCoercionMode    = errors.New("invalid coercion mode")
	ErrLedgerDisabled         = errors.New("run ledger is disabled")
	ErrInvalidLocation        = errors.New("invalid source location")
)

package ledger

import "errors"

// Hard failures. These abort the computation; no partial result is returned.
var (
	ErrLeaseNotFound         = errors.New("lease not found")
	ErrOutOfRangeDate        = errors.New("date precedes lease start date")
	ErrPropertyNotInBuilding = errors.New("property does not belong to building")
	ErrInvalidAmount         = errors.New("invalid amount")

	// ErrWaterShareNotConfigurable guards the share table: the water share
	// is always computed from meter readings, never configured.
	ErrWaterShareNotConfigurable = errors.New("water share is computed from consumption, not configurable")

	// ErrDuplicateRevisionDate enforces the creation-time invariant that a
	// lease has at most one revision per effective date.
	ErrDuplicateRevisionDate = errors.New("a revision with this effective date already exists")

	ErrUnknownCategory = errors.New("unknown charge category")
)

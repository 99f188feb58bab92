package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Precondition errors raised by the inference engine before any resampling
	ErrEmptyGroup             = errors.New("group has no records")
	ErrInsufficientGroups     = errors.New("expected exactly two distinct groups")
	ErrInsufficientSampleSize = errors.New("insufficient sample size")
	ErrInvalidReplicateCount  = errors.New("replicate count out of range")
	ErrInvalidConfidenceLevel = errors.New("confidence level must be in (0, 1)")
	ErrInvalidRecord          = errors.New("invalid record")

	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrReportNotFound = fmt.Errorf("%w: report", ErrNotFound)
)

// Error constructors with context
func NewEmptyGroupError(label string) error {
	return fmt.Errorf("%w: %q", ErrEmptyGroup, label)
}

func NewInsufficientGroupsError(found []string) error {
	return fmt.Errorf("%w: found %d %v", ErrInsufficientGroups, len(found), found)
}

func NewInsufficientSampleSizeError(label string, n, required int) error {
	return fmt.Errorf("%w: group %q has %d records, need at least %d", ErrInsufficientSampleSize, label, n, required)
}

func NewInvalidReplicateCountError(count int) error {
	return fmt.Errorf("%w: got %d", ErrInvalidReplicateCount, count)
}

func NewInvalidConfidenceLevelError(level float64) error {
	return fmt.Errorf("%w: got %v", ErrInvalidConfidenceLevel, level)
}

func NewInvalidRecordError(index int, reason string) error {
	return fmt.Errorf("%w at row %d: %s", ErrInvalidRecord, index, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPreconditionError reports whether err is an input-validation failure
// detected before computation started.
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrEmptyGroup) ||
		errors.Is(err, ErrInsufficientGroups) ||
		errors.Is(err, ErrInsufficientSampleSize) ||
		errors.Is(err, ErrInvalidReplicateCount) ||
		errors.Is(err, ErrInvalidConfidenceLevel) ||
		errors.Is(err, ErrInvalidRecord)
}

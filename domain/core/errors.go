package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions.
// Every analysis failure is one of these kinds; engines never embed
// sentinel strings inside otherwise-valid result data.
var (
	// Input validation errors
	ErrInvalidInput = errors.New("invalid input")

	// Insufficient data errors
	ErrInsufficientGroups = errors.New("insufficient groups for analysis")
	ErrInsufficientData   = errors.New("insufficient data for analysis")

	// Embedding errors
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrEmptyInput        = errors.New("no usable records")

	// Upstream data-fetch errors
	ErrUpstreamQuery = errors.New("upstream query failed")
)

// Error constructors with context
func NewInvalidInputError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, reason)
}

func NewInsufficientGroupsError(got, want int) error {
	return fmt.Errorf("%w: have %d groups, need at least %d", ErrInsufficientGroups, got, want)
}

func NewInsufficientDataError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInsufficientData, reason)
}

func NewDimensionMismatchError(index, got, want int) error {
	return fmt.Errorf("%w: record %d has dimension %d, expected %d", ErrDimensionMismatch, index, got, want)
}

func NewUpstreamQueryError(err error) error {
	return fmt.Errorf("%w: %v", ErrUpstreamQuery, err)
}

// Error checking helpers
func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsInsufficientError(err error) bool {
	return errors.Is(err, ErrInsufficientGroups) || errors.Is(err, ErrInsufficientData)
}

func IsEmbeddingError(err error) bool {
	return errors.Is(err, ErrDimensionMismatch) || errors.Is(err, ErrEmptyInput)
}

func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstreamQuery)
}

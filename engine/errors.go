/*
errors.go - Centralized error types for the aggregation engine

PURPOSE:
  All input-validation errors of the calculation layer in one place.
  Domain packages (attendance, provider) define their own error families
  and the same helpers pattern.

ERROR CATEGORIES:
  1. Input validation - malformed period keys, negative hours
  2. State violations - defined in the attendance package (clock machine)
  3. Upstream failures - defined in the provider package

PROPAGATION POLICY:
  Input-validation errors are deterministic: retrying the same call cannot
  succeed, so callers must not retry them. Read paths treat "no data" as an
  empty result, never as an error.

USAGE:
  if errors.Is(err, engine.ErrInvalidPeriod) {
      // reject the request, do not retry
  }
*/
package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPeriod is returned when a period key is malformed
	// (e.g. a month that is not YYYY-MM).
	ErrInvalidPeriod = errors.New("invalid period key")

	// ErrNegativeHours is returned when a task carries negative actual hours.
	ErrNegativeHours = errors.New("negative actual hours")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidPeriodError reports which key failed to parse.
type InvalidPeriodError struct {
	Key string
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid period key %q (want YYYY-MM)", e.Key)
}

func (e *InvalidPeriodError) Unwrap() error { return ErrInvalidPeriod }

// NegativeHoursError reports which task carried negative hours.
type NegativeHoursError struct {
	TaskID TaskID
	Hours  decimal.Decimal
}

func (e *NegativeHoursError) Error() string {
	return fmt.Sprintf("task %s has negative actual hours %s", e.TaskID, e.Hours)
}

func (e *NegativeHoursError) Unwrap() error { return ErrNegativeHours }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInputValidation returns true for deterministic input errors that must
// not be retried.
func IsInputValidation(err error) bool {
	return errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrNegativeHours)
}

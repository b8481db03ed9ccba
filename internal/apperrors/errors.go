package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConfigurationNotFound indicates that no jurisdiction profile could be
// resolved for a deal, including the absence of a DEFAULT fallback.
var ErrConfigurationNotFound = errors.New("jurisdiction configuration not found")

// ErrInvalidConfiguration indicates that a jurisdiction profile or one of its
// transfer-tax rules is internally inconsistent (e.g. a percent rule with no
// rate). Never defaulted to a silent zero.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrInvalidDate indicates that a supplied date string failed strict ISO
// calendar parsing.
var ErrInvalidDate = errors.New("invalid calendar date")

// FieldViolation describes a single field-level validation failure.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects field-level violations so the caller receives the
// full list in one aggregate failure instead of the first one encountered.
type ValidationErrors struct {
	Violations []FieldViolation
}

// Add appends a violation to the collection.
func (v *ValidationErrors) Add(field, message string) {
	v.Violations = append(v.Violations, FieldViolation{Field: field, Message: message})
}

// Merge appends violations from another collection, skipping fields that
// already carry one so the same failure is not reported twice (a field whose
// parse failed would otherwise also trip the downstream required check).
func (v *ValidationErrors) Merge(other *ValidationErrors) {
	if other == nil {
		return
	}
	seen := make(map[string]struct{}, len(v.Violations))
	for _, viol := range v.Violations {
		seen[viol.Field] = struct{}{}
	}
	for _, viol := range other.Violations {
		if _, dup := seen[viol.Field]; dup {
			continue
		}
		v.Violations = append(v.Violations, viol)
	}
}

// HasViolations reports whether any violation was recorded.
func (v *ValidationErrors) HasViolations() bool {
	return len(v.Violations) > 0
}

// Err returns the collection as an error, or nil when empty.
func (v *ValidationErrors) Err() error {
	if !v.HasViolations() {
		return nil
	}
	return v
}

func (v *ValidationErrors) Error() string {
	fields := make([]string, len(v.Violations))
	for i, viol := range v.Violations {
		fields[i] = fmt.Sprintf("%s: %s", viol.Field, viol.Message)
	}
	return fmt.Sprintf("validation failed with %d violation(s): %s", len(v.Violations), strings.Join(fields, "; "))
}

// Unwrap allows errors.Is(err, ErrValidation) on the aggregate.
func (v *ValidationErrors) Unwrap() error {
	return ErrValidation
}

// ConfigNotFoundError carries the location and the candidate paths that were
// attempted before jurisdiction resolution gave up.
type ConfigNotFoundError struct {
	State          string
	County         string
	City           string
	Zip            string
	AttemptedPaths []string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("no jurisdiction profile found for %s/%s/%s/%s (tried: %s)",
		e.State, e.County, e.City, e.Zip, strings.Join(e.AttemptedPaths, ", "))
}

// Unwrap allows errors.Is(err, ErrConfigurationNotFound).
func (e *ConfigNotFoundError) Unwrap() error {
	return ErrConfigurationNotFound
}

// Package validate implements field-level validation for lead capture forms.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern    = regexp.MustCompile(`^[A-Za-z\s]+$`)
	numericPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Rules describes the constraints applied to a single form field. Checks run
// in a fixed priority order: required, email, min length, name, numeric.
type Rules struct {
	Required  bool
	Email     bool
	MinLength int
	Name      bool
	Numeric   bool
}

// Result reports whether a field value passed validation and, if not, the
// inline message to show next to the field.
type Result struct {
	Valid   bool
	Message string
}

// Validate checks value against rules. The first failing rule wins; a value
// passing every rule yields a valid result with an empty message. The check
// is deterministic and has no side effects.
func Validate(value string, rules Rules) Result {
	trimmed := strings.TrimSpace(value)

	if rules.Required && trimmed == "" {
		return Result{Message: "This field is required"}
	}

	// Optional fields left empty skip the remaining shape checks.
	if trimmed == "" {
		return Result{Valid: true}
	}

	if rules.Email && !emailPattern.MatchString(trimmed) {
		return Result{Message: "Please enter a valid email address"}
	}

	if rules.MinLength > 0 && len(trimmed) < rules.MinLength {
		return Result{Message: fmt.Sprintf("Must be at least %d characters", rules.MinLength)}
	}

	if rules.Name && !namePattern.MatchString(trimmed) {
		return Result{Message: "Please enter a valid name"}
	}

	if rules.Numeric && !numericPattern.MatchString(trimmed) {
		return Result{Message: "Numbers only"}
	}

	return Result{Valid: true}
}

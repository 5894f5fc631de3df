package handler

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FieldError describes a single validation failure on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects field errors so a request can report every
// violation at once instead of failing on the first one.
type Validator struct {
	errors []FieldError
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Add records a field error.
func (v *Validator) Add(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// Valid reports whether no errors were recorded.
func (v *Validator) Valid() bool {
	return len(v.errors) == 0
}

// Errors returns the collected field errors in insertion order.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Required checks that a string is non-empty after trimming.
func (v *Validator) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, field+" is required")
	}
}

// MinLength checks a minimum length, skipping the check when the value
// is empty (pair with Required for mandatory fields).
func (v *Validator) MinLength(field, value string, min int) {
	if value == "" {
		return
	}
	if len(strings.TrimSpace(value)) < min {
		v.Add(field, fmt.Sprintf("%s must be at least %d characters", field, min))
	}
}

// Email checks email format, skipping empty values.
func (v *Validator) Email(field, value string) {
	if value == "" {
		return
	}
	if !emailRe.MatchString(value) {
		v.Add(field, "invalid email format")
	}
}

// OneOf checks membership in an allowed set, skipping empty values.
func (v *Validator) OneOf(field, value string, allowed []string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.Add(field, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
}

// Range checks an integer lies within [min, max].
func (v *Validator) Range(field string, value, min, max int64) {
	if value < min || value > max {
		v.Add(field, fmt.Sprintf("%s must be between %d and %d", field, min, max))
	}
}

// NonNegative checks an integer is zero or greater.
func (v *Validator) NonNegative(field string, value int64) {
	if value < 0 {
		v.Add(field, field+" must not be negative")
	}
}

// Timestamp checks an RFC 3339 timestamp, skipping empty values.
// Returns the parsed time on success or the zero time otherwise.
func (v *Validator) Timestamp(field, value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		v.Add(field, field+" must be an RFC 3339 timestamp")
		return time.Time{}
	}
	return t
}

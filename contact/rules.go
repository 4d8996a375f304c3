package contact

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind labels which rule a field failed.
type Kind string

const (
	EmptyField   Kind = "empty_field"
	InvalidPhone Kind = "invalid_phone"
	InvalidEmail Kind = "invalid_email"
	InvalidID    Kind = "invalid_id"
)

// ValidationError reports a single malformed field. It is a user-input
// problem, not a system fault, and is never written to the error log.
type ValidationError struct {
	Field string
	Kind  Kind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case EmptyField:
		return fmt.Sprintf("%s cannot be empty", e.Field)
	case InvalidPhone:
		return fmt.Sprintf("%s must contain digits only", e.Field)
	case InvalidEmail:
		return fmt.Sprintf("%s must look like name@example.com", e.Field)
	case InvalidID:
		return fmt.Sprintf("%s must be a positive number", e.Field)
	}

	return fmt.Sprintf("%s is invalid", e.Field)
}

// Rule decides whether a single field value is acceptable. Swap in a
// stricter implementation without touching the Contact shape.
type Rule interface {
	Acceptable(value string) bool
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(string) bool

func (f RuleFunc) Acceptable(value string) bool { return f(value) }

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

var (
	// NonEmpty accepts any value with at least one non-space character.
	NonEmpty Rule = RuleFunc(func(v string) bool {
		return strings.TrimSpace(v) != ""
	})

	// DigitsOnly accepts non-empty strings of decimal digits, nothing else.
	DigitsOnly Rule = RuleFunc(func(v string) bool {
		if v == "" {
			return false
		}
		for _, r := range v {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})

	// EmailShape accepts anything shaped like name@domain.tld. A structural
	// check only, not an RFC validator.
	EmailShape Rule = RuleFunc(func(v string) bool {
		return emailPattern.MatchString(v)
	})
)

// Validator holds one rule per field. Validate applies them in the fixed
// order first name, last name, phone, email and stops at the first
// failure, so the caller always learns about one field at a time.
type Validator struct {
	FirstName   Rule
	LastName    Rule
	PhoneNumber Rule
	Email       Rule
}

// DefaultValidator wires the stock rules.
func DefaultValidator() Validator {
	return Validator{
		FirstName:   NonEmpty,
		LastName:    NonEmpty,
		PhoneNumber: DigitsOnly,
		Email:       EmailShape,
	}
}

func (v Validator) Validate(c Contact) error {
	if !v.FirstName.Acceptable(c.FirstName) {
		return &ValidationError{Field: "first name", Kind: EmptyField}
	}

	if !v.LastName.Acceptable(c.LastName) {
		return &ValidationError{Field: "last name", Kind: EmptyField}
	}

	if !v.PhoneNumber.Acceptable(c.PhoneNumber) {
		return &ValidationError{Field: "phone number", Kind: InvalidPhone}
	}

	if !v.Email.Acceptable(c.Email) {
		return &ValidationError{Field: "email", Kind: InvalidEmail}
	}

	return nil
}

// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/users/internal/errors"
)

var (
	// emailRegex accepts lowercase local parts with dot-separated atoms and a domain of
	// dot-separated labels. The whole value must match.
	emailRegex = regexp.MustCompile(
		"^[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
			"@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$",
	)

	// phoneNumberRegex matches exactly ten decimal digits.
	phoneNumberRegex = regexp.MustCompile(`^\d{10}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Email validates email format using regex
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// PhoneNumber validates that a present phone number is exactly ten digits.
var PhoneNumber = NewPresentMatch(
	phoneNumberRegex,
	validation.NewError("validation_phone_number", "must be exactly 10 digits"),
)

// PresentMatch validates that a non-nil string fully matches a regular expression.
// Unlike validation.Match, the empty string counts as a present value and must match too;
// only nil values are skipped.
type PresentMatch struct {
	re  *regexp.Regexp
	err validation.Error
}

// NewPresentMatch returns a PresentMatch rule that reports err on mismatch.
func NewPresentMatch(re *regexp.Regexp, err validation.Error) PresentMatch {
	return PresentMatch{re: re, err: err}
}

// Validate checks the value against the rule's expression.
func (r PresentMatch) Validate(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}

	s, err := validation.EnsureString(value)
	if err != nil {
		return err
	}

	if !r.re.MatchString(s) {
		return r.err
	}
	return nil
}

// Error returns a copy of the rule with a custom error message.
func (r PresentMatch) Error(message string) PresentMatch {
	r.err = r.err.SetMessage(message)
	return r
}

var errNotPast = validation.NewError("validation_past", "must be in the past")

// instant is implemented by date-like values that can report their point in time.
type instant interface {
	Time() time.Time
}

// Past validates that a time (or a value exposing Time()) lies strictly before the
// instant returned by Now. Nil values are skipped so Required can report them.
type Past struct {
	Now func() time.Time
	err validation.Error
}

// NewPast returns a Past rule using now as its clock. A nil clock means time.Now.
func NewPast(now func() time.Time) Past {
	if now == nil {
		now = time.Now
	}
	return Past{Now: now, err: errNotPast}
}

// Validate checks that the value is strictly before the current instant.
func (p Past) Validate(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}

	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case instant:
		t = v.Time()
	default:
		return validation.NewError("validation_past_type", "must be a date")
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	if !t.Before(now()) {
		if p.err == nil {
			return errNotPast
		}
		return p.err
	}
	return nil
}

// Error returns a copy of the rule with a custom error message.
func (p Past) Error(message string) Past {
	if p.err == nil {
		p.err = errNotPast
	}
	p.err = p.err.SetMessage(message)
	return p
}

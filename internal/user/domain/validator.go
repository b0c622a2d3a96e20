package domain

import (
	"sort"
	"time"

	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/users/internal/validation"
)

// Field names reported in violations.
const (
	FieldEmail       = "email"
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldBirthDate   = "birthDate"
	FieldPhoneNumber = "phoneNumber"
)

// Violation messages.
const (
	MsgEmailRequired      = "Email is required"
	MsgEmailInvalid       = "Invalid email format"
	MsgFirstNameRequired  = "First name is required"
	MsgLastNameRequired   = "Last name is required"
	MsgBirthDateRequired  = "Birth date is required"
	MsgBirthDateNotPast   = "Birth date must be in past"
	MsgPhoneNumberInvalid = "Invalid phone number"
)

// Validator checks user records against the field ruleset. It reports every
// failing field at once; within one field the first failing rule wins.
type Validator struct {
	now func() time.Time
}

// NewValidator creates a Validator. A nil clock means time.Now.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{now: now}
}

// Validate returns the violations for u sorted by field name. A nil user is
// treated as a user with every field absent.
func (v *Validator) Validate(u *User) []Violation {
	if u == nil {
		u = &User{}
	}

	err := validation.Errors{
		FieldEmail: validation.Validate(u.Email,
			validation.Required.Error(MsgEmailRequired),
			appValidation.NotBlank.Error(MsgEmailRequired),
			appValidation.Email.Error(MsgEmailInvalid),
		),
		FieldFirstName: validation.Validate(u.FirstName,
			validation.Required.Error(MsgFirstNameRequired),
			appValidation.NotBlank.Error(MsgFirstNameRequired),
		),
		FieldLastName: validation.Validate(u.LastName,
			validation.Required.Error(MsgLastNameRequired),
			appValidation.NotBlank.Error(MsgLastNameRequired),
		),
		FieldBirthDate: validation.Validate(u.BirthDate,
			validation.Required.Error(MsgBirthDateRequired),
			appValidation.NewPast(v.now).Error(MsgBirthDateNotPast),
		),
		FieldPhoneNumber: validation.Validate(u.PhoneNumber,
			appValidation.PhoneNumber.Error(MsgPhoneNumberInvalid),
		),
	}.Filter()

	return toViolations(err)
}

// Check returns a *ValidationError when u has violations, nil otherwise.
func (v *Validator) Check(u *User) error {
	violations := v.Validate(u)
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func toViolations(err error) []Violation {
	if err == nil {
		return nil
	}

	errs, ok := err.(validation.Errors)
	if !ok {
		return []Violation{{Field: "", Message: err.Error()}}
	}

	violations := make([]Violation, 0, len(errs))
	for field, fieldErr := range errs {
		violations = append(violations, Violation{Field: field, Message: fieldErr.Error()})
	}
	sort.Slice(violations, func(i, j int) bool {
		return violations[i].Field < violations[j].Field
	})
	return violations
}

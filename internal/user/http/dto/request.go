// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/users/internal/user/domain"
)

// UserRequest is the JSON body of create, update and replace requests.
// Absent or null members decode to nil.
type UserRequest struct {
	Email       *string      `json:"email"`
	FirstName   *string      `json:"firstName"`
	LastName    *string      `json:"lastName"`
	BirthDate   *domain.Date `json:"birthDate"`
	Address     *string      `json:"address"`
	PhoneNumber *string      `json:"phoneNumber"`
}

// BirthDateRangeQuery holds the query parameters of a birth date search.
type BirthDateRangeQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// Validate checks that both bounds are present and formatted as yyyy-MM-dd.
func (q *BirthDateRangeQuery) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.From,
			validation.Required.Error("from is required"),
			validation.Date(domain.DateLayout).Error("must be a date in yyyy-MM-dd format"),
		),
		validation.Field(&q.To,
			validation.Required.Error("to is required"),
			validation.Date(domain.DateLayout).Error("must be a date in yyyy-MM-dd format"),
		),
	)
}

// Bounds returns the parsed range. Call Validate first.
func (q *BirthDateRangeQuery) Bounds() (from, to domain.Date, err error) {
	if from, err = domain.ParseDate(q.From); err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	if to, err = domain.ParseDate(q.To); err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	return from, to, nil
}

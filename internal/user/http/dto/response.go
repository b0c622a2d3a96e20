package dto

import "github.com/allisson/users/internal/user/domain"

// UserResponse is the JSON representation of a stored user.
type UserResponse struct {
	ID          int64        `json:"id"`
	Email       *string      `json:"email"`
	FirstName   *string      `json:"firstName"`
	LastName    *string      `json:"lastName"`
	BirthDate   *domain.Date `json:"birthDate"`
	Address     *string      `json:"address"`
	PhoneNumber *string      `json:"phoneNumber"`
}

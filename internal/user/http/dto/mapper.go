package dto

import "github.com/allisson/users/internal/user/domain"

// ToDomain converts the request body to a domain user without an identifier.
func (r UserRequest) ToDomain() *domain.User {
	return &domain.User{
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		BirthDate:   r.BirthDate,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
	}
}

// MapUserToResponse converts a domain user to its response DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		BirthDate:   user.BirthDate,
		Address:     user.Address,
		PhoneNumber: user.PhoneNumber,
	}
}

// MapUsersToResponse converts a list of users, keeping the order. Nil becomes an empty list.
func MapUsersToResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, MapUserToResponse(u))
	}
	return out
}

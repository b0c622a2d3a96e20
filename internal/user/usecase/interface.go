// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"

	"github.com/allisson/users/internal/user/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateFields(ctx context.Context, id int64, partial *domain.User) (*domain.User, error)
	ReplaceAll(ctx context.Context, id int64, full *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	SearchByBirthDateRange(ctx context.Context, from, to domain.Date) ([]*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
}

// UserUseCase defines the interface for user business logic operations.
type UserUseCase interface {
	// Create validates the user, applies the minimum-age gate and stores it.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// UpdateFields overwrites only the fields set in partial. It performs no validation.
	UpdateFields(ctx context.Context, id int64, partial *domain.User) (*domain.User, error)
	// ReplaceAll validates full and overwrites every stored field with it.
	ReplaceAll(ctx context.Context, id int64, full *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	// SearchByBirthDateRange rejects ranges whose start is after their end.
	SearchByBirthDateRange(ctx context.Context, from, to domain.Date) ([]*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
}

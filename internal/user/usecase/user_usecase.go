package usecase

import (
	"context"
	"time"

	apperrors "github.com/allisson/users/internal/errors"
	"github.com/allisson/users/internal/user/domain"
)

// daysPerYear is the fixed year length used by the age gate. Leap days are ignored.
const daysPerYear = 365

// Config holds the request-level rules applied around the repository.
type Config struct {
	// MinAge is the minimum age in whole years required to create a user.
	MinAge int
	// Now is the clock used by the age gate and the validator. Nil means time.Now.
	Now func() time.Time
}

// userUseCase implements UserUseCase.
type userUseCase struct {
	userRepo  UserRepository
	validator *domain.Validator
	minAge    int
	now       func() time.Time
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(userRepo UserRepository, cfg Config) UserUseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &userUseCase{
		userRepo:  userRepo,
		validator: domain.NewValidator(now),
		minAge:    cfg.MinAge,
		now:       now,
	}
}

// AgeInYears returns the whole number of 365-day years elapsed from birthDate to now.
// Birth dates after now produce zero or a negative age.
func AgeInYears(birthDate domain.Date, now time.Time) int {
	days := int64(now.Sub(birthDate.Time()) / (24 * time.Hour))
	return int(days / daysPerYear)
}

// Create validates the user, checks the minimum age and stores it.
func (u *userUseCase) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := u.validator.Check(user); err != nil {
		return nil, err
	}

	if age := AgeInYears(*user.BirthDate, u.now()); age < u.minAge {
		return nil, apperrors.Wrapf(domain.ErrUserTooYoung, "minimum age is %d, got %d", u.minAge, age)
	}

	return u.userRepo.Create(ctx, user)
}

// GetByID retrieves a user by identifier
func (u *userUseCase) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// UpdateFields overwrites the fields set in partial without validating them.
func (u *userUseCase) UpdateFields(
	ctx context.Context,
	id int64,
	partial *domain.User,
) (*domain.User, error) {
	return u.userRepo.UpdateFields(ctx, id, partial)
}

// ReplaceAll validates full and overwrites every stored field.
func (u *userUseCase) ReplaceAll(ctx context.Context, id int64, full *domain.User) (*domain.User, error) {
	if err := u.validator.Check(full); err != nil {
		return nil, err
	}
	return u.userRepo.ReplaceAll(ctx, id, full)
}

// Delete removes a user. Unknown identifiers are not an error.
func (u *userUseCase) Delete(ctx context.Context, id int64) error {
	return u.userRepo.Delete(ctx, id)
}

// SearchByBirthDateRange returns users born strictly between from and to.
func (u *userUseCase) SearchByBirthDateRange(
	ctx context.Context,
	from, to domain.Date,
) ([]*domain.User, error) {
	if from.After(to) {
		return nil, domain.ErrInvalidDateRange
	}
	return u.userRepo.SearchByBirthDateRange(ctx, from, to)
}

// ListAll returns every stored user.
func (u *userUseCase) ListAll(ctx context.Context) ([]*domain.User, error) {
	return u.userRepo.ListAll(ctx)
}

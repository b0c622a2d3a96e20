package usecase

import (
	"context"
	"time"

	"github.com/allisson/users/internal/metrics"
	"github.com/allisson/users/internal/user/domain"
)

// metricsDomain labels every operation recorded by this decorator.
const metricsDomain = "users"

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	u.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Create records metrics for user creation operations.
func (u *userUseCaseWithMetrics) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	start := time.Now()
	created, err := u.next.Create(ctx, user)
	u.record(ctx, "user_create", start, err)
	return created, err
}

// GetByID records metrics for user lookups.
func (u *userUseCaseWithMetrics) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetByID(ctx, id)
	u.record(ctx, "user_get", start, err)
	return user, err
}

// UpdateFields records metrics for partial updates.
func (u *userUseCaseWithMetrics) UpdateFields(
	ctx context.Context,
	id int64,
	partial *domain.User,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.UpdateFields(ctx, id, partial)
	u.record(ctx, "user_update_fields", start, err)
	return user, err
}

// ReplaceAll records metrics for full replaces.
func (u *userUseCaseWithMetrics) ReplaceAll(
	ctx context.Context,
	id int64,
	full *domain.User,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.ReplaceAll(ctx, id, full)
	u.record(ctx, "user_replace_all", start, err)
	return user, err
}

// Delete records metrics for user deletion.
func (u *userUseCaseWithMetrics) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := u.next.Delete(ctx, id)
	u.record(ctx, "user_delete", start, err)
	return err
}

// SearchByBirthDateRange records metrics for birth-date searches.
func (u *userUseCaseWithMetrics) SearchByBirthDateRange(
	ctx context.Context,
	from, to domain.Date,
) ([]*domain.User, error) {
	start := time.Now()
	users, err := u.next.SearchByBirthDateRange(ctx, from, to)
	u.record(ctx, "user_search_birth_date", start, err)
	return users, err
}

// ListAll records metrics for listing users.
func (u *userUseCaseWithMetrics) ListAll(ctx context.Context) ([]*domain.User, error) {
	start := time.Now()
	users, err := u.next.ListAll(ctx)
	u.record(ctx, "user_list", start, err)
	return users, err
}

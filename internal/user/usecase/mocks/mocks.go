// Package mocks provides mock implementations of the user use case and repository for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/users/internal/user/domain"
)

// MockUserUseCase is a mock implementation of usecase.UserUseCase.
type MockUserUseCase struct {
	mock.Mock
}

// NewMockUserUseCase creates a MockUserUseCase that asserts its expectations on cleanup.
func NewMockUserUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserUseCase {
	m := &MockUserUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockUserUseCase) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	return userOrNil(args.Get(0)), args.Error(1)
}

// GetByID mocks the GetByID method.
func (m *MockUserUseCase) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

// UpdateFields mocks the UpdateFields method.
func (m *MockUserUseCase) UpdateFields(
	ctx context.Context,
	id int64,
	partial *domain.User,
) (*domain.User, error) {
	args := m.Called(ctx, id, partial)
	return userOrNil(args.Get(0)), args.Error(1)
}

// ReplaceAll mocks the ReplaceAll method.
func (m *MockUserUseCase) ReplaceAll(ctx context.Context, id int64, full *domain.User) (*domain.User, error) {
	args := m.Called(ctx, id, full)
	return userOrNil(args.Get(0)), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockUserUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SearchByBirthDateRange mocks the SearchByBirthDateRange method.
func (m *MockUserUseCase) SearchByBirthDateRange(
	ctx context.Context,
	from, to domain.Date,
) ([]*domain.User, error) {
	args := m.Called(ctx, from, to)
	return usersOrNil(args.Get(0)), args.Error(1)
}

// ListAll mocks the ListAll method.
func (m *MockUserUseCase) ListAll(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	return usersOrNil(args.Get(0)), args.Error(1)
}

// MockUserRepository is a mock implementation of usecase.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a MockUserRepository that asserts its expectations on cleanup.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	return userOrNil(args.Get(0)), args.Error(1)
}

// GetByID mocks the GetByID method.
func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

// UpdateFields mocks the UpdateFields method.
func (m *MockUserRepository) UpdateFields(
	ctx context.Context,
	id int64,
	partial *domain.User,
) (*domain.User, error) {
	args := m.Called(ctx, id, partial)
	return userOrNil(args.Get(0)), args.Error(1)
}

// ReplaceAll mocks the ReplaceAll method.
func (m *MockUserRepository) ReplaceAll(ctx context.Context, id int64, full *domain.User) (*domain.User, error) {
	args := m.Called(ctx, id, full)
	return userOrNil(args.Get(0)), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SearchByBirthDateRange mocks the SearchByBirthDateRange method.
func (m *MockUserRepository) SearchByBirthDateRange(
	ctx context.Context,
	from, to domain.Date,
) ([]*domain.User, error) {
	args := m.Called(ctx, from, to)
	return usersOrNil(args.Get(0)), args.Error(1)
}

// ListAll mocks the ListAll method.
func (m *MockUserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	return usersOrNil(args.Get(0)), args.Error(1)
}

func userOrNil(v interface{}) *domain.User {
	if v == nil {
		return nil
	}
	return v.(*domain.User)
}

func usersOrNil(v interface{}) []*domain.User {
	if v == nil {
		return nil
	}
	return v.([]*domain.User)
}

// Package repository provides persistence implementations for user entities.
package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/allisson/users/internal/user/domain"
)

// InMemoryUserRepository keeps users in a map keyed by a generated identifier.
// Identifiers start at zero, grow by one per Create and are never reused, even after
// deletes. A single RWMutex guards both the map and the counter, so uniqueness and
// monotonicity hold under concurrent callers. Stored records are never handed out
// directly; every method returns copies.
type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64
}

// NewInMemoryUserRepository creates an empty InMemoryUserRepository
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[int64]*domain.User),
	}
}

// Create stores a copy of user under the next identifier and returns it with ID set.
// It performs no validation.
func (r *InMemoryUserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := user.Clone()
	if stored == nil {
		stored = &domain.User{}
	}
	stored.ID = r.nextID
	r.nextID++

	r.users[stored.ID] = stored
	return stored.Clone(), nil
}

// GetByID retrieves a user by identifier
func (r *InMemoryUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user.Clone(), nil
}

// UpdateFields overwrites the stored fields that are set in partial.
func (r *InMemoryUserRepository) UpdateFields(
	_ context.Context,
	id int64,
	partial *domain.User,
) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Merge(partial)
	return user.Clone(), nil
}

// ReplaceAll overwrites all six stored fields with those of full, nils included.
func (r *InMemoryUserRepository) ReplaceAll(
	_ context.Context,
	id int64,
	full *domain.User,
) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Replace(full)
	return user.Clone(), nil
}

// Delete removes the user if present. Deleting an absent id is a no-op.
func (r *InMemoryUserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

// SearchByBirthDateRange returns users born strictly after from and strictly before to,
// ordered by identifier. An inverted range matches nothing.
func (r *InMemoryUserRepository) SearchByBirthDateRange(
	_ context.Context,
	from, to domain.Date,
) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0)
	for _, user := range r.users {
		if user.BornBetween(from, to) {
			users = append(users, user.Clone())
		}
	}
	sortByID(users)
	return users, nil
}

// ListAll returns every stored user ordered by identifier.
func (r *InMemoryUserRepository) ListAll(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user.Clone())
	}
	sortByID(users)
	return users, nil
}

// Count returns the number of stored users.
func (r *InMemoryUserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users), nil
}

func sortByID(users []*domain.User) {
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})
}

package memory

import (
	"fmt"
	"sync"

	"github.com/alexispparra/roots-sub000/internal/domain/user"
	"github.com/alexispparra/roots-sub000/internal/storage/postgres"
)

// UserRepository is an in-memory postgres.UserRepository
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*user.User),
	}
}

func (r *UserRepository) Create(u *user.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("user validation failed: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("user with email %s already exists", u.Email)
		}
	}

	copied := *u
	r.users[u.ID.String()] = &copied
	return nil
}

func (r *UserRepository) GetByID(id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, postgres.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = user.NormalizeEmail(email)
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (r *UserRepository) Update(u *user.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("user validation failed: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID.String()]; !exists {
		return postgres.ErrNotFound
	}
	copied := *u
	r.users[u.ID.String()] = &copied
	return nil
}

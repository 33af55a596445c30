package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alexispparra/roots-sub000/internal/domain/user"
	"github.com/alexispparra/roots-sub000/internal/logger"
)

// PostgresUserRepository implements UserRepository using GORM
type PostgresUserRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db:  db,
		log: logger.Repository("user"),
	}
}

func (r *PostgresUserRepository) Create(u *user.User) error {
	r.log.Debug("Creating user", "email", u.Email, "name", u.Name)

	if err := u.Validate(); err != nil {
		r.log.Error("User validation failed", "error", err)
		return fmt.Errorf("user validation failed: %w", err)
	}

	// The email carries a unique index, but checking first gives callers a
	// clean conflict instead of a driver error string.
	var existing user.User
	if err := r.db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
		r.log.Error("User with email already exists", "email", u.Email)
		return fmt.Errorf("user with email %s already exists", u.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	if err := r.db.Create(u).Error; err != nil {
		r.log.Error("Failed to create user", "error", err, "email", u.Email)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("User created successfully", "id", u.ID, "email", u.Email)
	return nil
}

func (r *PostgresUserRepository) GetByID(id string) (*user.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		r.log.Error("Invalid user ID format", "id", id, "error", err)
		return nil, fmt.Errorf("%w: invalid user id", ErrNotFound)
	}

	var u user.User
	if err := r.db.First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		r.log.Error("Failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &u, nil
}

func (r *PostgresUserRepository) GetByEmail(email string) (*user.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: empty email", ErrNotFound)
	}

	var u user.User
	if err := r.db.Where("email = ?", user.NormalizeEmail(email)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		r.log.Error("Failed to get user by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

func (r *PostgresUserRepository) Update(u *user.User) error {
	r.log.Debug("Updating user", "id", u.ID, "email", u.Email)

	if err := u.Validate(); err != nil {
		return fmt.Errorf("user validation failed: %w", err)
	}

	result := r.db.Model(&user.User{}).
		Where("id = ?", u.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(u)
	if result.Error != nil {
		r.log.Error("Failed to update user", "error", result.Error, "id", u.ID)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("User updated successfully", "id", u.ID)
	return nil
}

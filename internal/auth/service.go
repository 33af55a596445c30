// Package auth implements account registration, login and password
// management on top of the user repository.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/alexispparra/roots-sub000/internal/domain/user"
	"github.com/alexispparra/roots-sub000/internal/logger"
	"github.com/alexispparra/roots-sub000/internal/storage/postgres"
	"github.com/alexispparra/roots-sub000/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const resetTokenTTL = 1 * time.Hour

// Service maneja cuentas y sesiones.
type Service struct {
	users  postgres.UserRepository
	tokens *TokenIssuer
	log    *log.Logger
}

func NewService(users postgres.UserRepository, tokens *TokenIssuer) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		log:    logger.Auth(),
	}
}

// Register crea una cuenta nueva y devuelve un token de sesión.
func (s *Service) Register(name, email, password string) (*user.User, string, error) {
	v := validation.UserValidation{}
	if err := v.ValidateUserName(name); err != nil {
		return nil, "", err
	}
	if err := v.ValidateUserEmail(email); err != nil {
		return nil, "", err
	}
	if err := v.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	if existing, err := s.users.GetByEmail(user.NormalizeEmail(email)); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	u := user.New(name, email, string(hash))
	if err := s.users.Create(u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.Email, u.Name)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("User registered", "email", u.Email)
	return u, token, nil
}

// Login verifica las credenciales y devuelve un token de sesión.
func (s *Service) Login(email, password string) (*user.User, string, error) {
	u, err := s.users.GetByEmail(user.NormalizeEmail(email))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.Email, u.Name)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// GetUser devuelve la cuenta asociada a un email.
func (s *Service) GetUser(email string) (*user.User, error) {
	return s.users.GetByEmail(user.NormalizeEmail(email))
}

// UpdateProfile cambia el nombre visible de la cuenta.
func (s *Service) UpdateProfile(email, name string) (*user.User, error) {
	v := validation.UserValidation{}
	if err := v.ValidateUserName(name); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(user.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	u.Name = name
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword exige la contraseña actual antes de aceptar la nueva.
func (s *Service) ChangePassword(email, currentPassword, newPassword string) error {
	if err := (validation.UserValidation{}).ValidatePassword(newPassword); err != nil {
		return err
	}

	u, err := s.users.GetByEmail(user.NormalizeEmail(email))
	if err != nil {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return s.users.Update(u)
}

// RequestPasswordReset genera un token de un solo uso. El token se devuelve
// al llamador; el envío por mail queda fuera de este servicio.
func (s *Service) RequestPasswordReset(email string) (string, error) {
	u, err := s.users.GetByEmail(user.NormalizeEmail(email))
	if err != nil {
		// no se revela si la cuenta existe
		return "", nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)
	expiry := time.Now().Add(resetTokenTTL)

	u.ResetToken = token
	u.ResetTokenExpiry = &expiry
	if err := s.users.Update(u); err != nil {
		return "", err
	}

	s.log.Info("Password reset requested", "email", u.Email)
	return token, nil
}

// ResetPassword consume un token de reseteo vigente.
func (s *Service) ResetPassword(email, token, newPassword string) error {
	if err := (validation.UserValidation{}).ValidatePassword(newPassword); err != nil {
		return err
	}

	u, err := s.users.GetByEmail(user.NormalizeEmail(email))
	if err != nil {
		return ErrInvalidResetToken
	}
	if u.ResetToken == "" || u.ResetToken != token {
		return ErrInvalidResetToken
	}
	if u.ResetTokenExpiry == nil || time.Now().After(*u.ResetTokenExpiry) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.ResetToken = ""
	u.ResetTokenExpiry = nil
	return s.users.Update(u)
}

package validation

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidateRequired valida que un campo no esté vacío
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(fieldName + " is required")
	}
	return nil
}

// ValidateMinLength valida la longitud mínima de un string
func ValidateMinLength(value string, minLength int, fieldName string) error {
	if utf8.RuneCountInString(value) < minLength {
		return errors.New(fieldName + " must be at least " + strconv.Itoa(minLength) + " characters long")
	}
	return nil
}

// ValidateMaxLength valida la longitud máxima de un string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return errors.New(fieldName + " must be at most " + strconv.Itoa(maxLength) + " characters long")
	}
	return nil
}

// ValidateUUID valida que un string sea un UUID válido
func ValidateUUID(value, fieldName string) error {
	if _, err := uuid.Parse(value); err != nil {
		return errors.New(fieldName + " must be a valid UUID")
	}
	return nil
}

// ValidateEmail valida formato básico de email
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errors.New("email must have a valid format")
	}
	return nil
}

// ProjectValidation contiene validaciones específicas para proyectos
type ProjectValidation struct{}

// ValidateProjectName valida el nombre de un proyecto
func (v ProjectValidation) ValidateProjectName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	if err := ValidateMaxLength(name, 100, "name"); err != nil {
		return err
	}
	return nil
}

// ValidateCategoryName valida el nombre de una categoría
func (v ProjectValidation) ValidateCategoryName(name string) error {
	if err := ValidateRequired(name, "category name"); err != nil {
		return err
	}
	if err := ValidateMaxLength(name, 100, "category name"); err != nil {
		return err
	}
	return nil
}

// UserValidation contiene validaciones específicas para usuarios
type UserValidation struct{}

// ValidateUserName valida el nombre de un usuario
func (v UserValidation) ValidateUserName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	if err := ValidateMinLength(name, 2, "name"); err != nil {
		return err
	}
	if err := ValidateMaxLength(name, 50, "name"); err != nil {
		return err
	}
	return nil
}

// ValidateUserEmail valida el email de un usuario
func (v UserValidation) ValidateUserEmail(email string) error {
	if err := ValidateRequired(email, "email"); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return nil
}

// ValidatePassword valida la longitud mínima de una contraseña
func (v UserValidation) ValidatePassword(password string) error {
	if err := ValidateRequired(password, "password"); err != nil {
		return err
	}
	if err := ValidateMinLength(password, 8, "password"); err != nil {
		return err
	}
	return nil
}

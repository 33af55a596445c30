// Package supplier holds the supplier directory aggregate. Suppliers are
// independent of projects; they are a plain CRUD collection.
package supplier

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Supplier struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Rubro       string    `json:"rubro" gorm:"not null"`
	Description string    `json:"description,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	CUIT        string    `json:"cuit,omitempty" gorm:"column:cuit"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// BeforeCreate sets a UUID before creating the record
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// New creates a supplier with the given name and rubro
func New(name, rubro string) *Supplier {
	return &Supplier{
		ID:        uuid.New(),
		Name:      name,
		Rubro:     rubro,
		CreatedAt: time.Now(),
	}
}

// Validate checks if the supplier data is valid
func (s *Supplier) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(s.Rubro) == "" {
		return fmt.Errorf("rubro is required")
	}
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		return fmt.Errorf("email must have a valid format")
	}
	return nil
}

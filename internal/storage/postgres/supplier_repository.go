package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alexispparra/roots-sub000/internal/domain/supplier"
	"github.com/alexispparra/roots-sub000/internal/logger"
)

// PostgresSupplierRepository implements SupplierRepository using GORM
type PostgresSupplierRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresSupplierRepository creates a new PostgreSQL supplier repository
func NewPostgresSupplierRepository(db *gorm.DB) *PostgresSupplierRepository {
	return &PostgresSupplierRepository{
		db:  db,
		log: logger.Repository("supplier"),
	}
}

func (r *PostgresSupplierRepository) Create(s *supplier.Supplier) error {
	if err := s.Validate(); err != nil {
		r.log.Error("Supplier validation failed", "error", err)
		return fmt.Errorf("supplier validation failed: %w", err)
	}

	if err := r.db.Create(s).Error; err != nil {
		r.log.Error("Failed to create supplier", "error", err, "name", s.Name)
		return fmt.Errorf("failed to create supplier: %w", err)
	}

	r.log.Info("Supplier created successfully", "id", s.ID, "name", s.Name)
	return nil
}

func (r *PostgresSupplierRepository) GetByID(id string) (*supplier.Supplier, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid supplier id", ErrNotFound)
	}

	var s supplier.Supplier
	if err := r.db.First(&s, "id = ?", supplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		r.log.Error("Failed to get supplier by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get supplier by ID: %w", err)
	}

	return &s, nil
}

func (r *PostgresSupplierRepository) GetAll() ([]*supplier.Supplier, error) {
	var suppliers []*supplier.Supplier
	if err := r.db.Order("name ASC").Find(&suppliers).Error; err != nil {
		r.log.Error("Failed to get all suppliers", "error", err)
		return nil, fmt.Errorf("failed to get all suppliers: %w", err)
	}

	r.log.Debug("Retrieved all suppliers", "count", len(suppliers))
	return suppliers, nil
}

func (r *PostgresSupplierRepository) Update(s *supplier.Supplier) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("supplier validation failed: %w", err)
	}

	result := r.db.Model(&supplier.Supplier{}).
		Where("id = ?", s.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(s)
	if result.Error != nil {
		r.log.Error("Failed to update supplier", "error", result.Error, "id", s.ID)
		return fmt.Errorf("failed to update supplier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("Supplier updated successfully", "id", s.ID)
	return nil
}

func (r *PostgresSupplierRepository) Delete(id string) error {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid supplier id", ErrNotFound)
	}

	result := r.db.Delete(&supplier.Supplier{}, "id = ?", supplierID)
	if result.Error != nil {
		r.log.Error("Failed to delete supplier", "error", result.Error, "id", id)
		return fmt.Errorf("failed to delete supplier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("Supplier deleted", "id", id)
	return nil
}

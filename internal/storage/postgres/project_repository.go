package postgres

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alexispparra/roots-sub000/internal/domain/project"
	"github.com/alexispparra/roots-sub000/internal/logger"
)

// PostgresProjectRepository implements ProjectRepository using GORM. The
// project row is treated as a document: embedded collections live in JSONB
// columns and every edit rewrites the whole row.
type PostgresProjectRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresProjectRepository creates a new PostgreSQL project repository
func NewPostgresProjectRepository(db *gorm.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{
		db:  db,
		log: logger.Repository("project"),
	}
}

func (r *PostgresProjectRepository) Create(p *project.Project) error {
	r.log.Debug("Creating project", "name", p.Name, "owner", p.OwnerEmail)

	if err := p.Validate(); err != nil {
		r.log.Error("Project validation failed", "error", err)
		return fmt.Errorf("project validation failed: %w", err)
	}

	if err := r.db.Create(p).Error; err != nil {
		r.log.Error("Failed to create project", "error", err, "name", p.Name)
		return fmt.Errorf("failed to create project: %w", err)
	}

	r.log.Info("Project created successfully", "id", p.ID, "name", p.Name)
	return nil
}

func (r *PostgresProjectRepository) GetByID(id string) (*project.Project, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		r.log.Error("Invalid project ID format", "id", id, "error", err)
		return nil, fmt.Errorf("%w: invalid project id", ErrNotFound)
	}

	var p project.Project
	if err := r.db.First(&p, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("Project not found", "id", id)
			return nil, ErrNotFound
		}
		r.log.Error("Failed to get project by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get project by ID: %w", err)
	}

	return &p, nil
}

func (r *PostgresProjectRepository) GetByParticipantEmail(email string) ([]*project.Project, error) {
	r.log.Debug("retrieving projects by participant email", "email", email)

	var projects []*project.Project
	if err := r.db.
		Where("? = ANY(participants_emails)", email).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		r.log.Error("Failed to get projects by participant", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get projects by participant: %w", err)
	}

	r.log.Debug("Projects retrieved", "email", email, "count", len(projects))
	return projects, nil
}

// Replace overwrites the whole stored document unconditionally. There is no
// version token: concurrent writers race and the last one wins.
func (r *PostgresProjectRepository) Replace(p *project.Project) error {
	r.log.Debug("Replacing project document", "id", p.ID)

	if err := p.Validate(); err != nil {
		r.log.Error("Project validation failed", "error", err)
		return fmt.Errorf("project validation failed: %w", err)
	}

	result := r.db.Model(&project.Project{}).
		Where("id = ?", p.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(p)
	if result.Error != nil {
		r.log.Error("Failed to replace project", "error", result.Error, "id", p.ID)
		return fmt.Errorf("failed to replace project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.log.Debug("Project not found on replace", "id", p.ID)
		return ErrNotFound
	}

	return nil
}

// AppendTransaction appends a transaction to the JSONB array in SQL, without
// reading the document first. This is the only partial update the store
// supports; every other edit goes through Replace.
func (r *PostgresProjectRepository) AppendTransaction(projectID string, tx project.Transaction) error {
	r.log.Debug("Appending transaction", "project_id", projectID, "transaction_id", tx.ID)

	id, err := uuid.Parse(projectID)
	if err != nil {
		return fmt.Errorf("%w: invalid project id", ErrNotFound)
	}

	payload, err := json.Marshal([]project.Transaction{tx})
	if err != nil {
		return fmt.Errorf("failed to encode transaction: %w", err)
	}

	result := r.db.Exec(
		`UPDATE projects SET transactions = COALESCE(transactions, '[]'::jsonb) || ?::jsonb WHERE id = ?`,
		string(payload), id,
	)
	if result.Error != nil {
		r.log.Error("Failed to append transaction", "error", result.Error, "project_id", projectID)
		return fmt.Errorf("failed to append transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("Transaction appended", "project_id", projectID, "transaction_id", tx.ID)
	return nil
}

func (r *PostgresProjectRepository) Delete(id string) error {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid project id", ErrNotFound)
	}

	result := r.db.Delete(&project.Project{}, "id = ?", projectID)
	if result.Error != nil {
		r.log.Error("Failed to delete project", "error", result.Error, "id", id)
		return fmt.Errorf("failed to delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("Project deleted", "id", id)
	return nil
}

// Package ledger owns the project data mutation and query logic. Every
// mutation follows the store's document model: read the whole project,
// transform it in memory, write it back unconditionally. Two concurrent
// writers race and the last write wins; that trade-off is deliberate and the
// repository interface is the single place a conditional write could be
// introduced later.
package ledger

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/alexispparra/roots-sub000/internal/domain/project"
	"github.com/alexispparra/roots-sub000/internal/logger"
	"github.com/alexispparra/roots-sub000/internal/storage/postgres"
	"github.com/alexispparra/roots-sub000/internal/watch"
)

// ErrForbidden is returned when the actor's role does not allow an operation.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound aliases the storage sentinel so callers only import this package.
var ErrNotFound = postgres.ErrNotFound

// Service implements the project ledger operations
type Service struct {
	projects postgres.ProjectRepository
	hub      *watch.Hub
	// bootstrapAdmin is an email treated as admin on every project.
	// Injected configuration, empty in most deployments.
	bootstrapAdmin string
	log            *log.Logger
}

// NewService creates a ledger service. hub may be nil when no subscribers
// need notifying (batch tools, some tests).
func NewService(projects postgres.ProjectRepository, hub *watch.Hub, bootstrapAdmin string) *Service {
	return &Service{
		projects:       projects,
		hub:            hub,
		bootstrapAdmin: bootstrapAdmin,
		log:            logger.Ledger(),
	}
}

// CreateProject creates a project with the actor as its admin owner
func (s *Service) CreateProject(actorEmail, actorName, name, description, address string) (*project.Project, error) {
	p := project.New(name, description, address, actorEmail, actorName)
	if err := s.projects.Create(p); err != nil {
		return nil, err
	}

	s.log.Info("Project created", "id", p.ID, "name", p.Name, "owner", p.OwnerEmail)
	s.notify()
	return p, nil
}

// ListProjects returns the projects visible to the actor, newest first.
// Visibility is strictly membership in participants_emails.
func (s *Service) ListProjects(actorEmail string) ([]*project.Project, error) {
	return s.projects.GetByParticipantEmail(normalizedEmail(actorEmail))
}

// GetProject returns a project the actor can see. A project that exists but
// does not list the actor reports not-found rather than leaking existence.
func (s *Service) GetProject(projectID, actorEmail string) (*project.Project, error) {
	p, err := s.projects.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if s.roleFor(p, actorEmail) == project.RoleNone {
		return nil, ErrNotFound
	}
	return p, nil
}

// UserRole returns the actor's role in the project, RoleNone when the actor
// is not a participant
func (s *Service) UserRole(projectID, actorEmail string) (project.Role, error) {
	p, err := s.projects.GetByID(projectID)
	if err != nil {
		return project.RoleNone, err
	}
	return s.roleFor(p, actorEmail), nil
}

// Summary computes the derived financial values for a visible project
func (s *Service) Summary(projectID, actorEmail string) (*project.Summary, error) {
	p, err := s.GetProject(projectID, actorEmail)
	if err != nil {
		return nil, err
	}
	summary := p.Summarize()
	return &summary, nil
}

// UpdateProjectInput carries the optional settings an admin can change
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Address     *string
	Status      *project.Status
}

// UpdateProject changes project settings. Admin only.
func (s *Service) UpdateProject(projectID, actorEmail string, input UpdateProjectInput) (*project.Project, error) {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanAdminister)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Address != nil {
		p.Address = *input.Address
	}
	if input.Status != nil {
		p.Status = *input.Status
	}

	if err := s.projects.Replace(p); err != nil {
		return nil, err
	}
	s.notify()
	return p, nil
}

// DeleteProject removes a project permanently. Admin only; no soft delete.
func (s *Service) DeleteProject(projectID, actorEmail string) error {
	if _, err := s.loadForRole(projectID, actorEmail, project.Role.CanAdminister); err != nil {
		return err
	}

	if err := s.projects.Delete(projectID); err != nil {
		return err
	}

	s.log.Info("Project deleted", "id", projectID, "actor", actorEmail)
	s.notify()
	return nil
}

// roleFor resolves the actor's effective role, applying the bootstrap admin
// override
func (s *Service) roleFor(p *project.Project, actorEmail string) project.Role {
	email := normalizedEmail(actorEmail)
	if s.bootstrapAdmin != "" && email == normalizedEmail(s.bootstrapAdmin) {
		return project.RoleAdmin
	}
	return p.RoleFor(email)
}

// loadForRole loads a visible project and checks the actor's role against
// the given permission predicate
func (s *Service) loadForRole(projectID, actorEmail string, allowed func(project.Role) bool) (*project.Project, error) {
	p, err := s.projects.GetByID(projectID)
	if err != nil {
		return nil, err
	}

	role := s.roleFor(p, actorEmail)
	if role == project.RoleNone {
		return nil, ErrNotFound
	}
	if !allowed(role) {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *Service) notify() {
	if s.hub != nil {
		s.hub.Notify()
	}
}

func normalizedEmail(email string) string {
	return project.NormalizeEmail(email)
}

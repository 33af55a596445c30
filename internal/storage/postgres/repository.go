package postgres

import (
	"errors"

	"github.com/alexispparra/roots-sub000/internal/domain/project"
	"github.com/alexispparra/roots-sub000/internal/domain/supplier"
	"github.com/alexispparra/roots-sub000/internal/domain/user"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// ProjectRepository exposes document-store semantics over the project
// aggregate: whole-document reads and unconditional whole-document replaces
// (last write wins), plus a pure append for new transactions that needs no
// prior read.
type ProjectRepository interface {
	Create(p *project.Project) error
	GetByID(id string) (*project.Project, error)
	// GetByParticipantEmail returns the projects whose denormalized
	// participants_emails contains the email, newest first.
	GetByParticipantEmail(email string) ([]*project.Project, error)
	// Replace overwrites the stored document with p. No version check is
	// performed; concurrent replacers race and the last write wins.
	Replace(p *project.Project) error
	AppendTransaction(projectID string, tx project.Transaction) error
	Delete(id string) error
}

// SupplierRepository defines the methods to interact with the supplier directory
type SupplierRepository interface {
	Create(s *supplier.Supplier) error
	GetByID(id string) (*supplier.Supplier, error)
	GetAll() ([]*supplier.Supplier, error)
	Update(s *supplier.Supplier) error
	Delete(id string) error
}

// UserRepository defines the methods to interact with application accounts
type UserRepository interface {
	Create(u *user.User) error
	GetByID(id string) (*user.User, error)
	GetByEmail(email string) (*user.User, error)
	Update(u *user.User) error
}

// RepositoryContainer bundles all repositories behind one lifecycle
type RepositoryContainer interface {
	Projects() ProjectRepository
	Suppliers() SupplierRepository
	Users() UserRepository
	Health() error
	Close() error
}

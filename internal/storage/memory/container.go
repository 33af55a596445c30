package memory

import "github.com/alexispparra/roots-sub000/internal/storage/postgres"

// Container implements postgres.RepositoryContainer fully in memory
type Container struct {
	projectRepo  *ProjectRepository
	supplierRepo *SupplierRepository
	userRepo     *UserRepository
}

// NewContainer creates a container with empty in-memory repositories
func NewContainer() *Container {
	return &Container{
		projectRepo:  NewProjectRepository(),
		supplierRepo: NewSupplierRepository(),
		userRepo:     NewUserRepository(),
	}
}

// Projects returns the project repository
func (c *Container) Projects() postgres.ProjectRepository {
	return c.projectRepo
}

// Suppliers returns the supplier repository
func (c *Container) Suppliers() postgres.SupplierRepository {
	return c.supplierRepo
}

// Users returns the user repository
func (c *Container) Users() postgres.UserRepository {
	return c.userRepo
}

// Health always succeeds for the in-memory container
func (c *Container) Health() error {
	return nil
}

// Close is a no-op for the in-memory container
func (c *Container) Close() error {
	return nil
}

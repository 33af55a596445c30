package postgres

import (
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/alexispparra/roots-sub000/internal/config"
	"github.com/alexispparra/roots-sub000/internal/logger"
)

// Container implements RepositoryContainer over a PostgreSQL connection
type Container struct {
	db           *gorm.DB
	log          *log.Logger
	projectRepo  ProjectRepository
	supplierRepo SupplierRepository
	userRepo     UserRepository
}

// NewContainer creates a new repository container with all repositories initialized
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Repository("postgres_container")
	log.Info("Initializing PostgreSQL repository container...")

	db, err := Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		log.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := NewContainerWithDB(db)

	if err := container.Health(); err != nil {
		log.Error("Container health check failed", "error", err)
		return nil, fmt.Errorf("container health check failed: %w", err)
	}

	log.Info("PostgreSQL repository container initialized successfully")
	return container, nil
}

// NewContainerWithDB creates a container with an existing database connection
func NewContainerWithDB(db *gorm.DB) *Container {
	return &Container{
		db:           db,
		log:          logger.Repository("postgres_container"),
		projectRepo:  NewPostgresProjectRepository(db),
		supplierRepo: NewPostgresSupplierRepository(db),
		userRepo:     NewPostgresUserRepository(db),
	}
}

// Projects returns the project repository
func (c *Container) Projects() ProjectRepository {
	return c.projectRepo
}

// Suppliers returns the supplier repository
func (c *Container) Suppliers() SupplierRepository {
	return c.supplierRepo
}

// Users returns the user repository
func (c *Container) Users() UserRepository {
	return c.userRepo
}

// Health performs a health check on the database connection and core tables
func (c *Container) Health() error {
	if err := HealthCheck(c.db); err != nil {
		c.log.Error("Database health check failed", "error", err)
		return fmt.Errorf("database health check failed: %w", err)
	}

	for _, table := range []string{"projects", "suppliers", "users"} {
		var count int64
		if err := c.db.Table(table).Count(&count).Error; err != nil {
			c.log.Error("Table health check failed", "table", table, "error", err)
			return fmt.Errorf("table %s health check failed: %w", table, err)
		}
	}

	return nil
}

// Close gracefully shuts down the container and closes database connections
func (c *Container) Close() error {
	c.log.Info("Closing PostgreSQL repository container...")

	if c.db == nil {
		c.log.Warn("Database connection is nil, nothing to close")
		return nil
	}

	if err := Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	c.projectRepo = nil
	c.supplierRepo = nil
	c.userRepo = nil
	c.db = nil

	return nil
}

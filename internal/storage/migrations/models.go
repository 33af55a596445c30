package migrations

import (
	"github.com/alexispparra/roots-sub000/internal/domain/project"
	"github.com/alexispparra/roots-sub000/internal/domain/supplier"
	"github.com/alexispparra/roots-sub000/internal/domain/user"
)

// AllModels returns every model managed by AutoMigrate, in creation order
func AllModels() []interface{} {
	return []interface{}{
		&user.User{},
		&project.Project{},
		&supplier.Supplier{},
	}
}

package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexispparra/roots-sub000/internal/domain/project"
)

// AddCategoryInput carries the fields for a new category
type AddCategoryInput struct {
	Name         string
	Budget       decimal.Decimal
	Icon         string
	StartDate    *time.Time
	EndDate      *time.Time
	Dependencies []string
}

// AddCategory appends a category to a project. Editor or admin.
func (s *Service) AddCategory(projectID, actorEmail string, input AddCategoryInput) (*project.Category, error) {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanEdit)
	if err != nil {
		return nil, err
	}

	category, err := p.AddCategory(input.Name, input.Budget, input.Icon, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	if len(input.Dependencies) > 0 {
		category.Dependencies = input.Dependencies
	}

	if err := s.projects.Replace(p); err != nil {
		return nil, err
	}

	s.log.Info("Category added", "project_id", projectID, "category", category.Name)
	s.notify()
	return category, nil
}

// UpdateCategory replaces the category named oldName. A nil progress keeps
// the stored progress. A rename cascades into transactions and dependency
// lists inside the same document write, so the store never sees a
// half-renamed project.
func (s *Service) UpdateCategory(projectID, actorEmail, oldName string, updated project.Category, progress *int) error {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanEdit)
	if err != nil {
		return err
	}

	if err := p.UpdateCategory(oldName, updated, progress); err != nil {
		return err
	}

	if err := s.projects.Replace(p); err != nil {
		return err
	}

	if updated.Name != oldName {
		s.log.Info("Category renamed", "project_id", projectID, "from", oldName, "to", updated.Name)
	}
	s.notify()
	return nil
}

// DeleteCategory removes a category and strips it from dependency lists.
// Transactions keep their now-dangling category references.
func (s *Service) DeleteCategory(projectID, actorEmail, name string) error {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanEdit)
	if err != nil {
		return err
	}

	if err := p.DeleteCategory(name); err != nil {
		return err
	}

	if err := s.projects.Replace(p); err != nil {
		return err
	}

	s.log.Info("Category deleted", "project_id", projectID, "category", name)
	s.notify()
	return nil
}

package project

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is a named budget bucket. The name is its de-facto key: renaming
// must cascade into transactions and into other categories' dependency
// lists. Duplicate names are not prevented; cascades apply to all matches.
type Category struct {
	Name         string          `json:"name"`
	Budget       decimal.Decimal `json:"budget"`
	Icon         string          `json:"icon,omitempty"`
	Progress     int             `json:"progress"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	Dependencies []string        `json:"dependencies"`
}

// Validate checks if the category data is valid
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if c.Budget.IsNegative() {
		return fmt.Errorf("budget cannot be negative")
	}
	if c.Progress < 0 || c.Progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return fmt.Errorf("end_date must be after start_date")
	}
	return nil
}

// AddCategory appends a new category with zero progress and no dependencies.
// Duplicate names are allowed; lookups and cascades match all of them.
func (p *Project) AddCategory(name string, budget decimal.Decimal, icon string, startDate, endDate *time.Time) (*Category, error) {
	category := Category{
		Name:         name,
		Budget:       budget,
		Icon:         icon,
		Progress:     0,
		StartDate:    startDate,
		EndDate:      endDate,
		Dependencies: make([]string, 0),
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	p.Categories = append(p.Categories, category)
	return &p.Categories[len(p.Categories)-1], nil
}

// FindCategory returns the first category with the given name
func (p *Project) FindCategory(name string) (*Category, bool) {
	for i := range p.Categories {
		if p.Categories[i].Name == name {
			return &p.Categories[i], true
		}
	}
	return nil, false
}

// UpdateCategory replaces every category named oldName with the updated
// value. A nil progress keeps each match's stored progress, the same way a
// nil Dependencies keeps each match's stored list; updated.Progress is only
// read through the pointer. When the name changes, the rename cascades:
// transactions referencing oldName and dependency entries equal to oldName
// are rewritten to the new name. Matching is exact and case-sensitive.
func (p *Project) UpdateCategory(oldName string, updated Category, progress *int) error {
	if progress != nil {
		updated.Progress = *progress
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	matched := false
	for i := range p.Categories {
		if p.Categories[i].Name != oldName {
			continue
		}
		replacement := updated
		if progress == nil {
			replacement.Progress = p.Categories[i].Progress
		}
		if replacement.Dependencies == nil {
			replacement.Dependencies = p.Categories[i].Dependencies
		} else {
			// Each match keeps its own backing array; sharing one would
			// let a later cascade mutate every copy at once.
			replacement.Dependencies = slices.Clone(replacement.Dependencies)
		}
		p.Categories[i] = replacement
		matched = true
	}
	if !matched {
		return ErrCategoryNotFound
	}

	if updated.Name != oldName {
		p.renameCategoryReferences(oldName, updated.Name)
	}
	return nil
}

// DeleteCategory removes every category with the given name and strips it
// from the other categories' dependency lists. Transactions keep referencing
// the removed name: dangling history is intentional and preserved.
func (p *Project) DeleteCategory(name string) error {
	kept := p.Categories[:0]
	matched := false
	for _, category := range p.Categories {
		if category.Name == name {
			matched = true
			continue
		}
		kept = append(kept, category)
	}
	if !matched {
		return ErrCategoryNotFound
	}
	p.Categories = kept

	for i := range p.Categories {
		deps := make([]string, 0, len(p.Categories[i].Dependencies))
		for _, dep := range p.Categories[i].Dependencies {
			if dep != name {
				deps = append(deps, dep)
			}
		}
		p.Categories[i].Dependencies = deps
	}
	return nil
}

// renameCategoryReferences rewrites transaction categories and dependency
// entries from oldName to newName
func (p *Project) renameCategoryReferences(oldName, newName string) {
	for i := range p.Transactions {
		if p.Transactions[i].Category == oldName {
			p.Transactions[i].Category = newName
		}
	}
	for i := range p.Categories {
		for j, dep := range p.Categories[i].Dependencies {
			if dep == oldName {
				p.Categories[i].Dependencies[j] = newName
			}
		}
	}
}

// CategoryNames returns the names of all categories in order
func (p *Project) CategoryNames() []string {
	names := make([]string, 0, len(p.Categories))
	for _, category := range p.Categories {
		names = append(names, category.Name)
	}
	return names
}

// Package memory provides in-memory repository implementations used by
// tests and by STORAGE_TYPE=memory deployments. Documents are copied on
// every read and write so callers observe snapshot semantics, the same way
// the real store hands out detached documents.
package memory

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/alexispparra/roots-sub000/internal/domain/project"
	"github.com/alexispparra/roots-sub000/internal/storage/postgres"
)

// ProjectRepository is an in-memory postgres.ProjectRepository
type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]*project.Project
}

// NewProjectRepository creates an empty in-memory project repository
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{
		projects: make(map[string]*project.Project),
	}
}

func (r *ProjectRepository) Create(p *project.Project) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("project validation failed: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied, err := cloneProject(p)
	if err != nil {
		return err
	}
	r.projects[p.ID.String()] = copied
	return nil
}

func (r *ProjectRepository) GetByID(id string) (*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.projects[id]
	if !exists {
		return nil, postgres.ErrNotFound
	}
	return cloneProject(p)
}

func (r *ProjectRepository) GetByParticipantEmail(email string) ([]*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*project.Project
	for _, p := range r.projects {
		if !slices.Contains(p.ParticipantsEmails, email) {
			continue
		}
		copied, err := cloneProject(p)
		if err != nil {
			return nil, err
		}
		result = append(result, copied)
	}

	// Newest first, matching the postgres ordering.
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *ProjectRepository) Replace(p *project.Project) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("project validation failed: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[p.ID.String()]; !exists {
		return postgres.ErrNotFound
	}

	copied, err := cloneProject(p)
	if err != nil {
		return err
	}
	r.projects[p.ID.String()] = copied
	return nil
}

func (r *ProjectRepository) AppendTransaction(projectID string, tx project.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.projects[projectID]
	if !exists {
		return postgres.ErrNotFound
	}
	p.Transactions = append(p.Transactions, tx)
	return nil
}

func (r *ProjectRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[id]; !exists {
		return postgres.ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

// cloneProject deep-copies a project through its JSON form. Slower than a
// hand-written copy but immune to new fields being forgotten.
func cloneProject(p *project.Project) (*project.Project, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to clone project: %w", err)
	}
	var copied project.Project
	if err := json.Unmarshal(data, &copied); err != nil {
		return nil, fmt.Errorf("failed to clone project: %w", err)
	}
	return &copied, nil
}

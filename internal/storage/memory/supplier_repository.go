package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alexispparra/roots-sub000/internal/domain/supplier"
	"github.com/alexispparra/roots-sub000/internal/storage/postgres"
)

// SupplierRepository is an in-memory postgres.SupplierRepository
type SupplierRepository struct {
	mu        sync.RWMutex
	suppliers map[string]*supplier.Supplier
}

// NewSupplierRepository creates an empty in-memory supplier repository
func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{
		suppliers: make(map[string]*supplier.Supplier),
	}
}

func (r *SupplierRepository) Create(s *supplier.Supplier) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("supplier validation failed: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *s
	r.suppliers[s.ID.String()] = &copied
	return nil
}

func (r *SupplierRepository) GetByID(id string) (*supplier.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.suppliers[id]
	if !exists {
		return nil, postgres.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *SupplierRepository) GetAll() ([]*supplier.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*supplier.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		copied := *s
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *SupplierRepository) Update(s *supplier.Supplier) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("supplier validation failed: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.suppliers[s.ID.String()]; !exists {
		return postgres.ErrNotFound
	}
	copied := *s
	r.suppliers[s.ID.String()] = &copied
	return nil
}

func (r *SupplierRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.suppliers[id]; !exists {
		return postgres.ErrNotFound
	}
	delete(r.suppliers, id)
	return nil
}

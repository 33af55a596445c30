package ledger

import (
	"github.com/alexispparra/roots-sub000/internal/domain/project"
)

// ReplaceBudget overwrites the project's categories and transactions
// wholesale. This backs the spreadsheet import: a destructive full replace,
// not a merge. Editor or admin.
func (s *Service) ReplaceBudget(projectID, actorEmail string, categories []project.Category, transactions []project.Transaction) error {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanEdit)
	if err != nil {
		return err
	}

	p.Categories = categories
	p.Transactions = transactions

	if err := s.projects.Replace(p); err != nil {
		return err
	}

	s.log.Info("Budget replaced from import",
		"project_id", projectID,
		"categories", len(categories),
		"transactions", len(transactions))
	s.notify()
	return nil
}

package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexispparra/roots-sub000/internal/domain/project"
)

// AddTransactionInput carries the fields for a new ledger entry
type AddTransactionInput struct {
	Type          project.TransactionType
	Date          time.Time
	Description   string
	Category      string
	User          string
	PaymentMethod string
	AmountARS     decimal.Decimal
	AmountUSD     decimal.Decimal
	ExchangeRate  decimal.Decimal
	AttachmentURL string
}

// AddTransaction creates a transaction and appends it to the project without
// reading the document first: adds are the one pure-append write the store
// supports.
func (s *Service) AddTransaction(projectID, actorEmail string, input AddTransactionInput) (*project.Transaction, error) {
	if _, err := s.loadForRole(projectID, actorEmail, project.Role.CanEdit); err != nil {
		return nil, err
	}

	tx, err := project.NewTransaction(input.Type, input.Date, input.Description, input.Category,
		input.User, input.PaymentMethod, input.AmountARS, input.AmountUSD, input.ExchangeRate)
	if err != nil {
		return nil, err
	}
	tx.AttachmentURL = input.AttachmentURL

	if err := s.projects.AppendTransaction(projectID, *tx); err != nil {
		return nil, err
	}

	s.log.Info("Transaction added", "project_id", projectID, "transaction_id", tx.ID, "type", tx.Type)
	s.notify()
	return tx, nil
}

// TransactionPatch carries the optional fields of a transaction edit. Nil
// fields keep the stored value.
type TransactionPatch struct {
	Date          *time.Time
	Description   *string
	Category      *string
	User          *string
	PaymentMethod *string
	AmountARS     *decimal.Decimal
	AmountUSD     *decimal.Decimal
	ExchangeRate  *decimal.Decimal
}

// UpdateTransaction merges the patch onto the stored transaction and
// recomputes the untouched side of the amount pair: editing amount_usd alone
// recomputes ARS, any other amount edit recomputes USD from ARS.
func (s *Service) UpdateTransaction(projectID, actorEmail string, transactionID uuid.UUID, patch TransactionPatch) (*project.Transaction, error) {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanEdit)
	if err != nil {
		return nil, err
	}

	stored, found := p.FindTransaction(transactionID)
	if !found {
		return nil, project.ErrTransactionNotFound
	}

	updated := *stored
	if patch.Date != nil {
		updated.Date = *patch.Date
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Category != nil && updated.Type == project.TypeExpense {
		updated.Category = *patch.Category
	}
	if patch.User != nil {
		updated.User = *patch.User
	}
	if patch.PaymentMethod != nil {
		updated.PaymentMethod = *patch.PaymentMethod
	}
	if patch.AmountARS != nil {
		updated.AmountARS = *patch.AmountARS
	}
	if patch.AmountUSD != nil {
		updated.AmountUSD = *patch.AmountUSD
	}
	if patch.ExchangeRate != nil {
		updated.ExchangeRate = *patch.ExchangeRate
	}

	amountTouched := patch.AmountARS != nil || patch.AmountUSD != nil || patch.ExchangeRate != nil
	if amountTouched {
		if patch.AmountUSD != nil && patch.AmountARS == nil {
			updated.RecomputeFromUSD()
		} else {
			updated.RecomputeFromARS()
		}
	}

	if err := p.UpdateTransaction(updated); err != nil {
		return nil, err
	}

	if err := s.projects.Replace(p); err != nil {
		return nil, err
	}

	s.notify()
	return &updated, nil
}

// DeleteTransaction removes a transaction permanently
func (s *Service) DeleteTransaction(projectID, actorEmail string, transactionID uuid.UUID) error {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanEdit)
	if err != nil {
		return err
	}

	if err := p.DeleteTransaction(transactionID); err != nil {
		return err
	}

	if err := s.projects.Replace(p); err != nil {
		return err
	}

	s.log.Info("Transaction deleted", "project_id", projectID, "transaction_id", transactionID)
	s.notify()
	return nil
}

// SetTransactionAttachment records the stored receipt URL on a transaction
func (s *Service) SetTransactionAttachment(projectID, actorEmail string, transactionID uuid.UUID, url string) error {
	p, err := s.loadForRole(projectID, actorEmail, project.Role.CanEdit)
	if err != nil {
		return err
	}

	stored, found := p.FindTransaction(transactionID)
	if !found {
		return project.ErrTransactionNotFound
	}
	stored.AttachmentURL = url

	if err := s.projects.Replace(p); err != nil {
		return err
	}

	s.notify()
	return nil
}

package project

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeCategory is the sentinel category every income transaction carries.
const IncomeCategory = "Ingreso"

// TransactionType distinguishes income from expense entries
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// IsValid checks if the transaction type is known
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single ledger entry in dual currency. AmountUSD is
// derivable from AmountARS via ExchangeRate; NormalizeAmounts fills the
// missing side but a persisted pair is not re-verified on read.
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	Type          TransactionType `json:"type"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	AmountARS     decimal.Decimal `json:"amount_ars"`
	AmountUSD     decimal.Decimal `json:"amount_usd"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	AttachmentURL string          `json:"attachment_url,omitempty"`
	Category      string          `json:"category,omitempty"`
	User          string          `json:"user,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}

// NewTransaction creates a transaction with a fresh id, normalizing the
// category by type: income forces the sentinel category, expense requires one.
func NewTransaction(txType TransactionType, date time.Time, description, category, user, paymentMethod string, amountARS, amountUSD, exchangeRate decimal.Decimal) (*Transaction, error) {
	tx := &Transaction{
		ID:            uuid.New(),
		Type:          txType,
		Date:          date,
		Description:   description,
		AmountARS:     amountARS,
		AmountUSD:     amountUSD,
		ExchangeRate:  exchangeRate,
		Category:      category,
		User:          user,
		PaymentMethod: paymentMethod,
	}

	switch txType {
	case TypeIncome:
		tx.Category = IncomeCategory
	case TypeExpense:
		if tx.Category == "" {
			return nil, fmt.Errorf("category is required for expense transactions")
		}
	default:
		return nil, fmt.Errorf("invalid transaction type %q", txType)
	}

	tx.NormalizeAmounts()
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// Validate checks if the transaction data is valid
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if !t.ExchangeRate.IsPositive() {
		return fmt.Errorf("exchange_rate must be positive")
	}
	if !t.AmountARS.IsPositive() && !t.AmountUSD.IsPositive() {
		return fmt.Errorf("at least one of amount_ars or amount_usd must be positive")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// NormalizeAmounts derives the missing side of the amount pair from the
// exchange rate. When both sides are present they are left alone, stale or
// not: the pair is only recomputed at edit boundaries.
func (t *Transaction) NormalizeAmounts() {
	if !t.ExchangeRate.IsPositive() {
		return
	}
	switch {
	case t.AmountARS.IsPositive() && !t.AmountUSD.IsPositive():
		t.AmountUSD = t.AmountARS.DivRound(t.ExchangeRate, 6)
	case t.AmountUSD.IsPositive() && !t.AmountARS.IsPositive():
		t.AmountARS = t.AmountUSD.Mul(t.ExchangeRate).Round(6)
	}
}

// RecomputeFromARS recomputes AmountUSD keeping AmountARS as the source
func (t *Transaction) RecomputeFromARS() {
	if t.ExchangeRate.IsPositive() {
		t.AmountUSD = t.AmountARS.DivRound(t.ExchangeRate, 6)
	}
}

// RecomputeFromUSD recomputes AmountARS keeping AmountUSD as the source
func (t *Transaction) RecomputeFromUSD() {
	if t.ExchangeRate.IsPositive() {
		t.AmountARS = t.AmountUSD.Mul(t.ExchangeRate).Round(6)
	}
}

// AppendTransaction appends a transaction to the project. The postgres
// repository performs the equivalent append in SQL without a prior read.
func (p *Project) AppendTransaction(tx Transaction) {
	p.Transactions = append(p.Transactions, tx)
}

// FindTransaction returns the transaction with the given id
func (p *Project) FindTransaction(id uuid.UUID) (*Transaction, bool) {
	for i := range p.Transactions {
		if p.Transactions[i].ID == id {
			return &p.Transactions[i], true
		}
	}
	return nil, false
}

// UpdateTransaction replaces the transaction matching updated.ID
func (p *Project) UpdateTransaction(updated Transaction) error {
	if err := updated.Validate(); err != nil {
		return err
	}
	for i := range p.Transactions {
		if p.Transactions[i].ID == updated.ID {
			p.Transactions[i] = updated
			return nil
		}
	}
	return ErrTransactionNotFound
}

// DeleteTransaction removes the transaction with the given id
func (p *Project) DeleteTransaction(id uuid.UUID) error {
	for i := range p.Transactions {
		if p.Transactions[i].ID == id {
			p.Transactions = append(p.Transactions[:i], p.Transactions[i+1:]...)
			return nil
		}
	}
	return ErrTransactionNotFound
}

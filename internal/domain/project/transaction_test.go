package project

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionIncomeForcesSentinelCategory(t *testing.T) {
	tx, err := NewTransaction(TypeIncome, time.Now(), "Aporte inicial", "whatever", "", "",
		decimal.NewFromInt(100000), decimal.Zero, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, IncomeCategory, tx.Category)
	assert.NotEqual(t, "", tx.ID.String())
}

func TestNewTransactionExpenseRequiresCategory(t *testing.T) {
	_, err := NewTransaction(TypeExpense, time.Now(), "Cemento", "", "", "",
		decimal.NewFromInt(5000), decimal.Zero, decimal.NewFromInt(1000))
	assert.ErrorContains(t, err, "category is required")
}

func TestNewTransactionDerivesUSDFromARS(t *testing.T) {
	tx, err := NewTransaction(TypeExpense, time.Now(), "Cemento", "Materiales", "", "",
		decimal.NewFromInt(5000), decimal.Zero, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, tx.AmountUSD.Equal(decimal.NewFromInt(5)), "got %s", tx.AmountUSD)
}

func TestNewTransactionDerivesARSFromUSD(t *testing.T) {
	tx, err := NewTransaction(TypeExpense, time.Now(), "Cemento", "Materiales", "", "",
		decimal.Zero, decimal.NewFromInt(5), decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, tx.AmountARS.Equal(decimal.NewFromInt(5000)), "got %s", tx.AmountARS)
}

func TestRecomputeAfterRateEdit(t *testing.T) {
	tx, err := NewTransaction(TypeExpense, time.Now(), "Cemento", "Materiales", "", "",
		decimal.NewFromInt(5000), decimal.Zero, decimal.NewFromInt(1000))
	require.NoError(t, err)

	// editing only the rate recomputes USD from ARS
	tx.ExchangeRate = decimal.NewFromInt(1250)
	tx.RecomputeFromARS()
	assert.True(t, tx.AmountUSD.Equal(decimal.NewFromInt(4)), "got %s", tx.AmountUSD)

	// and the inverse direction when USD is the edited side
	tx.AmountUSD = decimal.NewFromInt(10)
	tx.RecomputeFromUSD()
	assert.True(t, tx.AmountARS.Equal(decimal.NewFromInt(12500)), "got %s", tx.AmountARS)
}

func TestRecomputeRoundingTolerance(t *testing.T) {
	tx, err := NewTransaction(TypeExpense, time.Now(), "Arena", "Materiales", "", "",
		decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(3))
	require.NoError(t, err)

	expected, _ := decimal.NewFromString("333.333333")
	assert.True(t, tx.AmountUSD.Equal(expected), "got %s", tx.AmountUSD)
}

func TestTransactionValidate(t *testing.T) {
	base := func() Transaction {
		return Transaction{
			Type:         TypeExpense,
			Date:         time.Now(),
			Category:     "Materiales",
			AmountARS:    decimal.NewFromInt(100),
			AmountUSD:    decimal.Zero,
			ExchangeRate: decimal.NewFromInt(1000),
		}
	}

	t.Run("valid", func(t *testing.T) {
		tx := base()
		assert.NoError(t, tx.Validate())
	})

	t.Run("zero rate", func(t *testing.T) {
		tx := base()
		tx.ExchangeRate = decimal.Zero
		assert.ErrorContains(t, tx.Validate(), "exchange_rate")
	})

	t.Run("no positive amount", func(t *testing.T) {
		tx := base()
		tx.AmountARS = decimal.Zero
		assert.ErrorContains(t, tx.Validate(), "at least one")
	})

	t.Run("bad type", func(t *testing.T) {
		tx := base()
		tx.Type = "transfer"
		assert.ErrorContains(t, tx.Validate(), "invalid transaction type")
	})
}

func TestProjectTransactionMutations(t *testing.T) {
	p := New("Obra", "", "", "a@x.com", "Ana")
	tx, err := NewTransaction(TypeExpense, time.Now(), "Cemento", "Materiales", "", "",
		decimal.NewFromInt(5000), decimal.Zero, decimal.NewFromInt(1000))
	require.NoError(t, err)
	p.AppendTransaction(*tx)

	t.Run("update by id", func(t *testing.T) {
		edited := *tx
		edited.Description = "Cemento Loma Negra"
		require.NoError(t, p.UpdateTransaction(edited))

		got, found := p.FindTransaction(tx.ID)
		require.True(t, found)
		assert.Equal(t, "Cemento Loma Negra", got.Description)
	})

	t.Run("delete by id", func(t *testing.T) {
		require.NoError(t, p.DeleteTransaction(tx.ID))
		assert.Empty(t, p.Transactions)
		assert.ErrorIs(t, p.DeleteTransaction(tx.ID), ErrTransactionNotFound)
	})
}

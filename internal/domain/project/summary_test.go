package project

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addTx(t *testing.T, p *Project, txType TransactionType, category string, ars int64, rate int64) {
	t.Helper()
	tx, err := NewTransaction(txType, time.Now(), "x", category, "", "",
		decimal.NewFromInt(ars), decimal.Zero, decimal.NewFromInt(rate))
	require.NoError(t, err)
	p.AppendTransaction(*tx)
}

func TestSummaryTotals(t *testing.T) {
	p := New("Obra", "", "", "a@x.com", "Ana")
	addTx(t, p, TypeIncome, "", 100000, 1000)  // 100 USD
	addTx(t, p, TypeExpense, "Materiales", 5000, 1000) // 5 USD
	addTx(t, p, TypeExpense, "Pintura", 2000, 1000)    // 2 USD
	addTx(t, p, TypeExpense, "Materiales", 3000, 1000) // 3 USD

	summary := p.Summarize()
	assert.True(t, summary.TotalIncomeUSD.Equal(decimal.NewFromInt(100)), "got %s", summary.TotalIncomeUSD)
	assert.True(t, summary.TotalExpensesUSD.Equal(decimal.NewFromInt(10)), "got %s", summary.TotalExpensesUSD)
	assert.True(t, summary.BalanceUSD.Equal(decimal.NewFromInt(90)), "got %s", summary.BalanceUSD)

	assert.True(t, summary.SpendByCategory["Materiales"].Equal(decimal.NewFromInt(8)))
	assert.True(t, summary.SpendByCategory["Pintura"].Equal(decimal.NewFromInt(2)))
	_, hasIncome := summary.SpendByCategory[IncomeCategory]
	assert.False(t, hasIncome, "income does not contribute to category spend")
}

func TestOverallProgress(t *testing.T) {
	p := New("Obra", "", "", "a@x.com", "Ana")
	assert.Equal(t, float64(0), p.OverallProgress(), "no categories means zero progress")

	for _, progress := range []int{100, 50, 0} {
		_, err := p.AddCategory("c", decimal.Zero, "", nil, nil)
		require.NoError(t, err)
		p.Categories[len(p.Categories)-1].Progress = progress
	}
	assert.Equal(t, float64(50), p.OverallProgress())
}

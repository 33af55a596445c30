package project

import "github.com/shopspring/decimal"

// Summary holds the derived financial values of a project. All monetary
// figures are USD; they are recomputed from the in-memory project on demand,
// never cached.
type Summary struct {
	TotalIncomeUSD   decimal.Decimal            `json:"total_income_usd"`
	TotalExpensesUSD decimal.Decimal            `json:"total_expenses_usd"`
	BalanceUSD       decimal.Decimal            `json:"balance_usd"`
	SpendByCategory  map[string]decimal.Decimal `json:"spend_by_category"`
	OverallProgress  float64                    `json:"overall_progress"`
}

// TotalIncome sums AmountUSD over income transactions
func (p *Project) TotalIncome() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range p.Transactions {
		if tx.Type == TypeIncome {
			total = total.Add(tx.AmountUSD)
		}
	}
	return total
}

// TotalExpenses sums AmountUSD over expense transactions
func (p *Project) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range p.Transactions {
		if tx.Type == TypeExpense {
			total = total.Add(tx.AmountUSD)
		}
	}
	return total
}

// Balance is total income minus total expenses
func (p *Project) Balance() decimal.Decimal {
	return p.TotalIncome().Sub(p.TotalExpenses())
}

// SpendByCategory groups expense transactions by category name and sums
// AmountUSD. Dangling category references group under their stored name.
func (p *Project) SpendByCategory() map[string]decimal.Decimal {
	spend := make(map[string]decimal.Decimal)
	for _, tx := range p.Transactions {
		if tx.Type != TypeExpense {
			continue
		}
		spend[tx.Category] = spend[tx.Category].Add(tx.AmountUSD)
	}
	return spend
}

// OverallProgress is the arithmetic mean of category progress values,
// 0 when the project has no categories
func (p *Project) OverallProgress() float64 {
	if len(p.Categories) == 0 {
		return 0
	}
	sum := 0
	for _, category := range p.Categories {
		sum += category.Progress
	}
	return float64(sum) / float64(len(p.Categories))
}

// Summarize computes all derived values in one pass-friendly struct
func (p *Project) Summarize() Summary {
	return Summary{
		TotalIncomeUSD:   p.TotalIncome(),
		TotalExpensesUSD: p.TotalExpenses(),
		BalanceUSD:       p.Balance(),
		SpendByCategory:  p.SpendByCategory(),
		OverallProgress:  p.OverallProgress(),
	}
}

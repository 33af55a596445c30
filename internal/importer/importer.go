// Package importer replaces a project's budget with the contents of an
// external spreadsheet. The import is a wholesale overwrite of categories
// and transactions, not a merge.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/alexispparra/roots-sub000/internal/domain/project"
	"github.com/alexispparra/roots-sub000/internal/ledger"
	"github.com/alexispparra/roots-sub000/internal/logger"
)

// Named ranges the sheet must expose.
const (
	categoriesRange   = "Categorias"
	transactionsRange = "Transacciones"
)

// Importer fetches CSV exports of the two named ranges and writes the
// mapped result through the ledger service.
type Importer struct {
	ledger  *ledger.Service
	client  *http.Client
	baseURL string
	log     *log.Logger
}

// New builds an importer. baseURL is the spreadsheet's CSV export endpoint;
// the named range goes in the query string.
func New(ledgerService *ledger.Service, baseURL string, timeout time.Duration) *Importer {
	return &Importer{
		ledger:  ledgerService,
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		log:     logger.Importer(),
	}
}

// Run imports the spreadsheet into the given project on behalf of the actor.
func (i *Importer) Run(ctx context.Context, projectID, actorEmail, sheetID string) (int, int, error) {
	categoryRows, err := i.fetchRange(ctx, sheetID, categoriesRange)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch categories range: %w", err)
	}
	transactionRows, err := i.fetchRange(ctx, sheetID, transactionsRange)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch transactions range: %w", err)
	}

	categories := MapCategories(categoryRows)
	transactions := MapTransactions(transactionRows)

	if err := i.ledger.ReplaceBudget(projectID, actorEmail, categories, transactions); err != nil {
		return 0, 0, err
	}

	i.log.Info("Spreadsheet imported",
		"project_id", projectID,
		"categories", len(categories),
		"transactions", len(transactions),
	)
	return len(categories), len(transactions), nil
}

// fetchRange downloads one named range as CSV and returns its data rows,
// header excluded.
func (i *Importer) fetchRange(ctx context.Context, sheetID, rangeName string) ([][]string, error) {
	u := fmt.Sprintf("%s?sheet=%s&range=%s&format=csv",
		i.baseURL, url.QueryEscape(sheetID), url.QueryEscape(rangeName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("spreadsheet endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// MapCategories turns raw rows into categories. Expected columns:
// name, budget, icon, progress, start date, end date, dependencies.
// Rows without a name are skipped; everything else is read leniently.
func MapCategories(rows [][]string) []project.Category {
	categories := []project.Category{}
	for _, row := range rows {
		name := strings.TrimSpace(cellAt(row, 0))
		if name == "" {
			continue
		}
		c := project.Category{
			Name:         name,
			Budget:       ParseAmount(cellAt(row, 1)),
			Icon:         strings.TrimSpace(cellAt(row, 2)),
			Progress:     ParseProgress(cellAt(row, 3)),
			Dependencies: ParseDependencies(cellAt(row, 6)),
		}
		if start := ParseDate(cellAt(row, 4)); !start.IsZero() {
			c.StartDate = &start
		}
		if end := ParseDate(cellAt(row, 5)); !end.IsZero() {
			c.EndDate = &end
		}
		categories = append(categories, c)
	}
	return categories
}

// MapTransactions turns raw rows into transactions. Expected columns:
// date, description, category, type, amount ARS, amount USD, exchange
// rate, user, payment method. Rows without a description are skipped.
func MapTransactions(rows [][]string) []project.Transaction {
	transactions := []project.Transaction{}
	for _, row := range rows {
		description := strings.TrimSpace(cellAt(row, 1))
		if description == "" {
			continue
		}

		txType := project.TypeExpense
		if strings.EqualFold(strings.TrimSpace(cellAt(row, 3)), string(project.TypeIncome)) {
			txType = project.TypeIncome
		}
		category := strings.TrimSpace(cellAt(row, 2))
		if txType == project.TypeIncome {
			category = project.IncomeCategory
		}

		tx := project.Transaction{
			ID:            uuid.New(),
			Type:          txType,
			Date:          ParseDate(cellAt(row, 0)),
			Description:   description,
			Category:      category,
			User:          strings.TrimSpace(cellAt(row, 7)),
			PaymentMethod: strings.TrimSpace(cellAt(row, 8)),
			AmountARS:     ParseAmount(cellAt(row, 4)),
			AmountUSD:     ParseAmount(cellAt(row, 5)),
			ExchangeRate:  ParseRate(cellAt(row, 6)),
		}
		tx.NormalizeAmounts()
		transactions = append(transactions, tx)
	}
	return transactions
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

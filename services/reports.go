package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/Rhymond/go-money"
	"github.com/samber/lo"

	"cycleledger/database"
)

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Category  string  `json:"category"`
	Total     float64 `json:"total"`
	Formatted string  `json:"formatted"`
}

// CycleSummary aggregates one cycle window (or all time when the window is
// empty) for the dashboard cards.
type CycleSummary struct {
	Start            string          `json:"start,omitempty"`
	End              string          `json:"end,omitempty"`
	Income           float64         `json:"income"`
	Expense          float64         `json:"expense"`
	Net              float64         `json:"net"`
	FormattedIncome  string          `json:"formattedIncome"`
	FormattedExpense string          `json:"formattedExpense"`
	FormattedNet     string          `json:"formattedNet"`
	Breakdown        []CategoryTotal `json:"breakdown"`
}

// BuildCycleSummary totals income and expenses between start and end
// (inclusive, YYYY-MM-DD) and breaks expenses down by category. Empty start
// and end mean the overall pseudo-cycle: no date filter at all.
func BuildCycleSummary(start, end, currency string) (*CycleSummary, error) {
	query := "SELECT type, category, amount FROM transactions"
	args := []interface{}{}
	if start != "" && end != "" {
		query += " WHERE date >= ? AND date <= ?"
		args = append(args, start, end)
	}

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	summary := &CycleSummary{Start: start, End: end}
	expenseByCategory := map[string]float64{}
	for rows.Next() {
		var txType, category string
		var amount float64
		if err := rows.Scan(&txType, &category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if txType == "income" {
			summary.Income += amount
		} else {
			summary.Expense += amount
			expenseByCategory[category] += amount
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	summary.Net = summary.Income - summary.Expense
	summary.FormattedIncome = FormatAmount(summary.Income, currency)
	summary.FormattedExpense = FormatAmount(summary.Expense, currency)
	summary.FormattedNet = FormatAmount(summary.Net, currency)

	summary.Breakdown = lo.MapToSlice(expenseByCategory, func(category string, total float64) CategoryTotal {
		return CategoryTotal{
			Category:  category,
			Total:     total,
			Formatted: FormatAmount(total, currency),
		}
	})
	sort.Slice(summary.Breakdown, func(i, j int) bool {
		return summary.Breakdown[i].Total > summary.Breakdown[j].Total
	})

	return summary, nil
}

// FormatAmount renders a decimal amount in the configured display currency.
func FormatAmount(amount float64, currency string) string {
	c := money.GetCurrency(currency)
	if c == nil {
		c = money.GetCurrency(money.USD)
	}
	minor := int64(math.Round(amount * math.Pow10(c.Fraction)))
	return money.New(minor, c.Code).Display()
}

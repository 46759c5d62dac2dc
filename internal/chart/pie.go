// Package chart builds the expense breakdown pie chart.
package chart

import (
	"fmt"

	"github.com/go-analyze/charts"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/moneybook/internal/models"
)

// Palette holds the slice colors, assigned in breakdown order and cycled
// when a period has more categories than colors.
var Palette = []string{
	"#F44336", // red
	"#2196F3", // blue
	"#4CAF50", // green
	"#FF9800", // orange
	"#9C27B0", // purple
	"#00BCD4", // cyan
	"#795548", // brown
	"#607D8B", // blue grey
}

// Slice is one category's share of the period's expenses.
type Slice struct {
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Percent float64         `json:"percent"`
	Color   string          `json:"color"`
}

var hundred = decimal.NewFromInt(100)

// BuildSlices converts per-category totals into pie slices. Percentages
// are rounded to one decimal place; totals must already be sorted largest
// first. Returns nil when there is nothing to chart.
func BuildSlices(totals []models.CategoryAmount) []Slice {
	if len(totals) == 0 {
		return nil
	}

	sum := decimal.Zero
	for _, ca := range totals {
		sum = sum.Add(ca.Amount)
	}
	if sum.IsZero() {
		return nil
	}

	slices := make([]Slice, 0, len(totals))
	for i, ca := range totals {
		percent := ca.Amount.Mul(hundred).Div(sum).Round(1)
		slices = append(slices, Slice{
			Name:    ca.Name,
			Amount:  ca.Amount,
			Percent: percent.InexactFloat64(),
			Color:   Palette[i%len(Palette)],
		})
	}
	return slices
}

// RenderPie draws the breakdown as a PNG pie chart. The title names the
// period, e.g. "Expense Breakdown - 2024-06".
func RenderPie(totals []models.CategoryAmount, period string) ([]byte, error) {
	if len(totals) == 0 {
		return nil, fmt.Errorf("no expenses to chart")
	}

	var values []float64
	var names []string
	for _, ca := range totals {
		names = append(names, ca.Name)
		values = append(values, ca.Amount.InexactFloat64())
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Expense Breakdown - %s", period),
		}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}

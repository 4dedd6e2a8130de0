package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/18981850753/shopList-App/internal/ledger"
	"github.com/18981850753/shopList-App/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#626262", Dark: "#a8a8a8"})
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#859900", Dark: "#50fa7b"}).Bold(true)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"})
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderProducts(w io.Writer, products []ledger.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No records yet. Add one with `shoplist add`."))
		return
	}

	t := newTable("Product", "Records", "Avg /kg", "Max /kg", "Min /kg")
	for _, p := range products {
		t.Row(
			p.Name,
			strconv.Itoa(p.Count),
			money(p.Info.Average),
			money(p.Info.Max),
			money(p.Info.Min),
		)
	}
	fmt.Fprintln(w, t.Render())
}

func renderRecords(w io.Writer, name string, records []models.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("No records for %q.", name)))
		return
	}

	t := newTable("#", "Name", "Price", "Weight", "Unit", "Brand", "Remark", "Created", "Updated")
	for _, r := range records {
		t.Row(
			strconv.Itoa(r.Index),
			r.Name,
			r.Price,
			r.Weight,
			ledger.FormatUnitPrice(r),
			r.Brand,
			r.Remark,
			r.CreateTime,
			r.UpdateTime,
		)
	}
	fmt.Fprintln(w, t.Render())
}

func money(v float64) string {
	return fmt.Sprintf("%s%.2f", models.CurrencyPrefix, v)
}

// explain turns validation errors into one line per field.
func explain(err error) error {
	var fe ledger.FieldErrors
	if !errors.As(err, &fe) {
		return err
	}
	msg := "invalid input:"
	for _, field := range []string{"name", "price", "weight", "brand", "remark"} {
		if m, ok := fe[field]; ok {
			msg += "\n  --" + field + ": " + m
		}
	}
	return errors.New(msg)
}

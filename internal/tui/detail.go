package tui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/18981850753/shopList-App/internal/ledger"
	"github.com/18981850753/shopList-App/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

type DetailModel struct {
	svc        *ledger.Service
	name       string
	records    *ledger.Table
	grid       table.Model
	info       ledger.PriceInfo
	lastSort   string
	confirming bool
	width      int
	height     int
}

func NewDetailModel(svc *ledger.Service) *DetailModel {
	grid := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Price", Width: 9},
			{Title: "Weight", Width: 8},
			{Title: "Unit", Width: 9},
			{Title: "Brand", Width: 10},
			{Title: "Remark", Width: 14},
			{Title: "Created", Width: 19},
			{Title: "Updated", Width: 19},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	grid.SetStyles(gridStyles())

	return &DetailModel{
		svc:     svc,
		grid:    grid,
		records: ledger.NewTable("", nil),
	}
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if height > 12 {
		m.grid.SetHeight(height - 12)
	}
}

// Load shows the records of name.
func (m *DetailModel) Load(name string) error {
	m.name = name
	m.grid.SetCursor(0)
	return m.Reload()
}

// Reload re-reads the store. Sort toggles start over, as the records come
// back in file order.
func (m *DetailModel) Reload() error {
	m.confirming = false
	m.lastSort = ""
	catalog, err := m.svc.Catalog()
	if err != nil {
		m.records = ledger.NewTable(m.name, nil)
		m.refreshRows()
		return err
	}
	m.records = catalog.Table(m.name)
	m.info = catalog.Summary(m.name)
	m.refreshRows()
	return nil
}

func (m *DetailModel) refreshRows() {
	rows := make([]table.Row, 0, m.records.Len())
	for _, r := range m.records.Records() {
		rows = append(rows, table.Row{
			strconv.Itoa(r.Index),
			r.Price,
			r.Weight,
			ledger.FormatUnitPrice(r),
			r.Brand,
			r.Remark,
			r.CreateTime,
			r.UpdateTime,
		})
	}
	m.grid.SetRows(rows)
	if len(rows) == 0 {
		return
	}
	if c := m.grid.Cursor(); c < 0 {
		m.grid.SetCursor(0)
	} else if c >= len(rows) {
		m.grid.SetCursor(len(rows) - 1)
	}
}

func (m *DetailModel) capturing() bool {
	return m.confirming
}

func (m *DetailModel) selected() (models.Record, bool) {
	i := m.grid.Cursor()
	if i < 0 || i >= m.records.Len() {
		return models.Record{}, false
	}
	return m.records.At(i), true
}

func (m *DetailModel) toggle(key ledger.SortKey) {
	order := m.records.Toggle(key)
	m.lastSort = fmt.Sprintf("%s %s", key, order)
	m.refreshRows()
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirming {
		m.confirming = false
		if keyMsg.String() != "y" && keyMsg.String() != "Y" {
			return m, nil
		}
		record, ok := m.selected()
		if !ok {
			return m, nil
		}
		err := m.svc.Delete(record)
		if reloadErr := m.Reload(); reloadErr != nil {
			return m, ShowError(reloadErr)
		}
		if err != nil {
			if errors.Is(err, ledger.ErrStaleRecord) {
				return m, ShowError(fmt.Errorf("record %d changed on disk, list reloaded", record.Index))
			}
			return m, ShowError(err)
		}
		return m, ShowStatus("Deleted record %d", record.Index)
	}

	switch keyMsg.String() {
	case "p":
		m.toggle(ledger.SortByPrice)
		return m, nil
	case "u":
		m.toggle(ledger.SortByUnitPrice)
		return m, nil
	case "t":
		m.toggle(ledger.SortByTime)
		return m, nil
	case "a":
		return m, OpenForm(OpenFormMsg{Name: m.name, ReturnTo: DetailScreen})
	case "enter", "e":
		if record, ok := m.selected(); ok {
			return m, OpenForm(OpenFormMsg{Record: &record, ReturnTo: DetailScreen})
		}
		return m, nil
	case "d":
		if _, ok := m.selected(); ok {
			m.confirming = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(keyMsg)
	return m, cmd
}

func (m *DetailModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render(fmt.Sprintf("📋 %s", m.name))
	stats := statsStyle.Render(m.info.String())

	var body string
	if m.records.Len() == 0 {
		body = warningStyle.Render("No records for this product")
	} else {
		body = gridBorderStyle.Render(m.grid.View())
	}

	sortLine := ""
	if m.lastSort != "" {
		sortLine = labelStyle.Render("Sorted by " + m.lastSort)
	}

	var footer string
	if m.confirming {
		record, _ := m.selected()
		footer = warningStyle.Render(fmt.Sprintf("Delete record %d (%s, %s)? (y/N)", record.Index, record.Price, record.Weight))
	} else {
		footer = adaptiveHelpStyle.Render(fmt.Sprintf(
			"p: Price %s • u: Unit price %s • t: Time %s • Enter: Edit • a: Add • d: Delete • Esc: Products",
			arrow(m.records.NextOrder(ledger.SortByPrice)),
			arrow(m.records.NextOrder(ledger.SortByUnitPrice)),
			arrow(m.records.NextOrder(ledger.SortByTime)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, stats, body, sortLine, footer)
}

func arrow(o ledger.Order) string {
	if o == ledger.Descending {
		return "↓"
	}
	return "↑"
}

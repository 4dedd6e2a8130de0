package tui

import (
	"fmt"
	"strings"

	"github.com/18981850753/shopList-App/internal/ledger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

type productsMode int

const (
	productsBrowse productsMode = iota
	productsRename
	productsConfirmDelete
)

type ProductsModel struct {
	svc         *ledger.Service
	products    []ledger.Product
	cursor      int
	mode        productsMode
	renameInput textinput.Model
	width       int
	height      int
}

func NewProductsModel(svc *ledger.Service) *ProductsModel {
	renameInput := textinput.New()
	renameInput.Placeholder = "new product name"

	return &ProductsModel{
		svc:         svc,
		renameInput: renameInput,
	}
}

func (m *ProductsModel) Init() tea.Cmd {
	return nil
}

func (m *ProductsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Reload takes a fresh snapshot of the store.
func (m *ProductsModel) Reload() error {
	m.mode = productsBrowse
	catalog, err := m.svc.Catalog()
	if err != nil {
		m.products = nil
		return err
	}
	m.products = catalog.Products()
	if m.cursor >= len(m.products) {
		m.cursor = len(m.products) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return nil
}

func (m *ProductsModel) capturing() bool {
	return m.mode != productsBrowse
}

func (m *ProductsModel) selected() (ledger.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.products) {
		return ledger.Product{}, false
	}
	return m.products[m.cursor], true
}

func (m *ProductsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case productsRename:
		return m.updateRename(keyMsg)
	case productsConfirmDelete:
		return m.updateConfirmDelete(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "n":
		return m, OpenForm(OpenFormMsg{ReturnTo: ProductsScreen})
	}

	product, ok := m.selected()
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "enter", " ":
		return m, OpenProduct(product.Name)
	case "a":
		return m, OpenForm(OpenFormMsg{Name: product.Name, ReturnTo: ProductsScreen})
	case "r":
		m.mode = productsRename
		m.renameInput.SetValue(product.Name)
		m.renameInput.CursorEnd()
		return m, m.renameInput.Focus()
	case "d":
		m.mode = productsConfirmDelete
	}
	return m, nil
}

func (m *ProductsModel) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = productsBrowse
		m.renameInput.Blur()
		return m, nil
	case "enter":
		product, _ := m.selected()
		newName := strings.TrimSpace(m.renameInput.Value())
		m.renameInput.Blur()
		changed, err := m.svc.RenameProduct(product.Name, newName)
		if err != nil {
			m.mode = productsBrowse
			return m, ShowError(err)
		}
		if err := m.Reload(); err != nil {
			return m, ShowError(err)
		}
		if changed == 0 {
			return m, nil
		}
		return m, ShowStatus("Renamed %s to %s (%d records)", product.Name, newName, changed)
	}

	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

func (m *ProductsModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		product, _ := m.selected()
		removed, err := m.svc.RemoveProduct(product.Name)
		if err != nil {
			m.mode = productsBrowse
			return m, ShowError(err)
		}
		if err := m.Reload(); err != nil {
			return m, ShowError(err)
		}
		return m, ShowStatus("Deleted %s (%d records)", product.Name, removed)
	default:
		m.mode = productsBrowse
	}
	return m, nil
}

func (m *ProductsModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("🍎 Products")

	if len(m.products) == 0 {
		content := warningStyle.Render("No records yet")
		help := adaptiveHelpStyle.Render("n: Add record • Esc: Back to menu")
		return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
	}

	nameWidth := 0
	for _, p := range m.products {
		if w := lipgloss.Width(p.Name); w > nameWidth {
			nameWidth = w
		}
	}

	var list string
	for i, p := range m.products {
		cursor := " "
		style := menuItemStyle
		if i == m.cursor {
			cursor = ">"
			style = selectedMenuItemStyle
		}
		name := p.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(p.Name))
		stats := statsStyle.Render(fmt.Sprintf("%s  (%d)", p.Info, p.Count))
		list += fmt.Sprintf("%s %s %s\n", cursor, style.Render(name), stats)
	}

	var footer string
	switch m.mode {
	case productsRename:
		footer = labelStyle.Render("Rename to:") + "\n" + m.renameInput.View() +
			"\n" + helpStyle.Render("Enter: Save • Esc: Cancel")
	case productsConfirmDelete:
		product, _ := m.selected()
		footer = warningStyle.Render(fmt.Sprintf("Delete %q and all of its records? (y/N)", product.Name))
	default:
		footer = adaptiveHelpStyle.Render("↑/↓: Navigate • Enter: Records • a: Add for product • n: New product • r: Rename • d: Delete • Esc: Menu")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, list, footer)
}

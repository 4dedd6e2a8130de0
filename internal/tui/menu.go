package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuEntry struct {
	label  string
	action func() tea.Cmd
}

type MenuModel struct {
	entries []menuEntry
	cursor  int
	width   int
	height  int
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		entries: []menuEntry{
			{"🍎 Products", func() tea.Cmd { return ChangeScreen(ProductsScreen) }},
			{"➕ Add Record", func() tea.Cmd { return OpenForm(OpenFormMsg{ReturnTo: ProductsScreen}) }},
			{"💾 Backup Store", func() tea.Cmd { return ChangeScreen(BackupScreen) }},
			{"🚪 Exit", func() tea.Cmd { return tea.Quit }},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m, m.entries[m.cursor].action()
	}
	return m, nil
}

func (m *MenuModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("🛒 Shop List")

	var menu string
	for i, entry := range m.entries {
		cursor := " "
		style := menuItemStyle
		if i == m.cursor {
			cursor = ">"
			style = selectedMenuItemStyle
		}
		menu += fmt.Sprintf("%s %s\n", cursor, style.Render(entry.label))
	}

	help := adaptiveHelpStyle.Render("↑/↓ (j/k): Navigate • Enter: Select • q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, menu, help)
}

package tui

import (
	"fmt"

	"github.com/18981850753/shopList-App/internal/backup"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type BackupState int

const (
	BackupFormatSelectState BackupState = iota
	BackupResultState
)

type BackupResult struct {
	RecordCount int
	FilePath    string
	Error       error
}

type BackupModel struct {
	backups         *backup.Service
	outputDir       string
	state           BackupState
	formats         []string
	formatSelection int
	result          BackupResult
	width           int
	height          int
}

func NewBackupModel(backups *backup.Service, outputDir string) *BackupModel {
	return &BackupModel{
		backups:   backups,
		outputDir: outputDir,
		state:     BackupFormatSelectState,
		formats:   []string{backup.FormatCSV, backup.FormatJSON},
	}
}

func (m *BackupModel) Init() tea.Cmd {
	return nil
}

func (m *BackupModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *BackupModel) reset() {
	m.state = BackupFormatSelectState
	m.result = BackupResult{}
}

func (m *BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.state {
	case BackupFormatSelectState:
		switch keyMsg.String() {
		case "up", "k":
			if m.formatSelection > 0 {
				m.formatSelection--
			}
		case "down", "j":
			if m.formatSelection < len(m.formats)-1 {
				m.formatSelection++
			}
		case "enter", " ":
			m.performBackup()
		}
	case BackupResultState:
		if keyMsg.String() == "enter" || keyMsg.String() == " " {
			m.reset()
		}
	}
	return m, nil
}

func (m *BackupModel) performBackup() {
	path, count, err := m.backups.BackupStore(m.outputDir, m.formats[m.formatSelection])
	m.result = BackupResult{RecordCount: count, FilePath: path, Error: err}
	m.state = BackupResultState
}

func (m *BackupModel) View() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	if m.state == BackupResultState {
		title := adaptiveTitleStyle.Render("💾 Backup Complete")

		var status string
		if m.result.Error != nil {
			status = errorStyle.Render(fmt.Sprintf("❌ Backup failed: %v", m.result.Error))
		} else {
			status = successStyle.Render("✅ Backup completed successfully!") + "\n" +
				fmt.Sprintf("   Records: %d\n   File: %s", m.result.RecordCount, m.result.FilePath)
		}

		help := adaptiveHelpStyle.Render("Enter: Another backup • Esc: Back to menu")
		return lipgloss.JoinVertical(lipgloss.Left, title, status, help)
	}

	title := adaptiveTitleStyle.Render("💾 Backup Store")

	var formats string
	for i, format := range m.formats {
		cursor := " "
		style := menuItemStyle
		if i == m.formatSelection {
			cursor = ">"
			style = selectedMenuItemStyle
		}
		formats += fmt.Sprintf("%s %s\n", cursor, style.Render(format))
	}

	form := adaptiveFormStyle.Render(
		labelStyle.Render("Output directory:") + "\n" + inputStyle.Render(m.outputDir) + "\n\n" +
			labelStyle.Render("Format:") + "\n" + formats,
	)

	help := adaptiveHelpStyle.Render("↑/↓: Choose format • Enter: Back up • Esc: Back to menu")

	return lipgloss.JoinVertical(lipgloss.Left, title, form, help)
}

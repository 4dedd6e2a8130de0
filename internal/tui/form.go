package tui

import (
	"errors"
	"fmt"

	"github.com/18981850753/shopList-App/internal/ledger"
	"github.com/18981850753/shopList-App/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldName = iota
	fieldPrice
	fieldWeight
	fieldBrand
	fieldRemark
	fieldCount
)

var formLabels = [fieldCount]string{"Name:", "Price (¥):", "Weight (kg):", "Brand:", "Remark:"}
var formKeys = [fieldCount]string{"name", "price", "weight", "brand", "remark"}

// FormModel adds a record, or edits one when editing is set.
type FormModel struct {
	svc          *ledger.Service
	inputs       [fieldCount]textinput.Model
	focusedInput int
	editing      *models.Record
	fieldErrors  ledger.FieldErrors
	returnTo     Screen
	width        int
	height       int
}

func NewFormModel(svc *ledger.Service) *FormModel {
	m := &FormModel{svc: svc, returnTo: ProductsScreen}
	placeholders := [fieldCount]string{"苹果", "10", "2", models.DefaultText, models.DefaultText}
	for i := range m.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		m.inputs[i] = input
	}
	return m
}

func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *FormModel) capturing() bool {
	return true
}

// Open resets the form for msg.
func (m *FormModel) Open(msg OpenFormMsg) {
	m.editing = msg.Record
	m.returnTo = msg.ReturnTo
	m.fieldErrors = nil

	var in ledger.Input
	if msg.Record != nil {
		in = ledger.InputFrom(*msg.Record)
	} else {
		in.Name = msg.Name
	}
	values := [fieldCount]string{in.Name, in.Price, in.Weight, in.Brand, in.Remark}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
	}

	m.focusedInput = fieldName
	if msg.Record == nil && msg.Name != "" {
		m.focusedInput = fieldPrice
	}
	m.updateInputFocus()
}

func (m *FormModel) updateInputFocus() {
	for i := range m.inputs {
		if i == m.focusedInput {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *FormModel) input() ledger.Input {
	return ledger.Input{
		Name:   m.inputs[fieldName].Value(),
		Price:  m.inputs[fieldPrice].Value(),
		Weight: m.inputs[fieldWeight].Value(),
		Brand:  m.inputs[fieldBrand].Value(),
		Remark: m.inputs[fieldRemark].Value(),
	}
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focusedInput], cmd = m.inputs[m.focusedInput].Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		return m, ChangeScreen(m.returnTo)
	case "tab", "down":
		m.focusedInput = (m.focusedInput + 1) % fieldCount
		m.updateInputFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusedInput = (m.focusedInput - 1 + fieldCount) % fieldCount
		m.updateInputFocus()
		return m, nil
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focusedInput], cmd = m.inputs[m.focusedInput].Update(keyMsg)
	return m, cmd
}

func (m *FormModel) submit() (tea.Model, tea.Cmd) {
	var (
		record models.Record
		err    error
	)
	if m.editing != nil {
		record, err = m.svc.Update(*m.editing, m.input())
	} else {
		record, err = m.svc.Add(m.input())
	}

	var fe ledger.FieldErrors
	if errors.As(err, &fe) {
		m.fieldErrors = fe
		for i, key := range formKeys {
			if _, bad := fe[key]; bad {
				m.focusedInput = i
				break
			}
		}
		m.updateInputFocus()
		return m, nil
	}
	if err != nil {
		if errors.Is(err, ledger.ErrStaleRecord) {
			return m, ReturnWithError(m.returnTo, err)
		}
		return m, ShowError(err)
	}

	m.fieldErrors = nil
	status := fmt.Sprintf("Added %s %s %s", record.Name, record.Price, record.Weight)
	if m.editing != nil {
		status = fmt.Sprintf("Updated record %d", record.Index)
	}
	return m, ReturnTo(m.returnTo, "%s", status)
}

func (m *FormModel) View() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	heading := "➕ Add Record"
	if m.editing != nil {
		heading = fmt.Sprintf("✏️  Edit Record %d", m.editing.Index)
	}
	title := adaptiveTitleStyle.Render(heading)

	var fields string
	for i := range m.inputs {
		if i > 0 {
			fields += "\n\n"
		}
		fields += labelStyle.Render(formLabels[i]) + "\n" + m.inputs[i].View()
		if msg, ok := m.fieldErrors[formKeys[i]]; ok {
			fields += "\n" + errorStyle.Render(msg)
		}
	}
	form := adaptiveFormStyle.Render(fields)

	var meta string
	if m.editing != nil {
		meta = statsStyle.Render(fmt.Sprintf("Created %s • Updated %s", m.editing.CreateTime, m.editing.UpdateTime))
	}

	help := adaptiveHelpStyle.Render("Tab/Shift+Tab: Navigate • Enter: Save • Esc: Cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, meta, form, help)
}

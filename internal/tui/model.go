package tui

import (
	"fmt"

	"github.com/18981850753/shopList-App/internal/backup"
	"github.com/18981850753/shopList-App/internal/ledger"
	"github.com/18981850753/shopList-App/internal/models"

	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	MenuScreen Screen = iota
	ProductsScreen
	DetailScreen
	FormScreen
	BackupScreen
)

// inputCapturer is implemented by screens that sometimes take free text and
// then need every key, including q and esc.
type inputCapturer interface {
	capturing() bool
}

type Model struct {
	currentScreen Screen
	menuModel     *MenuModel
	productsModel *ProductsModel
	detailModel   *DetailModel
	formModel     *FormModel
	backupModel   *BackupModel
	status        string
	err           error
	quitting      bool
	width         int
	height        int
}

func NewModel(svc *ledger.Service, backups *backup.Service, backupDir string) Model {
	return Model{
		currentScreen: MenuScreen,
		menuModel:     NewMenuModel(),
		productsModel: NewProductsModel(svc),
		detailModel:   NewDetailModel(svc),
		formModel:     NewFormModel(svc),
		backupModel:   NewBackupModel(backups, backupDir),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menuModel.SetSize(msg.Width, msg.Height)
		m.productsModel.SetSize(msg.Width, msg.Height)
		m.detailModel.SetSize(msg.Width, msg.Height)
		m.formModel.SetSize(msg.Width, msg.Height)
		m.backupModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if !m.activeCapturing() {
			switch msg.String() {
			case "q":
				m.quitting = true
				return m, tea.Quit
			case "esc":
				if m.currentScreen != MenuScreen {
					return m.enter(m.parent())
				}
			}
		}

	case ScreenChangeMsg:
		next, cmd := m.enter(msg.Screen)
		entered := next.(Model)
		if msg.Err != nil {
			entered.err = msg.Err
		} else if entered.err == nil {
			entered.status = msg.Status
		}
		return entered, cmd

	case OpenProductMsg:
		m.err = nil
		if err := m.detailModel.Load(msg.Name); err != nil {
			m.err = err
			return m, nil
		}
		m.currentScreen = DetailScreen
		return m, nil

	case OpenFormMsg:
		m.err = nil
		m.formModel.Open(msg)
		m.currentScreen = FormScreen
		return m, m.formModel.Init()

	case StatusMsg:
		m.status = msg.Text
		m.err = nil
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentScreen {
	case MenuScreen:
		newMenuModel, c := m.menuModel.Update(msg)
		m.menuModel = newMenuModel.(*MenuModel)
		cmd = c
	case ProductsScreen:
		newProductsModel, c := m.productsModel.Update(msg)
		m.productsModel = newProductsModel.(*ProductsModel)
		cmd = c
	case DetailScreen:
		newDetailModel, c := m.detailModel.Update(msg)
		m.detailModel = newDetailModel.(*DetailModel)
		cmd = c
	case FormScreen:
		newFormModel, c := m.formModel.Update(msg)
		m.formModel = newFormModel.(*FormModel)
		cmd = c
	case BackupScreen:
		newBackupModel, c := m.backupModel.Update(msg)
		m.backupModel = newBackupModel.(*BackupModel)
		cmd = c
	}

	return m, cmd
}

func (m Model) activeCapturing() bool {
	var screen interface{}
	switch m.currentScreen {
	case ProductsScreen:
		screen = m.productsModel
	case DetailScreen:
		screen = m.detailModel
	case FormScreen:
		screen = m.formModel
	}
	c, ok := screen.(inputCapturer)
	return ok && c.capturing()
}

func (m Model) parent() Screen {
	switch m.currentScreen {
	case DetailScreen:
		return ProductsScreen
	case FormScreen:
		return m.formModel.returnTo
	}
	return MenuScreen
}

// enter switches screens and reloads the data the new screen shows from the
// store.
func (m Model) enter(screen Screen) (tea.Model, tea.Cmd) {
	m.err = nil
	m.status = ""
	switch screen {
	case ProductsScreen:
		m.err = m.productsModel.Reload()
	case DetailScreen:
		m.err = m.detailModel.Reload()
	case BackupScreen:
		m.backupModel.reset()
	}
	m.currentScreen = screen
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return "Bye! 🍎\n"
	}

	var content string
	switch m.currentScreen {
	case MenuScreen:
		content = m.menuModel.View()
	case ProductsScreen:
		content = m.productsModel.View()
	case DetailScreen:
		content = m.detailModel.View()
	case FormScreen:
		content = m.formModel.View()
	case BackupScreen:
		content = m.backupModel.View()
	}

	if m.err != nil {
		content += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	} else if m.status != "" {
		content += "\n" + statusStyle.Render(m.status)
	}

	return content
}

// ScreenChangeMsg switches screens. Status or Err, when set, are shown once
// the new screen has reloaded.
type ScreenChangeMsg struct {
	Screen Screen
	Status string
	Err    error
}

type OpenProductMsg struct {
	Name string
}

// OpenFormMsg opens the record form. With Record set the form edits that
// record, otherwise it adds a new one prefilled with Name.
type OpenFormMsg struct {
	Record   *models.Record
	Name     string
	ReturnTo Screen
}

type StatusMsg struct {
	Text string
}

type ErrorMsg struct {
	Err error
}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}

func OpenProduct(name string) tea.Cmd {
	return func() tea.Msg {
		return OpenProductMsg{Name: name}
	}
}

func OpenForm(msg OpenFormMsg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// ReturnTo changes to screen and then shows a status line.
func ReturnTo(screen Screen, format string, args ...interface{}) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen, Status: text}
	}
}

// ReturnWithError changes to screen and then shows err.
func ReturnWithError(screen Screen, err error) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen, Err: err}
	}
}

func ShowStatus(format string, args ...interface{}) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/enertech-th/fieldforms/cmd/tui/internal/view"
	"github.com/enertech-th/fieldforms/internal/config"
	"github.com/enertech-th/fieldforms/internal/expense"
	expenseStore "github.com/enertech-th/fieldforms/internal/expense/store"
	"github.com/enertech-th/fieldforms/internal/export"
	"github.com/enertech-th/fieldforms/internal/timesheet"
	timesheetStore "github.com/enertech-th/fieldforms/internal/timesheet/store"
)

type model struct {
	expenseService   *expense.Service
	timesheetService *timesheet.Service
	exportService    *export.Service

	currentView View

	expenseView   view.ExpenseModel
	timesheetView view.TimesheetModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewExpenses  View = 1
	ViewTimesheet View = 2
	ViewExport    View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	expenseSvc := expense.NewService(expenseStore.New(cfg.Data.Root), cfg.Currency.Home)
	timesheetSvc := timesheet.NewService(timesheetStore.New(cfg.Data.Root))
	exportSvc := export.NewService(expenseSvc, timesheetSvc)

	return model{
		expenseService:   expenseSvc,
		timesheetService: timesheetSvc,
		exportService:    exportSvc,
		currentView:      ViewMenu,
		expenseView:      view.NewExpenseModel(expenseSvc),
		timesheetView:    view.NewTimesheetModel(timesheetSvc),
		exportView:       view.NewExportModel(exportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewExpenses
				m.expenseView = view.NewExpenseModel(m.expenseService)

				return m, m.expenseView.Init()
			case "2":
				m.currentView = ViewTimesheet
				m.timesheetView = view.NewTimesheetModel(m.timesheetService)

				return m, m.timesheetView.Init()
			case "3":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expenseView.Update(msg)
		m.expenseView = newModel.(view.ExpenseModel)
	case ViewTimesheet:
		var newModel tea.Model
		newModel, cmd = m.timesheetView.Update(msg)
		m.timesheetView = newModel.(view.TimesheetModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"FieldForms TUI\n\n" +
				"1. Browse Expense Forms\n" +
				"2. Browse Timesheets\n" +
				"3. Export Reports\n\n" +
				"q. Quit",
		)
	case ViewExpenses:
		return m.expenseView.View()
	case ViewTimesheet:
		return m.timesheetView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

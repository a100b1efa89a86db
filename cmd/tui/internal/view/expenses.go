package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/enertech-th/fieldforms/internal/expense"
)

type expenseState int

const (
	expenseStateBrowse expenseState = iota
	expenseStateDetail
)

type ExpenseModel struct {
	CommonModel
	svc *expense.Service

	state expenseState
	table table.Model
	forms []expense.Form

	detail  *expense.Form
	totals  expense.Totals
	loading bool
	err     error
	status  string
}

func NewExpenseModel(svc *expense.Service) ExpenseModel {
	columns := []table.Column{
		{Title: "ID", Width: 28},
		{Title: "Project", Width: 24},
		{Title: "Location", Width: 10},
		{Title: "Fund", Width: 12},
		{Title: "Total", Width: 12},
		{Title: "Remaining", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ExpenseModel{
		svc:   svc,
		table: t,
	}
}

func (m ExpenseModel) Title() string { return "Expense Forms" }

func (m ExpenseModel) ShortHelp() string {
	if m.state == expenseStateDetail {
		return "Esc: back to list"
	}

	return "Esc: back | Enter: detail | d: delete | r: refresh"
}

func (m ExpenseModel) Init() tea.Cmd {
	return m.loadFormsCmd()
}

func (m ExpenseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadExpensesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.forms = msg.forms
		m.refreshTable()
		return m, nil

	case expenseDetailMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.detail = msg.form
		m.totals = msg.totals
		m.state = expenseStateDetail
		return m, nil

	case expenseDeleteMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}
		m.status = "Deleted " + msg.id
		return m, m.loadFormsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == expenseStateDetail {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = expenseStateBrowse
			m.detail = nil
			return m, nil
		}

		return m, nil
	}

	return m.updateBrowse(msg)
}

func (m ExpenseModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadFormsCmd()
		case "enter":
			if id, ok := m.selectedID(); ok {
				return m, m.loadDetailCmd(id)
			}
		case "d":
			if id, ok := m.selectedID(); ok {
				return m, m.deleteCmd(id)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ExpenseModel) selectedID() (string, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.forms) {
		return "", false
	}

	return m.forms[idx].ID, true
}

func (m ExpenseModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expense forms...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == expenseStateDetail && m.detail != nil {
		return m.viewDetail()
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ExpenseModel) viewDetail() string {
	f := m.detail

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", lipgloss.NewStyle().Bold(true).Render(f.ID))
	fmt.Fprintf(&b, "Project:   %s\n", f.ProjectName)
	fmt.Fprintf(&b, "Location:  %s", f.WorkLocation)
	if f.WorkCountry != "" {
		fmt.Fprintf(&b, " (%s)", f.WorkCountry)
	}
	fmt.Fprintf(&b, "\nIssued by: %s on %s\n\n", f.IssuedBy, f.IssueDate)

	for _, it := range f.Expenses {
		fmt.Fprintf(&b, "  %-12s %-30s %12s\n", it.Date, it.Detail, FormatMoney(it.Amount, it.Currency))
	}

	fmt.Fprintf(&b, "\nFund:      %s\n", FormatMoney(f.FundHome, "THB"))
	fmt.Fprintf(&b, "Total:     %s THB\n", FormatDecimal(m.totals.Total))
	fmt.Fprintf(&b, "Remaining: %s THB\n", FormatDecimal(m.totals.Remaining))

	for _, skip := range m.totals.Skipped {
		warn := fmt.Sprintf("line %d (%s) excluded: %s", skip.Index+1, skip.Currency, skip.Reason)
		fmt.Fprintf(&b, "%s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(warn))
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func (m *ExpenseModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.forms))
	for i := range m.forms {
		f := &m.forms[i]
		rows = append(rows, table.Row{
			f.ID,
			f.ProjectName,
			f.WorkLocation,
			fmt.Sprintf("%.2f", f.FundHome),
			fmt.Sprintf("%.2f", f.TotalExpenseHome),
			fmt.Sprintf("%.2f", f.RemainingFundsHome),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadExpensesMsg struct {
	forms []expense.Form
	err   error
}

func (m ExpenseModel) loadFormsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		forms, err := m.svc.List(ctx)
		return loadExpensesMsg{forms: forms, err: err}
	}
}

type expenseDetailMsg struct {
	form   *expense.Form
	totals expense.Totals
	err    error
}

func (m ExpenseModel) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		form, totals, err := m.svc.Get(ctx, id)
		return expenseDetailMsg{form: form, totals: totals, err: err}
	}
}

type expenseDeleteMsg struct {
	id  string
	err error
}

func (m ExpenseModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		_, err := m.svc.Delete(ctx, id)
		return expenseDeleteMsg{id: id, err: err}
	}
}

package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/enertech-th/fieldforms/internal/timesheet"
)

type timesheetState int

const (
	timesheetStateBrowse timesheetState = iota
	timesheetStateDetail
)

type TimesheetModel struct {
	CommonModel
	svc *timesheet.Service

	state   timesheetState
	table   table.Model
	entries []timesheet.Entry

	detail    *timesheet.Entry
	breakdown timesheet.Breakdown
	loading   bool
	err       error
	status    string
}

func NewTimesheetModel(svc *timesheet.Service) TimesheetModel {
	columns := []table.Column{
		{Title: "ID", Width: 26},
		{Title: "Client", Width: 20},
		{Title: "Engineer", Width: 20},
		{Title: "Status", Width: 10},
		{Title: "Total", Width: 14},
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

	return TimesheetModel{
		svc:   svc,
		table: t,
	}
}

func (m TimesheetModel) Title() string { return "Timesheets" }

func (m TimesheetModel) ShortHelp() string {
	if m.state == timesheetStateDetail {
		return "Esc: back to list"
	}

	return "Esc: back | Enter: charge breakdown | d: delete | r: refresh"
}

func (m TimesheetModel) Init() tea.Cmd {
	return m.loadEntriesCmd()
}

func (m TimesheetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTimesheetsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		m.refreshTable()
		return m, nil

	case timesheetDetailMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.detail = msg.entry
		m.breakdown = msg.breakdown
		m.state = timesheetStateDetail
		return m, nil

	case timesheetDeleteMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}
		m.status = "Deleted " + msg.id
		return m, m.loadEntriesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == timesheetStateDetail {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = timesheetStateBrowse
			m.detail = nil
			return m, nil
		}

		return m, nil
	}

	return m.updateBrowse(msg)
}

func (m TimesheetModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadEntriesCmd()
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

func (m TimesheetModel) selectedID() (string, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return "", false
	}

	return m.entries[idx].ID, true
}

func (m TimesheetModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading timesheets...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == timesheetStateDetail && m.detail != nil {
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

func (m TimesheetModel) viewDetail() string {
	e := m.detail
	b := m.breakdown

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n\n", lipgloss.NewStyle().Bold(true).Render(e.ID))
	fmt.Fprintf(&sb, "Client:   %s\n", e.Client)
	fmt.Fprintf(&sb, "Engineer: %s %s\n", e.EngineerName, e.EngineerSurname)
	fmt.Fprintf(&sb, "Status:   %s\n\n", e.Status)

	fmt.Fprintf(&sb, "Regular hours:   %6.2f\n", b.Hours.Regular)
	fmt.Fprintf(&sb, "OT 1.5X hours:   %6.2f\n", b.Hours.OT15)
	fmt.Fprintf(&sb, "OT 2.0X hours:   %6.2f\n", b.Hours.OT2)
	fmt.Fprintf(&sb, "Offshore days:   %6d\n", b.Hours.OffshoreDays)
	fmt.Fprintf(&sb, "Travel days:     %6d short, %d far\n", b.Hours.TravelShortDays, b.Hours.TravelLongDays)
	fmt.Fprintf(&sb, "Tool days:       %6d\n\n", b.ToolDays)

	cur := e.Currency
	fmt.Fprintf(&sb, "Service hours:   %12s %s\n", FormatDecimal(b.ServiceHoursCost), cur)
	fmt.Fprintf(&sb, "Report prep:     %12s %s\n", FormatDecimal(b.ReportPrepCost), cur)
	fmt.Fprintf(&sb, "Tool usage:      %12s %s\n", FormatDecimal(b.ToolUsageCost), cur)
	fmt.Fprintf(&sb, "Travel:          %12s %s\n", FormatDecimal(b.TravelCost), cur)
	fmt.Fprintf(&sb, "Offshore:        %12s %s\n", FormatDecimal(b.OffshoreCost), cur)
	fmt.Fprintf(&sb, "Emergency:       %12s %s\n", FormatDecimal(b.EmergencyCost), cur)
	fmt.Fprintf(&sb, "Other transport: %12s %s\n", FormatDecimal(b.OtherTransportCost), cur)
	fmt.Fprintf(&sb, "Subtotal:        %12s %s\n", FormatDecimal(b.Subtotal), cur)
	fmt.Fprintf(&sb, "VAT %.2f%%:       %12s %s\n", e.VATPercent, FormatDecimal(b.VATAmount), cur)
	fmt.Fprintf(&sb, "Discount:        %12s %s\n", FormatDecimal(b.Discount), cur)

	grand := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Grand total:     %12s %s", FormatDecimal(b.GrandTotal), cur))
	fmt.Fprintf(&sb, "%s\n", grand)

	for _, warning := range b.Hours.Warnings {
		fmt.Fprintf(&sb, "%s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(warning))
	}

	return lipgloss.NewStyle().Padding(1).Render(sb.String())
}

func (m *TimesheetModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.entries))
	for i := range m.entries {
		e := &m.entries[i]
		rows = append(rows, table.Row{
			e.ID,
			e.Client,
			e.EngineerName + " " + e.EngineerSurname,
			e.Status,
			FormatMoney(e.TotalServiceCharge, e.Currency),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadTimesheetsMsg struct {
	entries []timesheet.Entry
	err     error
}

func (m TimesheetModel) loadEntriesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		entries, err := m.svc.List(ctx)
		return loadTimesheetsMsg{entries: entries, err: err}
	}
}

type timesheetDetailMsg struct {
	entry     *timesheet.Entry
	breakdown timesheet.Breakdown
	err       error
}

func (m TimesheetModel) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		entry, breakdown, err := m.svc.Get(ctx, id)
		return timesheetDetailMsg{entry: entry, breakdown: breakdown, err: err}
	}
}

type timesheetDeleteMsg struct {
	id  string
	err error
}

func (m TimesheetModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		_, err := m.svc.Delete(ctx, id)
		return timesheetDeleteMsg{id: id, err: err}
	}
}

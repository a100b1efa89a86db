// Package export renders saved forms into spreadsheet reports whose
// filenames embed the record ID, e.g. Expense_Form_<id>.xlsx.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/enertech-th/fieldforms/internal/expense"
	"github.com/enertech-th/fieldforms/internal/timesheet"
)

type Service struct {
	expenses   *expense.Service
	timesheets *timesheet.Service
}

func NewService(expenses *expense.Service, timesheets *timesheet.Service) *Service {
	return &Service{expenses: expenses, timesheets: timesheets}
}

const sheet = "Sheet1"

// ExportExpenseForm writes the itemized report for one form and returns
// the file path. Totals are recomputed at render time.
func (s *Service) ExportExpenseForm(ctx context.Context, id, outputDir string) (string, error) {
	form, totals, err := s.expenses.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("loading expense form: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Expense Reimbursement Form"},
		{"Form ID", form.ID},
		{"Project", form.ProjectName},
		{"Work Location", form.WorkLocation},
		{"Work Country", form.WorkCountry},
		{"Issued By", form.IssuedBy},
		{"Issue Date", form.IssueDate},
		{"Fund", form.FundHome},
		{},
		{"Date", "Detail", "Vendor", "Category", "Amount", "Currency", "Receipt"},
	}

	for _, it := range form.Expenses {
		rows = append(rows, []any{
			it.Date, it.Detail, it.Vendor, it.Category, it.Amount, it.Currency, receiptLabel(&it),
		})
	}

	rows = append(rows,
		[]any{},
		[]any{"Total Expenses", totals.Total.InexactFloat64()},
		[]any{"Remaining Funds", totals.Remaining.InexactFloat64()},
	)

	for _, skip := range totals.Skipped {
		rows = append(rows, []any{
			"Warning", fmt.Sprintf("line %d (%s) excluded: %s", skip.Index+1, skip.Currency, skip.Reason),
		})
	}

	if err := writeRows(f, rows); err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, fmt.Sprintf("Expense_Form_%s.xlsx", form.ID))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}

	return path, nil
}

// ExportTimesheet writes the service-charge report for one entry,
// including every intermediate term of the breakdown.
func (s *Service) ExportTimesheet(ctx context.Context, id, outputDir string) (string, error) {
	entry, breakdown, err := s.timesheets.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("loading timesheet entry: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Service Timesheet"},
		{"Entry ID", entry.ID},
		{"Client", entry.Client},
		{"Work Type", entry.WorkType},
		{"Engineer", entry.EngineerName + " " + entry.EngineerSurname},
		{"Currency", entry.Currency},
		{},
		{"Date", "Start", "End", "Rest", "Description", "OT Rate", "Offshore", "Travel"},
	}

	for _, te := range entry.TimeEntries {
		rows = append(rows, []any{
			te.Date, te.StartTime, te.EndTime, te.RestHours,
			te.Description, te.OvertimeRate, yesNo(te.Offshore), yesNo(te.TravelCount),
		})
	}

	rows = append(rows,
		[]any{},
		[]any{"Regular Hours", breakdown.Hours.Regular},
		[]any{"OT 1.5X Hours", breakdown.Hours.OT15},
		[]any{"OT 2.0X Hours", breakdown.Hours.OT2},
		[]any{"Equivalent Hours", breakdown.Hours.Equivalent},
		[]any{"Offshore Days", breakdown.Hours.OffshoreDays},
		[]any{"Travel <80km Days", breakdown.Hours.TravelShortDays},
		[]any{"Travel >80km Days", breakdown.Hours.TravelLongDays},
		[]any{"Tool Usage Days", breakdown.ToolDays},
		[]any{},
		[]any{"Service Hours Cost", breakdown.ServiceHoursCost.InexactFloat64()},
		[]any{"Report Preparation Cost", breakdown.ReportPrepCost.InexactFloat64()},
		[]any{"Tool Usage Cost", breakdown.ToolUsageCost.InexactFloat64()},
		[]any{"Travel Cost", breakdown.TravelCost.InexactFloat64()},
		[]any{"Offshore Cost", breakdown.OffshoreCost.InexactFloat64()},
		[]any{"Emergency Cost", breakdown.EmergencyCost.InexactFloat64()},
		[]any{"Other Transportation", breakdown.OtherTransportCost.InexactFloat64()},
		[]any{"Subtotal", breakdown.Subtotal.InexactFloat64()},
		[]any{fmt.Sprintf("VAT %.2f%%", entry.VATPercent), breakdown.VATAmount.InexactFloat64()},
		[]any{"Discount", breakdown.Discount.InexactFloat64()},
		[]any{"Grand Total", breakdown.GrandTotal.InexactFloat64()},
	)

	for _, warning := range breakdown.Hours.Warnings {
		rows = append(rows, []any{"Warning", warning})
	}

	if err := writeRows(f, rows); err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, fmt.Sprintf("Timesheet_%s.xlsx", entry.ID))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}

	return path, nil
}

func writeRows(f *excelize.File, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+1, err)
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	return nil
}

func receiptLabel(it *expense.Item) string {
	switch {
	case it.OfficialReceipt:
		return "Official"
	case it.NonOfficialReceipt:
		return "Non-official"
	default:
		return "None"
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}

	return "No"
}

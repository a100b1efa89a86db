// Package expense holds the reimbursement form model and its
// multi-currency total calculation.
package expense

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/enertech-th/fieldforms/internal/currency"
)

// Work locations. A form filed for Thailand ignores its third-currency
// fields entirely.
const (
	LocationThailand = "Thailand"
	LocationAbroad   = "Abroad"
)

var ErrNotFound = errors.New("expense form not found")

// Item is a single spend line owned by exactly one Form.
type Item struct {
	Date               string  `json:"expense_date"`
	Detail             string  `json:"detail"`
	Vendor             string  `json:"vendor"`
	Category           string  `json:"category"`
	Amount             float64 `json:"amount"`
	Currency           string  `json:"currency"`
	OfficialReceipt    bool    `json:"official_receipt"`
	NonOfficialReceipt bool    `json:"non_official_receipt"`
}

// Validate checks an item before it is accepted onto a form.
func (it *Item) Validate() error {
	if it.Date == "" {
		return errors.New("expense item: date is required")
	}

	if it.Amount <= 0 {
		return errors.New("expense item: amount must be positive")
	}

	if it.Currency == "" {
		return errors.New("expense item: currency is required")
	}

	if it.OfficialReceipt && it.NonOfficialReceipt {
		return errors.New("expense item: receipt type flags are mutually exclusive")
	}

	return nil
}

// Form is one reimbursement form. The cached total/remaining fields are
// recomputed from the line items on every save and display; stored values
// are never trusted.
type Form struct {
	ID           string `json:"id"`
	ProjectName  string `json:"project_name"`
	WorkLocation string `json:"work_location"`
	WorkCountry  string `json:"work_country"`

	FundHome    float64 `json:"fund_thb"`
	ReceiveDate string  `json:"receive_date"`

	HomeToUSD        float64 `json:"thb_usd"`
	ThirdCurrency    string  `json:"third_currency"`
	ThirdCurrencyUSD float64 `json:"third_currency_usd"`

	Expenses []Item `json:"expenses"`

	TotalExpenseHome   float64 `json:"total_expense_thb"`
	RemainingFundsHome float64 `json:"remaining_funds_thb"`

	IssuedBy  string `json:"issued_by"`
	IssueDate string `json:"issue_date"`
}

// Validate checks the form header and all line items.
func (f *Form) Validate() error {
	if f.ProjectName == "" {
		return errors.New("expense form: project name is required")
	}

	if f.WorkLocation != LocationThailand && f.WorkLocation != LocationAbroad {
		return fmt.Errorf("expense form: work location must be %q or %q", LocationThailand, LocationAbroad)
	}

	if f.FundHome < 0 {
		return errors.New("expense form: fund amount must not be negative")
	}

	for i := range f.Expenses {
		if err := f.Expenses[i].Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	return nil
}

// SkippedLine reports an expense line excluded from the total and why,
// so the caller can warn instead of silently dropping money.
type SkippedLine struct {
	Index    int    `json:"index"`
	Currency string `json:"currency"`
	Reason   string `json:"reason"`
}

// Totals is the recomputed result of converting every line item.
type Totals struct {
	Total      decimal.Decimal
	Remaining  decimal.Decimal
	ByCategory map[string]decimal.Decimal
	Skipped    []SkippedLine
}

// converter builds the per-form currency converter. Forms filed for
// Thailand are treated as having no third currency.
func (f *Form) converter(home string) currency.Converter {
	conv := currency.Converter{
		Home:      home,
		HomeToUSD: decimal.NewFromFloat(f.HomeToUSD),
	}

	if f.WorkLocation == LocationAbroad {
		conv.Third = f.ThirdCurrency
		conv.ThirdToUSD = decimal.NewFromFloat(f.ThirdCurrencyUSD)
	}

	return conv
}

// ComputeTotals converts every line into the home currency and derives
// the total, per-category subtotals and the remaining fund balance.
// Lines that cannot be converted contribute nothing and are reported.
func (f *Form) ComputeTotals(home string) Totals {
	conv := f.converter(home)

	totals := Totals{
		Total:      decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}

	for i := range f.Expenses {
		item := &f.Expenses[i]

		converted, err := conv.ToHome(decimal.NewFromFloat(item.Amount), item.Currency)
		if err != nil {
			totals.Skipped = append(totals.Skipped, SkippedLine{
				Index:    i,
				Currency: item.Currency,
				Reason:   err.Error(),
			})

			continue
		}

		totals.Total = totals.Total.Add(converted)
		totals.ByCategory[item.Category] = totals.ByCategory[item.Category].Add(converted)
	}

	totals.Remaining = decimal.NewFromFloat(f.FundHome).Sub(totals.Total)

	return totals
}

// RefreshTotals recomputes and stores the cached total fields.
func (f *Form) RefreshTotals(home string) Totals {
	totals := f.ComputeTotals(home)
	f.TotalExpenseHome, _ = totals.Total.Float64()
	f.RemainingFundsHome, _ = totals.Remaining.Float64()

	return totals
}

// NewID derives a form identifier in the EXP-<username>-<timestamp>
// format. IDs are assigned once at first save and never regenerated.
func NewID(username string, now time.Time) string {
	return fmt.Sprintf("EXP-%s-%s", username, now.Format("2006-01-02-150405"))
}

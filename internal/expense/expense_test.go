package expense_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enertech-th/fieldforms/internal/expense"
)

func TestForm_ComputeTotals(t *testing.T) {
	type testCase struct {
		name          string
		form          expense.Form
		wantTotal     string
		wantRemaining string
		wantSkipped   int
	}

	tests := []testCase{
		{
			name: "MixedCurrenciesAbroad",
			form: expense.Form{
				WorkLocation:     expense.LocationAbroad,
				WorkCountry:      "Germany",
				FundHome:         10000,
				HomeToUSD:        35,
				ThirdCurrency:    "EUR",
				ThirdCurrencyUSD: 0.5,
				Expenses: []expense.Item{
					{Date: "2024-03-01", Amount: 100, Currency: "USD", Category: "Hotel"},
					{Date: "2024-03-02", Amount: 10, Currency: "EUR", Category: "Meals"},
					{Date: "2024-03-03", Amount: 500, Currency: "THB", Category: "Taxi"},
				},
			},
			wantTotal:     "4700",
			wantRemaining: "5300",
		},
		{
			name: "ThailandIgnoresThirdCurrency",
			form: expense.Form{
				WorkLocation:     expense.LocationThailand,
				FundHome:         2000,
				HomeToUSD:        35,
				ThirdCurrency:    "EUR",
				ThirdCurrencyUSD: 0.5,
				Expenses: []expense.Item{
					{Date: "2024-03-01", Amount: 1000, Currency: "THB", Category: "Fuel"},
					{Date: "2024-03-02", Amount: 10, Currency: "EUR", Category: "Meals"},
				},
			},
			wantTotal:     "1000",
			wantRemaining: "1000",
			wantSkipped:   1,
		},
		{
			name: "ZeroRateSkipsUSDLines",
			form: expense.Form{
				WorkLocation: expense.LocationThailand,
				FundHome:     1000,
				Expenses: []expense.Item{
					{Date: "2024-03-01", Amount: 100, Currency: "USD", Category: "Hotel"},
					{Date: "2024-03-02", Amount: 300, Currency: "THB", Category: "Taxi"},
				},
			},
			wantTotal:     "300",
			wantRemaining: "700",
			wantSkipped:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := tt.form.ComputeTotals("THB")

			assert.Equal(t, tt.wantTotal, totals.Total.String())
			assert.Equal(t, tt.wantRemaining, totals.Remaining.String())
			assert.Len(t, totals.Skipped, tt.wantSkipped)
		})
	}
}

func TestForm_ComputeTotals_ByCategory(t *testing.T) {
	form := expense.Form{
		WorkLocation: expense.LocationThailand,
		FundHome:     5000,
		Expenses: []expense.Item{
			{Date: "2024-03-01", Amount: 100, Currency: "THB", Category: "Meals"},
			{Date: "2024-03-02", Amount: 250, Currency: "THB", Category: "Meals"},
			{Date: "2024-03-03", Amount: 400, Currency: "THB", Category: "Taxi"},
		},
	}

	totals := form.ComputeTotals("THB")

	require.Len(t, totals.ByCategory, 2)
	assert.Equal(t, "350", totals.ByCategory["Meals"].String())
	assert.Equal(t, "400", totals.ByCategory["Taxi"].String())
}

func TestForm_RefreshTotals(t *testing.T) {
	form := expense.Form{
		WorkLocation: expense.LocationThailand,
		FundHome:     1000,
		// Stale cached values must be overwritten.
		TotalExpenseHome:   999999,
		RemainingFundsHome: -1,
		Expenses: []expense.Item{
			{Date: "2024-03-01", Amount: 600, Currency: "THB"},
		},
	}

	form.RefreshTotals("THB")

	assert.InDelta(t, 600, form.TotalExpenseHome, 0.001)
	assert.InDelta(t, 400, form.RemainingFundsHome, 0.001)
}

func TestItem_Validate(t *testing.T) {
	type testCase struct {
		name    string
		item    expense.Item
		wantErr bool
	}

	tests := []testCase{
		{
			name: "Valid",
			item: expense.Item{Date: "2024-03-01", Amount: 100, Currency: "THB", OfficialReceipt: true},
		},
		{
			name:    "BothReceiptFlags",
			item:    expense.Item{Date: "2024-03-01", Amount: 100, Currency: "THB", OfficialReceipt: true, NonOfficialReceipt: true},
			wantErr: true,
		},
		{
			name:    "NonPositiveAmount",
			item:    expense.Item{Date: "2024-03-01", Amount: 0, Currency: "THB"},
			wantErr: true,
		},
		{
			name:    "MissingDate",
			item:    expense.Item{Amount: 100, Currency: "THB"},
			wantErr: true,
		},
		{
			name:    "MissingCurrency",
			item:    expense.Item{Date: "2024-03-01", Amount: 100},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestForm_Validate(t *testing.T) {
	valid := expense.Form{
		ProjectName:  "Plant Upgrade",
		WorkLocation: expense.LocationThailand,
		Expenses: []expense.Item{
			{Date: "2024-03-01", Amount: 100, Currency: "THB"},
		},
	}
	assert.NoError(t, valid.Validate())

	badLocation := valid
	badLocation.WorkLocation = "Mars"
	assert.Error(t, badLocation.Validate())

	noProject := valid
	noProject.ProjectName = ""
	assert.Error(t, noProject.Validate())
}

func TestNewID(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)

	assert.Equal(t, "EXP-somchai-2024-03-15-093045", expense.NewID("somchai", now))
}

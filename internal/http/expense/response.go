package expense

import (
	"github.com/enertech-th/fieldforms/internal/expense"
)

type formResponse struct {
	ID                 string         `json:"id"`
	ProjectName        string         `json:"project_name"`
	WorkLocation       string         `json:"work_location"`
	WorkCountry        string         `json:"work_country"`
	FundHome           float64        `json:"fund_thb"`
	ReceiveDate        string         `json:"receive_date"`
	HomeToUSD          float64        `json:"thb_usd"`
	ThirdCurrency      string         `json:"third_currency"`
	ThirdCurrencyUSD   float64        `json:"third_currency_usd"`
	Expenses           []expense.Item `json:"expenses"`
	TotalExpenseHome   float64        `json:"total_expense_thb"`
	RemainingFundsHome float64        `json:"remaining_funds_thb"`
	IssuedBy           string         `json:"issued_by"`
	IssueDate          string         `json:"issue_date"`
}

type totalsResponse struct {
	Total      float64               `json:"total_thb"`
	Remaining  float64               `json:"remaining_thb"`
	ByCategory map[string]float64    `json:"by_category"`
	Skipped    []expense.SkippedLine `json:"skipped_lines,omitempty"`
}

type formDetailResponse struct {
	formResponse
	Totals totalsResponse `json:"totals"`
}

func toFormResponse(form *expense.Form) formResponse {
	return formResponse{
		ID:                 form.ID,
		ProjectName:        form.ProjectName,
		WorkLocation:       form.WorkLocation,
		WorkCountry:        form.WorkCountry,
		FundHome:           form.FundHome,
		ReceiveDate:        form.ReceiveDate,
		HomeToUSD:          form.HomeToUSD,
		ThirdCurrency:      form.ThirdCurrency,
		ThirdCurrencyUSD:   form.ThirdCurrencyUSD,
		Expenses:           form.Expenses,
		TotalExpenseHome:   form.TotalExpenseHome,
		RemainingFundsHome: form.RemainingFundsHome,
		IssuedBy:           form.IssuedBy,
		IssueDate:          form.IssueDate,
	}
}

func toResponse(form *expense.Form, totals expense.Totals) formDetailResponse {
	byCategory := make(map[string]float64, len(totals.ByCategory))
	for category, amount := range totals.ByCategory {
		byCategory[category], _ = amount.Float64()
	}

	total, _ := totals.Total.Float64()
	remaining, _ := totals.Remaining.Float64()

	return formDetailResponse{
		formResponse: toFormResponse(form),
		Totals: totalsResponse{
			Total:      total,
			Remaining:  remaining,
			ByCategory: byCategory,
			Skipped:    totals.Skipped,
		},
	}
}

func toResponseList(forms []expense.Form) []formResponse {
	resp := make([]formResponse, 0, len(forms))
	for i := range forms {
		resp = append(resp, toFormResponse(&forms[i]))
	}

	return resp
}

type importResponse struct {
	Added     []expense.Item     `json:"added"`
	Conflicts []conflictResponse `json:"conflicts,omitempty"`
}

type conflictResponse struct {
	Incoming expense.Item `json:"incoming"`
	Existing expense.Item `json:"existing"`
}

func toImportResponse(result *expense.ImportResult) importResponse {
	resp := importResponse{Added: result.Added}
	if resp.Added == nil {
		resp.Added = []expense.Item{}
	}

	for _, c := range result.Conflicts {
		resp.Conflicts = append(resp.Conflicts, conflictResponse{Incoming: c.Incoming, Existing: c.Existing})
	}

	return resp
}

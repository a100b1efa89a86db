package timesheet

import (
	"github.com/enertech-th/fieldforms/internal/timesheet"
)

type entryResponse struct {
	ID              string `json:"entry_id"`
	Client          string `json:"client"`
	WorkType        string `json:"work_type"`
	Tier            string `json:"tier"`
	CreatedBy       string `json:"created_by"`
	EngineerName    string `json:"engineer_name"`
	EngineerSurname string `json:"engineer_surname"`
	CreationDate    string `json:"creation_date"`
	Status          string `json:"status"`

	TimeEntries []timesheet.TimeEntry `json:"time_entries"`
	ToolUsage   []timesheet.ToolUsage `json:"tool_usage,omitempty"`

	EmergencyRequest   bool    `json:"emergency_request"`
	Currency           string  `json:"currency"`
	TotalServiceCharge float64 `json:"total_service_charge"`
}

type hoursResponse struct {
	Regular         float64  `json:"regular"`
	OT15            float64  `json:"ot_1_5"`
	OT2             float64  `json:"ot_2_0"`
	Total           float64  `json:"total"`
	Equivalent      float64  `json:"equivalent"`
	OffshoreDays    int      `json:"offshore_days"`
	TravelShortDays int      `json:"travel_short_days"`
	TravelLongDays  int      `json:"travel_long_days"`
	Warnings        []string `json:"warnings,omitempty"`
}

type breakdownResponse struct {
	Hours    hoursResponse `json:"hours"`
	ToolDays int           `json:"tool_days"`

	ServiceHoursCost   float64 `json:"service_hours_cost"`
	ReportPrepCost     float64 `json:"report_prep_cost"`
	ToolUsageCost      float64 `json:"tool_usage_cost"`
	TravelCost         float64 `json:"travel_cost"`
	OffshoreCost       float64 `json:"offshore_cost"`
	EmergencyCost      float64 `json:"emergency_cost"`
	OtherTransportCost float64 `json:"other_transport_cost"`

	Subtotal   float64 `json:"subtotal"`
	VATAmount  float64 `json:"vat_amount"`
	Discount   float64 `json:"discount"`
	GrandTotal float64 `json:"grand_total"`
}

type entryDetailResponse struct {
	entryResponse
	Breakdown breakdownResponse `json:"breakdown"`
}

func toEntryResponse(e *timesheet.Entry) entryResponse {
	return entryResponse{
		ID:                 e.ID,
		Client:             e.Client,
		WorkType:           e.WorkType,
		Tier:               e.Tier,
		CreatedBy:          e.CreatedBy,
		EngineerName:       e.EngineerName,
		EngineerSurname:    e.EngineerSurname,
		CreationDate:       e.CreationDate,
		Status:             e.Status,
		TimeEntries:        e.TimeEntries,
		ToolUsage:          e.ToolUsage,
		EmergencyRequest:   e.EmergencyRequest,
		Currency:           e.Currency,
		TotalServiceCharge: e.TotalServiceCharge,
	}
}

func toResponse(e *timesheet.Entry, b timesheet.Breakdown) entryDetailResponse {
	return entryDetailResponse{
		entryResponse: toEntryResponse(e),
		Breakdown: breakdownResponse{
			Hours: hoursResponse{
				Regular:         b.Hours.Regular,
				OT15:            b.Hours.OT15,
				OT2:             b.Hours.OT2,
				Total:           b.Hours.Total,
				Equivalent:      b.Hours.Equivalent,
				OffshoreDays:    b.Hours.OffshoreDays,
				TravelShortDays: b.Hours.TravelShortDays,
				TravelLongDays:  b.Hours.TravelLongDays,
				Warnings:        b.Hours.Warnings,
			},
			ToolDays:           b.ToolDays,
			ServiceHoursCost:   b.ServiceHoursCost.InexactFloat64(),
			ReportPrepCost:     b.ReportPrepCost.InexactFloat64(),
			ToolUsageCost:      b.ToolUsageCost.InexactFloat64(),
			TravelCost:         b.TravelCost.InexactFloat64(),
			OffshoreCost:       b.OffshoreCost.InexactFloat64(),
			EmergencyCost:      b.EmergencyCost.InexactFloat64(),
			OtherTransportCost: b.OtherTransportCost.InexactFloat64(),
			Subtotal:           b.Subtotal.InexactFloat64(),
			VATAmount:          b.VATAmount.InexactFloat64(),
			Discount:           b.Discount.InexactFloat64(),
			GrandTotal:         b.GrandTotal.InexactFloat64(),
		},
	}
}

func toResponseList(entries []timesheet.Entry) []entryResponse {
	resp := make([]entryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, toEntryResponse(&entries[i]))
	}

	return resp
}

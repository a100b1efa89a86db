package timesheet

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/enertech-th/fieldforms/internal/http/auth"
	"github.com/enertech-th/fieldforms/internal/timesheet"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Handler struct {
	svc *timesheet.Service
}

func NewHandler(svc *timesheet.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.save)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type timeEntryRequest struct {
	Date                string  `json:"date" validate:"required"`
	StartTime           string  `json:"start_time" validate:"required"`
	EndTime             string  `json:"end_time" validate:"required"`
	RestHours           float64 `json:"rest_hours" validate:"gte=0"`
	Description         string  `json:"description" validate:"required"`
	OvertimeRate        string  `json:"overtime_rate"`
	Offshore            bool    `json:"offshore"`
	TravelCount         bool    `json:"travel_count"`
	TravelShortDistance bool    `json:"travel_short_distance"`
	TravelFarDistance   bool    `json:"travel_far_distance"`
}

type toolUsageRequest struct {
	ToolName  string `json:"tool_name" validate:"required"`
	Amount    int    `json:"amount" validate:"gte=0"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type saveEntryRequest struct {
	Client   string `json:"client" validate:"required"`
	WorkType string `json:"work_type"`
	Tier     string `json:"tier"`

	EngineerName    string `json:"engineer_name" validate:"required"`
	EngineerSurname string `json:"engineer_surname" validate:"required"`

	Status string `json:"status" validate:"omitempty,oneof=draft submitted approved rejected"`

	TimeEntries []timeEntryRequest `json:"time_entries" validate:"required,min=1,dive"`
	ToolUsage   []toolUsageRequest `json:"tool_usage" validate:"dive"`

	ReportDescription string  `json:"report_description"`
	ReportHours       float64 `json:"report_hours" validate:"gte=0"`

	EmergencyRequest bool `json:"emergency_request"`

	Currency             string  `json:"currency"`
	ServiceHourRate      float64 `json:"service_hour_rate" validate:"gte=0"`
	ToolUsageRate        float64 `json:"tool_usage_rate" validate:"gte=0"`
	TravelRateShort      float64 `json:"tl_rate_short" validate:"gte=0"`
	TravelRateLong       float64 `json:"tl_rate_long" validate:"gte=0"`
	OffshoreDayRate      float64 `json:"offshore_day_rate" validate:"gte=0"`
	EmergencyRate        float64 `json:"emergency_rate" validate:"gte=0"`
	OtherTransportCharge float64 `json:"other_transport_charge" validate:"gte=0"`
	OtherTransportNote   string  `json:"other_transport_note"`

	VATPercent     float64 `json:"vat_percent" validate:"gte=0,lte=100"`
	DiscountAmount float64 `json:"discount_amount" validate:"gte=0"`
}

func (req *saveEntryRequest) toEntry() *timesheet.Entry {
	e := &timesheet.Entry{
		Client:               req.Client,
		WorkType:             req.WorkType,
		Tier:                 req.Tier,
		EngineerName:         req.EngineerName,
		EngineerSurname:      req.EngineerSurname,
		Status:               req.Status,
		ReportDescription:    req.ReportDescription,
		ReportHours:          req.ReportHours,
		EmergencyRequest:     req.EmergencyRequest,
		Currency:             req.Currency,
		ServiceHourRate:      req.ServiceHourRate,
		ToolUsageRate:        req.ToolUsageRate,
		TravelRateShort:      req.TravelRateShort,
		TravelRateLong:       req.TravelRateLong,
		OffshoreDayRate:      req.OffshoreDayRate,
		EmergencyRate:        req.EmergencyRate,
		OtherTransportCharge: req.OtherTransportCharge,
		OtherTransportNote:   req.OtherTransportNote,
		VATPercent:           req.VATPercent,
		DiscountAmount:       req.DiscountAmount,
	}

	for _, te := range req.TimeEntries {
		e.TimeEntries = append(e.TimeEntries, timesheet.TimeEntry{
			Date:                te.Date,
			StartTime:           te.StartTime,
			EndTime:             te.EndTime,
			RestHours:           te.RestHours,
			Description:         te.Description,
			OvertimeRate:        te.OvertimeRate,
			Offshore:            te.Offshore,
			TravelCount:         te.TravelCount,
			TravelShortDistance: te.TravelShortDistance,
			TravelFarDistance:   te.TravelFarDistance,
		})
	}

	for _, tu := range req.ToolUsage {
		usage := timesheet.ToolUsage{
			ToolName:  tu.ToolName,
			Amount:    tu.Amount,
			StartDate: tu.StartDate,
			EndDate:   tu.EndDate,
		}
		usage.TotalDays = usage.Days()

		e.ToolUsage = append(e.ToolUsage, usage)
	}

	return e
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		entries []timesheet.Entry
		err     error
	)

	switch {
	case r.URL.Query().Get("client") != "":
		entries, err = h.svc.ListByClient(r.Context(), r.URL.Query().Get("client"))
	case r.URL.Query().Get("from") != "" && r.URL.Query().Get("to") != "":
		var from, to time.Time

		from, err = time.Parse(time.DateOnly, r.URL.Query().Get("from"))
		if err == nil {
			to, err = time.Parse(time.DateOnly, r.URL.Query().Get("to"))
		}

		if err != nil {
			http.Error(w, "from/to must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		entries, err = h.svc.ListByDateRange(r.Context(), from, to)
	default:
		entries, err = h.svc.List(r.Context())
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	entry, breakdown, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, timesheet.ErrNotFound) {
			http.Error(w, "timesheet entry not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(entry, breakdown)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, "")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request, id string) {
	var req saveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	identity, _ := auth.FromContext(r.Context())

	entry := req.toEntry()
	entry.ID = id

	_, breakdown, err := h.svc.Save(r.Context(), entry, identity.Username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if id == "" {
		w.WriteHeader(http.StatusCreated)
	}

	if err := json.NewEncoder(w).Encode(toResponse(entry, breakdown)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !removed {
		http.Error(w, "timesheet entry not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

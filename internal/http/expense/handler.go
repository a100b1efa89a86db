package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/enertech-th/fieldforms/internal/expense"
	"github.com/enertech-th/fieldforms/internal/http/auth"
	"github.com/enertech-th/fieldforms/internal/importer"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Handler struct {
	svc      *expense.Service
	importer *importer.Service
}

func NewHandler(svc *expense.Service, imp *importer.Service) *Handler {
	return &Handler{svc: svc, importer: imp}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.save)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/import", h.importLines)
}

type itemRequest struct {
	Date               string  `json:"expense_date" validate:"required"`
	Detail             string  `json:"detail"`
	Vendor             string  `json:"vendor"`
	Category           string  `json:"category"`
	Amount             float64 `json:"amount" validate:"gt=0"`
	Currency           string  `json:"currency" validate:"required,len=3"`
	OfficialReceipt    bool    `json:"official_receipt"`
	NonOfficialReceipt bool    `json:"non_official_receipt"`
}

type saveFormRequest struct {
	ProjectName      string        `json:"project_name" validate:"required"`
	WorkLocation     string        `json:"work_location" validate:"required,oneof=Thailand Abroad"`
	WorkCountry      string        `json:"work_country"`
	FundHome         float64       `json:"fund_thb" validate:"gte=0"`
	ReceiveDate      string        `json:"receive_date"`
	HomeToUSD        float64       `json:"thb_usd" validate:"gte=0"`
	ThirdCurrency    string        `json:"third_currency"`
	ThirdCurrencyUSD float64       `json:"third_currency_usd" validate:"gte=0"`
	IssueDate        string        `json:"issue_date"`
	Expenses         []itemRequest `json:"expenses" validate:"dive"`
}

func (req *saveFormRequest) toForm() *expense.Form {
	form := &expense.Form{
		ProjectName:      req.ProjectName,
		WorkLocation:     req.WorkLocation,
		WorkCountry:      req.WorkCountry,
		FundHome:         req.FundHome,
		ReceiveDate:      req.ReceiveDate,
		HomeToUSD:        req.HomeToUSD,
		ThirdCurrency:    req.ThirdCurrency,
		ThirdCurrencyUSD: req.ThirdCurrencyUSD,
		IssueDate:        req.IssueDate,
	}

	for _, it := range req.Expenses {
		form.Expenses = append(form.Expenses, expense.Item{
			Date:               it.Date,
			Detail:             it.Detail,
			Vendor:             it.Vendor,
			Category:           it.Category,
			Amount:             it.Amount,
			Currency:           it.Currency,
			OfficialReceipt:    it.OfficialReceipt,
			NonOfficialReceipt: it.NonOfficialReceipt,
		})
	}

	return form
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	forms, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(forms)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	form, totals, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense form not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(form, totals)); err != nil {
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
	var req saveFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	identity, _ := auth.FromContext(r.Context())

	form := req.toForm()
	form.ID = id

	if _, totals, err := h.svc.Save(r.Context(), form, identity.Username); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else {
		w.Header().Set("Content-Type", "application/json")

		if id == "" {
			w.WriteHeader(http.StatusCreated)
		}

		if err := json.NewEncoder(w).Encode(toResponse(form, totals)); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !removed {
		http.Error(w, "expense form not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// importLines accepts a raw CSV statement body and appends the parsed
// lines to the form, reporting duplicates instead of re-adding them.
func (h *Handler) importLines(w http.ResponseWriter, r *http.Request) {
	source := importer.Source(r.URL.Query().Get("source"))
	if source == "" {
		source = importer.SourceCard
	}

	items, err := h.importer.Import(source, r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.ImportLines(r.Context(), chi.URLParam(r, "id"), items)
	if err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense form not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toImportResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Package settings exposes the category, currency and rate tables.
package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/enertech-th/fieldforms/internal/currency"
	"github.com/enertech-th/fieldforms/internal/settings"
)

type Handler struct {
	mgr *settings.Manager
}

func NewHandler(mgr *settings.Manager) *Handler {
	return &Handler{mgr: mgr}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
	r.Get("/currencies", h.currencies)
	r.Get("/rates", h.rates)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.mgr.Load()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var s settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.mgr.Save(s); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.mgr.Load()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type currencyResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// currencies lists the ISO codes the converter knows about, for pickers.
func (h *Handler) currencies(w http.ResponseWriter, r *http.Request) {
	codes := currency.Codes()

	resp := make([]currencyResponse, 0, len(codes))
	for _, code := range codes {
		resp = append(resp, currencyResponse{Code: code, Name: currency.Name(code)})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// rates resolves the standard rate card for ?currency=X&work_type=Y.
func (h *Handler) rates(w http.ResponseWriter, r *http.Request) {
	s := h.mgr.Load()
	rates := s.RatesFor(r.URL.Query().Get("currency"), r.URL.Query().Get("work_type"))

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(rates); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

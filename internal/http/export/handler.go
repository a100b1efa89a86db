// Package export serves generated spreadsheet reports as downloads.
package export

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/enertech-th/fieldforms/internal/expense"
	exportsvc "github.com/enertech-th/fieldforms/internal/export"
	"github.com/enertech-th/fieldforms/internal/timesheet"
)

type Handler struct {
	svc       *exportsvc.Service
	outputDir string
}

func NewHandler(svc *exportsvc.Service, outputDir string) *Handler {
	return &Handler{svc: svc, outputDir: outputDir}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/expenses/{id}", h.expenseForm)
	r.Get("/timesheets/{id}", h.timesheetEntry)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) expenseForm(w http.ResponseWriter, r *http.Request) {
	path, err := h.svc.ExportExpenseForm(r.Context(), chi.URLParam(r, "id"), h.outputDir)
	if err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense form not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	h.serveFile(w, r, path)
}

func (h *Handler) timesheetEntry(w http.ResponseWriter, r *http.Request) {
	path, err := h.svc.ExportTimesheet(r.Context(), chi.URLParam(r, "id"), h.outputDir)
	if err != nil {
		if errors.Is(err, timesheet.ErrNotFound) {
			http.Error(w, "timesheet entry not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	h.serveFile(w, r, path)
}

func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, path string) {
	f, err := os.Open(path)
	if err != nil {
		http.Error(w, "report file missing", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "report file missing", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))

	http.ServeContent(w, r, filepath.Base(path), info.ModTime(), f)
}

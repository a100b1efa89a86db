// Package users exposes the admin-only account management endpoints.
package users

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/enertech-th/fieldforms/internal/user"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Handler struct {
	svc *user.Service
}

func NewHandler(svc *user.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.register)
	r.Get("/{username}", h.get)
	r.Put("/{username}", h.update)
	r.Delete("/{username}", h.delete)
}

type userResponse struct {
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `json:"position"`
	RegisterDate string `json:"register_date"`
}

func toResponse(u *user.User) userResponse {
	return userResponse{
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		RegisterDate: u.RegisterDate,
	}
}

type registerRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=4"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"position" validate:"omitempty,oneof=user manager admin"`
}

type updateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"position" validate:"omitempty,oneof=user manager admin"`
	Password  string `json:"password" validate:"omitempty,min=4"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toResponse(&users[i]))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(u)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Username, req.Password, req.FirstName, req.LastName, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrDuplicateUsername):
			http.Error(w, "username already taken", http.StatusConflict)
		case errors.Is(err, user.ErrBootstrapProtected):
			http.Error(w, "username is reserved", http.StatusForbidden)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(u)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.Update(r.Context(), chi.URLParam(r, "username"), req.FirstName, req.LastName, req.Role, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrBootstrapProtected):
			http.Error(w, "bootstrap account cannot be edited", http.StatusForbidden)
		case errors.Is(err, user.ErrNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(u)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.svc.Delete(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if errors.Is(err, user.ErrBootstrapProtected) {
			http.Error(w, "bootstrap account cannot be deleted", http.StatusForbidden)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	if !removed {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

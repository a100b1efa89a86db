package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/enertech-th/fieldforms/internal/http/auth"
	"github.com/enertech-th/fieldforms/internal/http/expense"
	"github.com/enertech-th/fieldforms/internal/http/export"
	"github.com/enertech-th/fieldforms/internal/http/settings"
	"github.com/enertech-th/fieldforms/internal/http/timesheet"
	"github.com/enertech-th/fieldforms/internal/http/users"
	"github.com/enertech-th/fieldforms/internal/user"
)

func New(
	tokens *auth.Tokens,
	authV1 *auth.Handler,
	expensesV1 *expense.Handler,
	timesheetsV1 *timesheet.Handler,
	usersV1 *users.Handler,
	exportV1 *export.Handler,
	settingsV1 *settings.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		// Everything below requires a valid session token.
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware)

			r.Route("/expenses", func(r chi.Router) {
				expensesV1.Routes(r)
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				timesheetsV1.Routes(r)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				r.Use(auth.RequireRole(user.RoleAdmin))
				usersV1.Routes(r)
			})

			r.Route("/export", func(r chi.Router) {
				exportV1.Routes(r)
			})

			r.Route("/settings", func(r chi.Router) {
				settingsV1.Routes(r)
			})
		})
	})

	return router
}

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/enertech-th/fieldforms/internal/config"
	"github.com/enertech-th/fieldforms/internal/expense"
	expenseStore "github.com/enertech-th/fieldforms/internal/expense/store"
	"github.com/enertech-th/fieldforms/internal/export"
	ffHttp "github.com/enertech-th/fieldforms/internal/http"
	"github.com/enertech-th/fieldforms/internal/http/auth"
	expenseHandler "github.com/enertech-th/fieldforms/internal/http/expense"
	exportHandler "github.com/enertech-th/fieldforms/internal/http/export"
	settingsHandler "github.com/enertech-th/fieldforms/internal/http/settings"
	timesheetHandler "github.com/enertech-th/fieldforms/internal/http/timesheet"
	usersHandler "github.com/enertech-th/fieldforms/internal/http/users"
	"github.com/enertech-th/fieldforms/internal/importer"
	"github.com/enertech-th/fieldforms/internal/settings"
	"github.com/enertech-th/fieldforms/internal/timesheet"
	timesheetStore "github.com/enertech-th/fieldforms/internal/timesheet/store"
	"github.com/enertech-th/fieldforms/internal/user"
	userStore "github.com/enertech-th/fieldforms/internal/user/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		expenseService   = expense.NewService(expenseStore.New(cfg.Data.Root), cfg.Currency.Home)
		timesheetService = timesheet.NewService(timesheetStore.New(cfg.Data.Root))
		userService      = user.NewService(userStore.New(cfg.Data.Root), cfg.Auth.EnableBootstrapAccount)
		importService    = importer.NewService()
		exportService    = export.NewService(expenseService, timesheetService)
		settingsManager  = settings.NewManager(cfg.Data.Root)
		tokens           = auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	)

	var (
		authH      = auth.NewHandler(userService, tokens)
		expenseH   = expenseHandler.NewHandler(expenseService, importService)
		timesheetH = timesheetHandler.NewHandler(timesheetService)
		usersH     = usersHandler.NewHandler(userService)
		exportH    = exportHandler.NewHandler(exportService, filepath.Join(cfg.Data.Root, "exports"))
		settingsH  = settingsHandler.NewHandler(settingsManager)
	)

	router := ffHttp.New(tokens, authH, expenseH, timesheetH, usersH, exportH, settingsH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// Package settings loads the configurable category, currency and
// standard-rate tables, falling back to built-in defaults whenever the
// settings file is absent or a key is missing.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Work types offered on a timesheet.
var WorkTypes = []string{
	"Special Field Services",
	"Regular Field Services",
	"Consultation",
	"Emergency Support",
	"Other",
}

// Rates is one standard-rate card for a currency × work-type pair.
type Rates struct {
	ServiceHourRate      float64 `json:"service_hour_rate"`
	ToolUsageRate        float64 `json:"tool_usage_rate"`
	TravelRateShort      float64 `json:"tl_rate_short"`
	TravelRateLong       float64 `json:"tl_rate_long"`
	OffshoreDayRate      float64 `json:"offshore_day_rate"`
	EmergencyRate        float64 `json:"emergency_rate"`
	OtherTransportCharge float64 `json:"other_transport_charge"`
}

// Settings is the full configuration record.
type Settings struct {
	SchemaVersion int      `json:"schema_version"`
	Categories    []string `json:"categories"`
	Currencies    []string `json:"currencies"`
	// StandardRates is keyed by currency, then work type.
	StandardRates map[string]map[string]Rates `json:"standard_rates"`
}

var defaultCategories = []string{
	"Fuel", "Hotel", "Meals", "Taxi", "Transport", "Materials",
	"Tools", "Office", "Communication", "Entertainment", "Other",
}

var defaultRateCurrencies = []string{"THB", "USD"}

var defaultRates = map[string]Rates{
	"THB": {
		ServiceHourRate: 6500,
		ToolUsageRate:   25000,
		TravelRateShort: 2500,
		TravelRateLong:  7500,
		OffshoreDayRate: 17500,
		EmergencyRate:   16000,
	},
	"USD": {
		ServiceHourRate: 220,
		ToolUsageRate:   750,
		TravelRateShort: 100,
		TravelRateLong:  420,
		OffshoreDayRate: 550,
		EmergencyRate:   660,
	},
}

// Defaults returns the built-in settings used when no file exists.
func Defaults() Settings {
	s := Settings{
		SchemaVersion: 1,
		Categories:    append([]string(nil), defaultCategories...),
		Currencies:    append([]string(nil), defaultRateCurrencies...),
		StandardRates: make(map[string]map[string]Rates, len(defaultRates)),
	}

	for currency, rates := range defaultRates {
		byWorkType := make(map[string]Rates, len(WorkTypes))
		for _, wt := range WorkTypes {
			byWorkType[wt] = rates
		}

		s.StandardRates[currency] = byWorkType
	}

	return s
}

// RatesFor looks up the standard rates for a currency and work type,
// falling back through the defaults when either key is missing.
func (s *Settings) RatesFor(currency, workType string) Rates {
	if byWorkType, ok := s.StandardRates[currency]; ok {
		if rates, ok := byWorkType[workType]; ok {
			return rates
		}
	}

	if rates, ok := defaultRates[currency]; ok {
		return rates
	}

	return defaultRates["THB"]
}

// Manager reads and writes the settings file.
type Manager struct {
	path string
}

func NewManager(dataRoot string) *Manager {
	return &Manager{path: filepath.Join(dataRoot, "settings", "settings.json")}
}

// Load returns the stored settings merged over the defaults. A missing
// or unreadable file yields the defaults; that is logged, not an error.
func (m *Manager) Load() Settings {
	defaults := Defaults()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("reading settings, using defaults", "path", m.path, "error", err)
		}

		return defaults
	}

	var stored Settings
	if err := json.Unmarshal(data, &stored); err != nil {
		slog.Warn("parsing settings, using defaults", "path", m.path, "error", err)
		return defaults
	}

	if len(stored.Categories) == 0 {
		stored.Categories = defaults.Categories
	}

	if len(stored.Currencies) == 0 {
		stored.Currencies = defaults.Currencies
	}

	if len(stored.StandardRates) == 0 {
		stored.StandardRates = defaults.StandardRates
	}

	if stored.SchemaVersion == 0 {
		stored.SchemaVersion = 1
	}

	return stored
}

// Save writes the settings file, creating its directory if needed.
func (m *Manager) Save(s Settings) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	return nil
}

// Package timesheet holds the service-report model, the hour and day
// aggregation rules and the service-charge calculator.
package timesheet

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrNotFound = errors.New("timesheet entry not found")

// Entry statuses.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// TimeEntry is one row of worked time. Times are 4-digit HHMM strings
// (2-digit bare hours are accepted). At most one of the two travel
// distance flags may be set.
type TimeEntry struct {
	Date                string  `json:"date"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
	RestHours           float64 `json:"rest_hours"`
	Description         string  `json:"description"`
	OvertimeRate        string  `json:"overtime_rate"`
	Offshore            bool    `json:"offshore"`
	TravelCount         bool    `json:"travel_count"`
	TravelShortDistance bool    `json:"travel_short_distance,omitempty"`
	TravelFarDistance   bool    `json:"travel_far_distance"`
}

// ToolUsage is one rented-tool row. TotalDays caches the inclusive day
// count between the start and end date, floor 1.
type ToolUsage struct {
	ToolName  string `json:"tool_name"`
	Amount    int    `json:"amount"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	TotalDays int    `json:"total_days"`
}

// Days returns the inclusive day count of the usage range, floor 1.
// Unparseable dates fall back to the cached TotalDays, then to 1.
func (t *ToolUsage) Days() int {
	start, errStart := ParseDate(t.StartDate)
	end, errEnd := ParseDate(t.EndDate)

	if errStart != nil || errEnd != nil {
		if t.TotalDays > 0 {
			return t.TotalDays
		}

		return 1
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}

	return days
}

// Entry is one service report. The rate fields are snapshotted onto the
// entry at creation so later settings changes do not rewrite history.
type Entry struct {
	ID string `json:"entry_id"`

	Client   string `json:"client"`
	WorkType string `json:"work_type"`
	Tier     string `json:"tier"`

	CreatedBy       string `json:"created_by"`
	EngineerName    string `json:"engineer_name"`
	EngineerSurname string `json:"engineer_surname"`

	CreationDate string `json:"creation_date"`
	Status       string `json:"status"`

	TimeEntries []TimeEntry `json:"time_entries"`
	ToolUsage   []ToolUsage `json:"tool_usage"`

	ReportDescription string  `json:"report_description"`
	ReportHours       float64 `json:"report_hours"`

	EmergencyRequest bool `json:"emergency_request"`

	Currency             string  `json:"currency"`
	ServiceHourRate      float64 `json:"service_hour_rate"`
	ToolUsageRate        float64 `json:"tool_usage_rate"`
	TravelRateShort      float64 `json:"tl_rate_short"`
	TravelRateLong       float64 `json:"tl_rate_long"`
	OffshoreDayRate      float64 `json:"offshore_day_rate"`
	EmergencyRate        float64 `json:"emergency_rate"`
	OtherTransportCharge float64 `json:"other_transport_charge"`
	OtherTransportNote   string  `json:"other_transport_note"`

	VATPercent     float64 `json:"vat_percent"`
	DiscountAmount float64 `json:"discount_amount"`

	TotalServiceCharge float64 `json:"total_service_charge"`
}

// Validate rejects an entry before any persistence attempt. Malformed
// time strings are an error here even though the aggregation would skip
// them: silent data loss in a charge is worse than a blocked save.
func (e *Entry) Validate() error {
	if e.Client == "" {
		return errors.New("timesheet: client is required")
	}

	if e.EngineerName == "" || e.EngineerSurname == "" {
		return errors.New("timesheet: engineer name and surname are required")
	}

	if len(e.TimeEntries) == 0 {
		return errors.New("timesheet: at least one time entry is required")
	}

	if e.VATPercent < 0 || e.VATPercent > 100 {
		return errors.New("timesheet: VAT percent must be between 0 and 100")
	}

	if e.DiscountAmount < 0 {
		return errors.New("timesheet: discount must not be negative")
	}

	for i := range e.TimeEntries {
		te := &e.TimeEntries[i]

		if te.Description == "" {
			return fmt.Errorf("timesheet: entry on %s has no description", te.Date)
		}

		if te.TravelShortDistance && te.TravelFarDistance {
			return fmt.Errorf("timesheet: entry on %s has both travel distance flags set", te.Date)
		}

		if _, err := parseClock(te.StartTime); err != nil {
			return fmt.Errorf("timesheet: entry on %s: invalid start time %q", te.Date, te.StartTime)
		}

		if _, err := parseClock(te.EndTime); err != nil {
			return fmt.Errorf("timesheet: entry on %s: invalid end time %q", te.Date, te.EndTime)
		}
	}

	return nil
}

// ParseDate accepts both date formats found in stored records,
// YYYY/MM/DD and YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	if len(s) > 4 && s[4] == '/' {
		return time.Parse("2006/01/02", s)
	}

	return time.Parse(time.DateOnly, s)
}

// FirstServiceDate returns the earliest date among the time entries, or
// false when no entry has a parseable date.
func (e *Entry) FirstServiceDate() (time.Time, bool) {
	var (
		first time.Time
		found bool
	)

	for i := range e.TimeEntries {
		d, err := ParseDate(e.TimeEntries[i].Date)
		if err != nil {
			continue
		}

		if !found || d.Before(first) {
			first = d
			found = true
		}
	}

	return first, found
}

// NextID derives a TS-<username>-<YYYYMMDD>-<NN> identifier. The date is
// the earliest time-entry date (today when none parses), and NN is one
// past the highest sequence already stored for that exact prefix.
func NextID(existing []Entry, username string, e *Entry, now time.Time) string {
	date := now
	if first, ok := e.FirstServiceDate(); ok {
		date = first
	}

	prefix := fmt.Sprintf("TS-%s-%s-", username, date.Format("20060102"))

	maxSeq := -1

	for i := range existing {
		id := existing[i].ID
		if len(id) < len(prefix)+2 || id[:len(prefix)] != prefix {
			continue
		}

		var seq int
		if _, err := fmt.Sscanf(id[len(id)-2:], "%02d", &seq); err == nil && seq > maxSeq {
			maxSeq = seq
		}
	}

	return fmt.Sprintf("%s%02d", prefix, maxSeq+1)
}

// SortByCreation orders entries newest first by creation date string.
func SortByCreation(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreationDate > entries[j].CreationDate
	})
}

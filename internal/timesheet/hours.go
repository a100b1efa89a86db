package timesheet

import (
	"fmt"
	"strconv"
)

// Overtime multipliers by tag. Unrecognized tags bill as regular time.
const (
	TagRegular = "Regular"
	TagOT15    = "OT1.5"
	TagOT20    = "OT2.0"
)

// Multiplier maps an overtime tag to its billing multiplier. Both the
// word form (Regular/OT1.5/OT2.0) and the bare numeric form (1/1.5/2)
// appear in stored records.
func Multiplier(tag string) float64 {
	switch tag {
	case TagOT15, "1.5":
		return 1.5
	case TagOT20, "2", "2.0":
		return 2.0
	default:
		return 1.0
	}
}

// parseClock converts an HHMM string (or bare 1-2 digit hour) to decimal
// hours since midnight.
func parseClock(s string) (float64, error) {
	switch len(s) {
	case 4:
		hh, err := strconv.Atoi(s[:2])
		if err != nil {
			return 0, fmt.Errorf("invalid time %q", s)
		}

		mm, err := strconv.Atoi(s[2:])
		if err != nil {
			return 0, fmt.Errorf("invalid time %q", s)
		}

		if hh < 0 || hh > 24 || mm < 0 || mm > 59 {
			return 0, fmt.Errorf("time %q out of range", s)
		}

		return float64(hh) + float64(mm)/60, nil
	case 1, 2:
		hh, err := strconv.Atoi(s)
		if err != nil || hh < 0 || hh > 24 {
			return 0, fmt.Errorf("invalid time %q", s)
		}

		return float64(hh), nil
	default:
		return 0, fmt.Errorf("invalid time %q", s)
	}
}

// NetHours returns the worked hours of a single entry after the rest
// deduction, never negative. An end before the start crosses midnight.
func (te *TimeEntry) NetHours() (float64, error) {
	start, err := parseClock(te.StartTime)
	if err != nil {
		return 0, err
	}

	end, err := parseClock(te.EndTime)
	if err != nil {
		return 0, err
	}

	var worked float64
	if end < start {
		worked = (24 - start) + end
	} else {
		worked = end - start
	}

	net := worked - te.RestHours
	if net < 0 {
		net = 0
	}

	return net, nil
}

// EquivalentHours is the billable value of the entry: net hours times
// the overtime multiplier.
func (te *TimeEntry) EquivalentHours() (float64, error) {
	net, err := te.NetHours()
	if err != nil {
		return 0, err
	}

	return net * Multiplier(te.OvertimeRate), nil
}

// HoursSummary aggregates a full list of time entries. Day tallies count
// distinct calendar dates, so two offshore rows on the same date add one
// offshore day, not two.
type HoursSummary struct {
	Regular    float64
	OT15       float64
	OT2        float64
	Total      float64
	Equivalent float64

	OffshoreDays    int
	TravelShortDays int
	TravelLongDays  int

	// Warnings lists entries skipped because their time strings did not
	// parse. They contribute nothing to the totals above.
	Warnings []string
}

// fullDayThreshold is the net-hour span at which an entry marks its date
// as a countable work day even without an explicit travel flag.
const fullDayThreshold = 8.0

// AggregateHours folds every time entry into categorized totals.
// Malformed entries are skipped and reported, never fatal.
func AggregateHours(entries []TimeEntry) HoursSummary {
	var summary HoursSummary

	offshoreDates := make(map[string]struct{})
	shortDates := make(map[string]struct{})
	longDates := make(map[string]struct{})

	for i := range entries {
		te := &entries[i]

		net, err := te.NetHours()
		if err != nil {
			summary.Warnings = append(summary.Warnings,
				fmt.Sprintf("entry %d (%s): %v", i+1, te.Date, err))

			continue
		}

		mult := Multiplier(te.OvertimeRate)

		switch mult {
		case 1.5:
			summary.OT15 += net
		case 2.0:
			summary.OT2 += net
		default:
			summary.Regular += net
		}

		summary.Total += net
		summary.Equivalent += net * mult

		qualifies := net >= fullDayThreshold || te.TravelCount
		if !qualifies {
			continue
		}

		if te.Offshore {
			offshoreDates[te.Date] = struct{}{}
		}

		if te.TravelCount {
			if te.TravelFarDistance {
				longDates[te.Date] = struct{}{}
			} else {
				shortDates[te.Date] = struct{}{}
			}
		}
	}

	summary.OffshoreDays = len(offshoreDates)
	summary.TravelShortDays = len(shortDates)
	summary.TravelLongDays = len(longDates)

	return summary
}

// TotalToolDays aggregates usage days across tool rows. Rows sharing the
// exact same date range describe tools rented for one period and count
// that period once, at the largest day value seen for it.
func TotalToolDays(tools []ToolUsage) int {
	ranges := make(map[string]int)

	for i := range tools {
		t := &tools[i]
		key := t.StartDate + "_" + t.EndDate

		days := t.Days()
		if days > ranges[key] {
			ranges[key] = days
		}
	}

	total := 0
	for _, days := range ranges {
		total += days
	}

	return total
}

package timesheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enertech-th/fieldforms/internal/timesheet"
)

func TestMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, timesheet.Multiplier(timesheet.TagRegular))
	assert.Equal(t, 1.5, timesheet.Multiplier(timesheet.TagOT15))
	assert.Equal(t, 2.0, timesheet.Multiplier(timesheet.TagOT20))

	// Bare numeric forms found in older records.
	assert.Equal(t, 1.5, timesheet.Multiplier("1.5"))
	assert.Equal(t, 2.0, timesheet.Multiplier("2"))
	assert.Equal(t, 2.0, timesheet.Multiplier("2.0"))

	// Unknown tags bill as regular time.
	assert.Equal(t, 1.0, timesheet.Multiplier("triple"))
	assert.Equal(t, 1.0, timesheet.Multiplier(""))
}

func TestTimeEntry_NetHours(t *testing.T) {
	type testCase struct {
		name    string
		entry   timesheet.TimeEntry
		want    float64
		wantErr bool
	}

	tests := []testCase{
		{
			name:  "StandardDayWithRest",
			entry: timesheet.TimeEntry{StartTime: "0800", EndTime: "1700", RestHours: 1},
			want:  8,
		},
		{
			name:  "HalfHourGranularity",
			entry: timesheet.TimeEntry{StartTime: "0830", EndTime: "1215"},
			want:  3.75,
		},
		{
			name:  "MidnightWrap",
			entry: timesheet.TimeEntry{StartTime: "2200", EndTime: "0200"},
			want:  4,
		},
		{
			name:  "RestExceedsWorkedClampsToZero",
			entry: timesheet.TimeEntry{StartTime: "0900", EndTime: "1000", RestHours: 2},
			want:  0,
		},
		{
			name:  "BareHourForm",
			entry: timesheet.TimeEntry{StartTime: "8", EndTime: "17"},
			want:  9,
		},
		{
			name:    "MalformedStart",
			entry:   timesheet.TimeEntry{StartTime: "8:00", EndTime: "1700"},
			wantErr: true,
		},
		{
			name:    "MinutesOutOfRange",
			entry:   timesheet.TimeEntry{StartTime: "0875", EndTime: "1700"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.entry.NetHours()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestTimeEntry_EquivalentHours(t *testing.T) {
	entry := timesheet.TimeEntry{StartTime: "0800", EndTime: "1700", RestHours: 1}

	got, err := entry.EquivalentHours()
	require.NoError(t, err)
	assert.InDelta(t, 8, got, 0.001)

	entry.OvertimeRate = timesheet.TagOT15
	got, err = entry.EquivalentHours()
	require.NoError(t, err)
	assert.InDelta(t, 12, got, 0.001)
}

func TestAggregateHours(t *testing.T) {
	entries := []timesheet.TimeEntry{
		// Full offshore day, regular time.
		{Date: "2024/03/01", StartTime: "0800", EndTime: "1700", RestHours: 1, OvertimeRate: timesheet.TagRegular, Offshore: true},
		// Second row on the same date must not add another offshore day.
		{Date: "2024/03/01", StartTime: "1800", EndTime: "2000", OvertimeRate: timesheet.TagOT15, Offshore: true, TravelCount: true},
		// Far travel on a short day still counts via the travel flag.
		{Date: "2024/03/02", StartTime: "0900", EndTime: "1200", OvertimeRate: timesheet.TagOT20, TravelCount: true, TravelFarDistance: true},
		// Short day with no flags qualifies nothing.
		{Date: "2024/03/03", StartTime: "1000", EndTime: "1200", Offshore: true},
	}

	summary := timesheet.AggregateHours(entries)

	assert.InDelta(t, 8, summary.Regular, 0.001)
	assert.InDelta(t, 2, summary.OT15, 0.001)
	assert.InDelta(t, 3, summary.OT2, 0.001)
	assert.InDelta(t, 13, summary.Total, 0.001)
	assert.InDelta(t, 8+2*1.5+3*2, summary.Equivalent, 0.001)

	assert.Equal(t, 1, summary.OffshoreDays)
	assert.Equal(t, 1, summary.TravelShortDays)
	assert.Equal(t, 1, summary.TravelLongDays)
	assert.Empty(t, summary.Warnings)
}

func TestAggregateHours_SkipsMalformedEntries(t *testing.T) {
	entries := []timesheet.TimeEntry{
		{Date: "2024/03/01", StartTime: "0800", EndTime: "1700", RestHours: 1},
		{Date: "2024/03/02", StartTime: "morning", EndTime: "1700"},
	}

	summary := timesheet.AggregateHours(entries)

	assert.InDelta(t, 8, summary.Total, 0.001)
	require.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "2024/03/02")
}

func TestTotalToolDays(t *testing.T) {
	tools := []timesheet.ToolUsage{
		// Two tools over the same range count the range once.
		{ToolName: "Vibration analyzer", StartDate: "2024/03/01", EndDate: "2024/03/03"},
		{ToolName: "Thermal camera", StartDate: "2024/03/01", EndDate: "2024/03/03"},
		// A distinct range adds its own days.
		{ToolName: "Borescope", StartDate: "2024/03/05", EndDate: "2024/03/05"},
	}

	assert.Equal(t, 4, timesheet.TotalToolDays(tools))
}

func TestToolUsage_Days(t *testing.T) {
	assert.Equal(t, 3, (&timesheet.ToolUsage{StartDate: "2024/03/01", EndDate: "2024/03/03"}).Days())
	assert.Equal(t, 1, (&timesheet.ToolUsage{StartDate: "2024/03/05", EndDate: "2024/03/05"}).Days())

	// Inverted ranges floor at one day.
	assert.Equal(t, 1, (&timesheet.ToolUsage{StartDate: "2024/03/05", EndDate: "2024/03/01"}).Days())

	// Unparseable dates fall back to the cached value, then to 1.
	assert.Equal(t, 7, (&timesheet.ToolUsage{StartDate: "soon", EndDate: "later", TotalDays: 7}).Days())
	assert.Equal(t, 1, (&timesheet.ToolUsage{StartDate: "soon", EndDate: "later"}).Days())
}

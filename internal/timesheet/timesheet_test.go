package timesheet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enertech-th/fieldforms/internal/timesheet"
)

func validEntry() *timesheet.Entry {
	return &timesheet.Entry{
		Client:          "Acme Refinery",
		EngineerName:    "Somchai",
		EngineerSurname: "J.",
		TimeEntries: []timesheet.TimeEntry{
			{Date: "2024/03/01", StartTime: "0800", EndTime: "1700", RestHours: 1, Description: "Inspection"},
		},
	}
}

func TestEntry_Validate(t *testing.T) {
	assert.NoError(t, validEntry().Validate())

	noClient := validEntry()
	noClient.Client = ""
	assert.Error(t, noClient.Validate())

	noEntries := validEntry()
	noEntries.TimeEntries = nil
	assert.Error(t, noEntries.Validate())

	badVAT := validEntry()
	badVAT.VATPercent = 120
	assert.Error(t, badVAT.Validate())

	negativeDiscount := validEntry()
	negativeDiscount.DiscountAmount = -1
	assert.Error(t, negativeDiscount.Validate())

	noDescription := validEntry()
	noDescription.TimeEntries[0].Description = ""
	assert.Error(t, noDescription.Validate())

	bothTravelFlags := validEntry()
	bothTravelFlags.TimeEntries[0].TravelShortDistance = true
	bothTravelFlags.TimeEntries[0].TravelFarDistance = true
	assert.Error(t, bothTravelFlags.Validate())

	badTime := validEntry()
	badTime.TimeEntries[0].StartTime = "8:00"
	assert.Error(t, badTime.Validate())
}

func TestParseDate(t *testing.T) {
	slash, err := timesheet.ParseDate("2024/03/01")
	require.NoError(t, err)

	dash, err := timesheet.ParseDate("2024-03-01")
	require.NoError(t, err)

	assert.True(t, slash.Equal(dash))

	_, err = timesheet.ParseDate("01.03.2024")
	assert.Error(t, err)
}

func TestNextID(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("FirstForPrefix", func(t *testing.T) {
		e := validEntry()

		id := timesheet.NextID(nil, "somchai", e, now)
		assert.Equal(t, "TS-somchai-20240301-00", id)
	})

	t.Run("IncrementsHighestSequence", func(t *testing.T) {
		existing := []timesheet.Entry{
			{ID: "TS-somchai-20240301-00"},
			{ID: "TS-somchai-20240301-04"},
			{ID: "TS-somchai-20240301-02"},
			// Different user and date do not affect the sequence.
			{ID: "TS-arthit-20240301-09"},
			{ID: "TS-somchai-20240302-07"},
		}

		id := timesheet.NextID(existing, "somchai", validEntry(), now)
		assert.Equal(t, "TS-somchai-20240301-05", id)
	})

	t.Run("FallsBackToTodayWithoutDates", func(t *testing.T) {
		e := validEntry()
		e.TimeEntries[0].Date = "not a date"

		id := timesheet.NextID(nil, "somchai", e, now)
		assert.Equal(t, "TS-somchai-20240315-00", id)
	})

	t.Run("UsesEarliestServiceDate", func(t *testing.T) {
		e := validEntry()
		e.TimeEntries = append(e.TimeEntries, timesheet.TimeEntry{
			Date: "2024/02/27", StartTime: "0800", EndTime: "1200", Description: "Mobilization",
		})

		id := timesheet.NextID(nil, "somchai", e, now)
		assert.Equal(t, "TS-somchai-20240227-00", id)
	})
}

func TestSortByCreation(t *testing.T) {
	entries := []timesheet.Entry{
		{ID: "b", CreationDate: "2024/03/02"},
		{ID: "c", CreationDate: "2024/03/10"},
		{ID: "a", CreationDate: "2024/03/01"},
	}

	timesheet.SortByCreation(entries)

	assert.Equal(t, "c", entries[0].ID)
	assert.Equal(t, "b", entries[1].ID)
	assert.Equal(t, "a", entries[2].ID)
}

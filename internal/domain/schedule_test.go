package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWeekdayFromDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected Weekday
		ok       bool
	}{
		{name: "monday", date: "2025-06-02", expected: WeekdayMonday, ok: true},
		{name: "sunday", date: "2025-06-08", expected: WeekdaySunday, ok: true},
		{name: "unparsable date", date: "June 2nd", ok: false},
		{name: "empty date", date: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, ok := WeekdayFromDate(tt.date)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, day)
			}
		})
	}
}

func TestSortEntries(t *testing.T) {
	entries := []TimingEntry{
		{ID: "c", Time: "no time"},
		{ID: "a", Time: "14h00"},
		{ID: "d", Time: "???"},
		{ID: "b", Time: "08h30"},
	}

	SortEntries(entries)

	// Parsable times ascending, unparsable last in stable order
	assert.Equal(t, []string{"b", "a", "c", "d"}, []string{
		entries[0].ID, entries[1].ID, entries[2].ID, entries[3].ID,
	})
}

func TestTimingEntry_Traceable(t *testing.T) {
	legID := uuid.New()

	derived := TimingEntry{SourceLegID: &legID, SourceField: LegFieldDeparture}
	assert.True(t, derived.Traceable())

	manual := TimingEntry{ID: "manual-1"}
	assert.False(t, manual.Traceable())

	// Provenance requires both a field and a source id
	half := TimingEntry{SourceField: LegFieldArrival}
	assert.False(t, half.Traceable())
}

func TestNameDirectory_Fallbacks(t *testing.T) {
	riderID := uuid.New()
	dir := &NameDirectory{
		Riders:   map[uuid.UUID]string{riderID: "J. Anquetil"},
		Staff:    map[uuid.UUID]string{},
		Vehicles: map[string]string{"van-1": "Van A"},
	}

	assert.Equal(t, "J. Anquetil", dir.PersonName(riderID, PersonRider))
	assert.Equal(t, "", dir.PersonName(uuid.New(), PersonStaff))

	vanRef := "van-1"
	assert.Equal(t, "Van A", dir.VehicleName(&vanRef))

	personal := VehiclePersonal
	assert.Equal(t, PersonalVehicleName, dir.VehicleName(&personal))

	missing := "van-404"
	assert.Equal(t, UnknownVehicleName, dir.VehicleName(&missing))
	assert.Equal(t, UnknownVehicleName, dir.VehicleName(nil))
}

func TestCopyDays(t *testing.T) {
	days := []LogisticsDay{
		{Day: WeekdayMonday, Entries: []TimingEntry{{ID: "x", Time: "09h00"}}},
	}

	copied := CopyDays(days)
	copied[0].Entries[0].Time = "10h00"

	assert.Equal(t, "09h00", days[0].Entries[0].Time)
}

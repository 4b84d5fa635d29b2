package usecase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/pkg/timeutil"
	"github.com/roadbook-microservice/internal/usecase"
)

func sampleCandidates() []usecase.DayEntry {
	return []usecase.DayEntry{
		{Day: domain.WeekdaySaturday, Entry: domain.TimingEntry{
			ID: "race:real-start", Time: "14h00", Description: "Real start",
			Category: domain.CategoryRace, IsAutoGenerated: true,
		}},
		{Day: domain.WeekdaySaturday, Entry: domain.TimingEntry{
			ID: "race:meal", Time: "11h00", Description: "Meal",
			Category: domain.CategoryMeal, IsAutoGenerated: true,
		}},
		{Day: domain.WeekdayFriday, Entry: domain.TimingEntry{
			ID: "hotel:departure", Time: "07h54", Description: "Hotel departure",
			Category: domain.CategoryTransport, IsAutoGenerated: true,
		}},
	}
}

func TestMergeSchedule_Idempotent(t *testing.T) {
	candidates := sampleCandidates()

	once := usecase.MergeSchedule(nil, candidates, nil)
	twice := usecase.MergeSchedule(once, candidates, nil)

	assert.Equal(t, once, twice)

	total := 0
	for _, day := range twice {
		total += len(day.Entries)
	}
	assert.Equal(t, len(candidates), total)
}

func TestMergeSchedule_PersistedEntriesWin(t *testing.T) {
	persisted := []domain.LogisticsDay{{
		Day: domain.WeekdaySaturday,
		Entries: []domain.TimingEntry{{
			ID: "race:real-start", Time: "15h30", Description: "Real start",
			Category: domain.CategoryRace, IsAutoGenerated: true, IsOverridden: true,
		}},
	}}

	merged := usecase.MergeSchedule(persisted, sampleCandidates(), nil)

	for _, day := range merged {
		for _, entry := range day.Entries {
			if entry.ID == "race:real-start" {
				assert.Equal(t, "15h30", entry.Time)
				assert.True(t, entry.IsOverridden)
				return
			}
		}
	}
	t.Fatal("persisted entry missing from merge output")
}

func TestMergeSchedule_ExcludedCandidatesSuppressed(t *testing.T) {
	excluded := map[string]bool{"race:meal": true}

	merged := usecase.MergeSchedule(nil, sampleCandidates(), excluded)

	for _, day := range merged {
		for _, entry := range day.Entries {
			assert.NotEqual(t, "race:meal", entry.ID)
		}
	}
}

func TestMergeSchedule_SortInvariant(t *testing.T) {
	persisted := []domain.LogisticsDay{{
		Day: domain.WeekdaySaturday,
		Entries: []domain.TimingEntry{
			{ID: uuid.NewString(), Time: "ask the bus driver", Description: "Luggage"},
			{ID: uuid.NewString(), Time: "18h00", Description: "Massage", Category: domain.CategoryMassage},
		},
	}}

	merged := usecase.MergeSchedule(persisted, sampleCandidates(), nil)

	assert.Equal(t, domain.WeekdayFriday, merged[0].Day)
	assert.Equal(t, domain.WeekdaySaturday, merged[1].Day)

	saturday := merged[1].Entries
	lastParsed := -1
	for i, entry := range saturday {
		minutes, ok := timeutil.ParseTimeOfDay(entry.Time)
		if !ok {
			// Unparsable times sink to the end of the day
			for _, rest := range saturday[i:] {
				_, restOK := timeutil.ParseTimeOfDay(rest.Time)
				assert.False(t, restOK)
			}
			break
		}
		assert.GreaterOrEqual(t, minutes, lastParsed)
		lastParsed = minutes
	}
}

func TestMergeSchedule_DoesNotMutateInput(t *testing.T) {
	persisted := []domain.LogisticsDay{{
		Day: domain.WeekdaySaturday,
		Entries: []domain.TimingEntry{
			{ID: "manual-1", Time: "18h00", Description: "Massage"},
		},
	}}

	_ = usecase.MergeSchedule(persisted, sampleCandidates(), nil)

	assert.Len(t, persisted, 1)
	assert.Len(t, persisted[0].Entries, 1)
}

func departureEntry(id uuid.UUID, vehicle, timeOfDay string) domain.TimingEntry {
	legID := id
	return domain.TimingEntry{
		ID:              "leg:" + id.String() + ":departure",
		Time:            timeOfDay,
		Description:     "Departure of vehicle " + vehicle,
		Category:        domain.CategoryTransport,
		IsAutoGenerated: true,
		SourceLegID:     &legID,
		SourceField:     domain.LegFieldDeparture,
		VehicleName:     vehicle,
	}
}

func TestGroupForDisplay_SameTimeDepartures(t *testing.T) {
	days := []domain.LogisticsDay{{
		Day: domain.WeekdayFriday,
		Entries: []domain.TimingEntry{
			departureEntry(uuid.New(), "Van A", "08h00"),
			departureEntry(uuid.New(), "Van B", "08h00"),
			departureEntry(uuid.New(), "Truck", "09h30"),
		},
	}}

	grouped := usecase.GroupForDisplay(days)

	entries := grouped[0].Entries
	assert.Len(t, entries, 2)
	assert.Equal(t, "Departure of vehicles (Van A, Van B)", entries[0].Description)
	assert.Equal(t, "Departure of vehicle Truck", entries[1].Description)
}

func TestGroupForDisplay_LoneDepartureUnchanged(t *testing.T) {
	days := []domain.LogisticsDay{{
		Day: domain.WeekdayFriday,
		Entries: []domain.TimingEntry{
			departureEntry(uuid.New(), "Van A", "08h00"),
		},
	}}

	grouped := usecase.GroupForDisplay(days)

	assert.Len(t, grouped[0].Entries, 1)
	assert.Equal(t, "Departure of vehicle Van A", grouped[0].Entries[0].Description)
}

func TestGroupForDisplay_ArrivalsAndDeparturesGroupSeparately(t *testing.T) {
	legA, legB := uuid.New(), uuid.New()
	arrival := func(id uuid.UUID, vehicle string) domain.TimingEntry {
		legID := id
		return domain.TimingEntry{
			ID:              "leg:" + id.String() + ":arrival",
			Time:            "08h00",
			Description:     "Vehicles arriving at Hotel (" + vehicle + ")",
			Category:        domain.CategoryTransport,
			IsAutoGenerated: true,
			SourceLegID:     &legID,
			SourceField:     domain.LegFieldArrival,
			VehicleName:     vehicle,
		}
	}

	days := []domain.LogisticsDay{{
		Day: domain.WeekdayFriday,
		Entries: []domain.TimingEntry{
			departureEntry(legA, "Van A", "08h00"),
			arrival(legA, "Van A"),
			arrival(legB, "Van B"),
		},
	}}

	grouped := usecase.GroupForDisplay(days)

	entries := grouped[0].Entries
	assert.Len(t, entries, 2)
	assert.Equal(t, "Departure of vehicle Van A", entries[0].Description)
	assert.Equal(t, "Vehicles arriving (Van A, Van B)", entries[1].Description)
}

func TestGroupForDisplay_ManualEntriesNeverGrouped(t *testing.T) {
	days := []domain.LogisticsDay{{
		Day: domain.WeekdayFriday,
		Entries: []domain.TimingEntry{
			{ID: uuid.NewString(), Time: "08h00", Description: "Soigneur briefing"},
			{ID: uuid.NewString(), Time: "08h00", Description: "Mechanics briefing"},
		},
	}}

	grouped := usecase.GroupForDisplay(days)
	assert.Len(t, grouped[0].Entries, 2)
}

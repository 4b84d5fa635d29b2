package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/pkg/timeutil"
)

// MergeSchedule reconciles the persisted logistics days with freshly
// derived candidates. Persisted entries always win: a candidate whose id is
// already materialized anywhere is skipped, as is any id in the session
// exclusion set. The result is idempotent - merging a merge output with the
// same candidates appends nothing.
func MergeSchedule(persisted []domain.LogisticsDay, candidates []DayEntry, excluded map[string]bool) []domain.LogisticsDay {
	days := domain.CopyDays(persisted)

	dayIndex := make(map[domain.Weekday]int, len(days))
	materialized := make(map[string]bool)
	for i, day := range days {
		dayIndex[day.Day] = i
		for _, entry := range day.Entries {
			materialized[entry.ID] = true
		}
	}

	for _, c := range candidates {
		if materialized[c.Entry.ID] || excluded[c.Entry.ID] {
			continue
		}
		materialized[c.Entry.ID] = true

		if i, ok := dayIndex[c.Day]; ok {
			days[i].Entries = append(days[i].Entries, c.Entry)
		} else {
			days = append(days, domain.LogisticsDay{
				Day:     c.Day,
				Entries: []domain.TimingEntry{c.Entry},
			})
			dayIndex[c.Day] = len(days) - 1
		}
	}

	for i := range days {
		domain.SortEntries(days[i].Entries)
	}

	sortDays(days)
	return days
}

// sortDays orders buckets by the fixed weekday sequence, "other" last.
func sortDays(days []domain.LogisticsDay) {
	rank := make(map[domain.Weekday]int, len(domain.WeekdayOrder))
	for i, day := range domain.WeekdayOrder {
		rank[day] = i
	}
	sort.SliceStable(days, func(i, j int) bool {
		return rank[days[i].Day] < rank[days[j].Day]
	})
}

// GroupForDisplay collapses same-time vehicle movements for the team view.
// Arrivals sharing a time always merge into one line listing vehicle names
// in encounter order, deduplicated. Departures merge only when more than
// one shares a time; a lone departure keeps its original phrasing.
// Individual views must not be grouped - each entry stays attributable to
// one person.
func GroupForDisplay(days []domain.LogisticsDay) []domain.LogisticsDay {
	grouped := make([]domain.LogisticsDay, len(days))
	for i, day := range days {
		grouped[i] = domain.LogisticsDay{
			Day:     day.Day,
			Entries: groupDayEntries(day.Entries),
		}
	}
	return grouped
}

func groupDayEntries(entries []domain.TimingEntry) []domain.TimingEntry {
	type groupKey struct {
		minutes int
		field   domain.LegTimeField
	}

	groups := make(map[groupKey][]int)
	for i, entry := range entries {
		if entry.SourceField != domain.LegFieldDeparture && entry.SourceField != domain.LegFieldArrival {
			continue
		}
		minutes, ok := timeutil.ParseTimeOfDay(entry.Time)
		if !ok {
			continue
		}
		key := groupKey{minutes: minutes, field: entry.SourceField}
		groups[key] = append(groups[key], i)
	}

	skip := make(map[int]bool)
	replacement := make(map[int]domain.TimingEntry)

	for key, indexes := range groups {
		if len(indexes) < 2 {
			continue
		}

		names := make([]string, 0, len(indexes))
		seen := make(map[string]bool)
		for _, i := range indexes {
			name := entries[i].VehicleName
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}

		lead := entries[indexes[0]]
		if key.field == domain.LegFieldArrival {
			lead.Description = fmt.Sprintf("Vehicles arriving (%s)", strings.Join(names, ", "))
		} else {
			lead.Description = fmt.Sprintf("Departure of vehicles (%s)", strings.Join(names, ", "))
		}
		replacement[indexes[0]] = lead
		for _, i := range indexes[1:] {
			skip[i] = true
		}
	}

	result := make([]domain.TimingEntry, 0, len(entries))
	for i, entry := range entries {
		if skip[i] {
			continue
		}
		if merged, ok := replacement[i]; ok {
			result = append(result, merged)
			continue
		}
		result = append(result, entry)
	}
	return result
}

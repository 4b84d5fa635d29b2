package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/roadbook-microservice/internal/pkg/timeutil"
)

// Weekday - a named day bucket of the operational schedule. Entries whose
// source date resolves to no calendar day go to WeekdayOther.
type Weekday string

const (
	WeekdayMonday    Weekday = "monday"
	WeekdayTuesday   Weekday = "tuesday"
	WeekdayWednesday Weekday = "wednesday"
	WeekdayThursday  Weekday = "thursday"
	WeekdayFriday    Weekday = "friday"
	WeekdaySaturday  Weekday = "saturday"
	WeekdaySunday    Weekday = "sunday"
	WeekdayOther     Weekday = "other"
)

// WeekdayOrder - the fixed display order of day buckets.
var WeekdayOrder = []Weekday{
	WeekdayMonday,
	WeekdayTuesday,
	WeekdayWednesday,
	WeekdayThursday,
	WeekdayFriday,
	WeekdaySaturday,
	WeekdaySunday,
	WeekdayOther,
}

var calendarWeekdays = map[time.Weekday]Weekday{
	time.Monday:    WeekdayMonday,
	time.Tuesday:   WeekdayTuesday,
	time.Wednesday: WeekdayWednesday,
	time.Thursday:  WeekdayThursday,
	time.Friday:    WeekdayFriday,
	time.Saturday:  WeekdaySaturday,
	time.Sunday:    WeekdaySunday,
}

// WeekdayFromDate resolves an ISO date to its schedule bucket. The second
// return value is false when the date cannot be parsed.
func WeekdayFromDate(date string) (Weekday, bool) {
	calendar, ok := timeutil.WeekdayOf(date)
	if !ok {
		return WeekdayOther, false
	}
	return calendarWeekdays[calendar], true
}

// IsValidWeekday reports whether the value names a known day bucket.
func IsValidWeekday(day Weekday) bool {
	for _, d := range WeekdayOrder {
		if d == day {
			return true
		}
	}
	return false
}

type EntryCategory string

const (
	CategoryTransport EntryCategory = "transport"
	CategoryRace      EntryCategory = "race"
	CategoryMeal      EntryCategory = "meal"
	CategoryMassage   EntryCategory = "massage"
	CategoryOther     EntryCategory = "other"
)

// LegTimeField identifies which time field of a transport leg a derived
// entry was computed from. Empty for entries with no leg provenance.
type LegTimeField string

const (
	LegFieldDeparture LegTimeField = "departure"
	LegFieldArrival   LegTimeField = "arrival"
	LegFieldStop      LegTimeField = "stop"
)

// TimingEntry - one line of the operational schedule. Derived entries carry
// a deterministic id and explicit provenance; manual entries carry a random
// id and no provenance.
type TimingEntry struct {
	ID              string        `json:"id" db:"id"`
	Time            string        `json:"time" db:"time"`
	Description     string        `json:"description" db:"description"`
	Category        EntryCategory `json:"category" db:"category"`
	IsAutoGenerated bool          `json:"is_auto_generated" db:"is_auto_generated"`
	IsOverridden    bool          `json:"is_overridden" db:"is_overridden"`

	// Provenance back to the transport leg or stop the entry was derived
	// from. Drives the time write-back; entries without provenance never
	// write back.
	SourceLegID  *uuid.UUID   `json:"source_leg_id,omitempty" db:"source_leg_id"`
	SourceStopID *uuid.UUID   `json:"source_stop_id,omitempty" db:"source_stop_id"`
	SourceField  LegTimeField `json:"source_field,omitempty" db:"source_field"`

	// VehicleName is set on derived departure/arrival entries so that
	// team-view grouping can list vehicles without a roster lookup.
	VehicleName string `json:"vehicle_name,omitempty" db:"vehicle_name"`

	// Massage-specific fields.
	PersonID  *uuid.UUID `json:"person_id,omitempty" db:"person_id"`
	MasseurID *uuid.UUID `json:"masseur_id,omitempty" db:"masseur_id"`
	SortOrder *int       `json:"sort_order,omitempty" db:"sort_order"`
}

// Traceable reports whether the entry can write its time back to a
// transport leg or stop.
func (e *TimingEntry) Traceable() bool {
	return e.SourceField != "" && (e.SourceLegID != nil || e.SourceStopID != nil)
}

// LogisticsDay - one day bucket holding its schedule lines.
// Invariant: entries sorted ascending by parsed time, unparsable last.
type LogisticsDay struct {
	Day     Weekday       `json:"day" db:"day"`
	Entries []TimingEntry `json:"entries"`
}

// SortEntries restores the per-day ordering invariant: ascending by parsed
// time of day, entries with unparsable times last, stable otherwise.
func SortEntries(entries []TimingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, okI := timeutil.ParseTimeOfDay(entries[i].Time)
		tj, okJ := timeutil.ParseTimeOfDay(entries[j].Time)
		if okI && okJ {
			return ti < tj
		}
		return okI && !okJ
	})
}

// CopyDays deep-copies a schedule so that merge never aliases persisted data.
func CopyDays(days []LogisticsDay) []LogisticsDay {
	copied := make([]LogisticsDay, len(days))
	for i, day := range days {
		copied[i] = LogisticsDay{
			Day:     day.Day,
			Entries: append([]TimingEntry(nil), day.Entries...),
		}
	}
	return copied
}

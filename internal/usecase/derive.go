package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/pkg/timeutil"
)

type ViewMode string

const (
	ViewTeam       ViewMode = "team"
	ViewIndividual ViewMode = "individual"
)

// ScheduleView selects whose schedule is derived: the whole team, or one
// person (only legs carrying that person are considered, and no display
// grouping is applied).
type ScheduleView struct {
	Mode     ViewMode
	PersonID *uuid.UUID
}

// ScheduleSources - the read-only inputs of one derivation run.
type ScheduleSources struct {
	Event          *domain.Event
	Legs           []*domain.TransportLeg
	RaceInfo       *domain.RaceDayInfo
	Accommodations []*domain.Accommodation
	Directory      *domain.NameDirectory
}

// DayEntry - a derived candidate entry with its resolved day bucket.
type DayEntry struct {
	Day   domain.Weekday
	Entry domain.TimingEntry
}

// Deterministic ids for derived entries. Merge dedup and session
// suppression key on these; traceability uses the provenance fields.
const (
	entryIDAccreditation    = "race:accreditation"
	entryIDDirectorsMeeting = "race:directors-meeting"
	entryIDFictitiousStart  = "race:fictitious-start"
	entryIDRealStart        = "race:real-start"
	entryIDPreRaceMeal      = "race:meal"
	entryIDPresentation     = "race:presentation"
	entryIDArrivalOnSite    = "race:arrival-site"
	entryIDFinish           = "race:finish"
	entryIDHotelDeparture   = "hotel:departure"
	entryIDBreakfast        = "hotel:breakfast"
	entryIDDinner           = "meal:dinner"
)

const (
	preRaceMealLeadMinutes   = 180
	arrivalOnSiteLeadMinutes = 30
	realStartArrivalLeadMin  = 60
	breakfastLeadMinutes     = 90
	travelTimeSafetyFactor   = 1.1
	multiDayDinnerTime       = "19h30"
)

func legDepartureEntryID(legID uuid.UUID) string {
	return fmt.Sprintf("leg:%s:departure", legID)
}

func legArrivalEntryID(legID uuid.UUID) string {
	return fmt.Sprintf("leg:%s:arrival", legID)
}

func stopEntryID(stopID uuid.UUID) string {
	return fmt.Sprintf("stop:%s", stopID)
}

// DeriveCandidates computes the candidate timing entries for one event and
// view. It is pure: no I/O, no clock, deterministic for given sources.
// Candidates whose source date resolves to no weekday are silently dropped.
func DeriveCandidates(src ScheduleSources, view ScheduleView) []DayEntry {
	var candidates []DayEntry

	for _, leg := range src.Legs {
		if !legInView(leg, view) {
			continue
		}
		candidates = append(candidates, deriveLegEntries(leg, src.Directory, view)...)
	}

	raceEntries := deriveRaceEntries(src)
	candidates = append(candidates, raceEntries...)

	candidates = append(candidates, deriveHotelEntries(src, raceEntries)...)

	if src.Event != nil && src.Event.IsMultiDay() {
		if day, ok := domain.WeekdayFromDate(src.Event.EndDate); ok {
			candidates = append(candidates, DayEntry{
				Day: day,
				Entry: domain.TimingEntry{
					ID:              entryIDDinner,
					Time:            multiDayDinnerTime,
					Description:     "Dinner",
					Category:        domain.CategoryMeal,
					IsAutoGenerated: true,
				},
			})
		}
	}

	return candidates
}

// legInView applies the view filter: individual view keeps only legs
// carrying the person; team view keeps all non-flight legs and flight legs
// that have group-relevant waypoints.
func legInView(leg *domain.TransportLeg, view ScheduleView) bool {
	if view.Mode == ViewIndividual {
		return view.PersonID != nil && leg.Carries(*view.PersonID)
	}
	if leg.Mode == domain.ModeFlight {
		return len(leg.Stops) > 0
	}
	return true
}

func deriveLegEntries(leg *domain.TransportLeg, dir *domain.NameDirectory, view ScheduleView) []DayEntry {
	var entries []DayEntry
	legID := leg.ID
	vehicleName := dir.VehicleName(leg.Vehicle)

	// Departure - personal vehicles are never surfaced at team level, but
	// the occupant still sees their own departure in individual view
	departureVisible := view.Mode == ViewIndividual || !leg.IsPersonalVehicle()
	if departureVisible && leg.Departure.Time != "" {
		if day, ok := domain.WeekdayFromDate(leg.Departure.Date); ok {
			field := domain.LegFieldDeparture
			entries = append(entries, DayEntry{
				Day: day,
				Entry: domain.TimingEntry{
					ID:              legDepartureEntryID(legID),
					Time:            leg.Departure.Time,
					Description:     fmt.Sprintf("Departure of vehicle %s", vehicleName),
					Category:        domain.CategoryTransport,
					IsAutoGenerated: true,
					SourceLegID:     &legID,
					SourceField:     field,
					VehicleName:     vehicleName,
				},
			})
		}
	}

	// Arrival - always emitted, personal vehicles included
	if leg.Arrival.Time != "" {
		if day, ok := domain.WeekdayFromDate(leg.Arrival.Date); ok {
			entries = append(entries, DayEntry{
				Day: day,
				Entry: domain.TimingEntry{
					ID:              legArrivalEntryID(legID),
					Time:            leg.Arrival.Time,
					Description:     fmt.Sprintf("Vehicles arriving at %s (%s)", leg.Arrival.Location, vehicleName),
					Category:        domain.CategoryTransport,
					IsAutoGenerated: true,
					SourceLegID:     &legID,
					SourceField:     domain.LegFieldArrival,
					VehicleName:     vehicleName,
				},
			})
		}
	}

	for i := range leg.Stops {
		stop := &leg.Stops[i]
		if stop.Time == "" {
			continue
		}
		day, ok := domain.WeekdayFromDate(stop.Date)
		if !ok {
			continue
		}
		stopID := stop.ID
		entries = append(entries, DayEntry{
			Day: day,
			Entry: domain.TimingEntry{
				ID:              stopEntryID(stopID),
				Time:            stop.Time,
				Description:     stopDescription(leg, stop, dir),
				Category:        domain.CategoryTransport,
				IsAutoGenerated: true,
				SourceLegID:     &legID,
				SourceStopID:    &stopID,
				SourceField:     domain.LegFieldStop,
			},
		})
	}

	return entries
}

func stopDescription(leg *domain.TransportLeg, stop *domain.IntermediateStop, dir *domain.NameDirectory) string {
	switch stop.Kind {
	case domain.StopPickup:
		return fmt.Sprintf("Pickup of %s at %s at %s", dir.PersonNames(stop.PersonIDs), stop.Time, stop.Location)
	case domain.StopDropoff:
		return fmt.Sprintf("Drop-off of %s at %s at %s", dir.PersonNames(stop.PersonIDs), stop.Time, stop.Location)
	case domain.StopAirportArrival, domain.StopTrainArrival:
		return fmt.Sprintf("%s arrives at %s", modeLabel(leg.Mode), stop.Location)
	case domain.StopMeetingPoint:
		return fmt.Sprintf("Meeting point at %s", stop.Location)
	default:
		return "Stage"
	}
}

func modeLabel(mode domain.TransportMode) string {
	s := string(mode)
	if s == "" {
		return "Transport"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// deriveRaceEntries emits the fixed race-metadata entries. Each field uses
// its own date, falling back to the main event day anchor: event start date,
// then accreditation date, then directors-meeting date.
func deriveRaceEntries(src ScheduleSources) []DayEntry {
	info := src.RaceInfo
	if info == nil {
		return nil
	}

	anchor := ""
	if src.Event != nil {
		anchor = src.Event.StartDate
	}
	if anchor == "" && info.Accreditation != nil {
		anchor = info.Accreditation.Date
	}
	if anchor == "" && info.DirectorsMeeting != nil {
		anchor = info.DirectorsMeeting.Date
	}

	dayFor := func(ownDate string) (domain.Weekday, bool) {
		date := ownDate
		if date == "" {
			date = anchor
		}
		return domain.WeekdayFromDate(date)
	}

	raceEntry := func(id, description, timeOfDay string, category domain.EntryCategory, day domain.Weekday) DayEntry {
		return DayEntry{
			Day: day,
			Entry: domain.TimingEntry{
				ID:              id,
				Time:            timeOfDay,
				Description:     description,
				Category:        category,
				IsAutoGenerated: true,
			},
		}
	}

	var entries []DayEntry

	if ref := info.Accreditation; ref != nil && ref.Time != "" {
		if day, ok := dayFor(ref.Date); ok {
			entries = append(entries, raceEntry(entryIDAccreditation, "Accreditation / sign-in", ref.Time, domain.CategoryRace, day))
		}
	}

	if ref := info.DirectorsMeeting; ref != nil && ref.Time != "" {
		if day, ok := dayFor(ref.Date); ok {
			entries = append(entries, raceEntry(entryIDDirectorsMeeting, "Team directors meeting", ref.Time, domain.CategoryRace, day))
		}
	}

	if ref := info.FictitiousStart; ref != nil && ref.Time != "" {
		if day, ok := dayFor(ref.Date); ok {
			entries = append(entries, raceEntry(entryIDFictitiousStart, "Fictitious start", ref.Time, domain.CategoryRace, day))
		}
	}

	if ref := info.RealStart; ref != nil && ref.Time != "" {
		if day, ok := dayFor(ref.Date); ok {
			entries = append(entries, raceEntry(entryIDRealStart, "Real start", ref.Time, domain.CategoryRace, day))

			// Back-derived team meal
			if mealTime, ok := timeutil.SubtractMinutes(ref.Time, preRaceMealLeadMinutes); ok {
				entries = append(entries, raceEntry(entryIDPreRaceMeal, "Meal", mealTime, domain.CategoryMeal, day))
			}
		}
	}

	if ref := info.Presentation; ref != nil && ref.Time != "" {
		if day, ok := dayFor(ref.Date); ok {
			entries = append(entries, raceEntry(entryIDPresentation, "Team presentation", ref.Time, domain.CategoryRace, day))

			// Back-derived arrival on site
			if arrivalTime, ok := timeutil.SubtractMinutes(ref.Time, arrivalOnSiteLeadMinutes); ok {
				entries = append(entries, raceEntry(entryIDArrivalOnSite, "Arrival on site", arrivalTime, domain.CategoryRace, day))
			}
		}
	}

	// Expected finish goes on the event end date, not the start date
	if ref := info.Finish; ref != nil && ref.Time != "" {
		endDate := ""
		if src.Event != nil {
			endDate = src.Event.EndDate
		}
		if endDate == "" {
			endDate = ref.Date
		}
		if day, ok := dayFor(endDate); ok {
			entries = append(entries, raceEntry(entryIDFinish, "Expected finish", ref.Time, domain.CategoryRace, day))
		}
	}

	return entries
}

// deriveHotelEntries computes the hotel departure and breakfast chain from
// the primary (non-stopover) accommodation travel time and a reference
// arrival time: the derived arrival-on-site, else 30 minutes before the
// fictitious start, else 60 minutes before the real start.
func deriveHotelEntries(src ScheduleSources, raceEntries []DayEntry) []DayEntry {
	travelMinutes, found := 0, false
	for _, acc := range src.Accommodations {
		if acc.IsStopover || acc.TravelTimeToStart == "" {
			continue
		}
		if minutes, ok := timeutil.ParseDuration(acc.TravelTimeToStart); ok {
			travelMinutes, found = minutes, true
			break
		}
	}
	if !found {
		return nil
	}

	referenceTime, referenceDay, ok := resolveArrivalReference(src, raceEntries)
	if !ok {
		return nil
	}

	// Travel time padded by 10%, rounded up
	paddedTravel := int(math.Ceil(float64(travelMinutes) * travelTimeSafetyFactor))

	departureTime, ok := timeutil.SubtractMinutes(referenceTime, paddedTravel)
	if !ok {
		return nil
	}

	entries := []DayEntry{{
		Day: referenceDay,
		Entry: domain.TimingEntry{
			ID:              entryIDHotelDeparture,
			Time:            departureTime,
			Description:     "Hotel departure",
			Category:        domain.CategoryTransport,
			IsAutoGenerated: true,
		},
	}}

	if breakfastTime, ok := timeutil.SubtractMinutes(departureTime, breakfastLeadMinutes); ok {
		entries = append(entries, DayEntry{
			Day: referenceDay,
			Entry: domain.TimingEntry{
				ID:              entryIDBreakfast,
				Time:            breakfastTime,
				Description:     "Breakfast",
				Category:        domain.CategoryMeal,
				IsAutoGenerated: true,
			},
		})
	}

	return entries
}

func resolveArrivalReference(src ScheduleSources, raceEntries []DayEntry) (string, domain.Weekday, bool) {
	for _, c := range raceEntries {
		if c.Entry.ID == entryIDArrivalOnSite {
			return c.Entry.Time, c.Day, true
		}
	}

	info := src.RaceInfo
	if info == nil {
		return "", domain.WeekdayOther, false
	}

	anchorDay := func(ref *domain.DateTimeRef) (domain.Weekday, bool) {
		date := ref.Date
		if date == "" && src.Event != nil {
			date = src.Event.StartDate
		}
		return domain.WeekdayFromDate(date)
	}

	if ref := info.FictitiousStart; ref != nil && ref.Time != "" {
		if t, ok := timeutil.SubtractMinutes(ref.Time, arrivalOnSiteLeadMinutes); ok {
			if day, ok := anchorDay(ref); ok {
				return t, day, true
			}
		}
	}

	if ref := info.RealStart; ref != nil && ref.Time != "" {
		if t, ok := timeutil.SubtractMinutes(ref.Time, realStartArrivalLeadMin); ok {
			if day, ok := anchorDay(ref); ok {
				return t, day, true
			}
		}
	}

	return "", domain.WeekdayOther, false
}

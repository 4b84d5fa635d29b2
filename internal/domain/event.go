package domain

import "github.com/google/uuid"

// Event - a race or stage event owning transport legs, race metadata,
// accommodations and the operational logistics schedule.
type Event struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Location  string    `json:"location,omitempty" db:"location"`
	StartDate string    `json:"start_date" db:"start_date"` // "2006-01-02"
	EndDate   string    `json:"end_date" db:"end_date"`
}

// IsMultiDay reports whether the event spans more than one calendar day.
func (e *Event) IsMultiDay() bool {
	return e.EndDate != "" && e.EndDate != e.StartDate
}

// DateTimeRef - an optional date + time pair from race metadata.
// Either field may be empty; unparsable values are silently skipped
// during derivation.
type DateTimeRef struct {
	Date string `json:"date,omitempty" db:"date"`
	Time string `json:"time,omitempty" db:"time"`
}

// RaceDayInfo - per-event race metadata used to derive fixed schedule
// entries. Every field is optional.
type RaceDayInfo struct {
	EventID          uuid.UUID    `json:"event_id" db:"event_id"`
	Accreditation    *DateTimeRef `json:"accreditation,omitempty"`
	DirectorsMeeting *DateTimeRef `json:"directors_meeting,omitempty"`
	FictitiousStart  *DateTimeRef `json:"fictitious_start,omitempty"`
	RealStart        *DateTimeRef `json:"real_start,omitempty"`
	Presentation     *DateTimeRef `json:"presentation,omitempty"`
	Finish           *DateTimeRef `json:"finish,omitempty"`
}

// Accommodation - per-event lodging. TravelTimeToStart is a free-text
// duration ("1h00", "45min") used only for hotel-departure derivation.
type Accommodation struct {
	ID                uuid.UUID `json:"id" db:"id"`
	EventID           uuid.UUID `json:"event_id" db:"event_id"`
	Name              string    `json:"name" db:"name"`
	IsStopover        bool      `json:"is_stopover" db:"is_stopover"`
	TravelTimeToStart string    `json:"travel_time_to_start,omitempty" db:"travel_time_to_start"`
}

package dto

import (
	"github.com/google/uuid"
	"github.com/roadbook-microservice/internal/domain"
)

// LegPointRequest - one end of a transport leg.
type LegPointRequest struct {
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time     string `json:"time" validate:"omitempty,timeofday"`
	Location string `json:"location" validate:"omitempty,max=200"`
}

// StopRequest - an intermediate stop on a leg.
type StopRequest struct {
	ID        *uuid.UUID  `json:"id,omitempty"`
	Date      string      `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time      string      `json:"time" validate:"omitempty,timeofday"`
	Location  string      `json:"location" validate:"omitempty,max=200"`
	Kind      string      `json:"kind" validate:"required,oneof=pickup dropoff meeting-point airport-arrival train-arrival"`
	PersonIDs []uuid.UUID `json:"person_ids,omitempty"`
}

// OccupantRequest - a person travelling on a leg.
type OccupantRequest struct {
	PersonID uuid.UUID `json:"person_id" validate:"required"`
	Kind     string    `json:"kind" validate:"required,oneof=rider staff"`
}

// LegRequest - create/update payload for a transport leg.
type LegRequest struct {
	Direction string            `json:"direction" validate:"required,oneof=outbound return same-day"`
	Mode      string            `json:"mode" validate:"required,oneof=van bus flight train personal-car"`
	Departure LegPointRequest   `json:"departure"`
	Arrival   LegPointRequest   `json:"arrival"`
	Vehicle   *string           `json:"vehicle,omitempty"`
	DriverID  *uuid.UUID        `json:"driver_id,omitempty"`
	Occupants []OccupantRequest `json:"occupants,omitempty" validate:"omitempty,dive"`
	Stops     []StopRequest     `json:"stops,omitempty" validate:"omitempty,dive"`
}

// ToDomain converts the request into a domain leg for the given event.
// Stops without an id get a fresh one.
func (r *LegRequest) ToDomain(eventID uuid.UUID, legID uuid.UUID) *domain.TransportLeg {
	leg := &domain.TransportLeg{
		ID:        legID,
		EventID:   eventID,
		Direction: domain.LegDirection(r.Direction),
		Mode:      domain.TransportMode(r.Mode),
		Departure: domain.LegPoint{Date: r.Departure.Date, Time: r.Departure.Time, Location: r.Departure.Location},
		Arrival:   domain.LegPoint{Date: r.Arrival.Date, Time: r.Arrival.Time, Location: r.Arrival.Location},
		Vehicle:   r.Vehicle,
		DriverID:  r.DriverID,
	}

	for _, o := range r.Occupants {
		leg.Occupants = append(leg.Occupants, domain.Occupant{
			PersonID: o.PersonID,
			Kind:     domain.PersonKind(o.Kind),
		})
	}

	for _, s := range r.Stops {
		stopID := uuid.New()
		if s.ID != nil {
			stopID = *s.ID
		}
		leg.Stops = append(leg.Stops, domain.IntermediateStop{
			ID:        stopID,
			Date:      s.Date,
			Time:      s.Time,
			Location:  s.Location,
			Kind:      domain.StopKind(s.Kind),
			PersonIDs: s.PersonIDs,
		})
	}

	return leg
}

// RaceDayInfoRequest - race metadata update payload.
type RaceDayInfoRequest struct {
	Accreditation    *DateTimeRequest `json:"accreditation,omitempty"`
	DirectorsMeeting *DateTimeRequest `json:"directors_meeting,omitempty"`
	FictitiousStart  *DateTimeRequest `json:"fictitious_start,omitempty"`
	RealStart        *DateTimeRequest `json:"real_start,omitempty"`
	Presentation     *DateTimeRequest `json:"presentation,omitempty"`
	Finish           *DateTimeRequest `json:"finish,omitempty"`
}

// DateTimeRequest - optional date + time pair.
type DateTimeRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time string `json:"time" validate:"omitempty,timeofday"`
}

// ToDomain converts the request into race metadata for the given event.
func (r *RaceDayInfoRequest) ToDomain(eventID uuid.UUID) *domain.RaceDayInfo {
	ref := func(in *DateTimeRequest) *domain.DateTimeRef {
		if in == nil {
			return nil
		}
		return &domain.DateTimeRef{Date: in.Date, Time: in.Time}
	}
	return &domain.RaceDayInfo{
		EventID:          eventID,
		Accreditation:    ref(r.Accreditation),
		DirectorsMeeting: ref(r.DirectorsMeeting),
		FictitiousStart:  ref(r.FictitiousStart),
		RealStart:        ref(r.RealStart),
		Presentation:     ref(r.Presentation),
		Finish:           ref(r.Finish),
	}
}

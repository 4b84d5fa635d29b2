package domain

import "github.com/google/uuid"

type LegDirection string

const (
	DirectionOutbound LegDirection = "outbound"
	DirectionReturn   LegDirection = "return"
	DirectionSameDay  LegDirection = "same-day"
)

type TransportMode string

const (
	ModeVan         TransportMode = "van"
	ModeBus         TransportMode = "bus"
	ModeFlight      TransportMode = "flight"
	ModeTrain       TransportMode = "train"
	ModePersonalCar TransportMode = "personal-car"
)

// VehiclePersonal is the sentinel vehicle reference for someone travelling
// in their own car. Personal departures are never surfaced at team level.
const VehiclePersonal = "personal"

type PersonKind string

const (
	PersonRider PersonKind = "rider"
	PersonStaff PersonKind = "staff"
)

type StopKind string

const (
	StopPickup         StopKind = "pickup"
	StopDropoff        StopKind = "dropoff"
	StopMeetingPoint   StopKind = "meeting-point"
	StopAirportArrival StopKind = "airport-arrival"
	StopTrainArrival   StopKind = "train-arrival"
)

// LegPoint - the departure or arrival end of a transport leg.
type LegPoint struct {
	Date     string `json:"date" db:"date"` // "2006-01-02"
	Time     string `json:"time" db:"time"` // "14h30"
	Location string `json:"location" db:"location"`
}

// Occupant - a person travelling on a leg.
type Occupant struct {
	PersonID uuid.UUID  `json:"person_id" db:"person_id"`
	Kind     PersonKind `json:"kind" db:"kind"`
}

// IntermediateStop - an ordered waypoint on a leg (pickup, drop-off,
// meeting point, airport or train arrival).
type IntermediateStop struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Date      string      `json:"date" db:"date"`
	Time      string      `json:"time" db:"time"`
	Location  string      `json:"location" db:"location"`
	Kind      StopKind    `json:"kind" db:"kind"`
	PersonIDs []uuid.UUID `json:"person_ids,omitempty" db:"person_ids"`
}

// TransportLeg - one directional movement of people and/or a vehicle,
// owned by an event. Read-only to the derivation engine; the only
// mutation it ever performs is the quarter-hour rounded time write-back.
type TransportLeg struct {
	ID        uuid.UUID          `json:"id" db:"id"`
	EventID   uuid.UUID          `json:"event_id" db:"event_id"`
	Direction LegDirection       `json:"direction" db:"direction"`
	Mode      TransportMode      `json:"mode" db:"mode"`
	Departure LegPoint           `json:"departure"`
	Arrival   LegPoint           `json:"arrival"`
	Vehicle   *string            `json:"vehicle,omitempty" db:"vehicle"` // vehicle id or VehiclePersonal
	DriverID  *uuid.UUID         `json:"driver_id,omitempty" db:"driver_id"`
	Occupants []Occupant         `json:"occupants,omitempty"`
	Stops     []IntermediateStop `json:"stops,omitempty"`
}

// IsPersonalVehicle reports whether the leg uses the personal-vehicle sentinel.
func (l *TransportLeg) IsPersonalVehicle() bool {
	return l.Vehicle != nil && *l.Vehicle == VehiclePersonal
}

// Carries reports whether the given person travels on this leg.
func (l *TransportLeg) Carries(personID uuid.UUID) bool {
	for _, o := range l.Occupants {
		if o.PersonID == personID {
			return true
		}
	}
	return false
}

// FindStop returns the intermediate stop with the given id, or nil.
func (l *TransportLeg) FindStop(stopID uuid.UUID) *IntermediateStop {
	for i := range l.Stops {
		if l.Stops[i].ID == stopID {
			return &l.Stops[i]
		}
	}
	return nil
}

package dto

import (
	"github.com/google/uuid"
	"github.com/roadbook-microservice/internal/domain"
)

// ScheduleResponse - the merged (and, in team view, grouped) schedule.
type ScheduleResponse struct {
	EventID  uuid.UUID             `json:"event_id"`
	View     string                `json:"view"`
	PersonID *uuid.UUID            `json:"person_id,omitempty"`
	Days     []domain.LogisticsDay `json:"days"`
}

// ManualEntryRequest - user-authored schedule entry, persisted immediately.
type ManualEntryRequest struct {
	Day         string     `json:"day" validate:"required"`
	Time        string     `json:"time" validate:"required,timeofday"`
	Description string     `json:"description" validate:"required,min=1,max=500"`
	Category    string     `json:"category" validate:"omitempty,oneof=transport race meal massage other"`
	PersonID    *uuid.UUID `json:"person_id,omitempty"`
	MasseurID   *uuid.UUID `json:"masseur_id,omitempty"`
	SortOrder   *int       `json:"sort_order,omitempty"`
}

// UpdateEntryRequest - partial entry edit. A time edit on an entry traced
// to a transport leg or stop triggers the quarter-hour rounded write-back.
type UpdateEntryRequest struct {
	Day         string  `json:"day" validate:"required"`
	Time        *string `json:"time,omitempty" validate:"omitempty,timeofday"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Category    *string `json:"category,omitempty" validate:"omitempty,oneof=transport race meal massage other"`
}

// EntryResponse - the entry state after an edit.
type EntryResponse struct {
	Day   domain.Weekday     `json:"day"`
	Entry domain.TimingEntry `json:"entry"`
}

// VehicleBoarding - one boarding line of the vehicle logistics listing:
// who boards which vehicle, where and when, on the chosen day.
type VehicleBoarding struct {
	LegID       uuid.UUID `json:"leg_id"`
	VehicleName string    `json:"vehicle_name"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Persons     string    `json:"persons"`
}

// VehicleLogisticsResponse - the per-day vehicle logistics listing.
type VehicleLogisticsResponse struct {
	EventID   uuid.UUID         `json:"event_id"`
	Day       domain.Weekday    `json:"day"`
	Boardings []VehicleBoarding `json:"boardings"`
}

// Statistics - service-level counters.
type Statistics struct {
	Events         int                          `json:"events"`
	TransportLegs  int                          `json:"transport_legs"`
	EntriesByType  map[domain.EntryCategory]int `json:"entries_by_category"`
	PersistedTotal int                          `json:"persisted_entries_total"`
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/roadbook-microservice/internal/domain"
)

// LegRepository provides access to transport legs and their stops.
type LegRepository interface {
	// GetByEvent returns all legs belonging to an event, with occupants
	// and intermediate stops loaded, ordered by departure date and time.
	GetByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.TransportLeg, error)

	// GetByID returns a single leg with occupants and stops loaded.
	GetByID(ctx context.Context, legID uuid.UUID) (*domain.TransportLeg, error)

	// Create persists a new leg with its occupants and stops.
	Create(ctx context.Context, leg *domain.TransportLeg) error

	// Update replaces a leg and rewrites its occupants and stops.
	Update(ctx context.Context, leg *domain.TransportLeg) error

	// Delete removes a leg with its occupants and stops.
	Delete(ctx context.Context, legID uuid.UUID) error

	// UpdateDepartureTime sets the departure time of a leg.
	// Used by the schedule write-back with a quarter-hour rounded value.
	UpdateDepartureTime(ctx context.Context, legID uuid.UUID, timeOfDay string) error

	// UpdateArrivalTime sets the arrival time of a leg.
	UpdateArrivalTime(ctx context.Context, legID uuid.UUID, timeOfDay string) error

	// UpdateStopTime sets the time of an intermediate stop.
	UpdateStopTime(ctx context.Context, stopID uuid.UUID, timeOfDay string) error

	// CountLegs returns the total number of transport legs.
	CountLegs(ctx context.Context) (int, error)
}

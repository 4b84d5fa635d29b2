package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/roadbook-microservice/internal/domain"
)

// EventRepository provides access to events, race-day metadata and
// accommodations.
type EventRepository interface {
	// GetEvent returns the event or ErrEventNotFound.
	GetEvent(ctx context.Context, eventID uuid.UUID) (*domain.Event, error)

	// GetRaceDayInfo returns the race metadata for an event, or nil when
	// none has been recorded yet.
	GetRaceDayInfo(ctx context.Context, eventID uuid.UUID) (*domain.RaceDayInfo, error)

	// UpsertRaceDayInfo creates or replaces the race metadata for an event.
	UpsertRaceDayInfo(ctx context.Context, info *domain.RaceDayInfo) error

	// GetAccommodations returns all lodging records for an event.
	GetAccommodations(ctx context.Context, eventID uuid.UUID) ([]*domain.Accommodation, error)

	// CountEvents returns the total number of events.
	CountEvents(ctx context.Context) (int, error)
}

// LogisticsRepository persists the user-authored part of the schedule:
// manual entries and overridden derived entries, grouped by day.
type LogisticsRepository interface {
	// GetDays returns the persisted logistics days for an event, in the
	// fixed weekday order, entries sorted by time.
	GetDays(ctx context.Context, eventID uuid.UUID) ([]domain.LogisticsDay, error)

	// SaveDays replaces the persisted logistics days for an event.
	SaveDays(ctx context.Context, eventID uuid.UUID, days []domain.LogisticsDay) error

	// CountEntries returns the number of persisted entries per category.
	CountEntries(ctx context.Context) (map[domain.EntryCategory]int, error)
}

// RosterRepository resolves rider, staff and vehicle display names.
type RosterRepository interface {
	// GetDirectory loads the full name directory in one round trip.
	GetDirectory(ctx context.Context) (*domain.NameDirectory, error)
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CacheRepository abstracts the Redis cache: schedule results and the
// session-scoped sets of suppressed auto-generated entry ids.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetSchedule returns the cached team-view schedule for an event,
	// nil on cache miss.
	GetSchedule(ctx context.Context, eventID uuid.UUID) ([]byte, error)

	// SetSchedule caches the team-view schedule for an event.
	SetSchedule(ctx context.Context, eventID uuid.UUID, data []byte, ttl time.Duration) error

	// InvalidateSchedule drops the cached schedule for an event.
	InvalidateSchedule(ctx context.Context, eventID uuid.UUID) error

	// AddExcludedEntry records a deleted auto-generated entry id for an
	// editing session. The set expires with the session TTL; it is never
	// persisted, so suppressed entries reappear in a fresh session.
	AddExcludedEntry(ctx context.Context, sessionID string, entryID string, ttl time.Duration) error

	// RemoveExcludedEntry restores a suppressed entry id for a session.
	RemoveExcludedEntry(ctx context.Context, sessionID string, entryID string) error

	// GetExcludedEntries returns the suppressed entry ids for a session.
	GetExcludedEntries(ctx context.Context, sessionID string) (map[string]bool, error)
}

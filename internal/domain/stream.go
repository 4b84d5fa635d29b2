package domain

import "github.com/google/uuid"

// Stream names (must match the publishing side)
const (
	StreamScheduleRecompute = "stream:schedule:recompute"
	StreamScheduleDone      = "stream:schedule:done"
)

// ScheduleRecomputeEvent - incoming request to recompute an event schedule,
// published after any transport-leg or race-info mutation.
type ScheduleRecomputeEvent struct {
	EventID uuid.UUID `json:"event_id"`
	Reason  string    `json:"reason,omitempty"`
}

// ScheduleDoneEvent - recompute result notification.
type ScheduleDoneEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	DayCount   int       `json:"day_count"`
	EntryCount int       `json:"entry_count"`
	Error      string    `json:"error,omitempty"`
}

// StreamMessage - a raw message read from a Redis Stream.
type StreamMessage struct {
	ID   string
	Data string
}

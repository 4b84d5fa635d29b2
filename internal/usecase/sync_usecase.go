package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/domain/repository"
	"github.com/roadbook-microservice/internal/pkg/errors"
	"github.com/roadbook-microservice/internal/pkg/timeutil"
	"github.com/roadbook-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// SyncUseCase handles schedule entry edits: override marking, the
// quarter-hour rounded write-back to the source transport leg or stop, and
// the session-scoped suppression of deleted auto-generated entries.
type SyncUseCase struct {
	scheduleUC    *ScheduleUseCase
	legRepo       repository.LegRepository
	logisticsRepo repository.LogisticsRepository
	cacheRepo     repository.CacheRepository
	streamRepo    repository.StreamRepository
	logger        *zap.Logger
	sessionTTL    time.Duration
}

func NewSyncUseCase(
	scheduleUC *ScheduleUseCase,
	legRepo repository.LegRepository,
	logisticsRepo repository.LogisticsRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	sessionTTL time.Duration,
) *SyncUseCase {
	return &SyncUseCase{
		scheduleUC:    scheduleUC,
		legRepo:       legRepo,
		logisticsRepo: logisticsRepo,
		cacheRepo:     cacheRepo,
		streamRepo:    streamRepo,
		logger:        logger,
		sessionTTL:    sessionTTL,
	}
}

// UpdateEntry edits an entry. An auto-generated entry is materialized into
// the persisted day on its first edit and marked overridden; a time edit on
// a traceable entry also writes the quarter-hour rounded time back to the
// source leg or stop, so future derivations stay consistent with what the
// user sees. The entry itself keeps the user's exact value.
func (uc *SyncUseCase) UpdateEntry(
	ctx context.Context,
	eventID uuid.UUID,
	entryID string,
	req dto.UpdateEntryRequest,
) (*dto.EntryResponse, error) {
	day := domain.Weekday(req.Day)
	if !domain.IsValidWeekday(day) {
		return nil, errors.ErrInvalidDay
	}

	days, err := uc.logisticsRepo.GetDays(ctx, eventID)
	if err != nil {
		return nil, err
	}

	dayIdx, entryIdx := findEntry(days, entryID)
	if entryIdx < 0 {
		// Not yet materialized: locate it among the derived candidates
		sources, err := uc.scheduleUC.LoadSources(ctx, eventID)
		if err != nil {
			return nil, err
		}
		candidate, found := findCandidate(DeriveCandidates(sources, ScheduleView{Mode: ViewTeam}), entryID)
		if !found {
			return nil, errors.ErrEntryNotFound
		}

		dayIdx = -1
		for i := range days {
			if days[i].Day == candidate.Day {
				dayIdx = i
				break
			}
		}
		if dayIdx < 0 {
			days = append(days, domain.LogisticsDay{Day: candidate.Day})
			dayIdx = len(days) - 1
		}
		days[dayIdx].Entries = append(days[dayIdx].Entries, candidate.Entry)
		entryIdx = len(days[dayIdx].Entries) - 1
	}

	entry := &days[dayIdx].Entries[entryIdx]
	timeChanged := false

	if req.Time != nil && *req.Time != entry.Time {
		entry.Time = *req.Time
		timeChanged = true
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Category != nil {
		entry.Category = domain.EntryCategory(*req.Category)
	}
	if entry.IsAutoGenerated {
		entry.IsOverridden = true
	}

	// Write-back: derived departure/arrival/stop slots keep the underlying
	// leg aligned to quarter-hour granularity
	if timeChanged && entry.Traceable() {
		rounded := timeutil.RoundToQuarterHour(entry.Time)
		if err := uc.writeBack(ctx, entry, rounded); err != nil {
			uc.logger.Error("Failed to write time back to transport leg",
				zap.String("entry_id", entry.ID),
				zap.Error(err))
			return nil, err
		}
	}

	domain.SortEntries(days[dayIdx].Entries)

	if err := uc.logisticsRepo.SaveDays(ctx, eventID, days); err != nil {
		return nil, err
	}

	uc.invalidateAndNotify(ctx, eventID, "entry-updated")

	saved := days[dayIdx].Entries
	for i := range saved {
		if saved[i].ID == entryID {
			return &dto.EntryResponse{Day: days[dayIdx].Day, Entry: saved[i]}, nil
		}
	}
	return nil, errors.ErrEntryNotFound
}

// DeleteEntry removes an entry. Persisted entries are removed from storage;
// auto-generated ones are additionally suppressed for the editing session
// so re-derivation does not reintroduce them until the session expires or
// the entry is restored.
func (uc *SyncUseCase) DeleteEntry(
	ctx context.Context,
	eventID uuid.UUID,
	entryID string,
	sessionID string,
) error {
	days, err := uc.logisticsRepo.GetDays(ctx, eventID)
	if err != nil {
		return err
	}

	dayIdx, entryIdx := findEntry(days, entryID)

	isAuto := dayIdx < 0 // unmaterialized entries are derived by definition
	if entryIdx >= 0 {
		isAuto = days[dayIdx].Entries[entryIdx].IsAutoGenerated
	}

	// Deleting a derived entry only sticks through session suppression,
	// otherwise the next derivation reintroduces it
	if isAuto && sessionID == "" {
		return errors.ErrInvalidRequest
	}

	if entryIdx >= 0 {
		days[dayIdx].Entries = append(
			days[dayIdx].Entries[:entryIdx],
			days[dayIdx].Entries[entryIdx+1:]...,
		)
		if err := uc.logisticsRepo.SaveDays(ctx, eventID, days); err != nil {
			return err
		}
	}

	if isAuto {
		if err := uc.cacheRepo.AddExcludedEntry(ctx, sessionID, entryID, uc.sessionTTL); err != nil {
			uc.logger.Error("Failed to record entry exclusion",
				zap.String("session_id", sessionID),
				zap.String("entry_id", entryID),
				zap.Error(err))
			return errors.ErrCacheError
		}
	}

	uc.invalidateAndNotify(ctx, eventID, "entry-deleted")
	return nil
}

// RestoreEntry lifts the session suppression of a deleted auto entry; the
// next derivation reintroduces it.
func (uc *SyncUseCase) RestoreEntry(ctx context.Context, eventID uuid.UUID, entryID, sessionID string) error {
	if sessionID == "" {
		return errors.ErrInvalidRequest
	}
	if err := uc.cacheRepo.RemoveExcludedEntry(ctx, sessionID, entryID); err != nil {
		uc.logger.Error("Failed to restore entry",
			zap.String("session_id", sessionID),
			zap.String("entry_id", entryID),
			zap.Error(err))
		return errors.ErrCacheError
	}
	uc.invalidateAndNotify(ctx, eventID, "entry-restored")
	return nil
}

func (uc *SyncUseCase) writeBack(ctx context.Context, entry *domain.TimingEntry, rounded string) error {
	switch entry.SourceField {
	case domain.LegFieldDeparture:
		return uc.legRepo.UpdateDepartureTime(ctx, *entry.SourceLegID, rounded)
	case domain.LegFieldArrival:
		return uc.legRepo.UpdateArrivalTime(ctx, *entry.SourceLegID, rounded)
	case domain.LegFieldStop:
		if entry.SourceStopID == nil {
			return errors.ErrStopNotFound
		}
		return uc.legRepo.UpdateStopTime(ctx, *entry.SourceStopID, rounded)
	}
	return nil
}

func (uc *SyncUseCase) invalidateAndNotify(ctx context.Context, eventID uuid.UUID, reason string) {
	if err := uc.cacheRepo.InvalidateSchedule(ctx, eventID); err != nil {
		uc.logger.Warn("Failed to invalidate schedule cache", zap.Error(err))
	}
	if uc.streamRepo == nil {
		return
	}
	event := domain.ScheduleRecomputeEvent{EventID: eventID, Reason: reason}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamScheduleRecompute, event); err != nil {
		uc.logger.Warn("Failed to publish recompute event", zap.Error(err))
	}
}

func findEntry(days []domain.LogisticsDay, entryID string) (int, int) {
	for i, day := range days {
		for j, entry := range day.Entries {
			if entry.ID == entryID {
				return i, j
			}
		}
	}
	return -1, -1
}

func findCandidate(candidates []DayEntry, entryID string) (DayEntry, bool) {
	for _, c := range candidates {
		if c.Entry.ID == entryID {
			return c, true
		}
	}
	return DayEntry{}, false
}

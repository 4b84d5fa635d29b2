package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/domain/repository"
	"github.com/roadbook-microservice/internal/pkg/errors"
	"github.com/roadbook-microservice/internal/pkg/timeutil"
	"github.com/roadbook-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ScheduleUseCase computes the merged operational schedule of an event:
// load sources, derive candidates, reconcile with persisted days, group
// for team display. Team-view results without an editing session are cached.
type ScheduleUseCase struct {
	eventRepo     repository.EventRepository
	legRepo       repository.LegRepository
	logisticsRepo repository.LogisticsRepository
	rosterRepo    repository.RosterRepository
	cacheRepo     repository.CacheRepository
	logger        *zap.Logger
	cacheTTL      time.Duration
	sessionTTL    time.Duration
	now           func() time.Time
}

func NewScheduleUseCase(
	eventRepo repository.EventRepository,
	legRepo repository.LegRepository,
	logisticsRepo repository.LogisticsRepository,
	rosterRepo repository.RosterRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
	sessionTTL time.Duration,
) *ScheduleUseCase {
	return &ScheduleUseCase{
		eventRepo:     eventRepo,
		legRepo:       legRepo,
		logisticsRepo: logisticsRepo,
		rosterRepo:    rosterRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
		cacheTTL:      cacheTTL,
		sessionTTL:    sessionTTL,
		now:           time.Now,
	}
}

// WithClock injects a fixed clock, used by tests.
func (uc *ScheduleUseCase) WithClock(now func() time.Time) *ScheduleUseCase {
	uc.now = now
	return uc
}

// GetSchedule returns the merged schedule for an event and view. An editing
// session id activates the session's auto-entry exclusion set and bypasses
// the cache so edits are always reflected live.
func (uc *ScheduleUseCase) GetSchedule(
	ctx context.Context,
	eventID uuid.UUID,
	view ScheduleView,
	sessionID string,
) (*dto.ScheduleResponse, bool, error) {
	if view.Mode != ViewTeam && view.Mode != ViewIndividual {
		return nil, false, errors.ErrInvalidViewMode
	}
	if view.Mode == ViewIndividual && view.PersonID == nil {
		return nil, false, errors.ErrPersonRequired
	}

	cacheable := view.Mode == ViewTeam && sessionID == ""
	if cacheable {
		if data, err := uc.cacheRepo.GetSchedule(ctx, eventID); err == nil && data != nil {
			var resp dto.ScheduleResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				return &resp, true, nil
			}
			uc.logger.Warn("Failed to unmarshal cached schedule", zap.String("event_id", eventID.String()))
		}
	}

	resp, err := uc.computeSchedule(ctx, eventID, view, sessionID)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		if data, err := json.Marshal(resp); err == nil {
			if err := uc.cacheRepo.SetSchedule(ctx, eventID, data, uc.cacheTTL); err != nil {
				uc.logger.Warn("Failed to cache schedule", zap.Error(err))
			}
		}
	}

	return resp, false, nil
}

// WarmCache recomputes the team-view schedule and refreshes the cache.
// Used by the recompute worker after leg or race-info mutations.
func (uc *ScheduleUseCase) WarmCache(ctx context.Context, eventID uuid.UUID) (*dto.ScheduleResponse, error) {
	resp, err := uc.computeSchedule(ctx, eventID, ScheduleView{Mode: ViewTeam}, "")
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	if err := uc.cacheRepo.SetSchedule(ctx, eventID, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to warm schedule cache",
			zap.String("event_id", eventID.String()),
			zap.Error(err))
	}

	return resp, nil
}

func (uc *ScheduleUseCase) computeSchedule(
	ctx context.Context,
	eventID uuid.UUID,
	view ScheduleView,
	sessionID string,
) (*dto.ScheduleResponse, error) {
	started := uc.now()

	sources, err := uc.LoadSources(ctx, eventID)
	if err != nil {
		return nil, err
	}

	persisted, err := uc.logisticsRepo.GetDays(ctx, eventID)
	if err != nil {
		uc.logger.Error("Failed to load logistics days", zap.Error(err))
		return nil, err
	}

	excluded := map[string]bool{}
	if sessionID != "" {
		excluded, err = uc.cacheRepo.GetExcludedEntries(ctx, sessionID)
		if err != nil {
			uc.logger.Warn("Failed to load session exclusions, proceeding without",
				zap.String("session_id", sessionID),
				zap.Error(err))
			excluded = map[string]bool{}
		}
	}

	candidates := DeriveCandidates(sources, view)
	days := MergeSchedule(persisted, candidates, excluded)

	if view.Mode == ViewTeam {
		days = GroupForDisplay(days)
	}

	uc.logger.Debug("Schedule computed",
		zap.String("event_id", eventID.String()),
		zap.String("view", string(view.Mode)),
		zap.Int("days", len(days)),
		zap.Duration("took", uc.now().Sub(started)))

	return &dto.ScheduleResponse{
		EventID:  eventID,
		View:     string(view.Mode),
		PersonID: view.PersonID,
		Days:     days,
	}, nil
}

// LoadSources fetches every read-only input of a derivation run.
func (uc *ScheduleUseCase) LoadSources(ctx context.Context, eventID uuid.UUID) (ScheduleSources, error) {
	event, err := uc.eventRepo.GetEvent(ctx, eventID)
	if err != nil {
		return ScheduleSources{}, err
	}

	legs, err := uc.legRepo.GetByEvent(ctx, eventID)
	if err != nil {
		uc.logger.Error("Failed to load transport legs", zap.Error(err))
		return ScheduleSources{}, err
	}

	raceInfo, err := uc.eventRepo.GetRaceDayInfo(ctx, eventID)
	if err != nil {
		uc.logger.Error("Failed to load race day info", zap.Error(err))
		return ScheduleSources{}, err
	}

	accommodations, err := uc.eventRepo.GetAccommodations(ctx, eventID)
	if err != nil {
		uc.logger.Error("Failed to load accommodations", zap.Error(err))
		return ScheduleSources{}, err
	}

	directory, err := uc.rosterRepo.GetDirectory(ctx)
	if err != nil {
		// Name resolution failures degrade to placeholders, never errors
		uc.logger.Warn("Failed to load roster directory, using placeholders", zap.Error(err))
		directory = &domain.NameDirectory{
			Riders:   map[uuid.UUID]string{},
			Staff:    map[uuid.UUID]string{},
			Vehicles: map[string]string{},
		}
	}

	return ScheduleSources{
		Event:          event,
		Legs:           legs,
		RaceInfo:       raceInfo,
		Accommodations: accommodations,
		Directory:      directory,
	}, nil
}

// CreateManualEntry persists a user-authored entry into the given day.
func (uc *ScheduleUseCase) CreateManualEntry(
	ctx context.Context,
	eventID uuid.UUID,
	req dto.ManualEntryRequest,
) (*dto.EntryResponse, error) {
	day := domain.Weekday(req.Day)
	if !domain.IsValidWeekday(day) {
		return nil, errors.ErrInvalidDay
	}

	if _, err := uc.eventRepo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	category := domain.EntryCategory(req.Category)
	if category == "" {
		category = domain.CategoryOther
	}

	entry := domain.TimingEntry{
		ID:          uuid.New().String(),
		Time:        req.Time,
		Description: req.Description,
		Category:    category,
		PersonID:    req.PersonID,
		MasseurID:   req.MasseurID,
		SortOrder:   req.SortOrder,
	}

	days, err := uc.logisticsRepo.GetDays(ctx, eventID)
	if err != nil {
		return nil, err
	}

	placed := false
	for i := range days {
		if days[i].Day == day {
			days[i].Entries = append(days[i].Entries, entry)
			domain.SortEntries(days[i].Entries)
			placed = true
			break
		}
	}
	if !placed {
		days = append(days, domain.LogisticsDay{Day: day, Entries: []domain.TimingEntry{entry}})
		sortDays(days)
	}

	if err := uc.logisticsRepo.SaveDays(ctx, eventID, days); err != nil {
		uc.logger.Error("Failed to save logistics days", zap.Error(err))
		return nil, err
	}

	if err := uc.cacheRepo.InvalidateSchedule(ctx, eventID); err != nil {
		uc.logger.Warn("Failed to invalidate schedule cache", zap.Error(err))
	}

	return &dto.EntryResponse{Day: day, Entry: entry}, nil
}

// VehicleLogistics lists who boards which vehicle where and when on the
// chosen day, by re-walking the event's transport legs.
func (uc *ScheduleUseCase) VehicleLogistics(
	ctx context.Context,
	eventID uuid.UUID,
	day domain.Weekday,
) (*dto.VehicleLogisticsResponse, error) {
	if !domain.IsValidWeekday(day) {
		return nil, errors.ErrInvalidDay
	}

	sources, err := uc.LoadSources(ctx, eventID)
	if err != nil {
		return nil, err
	}

	boardings := make([]dto.VehicleBoarding, 0)
	for _, leg := range sources.Legs {
		vehicleName := sources.Directory.VehicleName(leg.Vehicle)

		if d, ok := domain.WeekdayFromDate(leg.Departure.Date); ok && d == day && leg.Departure.Time != "" {
			persons := make([]uuid.UUID, 0, len(leg.Occupants))
			for _, o := range leg.Occupants {
				persons = append(persons, o.PersonID)
			}
			boardings = append(boardings, dto.VehicleBoarding{
				LegID:       leg.ID,
				VehicleName: vehicleName,
				Time:        leg.Departure.Time,
				Location:    leg.Departure.Location,
				Persons:     sources.Directory.PersonNames(persons),
			})
		}

		for _, stop := range leg.Stops {
			if stop.Kind != domain.StopPickup && stop.Kind != domain.StopMeetingPoint {
				continue
			}
			if d, ok := domain.WeekdayFromDate(stop.Date); ok && d == day && stop.Time != "" {
				boardings = append(boardings, dto.VehicleBoarding{
					LegID:       leg.ID,
					VehicleName: vehicleName,
					Time:        stop.Time,
					Location:    stop.Location,
					Persons:     sources.Directory.PersonNames(stop.PersonIDs),
				})
			}
		}
	}

	sortBoardings(boardings)

	return &dto.VehicleLogisticsResponse{
		EventID:   eventID,
		Day:       day,
		Boardings: boardings,
	}, nil
}

// sortBoardings orders the listing chronologically, unparsable times last.
func sortBoardings(boardings []dto.VehicleBoarding) {
	sort.SliceStable(boardings, func(i, j int) bool {
		ti, okI := timeutil.ParseTimeOfDay(boardings[i].Time)
		tj, okJ := timeutil.ParseTimeOfDay(boardings[j].Time)
		if okI && okJ {
			return ti < tj
		}
		return okI && !okJ
	})
}

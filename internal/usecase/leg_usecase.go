package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/domain/repository"
	"github.com/roadbook-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// LegUseCase - transport leg CRUD. Every mutation invalidates the cached
// schedule and publishes a recompute event for the worker.
type LegUseCase struct {
	legRepo    repository.LegRepository
	eventRepo  repository.EventRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

func NewLegUseCase(
	legRepo repository.LegRepository,
	eventRepo repository.EventRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *LegUseCase {
	return &LegUseCase{
		legRepo:    legRepo,
		eventRepo:  eventRepo,
		cacheRepo:  cacheRepo,
		streamRepo: streamRepo,
		logger:     logger,
	}
}

func (uc *LegUseCase) List(ctx context.Context, eventID uuid.UUID) ([]*domain.TransportLeg, error) {
	if _, err := uc.eventRepo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	legs, err := uc.legRepo.GetByEvent(ctx, eventID)
	if err != nil {
		uc.logger.Error("Failed to list transport legs", zap.Error(err))
		return nil, err
	}
	return legs, nil
}

func (uc *LegUseCase) Create(ctx context.Context, eventID uuid.UUID, req dto.LegRequest) (*domain.TransportLeg, error) {
	if _, err := uc.eventRepo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	leg := req.ToDomain(eventID, uuid.New())
	if err := uc.legRepo.Create(ctx, leg); err != nil {
		uc.logger.Error("Failed to create transport leg", zap.Error(err))
		return nil, err
	}

	uc.notifyChanged(ctx, eventID, "leg-created")
	return leg, nil
}

func (uc *LegUseCase) Update(ctx context.Context, eventID, legID uuid.UUID, req dto.LegRequest) (*domain.TransportLeg, error) {
	if _, err := uc.legRepo.GetByID(ctx, legID); err != nil {
		return nil, err
	}

	leg := req.ToDomain(eventID, legID)
	if err := uc.legRepo.Update(ctx, leg); err != nil {
		uc.logger.Error("Failed to update transport leg",
			zap.String("leg_id", legID.String()),
			zap.Error(err))
		return nil, err
	}

	uc.notifyChanged(ctx, eventID, "leg-updated")
	return leg, nil
}

func (uc *LegUseCase) Delete(ctx context.Context, eventID, legID uuid.UUID) error {
	if _, err := uc.legRepo.GetByID(ctx, legID); err != nil {
		return err
	}
	if err := uc.legRepo.Delete(ctx, legID); err != nil {
		uc.logger.Error("Failed to delete transport leg",
			zap.String("leg_id", legID.String()),
			zap.Error(err))
		return err
	}

	uc.notifyChanged(ctx, eventID, "leg-deleted")
	return nil
}

// GetRaceDayInfo returns the race metadata of an event, which may be nil.
func (uc *LegUseCase) GetRaceDayInfo(ctx context.Context, eventID uuid.UUID) (*domain.RaceDayInfo, error) {
	if _, err := uc.eventRepo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return uc.eventRepo.GetRaceDayInfo(ctx, eventID)
}

// UpsertRaceDayInfo replaces the race metadata of an event.
func (uc *LegUseCase) UpsertRaceDayInfo(ctx context.Context, eventID uuid.UUID, req dto.RaceDayInfoRequest) (*domain.RaceDayInfo, error) {
	if _, err := uc.eventRepo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	info := req.ToDomain(eventID)
	if err := uc.eventRepo.UpsertRaceDayInfo(ctx, info); err != nil {
		uc.logger.Error("Failed to upsert race day info", zap.Error(err))
		return nil, err
	}

	uc.notifyChanged(ctx, eventID, "race-info-updated")
	return info, nil
}

// GetAccommodations lists the lodging records of an event.
func (uc *LegUseCase) GetAccommodations(ctx context.Context, eventID uuid.UUID) ([]*domain.Accommodation, error) {
	if _, err := uc.eventRepo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return uc.eventRepo.GetAccommodations(ctx, eventID)
}

func (uc *LegUseCase) notifyChanged(ctx context.Context, eventID uuid.UUID, reason string) {
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

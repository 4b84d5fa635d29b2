package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/roadbook-microservice/internal/domain/repository"
	"github.com/roadbook-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

const statsCacheKey = "stats:current"

// StatsUseCase - service-level counters, cached briefly in Redis.
type StatsUseCase struct {
	eventRepo     repository.EventRepository
	legRepo       repository.LegRepository
	logisticsRepo repository.LogisticsRepository
	cacheRepo     repository.CacheRepository
	logger        *zap.Logger
}

func NewStatsUseCase(
	eventRepo repository.EventRepository,
	legRepo repository.LegRepository,
	logisticsRepo repository.LogisticsRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		eventRepo:     eventRepo,
		legRepo:       legRepo,
		logisticsRepo: logisticsRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
	}
}

func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*dto.Statistics, error) {
	if data, err := uc.cacheRepo.Get(ctx, statsCacheKey); err == nil && data != nil {
		var stats dto.Statistics
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	events, err := uc.eventRepo.CountEvents(ctx)
	if err != nil {
		uc.logger.Error("Failed to count events", zap.Error(err))
		return nil, err
	}

	legs, err := uc.legRepo.CountLegs(ctx)
	if err != nil {
		uc.logger.Error("Failed to count transport legs", zap.Error(err))
		return nil, err
	}

	byCategory, err := uc.logisticsRepo.CountEntries(ctx)
	if err != nil {
		uc.logger.Error("Failed to count schedule entries", zap.Error(err))
		return nil, err
	}

	total := 0
	for _, n := range byCategory {
		total += n
	}

	stats := &dto.Statistics{
		Events:         events,
		TransportLegs:  legs,
		EntriesByType:  byCategory,
		PersistedTotal: total,
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := uc.cacheRepo.Set(ctx, statsCacheKey, data, time.Minute); err != nil {
			uc.logger.Warn("Failed to cache statistics", zap.Error(err))
		}
	}

	return stats, nil
}

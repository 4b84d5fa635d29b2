package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/domain/repository"
	"github.com/roadbook-microservice/internal/usecase"
	"github.com/roadbook-microservice/internal/worker"
	"go.uber.org/zap"
)

const retryBackoff = 500 * time.Millisecond

// RecomputeWorker consumes schedule-recompute events and refreshes the
// team-view schedule cache, so that API reads after a mutation hit a warm
// cache instead of recomputing inline.
type RecomputeWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	scheduleUC   *usecase.ScheduleUseCase
	consumerName string
	maxRetries   int
}

// NewRecomputeWorker - constructor for RecomputeWorker.
func NewRecomputeWorker(
	streamRepo repository.StreamRepository,
	scheduleUC *usecase.ScheduleUseCase,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *RecomputeWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &RecomputeWorker{
		BaseWorker:   worker.NewBaseWorker("schedule-recompute", consumerGroup, logger),
		streamRepo:   streamRepo,
		scheduleUC:   scheduleUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start runs the consume loop until stopped.
func (w *RecomputeWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RecomputeWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamScheduleRecompute, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamScheduleRecompute, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

func (w *RecomputeWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.ScheduleRecomputeEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse message, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		// Ack the broken message so it does not stay pending
		_ = w.streamRepo.AckMessage(ctx, domain.StreamScheduleRecompute, w.ConsumerGroup(), msg.ID)
		return
	}

	logger.Info("Recomputing schedule",
		zap.String("event_id", event.EventID.String()),
		zap.String("reason", event.Reason))

	var schedule *scheduleResult
	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		resp, err := w.scheduleUC.WarmCache(ctx, event.EventID)
		if err == nil {
			entryCount := 0
			for _, day := range resp.Days {
				entryCount += len(day.Entries)
			}
			schedule = &scheduleResult{dayCount: len(resp.Days), entryCount: entryCount}
			break
		}

		lastErr = err
		logger.Warn("Schedule recompute attempt failed",
			zap.String("event_id", event.EventID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err))
		time.Sleep(retryBackoff)
	}

	done := domain.ScheduleDoneEvent{EventID: event.EventID}
	if schedule != nil {
		done.DayCount = schedule.dayCount
		done.EntryCount = schedule.entryCount
	} else {
		done.Error = lastErr.Error()
		logger.Error("Schedule recompute failed after retries",
			zap.String("event_id", event.EventID.String()),
			zap.Int("max_retries", w.maxRetries),
			zap.Error(lastErr))
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamScheduleDone, done); err != nil {
		logger.Error("Failed to publish done event",
			zap.String("event_id", event.EventID.String()),
			zap.Error(err))
	}

	if err := w.streamRepo.AckMessage(ctx, domain.StreamScheduleRecompute, w.ConsumerGroup(), msg.ID); err != nil {
		logger.Error("Failed to ack message",
			zap.String("message_id", msg.ID),
			zap.Error(err))
	}
}

type scheduleResult struct {
	dayCount   int
	entryCount int
}

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/roadbook-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) GetSchedule(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	return r.Get(ctx, scheduleKey(eventID))
}

func (r *cacheRepository) SetSchedule(ctx context.Context, eventID uuid.UUID, data []byte, ttl time.Duration) error {
	return r.Set(ctx, scheduleKey(eventID), data, ttl)
}

func (r *cacheRepository) InvalidateSchedule(ctx context.Context, eventID uuid.UUID) error {
	return r.Delete(ctx, scheduleKey(eventID))
}

// AddExcludedEntry records a suppressed auto-generated entry id in the
// session set. The whole set expires with the session TTL, so suppressed
// entries reappear once the editing session is over.
func (r *cacheRepository) AddExcludedEntry(ctx context.Context, sessionID string, entryID string, ttl time.Duration) error {
	key := sessionExclusionKey(sessionID)

	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, key, entryID)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to add excluded entry",
			zap.String("session_id", sessionID),
			zap.String("entry_id", entryID),
			zap.Error(err))
		return fmt.Errorf("cache sadd error: %w", err)
	}

	return nil
}

func (r *cacheRepository) RemoveExcludedEntry(ctx context.Context, sessionID string, entryID string) error {
	err := r.client.SRem(ctx, sessionExclusionKey(sessionID), entryID).Err()
	if err != nil {
		r.logger.Error("Failed to remove excluded entry",
			zap.String("session_id", sessionID),
			zap.String("entry_id", entryID),
			zap.Error(err))
		return fmt.Errorf("cache srem error: %w", err)
	}
	return nil
}

func (r *cacheRepository) GetExcludedEntries(ctx context.Context, sessionID string) (map[string]bool, error) {
	members, err := r.client.SMembers(ctx, sessionExclusionKey(sessionID)).Result()
	if err != nil {
		r.logger.Error("Failed to get excluded entries",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, fmt.Errorf("cache smembers error: %w", err)
	}

	excluded := make(map[string]bool, len(members))
	for _, id := range members {
		excluded[id] = true
	}
	return excluded, nil
}

func scheduleKey(eventID uuid.UUID) string {
	return fmt.Sprintf("schedule:%s", eventID)
}

func sessionExclusionKey(sessionID string) string {
	return fmt.Sprintf("session:%s:excluded", sessionID)
}

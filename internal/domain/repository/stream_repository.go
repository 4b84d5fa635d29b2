package repository

import (
	"context"

	"github.com/roadbook-microservice/internal/domain"
)

// StreamRepository abstracts Redis Streams for recompute event traffic.
type StreamRepository interface {
	// CreateConsumerGroup creates the consumer group for a stream,
	// tolerating an already-existing group.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream reads messages from a stream as a consumer group
	// member until the context is cancelled.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// PublishToStream publishes a JSON-serialized payload to a stream.
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}

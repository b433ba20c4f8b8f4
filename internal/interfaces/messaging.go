package interfaces

import (
	"context"

	"github.com/YelzhanWeb/tableside/internal/domain"
)

// Transition notifications travel over RabbitMQ as domain.Transition JSON.
type MessagePublisher interface {
	PublishTransition(ctx context.Context, t domain.Transition) error
}

type MessageConsumer interface {
	ConsumeTransitions(ctx context.Context, handler NotificationHandler) error
}

type NotificationHandler func(ctx context.Context, body []byte) error

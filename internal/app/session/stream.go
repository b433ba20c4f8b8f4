package session

import (
	"context"
	"time"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
)

// SnapshotSource keeps one push subscription open and reconnects after every
// drop, forever, with a fixed delay.
type SnapshotSource struct {
	streamer interfaces.SnapshotStreamer
	delay    time.Duration
	logger   logger.Logger
}

func NewSnapshotSource(streamer interfaces.SnapshotStreamer, reconnectDelay time.Duration, logger logger.Logger) *SnapshotSource {
	return &SnapshotSource{
		streamer: streamer,
		delay:    reconnectDelay,
		logger:   logger,
	}
}

func (s *SnapshotSource) Name() Channel {
	return ChannelSnapshots
}

func (s *SnapshotSource) Run(ctx context.Context, emit func(Event)) error {
	for {
		err := s.streamer.StreamSnapshots(ctx, func(snap domain.Snapshot) {
			emit(SnapshotEvent(snap))
		})

		if ctx.Err() != nil {
			return ctx.Err()
		}

		details := map[string]interface{}{"retry_in_ms": s.delay.Milliseconds()}
		if err != nil {
			details["error"] = err.Error()
		}
		s.logger.Warn("sse_disconnected", "SSE disconnected. Retrying…", "", details)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.delay):
		}
	}
}

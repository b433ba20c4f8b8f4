package recorder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/app/session"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
)

// Service watches the order feed and records every status change it sees
// between consecutive snapshots.
type Service struct {
	name      string
	source    session.Source
	publisher interfaces.MessagePublisher
	journal   interfaces.TransitionRepository
	logger    logger.Logger
	now       func() time.Time

	mu   sync.Mutex
	prev domain.Snapshot
}

// NewService builds a recorder. publisher and journal are optional; a nil
// sink is skipped.
func NewService(
	name string,
	source session.Source,
	publisher interfaces.MessagePublisher,
	journal interfaces.TransitionRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		name:      name,
		source:    source,
		publisher: publisher,
		journal:   journal,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("recorder_started", fmt.Sprintf("Recorder %s watching the order feed", s.name), "", map[string]interface{}{
		"publish": s.publisher != nil,
		"journal": s.journal != nil,
	})

	err := s.source.Run(ctx, func(ev session.Event) {
		if ev.Channel == session.ChannelSnapshots {
			s.Observe(ctx, ev.Snapshot)
		}
	})
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Observe diffs snap against the previous snapshot and hands every
// transition to each sink. Sink failures are logged and do not stop the
// other sinks.
func (s *Service) Observe(ctx context.Context, snap domain.Snapshot) []domain.Transition {
	s.mu.Lock()
	transitions := domain.Diff(s.prev, snap, s.now())
	s.prev = snap.Clone()
	s.mu.Unlock()

	for i := range transitions {
		transitions[i].ObservedBy = s.name
		s.record(ctx, transitions[i])
	}
	return transitions
}

func (s *Service) record(ctx context.Context, t domain.Transition) {
	details := map[string]interface{}{
		"order_id":   t.OrderID,
		"old_status": t.OldStatus,
		"new_status": t.NewStatus,
	}
	s.logger.Debug("transition_observed", fmt.Sprintf("Order %d: %s -> %s", t.OrderID, displayStatus(t.OldStatus), t.NewStatus), "", details)

	if s.publisher != nil {
		if err := s.publisher.PublishTransition(ctx, t); err != nil {
			s.logger.Error("rabbitmq_publish_failed", "Failed to publish transition", "", details, err)
		}
	}
	if s.journal != nil {
		if err := s.journal.LogTransition(ctx, t); err != nil {
			s.logger.Error("db_query_failed", "Failed to journal transition", "", details, err)
		}
	}
}

func displayStatus(s domain.Status) string {
	if s == "" {
		return "new"
	}
	return string(s)
}

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
	"golang.org/x/sync/errgroup"
)

// Session owns the client-side cache of one console: the last snapshot, the
// orders with a status update in flight, the orders whose last update
// failed, and the current addition list.
//
// The renderer is called with the session lock held and must not call back
// into the session.
type Session struct {
	api      interfaces.OrderAPI
	renderer interfaces.Renderer
	alerter  interfaces.Alerter
	logger   logger.Logger

	mu          sync.Mutex
	snapshot    domain.Snapshot
	hasSnapshot bool
	pending     *Guard[int]
	failed      map[int]struct{}
	additions   []domain.Addition
	acking      *Guard[int]
}

func New(api interfaces.OrderAPI, renderer interfaces.Renderer, alerter interfaces.Alerter, logger logger.Logger) *Session {
	return &Session{
		api:      api,
		renderer: renderer,
		alerter:  alerter,
		logger:   logger,
		pending:  NewGuard[int](),
		failed:   make(map[int]struct{}),
		acking:   NewGuard[int](),
	}
}

// Run drives every source until ctx is done or one of them fails.
func (s *Session) Run(ctx context.Context, sources ...Source) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		src := src
		g.Go(func() error {
			s.logger.Debug("source_started", fmt.Sprintf("Source %s started", src.Name()), "", nil)
			return src.Run(gctx, s.Apply)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (s *Session) Apply(ev Event) {
	switch ev.Channel {
	case ChannelSnapshots:
		s.ApplySnapshot(ev.Snapshot)
	case ChannelAdditions:
		s.ApplyAdditions(ev.Additions)
	default:
		s.logger.Warn("unknown_channel", fmt.Sprintf("Dropping event on channel %q", ev.Channel), "", nil)
	}
}

// ApplySnapshot replaces the cached snapshot and drops every in-flight and
// failed marker: the server's state supersedes local bookkeeping.
func (s *Session) ApplySnapshot(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = snap.Clone()
	s.hasSnapshot = true
	s.pending.Clear()
	clear(s.failed)
	s.renderLocked()
}

func (s *Session) ApplyAdditions(list []domain.Addition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.additions = append([]domain.Addition(nil), list...)
	s.renderLocked()
}

// Advance requests the transition of orderID to target. A second call for
// the same order while the first is outstanding sends nothing and returns
// ErrUpdateInFlight. A successful update stays marked until the next snapshot.
func (s *Session) Advance(ctx context.Context, orderID int, target domain.Status) error {
	s.mu.Lock()
	token, ok := s.pending.TryAcquire(orderID)
	if !ok {
		s.mu.Unlock()
		return domain.ErrUpdateInFlight
	}
	delete(s.failed, orderID)
	s.renderLocked()
	s.mu.Unlock()

	err := s.api.UpdateOrderStatus(ctx, orderID, target)
	if err == nil {
		s.logger.Debug("status_update_sent", fmt.Sprintf("Order %d -> %s accepted", orderID, target), "", map[string]interface{}{
			"order_id": orderID,
			"status":   target,
		})
		return nil
	}

	s.mu.Lock()
	// a newer request for the order keeps its marker and owns the outcome
	if s.pending.Release(orderID, token) || !s.pending.Has(orderID) {
		s.failed[orderID] = struct{}{}
	}
	s.renderLocked()
	s.mu.Unlock()

	s.logger.Error("status_update_failed", "Failed to update order", "", map[string]interface{}{
		"order_id": orderID,
		"status":   target,
	}, err)
	s.alert("Failed to update order")
	return fmt.Errorf("failed to update order %d: %w", orderID, err)
}

// AdvanceNext moves orderID one step along the progression from its cached status.
func (s *Session) AdvanceNext(ctx context.Context, orderID int) error {
	s.mu.Lock()
	order, ok := s.snapshot.Find(orderID)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("order %d: %w", orderID, domain.ErrOrderNotFound)
	}
	if order.Status.IsTerminal() {
		return fmt.Errorf("order %d: %w", orderID, domain.ErrTerminalStatus)
	}
	return s.Advance(ctx, orderID, order.Status.Next())
}

// Acknowledge marks an addition as Preparing and re-polls the list.
// Acknowledgments share the order guard's at-most-one-in-flight rule.
func (s *Session) Acknowledge(ctx context.Context, additionID int) error {
	s.mu.Lock()
	token, ok := s.acking.TryAcquire(additionID)
	if !ok {
		s.mu.Unlock()
		return domain.ErrUpdateInFlight
	}
	s.renderLocked()
	s.mu.Unlock()

	err := s.api.UpdateAdditionStatus(ctx, additionID, domain.AdditionPreparing)

	s.mu.Lock()
	s.acking.Release(additionID, token)
	if err != nil {
		s.renderLocked()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("addition_ack_failed", "Failed to acknowledge addition", "", map[string]interface{}{
			"addition_id": additionID,
		}, err)
		s.alert("Failed to acknowledge addition")
		return fmt.Errorf("failed to acknowledge addition %d: %w", additionID, err)
	}

	return s.RefreshAdditions(ctx)
}

// RefreshAdditions polls the additions list once, outside the poller's schedule.
func (s *Session) RefreshAdditions(ctx context.Context) error {
	list, err := s.api.ListAdditions(ctx)
	if err != nil {
		s.logger.Error("additions_poll_failed", "Failed to fetch additions", "", nil, err)
		return fmt.Errorf("failed to fetch additions: %w", err)
	}
	s.ApplyAdditions(list)
	return nil
}

func (s *Session) InFlight(orderID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Has(orderID)
}

func (s *Session) State() interfaces.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() interfaces.SessionState {
	failed := make(map[int]bool, len(s.failed))
	for id := range s.failed {
		failed[id] = true
	}
	return interfaces.SessionState{
		Snapshot:    s.snapshot.Clone(),
		HasSnapshot: s.hasSnapshot,
		Pending:     s.pending.Snapshot(),
		Failed:      failed,
		Additions:   append([]domain.Addition(nil), s.additions...),
		Acking:      s.acking.Snapshot(),
	}
}

func (s *Session) renderLocked() {
	if s.renderer == nil {
		return
	}
	s.renderer.Render(s.stateLocked())
}

func (s *Session) alert(msg string) {
	if s.alerter != nil {
		s.alerter.Alert(msg)
	}
}

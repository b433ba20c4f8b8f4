package recorder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/app/session"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sink struct {
	mu  sync.Mutex
	got []domain.Transition
	err error
}

func (s *sink) PublishTransition(ctx context.Context, t domain.Transition) error {
	return s.add(t)
}

func (s *sink) LogTransition(ctx context.Context, t domain.Transition) error {
	return s.add(t)
}

func (s *sink) GetStatusHistory(ctx context.Context, orderID int) ([]domain.Transition, error) {
	return nil, nil
}

func (s *sink) add(t domain.Transition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, t)
	return s.err
}

func (s *sink) all() []domain.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Transition(nil), s.got...)
}

// scriptedSource emits a fixed list of snapshots and then waits for ctx.
type scriptedSource struct {
	snaps []domain.Snapshot
}

func (s scriptedSource) Name() session.Channel { return session.ChannelSnapshots }

func (s scriptedSource) Run(ctx context.Context, emit func(session.Event)) error {
	for _, snap := range s.snaps {
		emit(session.SnapshotEvent(snap))
	}
	emit(session.AdditionsEvent(nil))
	<-ctx.Done()
	return ctx.Err()
}

func snapshot(statuses map[int]domain.Status) domain.Snapshot {
	var snap domain.Snapshot
	for id := 1; id <= 10; id++ {
		if st, ok := statuses[id]; ok {
			snap.Orders = append(snap.Orders, domain.Order{ID: id, TableNo: id + 10, Status: st})
		}
	}
	return snap
}

var fixedNow = time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)

func TestObserveFansOutTransitions(t *testing.T) {
	pub, journal := &sink{}, &sink{}
	svc := NewService("rec-1", nil, pub, journal, logger.Nop())
	svc.now = func() time.Time { return fixedNow }
	ctx := context.Background()

	first := svc.Observe(ctx, snapshot(map[int]domain.Status{5: domain.StatusReceived}))
	require.Len(t, first, 1)
	assert.Equal(t, domain.Status(""), first[0].OldStatus)

	assert.Empty(t, svc.Observe(ctx, snapshot(map[int]domain.Status{5: domain.StatusReceived})))

	got := svc.Observe(ctx, snapshot(map[int]domain.Status{5: domain.StatusPreparing, 6: domain.StatusReceived}))
	require.Len(t, got, 2)
	assert.Equal(t, domain.Transition{
		OrderID:    5,
		TableNo:    15,
		OldStatus:  domain.StatusReceived,
		NewStatus:  domain.StatusPreparing,
		ObservedBy: "rec-1",
		ObservedAt: fixedNow,
	}, got[0])

	assert.Len(t, pub.all(), 3)
	assert.Equal(t, pub.all(), journal.all())
}

func TestSinkFailureDoesNotStopOthers(t *testing.T) {
	pub := &sink{err: errors.New("channel closed")}
	journal := &sink{}
	svc := NewService("rec-1", nil, pub, journal, logger.Nop())

	svc.Observe(context.Background(), snapshot(map[int]domain.Status{1: domain.StatusReady, 2: domain.StatusServed}))
	assert.Len(t, pub.all(), 2)
	assert.Len(t, journal.all(), 2)
}

func TestObserveWithoutSinks(t *testing.T) {
	svc := NewService("rec-1", nil, nil, nil, logger.Nop())
	got := svc.Observe(context.Background(), snapshot(map[int]domain.Status{1: domain.StatusReady}))
	assert.Len(t, got, 1)
}

func TestStartConsumesSnapshotChannel(t *testing.T) {
	journal := &sink{}
	src := scriptedSource{snaps: []domain.Snapshot{
		snapshot(map[int]domain.Status{3: domain.StatusReceived}),
		snapshot(map[int]domain.Status{3: domain.StatusReady}),
	}}
	svc := NewService("rec-1", src, nil, journal, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	require.Eventually(t, func() bool { return len(journal.all()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)

	got := journal.all()
	assert.Equal(t, domain.StatusReceived, got[1].OldStatus)
	assert.Equal(t, domain.StatusReady, got[1].NewStatus)
}

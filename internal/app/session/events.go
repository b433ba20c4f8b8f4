package session

import (
	"context"

	"github.com/YelzhanWeb/tableside/internal/domain"
)

// Channel names the stream an Event arrived on.
type Channel string

const (
	ChannelSnapshots Channel = "snapshots"
	ChannelAdditions Channel = "additions"
)

type Event struct {
	Channel   Channel
	Snapshot  domain.Snapshot
	Additions []domain.Addition
}

func SnapshotEvent(s domain.Snapshot) Event {
	return Event{Channel: ChannelSnapshots, Snapshot: s}
}

func AdditionsEvent(list []domain.Addition) Event {
	return Event{Channel: ChannelAdditions, Additions: list}
}

// Source produces events until ctx is done. Pushed and polled feeds both
// implement it.
type Source interface {
	Name() Channel
	Run(ctx context.Context, emit func(Event)) error
}

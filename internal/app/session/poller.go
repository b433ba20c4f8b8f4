package session

import (
	"context"
	"time"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
)

// AdditionPoller fetches unacknowledged additions on a fixed interval. Each
// result fully replaces the previous list.
type AdditionPoller struct {
	api      interfaces.OrderAPI
	interval time.Duration
	logger   logger.Logger
}

func NewAdditionPoller(api interfaces.OrderAPI, interval time.Duration, logger logger.Logger) *AdditionPoller {
	return &AdditionPoller{
		api:      api,
		interval: interval,
		logger:   logger,
	}
}

func (p *AdditionPoller) Name() Channel {
	return ChannelAdditions
}

func (p *AdditionPoller) Run(ctx context.Context, emit func(Event)) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx, emit)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx, emit)
		}
	}
}

func (p *AdditionPoller) poll(ctx context.Context, emit func(Event)) {
	list, err := p.api.ListAdditions(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("additions_poll_failed", "Failed to fetch additions", "", nil, err)
		}
		return
	}
	emit(AdditionsEvent(list))
}

package kitchen

import (
	"context"
	"fmt"
	"time"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/app/session"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
)

// Service is the kitchen console: the board of active orders fed by the
// order stream and the addition list fed by polling.
type Service struct {
	session *session.Session
	sources []session.Source
	logger  logger.Logger
}

var _ interfaces.KitchenConsole = (*Service)(nil)

func NewService(
	sess *session.Session,
	streamer interfaces.SnapshotStreamer,
	api interfaces.OrderAPI,
	reconnectDelay time.Duration,
	pollInterval time.Duration,
	logger logger.Logger,
) *Service {
	return &Service{
		session: sess,
		sources: []session.Source{
			session.NewSnapshotSource(streamer, reconnectDelay, logger),
			session.NewAdditionPoller(api, pollInterval, logger),
		},
		logger: logger,
	}
}

// Start runs the board until ctx is done.
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("kitchen_started", fmt.Sprintf("Kitchen console started with %d sources", len(s.sources)), "", nil)
	return s.session.Run(ctx, s.sources...)
}

func (s *Service) State() interfaces.SessionState {
	return s.session.State()
}

// Advance moves an order to the next step of Received, Preparing, Ready, Served.
func (s *Service) Advance(ctx context.Context, orderID int) error {
	return s.session.AdvanceNext(ctx, orderID)
}

// Acknowledge marks an addition as being prepared.
func (s *Service) Acknowledge(ctx context.Context, additionID int) error {
	return s.session.Acknowledge(ctx, additionID)
}

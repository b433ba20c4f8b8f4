package tracking

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
)

// Service answers questions about recorded transitions.
type Service struct {
	journal interfaces.TransitionRepository
	logger  logger.Logger
}

func NewService(journal interfaces.TransitionRepository, logger logger.Logger) *Service {
	return &Service{
		journal: journal,
		logger:  logger,
	}
}

// GetOrderHistory returns the recorded transitions of one order, oldest first.
func (s *Service) GetOrderHistory(ctx context.Context, orderID int) ([]domain.Transition, error) {
	if orderID < 1 {
		return nil, fmt.Errorf("%w: order id must be positive", domain.ErrOrderNotFound)
	}
	history, err := s.journal.GetStatusHistory(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history of order %d: %w", orderID, err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("order %d: %w", orderID, domain.ErrOrderNotFound)
	}
	s.logger.Debug("history_loaded", fmt.Sprintf("Loaded %d transitions for order %d", len(history), orderID), "", nil)
	return history, nil
}

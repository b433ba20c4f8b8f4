package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type journal struct {
	rows map[int][]domain.Transition
	err  error
}

func (j journal) LogTransition(ctx context.Context, t domain.Transition) error { return nil }

func (j journal) GetStatusHistory(ctx context.Context, orderID int) ([]domain.Transition, error) {
	return j.rows[orderID], j.err
}

func TestGetOrderHistory(t *testing.T) {
	rows := []domain.Transition{
		{OrderID: 5, NewStatus: domain.StatusReceived},
		{OrderID: 5, OldStatus: domain.StatusReceived, NewStatus: domain.StatusPreparing},
	}
	svc := NewService(journal{rows: map[int][]domain.Transition{5: rows}}, logger.Nop())

	got, err := svc.GetOrderHistory(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	_, err = svc.GetOrderHistory(context.Background(), 6)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	_, err = svc.GetOrderHistory(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestGetOrderHistoryWrapsStoreErrors(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(journal{err: boom}, logger.Nop())
	_, err := svc.GetOrderHistory(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

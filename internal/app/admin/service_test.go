package admin

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/YelzhanWeb/tableside/internal/adapter/backend"
	httpadapter "github.com/YelzhanWeb/tableside/internal/adapter/http"
	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/adapter/memory"
	"github.com/YelzhanWeb/tableside/internal/app/devserver"
	"github.com/YelzhanWeb/tableside/internal/app/session"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alerts struct {
	mu   sync.Mutex
	msgs []string
}

func (a *alerts) Alert(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.msgs = append(a.msgs, msg)
}

func (a *alerts) all() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.msgs...)
}

type nopRenderer struct{}

func (nopRenderer) Render(interfaces.SessionState) {}

type fixture struct {
	svc     *Service
	backend *devserver.Service
	client  *backend.Client
	alerts  *alerts
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	now := time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := memory.NewStore(clock)
	dev := devserver.NewService(store, store, logger.Nop(), clock)
	require.NoError(t, dev.Seed(context.Background()))

	srv := httptest.NewServer(httpadapter.NewRouter(dev, dev, 10*time.Millisecond, logger.Nop()))
	t.Cleanup(srv.Close)

	client := backend.NewClient(srv.URL, time.Second, logger.Nop())
	a := &alerts{}
	sess := session.New(client, nopRenderer{}, a, logger.Nop())
	return fixture{
		svc:     NewService(sess, client, client, a, logger.Nop()),
		backend: dev,
		client:  client,
		alerts:  a,
	}
}

func TestOpenAddItemOffersAvailableOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.backend.ToggleMenuItem(ctx, 1))

	c, err := f.svc.OpenAddItem(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, c.OrderID)
	assert.Len(t, c.Menu, 4)
	for _, it := range c.Menu {
		assert.NotEqual(t, 1, it.ID)
		assert.True(t, bool(it.Available))
	}

	open, ok := f.svc.Composition()
	require.True(t, ok)
	assert.Equal(t, c, open)
}

func TestConfirmAddItemValidatesLocally(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.ConfirmAddItem(ctx, 2, 1), domain.ErrNoComposition)

	require.NoError(t, f.backend.ToggleMenuItem(ctx, 1))
	_, err := f.svc.OpenAddItem(ctx, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.ConfirmAddItem(ctx, 0, 1), domain.ErrNothingSelected)
	assert.ErrorIs(t, f.svc.ConfirmAddItem(ctx, 1, 1), domain.ErrInvalidItem)
	assert.ErrorIs(t, f.svc.ConfirmAddItem(ctx, 2, 0), domain.ErrInvalidItem)

	list, err := f.client.ListAdditions(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, open := f.svc.Composition()
	assert.True(t, open)
	assert.Empty(t, f.alerts.all())
}

func TestConfirmAddItemSendsAndCloses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.OpenAddItem(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, f.svc.ConfirmAddItem(ctx, 2, 3))

	_, open := f.svc.Composition()
	assert.False(t, open)

	list, err := f.client.ListAdditions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].OrderID)
	assert.Equal(t, 3, list[0].Quantity)
}

func TestConfirmAddItemBackendFailureKeepsComposition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.OpenAddItem(ctx, 2)
	require.NoError(t, err)
	// the backend now rejects the item that was on offer when the dialog opened
	require.NoError(t, f.backend.ToggleMenuItem(ctx, 2))

	err = f.svc.ConfirmAddItem(ctx, 2, 1)
	var statusErr *domain.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 400, statusErr.Code)

	_, open := f.svc.Composition()
	assert.True(t, open)
	assert.Equal(t, []string{"Failed to add item"}, f.alerts.all())

	f.svc.CancelAddItem()
	_, open = f.svc.Composition()
	assert.False(t, open)
}

func TestHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.History(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNoDate)

	h, err := f.svc.History(ctx, "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, 2, h.Count)
	assert.True(t, h.Revenue.IsZero())
}

func TestSetStatusGoesThroughGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.SetStatus(ctx, 1, "Cooking"), domain.ErrInvalidStatus)
	require.NoError(t, f.svc.SetStatus(ctx, 1, "Ready"))
	assert.True(t, f.svc.State().Pending[1])
	assert.ErrorIs(t, f.svc.SetStatus(ctx, 1, "Served"), domain.ErrUpdateInFlight)

	snap, err := f.backend.Snapshot(ctx)
	require.NoError(t, err)
	got, ok := snap.Find(1)
	require.True(t, ok)
	assert.Equal(t, domain.StatusReady, got.Status)
}

func TestBill(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Bill(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, b.TableNo)
	assert.Len(t, b.Items, 2)
	assert.Equal(t, "400", b.Subtotal.String())
	assert.Equal(t, "20", b.GST.String())
	assert.Equal(t, "420", b.Total.String())
	assert.Empty(t, f.alerts.all())

	_, err = f.svc.Bill(ctx, 99)
	var statusErr *domain.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 404, statusErr.Code)
	assert.Equal(t, []string{"Failed to load bill"}, f.alerts.all())
}

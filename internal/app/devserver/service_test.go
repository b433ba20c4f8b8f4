package devserver

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/adapter/memory"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	clock := func() time.Time { return testNow }
	store := memory.NewStore(clock)
	return NewService(store, store, logger.Nop(), clock)
}

func TestPlaceOrderComputesTotal(t *testing.T) {
	svc := newTestService(t)
	order, err := svc.PlaceOrder(context.Background(), interfaces.PlaceOrderCommand{TableNo: 4, Items: []interfaces.PlaceOrderItemCommand{
		{Name: "Naan", Price: decimal.NewFromInt(30), Quantity: 2},
		{Name: "Lassi", Price: decimal.NewFromInt(50), Quantity: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReceived, order.Status)
	assert.Equal(t, "110", order.Total.String())

	_, err = svc.PlaceOrder(context.Background(), interfaces.PlaceOrderCommand{})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)
	_, err = svc.PlaceOrder(context.Background(), interfaces.PlaceOrderCommand{TableNo: 1, Items: []interfaces.PlaceOrderItemCommand{{Name: "Tea", Quantity: 0}}})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)
}

func TestUpdateStatusRules(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	order, err := svc.PlaceOrder(ctx, interfaces.PlaceOrderCommand{TableNo: 1, Items: []interfaces.PlaceOrderItemCommand{{Name: "Tea", Price: decimal.NewFromInt(10), Quantity: 1}}})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, order.ID, "Received")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = svc.UpdateStatus(ctx, order.ID, "Cooking")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	updated, err := svc.UpdateStatus(ctx, order.ID, "Ready")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, updated.Status)

	_, err = svc.UpdateStatus(ctx, order.ID, "Preparing")
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	_, err = svc.UpdateStatus(ctx, 999, "Served")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestAddItemRecordsAddition(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	coke, err := svc.AddMenuItem(ctx, "Coke", decimal.NewFromInt(40), "Beverages", "uploads/coke.png")
	require.NoError(t, err)
	order, err := svc.PlaceOrder(ctx, interfaces.PlaceOrderCommand{TableNo: 3, Items: []interfaces.PlaceOrderItemCommand{{Name: "Tea", Price: decimal.NewFromInt(10), Quantity: 1}}})
	require.NoError(t, err)

	addition, err := svc.AddItem(ctx, order.ID, coke.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, addition.TableNo)
	assert.Equal(t, "Coke", addition.ItemName)
	assert.Equal(t, domain.AdditionNew, addition.Status)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Orders, 1)
	assert.Len(t, snap.Orders[0].Items, 2)
	assert.Equal(t, "90", snap.Orders[0].Total.String())

	pending, err := svc.PendingAdditions(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, svc.UpdateAdditionStatus(ctx, addition.ID, "Preparing"))
	pending, _ = svc.PendingAdditions(ctx)
	assert.Empty(t, pending)

	assert.ErrorIs(t, svc.UpdateAdditionStatus(ctx, addition.ID, "Eaten"), domain.ErrInvalidStatus)
}

func TestAddItemRejectsUnavailable(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	item, err := svc.AddMenuItem(ctx, "Dosa", decimal.NewFromInt(80), "Dosa", "uploads/dosa.png")
	require.NoError(t, err)
	require.NoError(t, svc.ToggleMenuItem(ctx, item.ID))
	order, _ := svc.PlaceOrder(ctx, interfaces.PlaceOrderCommand{TableNo: 1, Items: []interfaces.PlaceOrderItemCommand{{Name: "Tea", Quantity: 1}}})

	_, err = svc.AddItem(ctx, order.ID, item.ID, 1)
	assert.ErrorIs(t, err, domain.ErrItemUnavailable)
	_, err = svc.AddItem(ctx, order.ID, item.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidItem)
	_, err = svc.AddItem(ctx, order.ID, 404, 1)
	assert.ErrorIs(t, err, domain.ErrMenuItemNotFound)
}

func TestConcurrentAddItemAndStatusKeepEveryWrite(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	coke, err := svc.AddMenuItem(ctx, "Coke", decimal.NewFromInt(40), "Beverages", "uploads/coke.png")
	require.NoError(t, err)

	for round := 0; round < 20; round++ {
		order, err := svc.PlaceOrder(ctx, interfaces.PlaceOrderCommand{TableNo: 2, Items: []interfaces.PlaceOrderItemCommand{{Name: "Tea", Price: decimal.NewFromInt(10), Quantity: 1}}})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.AddItem(ctx, order.ID, coke.ID, 1)
				assert.NoError(t, err)
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.UpdateStatus(ctx, order.ID, "Preparing")
			assert.NoError(t, err)
		}()
		wg.Wait()

		bill, err := svc.Bill(ctx, order.ID)
		require.NoError(t, err)
		assert.Len(t, bill.Items, 9)
		assert.Equal(t, domain.StatusPreparing, bill.Status)
		assert.Equal(t, "330", bill.Subtotal.String())
	}
}

func TestBill(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	order, err := svc.PlaceOrder(ctx, interfaces.PlaceOrderCommand{TableNo: 6, Items: []interfaces.PlaceOrderItemCommand{
		{Name: "Biryani", Price: decimal.NewFromInt(180), Quantity: 2},
		{Name: "Raita", Price: decimal.RequireFromString("35.50"), Quantity: 1},
	}})
	require.NoError(t, err)

	bill, err := svc.Bill(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, bill.OrderID)
	assert.Equal(t, 6, bill.TableNo)
	assert.Equal(t, "395.5", bill.Subtotal.String())
	assert.Equal(t, "19.78", bill.GST.String())
	assert.Equal(t, "415.28", bill.Total.String())

	_, err = svc.Bill(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestRevenueCountsServedOrdersOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a, _ := svc.PlaceOrder(ctx, interfaces.PlaceOrderCommand{TableNo: 1, Items: []interfaces.PlaceOrderItemCommand{{Name: "Thali", Price: decimal.NewFromInt(200), Quantity: 1}}})
	_, _ = svc.PlaceOrder(ctx, interfaces.PlaceOrderCommand{TableNo: 2, Items: []interfaces.PlaceOrderItemCommand{{Name: "Tea", Price: decimal.NewFromInt(20), Quantity: 1}}})
	_, err := svc.UpdateStatus(ctx, a.ID, "Served")
	require.NoError(t, err)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Orders, 2)
	assert.Equal(t, "200", snap.TodayRevenue.String())

	h, err := svc.History(ctx, "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, 2, h.Count)
	assert.Equal(t, "200", h.Revenue.String())

	h, err = svc.History(ctx, "2026-10-18")
	require.NoError(t, err)
	assert.Zero(t, h.Count)

	_, err = svc.History(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNoDate)
	_, err = svc.History(ctx, "yesterday")
	assert.ErrorIs(t, err, domain.ErrNoDate)
}

func TestMenuManagement(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.AddMenuItem(ctx, "Idli", decimal.NewFromInt(50), "Breakfast", "")
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	n, err := svc.ImportTemplate(ctx, "gujarati")
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = svc.ImportTemplate(ctx, "klingon")
	assert.ErrorIs(t, err, domain.ErrUnknownTemplate)

	menu, err := svc.ListMenu(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 6)

	target := menu[0]
	require.NoError(t, svc.UpdateMenuItem(ctx, interfaces.UpdateMenuItemCommand{ID: target.ID, Name: "Special Thali", Price: decimal.NewFromInt(250), Category: "Main Course"}))
	menu, _ = svc.ListMenu(ctx)
	assert.Equal(t, "Special Thali", menu[0].Name)
	assert.False(t, bool(menu[0].Available))

	require.NoError(t, svc.DeleteMenuItem(ctx, target.ID))
	menu, _ = svc.ListMenu(ctx)
	assert.Len(t, menu, 5)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	require.NoError(t, svc.Seed(ctx))

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Orders, 2)
	assert.Equal(t, 2, snap.PendingCount())
}

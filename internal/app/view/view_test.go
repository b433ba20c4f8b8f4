package view

import (
	"testing"

	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id, table int, status domain.Status, items ...domain.OrderItem) domain.Order {
	o := domain.Order{ID: id, TableNo: table, Status: status, Items: items}
	o.CalculateTotal()
	return o
}

func item(qty int, name string, price int64) domain.OrderItem {
	return domain.OrderItem{Name: name, Quantity: qty, Price: decimal.NewFromInt(price)}
}

func testState() interfaces.SessionState {
	return interfaces.SessionState{
		HasSnapshot: true,
		Snapshot: domain.Snapshot{
			Orders: []domain.Order{
				order(5, 3, domain.StatusReceived, item(2, "Coke", 40), item(1, "Tea", 20)),
				order(6, 1, domain.StatusPreparing, item(1, "Naan", 30)),
				order(7, 2, domain.StatusServed, item(1, "Lassi", 50)),
			},
			TodayRevenue: decimal.NewFromInt(50),
		},
		Pending: map[int]bool{6: true},
		Failed:  map[int]bool{5: true},
	}
}

func TestAdminView(t *testing.T) {
	v := Admin(testState())

	assert.True(t, v.Ready)
	assert.Equal(t, 3, v.OrderCount)
	assert.Equal(t, 2, v.PendingCount)
	assert.Equal(t, "₹50.00", v.Revenue)
	require.Len(t, v.Rows, 3)

	first := v.Rows[0]
	assert.Equal(t, "2× Coke, 1× Tea", first.Items)
	assert.Equal(t, "₹100.00", first.Total)
	assert.Equal(t, "Mark as Preparing", first.Action)
	assert.True(t, first.ActionEnabled)
	assert.True(t, first.Failed)
	assert.Equal(t, domain.StyleInfo, first.Style)

	assert.Equal(t, LabelUpdating, v.Rows[1].Action)
	assert.False(t, v.Rows[1].ActionEnabled)

	assert.Empty(t, v.Rows[2].Action)
	assert.False(t, v.Rows[2].ActionEnabled)
	assert.Equal(t, domain.StyleMuted, v.Rows[2].Style)
}

func TestKitchenViewShowsActiveOrdersOnly(t *testing.T) {
	v := Kitchen(testState())

	require.Len(t, v.Cards, 2)
	assert.Empty(t, v.Placeholder)

	card := v.Cards[0]
	assert.Equal(t, "TABLE 3", card.Title)
	assert.Equal(t, "ORDER #5", card.Subtitle)
	assert.Equal(t, []string{"2 × Coke", "1 × Tea"}, card.Items)
	assert.Equal(t, "Mark as Preparing", card.Action)
	assert.True(t, card.Failed)

	assert.Equal(t, LabelUpdating, v.Cards[1].Action)
	assert.False(t, v.Cards[1].ActionEnabled)
}

func TestKitchenPlaceholder(t *testing.T) {
	v := Kitchen(interfaces.SessionState{})
	assert.Equal(t, WaitingForFeed, v.Placeholder)

	v = Kitchen(interfaces.SessionState{
		HasSnapshot: true,
		Snapshot:    domain.Snapshot{Orders: []domain.Order{order(1, 1, domain.StatusServed)}},
	})
	assert.Empty(t, v.Cards)
	assert.Equal(t, NoActiveOrders, v.Placeholder)
}

func TestAdditionCard(t *testing.T) {
	list := []domain.Addition{{ID: 1, TableNo: 3, Quantity: 2, ItemName: "Coke"}}

	cards := Additions(list, nil)
	require.Len(t, cards, 1)
	assert.Equal(t, 3, cards[0].TableNo)
	assert.Equal(t, "TABLE 3", cards[0].Title)
	assert.Equal(t, "2 × Coke", cards[0].Line)
	assert.Equal(t, "Mark as Preparing", cards[0].Action)

	cards = Additions(list, map[int]bool{1: true})
	assert.Equal(t, LabelUpdating, cards[0].Action)
	assert.False(t, cards[0].ActionEnabled)

	assert.Empty(t, Additions(nil, nil))
}

func TestRenderIsPure(t *testing.T) {
	state := testState()
	assert.Equal(t, Admin(state), Admin(state))
	assert.Equal(t, Kitchen(state), Kitchen(state))
}

func TestHistoryView(t *testing.T) {
	h := domain.History{
		Count:   1,
		Revenue: decimal.RequireFromString("136.5"),
		Orders:  []domain.Order{order(9, 4, domain.StatusServed, item(3, "Dosa", 45))},
	}
	v := History("2026-10-18", h)
	assert.Equal(t, "₹136.50", v.Revenue)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "3× Dosa", v.Rows[0].Items)
	assert.Empty(t, v.Rows[0].Action)
}

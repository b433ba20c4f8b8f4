package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotDecodesItemsText(t *testing.T) {
	payload := `{"orders":[{"id":5,"restaurant_id":1,"table_no":3,
		"items":"[{\"id\":1,\"name\":\"Coke\",\"price\":40,\"qty\":2}]",
		"total":80,"status":"Received","created_at":"2026-10-19 12:30:00"}],
		"today_revenue":120.5}`

	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(payload), &snap))
	require.Len(t, snap.Orders, 1)

	o := snap.Orders[0]
	assert.Equal(t, 5, o.ID)
	assert.Equal(t, 3, o.TableNo)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Coke", o.Items[0].Name)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, StatusReceived, o.Status)
	assert.Equal(t, time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC), o.CreatedAt.Time)
	assert.True(t, snap.TodayRevenue.Equal(decimal.RequireFromString("120.5")))
}

func TestSnapshotDecodesItemsArray(t *testing.T) {
	payload := `{"orders":[{"id":1,"table_no":2,"items":[{"name":"Tea","qty":1,"price":15}],"total":15,"status":"Ready"}],"today_revenue":0}`

	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(payload), &snap))
	require.Len(t, snap.Orders[0].Items, 1)
	assert.Equal(t, "Tea", snap.Orders[0].Items[0].Name)
	assert.True(t, snap.Orders[0].CreatedAt.IsZero())
}

func TestItemsRejectsGarbage(t *testing.T) {
	var items Items
	assert.Error(t, json.Unmarshal([]byte(`"not json"`), &items))
	require.NoError(t, json.Unmarshal([]byte(`""`), &items))
	assert.Empty(t, items)
}

func TestOrderCalculateTotal(t *testing.T) {
	o := Order{Items: Items{
		{Name: "Naan", Quantity: 3, Price: decimal.RequireFromString("25.50")},
		{Name: "Lassi", Quantity: 1, Price: decimal.NewFromInt(60)},
	}}
	o.CalculateTotal()
	assert.Equal(t, "136.5", o.Total.String())
}

func TestSnapshotActiveAndPending(t *testing.T) {
	snap := Snapshot{Orders: []Order{
		{ID: 1, Status: StatusServed},
		{ID: 2, Status: StatusReceived},
		{ID: 3, Status: StatusReady},
	}}
	active := snap.Active()
	require.Len(t, active, 2)
	assert.Equal(t, 2, active[0].ID)
	assert.Equal(t, 3, active[1].ID)
	assert.Equal(t, 2, snap.PendingCount())

	_, ok := snap.Find(3)
	assert.True(t, ok)
	_, ok = snap.Find(9)
	assert.False(t, ok)
}

func TestAmountsMarshalAsNumbers(t *testing.T) {
	b, err := json.Marshal(Snapshot{TodayRevenue: decimal.RequireFromString("99.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"orders":null,"today_revenue":99.5}`, string(b))
}

func TestMenuFlagDecodesIntegers(t *testing.T) {
	var items []MenuItem
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"available":1},{"id":2,"available":0},{"id":3,"available":true}]`), &items))
	assert.True(t, bool(items[0].Available))
	assert.False(t, bool(items[1].Available))
	assert.True(t, bool(items[2].Available))
}

func TestLookupMenuTemplate(t *testing.T) {
	tpl, err := LookupMenuTemplate("chinese")
	require.NoError(t, err)
	assert.Len(t, tpl.Items, 5)
	assert.Equal(t, "Veg Fried Rice", tpl.Items[0].Name)

	_, err = LookupMenuTemplate("martian")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestDiff(t *testing.T) {
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	prev := Snapshot{Orders: []Order{
		{ID: 1, TableNo: 4, Status: StatusReceived},
		{ID: 2, TableNo: 7, Status: StatusReady},
	}}
	next := Snapshot{Orders: []Order{
		{ID: 1, TableNo: 4, Status: StatusPreparing},
		{ID: 2, TableNo: 7, Status: StatusReady},
		{ID: 3, TableNo: 1, Status: StatusReceived},
	}}

	got := Diff(prev, next, at)
	require.Len(t, got, 2)
	assert.Equal(t, Transition{OrderID: 1, TableNo: 4, OldStatus: StatusReceived, NewStatus: StatusPreparing, ObservedAt: at}, got[0])
	assert.Equal(t, Transition{OrderID: 3, TableNo: 1, OldStatus: "", NewStatus: StatusReceived, ObservedAt: at}, got[1])

	assert.Empty(t, Diff(next, next, at))
}

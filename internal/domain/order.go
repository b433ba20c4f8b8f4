package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}

// Order is the client's cached copy of a backend order.
type Order struct {
	ID        int             `json:"id"`
	TableNo   int             `json:"table_no"`
	Items     Items           `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    Status          `json:"status"`
	CreatedAt Timestamp       `json:"created_at"`
}

// OrderItem is one line of an order. Price is the unit price.
type OrderItem struct {
	ID       int             `json:"id,omitempty"`
	Name     string          `json:"name"`
	Quantity int             `json:"qty"`
	Price    decimal.Decimal `json:"price"`
}

// Items decodes either a JSON array or a string holding a JSON array;
// the order feed stores items as serialized text.
type Items []OrderItem

func (it *Items) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to decode items text: %w", err)
		}
		data = []byte(strings.TrimSpace(raw))
		if len(data) == 0 {
			*it = nil
			return nil
		}
	}

	var list []OrderItem
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("failed to decode items: %w", err)
	}
	*it = list
	return nil
}

// IsActive reports whether the kitchen still has work on the order.
func (o Order) IsActive() bool {
	return !o.Status.IsTerminal()
}

// CalculateTotal recomputes Total from the item lines.
func (o *Order) CalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	o.Total = total
}

// Snapshot is a full, authoritative restatement of today's orders.
type Snapshot struct {
	Orders       []Order         `json:"orders"`
	TodayRevenue decimal.Decimal `json:"today_revenue"`
}

// Active returns the orders that are not yet served, in feed order.
func (s Snapshot) Active() []Order {
	active := make([]Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if o.IsActive() {
			active = append(active, o)
		}
	}
	return active
}

func (s Snapshot) PendingCount() int {
	n := 0
	for _, o := range s.Orders {
		if o.IsActive() {
			n++
		}
	}
	return n
}

func (s Snapshot) Find(id int) (Order, bool) {
	for _, o := range s.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// Clone copies the order slice so callers can hold the snapshot past the next replace.
func (s Snapshot) Clone() Snapshot {
	orders := make([]Order, len(s.Orders))
	copy(orders, s.Orders)
	return Snapshot{Orders: orders, TodayRevenue: s.TodayRevenue}
}

// Addition is an item appended to an already open order.
type Addition struct {
	ID        int             `json:"id"`
	OrderID   int             `json:"order_id"`
	TableNo   int             `json:"table_no"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Status    AdditionStatus  `json:"status"`
	CreatedAt Timestamp       `json:"created_at"`
}

// History is the summary of orders created on one calendar date.
type History struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  []Order         `json:"orders"`
}

// Timestamp accepts RFC 3339 as well as the "2006-01-02 15:04:05" form
// SQL backends emit for CURRENT_TIMESTAMP.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		if string(bytes.TrimSpace(data)) == "null" {
			t.Time = time.Time{}
			return nil
		}
		return fmt.Errorf("failed to decode timestamp: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

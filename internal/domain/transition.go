package domain

import "time"

// Transition is a status change observed between two consecutive snapshots.
// OldStatus is empty when the order first appears.
type Transition struct {
	OrderID    int       `json:"order_id"`
	TableNo    int       `json:"table_no"`
	OldStatus  Status    `json:"old_status"`
	NewStatus  Status    `json:"new_status"`
	ObservedBy string    `json:"observed_by"`
	ObservedAt time.Time `json:"observed_at"`
}

// Diff lists the orders in next whose status differs from prev. Orders that
// vanished from next produce nothing.
func Diff(prev, next Snapshot, at time.Time) []Transition {
	before := make(map[int]Status, len(prev.Orders))
	for _, o := range prev.Orders {
		before[o.ID] = o.Status
	}

	var out []Transition
	for _, o := range next.Orders {
		old, seen := before[o.ID]
		if seen && old == o.Status {
			continue
		}
		out = append(out, Transition{
			OrderID:    o.ID,
			TableNo:    o.TableNo,
			OldStatus:  old,
			NewStatus:  o.Status,
			ObservedAt: at,
		})
	}
	return out
}

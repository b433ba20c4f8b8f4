// Package view turns session state into display models. Every function here
// is pure: the same state always yields the same model.
package view

import (
	"fmt"
	"strings"

	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
	"github.com/shopspring/decimal"
)

const (
	LabelUpdating  = "Updating..."
	LabelFailed    = "update failed"
	NoActiveOrders = "No active orders"
	NoAdditions    = "No pending additions"
	WaitingForFeed = "Waiting for orders..."
	currencyPrefix = "₹"
)

type AdminRow struct {
	OrderID       int
	TableNo       int
	Items         string
	Total         string
	Status        domain.Status
	Style         domain.Style
	Action        string
	ActionEnabled bool
	Failed        bool
}

type AdminView struct {
	Ready        bool
	Rows         []AdminRow
	OrderCount   int
	PendingCount int
	Revenue      string
}

func Admin(state interfaces.SessionState) AdminView {
	v := AdminView{
		Ready:        state.HasSnapshot,
		OrderCount:   len(state.Snapshot.Orders),
		PendingCount: state.Snapshot.PendingCount(),
		Revenue:      Money(state.Snapshot.TodayRevenue),
	}
	for _, o := range state.Snapshot.Orders {
		action, enabled := actionFor(o, state.Pending[o.ID])
		v.Rows = append(v.Rows, AdminRow{
			OrderID:       o.ID,
			TableNo:       o.TableNo,
			Items:         compactItems(o.Items),
			Total:         Money(o.Total),
			Status:        o.Status,
			Style:         o.Status.Style(),
			Action:        action,
			ActionEnabled: enabled,
			Failed:        state.Failed[o.ID],
		})
	}
	return v
}

type KitchenCard struct {
	OrderID       int
	Title         string
	Subtitle      string
	Items         []string
	Status        domain.Status
	Style         domain.Style
	Action        string
	ActionEnabled bool
	Failed        bool
}

type AdditionCard struct {
	AdditionID    int
	TableNo       int
	Title         string
	Line          string
	Action        string
	ActionEnabled bool
}

type KitchenView struct {
	Ready       bool
	Cards       []KitchenCard
	Placeholder string
	Additions   []AdditionCard
}

// Kitchen shows active orders only; served orders leave the board.
func Kitchen(state interfaces.SessionState) KitchenView {
	v := KitchenView{
		Ready:     state.HasSnapshot,
		Additions: Additions(state.Additions, state.Acking),
	}
	for _, o := range state.Snapshot.Active() {
		action, enabled := actionFor(o, state.Pending[o.ID])
		card := KitchenCard{
			OrderID:       o.ID,
			Title:         fmt.Sprintf("TABLE %d", o.TableNo),
			Subtitle:      fmt.Sprintf("ORDER #%d", o.ID),
			Status:        o.Status,
			Style:         o.Status.Style(),
			Action:        action,
			ActionEnabled: enabled,
			Failed:        state.Failed[o.ID],
		}
		for _, it := range o.Items {
			card.Items = append(card.Items, fmt.Sprintf("%d × %s", it.Quantity, it.Name))
		}
		v.Cards = append(v.Cards, card)
	}
	if len(v.Cards) == 0 {
		v.Placeholder = NoActiveOrders
		if !state.HasSnapshot {
			v.Placeholder = WaitingForFeed
		}
	}
	return v
}

func Additions(list []domain.Addition, acking map[int]bool) []AdditionCard {
	cards := make([]AdditionCard, 0, len(list))
	for _, a := range list {
		card := AdditionCard{
			AdditionID:    a.ID,
			TableNo:       a.TableNo,
			Title:         fmt.Sprintf("TABLE %d", a.TableNo),
			Line:          fmt.Sprintf("%d × %s", a.Quantity, a.ItemName),
			Action:        "Mark as " + string(domain.AdditionPreparing),
			ActionEnabled: true,
		}
		if acking[a.ID] {
			card.Action = LabelUpdating
			card.ActionEnabled = false
		}
		cards = append(cards, card)
	}
	return cards
}

type HistoryView struct {
	Date    string
	Count   int
	Revenue string
	Rows    []AdminRow
}

// History lays out a past day read-only; rows carry no action.
func History(date string, h domain.History) HistoryView {
	v := HistoryView{
		Date:    date,
		Count:   h.Count,
		Revenue: Money(h.Revenue),
	}
	for _, o := range h.Orders {
		v.Rows = append(v.Rows, AdminRow{
			OrderID: o.ID,
			TableNo: o.TableNo,
			Items:   compactItems(o.Items),
			Total:   Money(o.Total),
			Status:  o.Status,
			Style:   o.Status.Style(),
		})
	}
	return v
}

func Money(d decimal.Decimal) string {
	return currencyPrefix + d.StringFixed(2)
}

func actionFor(o domain.Order, pending bool) (string, bool) {
	switch {
	case pending:
		return LabelUpdating, false
	case o.Status.IsTerminal():
		return "", false
	default:
		return "Mark as " + string(o.Status.Next()), true
	}
}

func compactItems(items domain.Items) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%d× %s", it.Quantity, it.Name))
	}
	return strings.Join(parts, ", ")
}

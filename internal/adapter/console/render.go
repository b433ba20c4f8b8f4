package console

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/YelzhanWeb/tableside/internal/app/view"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
)

const clearScreen = "\033[H\033[2J"

// Renderer reprints the whole screen on every state change.
type Renderer struct {
	mu    sync.Mutex
	out   io.Writer
	clear bool
	write func(w io.Writer, state interfaces.SessionState)
}

func NewAdminRenderer(out io.Writer, clear bool) *Renderer {
	return &Renderer{out: out, clear: clear, write: func(w io.Writer, s interfaces.SessionState) {
		WriteAdmin(w, view.Admin(s))
	}}
}

func NewKitchenRenderer(out io.Writer, clear bool) *Renderer {
	return &Renderer{out: out, clear: clear, write: func(w io.Writer, s interfaces.SessionState) {
		WriteKitchen(w, view.Kitchen(s))
	}}
}

func (r *Renderer) Render(state interfaces.SessionState) {
	var buf bytes.Buffer
	if r.clear {
		buf.WriteString(clearScreen)
	}
	r.write(&buf, state)

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.out.Write(buf.Bytes())
}

func WriteAdmin(w io.Writer, v view.AdminView) {
	fmt.Fprintf(w, "ORDERS TODAY: %d   PENDING: %d   REVENUE: %s\n", v.OrderCount, v.PendingCount, v.Revenue)
	if !v.Ready {
		fmt.Fprintln(w, view.WaitingForFeed)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTABLE\tITEMS\tTOTAL\tSTATUS\tACTION")
	for _, row := range v.Rows {
		fmt.Fprintf(tw, "#%d\t%d\t%s\t%s\t%s\t%s\n",
			row.OrderID, row.TableNo, row.Items, row.Total, badge(row.Status, row.Style), action(row.Action, row.ActionEnabled, row.Failed))
	}
	_ = tw.Flush()
}

func WriteKitchen(w io.Writer, v view.KitchenView) {
	fmt.Fprintln(w, "=== KITCHEN ===")
	if v.Placeholder != "" {
		fmt.Fprintln(w, v.Placeholder)
	}
	for _, c := range v.Cards {
		fmt.Fprintf(w, "\n%s  %s  %s\n", c.Title, c.Subtitle, badge(c.Status, c.Style))
		for _, line := range c.Items {
			fmt.Fprintf(w, "  %s\n", line)
		}
		fmt.Fprintf(w, "  %s\n", action(c.Action, c.ActionEnabled, c.Failed))
	}

	fmt.Fprintln(w, "\n=== ADDITIONS ===")
	if len(v.Additions) == 0 {
		fmt.Fprintln(w, view.NoAdditions)
	}
	for _, a := range v.Additions {
		fmt.Fprintf(w, "[%d] %s  %s  %s\n", a.AdditionID, a.Title, a.Line, action(a.Action, a.ActionEnabled, false))
	}
}

func WriteHistory(w io.Writer, v view.HistoryView) {
	fmt.Fprintf(w, "HISTORY %s: %d orders, revenue %s\n", v.Date, v.Count, v.Revenue)
	if len(v.Rows) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTABLE\tITEMS\tTOTAL\tSTATUS")
	for _, row := range v.Rows {
		fmt.Fprintf(tw, "#%d\t%d\t%s\t%s\t%s\n", row.OrderID, row.TableNo, row.Items, row.Total, row.Status)
	}
	_ = tw.Flush()
}

func WriteBill(w io.Writer, b domain.Bill) {
	fmt.Fprintf(w, "BILL order #%d, table %d\n", b.OrderID, b.TableNo)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tQTY\tPRICE\tAMOUNT")
	for _, it := range b.Items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", it.Name, it.Quantity, view.Money(it.Price), view.Money(domain.LineTotal(it)))
	}
	fmt.Fprintf(tw, "Subtotal\t\t\t%s\n", view.Money(b.Subtotal))
	fmt.Fprintf(tw, "GST 5%%\t\t\t%s\n", view.Money(b.GST))
	fmt.Fprintf(tw, "Total\t\t\t%s\n", view.Money(b.Total))
	_ = tw.Flush()
}

func WriteMenu(w io.Writer, items []domain.MenuItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Menu is empty")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tAVAILABLE")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Category, view.Money(it.Price), yesNo(bool(it.Available)))
	}
	_ = tw.Flush()
}

func badge(s domain.Status, style domain.Style) string {
	return fmt.Sprintf("[%s:%s]", strings.ToUpper(string(s)), style)
}

func action(label string, enabled, failed bool) string {
	out := label
	if label != "" && !enabled {
		out = "(" + label + ")"
	}
	if failed {
		out = strings.TrimSpace(out + " !" + view.LabelFailed)
	}
	return out
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

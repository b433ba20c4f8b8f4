package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/YelzhanWeb/tableside/internal/app/view"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
	"github.com/shopspring/decimal"
)

func AdminCommands(a interfaces.AdminConsole, out io.Writer) []Command {
	return []Command{
		{
			Name:  "advance",
			Usage: "advance <order_id>            move an order to its next status",
			Run: func(ctx context.Context, args []string) error {
				id, err := intArg(args, 0, "order_id")
				if err != nil {
					return err
				}
				return a.Advance(ctx, id)
			},
		},
		{
			Name:  "status",
			Usage: "status <order_id> <status>    set Preparing, Ready or Served",
			Run: func(ctx context.Context, args []string) error {
				id, err := intArg(args, 0, "order_id")
				if err != nil {
					return err
				}
				if len(args) < 2 {
					return fmt.Errorf("usage: status <order_id> <status>")
				}
				return a.SetStatus(ctx, id, args[1])
			},
		},
		{
			Name:  "add",
			Usage: "add <order_id>                open the add-item menu for an order",
			Run: func(ctx context.Context, args []string) error {
				id, err := intArg(args, 0, "order_id")
				if err != nil {
					return err
				}
				c, err := a.OpenAddItem(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Add to order #%d (pick <item_id> [qty], cancel):\n", c.OrderID)
				WriteMenu(out, c.Menu)
				return nil
			},
		},
		{
			Name:  "pick",
			Usage: "pick <item_id> [qty]          add the chosen item to the open order",
			Run: func(ctx context.Context, args []string) error {
				if len(args) == 0 {
					return domain.ErrNothingSelected
				}
				itemID, err := intArg(args, 0, "item_id")
				if err != nil {
					return err
				}
				qty := 1
				if len(args) > 1 {
					if qty, err = intArg(args, 1, "qty"); err != nil {
						return err
					}
				}
				if err := a.ConfirmAddItem(ctx, itemID, qty); err != nil {
					return err
				}
				fmt.Fprintln(out, "Item added")
				return nil
			},
		},
		{
			Name:  "cancel",
			Usage: "cancel                        close the add-item menu",
			Run: func(ctx context.Context, args []string) error {
				a.CancelAddItem()
				return nil
			},
		},
		{
			Name:  "history",
			Usage: "history <YYYY-MM-DD>          orders of a past day",
			Run: func(ctx context.Context, args []string) error {
				date := ""
				if len(args) > 0 {
					date = args[0]
				}
				h, err := a.History(ctx, date)
				if err != nil {
					return err
				}
				WriteHistory(out, view.History(date, *h))
				return nil
			},
		},
		{
			Name:  "bill",
			Usage: "bill <order_id>               print the bill with GST",
			Run: func(ctx context.Context, args []string) error {
				id, err := intArg(args, 0, "order_id")
				if err != nil {
					return err
				}
				b, err := a.Bill(ctx, id)
				if err != nil {
					return err
				}
				WriteBill(out, *b)
				return nil
			},
		},
	}
}

func KitchenCommands(k interfaces.KitchenConsole) []Command {
	return []Command{
		{
			Name:  "advance",
			Usage: "advance <order_id>            mark an order as its next status",
			Run: func(ctx context.Context, args []string) error {
				id, err := intArg(args, 0, "order_id")
				if err != nil {
					return err
				}
				return k.Advance(ctx, id)
			},
		},
		{
			Name:  "ack",
			Usage: "ack <addition_id>             mark an added item as Preparing",
			Run: func(ctx context.Context, args []string) error {
				id, err := intArg(args, 0, "addition_id")
				if err != nil {
					return err
				}
				return k.Acknowledge(ctx, id)
			},
		},
	}
}

// MenuCommands manage the menu through the Menu Service.
func MenuCommands(m interfaces.MenuAPI, out io.Writer) []Command {
	return []Command{
		{
			Name:  "list",
			Usage: "list",
			Run: func(ctx context.Context, args []string) error {
				items, err := m.ListMenu(ctx)
				if err != nil {
					return err
				}
				WriteMenu(out, items)
				return nil
			},
		},
		{
			Name:  "toggle",
			Usage: "toggle <item_id>",
			Run: func(ctx context.Context, args []string) error {
				id, err := intArg(args, 0, "item_id")
				if err != nil {
					return err
				}
				return m.ToggleMenuItem(ctx, id)
			},
		},
		{
			Name:  "delete",
			Usage: "delete <item_id>",
			Run: func(ctx context.Context, args []string) error {
				id, err := intArg(args, 0, "item_id")
				if err != nil {
					return err
				}
				return m.DeleteMenuItem(ctx, id)
			},
		},
		{
			Name:  "import",
			Usage: "import <punjabi|gujarati|south_indian|chinese|pizza>",
			Run: func(ctx context.Context, args []string) error {
				if len(args) == 0 {
					return fmt.Errorf("usage: import <template>")
				}
				if _, err := domain.LookupMenuTemplate(args[0]); err != nil {
					return err
				}
				if err := m.ImportTemplate(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Imported %s\n", args[0])
				return nil
			},
		},
		{
			Name:  "add",
			Usage: "add <name> <price> <category> <image_path>",
			Run: func(ctx context.Context, args []string) error {
				if len(args) < 4 {
					return fmt.Errorf("usage: add <name> <price> <category> <image_path>")
				}
				price, err := decimal.NewFromString(args[1])
				if err != nil {
					return fmt.Errorf("%w: price %q", domain.ErrInvalidItem, args[1])
				}
				f, err := os.Open(args[3])
				if err != nil {
					return fmt.Errorf("failed to open image: %w", err)
				}
				defer f.Close()

				return m.AddMenuItem(ctx, interfaces.NewMenuItem{
					Name:      underscoresToSpaces(args[0]),
					Price:     price,
					Category:  underscoresToSpaces(args[2]),
					ImageName: filepath.Base(args[3]),
					Image:     f,
				})
			},
		},
		{
			Name:  "edit",
			Usage: "edit <item_id> <name> <price> <category> <available:yes|no>",
			Run: func(ctx context.Context, args []string) error {
				if len(args) < 5 {
					return fmt.Errorf("usage: edit <item_id> <name> <price> <category> <available>")
				}
				id, err := intArg(args, 0, "item_id")
				if err != nil {
					return err
				}
				price, err := decimal.NewFromString(args[2])
				if err != nil {
					return fmt.Errorf("%w: price %q", domain.ErrInvalidItem, args[2])
				}
				available, err := boolArg(args[4])
				if err != nil {
					return err
				}
				return m.UpdateMenuItem(ctx, domain.MenuItem{
					ID:        id,
					Name:      underscoresToSpaces(args[1]),
					Price:     price,
					Category:  underscoresToSpaces(args[3]),
					Available: domain.Flag(available),
				})
			},
		},
	}
}

func intArg(args []string, i int, name string) (int, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing %s", name)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, args[i])
	}
	return n, nil
}

func boolArg(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "yes", "y", "true", "1":
		return true, nil
	case "no", "n", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid availability %q", v)
}

// names are typed as one field; underscores stand for spaces
func underscoresToSpaces(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

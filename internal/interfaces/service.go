package interfaces

import (
	"context"
	"io"

	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/shopspring/decimal"
)

// OrderAPI is the client view of the Order Service.
type OrderAPI interface {
	UpdateOrderStatus(ctx context.Context, orderID int, status domain.Status) error
	AddItemToOrder(ctx context.Context, orderID, itemID, qty int) error
	OrdersByDate(ctx context.Context, date string) (*domain.History, error)
	Bill(ctx context.Context, orderID int) (*domain.Bill, error)
	ListAdditions(ctx context.Context) ([]domain.Addition, error)
	UpdateAdditionStatus(ctx context.Context, additionID int, status domain.AdditionStatus) error
}

// SnapshotStreamer delivers pushed snapshots until the connection drops.
type SnapshotStreamer interface {
	StreamSnapshots(ctx context.Context, handle func(domain.Snapshot)) error
}

// MenuAPI is the client view of the Menu Service.
type MenuAPI interface {
	ListMenu(ctx context.Context) ([]domain.MenuItem, error)
	AddMenuItem(ctx context.Context, item NewMenuItem) error
	UpdateMenuItem(ctx context.Context, item domain.MenuItem) error
	ToggleMenuItem(ctx context.Context, id int) error
	DeleteMenuItem(ctx context.Context, id int) error
	ImportTemplate(ctx context.Context, template string) error
}

type NewMenuItem struct {
	Name      string
	Price     decimal.Decimal
	Category  string
	ImageName string
	Image     io.Reader
}

// Renderer rebuilds the visible output from a session state.
type Renderer interface {
	Render(state SessionState)
}

// Alerter surfaces blocking, user-visible failures.
type Alerter interface {
	Alert(message string)
}

// SessionState is an immutable copy of a client session.
type SessionState struct {
	Snapshot    domain.Snapshot
	HasSnapshot bool
	Pending     map[int]bool
	Failed      map[int]bool
	Additions   []domain.Addition
	Acking      map[int]bool
}

// Commands accepted by the development backend.
type PlaceOrderCommand struct {
	TableNo int
	Items   []PlaceOrderItemCommand
}

type PlaceOrderItemCommand struct {
	ID       int
	Name     string
	Price    decimal.Decimal
	Quantity int
}

type UpdateMenuItemCommand struct {
	ID        int
	Name      string
	Price     decimal.Decimal
	Category  string
	Available bool
}

// OrderBackend is what the HTTP layer of the development server serves.
type OrderBackend interface {
	PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int, status string) (*domain.Order, error)
	AddItem(ctx context.Context, orderID, itemID, qty int) (*domain.Addition, error)
	Bill(ctx context.Context, orderID int) (*domain.Bill, error)
	Snapshot(ctx context.Context) (domain.Snapshot, error)
	History(ctx context.Context, date string) (*domain.History, error)
	PendingAdditions(ctx context.Context) ([]domain.Addition, error)
	UpdateAdditionStatus(ctx context.Context, id int, status string) error
}

type MenuBackend interface {
	ListMenu(ctx context.Context) ([]domain.MenuItem, error)
	AddMenuItem(ctx context.Context, name string, price decimal.Decimal, category, image string) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, cmd UpdateMenuItemCommand) error
	ToggleMenuItem(ctx context.Context, id int) error
	DeleteMenuItem(ctx context.Context, id int) error
	ImportTemplate(ctx context.Context, name string) (int, error)
}

// Composition is an open add-item dialog. Menu is the list offered when it
// was opened; it is not refreshed while open.
type Composition struct {
	OrderID int
	Menu    []domain.MenuItem
}

// AdminConsole is the command surface of the admin client.
type AdminConsole interface {
	Advance(ctx context.Context, orderID int) error
	SetStatus(ctx context.Context, orderID int, status string) error
	OpenAddItem(ctx context.Context, orderID int) (*Composition, error)
	ConfirmAddItem(ctx context.Context, itemID, qty int) error
	CancelAddItem()
	History(ctx context.Context, date string) (*domain.History, error)
	Bill(ctx context.Context, orderID int) (*domain.Bill, error)
}

// KitchenConsole is the command surface of the kitchen client.
type KitchenConsole interface {
	Advance(ctx context.Context, orderID int) error
	Acknowledge(ctx context.Context, additionID int) error
}

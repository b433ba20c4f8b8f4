package devserver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
	"github.com/shopspring/decimal"
)

// Service implements the Order Service and Menu Service contract on top of
// a store. It exists so the consoles can run without the production backend.
type Service struct {
	orders interfaces.OrderStore
	menu   interfaces.MenuStore
	logger logger.Logger
	now    func() time.Time
}

func NewService(orders interfaces.OrderStore, menu interfaces.MenuStore, logger logger.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		orders: orders,
		menu:   menu,
		logger: logger,
		now:    now,
	}
}

var (
	_ interfaces.OrderBackend = (*Service)(nil)
	_ interfaces.MenuBackend  = (*Service)(nil)
)

func (s *Service) PlaceOrder(ctx context.Context, cmd interfaces.PlaceOrderCommand) (*domain.Order, error) {
	tableNo, items := cmd.TableNo, cmd.Items
	if tableNo < 1 {
		return nil, fmt.Errorf("%w: table number must be positive", domain.ErrInvalidItem)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least 1 item", domain.ErrInvalidItem)
	}

	order := &domain.Order{
		TableNo: tableNo,
		Status:  domain.StatusReceived,
	}
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity < 1 {
			return nil, fmt.Errorf("%w: every item needs a name and a quantity of at least 1", domain.ErrInvalidItem)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:       it.ID,
			Name:     strings.TrimSpace(it.Name),
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	order.CalculateTotal()

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Debug("order_received", fmt.Sprintf("Order %d placed for table %d", order.ID, tableNo), "", map[string]interface{}{
		"order_id": order.ID,
		"total":    order.Total.String(),
	})
	return order, nil
}

// UpdateStatus accepts Preparing, Ready or Served and never moves an order backwards.
func (s *Service) UpdateStatus(ctx context.Context, orderID int, raw string) (*domain.Order, error) {
	status, err := domain.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	if status == domain.StatusReceived {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, raw)
	}

	var old domain.Status
	order, err := s.orders.ModifyOrder(ctx, orderID, func(o *domain.Order) error {
		if !o.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, o.Status, status)
		}
		old = o.Status
		o.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("status_changed", fmt.Sprintf("Order %d: %s -> %s", orderID, old, status), "", nil)
	return order, nil
}

// AddItem appends a menu item to an open order and records it as an
// addition for the kitchen.
func (s *Service) AddItem(ctx context.Context, orderID, itemID, qty int) (*domain.Addition, error) {
	if qty < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidItem)
	}

	item, err := s.menu.FindMenuItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemUnavailable, item.Name)
	}

	order, err := s.orders.ModifyOrder(ctx, orderID, func(o *domain.Order) error {
		o.Items = append(o.Items, domain.OrderItem{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: qty,
			Price:    item.Price,
		})
		o.CalculateTotal()
		return nil
	})
	if err != nil {
		return nil, err
	}

	addition := &domain.Addition{
		OrderID:  order.ID,
		TableNo:  order.TableNo,
		ItemName: item.Name,
		Quantity: qty,
		Price:    item.Price,
		Status:   domain.AdditionNew,
	}
	if err := s.orders.CreateAddition(ctx, addition); err != nil {
		return nil, fmt.Errorf("failed to record addition: %w", err)
	}
	return addition, nil
}

// Bill prices an order with GST on top of its subtotal.
func (s *Service) Bill(ctx context.Context, orderID int) (*domain.Bill, error) {
	order, err := s.orders.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	bill := domain.NewBill(*order)
	return &bill, nil
}

// Snapshot returns today's orders and the revenue of today's served orders.
func (s *Service) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	from, to := dayBounds(s.now())
	orders, err := s.orders.ListOrdersBetween(ctx, from, to)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{
		Orders:       orders,
		TodayRevenue: servedRevenue(orders),
	}, nil
}

func (s *Service) History(ctx context.Context, date string) (*domain.History, error) {
	if date == "" {
		return nil, domain.ErrNoDate
	}
	day, err := time.ParseInLocation("2006-01-02", date, s.now().Location())
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrNoDate, date)
	}

	from, to := dayBounds(day)
	orders, err := s.orders.ListOrdersBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &domain.History{
		Count:   len(orders),
		Revenue: servedRevenue(orders),
		Orders:  orders,
	}, nil
}

func (s *Service) PendingAdditions(ctx context.Context) ([]domain.Addition, error) {
	return s.orders.ListAdditions(ctx, domain.AdditionNew)
}

func (s *Service) UpdateAdditionStatus(ctx context.Context, id int, raw string) error {
	status := domain.AdditionStatus(raw)
	if !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, raw)
	}
	addition, err := s.orders.FindAddition(ctx, id)
	if err != nil {
		return err
	}
	addition.Status = status
	return s.orders.UpdateAddition(ctx, addition)
}

func (s *Service) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	return s.menu.ListMenu(ctx)
}

func (s *Service) AddMenuItem(ctx context.Context, name string, price decimal.Decimal, category, image string) (*domain.MenuItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrInvalidItem)
	}
	if image == "" {
		return nil, fmt.Errorf("%w: image required", domain.ErrInvalidItem)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidItem)
	}

	item := &domain.MenuItem{
		Name:      strings.TrimSpace(name),
		Price:     price,
		Category:  category,
		Image:     image,
		Available: true,
	}
	if err := s.menu.CreateMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return item, nil
}

func (s *Service) UpdateMenuItem(ctx context.Context, cmd interfaces.UpdateMenuItemCommand) error {
	if cmd.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidItem)
	}
	item, err := s.menu.FindMenuItem(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if name := strings.TrimSpace(cmd.Name); name != "" {
		item.Name = name
	}
	item.Price = cmd.Price
	item.Category = cmd.Category
	item.Available = domain.Flag(cmd.Available)
	return s.menu.UpdateMenuItem(ctx, item)
}

func (s *Service) ToggleMenuItem(ctx context.Context, id int) error {
	item, err := s.menu.FindMenuItem(ctx, id)
	if err != nil {
		return err
	}
	item.Available = !item.Available
	return s.menu.UpdateMenuItem(ctx, item)
}

func (s *Service) DeleteMenuItem(ctx context.Context, id int) error {
	return s.menu.DeleteMenuItem(ctx, id)
}

// ImportTemplate adds every dish of a named template at the default price.
func (s *Service) ImportTemplate(ctx context.Context, name string) (int, error) {
	tpl, err := domain.LookupMenuTemplate(name)
	if err != nil {
		return 0, err
	}
	for _, it := range tpl.Items {
		item := &domain.MenuItem{
			Name:      it.Name,
			Price:     domain.DefaultImportPrice,
			Category:  it.Category,
			Available: true,
		}
		if err := s.menu.CreateMenuItem(ctx, item); err != nil {
			return 0, fmt.Errorf("failed to import %s: %w", it.Name, err)
		}
	}
	s.logger.Info("menu_imported", fmt.Sprintf("Imported %d items from %s", len(tpl.Items), name), "", nil)
	return len(tpl.Items), nil
}

// Seed loads a demo menu and a few open orders.
func (s *Service) Seed(ctx context.Context) error {
	if _, err := s.ImportTemplate(ctx, "pizza"); err != nil {
		return err
	}
	menu, err := s.menu.ListMenu(ctx)
	if err != nil {
		return err
	}
	if len(menu) < 3 {
		return errors.New("seed menu too small")
	}

	line := func(m domain.MenuItem, qty int) interfaces.PlaceOrderItemCommand {
		return interfaces.PlaceOrderItemCommand{ID: m.ID, Name: m.Name, Price: m.Price, Quantity: qty}
	}
	seeds := []interfaces.PlaceOrderCommand{
		{TableNo: 3, Items: []interfaces.PlaceOrderItemCommand{line(menu[0], 2)}},
		{TableNo: 5, Items: []interfaces.PlaceOrderItemCommand{line(menu[1], 1), line(menu[2], 3)}},
	}
	for _, cmd := range seeds {
		if _, err := s.PlaceOrder(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}

func servedRevenue(orders []domain.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Status == domain.StatusServed {
			total = total.Add(o.Total)
		}
	}
	return total
}

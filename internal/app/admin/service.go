package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/app/session"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
)

// Service is the admin console: the live order table plus add-item and
// history commands.
type Service struct {
	session *session.Session
	sources []session.Source
	orders  interfaces.OrderAPI
	menu    interfaces.MenuAPI
	alerter interfaces.Alerter
	logger  logger.Logger

	mu          sync.Mutex
	composition *interfaces.Composition
}

var _ interfaces.AdminConsole = (*Service)(nil)

func NewService(
	sess *session.Session,
	orders interfaces.OrderAPI,
	menu interfaces.MenuAPI,
	alerter interfaces.Alerter,
	logger logger.Logger,
	sources ...session.Source,
) *Service {
	return &Service{
		session: sess,
		sources: sources,
		orders:  orders,
		menu:    menu,
		alerter: alerter,
		logger:  logger,
	}
}

// Start keeps the order table live until ctx is done.
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("admin_started", "Admin console started", "", nil)
	return s.session.Run(ctx, s.sources...)
}

func (s *Service) State() interfaces.SessionState {
	return s.session.State()
}

func (s *Service) Advance(ctx context.Context, orderID int) error {
	return s.session.AdvanceNext(ctx, orderID)
}

// SetStatus moves an order to an explicit status through the in-flight guard.
func (s *Service) SetStatus(ctx context.Context, orderID int, raw string) error {
	status, err := domain.ParseStatus(raw)
	if err != nil {
		return err
	}
	return s.session.Advance(ctx, orderID, status)
}

// OpenAddItem fetches the menu and offers only the available dishes. Any
// previously open composition is discarded.
func (s *Service) OpenAddItem(ctx context.Context, orderID int) (*interfaces.Composition, error) {
	items, err := s.menu.ListMenu(ctx)
	if err != nil {
		s.alert("Failed to load menu")
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}

	offered := make([]domain.MenuItem, 0, len(items))
	for _, it := range items {
		if it.Available {
			offered = append(offered, it)
		}
	}

	s.mu.Lock()
	s.composition = &interfaces.Composition{OrderID: orderID, Menu: offered}
	s.mu.Unlock()

	return &interfaces.Composition{OrderID: orderID, Menu: append([]domain.MenuItem(nil), offered...)}, nil
}

func (s *Service) Composition() (*interfaces.Composition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.composition == nil {
		return nil, false
	}
	c := *s.composition
	c.Menu = append([]domain.MenuItem(nil), s.composition.Menu...)
	return &c, true
}

func (s *Service) CancelAddItem() {
	s.mu.Lock()
	s.composition = nil
	s.mu.Unlock()
}

// ConfirmAddItem checks the selection against the offered list and sends
// it. The composition closes on success and stays open on failure.
func (s *Service) ConfirmAddItem(ctx context.Context, itemID, qty int) error {
	s.mu.Lock()
	c := s.composition
	s.mu.Unlock()

	if c == nil {
		return domain.ErrNoComposition
	}
	if itemID == 0 {
		return domain.ErrNothingSelected
	}
	if !offers(c.Menu, itemID) {
		return fmt.Errorf("%w: item %d is not on offer", domain.ErrInvalidItem, itemID)
	}
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidItem)
	}

	if err := s.orders.AddItemToOrder(ctx, c.OrderID, itemID, qty); err != nil {
		s.logger.Error("add_item_failed", fmt.Sprintf("Failed to add item to order %d", c.OrderID), "", map[string]interface{}{
			"item_id": itemID,
			"qty":     qty,
		}, err)
		s.alert("Failed to add item")
		return fmt.Errorf("add item to order %d: %w", c.OrderID, err)
	}

	s.mu.Lock()
	if s.composition == c {
		s.composition = nil
	}
	s.mu.Unlock()
	return nil
}

func (s *Service) History(ctx context.Context, date string) (*domain.History, error) {
	if date == "" {
		return nil, domain.ErrNoDate
	}
	h, err := s.orders.OrdersByDate(ctx, date)
	if err != nil {
		s.alert("Failed to load history")
		return nil, fmt.Errorf("load history for %s: %w", date, err)
	}
	return h, nil
}

func (s *Service) Bill(ctx context.Context, orderID int) (*domain.Bill, error) {
	b, err := s.orders.Bill(ctx, orderID)
	if err != nil {
		s.alert("Failed to load bill")
		return nil, fmt.Errorf("load bill for order %d: %w", orderID, err)
	}
	return b, nil
}

func (s *Service) alert(msg string) {
	if s.alerter != nil {
		s.alerter.Alert(msg)
	}
}

func offers(menu []domain.MenuItem, itemID int) bool {
	for _, it := range menu {
		if it.ID == itemID {
			return true
		}
	}
	return false
}

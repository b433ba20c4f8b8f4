package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
)

var (
	_ interfaces.OrderStore = (*Store)(nil)
	_ interfaces.MenuStore  = (*Store)(nil)
)

// Store keeps orders, additions and the menu in process memory. It backs the
// development server and tests.
type Store struct {
	mu sync.RWMutex

	orders   map[int]domain.Order
	orderSeq int

	additions   map[int]domain.Addition
	additionSeq int

	menu    map[int]domain.MenuItem
	menuSeq int

	now func() time.Time
}

func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		orders:    make(map[int]domain.Order),
		additions: make(map[int]domain.Addition),
		menu:      make(map[int]domain.MenuItem),
		now:       now,
	}
}

func (s *Store) CreateOrder(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orderSeq++
	order.ID = s.orderSeq
	if order.CreatedAt.IsZero() {
		order.CreatedAt = domain.Timestamp{Time: s.now()}
	}
	s.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (s *Store) FindOrder(ctx context.Context, id int) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrOrderNotFound)
	}
	out := cloneOrder(o)
	return &out, nil
}

// ModifyOrder holds the write lock across read, change and save.
func (s *Store) ModifyOrder(ctx context.Context, id int, change func(order *domain.Order) error) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrOrderNotFound)
	}
	working := cloneOrder(o)
	if err := change(&working); err != nil {
		return nil, err
	}
	working.ID = id
	s.orders[id] = cloneOrder(working)
	return &working, nil
}

// ListOrders returns every order, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.filterOrders(func(domain.Order) bool { return true }), nil
}

// ListOrdersBetween returns orders created in [from, to), newest first.
func (s *Store) ListOrdersBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	return s.filterOrders(func(o domain.Order) bool {
		return !o.CreatedAt.Before(from) && o.CreatedAt.Before(to)
	}), nil
}

func (s *Store) filterOrders(keep func(domain.Order) bool) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *Store) CreateAddition(ctx context.Context, addition *domain.Addition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.additionSeq++
	addition.ID = s.additionSeq
	if addition.CreatedAt.IsZero() {
		addition.CreatedAt = domain.Timestamp{Time: s.now()}
	}
	s.additions[addition.ID] = *addition
	return nil
}

func (s *Store) FindAddition(ctx context.Context, id int) (*domain.Addition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.additions[id]
	if !ok {
		return nil, fmt.Errorf("addition %d: %w", id, domain.ErrAdditionNotFound)
	}
	return &a, nil
}

func (s *Store) UpdateAddition(ctx context.Context, addition *domain.Addition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.additions[addition.ID]; !ok {
		return fmt.Errorf("addition %d: %w", addition.ID, domain.ErrAdditionNotFound)
	}
	s.additions[addition.ID] = *addition
	return nil
}

// ListAdditions returns additions in the given status, oldest first. An
// empty status matches all.
func (s *Store) ListAdditions(ctx context.Context, status domain.AdditionStatus) ([]domain.Addition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Addition, 0)
	for _, a := range s.additions {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.menuSeq++
	item.ID = s.menuSeq
	s.menu[item.ID] = *item
	return nil
}

func (s *Store) FindMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.menu[id]
	if !ok {
		return nil, fmt.Errorf("menu item %d: %w", id, domain.ErrMenuItemNotFound)
	}
	return &m, nil
}

func (s *Store) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menu[item.ID]; !ok {
		return fmt.Errorf("menu item %d: %w", item.ID, domain.ErrMenuItemNotFound)
	}
	s.menu[item.ID] = *item
	return nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menu[id]; !ok {
		return fmt.Errorf("menu item %d: %w", id, domain.ErrMenuItemNotFound)
	}
	delete(s.menu, id)
	return nil
}

// ListMenu returns the menu, newest first.
func (s *Store) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.MenuItem, 0, len(s.menu))
	for _, m := range s.menu {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = append(domain.Items(nil), o.Items...)
	return o
}

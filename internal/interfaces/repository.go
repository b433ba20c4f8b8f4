package interfaces

import (
	"context"
	"time"

	"github.com/YelzhanWeb/tableside/internal/domain"
)

// TransitionRepository journals observed order transitions (adapter/postgres).
type TransitionRepository interface {
	LogTransition(ctx context.Context, t domain.Transition) error
	GetStatusHistory(ctx context.Context, orderID int) ([]domain.Transition, error)
}

// OrderStore backs the development server (adapter/memory, adapter/postgres).
type OrderStore interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	FindOrder(ctx context.Context, id int) (*domain.Order, error)
	// ModifyOrder applies change to the stored order and saves the result as
	// one atomic step. An error from change aborts without writing.
	ModifyOrder(ctx context.Context, id int, change func(order *domain.Order) error) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error)

	CreateAddition(ctx context.Context, addition *domain.Addition) error
	FindAddition(ctx context.Context, id int) (*domain.Addition, error)
	UpdateAddition(ctx context.Context, addition *domain.Addition) error
	ListAdditions(ctx context.Context, status domain.AdditionStatus) ([]domain.Addition, error)
}

type MenuStore interface {
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	FindMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int) error
	ListMenu(ctx context.Context) ([]domain.MenuItem, error)
}

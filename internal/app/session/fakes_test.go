package session

import (
	"context"
	"sync"

	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
)

type statusCall struct {
	orderID int
	status  domain.Status
}

type fakeAPI struct {
	mu sync.Mutex

	statusCalls []statusCall
	statusErr   error
	onStatus    func(orderID int)
	release     chan struct{}
	replies     []chan error

	additions []domain.Addition
	listErr   error
	listCalls int

	ackCalls []int
	ackErr   error
}

func (f *fakeAPI) UpdateOrderStatus(ctx context.Context, orderID int, status domain.Status) error {
	f.mu.Lock()
	n := len(f.statusCalls)
	f.statusCalls = append(f.statusCalls, statusCall{orderID, status})
	onStatus, release, err := f.onStatus, f.release, f.statusErr
	var reply chan error
	if n < len(f.replies) {
		reply = f.replies[n]
	}
	f.mu.Unlock()

	if onStatus != nil {
		onStatus(orderID)
	}
	if reply != nil {
		return <-reply
	}
	if release != nil {
		<-release
	}
	return err
}

func (f *fakeAPI) AddItemToOrder(ctx context.Context, orderID, itemID, qty int) error {
	return nil
}

func (f *fakeAPI) OrdersByDate(ctx context.Context, date string) (*domain.History, error) {
	return &domain.History{}, nil
}

func (f *fakeAPI) Bill(ctx context.Context, orderID int) (*domain.Bill, error) {
	return &domain.Bill{OrderID: orderID}, nil
}

func (f *fakeAPI) ListAdditions(ctx context.Context) ([]domain.Addition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Addition(nil), f.additions...), nil
}

func (f *fakeAPI) UpdateAdditionStatus(ctx context.Context, additionID int, status domain.AdditionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ackCalls = append(f.ackCalls, additionID)
	return f.ackErr
}

func (f *fakeAPI) calls() []statusCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]statusCall(nil), f.statusCalls...)
}

type recordingRenderer struct {
	mu     sync.Mutex
	states []interfaces.SessionState
}

func (r *recordingRenderer) Render(state interfaces.SessionState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *recordingRenderer) last() interfaces.SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[len(r.states)-1]
}

func (r *recordingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

type recordingAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (a *recordingAlerter) Alert(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, msg)
}

func (a *recordingAlerter) all() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}

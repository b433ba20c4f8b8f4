package http

import (
	"net/http"
	"time"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
)

// RouterOption tunes NewRouter.
type RouterOption func(*routerOptions)

type routerOptions struct {
	ratePerSecond float64
	rateBurst     int
}

// WithRateLimit limits every client host to perSecond requests.
func WithRateLimit(perSecond float64, burst int) RouterOption {
	return func(o *routerOptions) {
		o.ratePerSecond = perSecond
		o.rateBurst = burst
	}
}

// NewRouter exposes the Order Service and Menu Service endpoints the
// consoles talk to.
func NewRouter(orders interfaces.OrderBackend, menu interfaces.MenuBackend, streamInterval time.Duration, logger logger.Logger, opts ...RouterOption) http.Handler {
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	orderHandler := NewOrderHandler(orders, logger)
	trackingHandler := NewTrackingHandler(orders, streamInterval, logger)
	menuHandler := NewMenuHandler(menu, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /events", trackingHandler.Events)
	mux.HandleFunc("GET /admin/orders/by-date", trackingHandler.OrdersByDate)

	mux.HandleFunc("POST /order", orderHandler.PlaceOrder)
	mux.HandleFunc("POST /api/order/{id}/status", orderHandler.UpdateStatus)
	mux.HandleFunc("POST /api/order/{id}/add-item", orderHandler.AddItem)
	mux.HandleFunc("GET /bill/{id}", orderHandler.Bill)
	mux.HandleFunc("GET /api/additions", orderHandler.ListAdditions)
	mux.HandleFunc("POST /api/additions/{id}/status", orderHandler.UpdateAdditionStatus)

	mux.HandleFunc("GET /api/menu", menuHandler.List)
	mux.HandleFunc("POST /api/menu", menuHandler.Add)
	mux.HandleFunc("PUT /api/menu/{id}", menuHandler.Update)
	mux.HandleFunc("DELETE /api/menu/{id}", menuHandler.Delete)
	mux.HandleFunc("POST /api/menu/toggle/{id}", menuHandler.Toggle)
	mux.HandleFunc("POST /api/menu/import", menuHandler.Import)

	var handler http.Handler = mux
	handler = RateLimitMiddleware(o.ratePerSecond, o.rateBurst, logger)(handler)
	handler = LoggingMiddleware(logger)(handler)
	handler = RecoveryMiddleware(logger)(handler)
	return handler
}

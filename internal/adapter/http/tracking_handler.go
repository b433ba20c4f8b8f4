package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
	sse "github.com/tmaxmax/go-sse"
)

// TrackingHandler serves the live order feed and the per-date history.
type TrackingHandler struct {
	service  interfaces.OrderBackend
	interval time.Duration
	logger   logger.Logger
}

func NewTrackingHandler(service interfaces.OrderBackend, interval time.Duration, logger logger.Logger) *TrackingHandler {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &TrackingHandler{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

// Events pushes a full snapshot right away and then once per interval until
// the client goes away.
func (h *TrackingHandler) Events(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := RequestID(ctx)
	// the server write timeout must not cut a long-lived stream
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	sess, err := sse.Upgrade(w, r)
	if err != nil {
		h.logger.Error("sse_upgrade_failed", "Streaming unsupported", requestID, nil, err)
		respondError(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}
	sess.Res.Header().Set("Cache-Control", "no-cache")
	sess.Res.Header().Set("Connection", "keep-alive")

	h.logger.Debug("sse_subscribed", "Feed subscriber connected", requestID, nil)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		snap, err := h.service.Snapshot(ctx)
		if err != nil {
			if ctx.Err() == nil {
				h.logger.Error("sse_snapshot_failed", "Failed to build snapshot", requestID, nil, err)
			}
			return
		}
		data, err := json.Marshal(snap)
		if err != nil {
			h.logger.Error("sse_snapshot_failed", "Failed to encode snapshot", requestID, nil, err)
			return
		}

		msg := &sse.Message{}
		msg.AppendData(string(data))
		if err := sess.Send(msg); err != nil {
			return
		}
		if err := sess.Flush(); err != nil {
			h.logger.Error("sse_flush_failed", "Failed to flush snapshot", requestID, nil, err)
			return
		}

		select {
		case <-ctx.Done():
			h.logger.Debug("sse_unsubscribed", "Feed subscriber left", requestID, nil)
			return
		case <-ticker.C:
		}
	}
}

func (h *TrackingHandler) OrdersByDate(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.History(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		code := errorStatus(err)
		if code >= http.StatusInternalServerError {
			h.logger.Error("history_failed", "Failed to load history", RequestID(r.Context()), nil, err)
			respondError(w, "Internal server error", code)
			return
		}
		respondError(w, err.Error(), code)
		return
	}
	if history.Orders == nil {
		history.Orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, history)
}

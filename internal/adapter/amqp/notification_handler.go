package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/domain"
)

type NotificationHandler struct {
	out    io.Writer
	logger logger.Logger
}

func NewNotificationHandler(out io.Writer, logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		out:    out,
		logger: logger,
	}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var t domain.Transition
	if err := json.Unmarshal(body, &t); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse notification", "", nil, err)
		return err
	}

	line := Describe(t)
	h.logger.Debug("notification_received", line, "", map[string]interface{}{
		"order_id":    t.OrderID,
		"new_status":  t.NewStatus,
		"observed_by": t.ObservedBy,
	})

	_, err := fmt.Fprintln(h.out, line)
	return err
}

// Describe renders a transition as "Order #5 (table 3): Received -> Preparing".
func Describe(t domain.Transition) string {
	old := string(t.OldStatus)
	if old == "" {
		old = "new"
	}
	return fmt.Sprintf("Order #%d (table %d): %s -> %s", t.OrderID, t.TableNo, old, t.NewStatus)
}

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/YelzhanWeb/tableside/internal/domain"
	sse "github.com/tmaxmax/go-sse"
)

// maxSnapshotEvent bounds one framed snapshot; a busy day's feed outgrows
// the parser default.
const maxSnapshotEvent = 4 << 20

// StreamSnapshots subscribes to /events and hands every decoded snapshot to
// handle. It returns when the stream ends, fails, or ctx is done; callers own
// reconnection.
func (c *Client) StreamSnapshots(ctx context.Context, handle func(domain.Snapshot)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events", nil)
	if err != nil {
		return fmt.Errorf("failed to build stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.stream.Do(req)
	if err != nil {
		return fmt.Errorf("failed to open event stream: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	c.logger.Info("sse_connected", "Subscribed to order feed", "", nil)

	for ev, err := range sse.Read(resp.Body, &sse.ReadConfig{MaxEventSize: maxSnapshotEvent}) {
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to read event stream: %w", err)
		}
		if ev.Type != "" && ev.Type != "message" {
			continue
		}
		var snap domain.Snapshot
		if err := json.Unmarshal([]byte(ev.Data), &snap); err != nil {
			c.logger.Warn("sse_bad_payload", "Skipping undecodable snapshot", "", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		handle(snap)
	}
	return ctx.Err()
}

package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
)

// HTTPEmitter POSTs audit events as JSON to a configured endpoint. Delivery
// is best effort: callers log and drop errors rather than failing requests.
type HTTPEmitter struct {
	client *http.Client
	url    string
}

func NewHTTPEmitter(url string) *HTTPEmitter {
	return &HTTPEmitter{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
	}
}

type eventPayload struct {
	Event   string    `json:"event"`
	UserID  string    `json:"userId,omitempty"`
	IP      string    `json:"ip,omitempty"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
	SentAt  time.Time `json:"sentAt"`
}

func (e *HTTPEmitter) Emit(ctx context.Context, event ports.AuditEvent) error {
	body, err := json.Marshal(eventPayload{
		Event:   event.Event,
		UserID:  event.UserID,
		IP:      event.IP,
		Success: event.Success,
		Error:   event.Err,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

var _ ports.WebhookEmitter = (*HTTPEmitter)(nil)

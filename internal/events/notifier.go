package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/developer-d723/user-service/pkg/middleware"
	"github.com/developer-d723/user-service/pkg/models"
)

// Transport sends an encoded event to the notifications topic under the
// given routing key. Implemented by rabbitmq.Publisher.
type Transport interface {
	Publish(ctx context.Context, key string, body []byte, correlationID string) error
}

// Notifier publishes user events best-effort. Transport failures are logged
// and swallowed here: the surrounding use case has already committed and
// its outcome must not depend on notification delivery.
type Notifier struct {
	transport Transport
}

// NewNotifier creates a Notifier over the given transport.
func NewNotifier(transport Transport) *Notifier {
	return &Notifier{transport: transport}
}

// PublishUserEvent sends event to the notifications topic, keyed by the
// event's email so same-user events stay ordered. Fire-and-forget: no
// retry, no delivery confirmation, no error returned.
func (n *Notifier) PublishUserEvent(ctx context.Context, event models.UserEvent) {
	correlationID := middleware.CorrelationIDFromContext(ctx)

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Notifier] Failed to encode event: %v correlation_id=%s", err, correlationID)
		return
	}

	log.Printf("[Notifier] Publishing event: type=%s key=%s correlation_id=%s",
		event.EventType, event.Email, correlationID)

	if err := n.transport.Publish(ctx, event.Email, body, correlationID); err != nil {
		log.Printf("[Notifier] Failed to publish event: type=%s key=%s err=%v correlation_id=%s",
			event.EventType, event.Email, err, correlationID)
	}
}

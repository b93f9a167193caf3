package notifications

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/developer-d723/user-service/pkg/models"
)

// Consumer receives user notifications from the topic and records them.
// Delivery is at-most-once from the publisher's point of view, but the
// broker may redeliver, so processing is deduplicated by MessageId.
type Consumer struct {
	DB *sql.DB
}

// NewConsumer creates a new notifications consumer.
func NewConsumer(db *sql.DB) *Consumer {
	return &Consumer{DB: db}
}

// HandleMessage processes one user event delivery.
func (c *Consumer) HandleMessage(delivery amqp.Delivery) error {
	var event models.UserEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		log.Printf("[Notify] Failed to unmarshal event: %v correlation_id=%s", err, delivery.CorrelationId)
		return err
	}

	log.Printf("[Notify] Processing event: type=%s email=%s message_id=%s correlation_id=%s",
		event.EventType, event.Email, delivery.MessageId, delivery.CorrelationId)

	// Idempotency check
	var exists bool
	err := c.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM idempotency_keys WHERE message_id = $1)", delivery.MessageId).Scan(&exists)
	if err != nil {
		log.Printf("[Notify] Error checking idempotency: %v correlation_id=%s", err, delivery.CorrelationId)
		return err
	}
	if exists {
		log.Printf("[Notify] Duplicate delivery ignored: message_id=%s correlation_id=%s", delivery.MessageId, delivery.CorrelationId)
		return nil // Already processed — ack it
	}

	_, err = c.DB.Exec(
		`INSERT INTO notification_log (message_id, correlation_id, event_type, user_email)
		 VALUES ($1, $2, $3, $4)`,
		delivery.MessageId, delivery.CorrelationId, string(event.EventType), event.Email,
	)
	if err != nil {
		log.Printf("[Notify] Error writing notification log: %v correlation_id=%s", err, delivery.CorrelationId)
		return err
	}

	// Record idempotency key
	_, _ = c.DB.Exec("INSERT INTO idempotency_keys (message_id) VALUES ($1) ON CONFLICT DO NOTHING", delivery.MessageId)

	if err := c.notify(event); err != nil {
		return err
	}

	log.Printf("[Notify] Notification recorded: type=%s email=%s correlation_id=%s",
		event.EventType, event.Email, delivery.CorrelationId)
	return nil
}

// notify is where an actual channel (email, webhook) would hang off the
// event. For now the log line is the notification.
func (c *Consumer) notify(event models.UserEvent) error {
	switch event.EventType {
	case models.EventUserCreated:
		log.Printf("[Notify] Welcome notification for %s", event.Email)
	case models.EventUserDeleted:
		log.Printf("[Notify] Goodbye notification for %s", event.Email)
	default:
		return fmt.Errorf("unknown event type: %s", event.EventType)
	}
	return nil
}

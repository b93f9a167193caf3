package models

// EventType represents the type of domain event.
type EventType string

const (
	EventUserCreated EventType = "USER_CREATED"
	EventUserDeleted EventType = "USER_DELETED"
)

// UserEvent is the notification payload published on user creation and
// deletion. The email doubles as the routing key, so consumers see events
// for the same user in publish order. Updates do not produce events.
type UserEvent struct {
	EventType EventType `json:"event_type"`
	Email     string    `json:"email"`
}

package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the standard implementation used across the service.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event codes emitted by the diagnostic flow.
const (
	TypeSessionStarted   = "SESSION_STARTED"
	TypeSessionCompleted = "SESSION_COMPLETED"
	TypeWebhookDelivered = "WEBHOOK_DELIVERED"
	TypeWebhookFailed    = "WEBHOOK_FAILED"
)

// NewSessionStarted is emitted when a visitor passes the access gate.
func NewSessionStarted(sessionID, email string) Event {
	return BaseEvent{
		Type: TypeSessionStarted,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"email":      email,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewSessionCompleted is emitted after finalize, carrying the gateway
// delivery outcomes for the observability consumer.
func NewSessionCompleted(sessionID, email string, totalScore int, persisted bool, webhookSent bool) Event {
	return BaseEvent{
		Type: TypeSessionCompleted,
		Data: map[string]interface{}{
			"session_id":   sessionID,
			"email":        email,
			"total_score":  totalScore,
			"persisted":    persisted,
			"webhook_sent": webhookSent,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewWebhookDelivered is emitted after the marketing webhook accepted
// the completion payload.
func NewWebhookDelivered(sessionID string) Event {
	return BaseEvent{
		Type: TypeWebhookDelivered,
		Data: map[string]interface{}{
			"session_id": sessionID,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewWebhookFailed is emitted when the webhook delivery gave up.
func NewWebhookFailed(sessionID, reason string) Event {
	return BaseEvent{
		Type: TypeWebhookFailed,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"reason":     reason,
		},
		OccurredAt: time.Now().UTC(),
	}
}

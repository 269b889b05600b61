package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"garageportal/pkg/logger"
)

// Event types the portal publishes for downstream analytics.
const (
	TypeSignIn          = "portal.sign_in"
	TypeSignUp          = "portal.sign_up"
	TypeSlotCreated     = "portal.slot_created"
	TypeSlotUpdated     = "portal.slot_updated"
	TypeSlotBooked      = "portal.slot_booked"
	TypeRequestDecided  = "portal.request_decided"
	TypeVehicleAdded    = "portal.vehicle_added"
	TypeVehicleUpdated  = "portal.vehicle_updated"
	TypeVehicleDeleted  = "portal.vehicle_deleted"
	TypeAccountToggled  = "portal.account_toggled"
	TypeManagerCreated  = "portal.manager_created"
	TypeProfileUpdated  = "portal.profile_updated"
)

const (
	headerEventID   = "event-id"
	headerEventType = "event-type"
	headerSource    = "source"
	headerTimestamp = "timestamp"
)

// Event is one user action, keyed by the acting user so a partition holds
// that user's actions in order.
type Event struct {
	ID     string         `json:"eventId"`
	Type   string         `json:"eventType"`
	UserID string         `json:"userId"`
	At     time.Time      `json:"occurredAt"`
	Data   map[string]any `json:"data,omitempty"`
}

// Publisher writes action events. Publishing is best effort: the portal
// never fails a user action because the broker is down. A Publisher built
// without brokers is disabled and every Publish is a no-op.
type Publisher struct {
	writer *kafka.Writer
	source string
	log    *logger.Logger
	closed bool
	mu     sync.RWMutex
}

func NewPublisher(brokers []string, topic, source string, log *logger.Logger) *Publisher {
	p := &Publisher{source: source, log: log}

	if len(brokers) == 0 || topic == "" {
		log.Info("Action event publishing disabled", "reason", "no brokers configured")
		return p
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("kafka writer error", "detail", fmt.Sprintf(msg, args...))
		}),
	}

	return p
}

// Publish emits one event. Failures are logged and swallowed.
func (p *Publisher) Publish(ctx context.Context, eventType, userID string, data map[string]any) {
	p.mu.RLock()
	writer, closed := p.writer, p.closed
	p.mu.RUnlock()

	if writer == nil || closed {
		return
	}

	event := Event{
		ID:     uuid.New().String(),
		Type:   eventType,
		UserID: userID,
		At:     time.Now(),
		Data:   data,
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to encode action event", "event_type", eventType, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(userID),
		Value: value,
		Time:  event.At,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(event.ID)},
			{Key: headerEventType, Value: []byte(eventType)},
			{Key: headerSource, Value: []byte(p.source)},
			{Key: headerTimestamp, Value: []byte(event.At.Format(time.RFC3339))},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warn("Failed to publish action event",
			"event_type", eventType,
			"user_id", userID,
			"error", err,
		)
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.writer == nil {
		p.closed = true
		return nil
	}

	p.closed = true
	return p.writer.Close()
}

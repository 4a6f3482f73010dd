package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeUserCreated       EventType = "user_created"
	EventTypePenaltyRecorded   EventType = "penalty_recorded"
	EventTypeWitnessAdded      EventType = "witness_added"
	EventTypeInvitationCreated EventType = "invitation_created"
	EventTypePaymentConfirmed  EventType = "payment_confirmed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// UserCreatedEvent represents a new user resolved into existence
type UserCreatedEvent struct {
	UserID string
	Name   string
	Email  string
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// PenaltyRecordedEvent represents a penalty appended to a challenge's ledger
type PenaltyRecordedEvent struct {
	ChallengeID  string
	PenaltyID    string
	Amount       int64
	RecordedBy   string
	TotalPenalty int64
}

func (e PenaltyRecordedEvent) Type() EventType {
	return EventTypePenaltyRecorded
}

// WitnessAddedEvent represents a witness joining a challenge
type WitnessAddedEvent struct {
	ChallengeID string
	WitnessID   string
}

func (e WitnessAddedEvent) Type() EventType {
	return EventTypeWitnessAdded
}

// InvitationCreatedEvent represents a pending invitation being created
type InvitationCreatedEvent struct {
	InvitationID string
	ChallengeID  string
	FromUserID   string
	ToUserID     string
}

func (e InvitationCreatedEvent) Type() EventType {
	return EventTypeInvitationCreated
}

// PaymentConfirmedEvent represents a settlement clearing a challenge's
// penalty balance
type PaymentConfirmedEvent struct {
	ChallengeID   string
	SettlementID  string
	ClearedAmount int64
	ConfirmedBy   string
}

func (e PaymentConfirmedEvent) Type() EventType {
	return EventTypePaymentConfirmed
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful DB commit. Events are emitted on a
// background context so they outlive the request's transaction context.
func (b *TransactionalBus) Flush(ctx context.Context) {
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard is called after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

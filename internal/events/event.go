// Package events provides domain event definitions for decoupled
// communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"kalkyle/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserRegistered is published when a new user successfully registers.
// The settings module listens for it to seed default company settings.
type UserRegistered struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
}

func (e UserRegistered) EventName() string { return "auth.user.registered" }

// =============================================================================
// Quotes Domain Events
// =============================================================================

// QuoteCreated is published when a quote is created and numbered.
type QuoteCreated struct {
	BaseEvent
	QuoteID     uuid.UUID `json:"quoteId"`
	UserID      uuid.UUID `json:"userId"`
	QuoteNumber string    `json:"quoteNumber"`
}

func (e QuoteCreated) EventName() string { return "quotes.quote.created" }

// QuoteStatusChanged is published when a quote moves to another status.
type QuoteStatusChanged struct {
	BaseEvent
	QuoteID   uuid.UUID `json:"quoteId"`
	UserID    uuid.UUID `json:"userId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e QuoteStatusChanged) EventName() string { return "quotes.quote.status_changed" }

// QuoteSent is published when a quote has been emailed to the customer.
type QuoteSent struct {
	BaseEvent
	QuoteID       uuid.UUID `json:"quoteId"`
	UserID        uuid.UUID `json:"userId"`
	QuoteNumber   string    `json:"quoteNumber"`
	CustomerEmail string    `json:"customerEmail"`
}

func (e QuoteSent) EventName() string { return "quotes.quote.sent" }

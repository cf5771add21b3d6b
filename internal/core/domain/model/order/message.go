package order

import (
	"fmt"
	"time"

	"orderflow/internal/pkg/errs"
)

// Actor tags the author of a delivery message.
type Actor string

const (
	ActorAdmin           Actor = "admin"
	ActorHub             Actor = "hub"
	ActorDeliveryPartner Actor = "delivery-partner"
	ActorSystem          Actor = "system"
)

// ActorFromString parses an actor tag, rejecting anything outside the enum.
func ActorFromString(s string) (Actor, error) {
	actor := Actor(s)
	if err := actor.Validate(); err != nil {
		return "", err
	}
	return actor, nil
}

// Validate checks that the actor belongs to the closed enum.
func (a Actor) Validate() error {
	switch a {
	case ActorAdmin, ActorHub, ActorDeliveryPartner, ActorSystem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"actor", fmt.Errorf("%q is not a valid actor", string(a)))
	}
}

// DeliveryMessage is one entry of the append-only, customer-visible status
// narration. Messages are immutable once written; corrections are new messages.
// Display ordering is by timestamp, with insertion order as the tie-breaker,
// which the log preserves naturally.
type DeliveryMessage struct {
	text      string
	actor     Actor
	timestamp time.Time
}

// NewDeliveryMessage creates a message after validating text and actor.
func NewDeliveryMessage(text string, actor Actor, timestamp time.Time) (DeliveryMessage, error) {
	if text == "" {
		return DeliveryMessage{}, errs.NewValueIsRequiredError("text")
	}
	if err := actor.Validate(); err != nil {
		return DeliveryMessage{}, err
	}

	return DeliveryMessage{
		text:      text,
		actor:     actor,
		timestamp: timestamp,
	}, nil
}

// Text returns the human-readable message body.
func (m DeliveryMessage) Text() string {
	return m.text
}

// Actor returns the author tag of the message.
func (m DeliveryMessage) Actor() Actor {
	return m.actor
}

// Timestamp returns when the message was written.
func (m DeliveryMessage) Timestamp() time.Time {
	return m.timestamp
}

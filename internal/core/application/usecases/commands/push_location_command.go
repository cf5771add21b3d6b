package commands

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrPushLocationCommandIsNotConstructed = errors.New(
	"PushLocationCommand must be created via NewPushLocationCommand constructor",
)

// PushLocationCommand represents one courier position report for an order.
// Coordinate range checks live in the domain; the report timestamp defaults
// to the ingestion time when the client did not send one.
type PushLocationCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	latitude  float64
	longitude float64
	timestamp time.Time

	guard guard.ConstructorGuard
}

// NewPushLocationCommand creates a command to ingest a position report.
func NewPushLocationCommand(
	orderID kernel.UUID, latitude, longitude float64, timestamp time.Time,
) (PushLocationCommand, error) {
	if err := orderID.Validate(); err != nil {
		return PushLocationCommand{}, err
	}

	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	return PushLocationCommand{
		orderID:   orderID,
		latitude:  latitude,
		longitude: longitude,
		timestamp: timestamp,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PushLocationCommand) Validate() error {
	return c.guard.Validate(ErrPushLocationCommandIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (c PushLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Latitude returns the reported latitude in degrees.
func (c PushLocationCommand) Latitude() float64 {
	return c.latitude
}

// Longitude returns the reported longitude in degrees.
func (c PushLocationCommand) Longitude() float64 {
	return c.longitude
}

// Timestamp returns the report time.
func (c PushLocationCommand) Timestamp() time.Time {
	return c.timestamp
}

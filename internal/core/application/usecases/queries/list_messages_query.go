package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrListMessagesQueryIsNotConstructed = errors.New(
	"ListMessagesQuery must be created via NewListMessagesQuery constructor",
)

// ListMessagesQuery retrieves an order's delivery message log.
type ListMessagesQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListMessagesQuery creates a query for an order's message log.
func NewListMessagesQuery(orderID kernel.UUID) (ListMessagesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListMessagesQuery{}, err
	}

	return ListMessagesQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListMessagesQuery) Validate() error {
	return q.guard.Validate(ErrListMessagesQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose log is requested.
func (q ListMessagesQuery) OrderID() kernel.UUID {
	return q.orderID
}

// MessageResponse is one entry of the delivery message log.
type MessageResponse struct {
	Text      string    `json:"text"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrLatestLocationQueryIsNotConstructed = errors.New(
	"LatestLocationQuery must be created via NewLatestLocationQuery constructor",
)

// LatestLocationQuery retrieves the most recent courier position reported for
// an order.
type LatestLocationQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewLatestLocationQuery creates a query for an order's latest location.
func NewLatestLocationQuery(orderID kernel.UUID) (LatestLocationQuery, error) {
	if err := orderID.Validate(); err != nil {
		return LatestLocationQuery{}, err
	}

	return LatestLocationQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q LatestLocationQuery) Validate() error {
	return q.guard.Validate(ErrLatestLocationQueryIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (q LatestLocationQuery) OrderID() kernel.UUID {
	return q.orderID
}

// LatestLocationQueryResponse is the newest accepted position report.
type LatestLocationQueryResponse struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

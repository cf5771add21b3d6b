package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListActiveOrdersQueryIsNotConstructed = errors.New(
	"ListActiveOrdersQuery must be created via NewListActiveOrdersQuery constructor",
)

// ListActiveOrdersQuery retrieves a summary row for every order that is not
// yet delivered or cancelled. Used by the back-office board.
type ListActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewListActiveOrdersQuery creates a parameterless query for in-flight orders.
func NewListActiveOrdersQuery() ListActiveOrdersQuery {
	return ListActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListActiveOrdersQueryIsNotConstructed)
}

// ListActiveOrdersQueryResponse is one summary row of the in-flight board.
type ListActiveOrdersQueryResponse struct {
	ID           kernel.UUID     `json:"id"`
	Status       string          `json:"status"`
	Cancellation string          `json:"cancellation"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
	CouponCode   string          `json:"couponCode,omitempty"`
	PlacedAt     time.Time       `json:"placedAt"`
}

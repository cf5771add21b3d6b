// Package queries contains read-only operations over the order and coupon
// stores. Query handlers read the database directly and return response DTOs,
// bypassing the domain aggregates, per the CQRS read side.
package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full detail view of one order.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's detail view.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderLineResponse is one priced line in the detail view.
type OrderLineResponse struct {
	Kind      string          `json:"kind"`
	ItemID    string          `json:"itemId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CourierResponse is the courier assignment in the detail view.
type CourierResponse struct {
	CourierName        string `json:"courierName"`
	TrackingID         string `json:"trackingId"`
	TrackingURLPattern string `json:"trackingUrlPattern,omitempty"`
}

// ProofOfDeliveryResponse is the captured POD record in the detail view.
type ProofOfDeliveryResponse struct {
	RecipientName string    `json:"recipientName"`
	SignatureRef  string    `json:"signatureRef"`
	PhotoRef      string    `json:"photoRef,omitempty"`
	CapturedAt    time.Time `json:"capturedAt"`
}

// AttemptResponse is one failed delivery attempt in the detail view.
type AttemptResponse struct {
	Reason    string    `json:"reason"`
	Note      string    `json:"note,omitempty"`
	PhotoRef  string    `json:"photoRef,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// GetOrderQueryResponse is the full order detail view: frozen pricing, the
// status with its visit timestamps, cancellation state, courier, POD, the
// failed attempt log, the message log, and the newest retained location.
type GetOrderQueryResponse struct {
	ID               kernel.UUID                  `json:"id"`
	Status           string                       `json:"status"`
	Cancellation     string                       `json:"cancellation"`
	Lines            []OrderLineResponse          `json:"lines"`
	Subtotal         decimal.Decimal              `json:"subtotal"`
	Tax              decimal.Decimal              `json:"tax"`
	Shipping         decimal.Decimal              `json:"shipping"`
	Discount         decimal.Decimal              `json:"discount"`
	GrandTotal       decimal.Decimal              `json:"grandTotal"`
	CouponCode       string                       `json:"couponCode,omitempty"`
	StatusTimestamps map[string]time.Time         `json:"statusTimestamps"`
	Courier          *CourierResponse             `json:"courier,omitempty"`
	ProofOfDelivery  *ProofOfDeliveryResponse     `json:"proofOfDelivery,omitempty"`
	Attempts         []AttemptResponse            `json:"attempts"`
	Messages         []MessageResponse            `json:"messages"`
	LatestLocation   *LatestLocationQueryResponse `json:"latestLocation,omitempty"`
	PlacedAt         time.Time                    `json:"placedAt"`
}

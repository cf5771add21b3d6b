package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListActiveOrdersQueryHandler reads summary rows for all in-flight orders.
type ListActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListActiveOrdersQueryHandler creates a handler for the in-flight board query.
// Requires a GORM database connection for query execution.
func NewListActiveOrdersQueryHandler(db *gorm.DB) ListActiveOrdersQueryHandler {
	return ListActiveOrdersQueryHandler{db: db}
}

// Handle executes the query for all non-terminal orders, oldest first.
func (h ListActiveOrdersQueryHandler) Handle(
	ctx context.Context, query ListActiveOrdersQuery,
) ([]ListActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]ListActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			cancellation_state,
			grand_total,
			coupon_code,
			placed_at
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY placed_at, id
	`, int(order.Delivered), int(order.Cancelled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                        uuid.UUID
			status, cancellationState int
			grandTotal                decimal.Decimal
			couponCode                string
			resp                      ListActiveOrdersQueryResponse
		)

		if err = rows.Scan(&id, &status, &cancellationState, &grandTotal, &couponCode, &resp.PlacedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		if statusErr := order.Status(status).Validate(); statusErr != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("status", statusErr)
		}

		resp.ID = orderID
		resp.Status = order.Status(status).String()
		resp.Cancellation = order.CancellationState(cancellationState).String()
		resp.GrandTotal = grandTotal
		resp.CouponCode = couponCode
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order row and shapes it into the detail view.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the detail query for one order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			cancellation_state,
			subtotal,
			tax,
			shipping,
			discount,
			grand_total,
			coupon_code,
			lines,
			status_timestamps,
			courier,
			proof_of_delivery,
			attempts,
			messages,
			track,
			placed_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id                                            uuid.UUID
		status, cancellationState                     int
		subtotal, tax, shipping, discount, grandTotal decimal.Decimal
		couponCode                                    string
		linesDoc, timestampsDoc, attemptsDoc          []byte
		courierDoc, podDoc, messagesDoc, trackDoc     []byte
		placedAt                                      time.Time
	)
	if err := row.Scan(
		&id, &status, &cancellationState,
		&subtotal, &tax, &shipping, &discount, &grandTotal, &couponCode,
		&linesDoc, &timestampsDoc, &courierDoc, &podDoc, &attemptsDoc,
		&messagesDoc, &trackDoc,
		&placedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		ID:           orderID,
		Status:       order.Status(status).String(),
		Cancellation: order.CancellationState(cancellationState).String(),
		Subtotal:     subtotal,
		Tax:          tax,
		Shipping:     shipping,
		Discount:     discount,
		GrandTotal:   grandTotal,
		CouponCode:   couponCode,
		PlacedAt:     placedAt,
	}

	if err = json.Unmarshal(linesDoc, &resp.Lines); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = json.Unmarshal(timestampsDoc, &resp.StatusTimestamps); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = json.Unmarshal(courierDoc, &resp.Courier); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = json.Unmarshal(podDoc, &resp.ProofOfDelivery); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = json.Unmarshal(attemptsDoc, &resp.Attempts); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = json.Unmarshal(messagesDoc, &resp.Messages); err != nil {
		return GetOrderQueryResponse{}, err
	}
	sort.SliceStable(resp.Messages, func(i, j int) bool {
		return resp.Messages[i].Timestamp.Before(resp.Messages[j].Timestamp)
	})

	var track []LatestLocationQueryResponse
	if err = json.Unmarshal(trackDoc, &track); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if len(track) > 0 {
		resp.LatestLocation = &track[len(track)-1]
	}

	return resp, nil
}

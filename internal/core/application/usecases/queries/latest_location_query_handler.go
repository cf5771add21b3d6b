package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// LatestLocationQueryHandler reads the tail of an order's location track.
type LatestLocationQueryHandler struct {
	db *gorm.DB
}

// NewLatestLocationQueryHandler creates a handler for latest location queries.
func NewLatestLocationQueryHandler(db *gorm.DB) LatestLocationQueryHandler {
	return LatestLocationQueryHandler{db: db}
}

// Handle executes the latest location query. Returns nil without error when
// the order exists but no position has been reported yet.
func (h LatestLocationQueryHandler) Handle(
	ctx context.Context, query LatestLocationQuery,
) (*LatestLocationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var doc []byte
	row := h.db.WithContext(ctx).Raw(`
		SELECT track FROM orders WHERE id = ?
	`, query.OrderID().Bytes()).Row()
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return nil, err
	}

	var track []LatestLocationQueryResponse
	if err := json.Unmarshal(doc, &track); err != nil {
		return nil, err
	}
	if len(track) == 0 {
		return nil, nil
	}

	latest := track[len(track)-1]
	return &latest, nil
}

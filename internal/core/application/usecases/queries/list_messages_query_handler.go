package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"

	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListMessagesQueryHandler reads an order's message log.
type ListMessagesQueryHandler struct {
	db *gorm.DB
}

// NewListMessagesQueryHandler creates a handler for message log queries.
func NewListMessagesQueryHandler(db *gorm.DB) ListMessagesQueryHandler {
	return ListMessagesQueryHandler{db: db}
}

// Handle executes the message log query. Messages are returned ordered by
// timestamp, with insertion order as the tie-breaker (the stored log already
// preserves insertion order, so a stable sort keeps ties intact).
func (h ListMessagesQueryHandler) Handle(ctx context.Context, query ListMessagesQuery) ([]MessageResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var doc []byte
	row := h.db.WithContext(ctx).Raw(`
		SELECT messages FROM orders WHERE id = ?
	`, query.OrderID().Bytes()).Row()
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return nil, err
	}

	messages := make([]MessageResponse, 0)
	if err := json.Unmarshal(doc, &messages); err != nil {
		return nil, err
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})

	return messages, nil
}

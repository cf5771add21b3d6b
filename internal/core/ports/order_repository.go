// Package ports defines repository interfaces for the order domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// with their complete state: lines, totals, status history, cancellation,
// courier assignment, proof of delivery, messages, attempts, and track.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Update succeeds only when the stored version matches the version the
	// aggregate was loaded with; a losing concurrent writer gets
	// errs.ConcurrencyConflictError and should reload and retry.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves all orders not yet in a terminal status.
	// Used by back-office views to list in-flight orders.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}

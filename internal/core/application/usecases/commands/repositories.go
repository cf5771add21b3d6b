// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CouponRepoFactory provides access to coupon repository within a transaction.
	CouponRepoFactory interface {
		CouponRepository() ports.CouponRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CouponUoW manages transactions for coupon-only operations.
	// Used when commands only modify coupon aggregates.
	CouponUoW interface {
		TxManager
		CouponRepoFactory
	}

	// CouponUoWFactory creates new coupon unit of work instances.
	CouponUoWFactory interface {
		Create() CouponUoW
	}

	// UoW manages transactions across both order and coupon aggregates.
	// Used for commands that read coupons while creating orders.
	UoW interface {
		TxManager
		OrderRepoFactory
		CouponRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

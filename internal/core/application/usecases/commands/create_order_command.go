package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLinesAreRequired = errors.New("at least one order line is required")
)

// OrderLineSpec describes one requested order line: a food or combo reference
// with its quantity and the price captured for it at checkout time.
type OrderLineSpec struct {
	Kind      order.LineKind
	ItemID    string
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderCommand represents a checkout request: the lines to order and an
// optional coupon code. Pricing happens in the handler; the command only
// carries validated input.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, lines, "SUMMER10")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, engine, pricingConfig)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	lines      []OrderLineSpec
	couponCode string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the order ID is valid and at least one line is present;
// per-line business rules are enforced by the domain when lines are built.
func NewCreateOrderCommand(orderID kernel.UUID, lines []OrderLineSpec, couponCode string) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	orderCommand.couponCode = couponCode
	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []OrderLineSpec {
	return c.lines
}

// CouponCode returns the coupon code to apply, or "" when none was given.
func (c CreateOrderCommand) CouponCode() string {
	return c.couponCode
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLineSpec) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	c.lines = append([]OrderLineSpec(nil), lines...)
	return nil
}

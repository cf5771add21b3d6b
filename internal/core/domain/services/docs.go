// Package services provides domain services for computations that do not
// belong to a single aggregate.
//
// The package includes:
//   - PricingEngine: a pure service deriving the monetary breakdown of a cart
//     (subtotal, tax, shipping, discount, grand total) from frozen line prices
//     and explicitly passed pricing settings
//
// Domain services here hold no state and perform no I/O.
package services

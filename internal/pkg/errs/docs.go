// Package errs provides standardized error types for the order lifecycle core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the error taxonomy exposed to callers:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed input, rejected before touching stored state
//   - ObjectNotFoundError: unknown order id or coupon code
//   - StateConflictError: an operation that is illegal in the object's current
//     state (illegal status transition, repeated write-once status, delivery
//     without proof of delivery, cancellation decision without an active request)
//   - ConcurrencyConflictError: a mutation that lost the per-order serialization
//     race; callers retry with a fresh snapshot
//   - VersionIsInvalidError: malformed or mismatched aggregate versions
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrStateConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify the error by its sentinel
//
// Errors always carry enough structured detail (sentinel + offending parameter
// or status) for the calling surface to render a specific message rather than
// a generic failure.
package errs

// Package kernel provides core domain primitives shared across the order
// lifecycle model. Currently this is the UUID value object used as the identity
// of every aggregate.
//
// Primitives in this package are immutable and thread-safe, enforce their own
// invariants, and are only constructible through validating factory functions.
package kernel

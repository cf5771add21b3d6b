// Package guard implements the constructor guard pattern used by value objects
// and command/query types throughout the application. Embedding a ConstructorGuard
// in a struct makes zero-value instances detectable, so code paths can insist that
// an object went through its validating constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil
// validation error for an object that was not properly constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed objects from zero values.
// The internal flag can only be set through NewConstructorGuard, so any struct
// embedding a guard fails validation unless it was built by its constructor.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed. Call it from the
// object's constructor and store the result in the embedded guard field.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the object was constructed through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

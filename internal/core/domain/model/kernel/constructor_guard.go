package kernel

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when no
// specific validation error is provided for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard enforces that domain entities and value objects are created
// through their designated constructors. The zero value fails validation, so a
// struct literal bypassing the constructor is detectable.
//
// Example:
//
//	type Container struct {
//	    id    kernel.UUID
//	    guard kernel.ConstructorGuard
//	}
//
//	func (c *Container) Validate() error {
//	    return c.guard.Validate(ErrContainerIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard, validationError otherwise.
// A nil validationError falls back to ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

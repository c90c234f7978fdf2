package ecs

import "errors"

var (
	// ErrUnregisteredComponent is returned when a component type is attached or
	// queried before World.Register, or a resource is fetched before insertion.
	ErrUnregisteredComponent = errors.New("unregistered component")

	// ErrAccessConflict reports a violation of the shared/exclusive access rule.
	// It indicates a bug in a system definition and is never recovered.
	ErrAccessConflict = errors.New("access conflict")

	ErrCyclicDependency  = errors.New("cyclic dependency")
	ErrUnknownDependency = errors.New("unknown dependency")
	ErrDuplicateSystem   = errors.New("duplicate system")
)

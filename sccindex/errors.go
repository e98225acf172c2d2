package sccindex

import "errors"

var (
	// ErrAlreadyOnStack is returned by AddToStack when the product flow is
	// already present on the open traversal stack.
	ErrAlreadyOnStack = errors.New("sccindex: product flow already on stack")

	// ErrUnlabeled is returned when an operation references a product flow
	// that has not yet been assigned to a strongly-connected component.
	ErrUnlabeled = errors.New("sccindex: product flow has no assigned component")
)

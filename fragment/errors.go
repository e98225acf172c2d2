package fragment

import "errors"

var (
	// ErrRefIsBackground is returned when New is asked to build a fragment
	// for a product flow that belongs to the background partition; such a
	// flow has no foreground fragment of its own.
	ErrRefIsBackground = errors.New("fragment: reference product flow is part of the background")

	// ErrRefNotInFragment signals an internal inconsistency: the
	// reference flow is missing from its own fragment's column index.
	ErrRefNotInFragment = errors.New("fragment: reference product flow missing from its own fragment")
)

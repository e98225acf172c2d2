package resolve

import "errors"

// ErrUnknownStrategy is returned when Resolve is called with a Strategy
// value it does not recognize.
var ErrUnknownStrategy = errors.New("resolve: unknown termination strategy")

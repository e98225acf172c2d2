package entry

import "errors"

// ErrRepeatAdjustment is returned when AdjustVal is called more than once
// on the same entry. Entries are adjusted exactly once, when their owning
// product flow's inbound exchange value becomes known.
var ErrRepeatAdjustment = errors.New("entry: value already adjusted")

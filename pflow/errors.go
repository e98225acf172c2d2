package pflow

import "errors"

// ErrNilProcess is returned when a ProductFlow or Emission is constructed
// with a nil process.
var ErrNilProcess = errors.New("pflow: process is nil")

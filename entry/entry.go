// Package entry holds the raw accumulated matrix entries produced while
// traversing the technosphere graph, before they are normalized and
// written into a sparse matrix.
package entry

import "github.com/lcafoundry/lcicore/pflow"

// MatrixEntry accumulates the unnormalized exchange value between a
// parent product flow and the product flow it terminates to (an A*
// entry). The value must be divided by the parent's inbound exchange
// value exactly once, via AdjustVal, before it is usable.
type MatrixEntry struct {
	Parent   *pflow.ProductFlow
	Term     *pflow.ProductFlow
	value    float64
	adjusted bool
}

// New builds a MatrixEntry for the exchange of value between parent and term.
func New(parent, term *pflow.ProductFlow, value float64) *MatrixEntry {
	return &MatrixEntry{Parent: parent, Term: term, value: value}
}

// Value returns the entry's current value (raw before AdjustVal, normalized after).
func (e *MatrixEntry) Value() float64 { return e.value }

// Adjusted reports whether AdjustVal has already run.
func (e *MatrixEntry) Adjusted() bool { return e.adjusted }

// AdjustVal normalizes the entry by the parent's inbound exchange value.
// Returns ErrRepeatAdjustment if called more than once.
func (e *MatrixEntry) AdjustVal() error {
	if e.adjusted {
		return ErrRepeatAdjustment
	}
	e.value /= e.Parent.InboundEV()
	e.adjusted = true
	return nil
}

// CutoffEntry accumulates the unnormalized value of an elementary exchange
// (a B* entry) attributed to a parent product flow.
type CutoffEntry struct {
	Parent   *pflow.ProductFlow
	Emission *pflow.Emission
	value    float64
	adjusted bool
}

// NewCutoff builds a CutoffEntry for the elementary exchange of value
// between parent and emission.
func NewCutoff(parent *pflow.ProductFlow, emission *pflow.Emission, value float64) *CutoffEntry {
	return &CutoffEntry{Parent: parent, Emission: emission, value: value}
}

// Value returns the entry's current value (raw before AdjustVal, normalized after).
func (e *CutoffEntry) Value() float64 { return e.value }

// Adjusted reports whether AdjustVal has already run.
func (e *CutoffEntry) Adjusted() bool { return e.adjusted }

// AdjustVal normalizes the entry by the parent's inbound exchange value.
// Returns ErrRepeatAdjustment if called more than once.
func (e *CutoffEntry) AdjustVal() error {
	if e.adjusted {
		return ErrRepeatAdjustment
	}
	e.value /= e.Parent.InboundEV()
	e.adjusted = true
	return nil
}

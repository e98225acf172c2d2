// Package pflow models the two kinds of nodes that flow through an LCI
// matrix traversal: product flows (technosphere exchanges terminating at
// a process) and emissions (elementary exchanges terminating in nature).
package pflow

import (
	"github.com/lcafoundry/lcicore/archive"
	"github.com/lcafoundry/lcicore/internal/logging"
)

// Key uniquely identifies a ProductFlow by the (flow, process) pair it
// represents. ProcessID is empty for a boundary flow that could not be
// matched to a reference exchange on its terminating process.
type Key struct {
	FlowID    string
	ProcessID string
}

// ProductFlow is one column/row of the technosphere matrix: a flow
// produced by process, scaled by the inbound exchange value on that
// process's matching reference exchange.
type ProductFlow struct {
	index     int
	flow      archive.Flow
	process   *archive.Process
	key       Key
	inboundEV float64
	boundary  bool
}

// New builds a ProductFlow for flow terminating at process. index is the
// flow's assigned matrix row/column. If process declares no reference
// exchange matching flow, the ProductFlow becomes a boundary flow: its
// identity no longer carries the process (Key.ProcessID is empty) and its
// inbound exchange value defaults to 1. The supplied logger receives a
// warning in that case, and again if a matched reference exchange has a
// null value.
func New(index int, flow archive.Flow, process *archive.Process, log logging.Logger) (*ProductFlow, error) {
	if process == nil {
		return nil, ErrNilProcess
	}
	if log == nil {
		log = logging.Nop()
	}

	pf := &ProductFlow{index: index, flow: flow, process: process}

	ref, ok := process.FindReference(flow.ID)
	if !ok {
		log.Warnf("pflow: no matching reference exchange for flow %q on process %q", flow.ID, process.ID)
		pf.key = Key{FlowID: flow.ID, ProcessID: ""}
		pf.inboundEV = 1
		pf.boundary = true
		return pf, nil
	}

	pf.key = Key{FlowID: flow.ID, ProcessID: process.ID}
	ev := ref.Amount(1)
	if ref.Value == nil {
		log.Warnf("pflow: null inbound exchange value for flow %q on process %q, defaulting to 1", flow.ID, process.ID)
	}
	if ref.Direction == archive.DirectionInput {
		ev = -ev
	}
	pf.inboundEV = ev
	return pf, nil
}

// Index returns the flow's assigned matrix row/column.
func (pf *ProductFlow) Index() int { return pf.index }

// Key returns the flow's identity key.
func (pf *ProductFlow) Key() Key { return pf.key }

// Flow returns the underlying archive flow.
func (pf *ProductFlow) Flow() archive.Flow { return pf.flow }

// Process returns the terminating process (never nil, even for boundary flows).
func (pf *ProductFlow) Process() *archive.Process { return pf.process }

// InboundEV returns the signed exchange value used to normalize matrix
// entries terminating at this flow.
func (pf *ProductFlow) InboundEV() float64 { return pf.inboundEV }

// AdjustEV accumulates delta into the inbound exchange value. Used when a
// process exchanges with itself: rather than producing a matrix entry,
// the self-dependency folds directly into the node's own scale. Callers
// pass the negated direction-adjusted exchange value, so that a 0.1-unit
// self-consumption of the reference flow leaves inboundEV at 0.9.
func (pf *ProductFlow) AdjustEV(delta float64) {
	pf.inboundEV += delta
}

// IsBoundary reports whether this flow had no matching reference exchange
// on its terminating process.
func (pf *ProductFlow) IsBoundary() bool { return pf.boundary }

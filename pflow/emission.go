package pflow

import "github.com/lcafoundry/lcicore/archive"

// EmissionKey uniquely identifies an Emission by the (flow, direction)
// pair it represents: every process that exchanges the same elementary
// flow in the same direction contributes to the same exterior-matrix row.
type EmissionKey struct {
	FlowID    string
	Direction archive.Direction
}

// Emission is an elementary exchange between a process and the natural
// environment: one row of the B* biosphere matrix. The process recorded
// on it is whichever one first introduced the row; the row itself is
// shared by every process exchanging the same (flow, direction).
type Emission struct {
	index     int
	flow      archive.Flow
	process   *archive.Process
	direction archive.Direction
	key       EmissionKey
}

// NewEmission builds an Emission for flow exchanged in the given
// direction, first observed on process. index is the flow's assigned
// matrix row.
func NewEmission(index int, flow archive.Flow, process *archive.Process, direction archive.Direction) (*Emission, error) {
	if process == nil {
		return nil, ErrNilProcess
	}
	return &Emission{
		index:     index,
		flow:      flow,
		process:   process,
		direction: direction,
		key:       EmissionKey{FlowID: flow.ID, Direction: direction},
	}, nil
}

// Index returns the emission's assigned matrix row.
func (e *Emission) Index() int { return e.index }

// Key returns the emission's identity key.
func (e *Emission) Key() EmissionKey { return e.key }

// Flow returns the underlying elementary flow.
func (e *Emission) Flow() archive.Flow { return e.flow }

// Process returns the emitting process.
func (e *Emission) Process() *archive.Process { return e.process }

// Direction returns the exchange direction (Input/Output) of the emission.
func (e *Emission) Direction() archive.Direction { return e.direction }

// Sign returns +1 for an Output emission and -1 for an Input emission.
// Cutoff entries do not apply it: they keep the exchange value as recorded.
func (e *Emission) Sign() float64 {
	if e.direction == archive.DirectionInput {
		return -1
	}
	return 1
}

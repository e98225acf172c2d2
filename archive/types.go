// Package archive models the external inventory database that lcicore reads
// from: flows, exchanges and processes, plus the contract a concrete catalog
// (in-memory or JSON-backed) must satisfy.
package archive

// Direction is the exchange direction relative to its owning process.
type Direction string

const (
	// DirectionInput marks a flow consumed by the process.
	DirectionInput Direction = "Input"
	// DirectionOutput marks a flow produced by the process.
	DirectionOutput Direction = "Output"
)

// Flow identifies a physical or elementary flow. Compartment is populated
// for elementary (environmental) flows and consulted by classify.Classifier.
type Flow struct {
	ID          string
	Name        string
	Unit        string
	Compartment string
}

// Quantity identifies an LCIA quantity (e.g. mass, a characterization
// quantity) used for reference-exchange allocation.
type Quantity struct {
	ID   string
	Name string
}

// Exchange is one row of a process's exchange table: a flow crossing the
// process boundary in a given direction, with an optional termination
// (the process id this exchange is known to connect to) and an optional
// numeric value (nil models a null/unspecified amount).
type Exchange struct {
	Flow        Flow
	Direction   Direction
	Value       *float64
	Termination string
	Reference   bool
}

// Amount returns the exchange's value, or fallback if Value is nil.
func (e Exchange) Amount(fallback float64) float64 {
	if e.Value == nil {
		return fallback
	}
	return *e.Value
}

// Terminated reports whether this exchange names a termination process.
func (e Exchange) Terminated() bool {
	return e.Termination != ""
}

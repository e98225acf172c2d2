// Package characterize supplies characterization factors used to turn raw
// elementary exchanges into impact scores for a given quantity.
package characterize

import (
	"github.com/lcafoundry/lcicore/archive"
)

// Database looks up a characterization factor for an elementary flow
// within a compartment, for a given impact quantity.
type Database interface {
	LookupCF(flow archive.Flow, compartment string, quantity string) (float64, bool)
}

type cfKey struct {
	flowID      string
	compartment string
	quantity    string
}

// Memory is a map-backed Database populated programmatically or loaded
// from a flat factor table.
type Memory struct {
	factors map[cfKey]float64
}

// NewMemory returns an empty factor database.
func NewMemory() *Memory {
	return &Memory{factors: make(map[cfKey]float64)}
}

// SetCF registers a factor for (flow, compartment, quantity).
func (m *Memory) SetCF(flowID, compartment, quantity string, value float64) {
	m.factors[cfKey{flowID: flowID, compartment: compartment, quantity: quantity}] = value
}

// LookupCF returns the stored factor, if any, for flow/compartment/quantity.
func (m *Memory) LookupCF(flow archive.Flow, compartment string, quantity string) (float64, bool) {
	v, ok := m.factors[cfKey{flowID: flow.ID, compartment: compartment, quantity: quantity}]
	return v, ok
}

var _ Database = (*Memory)(nil)

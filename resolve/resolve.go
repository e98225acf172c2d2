// Package resolve decides, for an exchange with an ambiguous or missing
// termination, which process (if any) that exchange should be considered
// to flow to.
package resolve

import (
	"fmt"
	"sort"

	"github.com/lcafoundry/lcicore/archive"
)

// Strategy names one of the supported termination-resolution policies.
type Strategy string

const (
	// StrategyCutoff always treats the exchange as a boundary cutoff,
	// regardless of candidates.
	StrategyCutoff Strategy = "cutoff"
	// StrategyMix synthesizes a transient market process blending all
	// candidates when more than one is available.
	StrategyMix Strategy = "mix"
	// StrategyFirst picks the alphabetically first candidate by process name.
	StrategyFirst Strategy = "first"
	// StrategyLast picks the alphabetically last candidate by process name.
	StrategyLast Strategy = "last"
)

// Resolution is the outcome of resolving an exchange's termination: either
// a chosen process, or a cutoff (the exchange is treated as leaving the
// system boundary unresolved).
type Resolution struct {
	Cutoff  bool
	Process *archive.Process
}

// Resolve picks a termination for exchange among candidates according to
// strategy. candidates is empty when the exchange names no termination
// and the flow has no other process declaring it as a reference output;
// in that case Resolve always returns a cutoff.
func Resolve(exchange archive.Exchange, candidates []*archive.Process, strategy Strategy) (Resolution, error) {
	if len(candidates) == 0 {
		return Resolution{Cutoff: true}, nil
	}

	switch strategy {
	case StrategyCutoff:
		return Resolution{Cutoff: true}, nil
	case "", StrategyFirst:
		return Resolution{Process: byName(candidates)[0]}, nil
	case StrategyLast:
		sorted := byName(candidates)
		return Resolution{Process: sorted[len(sorted)-1]}, nil
	case StrategyMix:
		if len(candidates) == 1 {
			return Resolution{Process: candidates[0]}, nil
		}
		return Resolution{Process: synthesizeMarket(exchange, candidates)}, nil
	default:
		return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// byName returns a copy of candidates sorted alphabetically by process
// name, the tie-break used by the first/last strategies.
func byName(candidates []*archive.Process) []*archive.Process {
	sorted := make([]*archive.Process, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}

// synthesizeMarket builds a transient "market" process blending all
// candidate terminations: one reference exchange whose magnitude equals
// the candidate count, and one unit-magnitude input exchange per
// candidate. The process is never registered in any archive; it exists
// only for the duration of the traversal that created it.
func synthesizeMarket(exchange archive.Exchange, candidates []*archive.Process) *archive.Process {
	count := float64(len(candidates))
	exs := make([]archive.Exchange, 0, len(candidates)+1)
	exs = append(exs, archive.Exchange{
		Flow:      exchange.Flow,
		Direction: archive.DirectionOutput,
		Value:     &count,
		Reference: true,
	})
	for _, c := range candidates {
		unit := 1.0
		exs = append(exs, archive.Exchange{
			Flow:        exchange.Flow,
			Direction:   archive.DirectionInput,
			Value:       &unit,
			Termination: c.ID,
		})
	}
	id := "market::" + exchange.Flow.ID
	name := "market for " + exchange.Flow.Name
	return archive.NewProcess(id, name, exs)
}

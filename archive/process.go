package archive

// refKey identifies a reference exchange within a process for the purpose
// of tracking allocation state.
type refKey struct {
	flowID    string
	direction Direction
}

// Process is an inventory dataset: a named activity with an ordered list
// of exchanges, some of which are marked as reference (output) exchanges
// subject to allocation.
type Process struct {
	ID        string
	Name      string
	exchanges []Exchange
	allocated map[refKey]bool
}

// NewProcess builds a Process from its exchange table. Exchange order is
// preserved as given; it is the order FindReference and Exchanges expose.
func NewProcess(id, name string, exchanges []Exchange) *Process {
	cp := make([]Exchange, len(exchanges))
	copy(cp, exchanges)
	return &Process{
		ID:        id,
		Name:      name,
		exchanges: cp,
		allocated: make(map[refKey]bool),
	}
}

// Exchanges returns all exchanges (reference and non-reference) in archive order.
func (p *Process) Exchanges() []Exchange {
	out := make([]Exchange, len(p.exchanges))
	copy(out, p.exchanges)
	return out
}

// ReferenceExchanges returns only the exchanges marked as reference outputs,
// in archive order.
func (p *Process) ReferenceExchanges() []Exchange {
	var refs []Exchange
	for _, e := range p.exchanges {
		if e.Reference {
			refs = append(refs, e)
		}
	}
	return refs
}

// FindReference returns the reference exchange matching flowID, if the
// process declares one.
func (p *Process) FindReference(flowID string) (Exchange, bool) {
	for _, e := range p.exchanges {
		if e.Reference && e.Flow.ID == flowID {
			return e, true
		}
	}
	return Exchange{}, false
}

// IsAllocated reports whether ref has already been allocated against a
// quantity via AllocateByQuantity.
func (p *Process) IsAllocated(ref Exchange) bool {
	return p.allocated[refKey{flowID: ref.Flow.ID, direction: ref.Direction}]
}

// AllocateByQuantity performs allocation across this process's reference
// exchanges for the given quantity. The concrete allocation factors are an
// external concern (a characterization/allocation engine); this archive
// layer only records that allocation against q has taken place, which is
// what callers need to decide whether a process's outputs are partitioned.
func (p *Process) AllocateByQuantity(q Quantity) error {
	refs := p.ReferenceExchanges()
	if len(refs) == 0 {
		return ErrNoReferenceExchange
	}
	for _, e := range refs {
		p.allocated[refKey{flowID: e.Flow.ID, direction: e.Direction}] = true
	}
	return nil
}

// HasMultipleReferences reports whether the process declares more than one
// reference exchange (a multi-output / co-production process).
func (p *Process) HasMultipleReferences() bool {
	return len(p.ReferenceExchanges()) > 1
}

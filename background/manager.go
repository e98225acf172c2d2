// Package background implements the technosphere traversal that
// partitions an archive's processes into background and foreground, and
// the iterative solver used to resolve the background's life-cycle
// inventory.
//
// The traversal is Tarjan's strongly-connected-components algorithm,
// walked directly over the archive (rather than a pre-built core.Graph):
// each process's non-reference exchanges are resolved to a terminating
// product flow on demand, simulating recursion over an explicit
// heap-allocated stack of frames (see traverse) rather than recursing
// natively, so the walk survives archives deeper than a goroutine stack
// comfortably grows. Once the whole reachable set has been visited, the
// discovered components are handed to a sccindex.Index, which is the one
// place an explicit core.Graph (of component ids) is built and queried.
package background

import (
	"github.com/lcafoundry/lcicore/archive"
	"github.com/lcafoundry/lcicore/entry"
	"github.com/lcafoundry/lcicore/internal/logging"
	"github.com/lcafoundry/lcicore/pflow"
	"github.com/lcafoundry/lcicore/resolve"
	"github.com/lcafoundry/lcicore/sccindex"
	"github.com/lcafoundry/lcicore/sparsemat"
)

// Option configures a Manager.
type Option func(*Manager)

// WithStrategy overrides the termination-resolution strategy (default:
// resolve.StrategyFirst).
func WithStrategy(s resolve.Strategy) Option {
	return func(m *Manager) { m.strategy = s }
}

// WithQuantity sets the allocation quantity applied to multi-output
// processes encountered during traversal.
func WithQuantity(q archive.Quantity) Option {
	return func(m *Manager) { m.quantity = q }
}

// WithLogger overrides the diagnostic logger (default: logging.Nop()).
func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithRecursionBudget caps traversal recursion depth (default: 18000).
func WithRecursionBudget(n int) Option {
	return func(m *Manager) { m.recursionBudget = n }
}

// WithThreshold sets the LCI solver's convergence threshold (default: 1e-8).
func WithThreshold(t float64) Option {
	return func(m *Manager) { m.threshold = t }
}

// WithMaxIterations caps the LCI solver's iteration count (default: 100).
func WithMaxIterations(n int) Option {
	return func(m *Manager) { m.maxIter = n }
}

type dependency struct {
	parent, child *pflow.ProductFlow
	value         float64
}

type cutoffObs struct {
	parent   *pflow.ProductFlow
	emission *pflow.Emission
	value    float64
}

// Manager drives the technosphere traversal and owns every product flow,
// emission, and matrix entry discovered while doing so.
type Manager struct {
	arc      archive.Archive
	strategy resolve.Strategy
	quantity archive.Quantity
	log      logging.Logger

	recursionBudget int
	threshold       float64
	maxIter         int

	idx *sccindex.Index

	pfs     map[pflow.Key]*pflow.ProductFlow
	pfOrder []pflow.Key

	emissions     map[pflow.EmissionKey]*pflow.Emission
	emissionOrder []pflow.EmissionKey

	tarjanIndex   map[pflow.Key]int
	tarjanLowlink map[pflow.Key]int
	counter       int
	sccCounter    int

	deps       []dependency
	cutoffObs  []cutoffObs

	entriesByParent map[pflow.Key][]*entry.MatrixEntry
	cutoffsByParent map[pflow.Key][]*entry.CutoffEntry

	finalized bool
}

// NewManager returns a Manager reading processes from arc.
func NewManager(arc archive.Archive, opts ...Option) *Manager {
	m := &Manager{
		arc:             arc,
		strategy:        resolve.StrategyFirst,
		quantity:        archive.Quantity{ID: "default"},
		log:             logging.Nop(),
		recursionBudget: 18000,
		threshold:       1e-8,
		maxIter:         100,
		idx:             sccindex.New(),
		pfs:             make(map[pflow.Key]*pflow.ProductFlow),
		emissions:       make(map[pflow.EmissionKey]*pflow.Emission),
		tarjanIndex:     make(map[pflow.Key]int),
		tarjanLowlink:   make(map[pflow.Key]int),
		entriesByParent: make(map[pflow.Key][]*entry.MatrixEntry),
		cutoffsByParent: make(map[pflow.Key][]*entry.CutoffEntry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddAllRefProducts traverses every reference exchange of every process in
// the archive, in archive order.
func (m *Manager) AddAllRefProducts() error {
	for _, p := range m.arc.Processes() {
		for _, ref := range p.ReferenceExchanges() {
			if _, err := m.AddRefProduct(ref.Flow, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddRefProduct ensures the product flow for (flow, process) exists and has
// been traversed, returning it.
func (m *Manager) AddRefProduct(flow archive.Flow, process *archive.Process) (*pflow.ProductFlow, error) {
	pf, existed, err := m.getOrCreatePF(flow, process)
	if err != nil {
		return nil, err
	}
	if existed {
		return pf, nil
	}
	if err := m.idx.AddToStack(pf); err != nil {
		return nil, err
	}
	return pf, m.traverse(pf)
}

func (m *Manager) getOrCreatePF(flow archive.Flow, process *archive.Process) (*pflow.ProductFlow, bool, error) {
	key := pflow.Key{FlowID: flow.ID, ProcessID: process.ID}
	if pf, ok := m.pfs[key]; ok {
		return pf, true, nil
	}
	pf, err := pflow.New(len(m.pfOrder), flow, process, m.log)
	if err != nil {
		return nil, false, err
	}
	m.pfs[pf.Key()] = pf
	m.pfOrder = append(m.pfOrder, pf.Key())
	return pf, false, nil
}

func (m *Manager) getOrCreateEmission(flow archive.Flow, process *archive.Process, dir archive.Direction) (*pflow.Emission, error) {
	key := pflow.EmissionKey{FlowID: flow.ID, Direction: dir}
	if em, ok := m.emissions[key]; ok {
		return em, nil
	}
	em, err := pflow.NewEmission(len(m.emissionOrder), flow, process, dir)
	if err != nil {
		return nil, err
	}
	m.emissions[key] = em
	m.emissionOrder = append(m.emissionOrder, key)
	return em, nil
}

// signedTechnosphereAmount applies the sign convention used for A*
// entries: an Input exchange consumes its termination (positive
// coefficient), an Output exchange (a byproduct routed elsewhere) offsets
// it (negative coefficient).
func signedTechnosphereAmount(ex archive.Exchange) float64 {
	v := ex.Amount(0)
	if ex.Direction == archive.DirectionOutput {
		return -v
	}
	return v
}

// candidatesFor returns every process that could plausibly terminate ex:
// the explicitly named termination if ex names one, otherwise every
// process in the archive declaring a reference exchange for ex's flow in
// the opposite direction to ex.
func (m *Manager) candidatesFor(ex archive.Exchange) []*archive.Process {
	if ex.Terminated() {
		if p, ok := m.arc.Process(ex.Termination); ok {
			return []*archive.Process{p}
		}
		return nil
	}
	var out []*archive.Process
	for _, p := range m.arc.Processes() {
		if ref, ok := p.FindReference(ex.Flow.ID); ok && ref.Direction != ex.Direction {
			out = append(out, p)
		}
	}
	return out
}

// frame is one simulated activation record of the Tarjan recursion: the
// node it visits, the filtered list of exchanges it still has to process,
// and where in that list it left off. traverse keeps a heap-allocated
// slice of these instead of recursing natively, so the walk survives
// archives whose dependency chains run deeper than a goroutine stack
// would comfortably grow.
type frame struct {
	v         *pflow.ProductFlow
	exchanges []archive.Exchange
	next      int
}

// relevantExchanges returns v's non-reference exchanges carrying a
// non-null, non-zero value, in archive order. Reference exchanges are
// never walked as dependencies; a null or zero-valued exchange prunes the
// subtree below it entirely (§3: "for each non-reference exchange with
// non-null, non-zero value").
func relevantExchanges(v *pflow.ProductFlow) []archive.Exchange {
	var out []archive.Exchange
	for _, ex := range v.Process().Exchanges() {
		if ex.Reference {
			continue
		}
		if ex.Value == nil || *ex.Value == 0 {
			continue
		}
		out = append(out, ex)
	}
	return out
}

// traverse runs the iterative Tarjan walk rooted at root, which the
// caller has already pushed onto the SCC index's stack. It maintains an
// explicit call stack of frames in place of native recursion: pushing a
// frame simulates a recursive call, popping one simulates that call
// returning (and propagates its lowlink up to its caller, exactly as the
// recursive form would via its own stack frame).
func (m *Manager) traverse(root *pflow.ProductFlow) error {
	stack := []*frame{{v: root, exchanges: relevantExchanges(root)}}
	m.tarjanIndex[root.Key()] = m.counter
	m.tarjanLowlink[root.Key()] = m.counter
	m.counter++

	for len(stack) > 0 {
		if len(stack) > m.recursionBudget {
			return ErrRecursionBudgetExceeded
		}
		top := stack[len(stack)-1]
		v := top.v

		if top.next >= len(top.exchanges) {
			stack = stack[:len(stack)-1]
			if m.tarjanLowlink[v.Key()] == m.tarjanIndex[v.Key()] {
				sccID := m.sccCounter
				m.sccCounter++
				m.idx.LabelSCC(sccID, v)
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1].v
				if m.tarjanLowlink[v.Key()] < m.tarjanLowlink[parent.Key()] {
					m.tarjanLowlink[parent.Key()] = m.tarjanLowlink[v.Key()]
				}
			}
			continue
		}

		ex := top.exchanges[top.next]
		top.next++

		candidates := m.candidatesFor(ex)
		res, err := resolve.Resolve(ex, candidates, m.strategy)
		if err != nil {
			return err
		}
		if res.Cutoff {
			em, err := m.getOrCreateEmission(ex.Flow, v.Process(), ex.Direction)
			if err != nil {
				return err
			}
			m.cutoffObs = append(m.cutoffObs, cutoffObs{parent: v, emission: em, value: ex.Amount(0)})
			m.log.Warnf("background: flow %q on process %q has no resolvable termination; treated as a cutoff", ex.Flow.ID, v.Process().ID)
			continue
		}

		term := res.Process
		if ref, ok := term.FindReference(ex.Flow.ID); ok && term.HasMultipleReferences() && !term.IsAllocated(ref) {
			if err := term.AllocateByQuantity(m.quantity); err != nil {
				return err
			}
			m.log.Infof("background: allocated multi-output process %q by quantity %q", term.ID, m.quantity.ID)
		}

		child, existed, err := m.getOrCreatePF(ex.Flow, term)
		if err != nil {
			return err
		}

		if v.Key() == child.Key() {
			v.AdjustEV(-signedTechnosphereAmount(ex))
			continue
		}

		m.deps = append(m.deps, dependency{parent: v, child: child, value: signedTechnosphereAmount(ex)})

		if !existed {
			if err := m.idx.AddToStack(child); err != nil {
				return err
			}
			m.tarjanIndex[child.Key()] = m.counter
			m.tarjanLowlink[child.Key()] = m.counter
			m.counter++
			stack = append(stack, &frame{v: child, exchanges: relevantExchanges(child)})
		} else if m.idx.OnStack(child) {
			if m.tarjanIndex[child.Key()] < m.tarjanLowlink[v.Key()] {
				m.tarjanLowlink[v.Key()] = m.tarjanIndex[child.Key()]
			}
		}
	}
	return nil
}

// Finalize closes the traversal: it builds the component dependency
// graph, computes the background/foreground partition, and normalizes
// every raw matrix entry by its parent's settled inbound exchange value.
// Call it once, after every root product flow has been added.
func (m *Manager) Finalize() error {
	if m.finalized {
		return nil
	}
	for _, d := range m.deps {
		if err := m.idx.AddDependency(d.parent, d.child); err != nil {
			return err
		}
	}
	if err := m.idx.SetBackground(); err != nil {
		return err
	}

	for _, d := range m.deps {
		e := entry.New(d.parent, d.child, d.value)
		if err := e.AdjustVal(); err != nil {
			return err
		}
		m.entriesByParent[d.parent.Key()] = append(m.entriesByParent[d.parent.Key()], e)
	}
	for _, c := range m.cutoffObs {
		ce := entry.NewCutoff(c.parent, c.emission, c.value)
		if err := ce.AdjustVal(); err != nil {
			return err
		}
		m.cutoffsByParent[c.parent.Key()] = append(m.cutoffsByParent[c.parent.Key()], ce)
	}

	m.finalized = true
	return nil
}

// IsBackground reports whether pf belongs to the background partition.
func (m *Manager) IsBackground(pf *pflow.ProductFlow) bool {
	return m.idx.IsBackground(pf)
}

// Foreground enumerates the foreground product flows reachable from pf.
func (m *Manager) Foreground(pf *pflow.ProductFlow) ([]*pflow.ProductFlow, error) {
	return m.idx.Foreground(pf)
}

// ProductFlow looks up a previously discovered product flow.
func (m *Manager) ProductFlow(flow archive.Flow, process *archive.Process) (*pflow.ProductFlow, bool) {
	pf, ok := m.pfs[pflow.Key{FlowID: flow.ID, ProcessID: process.ID}]
	return pf, ok
}

// EntriesFor returns every technosphere matrix entry whose parent is pf.
func (m *Manager) EntriesFor(pf *pflow.ProductFlow) []*entry.MatrixEntry {
	return m.entriesByParent[pf.Key()]
}

// CutoffsFor returns every biosphere cutoff entry whose parent is pf.
func (m *Manager) CutoffsFor(pf *pflow.ProductFlow) []*entry.CutoffEntry {
	return m.cutoffsByParent[pf.Key()]
}

// BackgroundProductFlows returns the background partition in a stable
// column order (insertion order of first discovery).
func (m *Manager) BackgroundProductFlows() []*pflow.ProductFlow {
	var out []*pflow.ProductFlow
	for _, k := range m.pfOrder {
		pf := m.pfs[k]
		if m.idx.IsBackground(pf) {
			out = append(out, pf)
		}
	}
	return out
}

// AStar builds the background technosphere matrix: ndim×ndim, where ndim
// is len(BackgroundProductFlows()).
func (m *Manager) AStar() (*sparsemat.COO, error) {
	if !m.finalized {
		return nil, ErrNotFinalized
	}
	bg := m.BackgroundProductFlows()
	col := make(map[pflow.Key]int, len(bg))
	for i, pf := range bg {
		col[pf.Key()] = i
	}
	mat := sparsemat.NewCOO(len(bg), len(bg))
	for _, pf := range bg {
		for _, e := range m.EntriesFor(pf) {
			if !m.idx.IsBackground(e.Term) {
				continue
			}
			if err := mat.Add(col[e.Term.Key()], col[e.Parent.Key()], e.Value()); err != nil {
				return nil, err
			}
		}
	}
	return mat, nil
}

// BStar builds the background biosphere matrix: mdim×ndim, along with the
// emission assigned to each row, in first-seen order.
func (m *Manager) BStar() (*sparsemat.COO, []*pflow.Emission, error) {
	if !m.finalized {
		return nil, nil, ErrNotFinalized
	}
	bg := m.BackgroundProductFlows()
	col := make(map[pflow.Key]int, len(bg))
	for i, pf := range bg {
		col[pf.Key()] = i
	}

	var rows []*pflow.Emission
	row := make(map[pflow.EmissionKey]int)
	for _, pf := range bg {
		for _, c := range m.CutoffsFor(pf) {
			k := c.Emission.Key()
			if _, ok := row[k]; !ok {
				row[k] = len(rows)
				rows = append(rows, c.Emission)
			}
		}
	}

	mat := sparsemat.NewCOO(len(rows), len(bg))
	for _, pf := range bg {
		for _, c := range m.CutoffsFor(pf) {
			if err := mat.Add(row[c.Emission.Key()], col[pf.Key()], c.Value()); err != nil {
				return nil, nil, err
			}
		}
	}
	return mat, rows, nil
}

// LCI solves the background system for demand vector ad (one entry per
// BackgroundProductFlows() column) using the configured threshold and
// iteration budget.
func (m *Manager) LCI(ad []float64) ([]float64, error) {
	if !m.finalized {
		return nil, ErrNotFinalized
	}
	aStar, err := m.AStar()
	if err != nil {
		return nil, err
	}
	return Solve(aStar, ad, m.threshold, m.maxIter)
}

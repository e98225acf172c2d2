// Package fragment extracts a single foreground system from a
// background.Manager: the acyclic slice of product flows upstream of one
// reference flow, together with the small dense matrices needed to scale
// and characterize it.
package fragment

import (
	"github.com/lcafoundry/lcicore/background"
	"github.com/lcafoundry/lcicore/characterize"
	"github.com/lcafoundry/lcicore/classify"
	"github.com/lcafoundry/lcicore/matrix"
	"github.com/lcafoundry/lcicore/pflow"
	"github.com/lcafoundry/lcicore/sparsemat"
)

// Option configures a Fragment at extraction time.
type Option func(*config)

type config struct {
	classifier classify.Classifier
}

// WithClassifier overrides the compartment classifier used to split Bf
// rows into elementary and cutoff (default: classify.NewDefault()).
func WithClassifier(c classify.Classifier) Option {
	return func(cfg *config) { cfg.classifier = c }
}

// Fragment is the foreground slice rooted at a single reference product
// flow: its own acyclic technosphere (Af), its demand on the background
// (Ad), and its direct elementary exchanges (Bf).
type Fragment struct {
	ref     *pflow.ProductFlow
	members []*pflow.ProductFlow
	col     map[pflow.Key]int

	bgFlows []*pflow.ProductFlow
	bgCol   map[pflow.Key]int

	emissionRows []*pflow.Emission
	isElem       []bool

	af *sparsemat.COO
	ad *sparsemat.COO
	bf *sparsemat.COO

	inverse *matrix.Dense
}

// New extracts the fragment rooted at ref from mgr. mgr must already be
// finalized. Returns ErrRefIsBackground if ref is itself a background flow.
func New(mgr *background.Manager, ref *pflow.ProductFlow, opts ...Option) (*Fragment, error) {
	cfg := config{classifier: classify.NewDefault()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if mgr.IsBackground(ref) {
		return nil, ErrRefIsBackground
	}
	members, err := mgr.Foreground(ref)
	if err != nil {
		return nil, err
	}

	col := make(map[pflow.Key]int, len(members))
	for i, pf := range members {
		col[pf.Key()] = i
	}

	bgFlows := mgr.BackgroundProductFlows()
	bgCol := make(map[pflow.Key]int, len(bgFlows))
	for i, pf := range bgFlows {
		bgCol[pf.Key()] = i
	}

	p := len(members)
	n := len(bgFlows)

	emRow := make(map[pflow.EmissionKey]int)
	var emissionRows []*pflow.Emission
	var isElem []bool
	for _, pf := range members {
		for _, c := range mgr.CutoffsFor(pf) {
			k := c.Emission.Key()
			if _, ok := emRow[k]; !ok {
				emRow[k] = len(emissionRows)
				emissionRows = append(emissionRows, c.Emission)
				isElem = append(isElem, cfg.classifier.IsElementary(c.Emission.Flow()))
			}
		}
	}

	af := sparsemat.NewCOO(p, p)
	ad := sparsemat.NewCOO(n, p)
	bf := sparsemat.NewCOO(len(emissionRows), p)

	for _, pf := range members {
		pcol := col[pf.Key()]
		for _, e := range mgr.EntriesFor(pf) {
			switch {
			case mgr.IsBackground(e.Term):
				if err := ad.Add(bgCol[e.Term.Key()], pcol, e.Value()); err != nil {
					return nil, err
				}
			default:
				if tcol, ok := col[e.Term.Key()]; ok {
					if err := af.Add(tcol, pcol, e.Value()); err != nil {
						return nil, err
					}
				}
				// A term outside both the background and this fragment's
				// reachable set cannot occur: Foreground's BFS already
				// follows every edge this entry was derived from.
			}
		}
		for _, c := range mgr.CutoffsFor(pf) {
			if err := bf.Add(emRow[c.Emission.Key()], pcol, c.Value()); err != nil {
				return nil, err
			}
		}
	}

	return &Fragment{
		ref:          ref,
		members:      members,
		col:          col,
		bgFlows:      bgFlows,
		bgCol:        bgCol,
		emissionRows: emissionRows,
		isElem:       isElem,
		af:           af,
		ad:           ad,
		bf:           bf,
	}, nil
}

// Members returns the fragment's foreground product flows, in a stable
// column order (the order in which Foreground discovered them).
func (f *Fragment) Members() []*pflow.ProductFlow { return f.members }

// IsElementary reports whether Emissions()[row]'s flow was classified
// elementary (as opposed to cutoff) by the classifier the fragment was
// extracted with.
func (f *Fragment) IsElementary(row int) bool { return f.isElem[row] }

// BfElementary returns Bf restricted to the rows IsElementary classifies
// true, densely reindexed from 0.
func (f *Fragment) BfElementary() (*sparsemat.COO, error) { return f.splitBf(true) }

// BfCutoff returns Bf restricted to the rows IsElementary classifies
// false, densely reindexed from 0.
func (f *Fragment) BfCutoff() (*sparsemat.COO, error) { return f.splitBf(false) }

func (f *Fragment) splitBf(elementary bool) (*sparsemat.COO, error) {
	rowMap := make(map[int]int)
	for i, elem := range f.isElem {
		if elem == elementary {
			rowMap[i] = len(rowMap)
		}
	}
	out := sparsemat.NewCOO(len(rowMap), len(f.members))
	for _, t := range f.bf.Triples() {
		newRow, ok := rowMap[t.Row]
		if !ok {
			continue
		}
		if err := out.Add(newRow, t.Col, t.Value); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Emissions returns the elementary flows emitted directly within the
// fragment (as opposed to inherited from the background).
func (f *Fragment) Emissions() []*pflow.Emission { return f.emissionRows }

// Inverse returns (I - Af)^-1, computed and cached on first call by
// densifying Af and delegating to matrix.Inverse.
func (f *Fragment) Inverse() (*matrix.Dense, error) {
	if f.inverse != nil {
		return f.inverse, nil
	}
	p := len(f.members)
	iMinusAf := sparsemat.NewCOO(p, p)
	for i := 0; i < p; i++ {
		if err := iMinusAf.Add(i, i, 1); err != nil {
			return nil, err
		}
	}
	for _, t := range f.af.Triples() {
		if err := iMinusAf.Add(t.Row, t.Col, -t.Value); err != nil {
			return nil, err
		}
	}
	inv, err := sparsemat.Invert(iMinusAf)
	if err != nil {
		return nil, err
	}
	f.inverse = inv
	return inv, nil
}

// XTilde returns the internal scaling factor of every member flow per
// unit output of the fragment's reference flow: column ref of (I - Af)^-1.
func (f *Fragment) XTilde() ([]float64, error) {
	inv, err := f.Inverse()
	if err != nil {
		return nil, err
	}
	refCol, ok := f.col[f.ref.Key()]
	if !ok {
		return nil, ErrRefNotInFragment
	}
	p := len(f.members)
	x := make([]float64, p)
	for i := 0; i < p; i++ {
		v, err := inv.At(i, refCol)
		if err != nil {
			return nil, err
		}
		x[i] = v
	}
	return x, nil
}

// AdTilde returns the background demand induced by one unit of the
// fragment's reference output: Ad · XTilde, one entry per background
// product flow column.
func (f *Fragment) AdTilde() ([]float64, error) {
	x, err := f.XTilde()
	if err != nil {
		return nil, err
	}
	return f.ad.MulVec(x)
}

// BfTilde returns the fragment's own direct elementary exchanges per unit
// reference output: Bf · XTilde, one entry per Emissions() row.
func (f *Fragment) BfTilde() ([]float64, error) {
	x, err := f.XTilde()
	if err != nil {
		return nil, err
	}
	return f.bf.MulVec(x)
}

// Characterize scores the fragment's full life-cycle inventory (its own
// direct emissions plus everything its background demand induces) against
// quantity, using db for characterization factors. mgr must be the same
// Manager the fragment was extracted from.
func (f *Fragment) Characterize(mgr *background.Manager, db characterize.Database, quantity string) (float64, error) {
	var total float64

	adTilde, err := f.AdTilde()
	if err != nil {
		return 0, err
	}
	bgTotal, err := mgr.LCI(adTilde)
	if err != nil {
		return 0, err
	}
	bStar, bgEmissions, err := mgr.BStar()
	if err != nil {
		return 0, err
	}
	bgContribution, err := bStar.MulVec(bgTotal)
	if err != nil {
		return 0, err
	}
	for i, em := range bgEmissions {
		cf, ok := db.LookupCF(em.Flow(), em.Flow().Compartment, quantity)
		if !ok {
			continue
		}
		total += cf * bgContribution[i]
	}

	bfTilde, err := f.BfTilde()
	if err != nil {
		return 0, err
	}
	for i, em := range f.emissionRows {
		cf, ok := db.LookupCF(em.Flow(), em.Flow().Compartment, quantity)
		if !ok {
			continue
		}
		total += cf * bfTilde[i]
	}
	return total, nil
}

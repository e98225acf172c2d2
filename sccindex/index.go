// Package sccindex tracks the open Tarjan traversal stack and the
// strongly-connected-component structure it discovers, then exposes the
// background/foreground partition derived from that structure.
//
// The component-level dependency graph (one vertex per discovered SCC) is
// a core.Graph: SCC ids become string vertex IDs, and reachability over it
// is answered with dfs.DFS (background downstream-closure) and bfs.BFS
// (per-flow foreground enumeration), rather than a bespoke traversal.
package sccindex

import (
	"sort"
	"strconv"

	"github.com/lcafoundry/lcicore/bfs"
	"github.com/lcafoundry/lcicore/core"
	"github.com/lcafoundry/lcicore/dfs"
	"github.com/lcafoundry/lcicore/pflow"
)

// Index owns the Tarjan stack, the SCC membership tables, and the
// component dependency graph used to derive background/foreground.
type Index struct {
	stack   []*pflow.ProductFlow
	onStack map[pflow.Key]bool

	members map[int][]*pflow.ProductFlow
	sccOf   map[pflow.Key]int

	graph *core.Graph

	backgroundID *int
	downstream   map[int]bool
}

// New returns an empty Index ready to receive a Tarjan traversal.
func New() *Index {
	return &Index{
		onStack: make(map[pflow.Key]bool),
		members: make(map[int][]*pflow.ProductFlow),
		sccOf:   make(map[pflow.Key]int),
		graph:   core.NewGraph(core.WithDirected(true), core.WithMultiEdges(), core.WithLoops()),
	}
}

// AddToStack pushes pf onto the open traversal stack.
func (ix *Index) AddToStack(pf *pflow.ProductFlow) error {
	if ix.onStack[pf.Key()] {
		return ErrAlreadyOnStack
	}
	ix.stack = append(ix.stack, pf)
	ix.onStack[pf.Key()] = true
	return nil
}

// OnStack reports whether pf is currently on the open traversal stack.
func (ix *Index) OnStack(pf *pflow.ProductFlow) bool {
	return ix.onStack[pf.Key()]
}

// LabelSCC pops the stack down to and including until, assigning every
// popped product flow to sccID. Called when a Tarjan lowlink closes a
// component at `until`.
func (ix *Index) LabelSCC(sccID int, until *pflow.ProductFlow) {
	ix.graph.AddVertex(strconv.Itoa(sccID))
	for {
		n := len(ix.stack) - 1
		node := ix.stack[n]
		ix.stack = ix.stack[:n]
		delete(ix.onStack, node.Key())
		ix.members[sccID] = append(ix.members[sccID], node)
		ix.sccOf[node.Key()] = sccID
		if node.Key() == until.Key() {
			return
		}
	}
}

// SCCOf returns the component id assigned to pf, if any.
func (ix *Index) SCCOf(pf *pflow.ProductFlow) (int, bool) {
	id, ok := ix.sccOf[pf.Key()]
	return id, ok
}

// Members returns the product flows assigned to component sccID, in the
// order they were popped off the traversal stack.
func (ix *Index) Members(sccID int) []*pflow.ProductFlow {
	return ix.members[sccID]
}

// Size returns the number of product flows in component sccID.
func (ix *Index) Size(sccID int) int {
	return len(ix.members[sccID])
}

// AddDependency records that consumer's component depends on producer's
// component. Self-dependencies (consumer and producer sharing a
// component) are skipped: that relationship is absorbed directly into the
// product flow's inbound exchange value rather than a matrix entry.
// Returns ErrUnlabeled if either flow has not yet been assigned a
// component.
func (ix *Index) AddDependency(consumer, producer *pflow.ProductFlow) error {
	cID, ok := ix.SCCOf(consumer)
	if !ok {
		return ErrUnlabeled
	}
	pID, ok := ix.SCCOf(producer)
	if !ok {
		return ErrUnlabeled
	}
	if cID == pID {
		return nil
	}
	_, err := ix.graph.AddEdge(strconv.Itoa(cID), strconv.Itoa(pID), 0)
	return err
}

// SetBackground designates the largest component (ties broken by lowest
// id, for determinism) as the background root, provided it has more than
// one member, then computes the downstream closure: the background
// component plus every component reachable from it by a dependency edge.
// If no component has more than one member, there is no background and
// IsBackground reports false for every flow.
func (ix *Index) SetBackground() error {
	ids := make([]int, 0, len(ix.members))
	for id := range ix.members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	best := -1
	bestSize := 1
	for _, id := range ids {
		size := len(ix.members[id])
		if size > bestSize {
			bestSize = size
			best = id
		}
	}
	if best == -1 {
		ix.downstream = map[int]bool{}
		return nil
	}
	ix.backgroundID = &best

	vertex := strconv.Itoa(best)
	set := map[int]bool{best: true}
	if ix.graph.HasVertex(vertex) {
		res, err := dfs.DFS(ix.graph, vertex)
		if err != nil {
			return err
		}
		for v := range res.Visited {
			n, err := strconv.Atoi(v)
			if err != nil {
				continue
			}
			set[n] = true
		}
	}
	ix.downstream = set
	return nil
}

// BackgroundID returns the id of the background component, if SetBackground
// found one.
func (ix *Index) BackgroundID() (int, bool) {
	if ix.backgroundID == nil {
		return 0, false
	}
	return *ix.backgroundID, true
}

// IsBackground reports whether pf's component belongs to the background
// downstream closure.
func (ix *Index) IsBackground(pf *pflow.ProductFlow) bool {
	id, ok := ix.SCCOf(pf)
	if !ok || ix.downstream == nil {
		return false
	}
	return ix.downstream[id]
}

// Foreground enumerates every foreground (non-background) product flow
// reachable from pf by dependency edges, including pf's own component. An
// empty result means pf is itself part of the background.
func (ix *Index) Foreground(pf *pflow.ProductFlow) ([]*pflow.ProductFlow, error) {
	startID, ok := ix.SCCOf(pf)
	if !ok {
		return nil, ErrUnlabeled
	}
	if ix.downstream != nil && ix.downstream[startID] {
		return nil, nil
	}

	vertex := strconv.Itoa(startID)
	if !ix.graph.HasVertex(vertex) {
		return ix.members[startID], nil
	}

	res, err := bfs.BFS(ix.graph, vertex, bfs.WithFilterNeighbor(func(_ string, neighbor string) bool {
		nID, err := strconv.Atoi(neighbor)
		if err != nil {
			return false
		}
		return ix.downstream == nil || !ix.downstream[nID]
	}))
	if err != nil {
		return nil, err
	}

	var out []*pflow.ProductFlow
	for _, v := range res.Order {
		id, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		if ix.downstream != nil && ix.downstream[id] {
			continue
		}
		out = append(out, ix.members[id]...)
	}
	return out, nil
}

package main

import (
	"log"
	"runtime"
)

// SolveOptions carries every tuning knob of the reoptimizer explicitly;
// nothing is read from ambient state.
type SolveOptions struct {
	// SampleCount points are placed on the union boundary per pairwise
	// search; the search tries SampleCount² candidate chords.
	SampleCount int
	// Iterations bounds the controller loop and is the sole termination
	// control of the reoptimizer.
	Iterations int
	// MaxRecursionDepth bounds the driver's descent; 0 means unbounded.
	MaxRecursionDepth int
	// Workers sizes the candidate-scoring pool; 0 or 1 runs sequentially.
	Workers int

	Chi ChiParams

	// Cost and Adjacency default to ComputeChi and ComputeAdjacency.
	// Both must be pure so runs are reproducible.
	Cost      CostFunc
	Adjacency AdjacencyFunc
}

// DefaultSolveOptions returns the solver tuning used when requests leave the
// options unset.
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{
		SampleCount: 100,
		Iterations:  10,
		Workers:     runtime.NumCPU(),
		Chi:         DefaultChiParams(),
	}
}

func (o SolveOptions) costFn() CostFunc {
	if o.Cost != nil {
		return o.Cost
	}
	return ComputeChi
}

func (o SolveOptions) adjacencyFn() AdjacencyFunc {
	if o.Adjacency != nil {
		return o.Adjacency
	}
	return ComputeAdjacency
}

// normalized fills unset numeric options with their defaults.
func (o SolveOptions) normalized() SolveOptions {
	def := DefaultSolveOptions()
	if o.SampleCount < 2 {
		o.SampleCount = def.SampleCount
	}
	if o.Iterations <= 0 {
		o.Iterations = def.Iterations
	}
	if o.Workers <= 0 {
		o.Workers = def.Workers
	}
	if o.Chi.Radius <= 0 {
		o.Chi.Radius = def.Chi.Radius
	}
	if o.Chi.LinearPenalty == 0 && o.Chi.AngularPenalty == 0 {
		o.Chi.LinearPenalty = def.Chi.LinearPenalty
		o.Chi.AngularPenalty = def.Chi.AngularPenalty
	}
	return o
}

// ChiReoptimize runs the iteration controller: every round it snapshots the
// per-cell costs, rebuilds the adjacency relation and drives one depth-first
// reoptimization pass from the costliest cell. A round that cuts nothing is
// a valid no-op. Returns the cost snapshots from before the first round and
// after the last, both sorted by cost descending.
func ChiReoptimize(d *Decomposition, opts SolveOptions) (before, after []CellCost) {
	opts = opts.normalized()
	cost := opts.costFn()
	adjacency := opts.adjacencyFn()

	for i := 0; i < opts.Iterations; i++ {
		snapshot := d.CostSnapshot(cost, opts.Chi)
		if i == 0 {
			before = snapshot
		}
		if len(snapshot) == 0 {
			break
		}

		worst := snapshot[0].CellID
		if !Reoptimize(d, adjacency(d), worst, opts) {
			log.Printf("   iteration %d/%d: no cut was made\n", i+1, opts.Iterations)
		}
	}

	after = d.CostSnapshot(cost, opts.Chi)
	return before, after
}

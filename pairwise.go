package main

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/resample"
)

// Optimizer outcomes. Like the split failures these are expected results:
// for most cell pairs no chord beats the boundary they already share.
var (
	ErrNotEdgeAdjacent = errors.New("cells do not share a boundary edge")
	ErrNonSimpleUnion  = errors.New("cell union is not a single simple polygon")
	ErrNoImprovement   = errors.New("no cut improves on the current boundary")
)

// ComputePairwiseOptimal searches for a chord across the union of two
// adjacent cells that lowers the worse of their two coverage costs. It
// samples the union's exterior at equal arc-length intervals and tries every
// ordered pair of samples as a cut, scoring each successful split under both
// site assignments. Returns the two halves of the best cut, or
// ErrNoImprovement when the existing boundary is already at least as good.
//
// The candidate sweep is O(sampleCount²) split attempts and dominates the
// runtime of the whole reoptimizer. Scoring fans out over a worker pool;
// the selection scan stays sequential so the last equal-scoring candidate
// in row-major order always wins, keeping results deterministic.
func ComputePairwiseOptimal(a, b Cell, opts SolveOptions) (Polygon, Polygon, error) {
	var zero Polygon

	if err := a.Polygon.Validate(); err != nil {
		return zero, zero, fmt.Errorf("%w: cell %d: %v", ErrInvalidPolygon, a.ID, err)
	}
	if err := b.Polygon.Validate(); err != nil {
		return zero, zero, fmt.Errorf("%w: cell %d: %v", ErrInvalidPolygon, b.ID, err)
	}
	if sharedEdgeLength(a.Polygon.Exterior, b.Polygon.Exterior) <= snapEps {
		return zero, zero, ErrNotEdgeAdjacent
	}

	parts, err := unionPolygons(a.Polygon, b.Polygon)
	if err != nil {
		return zero, zero, fmt.Errorf("%w: %v", ErrNonSimpleUnion, err)
	}
	if len(parts) != 1 {
		return zero, zero, ErrNonSimpleUnion
	}
	union := parts[0]
	if err := union.Validate(); err != nil {
		return zero, zero, fmt.Errorf("%w: %v", ErrNonSimpleUnion, err)
	}

	cost := opts.costFn()
	baseline := math.Max(
		cost(a.Polygon, a.Site, opts.Chi),
		cost(b.Polygon, b.Site, opts.Chi),
	)

	samples := sampleRing(union.Exterior, opts.SampleCount)
	n := len(samples)
	if n < 2 {
		return zero, zero, ErrNoImprovement
	}

	scores := make([]float64, n*n)
	for i := range scores {
		scores[i] = math.Inf(1)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				for j := 0; j < n; j++ {
					if i == j {
						continue
					}
					first, second, err := SplitPolygon(union, Chord{A: samples[i], B: samples[j]})
					if err != nil {
						continue // expected: most candidates cannot cut
					}
					direct := math.Max(
						cost(first, a.Site, opts.Chi),
						cost(second, b.Site, opts.Chi),
					)
					swapped := math.Max(
						cost(second, a.Site, opts.Chi),
						cost(first, b.Site, opts.Chi),
					)
					scores[i*n+j] = math.Min(direct, swapped)
				}
			}
		}()
	}
	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()

	best := math.Inf(1)
	bestIdx := -1
	for k, score := range scores {
		if !math.IsInf(score, 1) && score <= best {
			best = score
			bestIdx = k
		}
	}

	if bestIdx < 0 || best >= baseline-geomEps {
		return zero, zero, ErrNoImprovement
	}

	winning := Chord{A: samples[bestIdx/n], B: samples[bestIdx%n]}
	first, second, err := SplitPolygon(union, winning)
	if err != nil {
		return zero, zero, fmt.Errorf("%w: winning chord failed revalidation: %v", ErrNoImprovement, err)
	}
	return first, second, nil
}

// sampleRing places count points at equal arc-length intervals along the
// closed ring, wrapping around; the ring start is the first sample and the
// closing vertex is never duplicated.
func sampleRing(r Ring, count int) []Point {
	if len(r) < 3 || count < 2 {
		return nil
	}
	resampled := resample.Resample(r.lineString(), planar.Distance, count+1)
	if len(resampled) == 0 {
		return nil
	}
	pts := make([]Point, 0, count)
	for _, p := range resampled[:len(resampled)-1] {
		pts = append(pts, Point{X: p[0], Y: p[1]})
	}
	return pts
}

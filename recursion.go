package main

import (
	"log"
	"math"
	"sort"
)

// Reoptimize runs one depth-first reoptimization pass over the adjacency
// graph starting from the given cell. Neighbors are attempted in ascending
// cost order; when a pairwise attempt fails, the search recurses into that
// neighbor on the same adjacency snapshot, hoping to shake a nearby boundary
// loose. The first successful cut halts the whole search.
//
// Returns true iff two cells were rewritten — the adjacency relation is
// stale from that moment and must be rebuilt before any further search.
//
// There is deliberately no visited set: a cell can be re-entered through a
// different branch. MaxRecursionDepth in the options bounds the descent;
// zero keeps it unbounded.
func Reoptimize(d *Decomposition, adjacency [][]bool, startID int, opts SolveOptions) bool {
	return reoptimizeFrom(d, adjacency, startID, 0, opts)
}

func reoptimizeFrom(d *Decomposition, adjacency [][]bool, id, depth int, opts SolveOptions) bool {
	cost := opts.costFn()
	vertex := d.Cell(id)
	vertexCost := cost(vertex.Polygon, vertex.Site, opts.Chi)

	neighbors := make([]CellCost, 0, len(adjacency[id]))
	for j, touching := range adjacency[id] {
		if !touching {
			continue
		}
		neighbor := d.Cell(j)
		neighbors = append(neighbors, CellCost{
			CellID: j,
			Cost:   cost(neighbor.Polygon, neighbor.Site, opts.Chi),
		})
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Cost < neighbors[j].Cost
	})

	for _, nb := range neighbors {
		if nb.Cost >= vertexCost {
			continue
		}

		neighbor := d.Cell(nb.CellID)
		first, second, err := ComputePairwiseOptimal(vertex, neighbor, opts)
		if err == nil {
			direct := math.Max(
				cost(first, vertex.Site, opts.Chi),
				cost(second, neighbor.Site, opts.Chi),
			)
			swapped := math.Max(
				cost(second, vertex.Site, opts.Chi),
				cost(first, neighbor.Site, opts.Chi),
			)
			if swapped < direct {
				first, second = second, first
			}
			d.ReplaceCellPair(vertex.ID, first, neighbor.ID, second)
			log.Printf("   ✂️  re-cut cells %d and %d (was %.4f/%.4f)\n",
				vertex.ID, neighbor.ID, vertexCost, nb.Cost)
			return true
		}

		if opts.MaxRecursionDepth > 0 && depth+1 >= opts.MaxRecursionDepth {
			continue
		}
		if reoptimizeFrom(d, adjacency, nb.CellID, depth+1, opts) {
			return true
		}
	}

	return false
}

package main

import (
	"github.com/dhconnelly/rtreego"
)

// AdjacencyFunc builds the symmetric cell-adjacency relation: entry (i, j)
// is true only when cells i and j share a boundary edge of positive length.
// The diagonal is always false. The relation is rebuilt from scratch after
// every accepted cut, never maintained incrementally.
type AdjacencyFunc func(d *Decomposition) [][]bool

// cellEntry wraps a cell for R-tree storage
type cellEntry struct {
	id   int
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *cellEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// ComputeAdjacency computes the adjacency matrix for the decomposition. An
// R-tree over cell bounding boxes prefilters the candidate pairs; the exact
// test measures the collinear overlap between the two exterior rings, so
// cells that touch at a single point are not adjacent.
func ComputeAdjacency(d *Decomposition) [][]bool {
	n := d.Len()
	adjacency := make([][]bool, n)
	for i := range adjacency {
		adjacency[i] = make([]bool, n)
	}
	if n < 2 {
		return adjacency
	}

	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	for _, cell := range d.Cells() {
		bbox, err := cellRect(cell.Polygon.Exterior, snapEps)
		if err != nil {
			continue
		}
		tree.Insert(&cellEntry{id: cell.ID, bbox: bbox})
	}

	for i := 0; i < n; i++ {
		query, err := cellRect(d.Cell(i).Polygon.Exterior, 2*snapEps)
		if err != nil {
			continue
		}
		for _, item := range tree.SearchIntersect(query) {
			j := item.(*cellEntry).id
			if j <= i {
				continue
			}
			overlap := sharedEdgeLength(d.Cell(i).Polygon.Exterior, d.Cell(j).Polygon.Exterior)
			if overlap > snapEps {
				adjacency[i][j] = true
				adjacency[j][i] = true
			}
		}
	}

	return adjacency
}

// cellRect computes the padded axis-aligned bounding box for a ring.
func cellRect(r Ring, pad float64) (rtreego.Rect, error) {
	bbox := r.BBox()
	return rtreego.NewRect(
		rtreego.Point{bbox.MinX - pad, bbox.MinY - pad},
		[]float64{bbox.MaxX - bbox.MinX + 2*pad, bbox.MaxY - bbox.MinY + 2*pad},
	)
}

package main

import (
	"container/heap"
	"math"
)

// signedBoundaryDistance is positive inside the polygon, negative outside.
func (p Polygon) signedBoundaryDistance(pt Point) float64 {
	d := p.boundaryDistance(pt)
	if p.Contains(pt) {
		return d
	}
	return -d
}

// poleCell is one quadtree cell in the inscribed-radius search.
type poleCell struct {
	Center Point
	Half   float64 // half the cell side
	Dist   float64 // signed distance from the center to the boundary
	Index  int     // index in the heap
}

// potential is the best distance any point inside the cell could achieve.
func (c *poleCell) potential() float64 {
	return c.Dist + c.Half*math.Sqrt2
}

// poleQueue implements heap.Interface, largest potential first.
type poleQueue []*poleCell

func (pq poleQueue) Len() int { return len(pq) }

func (pq poleQueue) Less(i, j int) bool {
	return pq[i].potential() > pq[j].potential()
}

func (pq poleQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *poleQueue) Push(x interface{}) {
	cell := x.(*poleCell)
	cell.Index = len(*pq)
	*pq = append(*pq, cell)
}

func (pq *poleQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	cell := old[n-1]
	old[n-1] = nil
	cell.Index = -1
	*pq = old[0 : n-1]
	return cell
}

func newPoleCell(p Polygon, center Point, half float64) *poleCell {
	return &poleCell{Center: center, Half: half, Dist: p.signedBoundaryDistance(center)}
}

// InscribedRadius approximates the radius of the largest disc that fits
// inside the polygon, via a quadtree search for the pole of inaccessibility.
func (p Polygon) InscribedRadius(precision float64) float64 {
	if len(p.Exterior) < 3 {
		return 0
	}
	bbox := p.Exterior.BBox()
	width := bbox.MaxX - bbox.MinX
	height := bbox.MaxY - bbox.MinY
	cellSize := math.Min(width, height)
	if cellSize <= 0 {
		return 0
	}
	if precision <= 0 {
		precision = cellSize / 100
	}

	openSet := &poleQueue{}
	heap.Init(openSet)

	half := cellSize / 2
	for x := bbox.MinX; x < bbox.MaxX; x += cellSize {
		for y := bbox.MinY; y < bbox.MaxY; y += cellSize {
			heap.Push(openSet, newPoleCell(p, Point{X: x + half, Y: y + half}, half))
		}
	}

	// Seed with the vertex centroid and the bbox center, both often optimal.
	best := newPoleCell(p, p.vertexCentroid(), 0)
	if c := newPoleCell(p, Point{X: bbox.MinX + width/2, Y: bbox.MinY + height/2}, 0); c.Dist > best.Dist {
		best = c
	}

	for openSet.Len() > 0 {
		cell := heap.Pop(openSet).(*poleCell)
		if cell.Dist > best.Dist {
			best = cell
		}
		if cell.potential()-best.Dist <= precision {
			continue
		}
		h := cell.Half / 2
		heap.Push(openSet, newPoleCell(p, Point{X: cell.Center.X - h, Y: cell.Center.Y - h}, h))
		heap.Push(openSet, newPoleCell(p, Point{X: cell.Center.X + h, Y: cell.Center.Y - h}, h))
		heap.Push(openSet, newPoleCell(p, Point{X: cell.Center.X - h, Y: cell.Center.Y + h}, h))
		heap.Push(openSet, newPoleCell(p, Point{X: cell.Center.X + h, Y: cell.Center.Y + h}, h))
	}

	return math.Max(best.Dist, 0)
}

// vertexCentroid is the mean of the exterior vertices, a cheap interior
// guess for convex-ish cells.
func (p Polygon) vertexCentroid() Point {
	var sx, sy float64
	for _, v := range p.Exterior {
		sx += v.X
		sy += v.Y
	}
	n := float64(len(p.Exterior))
	return Point{X: sx / n, Y: sy / n}
}

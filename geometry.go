package main

import (
	"fmt"
	"math"

	"github.com/engelsjk/polygol"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// geomEps is the coincidence tolerance shared by all geometric predicates.
const geomEps = 1e-9

// snapEps is the coarser tolerance used when matching computed intersection
// points back onto boundary vertices.
const snapEps = 1e-7

// Point is a planar coordinate pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Point) orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

func almostEqual(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// Ring is an ordered open vertex loop: the closing edge from the last vertex
// back to the first is implicit and never stored.
type Ring []Point

// Edge returns the i-th edge of the ring, wrapping at the end.
func (r Ring) Edge(i int) (Point, Point) {
	return r[i], r[(i+1)%len(r)]
}

// SignedArea is positive for counter-clockwise rings.
func (r Ring) SignedArea() float64 {
	if len(r) < 3 {
		return 0
	}
	area := 0.0
	for i := range r {
		a, b := r.Edge(i)
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

// Area returns the unsigned area of the ring.
func (r Ring) Area() float64 {
	return math.Abs(r.SignedArea())
}

// IsCCW reports whether the ring winds counter-clockwise.
func (r Ring) IsCCW() bool {
	return r.SignedArea() > 0
}

// Reversed returns a copy of the ring with the opposite winding.
func (r Ring) Reversed() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Perimeter returns the total boundary length, closing edge included.
func (r Ring) Perimeter() float64 {
	total := 0.0
	for i := range r {
		a, b := r.Edge(i)
		total += a.Distance(b)
	}
	return total
}

// dedup removes consecutive duplicate vertices and a duplicated closing
// vertex, producing the canonical open form.
func (r Ring) dedup() Ring {
	out := make(Ring, 0, len(r))
	for _, p := range r {
		if len(out) > 0 && almostEqual(out[len(out)-1], p, geomEps) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && almostEqual(out[0], out[len(out)-1], geomEps) {
		out = out[:len(out)-1]
	}
	return out
}

// IsSimple reports whether the ring has no repeated vertices and no two
// edges intersecting away from their shared endpoints.
func (r Ring) IsSimple() bool {
	n := len(r)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if almostEqual(r[i], r[j], geomEps) {
				return false
			}
		}
	}
	for i := 0; i < n; i++ {
		a1, a2 := r.Edge(i)
		for j := i + 1; j < n; j++ {
			b1, b2 := r.Edge(j)
			if DoSegmentsIntersect(LineSegment{a1, a2}, LineSegment{b1, b2}) {
				return false
			}
		}
	}
	return true
}

// BBox represents a bounding box
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// BBox calculates the axis-aligned bounding box of the ring.
func (r Ring) BBox() BBox {
	if len(r) == 0 {
		return BBox{}
	}
	bbox := BBox{MinX: r[0].X, MinY: r[0].Y, MaxX: r[0].X, MaxY: r[0].Y}
	for _, v := range r[1:] {
		bbox.MinX = math.Min(bbox.MinX, v.X)
		bbox.MinY = math.Min(bbox.MinY, v.Y)
		bbox.MaxX = math.Max(bbox.MaxX, v.X)
		bbox.MaxY = math.Max(bbox.MaxY, v.Y)
	}
	return bbox
}

// distanceTo returns the distance from pt to the nearest ring segment.
func (r Ring) distanceTo(pt Point) float64 {
	best := math.Inf(1)
	op := pt.orb()
	for i := range r {
		a, b := r.Edge(i)
		best = math.Min(best, planar.DistanceFromSegment(a.orb(), b.orb(), op))
	}
	return best
}

// lineString converts the ring to a closed orb line string.
func (r Ring) lineString() orb.LineString {
	ls := make(orb.LineString, 0, len(r)+1)
	for _, p := range r {
		ls = append(ls, p.orb())
	}
	if len(r) > 0 {
		ls = append(ls, r[0].orb())
	}
	return ls
}

// LineSegment represents a line segment between two points
type LineSegment struct {
	P1, P2 Point
}

// DoSegmentsIntersect checks if two line segments intersect. Segments that
// only share endpoints are not considered intersecting.
func DoSegmentsIntersect(seg1, seg2 LineSegment) bool {
	p1, p2 := seg1.P1, seg1.P2
	p3, p4 := seg2.P1, seg2.P2

	if (p1 == p3 && p2 == p4) || (p1 == p4 && p2 == p3) {
		return false
	}
	if p1 == p3 || p1 == p4 || p2 == p3 || p2 == p4 {
		return false
	}

	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

// direction calculates the cross product to determine orientation
func direction(p1, p2, p3 Point) float64 {
	return (p3.X-p1.X)*(p2.Y-p1.Y) - (p2.X-p1.X)*(p3.Y-p1.Y)
}

// onSegment checks if point q lies on segment pr
func onSegment(p, r, q Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// segmentIntersections reports where segment a1a2 meets segment b1b2: either
// a single crossing/touch point, or a positive-length collinear overlap.
func segmentIntersections(a1, a2, b1, b2 Point) (pts []Point, overlap bool) {
	rX, rY := a2.X-a1.X, a2.Y-a1.Y
	sX, sY := b2.X-b1.X, b2.Y-b1.Y
	qpX, qpY := b1.X-a1.X, b1.Y-a1.Y
	denom := rX*sY - rY*sX

	if math.Abs(denom) <= geomEps {
		if math.Abs(qpX*rY-qpY*rX) > geomEps {
			return nil, false // parallel, disjoint
		}
		rr := rX*rX + rY*rY
		if rr <= geomEps {
			return nil, false
		}
		t0 := (qpX*rX + qpY*rY) / rr
		t1 := t0 + (sX*rX+sY*rY)/rr
		lo := math.Max(math.Min(t0, t1), 0)
		hi := math.Min(math.Max(t0, t1), 1)
		if hi < lo-geomEps {
			return nil, false
		}
		if (hi-lo)*math.Sqrt(rr) > snapEps {
			return nil, true
		}
		t := (lo + hi) / 2
		return []Point{{a1.X + t*rX, a1.Y + t*rY}}, false
	}

	t := (qpX*sY - qpY*sX) / denom
	u := (qpX*rY - qpY*rX) / denom
	if t < -geomEps || t > 1+geomEps || u < -geomEps || u > 1+geomEps {
		return nil, false
	}
	t = math.Max(0, math.Min(1, t))
	return []Point{{a1.X + t*rX, a1.Y + t*rY}}, false
}

// chordRingIntersections computes the discrete points where the segment ab
// meets the ring's boundary. overlap reports a positive-length collinear
// contact, which never counts as a discrete point set.
func chordRingIntersections(r Ring, a, b Point) (pts []Point, overlap bool) {
	for i := range r {
		e1, e2 := r.Edge(i)
		hits, edgeOverlap := segmentIntersections(a, b, e1, e2)
		if edgeOverlap {
			return nil, true
		}
		for _, hit := range hits {
			dup := false
			for _, p := range pts {
				if almostEqual(p, hit, snapEps) {
					dup = true
					break
				}
			}
			if !dup {
				pts = append(pts, hit)
			}
		}
	}
	return pts, false
}

// edgeParam returns the position of c along segment ab, and whether c lies
// on the segment strictly between the endpoints.
func edgeParam(a, b, c Point) (float64, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	ll := dx*dx + dy*dy
	if ll <= geomEps {
		return 0, false
	}
	t := ((c.X-a.X)*dx + (c.Y-a.Y)*dy) / ll
	if t <= geomEps || t >= 1-geomEps {
		return t, false
	}
	if planar.DistanceFromSegment(a.orb(), b.orb(), c.orb()) > snapEps {
		return t, false
	}
	return t, true
}

// pointInRing checks containment using ray casting. Boundary points are not
// reliably classified either way.
func pointInRing(point Point, ring Ring) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	count := 0
	for i := 0; i < n; i++ {
		v1, v2 := ring.Edge(i)
		if (v1.Y > point.Y) != (v2.Y > point.Y) {
			slope := (point.X-v1.X)*(v2.Y-v1.Y) - (v2.X-v1.X)*(point.Y-v1.Y)
			if v2.Y > v1.Y {
				if slope > 0 {
					count++
				}
			} else {
				if slope < 0 {
					count++
				}
			}
		}
	}
	return count%2 == 1
}

// Polygon is one exterior ring plus zero or more hole rings.
type Polygon struct {
	Exterior Ring   `json:"exterior"`
	Holes    []Ring `json:"holes,omitempty"`
}

// Area returns the exterior area minus the hole areas.
func (p Polygon) Area() float64 {
	area := p.Exterior.Area()
	for _, h := range p.Holes {
		area -= h.Area()
	}
	return area
}

// Validate checks that the polygon is simple, has positive area and that
// every hole lies inside the exterior without crossing its siblings.
func (p Polygon) Validate() error {
	if len(p.Exterior) < 3 {
		return fmt.Errorf("exterior ring needs at least 3 vertices, has %d", len(p.Exterior))
	}
	if !p.Exterior.IsSimple() {
		return fmt.Errorf("exterior ring is not simple")
	}
	if p.Exterior.Area() <= geomEps {
		return fmt.Errorf("exterior ring has no area")
	}
	for i, h := range p.Holes {
		if len(h) < 3 {
			return fmt.Errorf("hole %d needs at least 3 vertices, has %d", i, len(h))
		}
		if !h.IsSimple() {
			return fmt.Errorf("hole %d is not simple", i)
		}
		for _, v := range h {
			// measured against the exterior only: every hole vertex is at
			// distance zero from its own ring
			if !pointInRing(v, p.Exterior) && p.Exterior.distanceTo(v) > snapEps {
				return fmt.Errorf("hole %d leaves the exterior ring", i)
			}
		}
		for j := i + 1; j < len(p.Holes); j++ {
			for hi := range h {
				a1, a2 := h.Edge(hi)
				for hj := range p.Holes[j] {
					b1, b2 := p.Holes[j].Edge(hj)
					if DoSegmentsIntersect(LineSegment{a1, a2}, LineSegment{b1, b2}) {
						return fmt.Errorf("holes %d and %d intersect", i, j)
					}
				}
			}
		}
	}
	return nil
}

// Contains reports whether the point is inside the polygon and outside of
// every hole.
func (p Polygon) Contains(pt Point) bool {
	if !pointInRing(pt, p.Exterior) {
		return false
	}
	for _, h := range p.Holes {
		if pointInRing(pt, h) {
			return false
		}
	}
	return true
}

// boundaryDistance returns the distance from pt to the nearest boundary
// segment, holes included.
func (p Polygon) boundaryDistance(pt Point) float64 {
	best := p.Exterior.distanceTo(pt)
	for _, h := range p.Holes {
		best = math.Min(best, h.distanceTo(pt))
	}
	return best
}

// DistanceTo returns the distance from a point to the polygon: zero when the
// point lies inside or on the boundary.
func (p Polygon) DistanceTo(pt Point) float64 {
	if p.Contains(pt) {
		return 0
	}
	d := p.boundaryDistance(pt)
	if d <= snapEps {
		return 0
	}
	return d
}

// containsClosure is boundary-inclusive containment.
func (p Polygon) containsClosure(pt Point) bool {
	return p.Contains(pt) || p.boundaryDistance(pt) <= snapEps
}

// Canonical normalizes the polygon: exterior counter-clockwise, holes
// clockwise, no duplicated closing vertex.
func (p Polygon) Canonical() Polygon {
	out := Polygon{Exterior: p.Exterior.dedup()}
	if !out.Exterior.IsCCW() {
		out.Exterior = out.Exterior.Reversed()
	}
	for _, h := range p.Holes {
		hh := h.dedup()
		if hh.IsCCW() {
			hh = hh.Reversed()
		}
		out.Holes = append(out.Holes, hh)
	}
	return out
}

func (p Polygon) orbPolygon() orb.Polygon {
	poly := orb.Polygon{orb.Ring(p.Exterior.lineString())}
	for _, h := range p.Holes {
		poly = append(poly, orb.Ring(h.lineString()))
	}
	return poly
}

// geom converts the polygon to polygol's multipolygon representation with
// closed rings.
func (p Polygon) geom() polygol.Geom {
	rings := make([][][]float64, 0, len(p.Holes)+1)
	rings = append(rings, ringCoords(p.Exterior))
	for _, h := range p.Holes {
		rings = append(rings, ringCoords(h))
	}
	return polygol.Geom{rings}
}

func ringCoords(r Ring) [][]float64 {
	out := make([][]float64, 0, len(r)+1)
	for _, p := range r {
		out = append(out, []float64{p.X, p.Y})
	}
	if len(r) > 0 {
		out = append(out, []float64{r[0].X, r[0].Y})
	}
	return out
}

// polygonsFromGeom converts a polygol result back into canonical polygons,
// dropping degenerate slivers.
func polygonsFromGeom(g polygol.Geom) []Polygon {
	var out []Polygon
	for _, rings := range g {
		var poly Polygon
		for i, coords := range rings {
			ring := make(Ring, 0, len(coords))
			for _, c := range coords {
				if len(c) >= 2 {
					ring = append(ring, Point{X: c[0], Y: c[1]})
				}
			}
			ring = ring.dedup()
			if ring.Area() <= geomEps {
				continue
			}
			if i == 0 {
				poly.Exterior = ring
			} else {
				poly.Holes = append(poly.Holes, ring)
			}
		}
		if len(poly.Exterior) >= 3 {
			out = append(out, poly.Canonical())
		}
	}
	return out
}

// unionPolygons merges two polygons into their boolean union.
func unionPolygons(a, b Polygon) ([]Polygon, error) {
	g, err := polygol.Union(a.geom(), b.geom())
	if err != nil {
		return nil, err
	}
	return polygonsFromGeom(g), nil
}

// clipPolygon intersects a polygon against a mask polygon.
func clipPolygon(p, mask Polygon) ([]Polygon, error) {
	g, err := polygol.Intersection(p.geom(), mask.geom())
	if err != nil {
		return nil, err
	}
	return polygonsFromGeom(g), nil
}

// collinearOverlapLength returns the length of the collinear overlap between
// segments a1a2 and b1b2, zero when they merely cross or touch.
func collinearOverlapLength(a1, a2, b1, b2 Point) float64 {
	rX, rY := a2.X-a1.X, a2.Y-a1.Y
	sX, sY := b2.X-b1.X, b2.Y-b1.Y
	rr := rX*rX + rY*rY
	if rr <= geomEps {
		return 0
	}
	if math.Abs(rX*sY-rY*sX) > snapEps {
		return 0
	}
	qpX, qpY := b1.X-a1.X, b1.Y-a1.Y
	if math.Abs(qpX*rY-qpY*rX) > snapEps {
		return 0
	}
	t0 := (qpX*rX + qpY*rY) / rr
	t1 := t0 + (sX*rX+sY*rY)/rr
	lo := math.Max(math.Min(t0, t1), 0)
	hi := math.Min(math.Max(t0, t1), 1)
	if hi <= lo {
		return 0
	}
	return (hi - lo) * math.Sqrt(rr)
}

// sharedEdgeLength returns the total collinear overlap between two ring
// boundaries. A positive value means the rings share an edge of positive
// length, not just a touch point.
func sharedEdgeLength(a, b Ring) float64 {
	total := 0.0
	for i := range a {
		a1, a2 := a.Edge(i)
		for j := range b {
			b1, b2 := b.Edge(j)
			total += collinearOverlapLength(a1, a2, b1, b2)
		}
	}
	return total
}

package main

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Split failures are ordinary, expected outcomes: the optimizer throws
// thousands of chords at a polygon and most of them cannot cut it.
var (
	ErrInvalidPolygon         = errors.New("invalid polygon")
	ErrInvalidChord           = errors.New("chord must be two distinct points")
	ErrNoBoundaryIntersection = errors.New("chord does not reach the exterior boundary")
	ErrAmbiguousIntersection  = errors.New("chord does not meet the boundary at exactly two points")
	ErrChordOutsidePolygon    = errors.New("chord leaves the polygon interior")
	ErrHoleCrossing           = errors.New("chord crosses a hole")
	ErrDegenerateResult       = errors.New("split produced a degenerate polygon")
)

// Chord is a straight cut segment.
type Chord struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// SplitPolygon cuts a polygon along a chord into two sub-polygons. The chord
// must meet the exterior ring at exactly two discrete points, stay inside
// the polygon in between, and keep clear of every hole. Holes are inherited
// by whichever half contains them.
func SplitPolygon(p Polygon, chord Chord) (Polygon, Polygon, error) {
	var zero Polygon

	if err := p.Validate(); err != nil {
		return zero, zero, fmt.Errorf("%w: %v", ErrInvalidPolygon, err)
	}
	if almostEqual(chord.A, chord.B, geomEps) {
		return zero, zero, ErrInvalidChord
	}

	cutPts, overlap := chordRingIntersections(p.Exterior, chord.A, chord.B)
	if overlap {
		return zero, zero, ErrAmbiguousIntersection
	}
	switch len(cutPts) {
	case 0:
		return zero, zero, ErrNoBoundaryIntersection
	case 2:
		// the only cuttable case
	default:
		return zero, zero, ErrAmbiguousIntersection
	}

	for _, hole := range p.Holes {
		pts, holeOverlap := chordRingIntersections(hole, chord.A, chord.B)
		if holeOverlap || len(pts) > 0 {
			return zero, zero, ErrHoleCrossing
		}
	}

	if !chordStaysInside(p, chord, cutPts) {
		return zero, zero, ErrChordOutsidePolygon
	}

	arc1, arc2, err := cutRing(p.Exterior, cutPts[0], cutPts[1])
	if err != nil {
		return zero, zero, fmt.Errorf("%w: %v", ErrDegenerateResult, err)
	}

	for _, mask := range []Ring{arc1, arc2} {
		if len(mask) < 3 || !mask.IsSimple() || mask.Area() <= geomEps {
			return zero, zero, ErrDegenerateResult
		}
	}

	first, err := clipToSingle(p, Polygon{Exterior: arc1})
	if err != nil {
		return zero, zero, err
	}
	second, err := clipToSingle(p, Polygon{Exterior: arc2})
	if err != nil {
		return zero, zero, err
	}

	total := p.Area()
	if math.Abs(first.Area()+second.Area()-total) > 1e-6*math.Max(total, 1) {
		return zero, zero, ErrDegenerateResult
	}

	return first, second, nil
}

// chordStaysInside verifies that the whole chord lies within the closed
// polygon. The chord is cut at its boundary hits and every resulting piece
// must keep its midpoint inside.
func chordStaysInside(p Polygon, chord Chord, cutPts []Point) bool {
	dx, dy := chord.B.X-chord.A.X, chord.B.Y-chord.A.Y
	ll := dx*dx + dy*dy
	if ll <= geomEps {
		return false
	}

	params := []float64{0, 1}
	for _, pt := range cutPts {
		t := ((pt.X-chord.A.X)*dx + (pt.Y-chord.A.Y)*dy) / ll
		params = append(params, math.Max(0, math.Min(1, t)))
	}
	sort.Float64s(params)

	chordLen := math.Sqrt(ll)
	for i := 0; i+1 < len(params); i++ {
		if (params[i+1]-params[i])*chordLen <= snapEps {
			continue
		}
		mid := (params[i] + params[i+1]) / 2
		midPt := Point{X: chord.A.X + mid*dx, Y: chord.A.Y + mid*dy}
		if !p.containsClosure(midPt) {
			return false
		}
	}
	return true
}

// cutRing splits the ring's boundary at points p and q into two arcs. Both
// arcs run in ring order and include the cut points; closing each arc with
// the chord yields the two mask rings.
func cutRing(r Ring, p, q Point) (Ring, Ring, error) {
	type insertion struct {
		t  float64
		pt Point
	}

	aug := make(Ring, 0, len(r)+2)
	for i := range r {
		a, b := r.Edge(i)
		aug = append(aug, a)

		var onEdge []insertion
		for _, c := range []Point{p, q} {
			if almostEqual(c, a, snapEps) || almostEqual(c, b, snapEps) {
				continue
			}
			if t, ok := edgeParam(a, b, c); ok {
				onEdge = append(onEdge, insertion{t: t, pt: c})
			}
		}
		sort.SliceStable(onEdge, func(x, y int) bool { return onEdge[x].t < onEdge[y].t })
		for _, ins := range onEdge {
			aug = append(aug, ins.pt)
		}
	}

	ip, iq := -1, -1
	for i, v := range aug {
		if ip < 0 && almostEqual(v, p, snapEps) {
			ip = i
		}
		if iq < 0 && almostEqual(v, q, snapEps) {
			iq = i
		}
	}
	if ip < 0 || iq < 0 || ip == iq {
		return nil, nil, fmt.Errorf("cut points not locatable on the boundary")
	}

	arc := func(from, to int) Ring {
		out := make(Ring, 0, len(aug))
		for k := from; ; k = (k + 1) % len(aug) {
			out = append(out, aug[k])
			if k == to {
				break
			}
		}
		return out
	}

	return arc(ip, iq), arc(iq, ip), nil
}

// clipToSingle intersects the polygon against a mask and requires the result
// to be exactly one valid polygon.
func clipToSingle(p, mask Polygon) (Polygon, error) {
	var zero Polygon
	parts, err := clipPolygon(p, mask)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrDegenerateResult, err)
	}
	if len(parts) != 1 {
		return zero, ErrDegenerateResult
	}
	if err := parts[0].Validate(); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrDegenerateResult, err)
	}
	return parts[0], nil
}

package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ringHasPoint(r Ring, pt Point) bool {
	for _, v := range r {
		if almostEqual(v, pt, 1e-6) {
			return true
		}
	}
	return false
}

func TestSplitRejectsEmptyPolygon(t *testing.T) {
	_, _, err := SplitPolygon(Polygon{}, Chord{A: Point{0, 0}, B: Point{1, 1}})
	require.ErrorIs(t, err, ErrInvalidPolygon)
}

func TestSplitRejectsInvalidPolygon(t *testing.T) {
	p := Polygon{Exterior: Ring{{0, 0}, {1, 0}, {1, 1}, {0.1, -0.1}}}
	_, _, err := SplitPolygon(p, Chord{A: Point{0, 0}, B: Point{1, 1}})
	require.ErrorIs(t, err, ErrInvalidPolygon)
}

func TestSplitRejectsDegenerateChord(t *testing.T) {
	_, _, err := SplitPolygon(unitSquare(), Chord{A: Point{0.5, 0.5}, B: Point{0.5, 0.5}})
	require.ErrorIs(t, err, ErrInvalidChord)
}

func TestSplitRejectsInteriorChord(t *testing.T) {
	_, _, err := SplitPolygon(unitSquare(), Chord{A: Point{0.1, 0.1}, B: Point{0.9, 0.9}})
	require.ErrorIs(t, err, ErrNoBoundaryIntersection)
}

func TestSplitRejectsSingleTouchPoint(t *testing.T) {
	_, _, err := SplitPolygon(unitSquare(), Chord{A: Point{0, 0}, B: Point{0.9, 0.9}})
	require.ErrorIs(t, err, ErrAmbiguousIntersection)
}

func TestSplitRejectsChordAlongBoundary(t *testing.T) {
	_, _, err := SplitPolygon(unitSquare(), Chord{A: Point{0, 0}, B: Point{0, 1}})
	require.ErrorIs(t, err, ErrAmbiguousIntersection)
}

func TestSplitRejectsManyCrossings(t *testing.T) {
	p := Polygon{Exterior: Ring{{0, 0}, {1, 0}, {1, 1}, {0.8, 1}, {0.2, 0.8}, {0.5, 1}, {0, 1}}}
	_, _, err := SplitPolygon(p, Chord{A: Point{0.5, 0}, B: Point{0.5, 1}})
	require.ErrorIs(t, err, ErrAmbiguousIntersection)
}

func TestSplitRejectsHoleCrossing(t *testing.T) {
	p := unitSquare()
	p.Holes = []Ring{{{0.2, 0.2}, {0.2, 0.8}, {0.8, 0.8}, {0.8, 0.2}}}
	_, _, err := SplitPolygon(p, Chord{A: Point{0.2, 0}, B: Point{0.2, 1}})
	require.ErrorIs(t, err, ErrHoleCrossing)

	_, _, err = SplitPolygon(p, Chord{A: Point{0.5, 0}, B: Point{0.5, 1}})
	require.ErrorIs(t, err, ErrHoleCrossing)
}

func TestSplitRejectsChordLeavingPolygon(t *testing.T) {
	// concave polygon; the chord bridges the notch through the outside
	p := Polygon{Exterior: Ring{{0, 0}, {4, 0}, {4, 2}, {3, 2}, {2, 0.5}, {1, 2}, {0, 2}}}
	require.NoError(t, p.Validate())
	_, _, err := SplitPolygon(p, Chord{A: Point{0.5, 1.9}, B: Point{3.5, 1.9}})
	require.ErrorIs(t, err, ErrChordOutsidePolygon)
}

func TestSplitHorizontal(t *testing.T) {
	first, second, err := SplitPolygon(unitSquare(), Chord{A: Point{0, 0.2}, B: Point{1, 0.2}})
	require.NoError(t, err)

	areas := []float64{first.Area(), second.Area()}
	assert.InDelta(t, 1.0, areas[0]+areas[1], 1e-9)
	assert.InDelta(t, 0.8, math.Max(areas[0], areas[1]), 1e-9)
	assert.InDelta(t, 0.2, math.Min(areas[0], areas[1]), 1e-9)

	for _, half := range []Polygon{first, second} {
		require.NoError(t, half.Validate())
		assert.True(t, half.Exterior.IsCCW())
		assert.True(t, ringHasPoint(half.Exterior, Point{0, 0.2}))
		assert.True(t, ringHasPoint(half.Exterior, Point{1, 0.2}))
	}
}

func TestSplitCornerCut(t *testing.T) {
	first, second, err := SplitPolygon(unitSquare(), Chord{A: Point{0.2, 0}, B: Point{0, 0.2}})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, first.Area()+second.Area(), 1e-9)
	assert.InDelta(t, 0.02, math.Min(first.Area(), second.Area()), 1e-9)

	triangle := first
	if second.Area() < first.Area() {
		triangle = second
	}
	assert.True(t, ringHasPoint(triangle.Exterior, Point{0, 0}))
	assert.True(t, ringHasPoint(triangle.Exterior, Point{0.2, 0}))
	assert.True(t, ringHasPoint(triangle.Exterior, Point{0, 0.2}))
}

func TestSplitInheritsHoles(t *testing.T) {
	p := Polygon{
		Exterior: Ring{{0, 0}, {1, 0}, {1, 1}, {0.8, 1}, {0.2, 0.8}, {0.5, 1}, {0, 1}},
		Holes: []Ring{
			{{0.1, 0.1}, {0.1, 0.2}, {0.2, 0.1}},
			{{0.9, 0.9}, {0.9, 0.8}, {0.8, 0.8}},
		},
	}
	require.NoError(t, p.Validate())

	first, second, err := SplitPolygon(p, Chord{A: Point{0, 0}, B: Point{0.2, 0.8}})
	require.NoError(t, err)

	big, small := first, second
	if small.Area() > big.Area() {
		big, small = small, big
	}

	assert.Len(t, big.Holes, 2)
	assert.Empty(t, small.Holes)
	assert.InDelta(t, p.Area(), first.Area()+second.Area(), 1e-9)

	for _, want := range []Point{{1, 0}, {1, 1}, {0.8, 1}, {0.2, 0.8}, {0, 0}} {
		assert.True(t, ringHasPoint(big.Exterior, want), "missing %v", want)
	}
	for _, want := range []Point{{0.5, 1}, {0, 1}, {0, 0}, {0.2, 0.8}} {
		assert.True(t, ringHasPoint(small.Exterior, want), "missing %v", want)
	}
}

func TestSplitAreaConservation(t *testing.T) {
	l := Polygon{Exterior: Ring{{0, 0}, {3, 0}, {3, 1}, {1, 1}, {1, 2}, {0, 2}}}
	require.NoError(t, l.Validate())

	chords := []Chord{
		{A: Point{1, 0}, B: Point{1, 1}},
		{A: Point{0, 1}, B: Point{1, 1}},
		{A: Point{0.5, 0}, B: Point{0.5, 2}},
	}
	for _, chord := range chords {
		first, second, err := SplitPolygon(l, chord)
		require.NoError(t, err, "chord %v", chord)
		assert.InDelta(t, l.Area(), first.Area()+second.Area(), 1e-9, "chord %v", chord)
	}
}

func TestSplitRoundTripUnion(t *testing.T) {
	first, second, err := SplitPolygon(unitSquare(), Chord{A: Point{0, 0.5}, B: Point{1, 0.5}})
	require.NoError(t, err)

	parts, err := unionPolygons(first, second)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.InDelta(t, 1.0, parts[0].Area(), 1e-9)
	assert.Empty(t, parts[0].Holes)
}

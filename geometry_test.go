package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare() Polygon {
	return Polygon{Exterior: Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}
}

func rect(x0, y0, x1, y1 float64) Polygon {
	return Polygon{Exterior: Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}}
}

func TestRingArea(t *testing.T) {
	r := Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	assert.InDelta(t, 1.0, r.Area(), 1e-12)
	assert.True(t, r.IsCCW())
	assert.False(t, r.Reversed().IsCCW())
	assert.InDelta(t, 4.0, r.Perimeter(), 1e-12)
}

func TestRingSimplicity(t *testing.T) {
	assert.True(t, Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}.IsSimple())

	// bowtie
	assert.False(t, Ring{{0, 0}, {1, 1}, {1, 0}, {0, 1}}.IsSimple())
	// repeated vertex
	assert.False(t, Ring{{0, 0}, {1, 0}, {1, 0}, {0, 1}}.IsSimple())
	// too short
	assert.False(t, Ring{{0, 0}, {1, 0}}.IsSimple())
}

func TestPolygonValidate(t *testing.T) {
	require.NoError(t, unitSquare().Validate())

	require.Error(t, Polygon{}.Validate())
	require.Error(t, Polygon{Exterior: Ring{{0, 0}, {1, 0}, {1, 1}, {0.1, -0.1}}}.Validate())

	withHole := unitSquare()
	withHole.Holes = []Ring{{{0.2, 0.2}, {0.2, 0.8}, {0.8, 0.8}, {0.8, 0.2}}}
	require.NoError(t, withHole.Validate())
	assert.InDelta(t, 1.0-0.36, withHole.Area(), 1e-12)

	escaped := unitSquare()
	escaped.Holes = []Ring{{{0.5, 0.5}, {1.5, 0.5}, {1.5, 1.5}}}
	require.Error(t, escaped.Validate())

	// fully outside the exterior
	outside := unitSquare()
	outside.Holes = []Ring{{{2, 2}, {3, 2}, {3, 3}}}
	require.Error(t, outside.Validate())
}

func TestPolygonContainsAndDistance(t *testing.T) {
	p := unitSquare()
	assert.True(t, p.Contains(Point{0.5, 0.5}))
	assert.False(t, p.Contains(Point{1.5, 0.5}))
	assert.InDelta(t, 0.0, p.DistanceTo(Point{0.5, 0.5}), 1e-12)
	assert.InDelta(t, 1.0, p.DistanceTo(Point{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, p.DistanceTo(Point{0, 0}), 1e-9)

	withHole := p
	withHole.Holes = []Ring{{{0.2, 0.2}, {0.2, 0.8}, {0.8, 0.8}, {0.8, 0.2}}}
	assert.False(t, withHole.Contains(Point{0.5, 0.5}))
	assert.True(t, withHole.Contains(Point{0.1, 0.1}))

	assert.InDelta(t, 1.0, p.Exterior.distanceTo(Point{2, 0.5}), 1e-9)
	assert.InDelta(t, 0.0, p.Exterior.distanceTo(Point{1, 0.5}), 1e-12)
}

func TestCanonicalOrientation(t *testing.T) {
	p := Polygon{
		Exterior: Ring{{0, 1}, {1, 1}, {1, 0}, {0, 0}}, // clockwise
		Holes:    []Ring{{{0.2, 0.2}, {0.8, 0.2}, {0.8, 0.8}, {0.2, 0.8}}},
	}
	c := p.Canonical()
	assert.True(t, c.Exterior.IsCCW())
	require.Len(t, c.Holes, 1)
	assert.False(t, c.Holes[0].IsCCW())
	assert.InDelta(t, p.Area(), c.Area(), 1e-12)
}

func TestChordRingIntersections(t *testing.T) {
	square := Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	pts, overlap := chordRingIntersections(square, Point{-0.5, 0.5}, Point{1.5, 0.5})
	require.False(t, overlap)
	require.Len(t, pts, 2)

	// fully interior
	pts, overlap = chordRingIntersections(square, Point{0.2, 0.2}, Point{0.8, 0.8})
	assert.False(t, overlap)
	assert.Empty(t, pts)

	// along an edge
	_, overlap = chordRingIntersections(square, Point{0, 0}, Point{0, 1})
	assert.True(t, overlap)

	// through a vertex counts once
	pts, overlap = chordRingIntersections(square, Point{0, 0}, Point{0.5, 0.5})
	require.False(t, overlap)
	assert.Len(t, pts, 1)
}

func TestSharedEdgeLength(t *testing.T) {
	left := Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	right := Ring{{1, 0}, {2, 0}, {2, 1}, {1, 1}}
	assert.InDelta(t, 1.0, sharedEdgeLength(left, right), 1e-9)

	// partial overlap along x=1
	tall := Ring{{1, 0.5}, {2, 0.5}, {2, 2}, {1, 2}}
	assert.InDelta(t, 0.5, sharedEdgeLength(left, tall), 1e-9)

	// corner touch only
	diagonal := Ring{{1, 1}, {2, 1}, {2, 2}, {1, 2}}
	assert.InDelta(t, 0.0, sharedEdgeLength(left, diagonal), 1e-9)
}

func TestUnionPolygons(t *testing.T) {
	parts, err := unionPolygons(rect(0, 0, 1, 1), rect(1, 0, 2, 1))
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.InDelta(t, 2.0, parts[0].Area(), 1e-9)
	assert.Empty(t, parts[0].Holes)

	// disjoint rectangles stay two polygons
	parts, err = unionPolygons(rect(0, 0, 1, 1), rect(3, 0, 4, 1))
	require.NoError(t, err)
	assert.Len(t, parts, 2)
}

func TestInscribedRadius(t *testing.T) {
	assert.InDelta(t, 0.5, unitSquare().InscribedRadius(0.005), 0.01)
	assert.InDelta(t, 0.5, rect(0, 0, 10, 1).InscribedRadius(0.005), 0.01)
}

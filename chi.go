package main

// ChiParams are the tuning knobs of the coverage-cost estimate.
type ChiParams struct {
	Radius         float64 `json:"radius" yaml:"radius"`
	LinearPenalty  float64 `json:"linearPenalty" yaml:"linearPenalty"`
	AngularPenalty float64 `json:"angularPenalty" yaml:"angularPenalty"`
}

// DefaultChiParams returns the tuning used when a request leaves the
// parameters unset.
func DefaultChiParams() ChiParams {
	return ChiParams{
		Radius:         0.1,
		LinearPenalty:  1.0,
		AngularPenalty: 10.0 / 360.0,
	}
}

// CostFunc estimates the coverage cost of one cell from its assigned site.
// Implementations must be pure: same inputs, same cost, no side effects.
type CostFunc func(polygon Polygon, site Point, params ChiParams) float64

// ComputeChi approximates the cost of covering a polygon with a sweep of the
// given radius, starting from the site:
//
//	F1: transit from the site to the polygon and back
//	F2: total sweep-lane length, approximated by area over radius
//	F3: turning effort, one full turn per nested sweep contour
func ComputeChi(polygon Polygon, site Point, params ChiParams) float64 {
	const (
		k1 = 2.0
		k3 = 360.0
	)
	radius := params.Radius
	if radius <= 0 {
		radius = DefaultChiParams().Radius
	}

	f1 := k1 * polygon.DistanceTo(site)
	f2 := polygon.Area() / radius
	f3 := k3 * float64(sweepContours(polygon, radius))

	return params.LinearPenalty*(f1+f2) + params.AngularPenalty*f3
}

// sweepContours counts how many concentric sweep contours fit in the
// polygon. Each pass erodes the remaining region by an ever wider band; the
// region is exhausted once the accumulated depth reaches the inscribed
// radius.
func sweepContours(polygon Polygon, radius float64) int {
	if radius <= 0 {
		return 0
	}
	inradius := polygon.InscribedRadius(radius / 20)
	depth := radius / 2
	contours := 0
	for level := 0; depth < inradius; level++ {
		depth += float64(2*level+1) * radius / 2
		contours++
	}
	return contours
}

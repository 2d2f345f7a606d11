package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ParseScenario decodes a GeoJSON feature collection into a decomposition.
// Every feature carries one cell polygon; the robot's starting position
// rides along as a "site" property of [x, y]. Cell ids follow feature order.
func ParseScenario(data []byte) (*Decomposition, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("scenario is not a GeoJSON feature collection: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("scenario has no cells")
	}

	polygons := make([]Polygon, 0, len(fc.Features))
	sites := make([]Point, 0, len(fc.Features))
	for i, feature := range fc.Features {
		geom, ok := feature.Geometry.(orb.Polygon)
		if !ok {
			return nil, fmt.Errorf("feature %d: geometry must be a Polygon, got %s",
				i, feature.Geometry.GeoJSONType())
		}
		polygons = append(polygons, fromOrbPolygon(geom))

		site, err := siteFromProperties(feature.Properties)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		sites = append(sites, site)
	}

	return NewDecomposition(polygons, sites)
}

// LoadScenario reads a scenario file from disk.
func LoadScenario(path string) (*Decomposition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("   ✅ Loaded %d cells from %s\n", d.Len(), path)
	return d, nil
}

// MarshalScenario encodes the decomposition back to GeoJSON in the same
// shape ParseScenario accepts.
func MarshalScenario(d *Decomposition) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, cell := range d.Cells() {
		feature := geojson.NewFeature(cell.Polygon.orbPolygon())
		feature.Properties = geojson.Properties{
			"cell": cell.ID,
			"site": []float64{cell.Site.X, cell.Site.Y},
		}
		fc.Append(feature)
	}
	return json.Marshal(fc)
}

func fromOrbPolygon(geom orb.Polygon) Polygon {
	var poly Polygon
	for i, ring := range geom {
		converted := make(Ring, 0, len(ring))
		for _, p := range ring {
			converted = append(converted, Point{X: p[0], Y: p[1]})
		}
		converted = converted.dedup()
		if i == 0 {
			poly.Exterior = converted
		} else {
			poly.Holes = append(poly.Holes, converted)
		}
	}
	return poly
}

func siteFromProperties(props geojson.Properties) (Point, error) {
	raw, ok := props["site"]
	if !ok {
		return Point{}, fmt.Errorf("missing site property")
	}
	coords, ok := raw.([]interface{})
	if !ok || len(coords) < 2 {
		return Point{}, fmt.Errorf("site property must be [x, y]")
	}
	x, okX := toFloat(coords[0])
	y, okY := toFloat(coords[1])
	if !okX || !okY {
		return Point{}, fmt.Errorf("site property must be [x, y]")
	}
	return Point{X: x, Y: y}, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

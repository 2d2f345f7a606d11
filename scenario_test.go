package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioRoundTrip(t *testing.T) {
	d := gridDecomposition(t)

	data, err := MarshalScenario(d)
	require.NoError(t, err)

	parsed, err := ParseScenario(data)
	require.NoError(t, err)
	require.Equal(t, d.Len(), parsed.Len())

	for i := 0; i < d.Len(); i++ {
		want, got := d.Cell(i), parsed.Cell(i)
		assert.Equal(t, want.ID, got.ID)
		assert.True(t, almostEqual(want.Site, got.Site, 1e-9))
		assert.InDelta(t, want.Polygon.Area(), got.Polygon.Area(), 1e-9)
	}
	assert.InDelta(t, d.TotalArea(), parsed.TotalArea(), 1e-9)
}

func TestParseScenarioRejectsBadInput(t *testing.T) {
	_, err := ParseScenario([]byte(`not geojson`))
	require.Error(t, err)

	_, err = ParseScenario([]byte(`{"type":"FeatureCollection","features":[]}`))
	require.Error(t, err)

	// wrong geometry type
	_, err = ParseScenario([]byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"site":[0,0]},
		 "geometry":{"type":"Point","coordinates":[0,0]}}]}`))
	require.Error(t, err)

	// missing site property
	_, err = ParseScenario([]byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},
		 "geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}}]}`))
	require.Error(t, err)

	// invalid cell polygon
	_, err = ParseScenario([]byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"site":[0,0]},
		 "geometry":{"type":"Polygon","coordinates":[[[0,0],[1,1],[1,0],[0,1],[0,0]]]}}]}`))
	require.Error(t, err)
}

func TestLoadScenario(t *testing.T) {
	d := gridDecomposition(t)
	data, err := MarshalScenario(d)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "scenario.geojson")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, d.Len(), loaded.Len())

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.geojson"))
	require.Error(t, err)
}

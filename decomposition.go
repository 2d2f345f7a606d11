package main

import (
	"fmt"
	"sort"
)

// Cell is one region of the decomposition, owned by exactly one site.
type Cell struct {
	ID      int     `json:"id"`
	Polygon Polygon `json:"polygon"`
	Site    Point   `json:"site"`
}

// Decomposition is an arena of cells with stable dense ids 0..n-1. Cells are
// mutated only through ReplaceCellPair, two at a time.
type Decomposition struct {
	cells []Cell
}

// NewDecomposition validates and canonicalizes the cell polygons and pairs
// them with their sites.
func NewDecomposition(polygons []Polygon, sites []Point) (*Decomposition, error) {
	if len(polygons) != len(sites) {
		return nil, fmt.Errorf("decomposition needs one site per cell: %d polygons, %d sites",
			len(polygons), len(sites))
	}
	d := &Decomposition{cells: make([]Cell, 0, len(polygons))}
	for i, poly := range polygons {
		if err := poly.Validate(); err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		d.cells = append(d.cells, Cell{ID: i, Polygon: poly.Canonical(), Site: sites[i]})
	}
	return d, nil
}

// Len returns the number of cells.
func (d *Decomposition) Len() int {
	return len(d.cells)
}

// Cell returns the cell with the given id.
func (d *Decomposition) Cell(id int) Cell {
	return d.cells[id]
}

// Cells returns a copy of the cell slice.
func (d *Decomposition) Cells() []Cell {
	out := make([]Cell, len(d.cells))
	copy(out, d.cells)
	return out
}

// ReplaceCellPair commits a successful re-cut: both cells receive their new
// polygons at once, ids and sites stay put.
func (d *Decomposition) ReplaceCellPair(idA int, polyA Polygon, idB int, polyB Polygon) {
	d.cells[idA].Polygon = polyA.Canonical()
	d.cells[idB].Polygon = polyB.Canonical()
}

// TotalArea sums the cell areas.
func (d *Decomposition) TotalArea() float64 {
	total := 0.0
	for _, c := range d.cells {
		total += c.Polygon.Area()
	}
	return total
}

// CellCost pairs a cell id with its coverage cost.
type CellCost struct {
	CellID int     `json:"cellId"`
	Cost   float64 `json:"cost"`
}

// CostSnapshot evaluates every cell and returns the costs sorted by cost
// descending. Equal costs keep id order.
func (d *Decomposition) CostSnapshot(cost CostFunc, params ChiParams) []CellCost {
	snapshot := make([]CellCost, 0, len(d.cells))
	for _, c := range d.cells {
		snapshot = append(snapshot, CellCost{CellID: c.ID, Cost: cost(c.Polygon, c.Site, params)})
	}
	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Cost > snapshot[j].Cost
	})
	return snapshot
}

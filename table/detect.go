/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package table

import (
	"sort"

	"github.com/jackburrus/ripdoc/common"
	"github.com/jackburrus/ripdoc/geom"
	"github.com/jackburrus/ripdoc/page"
)

type point struct{ x, y float64 }

// FindTables runs the full detector pipeline (spec §4.7) and returns every
// table found on pg, with cell text already populated (stage 7). Fewer than
// four intersections anywhere on the page yields no tables, not an error.
func FindTables(pg *page.Page, settings Settings) ([]*Table, error) {
	s := settings.normalized()

	horiz, vert := collectEdges(pg, s)
	horiz = filterShort(horiz, s.EdgeMinLength)
	vert = filterShort(vert, s.EdgeMinLength)
	horiz = snap(horiz, s.SnapYTolerance)
	vert = snap(vert, s.SnapXTolerance)
	horiz = merge(horiz, s.JoinYTolerance, s.HorizontalStrategy == StrategyLinesStrict)
	vert = merge(vert, s.JoinXTolerance, s.VerticalStrategy == StrategyLinesStrict)

	xs, ys, crossings := intersections(horiz, vert, s.IntersectionXTolerance, s.IntersectionYTolerance)
	if len(crossings) < 4 {
		common.Log.Debug("table: only %d intersections found, skipping detection", len(crossings))
		return nil, nil
	}

	cells := buildCells(xs, ys, crossings, horiz, vert, s.IntersectionXTolerance, s.IntersectionYTolerance)
	if len(cells) == 0 {
		return nil, nil
	}

	tables := groupCells(cells)
	for _, t := range tables {
		assignIndices(t)
		assignCellText(t, pg.Chars, s.TextYTolerance)
		if s.DetectMergedCells {
			detectMergedCells(t, horiz, vert, s.IntersectionXTolerance, s.IntersectionYTolerance)
		}
	}
	return tables, nil
}

// ExtractTables is FindTables followed by grid projection, the
// caller-facing convenience that returns rectangular string grids directly.
func ExtractTables(pg *page.Page, settings Settings) ([][][]*string, error) {
	tables, err := FindTables(pg, settings)
	if err != nil {
		return nil, err
	}
	grids := make([][][]*string, len(tables))
	for i, t := range tables {
		grids[i] = t.ToGrid()
	}
	return grids, nil
}

// intersections implements stage 4: every horizontal x vertical pair whose
// crossing point falls within tolerance of both edges' spans contributes a
// point. The returned xs/ys are the sorted, tolerance-deduplicated distinct
// coordinates (stage 5's input).
func intersections(horiz, vert []geom.Edge, tolX, tolY float64) (xs, ys []float64, pts map[point]bool) {
	pts = map[point]bool{}
	var rawX, rawY []float64
	for _, h := range horiz {
		for _, v := range vert {
			if h.Top < v.Top-tolY || h.Top > v.Bottom+tolY {
				continue
			}
			if v.X0 < h.X0-tolX || v.X0 > h.X1+tolX {
				continue
			}
			pts[point{v.X0, h.Top}] = true
			rawX = append(rawX, v.X0)
			rawY = append(rawY, h.Top)
		}
	}
	xs = geom.DedupeSorted1D(rawX, tolX)
	ys = geom.DedupeSorted1D(rawY, tolY)
	return xs, ys, pts
}

func hasPoint(pts map[point]bool, x, y, tolX, tolY float64) bool {
	for p := range pts {
		if abs64(p.x-x) <= tolX && abs64(p.y-y) <= tolY {
			return true
		}
	}
	return false
}

// buildCells implements stage 5: for every adjacent pair of distinct xs/ys,
// accept a cell iff all four corners are present intersections and either
// the top+bottom horizontal edges or the left+right vertical edges fully
// span the cell.
func buildCells(xs, ys []float64, pts map[point]bool, horiz, vert []geom.Edge, tolX, tolY float64) []*Cell {
	var cells []*Cell
	for i := 0; i+1 < len(ys); i++ {
		top, bottom := ys[i], ys[i+1]
		for j := 0; j+1 < len(xs); j++ {
			left, right := xs[j], xs[j+1]

			if !hasPoint(pts, left, top, tolX, tolY) || !hasPoint(pts, right, top, tolX, tolY) ||
				!hasPoint(pts, left, bottom, tolX, tolY) || !hasPoint(pts, right, bottom, tolX, tolY) {
				continue
			}

			hEdgesOK := edgeSpans(horiz, top, left, right, tolY, tolX) && edgeSpans(horiz, bottom, left, right, tolY, tolX)
			vEdgesOK := edgeSpans(vert, left, top, bottom, tolX, tolY) && edgeSpans(vert, right, top, bottom, tolX, tolY)
			if !hEdgesOK && !vEdgesOK {
				continue
			}

			cells = append(cells, &Cell{
				RowSpan: 1,
				ColSpan: 1,
				BBox:    geom.NewBBox(left, top, right, bottom),
			})
		}
	}
	return cells
}

// edgeSpans reports whether some edge in edges sits at constant coordinate
// `at` (within constTol) and covers [spanFrom, spanTo] (within spanTol at
// each end).
func edgeSpans(edges []geom.Edge, at, spanFrom, spanTo, constTol, spanTol float64) bool {
	for _, e := range edges {
		if abs64(constCoord(e)-at) > constTol {
			continue
		}
		if spanStart(e) <= spanFrom+spanTol && spanEnd(e) >= spanTo-spanTol {
			return true
		}
	}
	return false
}

// groupCells implements stage 6: union-find over cells, unioning any pair
// that shares an edge within tolerance 1.0. Each connected component
// becomes a Table.
func groupCells(cells []*Cell) []*Table {
	n := len(cells)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	const tol = 1.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if shareEdge(cells[i].BBox, cells[j].BBox, tol) {
				union(i, j)
			}
		}
	}

	groups := map[int][]*Cell{}
	for i, c := range cells {
		root := find(i)
		groups[root] = append(groups[root], c)
	}

	var tables []*Table
	for _, group := range groups {
		boxes := make([]geom.BBox, len(group))
		for i, c := range group {
			boxes[i] = c.BBox
		}
		tables = append(tables, &Table{Cells: group, BBox: geom.UnionAll(boxes)})
	}
	sort.Slice(tables, func(i, j int) bool {
		if tables[i].BBox.Top != tables[j].BBox.Top {
			return tables[i].BBox.Top < tables[j].BBox.Top
		}
		return tables[i].BBox.X0 < tables[j].BBox.X0
	})
	return tables
}

// shareEdge reports whether a and b's bboxes touch along a shared side
// within tolerance: a common vertical side (same x, overlapping y-range) or
// a common horizontal side (same y, overlapping x-range).
func shareEdge(a, b geom.BBox, tol float64) bool {
	sharesVertical := (abs64(a.X1-b.X0) <= tol || abs64(a.X0-b.X1) <= tol) &&
		a.Top < b.Bottom-tol && a.Bottom > b.Top+tol
	sharesHorizontal := (abs64(a.Bottom-b.Top) <= tol || abs64(a.Top-b.Bottom) <= tol) &&
		a.X0 < b.X1-tol && a.X1 > b.X0+tol
	return sharesVertical || sharesHorizontal
}

// assignIndices renumbers a table's cells' row/col by the sorted,
// tolerance-deduplicated list of their tops and lefts (stage 6, second
// half).
func assignIndices(t *Table) {
	var tops, lefts []float64
	for _, c := range t.Cells {
		tops = append(tops, c.BBox.Top)
		lefts = append(lefts, c.BBox.X0)
	}
	rowCoords := geom.DedupeSorted1D(tops, 1.0)
	colCoords := geom.DedupeSorted1D(lefts, 1.0)
	for _, c := range t.Cells {
		c.Row = geom.NearestIndex(rowCoords, c.BBox.Top, 1.0)
		c.Col = geom.NearestIndex(colCoords, c.BBox.X0, 1.0)
	}
	t.RowCount = len(rowCoords)
	t.ColCount = len(colCoords)
}

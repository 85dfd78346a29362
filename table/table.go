/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package table

import "github.com/jackburrus/ripdoc/geom"

// Cell is one reconstructed table cell. Row/Col are 0-based indices within
// the owning Table; RowSpan/ColSpan are both >= 1 and stay within the
// table's RowCount/ColCount.
type Cell struct {
	Row, Col          int
	RowSpan, ColSpan  int
	Text              string
	BBox              geom.BBox
}

// Table is a connected group of cells, as produced by the detector's
// union-find grouping stage.
type Table struct {
	BBox     geom.BBox
	Cells    []*Cell
	RowCount int
	ColCount int
}

// ToGrid projects t onto a RowCount x ColCount grid of optional strings: a
// cell of span (rs, cs) writes its text into its own top-left slot and
// replicates that same text into the other rs*cs-1 spanned slots. A slot
// with no covering cell is nil.
func (t *Table) ToGrid() [][]*string {
	grid := make([][]*string, t.RowCount)
	for r := range grid {
		grid[r] = make([]*string, t.ColCount)
	}
	for _, c := range t.Cells {
		text := c.Text
		for dr := 0; dr < c.RowSpan; dr++ {
			for dc := 0; dc < c.ColSpan; dc++ {
				r, col := c.Row+dr, c.Col+dc
				if r < 0 || r >= t.RowCount || col < 0 || col >= t.ColCount {
					continue
				}
				v := text
				grid[r][col] = &v
			}
		}
	}
	return grid
}

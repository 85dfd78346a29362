/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package table

import (
	"testing"

	"github.com/jackburrus/ripdoc/contentstream"
	"github.com/jackburrus/ripdoc/geom"
	"github.com/stretchr/testify/require"
)

func TestAssignCellTextJoinsLinesWithNewline(t *testing.T) {
	tbl := &Table{
		Cells: []*Cell{
			{BBox: geom.NewBBox(0, 0, 20, 20), RowSpan: 1, ColSpan: 1},
		},
	}
	chars := []contentstream.Char{
		{Text: "A", BBox: geom.NewBBox(2, 2, 6, 6)},
		{Text: "B", BBox: geom.NewBBox(8, 2, 12, 6)},
		{Text: "C", BBox: geom.NewBBox(2, 14, 6, 18)}, // next row within the same cell
	}
	assignCellText(tbl, chars, 3)
	require.Equal(t, "AB\nC", tbl.Cells[0].Text)
}

// TestDetectMergedCellsWidensSpanAcrossMissingEdge reproduces a row whose
// interior vertical boundary is absent: the two cells that would otherwise
// sit side by side are combined into one, space-joined, column-spanning
// cell.
func TestDetectMergedCellsWidensSpanAcrossMissingEdge(t *testing.T) {
	left := &Cell{Row: 0, Col: 0, RowSpan: 1, ColSpan: 1, Text: "A", BBox: geom.NewBBox(0, 0, 10, 10)}
	right := &Cell{Row: 0, Col: 1, RowSpan: 1, ColSpan: 1, Text: "B", BBox: geom.NewBBox(10, 0, 20, 10)}
	tbl := &Table{Cells: []*Cell{left, right}, RowCount: 1, ColCount: 2}

	// Outer boundary only: no vertical edge at x=10 between the two cells.
	vert := []geom.Edge{
		geom.NewVerticalEdge(0, 10, 0, 1),
		geom.NewVerticalEdge(0, 10, 20, 1),
	}
	horiz := []geom.Edge{
		geom.NewHorizontalEdge(0, 20, 0, 1),
		geom.NewHorizontalEdge(0, 20, 10, 1),
	}

	detectMergedCells(tbl, horiz, vert, 1, 1)

	require.Len(t, tbl.Cells, 1)
	merged := tbl.Cells[0]
	require.Equal(t, 2, merged.ColSpan)
	require.Equal(t, "A B", merged.Text)
	require.Equal(t, geom.NewBBox(0, 0, 20, 10), merged.BBox)
}

func TestDetectMergedCellsLeavesFullyRuledCellsAlone(t *testing.T) {
	left := &Cell{Row: 0, Col: 0, RowSpan: 1, ColSpan: 1, Text: "A", BBox: geom.NewBBox(0, 0, 10, 10)}
	right := &Cell{Row: 0, Col: 1, RowSpan: 1, ColSpan: 1, Text: "B", BBox: geom.NewBBox(10, 0, 20, 10)}
	tbl := &Table{Cells: []*Cell{left, right}, RowCount: 1, ColCount: 2}

	vert := []geom.Edge{
		geom.NewVerticalEdge(0, 10, 0, 1),
		geom.NewVerticalEdge(0, 10, 10, 1), // present this time
		geom.NewVerticalEdge(0, 10, 20, 1),
	}
	horiz := []geom.Edge{
		geom.NewHorizontalEdge(0, 20, 0, 1),
		geom.NewHorizontalEdge(0, 20, 10, 1),
	}

	detectMergedCells(tbl, horiz, vert, 1, 1)
	require.Len(t, tbl.Cells, 2)
}

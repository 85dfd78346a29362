/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package table

import (
	"testing"

	"github.com/jackburrus/ripdoc/geom"
	"github.com/stretchr/testify/require"
)

func TestToCSVRendersGridWithBlanksForMissingCells(t *testing.T) {
	tbl := &Table{
		RowCount: 2,
		ColCount: 2,
		Cells: []*Cell{
			{Row: 0, Col: 0, RowSpan: 1, ColSpan: 1, Text: "A", BBox: geom.NewBBox(0, 0, 10, 10)},
			{Row: 0, Col: 1, RowSpan: 1, ColSpan: 1, Text: "B", BBox: geom.NewBBox(10, 0, 20, 10)},
			{Row: 1, Col: 0, RowSpan: 1, ColSpan: 1, Text: "", BBox: geom.NewBBox(0, 10, 10, 20)},
			// (1,1) deliberately absent: a gap where no cell was reconstructed.
		},
	}
	out, err := tbl.ToCSV()
	require.NoError(t, err)
	require.Equal(t, "A,B\n,\n", out)
}

func TestToCSVSpannedCellRepeatsTextAcrossSlots(t *testing.T) {
	tbl := &Table{
		RowCount: 1,
		ColCount: 2,
		Cells: []*Cell{
			{Row: 0, Col: 0, RowSpan: 1, ColSpan: 2, Text: "A B", BBox: geom.NewBBox(0, 0, 20, 10)},
		},
	}
	out, err := tbl.ToCSV()
	require.NoError(t, err)
	require.Equal(t, "A B,A B\n", out)
}

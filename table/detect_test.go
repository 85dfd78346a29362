/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package table

import (
	"testing"

	"github.com/jackburrus/ripdoc/contentstream"
	"github.com/jackburrus/ripdoc/geom"
	"github.com/jackburrus/ripdoc/page"
	"github.com/stretchr/testify/require"
)

// gridPage builds a 3x3 grid of bordered cells, each 20x20, with one letter
// centered in each, the way a ruled table is rendered as a sequence of
// rectangle subpaths.
func gridPage() *page.Page {
	var rects []contentstream.Rect
	var chars []contentstream.Char
	letters := "ABCDEFGHI"
	i := 0
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			x0, y0 := float64(col*20), float64(row*20)
			rects = append(rects, contentstream.Rect{BBox: geom.NewBBox(x0, y0, x0+20, y0+20)})
			cx, cy := x0+8, y0+8
			chars = append(chars, contentstream.Char{
				Text: string(letters[i]),
				BBox: geom.NewBBox(cx, cy, cx+4, cy+4),
			})
			i++
		}
	}
	return &page.Page{Width: 60, Height: 60, Rects: rects, Chars: chars}
}

func TestFindTablesRuledGrid(t *testing.T) {
	pg := gridPage()
	tables, err := FindTables(pg, DefaultSettings())
	require.NoError(t, err)
	require.Len(t, tables, 1)

	tbl := tables[0]
	require.Equal(t, 3, tbl.RowCount)
	require.Equal(t, 3, tbl.ColCount)
	require.Len(t, tbl.Cells, 9)
	for _, c := range tbl.Cells {
		require.Equal(t, 1, c.RowSpan)
		require.Equal(t, 1, c.ColSpan)
	}
}

func TestFindTablesToGridMatchesLetters(t *testing.T) {
	pg := gridPage()
	tables, err := FindTables(pg, DefaultSettings())
	require.NoError(t, err)
	require.Len(t, tables, 1)

	grid := tables[0].ToGrid()
	require.Len(t, grid, 3)
	want := [][]string{{"A", "B", "C"}, {"D", "E", "F"}, {"G", "H", "I"}}
	for r := range want {
		for c := range want[r] {
			require.NotNil(t, grid[r][c])
			require.Equal(t, want[r][c], *grid[r][c])
		}
	}
}

func TestFindTablesFewerThanFourIntersectionsYieldsNoTables(t *testing.T) {
	pg := &page.Page{
		Width:  50,
		Height: 50,
		Lines: []contentstream.Line{
			{BBox: geom.NewBBox(0, 0, 50, 0)},
			{BBox: geom.NewBBox(0, 0, 0, 50)},
		},
	}
	tables, err := FindTables(pg, DefaultSettings())
	require.NoError(t, err)
	require.Empty(t, tables)
}

func TestExtractTablesReturnsGrids(t *testing.T) {
	pg := gridPage()
	grids, err := ExtractTables(pg, DefaultSettings())
	require.NoError(t, err)
	require.Len(t, grids, 1)
	require.Len(t, grids[0], 3)
}

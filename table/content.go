/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package table

import (
	"sort"
	"strings"

	"github.com/jackburrus/ripdoc/contentstream"
	"github.com/jackburrus/ripdoc/geom"
)

// assignCellText implements stage 7: each cell collects the characters
// whose geometric centre lies within its bbox, sorted by top then x0, with
// a newline inserted whenever top advances past textYTol.
func assignCellText(t *Table, chars []contentstream.Char, textYTol float64) {
	for _, cell := range t.Cells {
		var owned []contentstream.Char
		for _, c := range chars {
			cx, cy := c.BBox.Center()
			if cell.BBox.ContainsPoint(cx, cy) {
				owned = append(owned, c)
			}
		}
		cell.Text = renderCellText(owned, textYTol)
	}
}

func renderCellText(chars []contentstream.Char, textYTol float64) string {
	if len(chars) == 0 {
		return ""
	}
	sort.SliceStable(chars, func(i, j int) bool {
		if chars[i].BBox.Top != chars[j].BBox.Top {
			return chars[i].BBox.Top < chars[j].BBox.Top
		}
		return chars[i].BBox.X0 < chars[j].BBox.X0
	})

	var sb strings.Builder
	sb.WriteString(chars[0].Text)
	rowTop := chars[0].BBox.Top
	for _, c := range chars[1:] {
		if c.BBox.Top-rowTop > textYTol {
			sb.WriteString("\n")
			rowTop = c.BBox.Top
		}
		sb.WriteString(c.Text)
	}
	return strings.TrimSpace(sb.String())
}

// detectMergedCells implements stage 8: for each pair of cells sharing a
// row that lacks a vertical edge along their boundary, widen the left
// cell's ColSpan and absorb the right cell (space-joined text, union bbox);
// analogously for a shared column missing a horizontal edge, newline-joined.
func detectMergedCells(t *Table, horiz, vert []geom.Edge, tolX, tolY float64) {
	mergeAxis(t, vert, true, tolX, tolY)
	mergeAxis(t, horiz, false, tolY, tolX)
}

func mergeAxis(t *Table, edges []geom.Edge, horizontalAdjacency bool, constTol, spanTol float64) {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(t.Cells); i++ {
			a := t.Cells[i]
			if a == nil {
				continue
			}
			for j := 0; j < len(t.Cells); j++ {
				if i == j {
					continue
				}
				b := t.Cells[j]
				if b == nil {
					continue
				}
				if horizontalAdjacency {
					if !adjacentRight(a, b) {
						continue
					}
					if edgeSpans(edges, a.BBox.X1, a.BBox.Top, a.BBox.Bottom, constTol, spanTol) {
						continue
					}
				} else {
					if !adjacentBelow(a, b) {
						continue
					}
					if edgeSpans(edges, a.BBox.Bottom, a.BBox.X0, a.BBox.X1, constTol, spanTol) {
						continue
					}
				}

				sep := " "
				if !horizontalAdjacency {
					sep = "\n"
				}
				a.BBox = a.BBox.Union(b.BBox)
				if horizontalAdjacency {
					a.ColSpan += b.ColSpan
				} else {
					a.RowSpan += b.RowSpan
				}
				a.Text = joinNonEmpty(a.Text, b.Text, sep)
				t.Cells[j] = nil
				changed = true
			}
		}
	}
	compact(t)
}

func adjacentRight(a, b *Cell) bool {
	return a.Row == b.Row && b.Col == a.Col+a.ColSpan
}

func adjacentBelow(a, b *Cell) bool {
	return a.Col == b.Col && b.Row == a.Row+a.RowSpan
}

func joinNonEmpty(a, b, sep string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + sep + b
}

func compact(t *Table) {
	var out []*Cell
	for _, c := range t.Cells {
		if c != nil {
			out = append(out, c)
		}
	}
	t.Cells = out
}

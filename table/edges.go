/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package table

import (
	"sort"

	"github.com/jackburrus/ripdoc/geom"
	"github.com/jackburrus/ripdoc/page"
)

const edgeEq = 1e-6

// collectEdges runs stage 1 (edge collection) for both axes per s's
// strategies.
func collectEdges(pg *page.Page, s Settings) (horiz, vert []geom.Edge) {
	horiz = collectAxis(pg, s, geom.Horizontal, s.HorizontalStrategy, s.MinWordsHorizontal)
	vert = collectAxis(pg, s, geom.Vertical, s.VerticalStrategy, s.MinWordsVertical)
	return horiz, vert
}

func collectAxis(pg *page.Page, s Settings, orientation geom.Orientation, strategy Strategy, minWords int) []geom.Edge {
	switch strategy {
	case StrategyText:
		return textEdges(pg, s, orientation, minWords)
	case StrategyExplicit:
		if orientation == geom.Horizontal {
			return explicitEdges(s.ExplicitHorizontalLines, orientation, pg.Width)
		}
		return explicitEdges(s.ExplicitVerticalLines, orientation, pg.Height)
	default: // lines, lines_strict
		return lineEdges(pg, orientation)
	}
}

// lineEdges gathers Line primitives of the requested orientation (exact,
// within edgeEq) plus the decomposed sides of every Rect.
func lineEdges(pg *page.Page, orientation geom.Orientation) []geom.Edge {
	var out []geom.Edge
	for _, l := range pg.Lines {
		if orientation == geom.Horizontal && isHorizontalBBox(l.BBox) {
			out = append(out, geom.NewHorizontalEdge(l.BBox.X0, l.BBox.X1, l.BBox.Top, l.Width))
		} else if orientation == geom.Vertical && isVerticalBBox(l.BBox) {
			out = append(out, geom.NewVerticalEdge(l.BBox.Top, l.BBox.Bottom, l.BBox.X0, l.Width))
		}
	}
	for _, r := range pg.Rects {
		sides := geom.RectEdges(r.BBox, r.Width)
		for _, e := range sides {
			if e.Orientation == orientation {
				out = append(out, e)
			}
		}
	}
	return out
}

func isHorizontalBBox(b geom.BBox) bool { return b.Bottom-b.Top <= edgeEq }
func isVerticalBBox(b geom.BBox) bool   { return b.X1-b.X0 <= edgeEq }

// textEdges infers edges from word-position clusters: every cluster of at
// least minWords members contributes one edge at the cluster mean, spanning
// the opposite-axis extent of the words in it.
func textEdges(pg *page.Page, s Settings, orientation geom.Orientation, minWords int) []geom.Edge {
	words := page.GroupWords(pg.Chars, 0, 0)
	if len(words) == 0 {
		return nil
	}

	if orientation == geom.Vertical {
		var out []geom.Edge
		out = append(out, verticalTextEdges(words, func(w page.Word) float64 { return w.BBox.X0 }, s.TextXTolerance, minWords)...)
		out = append(out, verticalTextEdges(words, func(w page.Word) float64 { return w.BBox.X1 }, s.TextXTolerance, minWords)...)
		return out
	}
	var out []geom.Edge
	out = append(out, horizontalTextEdges(words, func(w page.Word) float64 { return w.BBox.Top }, s.TextYTolerance, minWords)...)
	out = append(out, horizontalTextEdges(words, func(w page.Word) float64 { return w.BBox.Bottom }, s.TextYTolerance, minWords)...)
	return out
}

func verticalTextEdges(words []page.Word, coord func(page.Word) float64, tol float64, minWords int) []geom.Edge {
	values := make([]float64, len(words))
	for i, w := range words {
		values[i] = coord(w)
	}
	clusters := geom.Cluster1D(values, tol)
	var out []geom.Edge
	for _, cluster := range clusters {
		if len(cluster) < minWords {
			continue
		}
		x := geom.ClusterMean(values, cluster)
		var tops, bottoms []float64
		for _, idx := range cluster {
			tops = append(tops, words[idx].BBox.Top)
			bottoms = append(bottoms, words[idx].BBox.Bottom)
		}
		out = append(out, geom.NewVerticalEdge(minFloat(tops), maxFloat(bottoms), x, 1))
	}
	return out
}

func horizontalTextEdges(words []page.Word, coord func(page.Word) float64, tol float64, minWords int) []geom.Edge {
	values := make([]float64, len(words))
	for i, w := range words {
		values[i] = coord(w)
	}
	clusters := geom.Cluster1D(values, tol)
	var out []geom.Edge
	for _, cluster := range clusters {
		if len(cluster) < minWords {
			continue
		}
		y := geom.ClusterMean(values, cluster)
		var lefts, rights []float64
		for _, idx := range cluster {
			lefts = append(lefts, words[idx].BBox.X0)
			rights = append(rights, words[idx].BBox.X1)
		}
		out = append(out, geom.NewHorizontalEdge(minFloat(lefts), maxFloat(rights), y, 1))
	}
	return out
}

// explicitEdges turns a caller-supplied coordinate list into full-page
// edges of the given orientation; extent is the page's opposite-axis
// dimension (width for horizontals, height for verticals).
func explicitEdges(coords []float64, orientation geom.Orientation, extent float64) []geom.Edge {
	var out []geom.Edge
	for _, c := range coords {
		if orientation == geom.Horizontal {
			out = append(out, geom.NewHorizontalEdge(0, extent, c, 1))
		} else {
			out = append(out, geom.NewVerticalEdge(0, extent, c, 1))
		}
	}
	return out
}

// filterShort drops edges shorter than minLength (stage 2, first half).
func filterShort(edges []geom.Edge, minLength float64) []geom.Edge {
	var out []geom.Edge
	for _, e := range edges {
		if e.Length() >= minLength {
			out = append(out, e)
		}
	}
	return out
}

// snap implements stage 2's snapping pass: sort by the constant coordinate,
// walk in order, and snap any next edge whose constant coordinate is within
// tolerance of the running anchor down to the anchor value. Applying snap
// twice with the same tolerance is idempotent, since after the first pass
// every member of a snapped run already shares the anchor's exact value.
func snap(edges []geom.Edge, tolerance float64) []geom.Edge {
	if len(edges) == 0 {
		return edges
	}
	out := make([]geom.Edge, len(edges))
	copy(out, edges)
	sort.Slice(out, func(i, j int) bool { return constCoord(out[i]) < constCoord(out[j]) })

	anchor := constCoord(out[0])
	for i := 1; i < len(out); i++ {
		c := constCoord(out[i])
		if c-anchor <= tolerance {
			out[i] = setConstCoord(out[i], anchor)
		} else {
			anchor = c
		}
	}
	return out
}

func constCoord(e geom.Edge) float64 {
	if e.Orientation == geom.Horizontal {
		return e.Top
	}
	return e.X0
}

func setConstCoord(e geom.Edge, v float64) geom.Edge {
	if e.Orientation == geom.Horizontal {
		e.Top, e.Bottom = v, v
	} else {
		e.X0, e.X1 = v, v
	}
	return e
}

// merge implements stage 3: within the (already snap-sorted) slice, collapse
// successive collinear edges (same constant coordinate, within joinTol) whose
// spans overlap or touch into a single edge covering their union, taking the
// max width. strict disables bridging a gap between spans (LinesStrict):
// only overlapping-or-touching spans merge, never ones separated by a gap
// within tolerance.
func merge(edges []geom.Edge, joinTol float64, strict bool) []geom.Edge {
	if len(edges) == 0 {
		return nil
	}
	sorted := make([]geom.Edge, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool {
		if constCoord(sorted[i]) != constCoord(sorted[j]) {
			return constCoord(sorted[i]) < constCoord(sorted[j])
		}
		return spanStart(sorted[i]) < spanStart(sorted[j])
	})

	var out []geom.Edge
	current := sorted[0]
	for _, e := range sorted[1:] {
		sameLine := abs64(constCoord(e)-constCoord(current)) <= joinTol
		gap := spanStart(e) - spanEnd(current)
		touches := gap <= 0 || (!strict && gap <= joinTol)
		if sameLine && touches {
			current = unionSpan(current, e)
		} else {
			out = append(out, current)
			current = e
		}
	}
	out = append(out, current)
	return out
}

func spanStart(e geom.Edge) float64 {
	if e.Orientation == geom.Horizontal {
		return e.X0
	}
	return e.Top
}

func spanEnd(e geom.Edge) float64 {
	if e.Orientation == geom.Horizontal {
		return e.X1
	}
	return e.Bottom
}

func unionSpan(a, b geom.Edge) geom.Edge {
	width := a.Width
	if b.Width > width {
		width = b.Width
	}
	if a.Orientation == geom.Horizontal {
		return geom.NewHorizontalEdge(minFloat2(a.X0, b.X0), maxFloat2(a.X1, b.X1), a.Top, width)
	}
	return geom.NewVerticalEdge(minFloat2(a.Top, b.Top), maxFloat2(a.Bottom, b.Bottom), a.X0, width)
}

func minFloat(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxFloat(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minFloat2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

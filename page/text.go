/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package page

import (
	"math"
	"sort"
	"strings"

	"github.com/jackburrus/ripdoc/contentstream"
)

// TextOptions controls ExtractText (spec §6): Layout selects the
// fixed-width grid renderer of §4.6 instead of the simple reading-order
// renderer of §4.5; the tolerances and densities carry the spec's default
// values when left at zero.
type TextOptions struct {
	Layout          bool
	XTolerance      float64
	YTolerance      float64
	XDensity        float64
	YDensity        float64
	KeepBlankChars  bool
}

// DefaultTextOptions returns the §6 defaults: 3pt tolerances, 7.25pt x
// density, 13pt y density, simple (non-layout) mode.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		XTolerance: DefaultTolerance,
		YTolerance: DefaultTolerance,
		XDensity:   7.25,
		YDensity:   13.0,
	}
}

func (o TextOptions) normalized() TextOptions {
	if o.XTolerance <= 0 {
		o.XTolerance = DefaultTolerance
	}
	if o.YTolerance <= 0 {
		o.YTolerance = DefaultTolerance
	}
	if o.XDensity <= 0 {
		o.XDensity = 7.25
	}
	if o.YDensity <= 0 {
		o.YDensity = 13.0
	}
	return o
}

// ExtractText renders p.Chars to a Unicode string per opts.
func (p *Page) ExtractText(opts TextOptions) string {
	opts = opts.normalized()
	if opts.Layout {
		return layoutText(p.Chars, p.Width, opts)
	}
	return simpleText(p.Chars, opts)
}

// simpleText implements §4.5: sort top-to-bottom then left-to-right, break
// lines when the vertical gap exceeds YTolerance, and insert single spaces
// within a line when the horizontal gap exceeds XTolerance.
func simpleText(chars []contentstream.Char, opts TextOptions) string {
	ordered := sortReadingOrder(chars, opts.KeepBlankChars)
	if len(ordered) == 0 {
		return ""
	}

	var lines []strings.Builder
	lines = append(lines, strings.Builder{})
	lineIdx := 0

	prev := ordered[0]
	lines[lineIdx].WriteString(prev.Text)
	for _, c := range ordered[1:] {
		if c.BBox.Top-prev.BBox.Top > opts.YTolerance {
			lines = append(lines, strings.Builder{})
			lineIdx++
		} else if c.BBox.X0-prev.BBox.X1 > opts.XTolerance {
			lines[lineIdx].WriteString(" ")
		}
		lines[lineIdx].WriteString(c.Text)
		prev = c
	}

	out := make([]string, len(lines))
	for i := range lines {
		out[i] = strings.TrimRight(lines[i].String(), " \t")
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

// layoutText implements §4.6: partition into lines by y-tolerance, then
// render each line onto a fixed-width grid of ceil(pageWidth/xDensity)
// cells, placing each glyph's text at column round(x0/xDensity) and
// overwriting any earlier contents there.
func layoutText(chars []contentstream.Char, pageWidth float64, opts TextOptions) string {
	ordered := sortReadingOrder(chars, opts.KeepBlankChars)
	if len(ordered) == 0 {
		return ""
	}

	cols := int(math.Ceil(pageWidth / opts.XDensity))
	if cols < 1 {
		cols = 1
	}

	var rows [][]rune
	newRow := func() []rune {
		r := make([]rune, cols)
		for i := range r {
			r[i] = ' '
		}
		return r
	}

	rows = append(rows, newRow())
	rowTop := ordered[0].BBox.Top
	for _, c := range ordered {
		if c.BBox.Top-rowTop > opts.YTolerance {
			rows = append(rows, newRow())
			rowTop = c.BBox.Top
		}
		col := int(math.Round(c.BBox.X0 / opts.XDensity))
		placeText(rows[len(rows)-1], col, c.Text)
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = strings.TrimRight(string(r), " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func placeText(row []rune, col int, text string) {
	for _, r := range text {
		if col < 0 {
			col++
			continue
		}
		if col >= len(row) {
			return
		}
		row[col] = r
		col++
	}
}

func sortReadingOrder(chars []contentstream.Char, keepBlank bool) []contentstream.Char {
	var ordered []contentstream.Char
	for _, c := range chars {
		if !keepBlank && strings.TrimSpace(c.Text) == "" {
			continue
		}
		ordered = append(ordered, c)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].BBox.Top != ordered[j].BBox.Top {
			return ordered[i].BBox.Top < ordered[j].BBox.Top
		}
		return ordered[i].BBox.X0 < ordered[j].BBox.X0
	})
	return ordered
}

/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package page

import (
	"sort"
	"strings"

	"github.com/jackburrus/ripdoc/contentstream"
	"github.com/jackburrus/ripdoc/geom"
)

// DefaultTolerance is the default x- and y-tolerance for word grouping and
// simple text extraction (spec §4.4/§4.5), in points.
const DefaultTolerance = 3.0

// Word is a reconstructed run of characters with no internal whitespace,
// built on demand from a Page's Chars.
type Word struct {
	Text     string
	BBox     geom.BBox
	DocTop   float64
	FontName string
	Size     float64
	Upright  bool
}

// Words groups p.Chars into words using xTol/yTol (both default to
// DefaultTolerance when <= 0): a character extends the current word iff its
// Top is within yTol of the previous character's Top, its X0 is within xTol
// of the previous character's X1, and its trimmed text is non-empty.
// Whitespace characters never join a word but do terminate the one in
// progress.
func (p *Page) Words(xTol, yTol float64) []Word {
	return GroupWords(p.Chars, xTol, yTol)
}

// GroupWords is the pure function Page.Words delegates to, exposed
// separately so table-detector text strategies and other callers can group
// an arbitrary character slice (e.g. a cropped subset) without a Page.
func GroupWords(chars []contentstream.Char, xTol, yTol float64) []Word {
	if xTol <= 0 {
		xTol = DefaultTolerance
	}
	if yTol <= 0 {
		yTol = DefaultTolerance
	}
	if len(chars) == 0 {
		return nil
	}

	ordered := make([]contentstream.Char, len(chars))
	copy(ordered, chars)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].BBox.Top != ordered[j].BBox.Top {
			return ordered[i].BBox.Top < ordered[j].BBox.Top
		}
		return ordered[i].BBox.X0 < ordered[j].BBox.X0
	})

	var words []Word
	var current []contentstream.Char

	flush := func() {
		if w, ok := buildWord(current); ok {
			words = append(words, w)
		}
		current = nil
	}

	var prev *contentstream.Char
	for i := range ordered {
		c := ordered[i]
		if strings.TrimSpace(c.Text) == "" {
			flush()
			prev = nil
			continue
		}
		if prev != nil {
			sameLine := abs(c.BBox.Top-prev.BBox.Top) <= yTol
			adjacent := abs(c.BBox.X0-prev.BBox.X1) <= xTol
			if !sameLine || !adjacent {
				flush()
			}
		}
		current = append(current, c)
		prev = &ordered[i]
	}
	flush()
	return words
}

func buildWord(chars []contentstream.Char) (Word, bool) {
	if len(chars) == 0 {
		return Word{}, false
	}
	var sb strings.Builder
	boxes := make([]geom.BBox, len(chars))
	for i, c := range chars {
		sb.WriteString(c.Text)
		boxes[i] = c.BBox
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return Word{}, false
	}
	first := chars[0]
	return Word{
		Text:     text,
		BBox:     geom.UnionAll(boxes),
		DocTop:   first.DocTop,
		FontName: first.FontName,
		Size:     first.Size,
		Upright:  first.Upright,
	}, true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

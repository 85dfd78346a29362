/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package page

import (
	"regexp"
	"strings"

	"github.com/jackburrus/ripdoc/geom"
)

// Match is one search hit: its text, the union bbox of the characters that
// produced it, the page it was found on, and the indices (into the Page's
// reading-order character sequence used for the search) of the
// contributing characters.
type Match struct {
	Text           string
	BBox           geom.BBox
	Page           int
	CharIndices    []int
}

// Search finds every occurrence of pattern in the reading-order
// concatenation of p's character texts: a case-insensitive literal
// substring match when regex is false, a regexp.FindAllStringIndex search
// (also case-insensitive, via an inline "(?i)" flag) when true.
func (p *Page) Search(pattern string, regex bool) ([]Match, error) {
	ordered := sortReadingOrder(p.Chars, true)
	if len(ordered) == 0 {
		return nil, nil
	}

	var text strings.Builder
	offsets := make([]int, 0, len(ordered))
	for _, c := range ordered {
		offsets = append(offsets, text.Len())
		text.WriteString(c.Text)
	}
	full := text.String()

	var spans [][2]int
	if regex {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, err
		}
		spans = re.FindAllStringIndex(full, -1)
	} else {
		spans = findAllLiteral(strings.ToLower(full), strings.ToLower(pattern))
	}

	var matches []Match
	for _, span := range spans {
		start, end := span[0], span[1]
		if start == end {
			continue
		}
		var idxs []int
		var boxes []geom.BBox
		for i, off := range offsets {
			charEnd := off + len(ordered[i].Text)
			if off < end && charEnd > start {
				idxs = append(idxs, i)
				boxes = append(boxes, ordered[i].BBox)
			}
		}
		if len(idxs) == 0 {
			continue
		}
		matches = append(matches, Match{
			Text:        full[start:end],
			BBox:        geom.UnionAll(boxes),
			Page:        p.Number,
			CharIndices: idxs,
		})
	}
	return matches, nil
}

func findAllLiteral(haystack, needle string) [][2]int {
	if needle == "" {
		return nil
	}
	var spans [][2]int
	start := 0
	for {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			break
		}
		from := start + idx
		to := from + len(needle)
		spans = append(spans, [2]int{from, to})
		start = to
	}
	return spans
}

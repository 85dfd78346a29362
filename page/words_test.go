/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package page

import (
	"testing"

	"github.com/jackburrus/ripdoc/contentstream"
	"github.com/jackburrus/ripdoc/geom"
	"github.com/stretchr/testify/require"
)

func charAt(text string, x0, top, x1, bottom float64) contentstream.Char {
	return contentstream.Char{Text: text, BBox: geom.NewBBox(x0, top, x1, bottom)}
}

func TestGroupWordsJoinsAdjacentGlyphs(t *testing.T) {
	chars := []contentstream.Char{
		charAt("H", 0, 10, 6, 20),
		charAt("i", 6, 10, 9, 20),
		charAt(" ", 9, 10, 12, 20),
		charAt("t", 12, 10, 15, 20),
		charAt("h", 15, 10, 21, 20),
		charAt("e", 21, 10, 27, 20),
	}
	words := GroupWords(chars, 1, 1)
	require.Len(t, words, 2)
	require.Equal(t, "Hi", words[0].Text)
	require.Equal(t, "the", words[1].Text)
	require.Equal(t, geom.NewBBox(0, 10, 9, 20), words[0].BBox)
}

func TestGroupWordsBreaksOnWideGap(t *testing.T) {
	chars := []contentstream.Char{
		charAt("A", 0, 10, 6, 20),
		charAt("B", 50, 10, 56, 20), // far beyond x-tolerance, no space between
	}
	words := GroupWords(chars, 3, 3)
	require.Len(t, words, 2)
}

func TestGroupWordsBreaksOnNewLine(t *testing.T) {
	chars := []contentstream.Char{
		charAt("A", 0, 10, 6, 20),
		charAt("B", 0, 30, 6, 40),
	}
	words := GroupWords(chars, 3, 3)
	require.Len(t, words, 2)
}

func TestGroupWordsEmpty(t *testing.T) {
	require.Empty(t, GroupWords(nil, 3, 3))
}

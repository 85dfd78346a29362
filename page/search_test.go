/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package page

import (
	"testing"

	"github.com/jackburrus/ripdoc/contentstream"
	"github.com/stretchr/testify/require"
)

func hiThereChars() []contentstream.Char {
	return []contentstream.Char{
		charAt("H", 0, 10, 6, 20),
		charAt("i", 6, 10, 9, 20),
		charAt(" ", 9, 10, 12, 20),
		charAt("t", 12, 10, 15, 20),
		charAt("h", 15, 10, 21, 20),
		charAt("e", 21, 10, 27, 20),
		charAt("r", 27, 10, 33, 20),
		charAt("e", 33, 10, 39, 20),
	}
}

func TestSearchLiteralIsCaseInsensitive(t *testing.T) {
	p := &Page{Number: 3, Chars: hiThereChars()}
	matches, err := p.Search("THERE", false)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "there", matches[0].Text)
	require.Equal(t, 3, matches[0].Page)
	require.Equal(t, []int{3, 4, 5, 6, 7}, matches[0].CharIndices)
}

func TestSearchRegex(t *testing.T) {
	p := &Page{Chars: hiThereChars()}
	matches, err := p.Search("h.", true)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, "Hi", matches[0].Text)
	require.Equal(t, "he", matches[1].Text)
}

func TestSearchNoMatch(t *testing.T) {
	p := &Page{Chars: hiThereChars()}
	matches, err := p.Search("xyz", false)
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestSearchEmptyPage(t *testing.T) {
	p := &Page{}
	matches, err := p.Search("anything", false)
	require.NoError(t, err)
	require.Empty(t, matches)
}

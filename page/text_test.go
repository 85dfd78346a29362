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

func TestExtractTextSimpleInsertsSpacesAndLineBreaks(t *testing.T) {
	p := &Page{
		Width:  200,
		Height: 100,
		Chars: []contentstream.Char{
			charAt("H", 0, 10, 6, 20),
			charAt("i", 6, 10, 9, 20),
			charAt("t", 50, 10, 53, 20), // wide gap on the same line -> space
			charAt("h", 53, 10, 59, 20),
			charAt("e", 59, 10, 65, 20),
			charAt("r", 0, 30, 6, 40), // next line
			charAt("e", 6, 30, 12, 40),
		},
	}
	got := p.ExtractText(DefaultTextOptions())
	require.Equal(t, "Hi the\nre", got)
}

func TestExtractTextLayoutPlacesGlyphsOnGrid(t *testing.T) {
	p := &Page{
		Width:  100,
		Height: 50,
		Chars: []contentstream.Char{
			charAt("A", 0, 10, 6, 20),
			charAt("B", 29, 10, 35, 20),
		},
	}
	opts := DefaultTextOptions()
	opts.Layout = true
	opts.XDensity = 10
	got := p.ExtractText(opts)
	require.Equal(t, "A  B", got)
}

func TestExtractTextEmptyPageYieldsEmptyString(t *testing.T) {
	p := &Page{Width: 100, Height: 100}
	require.Equal(t, "", p.ExtractText(DefaultTextOptions()))
}

func TestExtractTextSkipsBlankCharsByDefault(t *testing.T) {
	p := &Page{
		Width:  100,
		Height: 100,
		Chars: []contentstream.Char{
			charAt("A", 0, 10, 6, 20),
			charAt(" ", 6, 10, 9, 20),
			charAt("B", 9, 10, 15, 20),
		},
	}
	require.Equal(t, "AB", p.ExtractText(DefaultTextOptions()))
}

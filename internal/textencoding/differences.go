/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import (
	"fmt"

	"github.com/jackburrus/ripdoc/common"
	"github.com/jackburrus/ripdoc/core"
)

// FromFontDifferences converts a /Differences array into a charcode->glyph
// map: an integer resets the running code, a name assigns the glyph at the
// current code and advances it by one.
func FromFontDifferences(diffList *core.PdfObjectArray) (map[CharCode]GlyphName, error) {
	differences := make(map[CharCode]GlyphName)
	var n CharCode
	for _, obj := range diffList.Elements() {
		switch v := obj.(type) {
		case *core.PdfObjectInteger:
			n = CharCode(*v)
		case *core.PdfObjectName:
			differences[n] = GlyphName(*v)
			n++
		default:
			common.Log.Debug("FromFontDifferences: unexpected element %v", obj)
			return nil, fmt.Errorf("invalid /Differences entry: %w", core.ErrTypeError)
		}
	}
	return differences, nil
}

// ApplyDifferences overlays differences on top of base, falling back to base
// for any charcode the overlay does not redefine.
func ApplyDifferences(base SimpleEncoder, differences map[CharCode]GlyphName) SimpleEncoder {
	if len(differences) == 0 {
		return base
	}
	d := &differencesEncoding{base: base, decode: map[byte]rune{}, encode: map[rune]byte{}}
	if prior, ok := base.(*differencesEncoding); ok {
		merged := map[CharCode]GlyphName{}
		for code, glyph := range prior.differences {
			merged[code] = glyph
		}
		for code, glyph := range differences {
			merged[code] = glyph
		}
		differences = merged
		base = prior.base
		d.base = base
	}
	d.differences = differences
	for code, glyph := range differences {
		b := byte(code)
		r, ok := GlyphToRune(glyph)
		if !ok {
			common.Log.Debug("ApplyDifferences: no rune for glyph %q", glyph)
			continue
		}
		d.decode[b] = r
		d.encode[r] = b
	}
	return d
}

// differencesEncoding remaps a handful of character codes over a base
// SimpleEncoder, passing everything else through.
type differencesEncoding struct {
	base        SimpleEncoder
	differences map[CharCode]GlyphName
	decode      map[byte]rune
	encode      map[rune]byte
}

func (enc *differencesEncoding) BaseName() string { return enc.base.BaseName() }
func (enc *differencesEncoding) String() string {
	return fmt.Sprintf("differences(%s)", enc.base.String())
}

func (enc *differencesEncoding) Decode(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		r, _ := enc.CharcodeToRune(CharCode(b))
		runes = append(runes, r)
	}
	return string(runes)
}

func (enc *differencesEncoding) RuneToCharcode(r rune) (CharCode, bool) {
	if b, ok := enc.encode[r]; ok {
		return CharCode(b), true
	}
	return enc.base.RuneToCharcode(r)
}

func (enc *differencesEncoding) CharcodeToRune(code CharCode) (rune, bool) {
	if code > 0xff {
		return MissingCodeRune, false
	}
	if r, ok := enc.decode[byte(code)]; ok {
		return r, true
	}
	return enc.base.CharcodeToRune(code)
}

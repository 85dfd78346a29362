/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package textencoding resolves PDF character codes to Unicode runes: the
// named single-byte encodings (WinAnsi, MacRoman, Standard, PDFDoc,
// MacExpert), the /Differences overlay, the Adobe glyph list, and the
// golang.org/x/text/encoding adapter that lets any of them be driven through
// the standard encoding.Encoding/transform.Transformer machinery.
package textencoding

import (
	"encoding/binary"

	"github.com/jackburrus/ripdoc/common"
)

// CharCode is a character code in a specific encoding (1 or 2 bytes wide
// depending on the font's encoding).
type CharCode uint16

// GlyphName is an Adobe glyph name, e.g. "A" or "uni00E9".
type GlyphName string

// MissingCodeRune stands in for a character code that has no mapping,
// U+FFFD REPLACEMENT CHARACTER.
const MissingCodeRune = rune(0xFFFD)

// TextEncoder maps between PDF character codes and Unicode runes.
type TextEncoder interface {
	String() string
	Decode(raw []byte) string
	CharcodeToRune(code CharCode) (rune, bool)
}

func decodeString16bit(enc TextEncoder, raw []byte) string {
	runes := make([]rune, 0, len(raw)/2+len(raw)%2)
	for len(raw) > 0 {
		if len(raw) == 1 {
			raw = []byte{raw[0], 0}
		}
		code := CharCode(binary.BigEndian.Uint16(raw[:2]))
		raw = raw[2:]
		r, ok := enc.CharcodeToRune(code)
		if !ok {
			common.Log.Debug("textencoding: no mapping for charcode %#x", code)
			continue
		}
		runes = append(runes, r)
	}
	return string(runes)
}

/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	xtransform "golang.org/x/text/transform"
)

// SimpleEncoder is a single-byte TextEncoder, as used by simple (non-Type0)
// fonts.
type SimpleEncoder interface {
	TextEncoder
	BaseName() string
	RuneToCharcode(r rune) (CharCode, bool)
}

var (
	_ SimpleEncoder     = (*simpleEncoding)(nil)
	_ encoding.Encoding = (*simpleEncoding)(nil)
)

// simpleEncoding is a one-byte CharCode<->rune mapping that also satisfies
// golang.org/x/text/encoding.Encoding, so callers that already work in terms
// of io.Reader/Writer transforms can drive it the same way as any other
// charset.
type simpleEncoding struct {
	baseName string
	decode   map[byte]rune
	encode   map[rune]byte
}

func newSimpleEncoding(name string, table map[byte]rune) *simpleEncoding {
	enc := &simpleEncoding{baseName: name, decode: table, encode: make(map[rune]byte, len(table))}
	for b, r := range table {
		if b2, has := enc.encode[r]; !has || b < b2 {
			enc.encode[r] = b
		}
	}
	return enc
}

func (enc *simpleEncoding) String() string { return "simpleEncoding(" + enc.baseName + ")" }
func (enc *simpleEncoding) BaseName() string { return enc.baseName }

func (enc *simpleEncoding) RuneToCharcode(r rune) (CharCode, bool) {
	b, ok := enc.encode[r]
	return CharCode(b), ok
}

func (enc *simpleEncoding) CharcodeToRune(code CharCode) (rune, bool) {
	if code > 0xff {
		return MissingCodeRune, false
	}
	r, ok := enc.decode[byte(code)]
	return r, ok
}

func (enc *simpleEncoding) Decode(raw []byte) string {
	out, _ := enc.NewDecoder().Bytes(raw)
	return string(out)
}

// NewDecoder implements encoding.Encoding.
func (enc *simpleEncoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: simpleDecoder{m: enc.decode}}
}

// NewEncoder implements encoding.Encoding.
func (enc *simpleEncoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: simpleEncoder{m: enc.encode}}
}

type simpleDecoder struct{ m map[byte]rune }

func (d simpleDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, _ error) {
	for len(src) != 0 {
		b := src[0]
		src = src[1:]
		r, ok := d.m[b]
		if !ok {
			r = MissingCodeRune
		}
		if utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, xtransform.ErrShortDst
		}
		n := utf8.EncodeRune(dst, r)
		dst = dst[n:]
		nSrc++
		nDst += n
	}
	return nDst, nSrc, nil
}
func (d simpleDecoder) Reset() {}

type simpleEncoder struct{ m map[rune]byte }

func (e simpleEncoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, _ error) {
	for len(src) != 0 {
		if !utf8.FullRune(src) && !atEOF {
			return nDst, nSrc, xtransform.ErrShortSrc
		} else if len(dst) == 0 {
			return nDst, nSrc, xtransform.ErrShortDst
		}
		r, n := utf8.DecodeRune(src)
		src = src[n:]
		nSrc += n
		b, ok := e.m[r]
		if !ok {
			b = '?'
		}
		dst[0] = b
		dst = dst[1:]
		nDst++
	}
	return nDst, nSrc, nil
}
func (e simpleEncoder) Reset() {}

var (
	registry     = map[string]func() *simpleEncoding{}
	registryOnce sync.Once
)

func registerTables() {
	registry["WinAnsiEncoding"] = func() *simpleEncoding { return newSimpleEncoding("WinAnsiEncoding", winAnsiTable) }
	registry["MacRomanEncoding"] = func() *simpleEncoding { return newSimpleEncoding("MacRomanEncoding", macRomanTable) }
	registry["StandardEncoding"] = func() *simpleEncoding { return newSimpleEncoding("StandardEncoding", standardTable) }
	registry["PDFDocEncoding"] = func() *simpleEncoding { return newSimpleEncoding("PDFDocEncoding", pdfDocTable) }
	registry["MacExpertEncoding"] = func() *simpleEncoding { return newSimpleEncoding("MacExpertEncoding", macExpertTable) }
}

// NewSimpleTextEncoder returns the named base encoding, with differences (a
// /Differences array converted via FromFontDifferences) overlaid if
// non-empty. An unrecognized baseName falls back to StandardEncoding, since
// a best-effort guess beats refusing to extract text from the page.
func NewSimpleTextEncoder(baseName string, differences map[CharCode]GlyphName) SimpleEncoder {
	registryOnce.Do(registerTables)
	ctor, ok := registry[baseName]
	if !ok {
		ctor = registry["StandardEncoding"]
	}
	var enc SimpleEncoder = ctor()
	if len(differences) != 0 {
		enc = ApplyDifferences(enc, differences)
	}
	return enc
}

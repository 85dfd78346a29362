/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"strings"

	"github.com/jackburrus/ripdoc/common"
	"github.com/jackburrus/ripdoc/core"
	"github.com/jackburrus/ripdoc/internal/cmap"
	"github.com/jackburrus/ripdoc/internal/textencoding"
)

// StreamDecoder resolves and decodes a stream object, abstracting over
// *core.PdfParser so that font resolution does not need the full parser
// type just to read a /ToUnicode or CIDFont /Encoding stream.
type StreamDecoder interface {
	Decode(s *core.PdfObjectStream) ([]byte, error)
}

// FontInfo is the immutable result of resolving one font dictionary: a
// code->Unicode map, a code->width map, and the metadata needed to split a
// show-text string into codes. Once built it is never mutated; it is cached
// per font dictionary on the owning document and shared by pointer across
// every Char that references it.
type FontInfo struct {
	Name         string // in-page resource name, e.g. "F1"
	BaseFont     string
	Subtype      string
	Composite    bool
	BytesPerCode int // 1 for simple fonts, 2 for composite

	widths       map[uint32]float64
	defaultWidth float64
	firstChar    int

	toUnicode *cmap.CMap       // highest-authority decode source, nil if absent
	simple    textencoding.SimpleEncoder // nil for composite fonts
	cidMap    *cmap.CMap       // composite fonts only; nil means Identity-H/V
}

// DecodedChar is one character code decoded from a show-text string operand:
// its raw code, its Unicode text, and its width in thousandths of text
// space (unscaled by font size).
type DecodedChar struct {
	Code  uint32
	Text  string
	Width float64
}

// DefaultFontInfo is substituted when a /Font resource name cannot be
// resolved (missing dictionary, parse failure): an Identity-like ASCII
// fallback. Font-resolution errors never abort a page; they degrade to this
// default and a logged warning instead.
func DefaultFontInfo(name string) *FontInfo {
	return &FontInfo{
		Name:         name,
		BaseFont:     "Helvetica",
		Subtype:      "Type1",
		BytesPerCode: 1,
		widths:       map[uint32]float64{},
		defaultWidth: 500,
		simple:       textencoding.NewSimpleTextEncoder("StandardEncoding", nil),
	}
}

// NewFontInfoFromDict resolves a font dictionary into a FontInfo. decoder is
// used to read /ToUnicode and CIDFont /Encoding streams.
func NewFontInfoFromDict(name string, dict *core.PdfObjectDictionary, decoder StreamDecoder) (*FontInfo, error) {
	if dict == nil {
		return DefaultFontInfo(name), core.ErrTypeError
	}
	subtype, _ := core.GetNameValKey(dict, "Subtype")
	baseFont, _ := core.GetNameValKey(dict, "BaseFont")

	fi := &FontInfo{
		Name:      name,
		BaseFont:  baseFont,
		Subtype:   subtype,
		widths:    map[uint32]float64{},
	}

	if obj := core.Resolve(dict.Get("ToUnicode")); obj != nil {
		if stream, ok := obj.(*core.PdfObjectStream); ok && decoder != nil {
			if raw, err := decoder.Decode(stream); err == nil {
				if cm, err := cmap.ParseToUnicodeCMap(raw); err == nil {
					fi.toUnicode = cm
				} else {
					common.Log.Debug("font %s: bad ToUnicode CMap: %v", name, err)
				}
			}
		}
	}

	if subtype == "Type0" {
		fi.Composite = true
		fi.BytesPerCode = 2
		if err := fi.resolveComposite(dict, decoder); err != nil {
			common.Log.Debug("font %s: composite resolution: %v", name, err)
		}
		return fi, nil
	}

	fi.BytesPerCode = 1
	fi.resolveSimple(dict)
	return fi, nil
}

// resolveSimple fills in the encoder, widths and default width for a
// simple (non-composite, single-byte) font.
func (fi *FontInfo) resolveSimple(dict *core.PdfObjectDictionary) {
	baseName, differences := resolveEncodingEntry(dict)
	fi.simple = textencoding.NewSimpleTextEncoder(baseName, differences)

	fi.firstChar, _ = core.GetIntValKey(dict, "FirstChar")
	if widthsArr, ok := core.GetArrayVal(dict, "Widths"); ok {
		vals, err := widthsArr.ToFloat64Array(core.Resolve)
		if err == nil {
			for i, w := range vals {
				fi.widths[uint32(fi.firstChar+i)] = w
			}
		}
	}

	fi.defaultWidth = 0
	if desc, ok := core.GetDictVal(dict, "FontDescriptor"); ok {
		if mw, err := core.GetNumberAsFloatKey(desc, "MissingWidth"); err == nil {
			fi.defaultWidth = mw
		}
	}

	if len(fi.widths) == 0 {
		if std := standard14BaseName(fi.BaseFont); std != "" {
			for code := 32; code <= 126; code++ {
				if w, ok := standard14Width(std, code); ok {
					fi.widths[uint32(code)] = w
				}
			}
		}
	}
}

// resolveEncodingEntry reads a simple font's /Encoding entry, which is
// either a bare name, or a dictionary of {BaseEncoding, Differences}.
func resolveEncodingEntry(dict *core.PdfObjectDictionary) (string, map[textencoding.CharCode]textencoding.GlyphName) {
	enc := core.Resolve(dict.Get("Encoding"))
	switch v := enc.(type) {
	case *core.PdfObjectName:
		return string(*v), nil
	case *core.PdfObjectDictionary:
		baseName, _ := core.GetNameValKey(v, "BaseEncoding")
		if baseName == "" {
			baseName = "StandardEncoding"
		}
		var diffs map[textencoding.CharCode]textencoding.GlyphName
		if diffArr, ok := core.GetArrayVal(v, "Differences"); ok {
			diffs, _ = textencoding.FromFontDifferences(diffArr)
		}
		return baseName, diffs
	}
	return "StandardEncoding", nil
}

// resolveComposite fills in the CID encoding and widths for a Type0 font.
func (fi *FontInfo) resolveComposite(dict *core.PdfObjectDictionary, decoder StreamDecoder) error {
	encObj := core.Resolve(dict.Get("Encoding"))
	if name, ok := core.GetNameVal(encObj); ok && strings.HasPrefix(name, "Identity") {
		fi.cidMap = nil // Identity-H/V fast path: CharcodeToCID(c) == c.
	} else if stream, ok := encObj.(*core.PdfObjectStream); ok && decoder != nil {
		raw, err := decoder.Decode(stream)
		if err != nil {
			return err
		}
		cm, err := cmap.ParseCIDCMap(raw)
		if err != nil {
			return err
		}
		fi.cidMap = cm
	}

	descFonts, ok := core.GetArrayVal(dict, "DescendantFonts")
	if !ok || descFonts.Len() == 0 {
		return core.ErrTypeError
	}
	descFont, ok := core.GetDict(core.Resolve(descFonts.Get(0)))
	if !ok {
		return core.ErrTypeError
	}

	fi.defaultWidth = 1000
	if dw, err := core.GetNumberAsFloatKey(descFont, "DW"); err == nil {
		fi.defaultWidth = dw
	}

	wArr, ok := core.GetArrayVal(descFont, "W")
	if !ok {
		return nil
	}
	elems := wArr.Elements()
	for i := 0; i < len(elems); {
		cidStart, ok := core.GetIntVal(core.Resolve(elems[i]))
		if !ok {
			i++
			continue
		}
		if i+1 >= len(elems) {
			break
		}
		if arr, ok := core.GetArray(core.Resolve(elems[i+1])); ok {
			// "cid [w1 w2 ...]": explicit widths starting at cid.
			ws, _ := arr.ToFloat64Array(core.Resolve)
			for j, w := range ws {
				fi.widths[uint32(cidStart+j)] = w
			}
			i += 2
			continue
		}
		if i+2 >= len(elems) {
			break
		}
		cidEnd, _ := core.GetIntVal(core.Resolve(elems[i+1]))
		w, _ := core.GetNumberAsFloat(core.Resolve(elems[i+2]))
		for cid := cidStart; cid <= cidEnd; cid++ {
			fi.widths[uint32(cid)] = w
		}
		i += 3
	}
	return nil
}

// charcodeToCID maps a raw character code to its CID, via the embedded CMap
// if one was resolved, otherwise the Identity-H/V fast path.
func (fi *FontInfo) charcodeToCID(code uint32) uint32 {
	if fi.cidMap == nil {
		return code
	}
	cid, ok := fi.cidMap.CharcodeToCID(cmap.CharCode(code))
	if !ok {
		return code
	}
	return uint32(cid)
}

// Decode splits data into character codes and resolves each to Unicode text
// and an unscaled width. ToUnicode, when present, is authoritative regardless
// of any encoding override.
func (fi *FontInfo) Decode(data []byte) []DecodedChar {
	if fi.Composite {
		return fi.decodeComposite(data)
	}
	return fi.decodeSimple(data)
}

func (fi *FontInfo) decodeSimple(data []byte) []DecodedChar {
	out := make([]DecodedChar, 0, len(data))
	for _, b := range data {
		code := uint32(b)
		out = append(out, DecodedChar{
			Code:  code,
			Text:  fi.decodeSimpleText(code),
			Width: fi.widthFor(code),
		})
	}
	return out
}

func (fi *FontInfo) decodeSimpleText(code uint32) string {
	if fi.toUnicode != nil {
		if s, ok := fi.toUnicode.CharcodeToUnicode(cmap.CharCode(code)); ok {
			return s
		}
	}
	if fi.simple != nil {
		if r, ok := fi.simple.CharcodeToRune(textencoding.CharCode(code)); ok {
			return string(r)
		}
	}
	if code < 128 {
		return string(rune(code))
	}
	return string(textencoding.MissingCodeRune)
}

// decodeComposite splits data into 2-byte big-endian codes. A trailing odd
// byte is treated as a single-byte code rather than discarded or erroring,
// matching observed-in-the-wild producer behavior.
func (fi *FontInfo) decodeComposite(data []byte) []DecodedChar {
	var out []DecodedChar
	for len(data) > 0 {
		var code uint32
		if len(data) >= 2 {
			code = uint32(data[0])<<8 | uint32(data[1])
			data = data[2:]
		} else {
			code = uint32(data[0])
			data = data[:0]
		}
		cid := fi.charcodeToCID(code)
		text := ""
		if fi.toUnicode != nil {
			text, _ = fi.toUnicode.CharcodeToUnicode(cmap.CharCode(code))
		}
		if text == "" {
			text = string(textencoding.MissingCodeRune)
			if code != 0 {
				// Best-effort: many Identity-H CID fonts use CID==Unicode
				// for the BMP when no ToUnicode stream is present at all.
				if fi.toUnicode == nil {
					text = string(rune(cid))
				}
			}
		}
		out = append(out, DecodedChar{Code: code, Text: text, Width: fi.widthForCID(cid)})
	}
	return out
}

func (fi *FontInfo) widthFor(code uint32) float64 {
	if w, ok := fi.widths[code]; ok {
		return w
	}
	return fi.defaultWidth
}

func (fi *FontInfo) widthForCID(cid uint32) float64 {
	if w, ok := fi.widths[cid]; ok {
		return w
	}
	return fi.defaultWidth
}

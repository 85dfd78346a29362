/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package cmap parses the two kinds of embedded CMap streams a composite
// font resolver needs: a ToUnicode CMap (bfchar/bfrange, mapping character
// codes straight to Unicode text) and a CIDFont's character-code-to-CID
// CMap (cidrange/cidchar, plus an Identity-H/V fast path that needs no
// stream at all).
package cmap

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"strconv"
	"unicode/utf16"

	"github.com/jackburrus/ripdoc/common"
)

// CharCode is a raw (not-yet-decoded) character code read from a content
// stream string operand.
type CharCode uint32

// Codespace bounds the byte width of character codes this CMap recognizes;
// a composite font CMap commonly declares a single 2-byte-wide range.
type Codespace struct {
	NumBytes int
	Low      CharCode
	High     CharCode
}

// CMap maps character codes to Unicode text (a ToUnicode CMap) and/or CIDs
// (a CIDFont encoding CMap). Both directions are supported on the same
// struct since the underlying file grammar is identical; font resolution
// picks whichever accessor it needs.
type CMap struct {
	codespaces []Codespace
	// bfSingle/bfRange hold ToUnicode mappings.
	bfSingle map[CharCode]string
	bfRanges []bfRange
	// cidSingle/cidRanges hold CIDFont encoding mappings.
	cidSingle map[CharCode]CharCode
	cidRanges []cidRange
	identity  bool
}

type bfRange struct {
	low, high CharCode
	dst       []string // per-offset destination when the range is an explicit array
	base      string    // base UTF-16BE-as-rune string when dst is nil (successive codes)
}

type cidRange struct {
	low, high CharCode
	cidLow    CharCode
}

// NewIdentityCMap returns the Identity-H/V CMap: 2-byte codes equal their
// CID, unchanged.
func NewIdentityCMap() *CMap {
	return &CMap{identity: true, codespaces: []Codespace{{NumBytes: 2, Low: 0, High: 0xFFFF}}}
}

// ParseToUnicodeCMap parses a ToUnicode CMap stream.
func ParseToUnicodeCMap(data []byte) (*CMap, error) {
	return parse(data)
}

// ParseCIDCMap parses a CIDFont /Encoding CMap stream (non-Identity).
func ParseCIDCMap(data []byte) (*CMap, error) {
	return parse(data)
}

// BytesToCharcodes splits data into character codes using the declared
// codespaces, defaulting to 1-byte codes if none were declared.
func (c *CMap) BytesToCharcodes(data []byte) []CharCode {
	if len(c.codespaces) == 0 {
		codes := make([]CharCode, len(data))
		for i, b := range data {
			codes[i] = CharCode(b)
		}
		return codes
	}
	numBytes := c.codespaces[0].NumBytes
	var codes []CharCode
	for len(data) > 0 {
		n := numBytes
		if n > len(data) {
			n = len(data)
		}
		var v uint32
		for _, b := range data[:n] {
			v = v<<8 | uint32(b)
		}
		codes = append(codes, CharCode(v))
		data = data[n:]
	}
	return codes
}

// CharcodeToUnicode returns the Unicode text a ToUnicode CMap maps code to.
func (c *CMap) CharcodeToUnicode(code CharCode) (string, bool) {
	if s, ok := c.bfSingle[code]; ok {
		return s, true
	}
	for _, r := range c.bfRanges {
		if code < r.low || code > r.high {
			continue
		}
		offset := int(code - r.low)
		if r.dst != nil {
			if offset < len(r.dst) {
				return r.dst[offset], true
			}
			return "", false
		}
		runes := []rune(r.base)
		if len(runes) == 0 {
			return "", false
		}
		runes[len(runes)-1] += rune(offset)
		return string(runes), true
	}
	return "", false
}

// CharcodeToCID maps a raw character code to a CID, either through the
// identity mapping or the parsed cid ranges.
func (c *CMap) CharcodeToCID(code CharCode) (CharCode, bool) {
	if c.identity {
		return code, true
	}
	if cid, ok := c.cidSingle[code]; ok {
		return cid, true
	}
	for _, r := range c.cidRanges {
		if code >= r.low && code <= r.high {
			return r.cidLow + (code - r.low), true
		}
	}
	return 0, false
}

func parse(data []byte) (*CMap, error) {
	c := &CMap{bfSingle: map[CharCode]string{}, cidSingle: map[CharCode]CharCode{}}
	r := bufio.NewReader(bytes.NewReader(data))
	var tokens []string
	for {
		tok, err := nextToken(r)
		if tok == "" && err != nil {
			break
		}
		tokens = append(tokens, tok)
	}

	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "begincodespacerange":
			i++
			for i < len(tokens) && tokens[i] != "endcodespacerange" {
				low := hexToCode(tokens[i])
				high := hexToCode(tokens[i+1])
				c.codespaces = append(c.codespaces, Codespace{
					NumBytes: hexByteWidth(tokens[i]), Low: low, High: high,
				})
				i += 2
			}
		case "beginbfchar":
			i++
			for i < len(tokens) && tokens[i] != "endbfchar" {
				code := hexToCode(tokens[i])
				dst := tokens[i+1]
				if isHex(dst) {
					c.bfSingle[code] = utf16beToString(hexBytes(dst))
				} else {
					c.bfSingle[code] = dst
				}
				i += 2
			}
		case "beginbfrange":
			i++
			for i < len(tokens) && tokens[i] != "endbfrange" {
				low := hexToCode(tokens[i])
				high := hexToCode(tokens[i+1])
				if tokens[i+2] == "[" {
					j := i + 3
					var dst []string
					for tokens[j] != "]" {
						dst = append(dst, utf16beToString(hexBytes(tokens[j])))
						j++
					}
					c.bfRanges = append(c.bfRanges, bfRange{low: low, high: high, dst: dst})
					i = j + 1
				} else {
					base := utf16beToString(hexBytes(tokens[i+2]))
					c.bfRanges = append(c.bfRanges, bfRange{low: low, high: high, base: base})
					i += 3
				}
			}
		case "begincidchar":
			i++
			for i < len(tokens) && tokens[i] != "endcidchar" {
				code := hexToCode(tokens[i])
				cid, _ := strconv.Atoi(tokens[i+1])
				c.cidSingle[code] = CharCode(cid)
				i += 2
			}
		case "begincidrange":
			i++
			for i < len(tokens) && tokens[i] != "endcidrange" {
				low := hexToCode(tokens[i])
				high := hexToCode(tokens[i+1])
				cid, _ := strconv.Atoi(tokens[i+2])
				c.cidRanges = append(c.cidRanges, cidRange{low: low, high: high, cidLow: CharCode(cid)})
				i += 3
			}
		}
	}
	if len(c.codespaces) == 0 {
		c.codespaces = []Codespace{{NumBytes: 2, Low: 0, High: 0xFFFF}}
	}
	return c, nil
}

// nextToken reads the next whitespace/delimiter-separated token from r:
// a hex string "<...>", an array bracket, or a bare name/number/keyword.
func nextToken(r *bufio.Reader) (string, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			continue
		case b == '%':
			r.ReadString('\n')
			continue
		case b == '<':
			s, _ := r.ReadString('>')
			return "<" + s, nil
		case b == '[' || b == ']':
			return string(b), nil
		case b == '/':
			var buf []byte
			for {
				pb, err := r.Peek(1)
				if err != nil || isTokenBreak(pb[0]) {
					break
				}
				bb, _ := r.ReadByte()
				buf = append(buf, bb)
			}
			return "/" + string(buf), nil
		default:
			buf := []byte{b}
			for {
				pb, err := r.Peek(1)
				if err != nil || isTokenBreak(pb[0]) {
					break
				}
				bb, _ := r.ReadByte()
				buf = append(buf, bb)
			}
			return string(buf), nil
		}
	}
}

func isTokenBreak(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '<', '>', '[', ']', '/', '%':
		return true
	}
	return false
}

func isHex(tok string) bool {
	return len(tok) >= 2 && tok[0] == '<'
}

func hexBytes(tok string) []byte {
	tok = trimAngle(tok)
	b, err := hexDecode(tok)
	if err != nil {
		common.Log.Debug("cmap: bad hex token %q", tok)
		return nil
	}
	return b
}

func hexToCode(tok string) CharCode {
	b := hexBytes(tok)
	var v uint32
	for _, x := range b {
		v = v<<8 | uint32(x)
	}
	return CharCode(v)
}

func hexByteWidth(tok string) int {
	return len(trimAngle(tok)) / 2
}

func trimAngle(tok string) string {
	if len(tok) >= 2 && tok[0] == '<' {
		tok = tok[1:]
	}
	if len(tok) >= 1 && tok[len(tok)-1] == '>' {
		tok = tok[:len(tok)-1]
	}
	return tok
}

func hexDecode(s string) ([]byte, error) {
	if len(s)%2 == 1 {
		s += "0"
	}
	out := make([]byte, len(s)/2)
	_, err := hexDecodeInto(out, s)
	return out, err
}

func hexDecodeInto(dst []byte, s string) (int, error) {
	for i := 0; i < len(dst); i++ {
		hi, err := hexDigit(s[i*2])
		if err != nil {
			return i, err
		}
		lo, err := hexDigit(s[i*2+1])
		if err != nil {
			return i, err
		}
		dst[i] = hi<<4 | lo
	}
	return len(dst), nil
}

func hexDigit(b byte) (byte, error) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', nil
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, nil
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, nil
	}
	return 0, strconv.ErrSyntax
}

// utf16beToString decodes UTF-16BE bytes (combining surrogate pairs) into a
// Go string.
func utf16beToString(b []byte) string {
	if len(b)%2 == 1 {
		b = b[:len(b)-1]
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(units))
}

/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	reIndirectObj = regexp.MustCompile(`(\d+)\s+(\d+)\s+obj\b`)
	reReference   = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+R\D`)
	reNumeric     = regexp.MustCompile(`^[\+-.0-9]+`)
	reExponential = regexp.MustCompile(`^[\+-.0-9]+[eE][\+-0-9]+`)
)

// PdfParser parses a complete in-memory PDF file (or byte buffer). Indirect
// objects are located by scanning the whole file for "N G obj" markers
// rather than by trusting the cross-reference table: malformed,
// incrementally-updated and linearized files in the wild routinely carry
// stale or missing xrefs, and a brute-force scan degrades gracefully where a
// strict xref-table walk would simply fail to open the file. Cross-reference
// streams and compressed object streams (PDF 1.5+) are out of scope for this
// recovery path; see DESIGN.md.
type PdfParser struct {
	data    []byte
	offsets map[int64]int64
	cache   map[int64]PdfObject
	trailer *PdfObjectDictionary
}

// ErrPageNotFound is returned for an out-of-range page request.
var ErrPageNotFound = errors.New("page not found")

// NewParser scans data for indirect objects and the document trailer.
func NewParser(data []byte) (*PdfParser, error) {
	p := &PdfParser{
		data:    data,
		offsets: map[int64]int64{},
		cache:   map[int64]PdfObject{},
	}
	for _, m := range reIndirectObj.FindAllSubmatchIndex(data, -1) {
		numStr := string(data[m[2]:m[3]])
		num, err := strconv.ParseInt(numStr, 10, 64)
		if err != nil {
			continue
		}
		p.offsets[num] = int64(m[0])
	}
	if len(p.offsets) == 0 {
		return nil, errors.New("no indirect objects found")
	}
	if err := p.loadTrailer(); err != nil {
		return nil, err
	}
	return p, nil
}

// loadTrailer locates the trailer dictionary, falling back to a scan for a
// /Type /Catalog object when no "trailer" keyword is present (cross-
// reference-stream files omit it).
func (p *PdfParser) loadTrailer() error {
	if idx := bytes.LastIndex(p.data, []byte("trailer")); idx >= 0 {
		r := bufio.NewReader(bytes.NewReader(p.data[idx+len("trailer"):]))
		skipSpaces(r)
		if bb, err := r.Peek(2); err == nil && bb[0] == '<' && bb[1] == '<' {
			dict, err := p.parseDict(r)
			if err == nil {
				p.trailer = dict
				return nil
			}
		}
	}

	// Fallback: find the catalog directly.
	for num := range p.offsets {
		obj, err := p.GetIndirectObject(num)
		if err != nil {
			continue
		}
		dict, ok := GetDict(obj)
		if !ok {
			continue
		}
		if t, _ := GetNameValKey(dict, "Type"); t == "Catalog" {
			trailer := MakeDict()
			trailer.Set("Root", &PdfObjectReference{ObjectNumber: num, parser: p})
			p.trailer = trailer
			return nil
		}
	}
	return errors.New("trailer not found")
}

// GetTrailer returns the document trailer dictionary.
func (p *PdfParser) GetTrailer() *PdfObjectDictionary {
	return p.trailer
}

// GetIndirectObject returns (and caches) the direct object stored under
// object number num.
func (p *PdfParser) GetIndirectObject(num int64) (PdfObject, error) {
	if obj, ok := p.cache[num]; ok {
		return obj, nil
	}
	offset, ok := p.offsets[num]
	if !ok {
		return nil, fmt.Errorf("object %d not found", num)
	}
	r := bufio.NewReader(bytes.NewReader(p.data[offset:]))
	// Consume "N G obj".
	if _, err := r.ReadString('j'); err != nil { // consumes through the 'j' of "obj"
		return nil, err
	}
	skipSpaces(r)

	obj, err := p.parseObject(r)
	if err != nil {
		return nil, err
	}

	// Is this a stream?
	if dict, ok := obj.(*PdfObjectDictionary); ok {
		skipSpaces(r)
		if bb, err := r.Peek(6); err == nil && string(bb) == "stream" {
			r.Discard(6)
			// Content begins after an EOL immediately following "stream".
			if bb, _ := r.Peek(2); len(bb) > 0 && bb[0] == '\r' {
				r.Discard(1)
			}
			if bb, _ := r.Peek(1); len(bb) > 0 && bb[0] == '\n' {
				r.Discard(1)
			}

			length, _ := p.resolveStreamLength(dict)
			raw := make([]byte, length)
			n, _ := readFull(r, raw)
			raw = raw[:n]

			stream := &PdfObjectStream{
				PdfObjectDictionary: *dict,
				ObjectNumber:        num,
				Raw:                 raw,
			}
			p.cache[num] = stream
			return stream, nil
		}
	}

	p.cache[num] = obj
	return obj, nil
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// resolveStreamLength reads dict's /Length, following an indirect reference
// if necessary.
func (p *PdfParser) resolveStreamLength(dict *PdfObjectDictionary) (int64, error) {
	lenObj := dict.Get("Length")
	if ref, ok := lenObj.(*PdfObjectReference); ok {
		obj, err := p.GetIndirectObject(ref.ObjectNumber)
		if err != nil {
			return 0, err
		}
		lenObj = obj
	}
	i, ok := lenObj.(*PdfObjectInteger)
	if !ok {
		return 0, errors.New("invalid /Length")
	}
	return int64(*i), nil
}

func skipSpaces(r *bufio.Reader) {
	for {
		bb, err := r.Peek(1)
		if err != nil {
			return
		}
		if IsWhiteSpace(bb[0]) {
			r.ReadByte()
			continue
		}
		if bb[0] == '%' {
			r.ReadBytes('\n')
			continue
		}
		return
	}
}

// parseObject parses one direct object from r, resolving "N G R" references
// against p.
func (p *PdfParser) parseObject(r *bufio.Reader) (PdfObject, error) {
	skipSpaces(r)
	bb, err := r.Peek(2)
	if err != nil {
		if len(bb) == 1 {
			bb = append(bb, ' ')
		} else {
			return nil, err
		}
	}

	switch {
	case bb[0] == '/':
		return p.parseName(r)
	case bb[0] == '(':
		return p.parseLiteralString(r)
	case bb[0] == '<' && bb[1] == '<':
		return p.parseDict(r)
	case bb[0] == '<':
		return p.parseHexString(r)
	case bb[0] == '[':
		return p.parseArray(r)
	default:
		peek, _ := r.Peek(20)
		s := string(peek)
		switch {
		case len(s) >= 4 && s[:4] == "null":
			r.Discard(4)
			return MakeNull(), nil
		case len(s) >= 5 && s[:5] == "false":
			r.Discard(5)
			return MakeBool(false), nil
		case len(s) >= 4 && s[:4] == "true":
			r.Discard(4)
			return MakeBool(true), nil
		}
		if m := reReference.FindStringSubmatch(s); len(m) > 0 {
			num, _ := strconv.ParseInt(m[1], 10, 64)
			gen, _ := strconv.ParseInt(m[2], 10, 64)
			// Consume "num gen R" (not the trailing lookahead byte).
			consume := len(m[0]) - 1
			r.Discard(consume)
			return &PdfObjectReference{ObjectNumber: num, GenerationNumber: gen, parser: p}, nil
		}
		return ParseNumber(r)
	}
}

func (p *PdfParser) parseName(r *bufio.Reader) (*PdfObjectName, error) {
	r.ReadByte() // '/'
	var buf []byte
	for {
		bb, err := r.Peek(1)
		if err != nil {
			break
		}
		b := bb[0]
		if IsWhiteSpace(b) || IsDelimiter(b) {
			break
		}
		if b == '#' {
			hx, err := r.Peek(3)
			if err != nil || len(hx) < 3 {
				break
			}
			r.Discard(3)
			code, err := hex.DecodeString(string(hx[1:3]))
			if err == nil {
				buf = append(buf, code...)
			}
			continue
		}
		r.ReadByte()
		buf = append(buf, b)
	}
	name := PdfObjectName(buf)
	return &name, nil
}

func (p *PdfParser) parseLiteralString(r *bufio.Reader) (*PdfObjectString, error) {
	r.ReadByte() // '('
	var buf []byte
	depth := 1
	for {
		bb, err := r.Peek(1)
		if err != nil {
			return MakeString(string(buf)), nil
		}
		b := bb[0]
		if b == '\\' {
			r.ReadByte()
			esc, err := r.ReadByte()
			if err != nil {
				break
			}
			if IsOctalDigit(esc) {
				digits := []byte{esc}
				for len(digits) < 3 {
					peek, err := r.Peek(1)
					if err != nil || !IsOctalDigit(peek[0]) {
						break
					}
					b, _ := r.ReadByte()
					digits = append(digits, b)
				}
				code, err := strconv.ParseUint(string(digits), 8, 32)
				if err == nil {
					buf = append(buf, byte(code))
				}
				continue
			}
			switch esc {
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case 'b':
				buf = append(buf, '\b')
			case 'f':
				buf = append(buf, '\f')
			case '(', ')', '\\':
				buf = append(buf, esc)
			case '\r', '\n':
				// Line continuation: emit nothing.
			default:
				buf = append(buf, esc)
			}
			continue
		} else if b == '(' {
			depth++
		} else if b == ')' {
			depth--
			if depth == 0 {
				r.ReadByte()
				break
			}
		}
		r.ReadByte()
		buf = append(buf, b)
	}
	return MakeString(string(buf)), nil
}

func (p *PdfParser) parseHexString(r *bufio.Reader) (*PdfObjectString, error) {
	r.ReadByte() // '<'
	var hexDigits []byte
	for {
		bb, err := r.Peek(1)
		if err != nil {
			break
		}
		if bb[0] == '>' {
			r.ReadByte()
			break
		}
		b, _ := r.ReadByte()
		if IsWhiteSpace(b) {
			continue
		}
		hexDigits = append(hexDigits, b)
	}
	if len(hexDigits)%2 == 1 {
		hexDigits = append(hexDigits, '0')
	}
	decoded, _ := hex.DecodeString(string(hexDigits))
	return MakeHexString(string(decoded)), nil
}

func (p *PdfParser) parseArray(r *bufio.Reader) (*PdfObjectArray, error) {
	r.ReadByte() // '['
	arr := MakeArray()
	for {
		skipSpaces(r)
		bb, err := r.Peek(1)
		if err != nil {
			return arr, nil
		}
		if bb[0] == ']' {
			r.ReadByte()
			break
		}
		obj, err := p.parseObject(r)
		if err != nil {
			return arr, err
		}
		arr.Append(obj)
	}
	return arr, nil
}

func (p *PdfParser) parseDict(r *bufio.Reader) (*PdfObjectDictionary, error) {
	r.ReadByte() // '<'
	r.ReadByte() // '<'
	dict := MakeDict()
	for {
		skipSpaces(r)
		bb, err := r.Peek(2)
		if err != nil {
			return dict, nil
		}
		if bb[0] == '>' && bb[1] == '>' {
			r.Discard(2)
			break
		}
		key, err := p.parseName(r)
		if err != nil {
			return dict, err
		}
		skipSpaces(r)
		val, err := p.parseObject(r)
		if err != nil {
			return dict, err
		}
		dict.Set(*key, val)
	}
	return dict, nil
}

// Decode returns the fully decoded stream content, applying its /Filter
// chain (see filters.go).
func (p *PdfParser) Decode(s *PdfObjectStream) ([]byte, error) {
	return decodeStream(&s.PdfObjectDictionary, s.Raw)
}

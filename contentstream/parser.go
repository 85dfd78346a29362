/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package contentstream implements a content-stream virtual machine: a
// tokenizer that turns a page's drawing program into (operator, operands)
// pairs, and a Processor that walks them maintaining graphics and text
// state, decoding glyphs through the font cache, and emitting positioned
// primitives in top-left page coordinates.
package contentstream

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"io"

	"github.com/jackburrus/ripdoc/common"
	"github.com/jackburrus/ripdoc/core"
)

// Operation is one operator plus the operand objects that preceded it in
// the content stream, e.g. "72 720 Td" tokenizes to
// Operation{Operator: "Td", Operands: [72, 720]}.
type Operation struct {
	Operator string
	Operands []core.PdfObject
}

// Tokenize parses data into the ordered sequence of operations a page's
// (possibly multi-stream, pre-concatenated) content program consists of.
// Unknown operators are preserved, not dropped here: the interpreter is
// responsible for skipping them, keeping the tokenizer a faithful, lossless
// pass.
func Tokenize(data []byte) ([]Operation, error) {
	t := &tokenizer{r: bufio.NewReader(bytes.NewReader(data))}
	return t.run()
}

type tokenizer struct {
	r *bufio.Reader
}

func (t *tokenizer) run() ([]Operation, error) {
	var ops []Operation
	var operands []core.PdfObject
	for {
		obj, operator, err := t.next()
		if err != nil {
			if err == io.EOF {
				return ops, nil
			}
			return ops, err
		}
		if operator != "" {
			switch operator {
			case "BI":
				if err := t.skipInlineImage(); err != nil && err != io.EOF {
					return ops, nil
				}
				operands = nil
				continue
			}
			ops = append(ops, Operation{Operator: operator, Operands: operands})
			operands = nil
			continue
		}
		operands = append(operands, obj)
	}
}

// next reads one token: either a direct object (obj != nil) or an operator
// keyword (operator != "").
func (t *tokenizer) next() (obj core.PdfObject, operator string, err error) {
	t.skipSpacesAndComments()
	bb, err := t.r.Peek(1)
	if err != nil {
		return nil, "", err
	}
	switch {
	case bb[0] == '/':
		n, err := t.parseName()
		return n, "", err
	case bb[0] == '(':
		s, err := t.parseLiteralString()
		return s, "", err
	case bb[0] == '<':
		peek, _ := t.r.Peek(2)
		if len(peek) == 2 && peek[1] == '<' {
			d, err := t.parseDict()
			return d, "", err
		}
		s, err := t.parseHexString()
		return s, "", err
	case bb[0] == '[':
		a, err := t.parseArray()
		return a, "", err
	case core.IsFloatDigit(bb[0]):
		n, err := core.ParseNumber(t.r)
		return n, "", err
	default:
		kw, err := t.parseKeyword()
		if err != nil && kw == "" {
			return nil, "", err
		}
		switch kw {
		case "true":
			return core.MakeBool(true), "", nil
		case "false":
			return core.MakeBool(false), "", nil
		case "null":
			return core.MakeNull(), "", nil
		}
		return nil, kw, nil
	}
}

func (t *tokenizer) skipSpacesAndComments() {
	for {
		bb, err := t.r.Peek(1)
		if err != nil {
			return
		}
		switch {
		case core.IsWhiteSpace(bb[0]):
			t.r.ReadByte()
		case bb[0] == '%':
			t.r.ReadString('\n')
		default:
			return
		}
	}
}

func (t *tokenizer) parseKeyword() (string, error) {
	var buf []byte
	for {
		bb, err := t.r.Peek(1)
		if err != nil {
			if len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		if core.IsWhiteSpace(bb[0]) || core.IsDelimiter(bb[0]) {
			break
		}
		b, _ := t.r.ReadByte()
		buf = append(buf, b)
	}
	return string(buf), nil
}

func (t *tokenizer) parseName() (*core.PdfObjectName, error) {
	t.r.ReadByte() // '/'
	var buf []byte
	for {
		bb, err := t.r.Peek(1)
		if err != nil {
			break
		}
		b := bb[0]
		if core.IsWhiteSpace(b) || core.IsDelimiter(b) {
			break
		}
		if b == '#' {
			hx, err := t.r.Peek(3)
			if err == nil && len(hx) == 3 {
				t.r.Discard(3)
				if code, err := hex.DecodeString(string(hx[1:3])); err == nil {
					buf = append(buf, code...)
					continue
				}
			}
		}
		t.r.ReadByte()
		buf = append(buf, b)
	}
	name := core.PdfObjectName(buf)
	return &name, nil
}

func (t *tokenizer) parseLiteralString() (*core.PdfObjectString, error) {
	t.r.ReadByte() // '('
	var buf []byte
	depth := 1
	for {
		bb, err := t.r.Peek(1)
		if err != nil {
			return core.MakeString(string(buf)), nil
		}
		b := bb[0]
		if b == '\\' {
			t.r.ReadByte()
			esc, err := t.r.ReadByte()
			if err != nil {
				break
			}
			if core.IsOctalDigit(esc) {
				digits := []byte{esc}
				for len(digits) < 3 {
					peek, err := t.r.Peek(1)
					if err != nil || !core.IsOctalDigit(peek[0]) {
						break
					}
					bb, _ := t.r.ReadByte()
					digits = append(digits, bb)
				}
				var v int
				for _, d := range digits {
					v = v*8 + int(d-'0')
				}
				buf = append(buf, byte(v))
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
				// Line continuation.
			default:
				buf = append(buf, esc)
			}
			continue
		} else if b == '(' {
			depth++
		} else if b == ')' {
			depth--
			if depth == 0 {
				t.r.ReadByte()
				break
			}
		}
		t.r.ReadByte()
		buf = append(buf, b)
	}
	return core.MakeString(string(buf)), nil
}

func (t *tokenizer) parseHexString() (*core.PdfObjectString, error) {
	t.r.ReadByte() // '<'
	var hexDigits []byte
	for {
		bb, err := t.r.Peek(1)
		if err != nil {
			break
		}
		if bb[0] == '>' {
			t.r.ReadByte()
			break
		}
		b, _ := t.r.ReadByte()
		if core.IsWhiteSpace(b) {
			continue
		}
		hexDigits = append(hexDigits, b)
	}
	if len(hexDigits)%2 == 1 {
		hexDigits = append(hexDigits, '0')
	}
	decoded, _ := hex.DecodeString(string(hexDigits))
	return core.MakeHexString(string(decoded)), nil
}

func (t *tokenizer) parseArray() (*core.PdfObjectArray, error) {
	t.r.ReadByte() // '['
	arr := core.MakeArray()
	for {
		t.skipSpacesAndComments()
		bb, err := t.r.Peek(1)
		if err != nil {
			return arr, nil
		}
		if bb[0] == ']' {
			t.r.ReadByte()
			break
		}
		obj, operator, err := t.next()
		if err != nil {
			return arr, err
		}
		if operator != "" {
			// Malformed: an operator keyword inside an array. Skip it.
			continue
		}
		arr.Append(obj)
	}
	return arr, nil
}

func (t *tokenizer) parseDict() (*core.PdfObjectDictionary, error) {
	t.r.ReadByte() // '<'
	t.r.ReadByte() // '<'
	dict := core.MakeDict()
	for {
		t.skipSpacesAndComments()
		bb, err := t.r.Peek(2)
		if err != nil {
			return dict, nil
		}
		if bb[0] == '>' && bb[1] == '>' {
			t.r.Discard(2)
			break
		}
		key, err := t.parseName()
		if err != nil {
			return dict, err
		}
		t.skipSpacesAndComments()
		val, _, err := t.next()
		if err != nil {
			return dict, err
		}
		dict.Set(*key, val)
	}
	return dict, nil
}

// skipInlineImage discards an inline image's parameter dictionary and
// binary data (BI ... ID <data> EI). Inline images are the content-stream-
// literal equivalent of an XObject image and are silently ignored, same as
// any other non-Form XObject.
func (t *tokenizer) skipInlineImage() error {
	for {
		_, operator, err := t.next()
		if err != nil {
			return err
		}
		if operator == "ID" {
			break
		}
	}
	// Exactly one whitespace byte separates "ID" from the raw data.
	if bb, err := t.r.Peek(1); err == nil && core.IsWhiteSpace(bb[0]) {
		t.r.ReadByte()
	}
	var window [2]byte
	for {
		b, err := t.r.ReadByte()
		if err != nil {
			common.Log.Debug("contentstream: inline image ran off the end of the stream")
			return err
		}
		window[0], window[1] = window[1], b
		if window[0] == 'E' && window[1] == 'I' {
			if bb, err := t.r.Peek(1); err != nil || core.IsWhiteSpace(bb[0]) {
				return nil
			}
		}
	}
}

/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

import (
	"bufio"
	"errors"
	"strconv"
)

// ErrTypeError is returned when an object does not have the expected type.
var ErrTypeError = errors.New("type check error")

// ErrRangeError is returned when an index or count is out of range.
var ErrRangeError = errors.New("range check error")

// ErrNotSupported is returned for recognized-but-unsupported constructs
// (e.g. a font subtype this module does not resolve).
var ErrNotSupported = errors.New("feature not supported")

// IsWhiteSpace reports whether b is PDF whitespace (Table 1, ISO 32000-1).
func IsWhiteSpace(b byte) bool {
	switch b {
	case 0x00, 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	}
	return false
}

// IsDelimiter reports whether b is a PDF delimiter character.
func IsDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// IsOctalDigit reports whether b is an octal digit.
func IsOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}

// IsFloatDigit reports whether b can begin or continue a PDF number.
func IsFloatDigit(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.' || b == '+' || b == '-'
}

// ParseNumber reads a PDF integer or real number from r, returning a
// PdfObjectInteger when there is no fractional part and a PdfObjectFloat
// otherwise. PDF permits (and producers emit) malformed exponential and
// multi-sign numbers; those are tolerated by reading as far as plausible
// digits extend and falling back to 0 on a parse failure, rather than
// erroring out the whole page.
func ParseNumber(r *bufio.Reader) (PdfObject, error) {
	var buf []byte
	isFloat := false
	for {
		bb, err := r.Peek(1)
		if err != nil {
			break
		}
		b := bb[0]
		if b >= '0' && b <= '9' {
			buf = append(buf, b)
		} else if b == '.' {
			isFloat = true
			buf = append(buf, b)
		} else if (b == '+' || b == '-') && len(buf) == 0 {
			buf = append(buf, b)
		} else if (b == 'e' || b == 'E') && len(buf) > 0 {
			isFloat = true
			buf = append(buf, b)
		} else {
			break
		}
		r.ReadByte()
	}
	if len(buf) == 0 {
		return MakeInteger(0), errors.New("empty number")
	}
	if isFloat {
		f, err := strconv.ParseFloat(string(buf), 64)
		if err != nil {
			return MakeFloat(0), nil
		}
		return MakeFloat(f), nil
	}
	i, err := strconv.ParseInt(string(buf), 10, 64)
	if err != nil {
		return MakeInteger(0), nil
	}
	return MakeInteger(i), nil
}

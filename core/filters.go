/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

import (
	"bytes"
	"compress/lzw"
	"compress/zlib"
	"errors"
	"io"
)

// decodeStream applies dict's /Filter chain (a single name or an array of
// names, with matching /DecodeParms) to raw, returning the decoded bytes.
// Image filters (DCTDecode, JPXDecode, CCITTFaxDecode) are left encoded:
// this module extracts text and geometry, never raster image data, so their
// payloads are passed through unchanged for callers that only need to know a
// stream existed.
func decodeStream(dict *PdfObjectDictionary, raw []byte) ([]byte, error) {
	filters, parms := filterChain(dict)
	data := raw
	for i, name := range filters {
		var parm *PdfObjectDictionary
		if i < len(parms) {
			parm = parms[i]
		}
		decoded, err := applyFilter(name, data, parm)
		if err != nil {
			return nil, err
		}
		data = decoded
	}
	return data, nil
}

func filterChain(dict *PdfObjectDictionary) ([]string, []*PdfObjectDictionary) {
	var names []string
	var parms []*PdfObjectDictionary

	filterObj := Resolve(dict.Get("Filter"))
	parmsObj := Resolve(dict.Get("DecodeParms"))
	if parmsObj == nil {
		parmsObj = Resolve(dict.Get("DP"))
	}

	switch f := filterObj.(type) {
	case *PdfObjectName:
		names = append(names, string(*f))
		if p, ok := GetDict(parmsObj); ok {
			parms = append(parms, p)
		} else {
			parms = append(parms, nil)
		}
	case *PdfObjectArray:
		parmArr, _ := GetArray(parmsObj)
		for i, e := range f.Elements() {
			n, ok := GetNameVal(Resolve(e))
			if !ok {
				continue
			}
			names = append(names, n)
			if parmArr != nil && i < parmArr.Len() {
				p, _ := GetDict(Resolve(parmArr.Get(i)))
				parms = append(parms, p)
			} else {
				parms = append(parms, nil)
			}
		}
	}
	return names, parms
}

func applyFilter(name string, data []byte, parm *PdfObjectDictionary) ([]byte, error) {
	switch name {
	case "FlateDecode", "Fl":
		out, err := flateDecode(data)
		if err != nil {
			return nil, err
		}
		return applyPredictor(out, parm)
	case "LZWDecode", "LZW":
		out, err := lzwDecode(data)
		if err != nil {
			return nil, err
		}
		return applyPredictor(out, parm)
	case "ASCIIHexDecode", "AHx":
		return asciiHexDecode(data)
	case "ASCII85Decode", "A85":
		return ascii85Decode(data)
	case "RunLengthDecode", "RL":
		return runLengthDecode(data)
	default:
		// DCTDecode, JPXDecode, CCITTFaxDecode and anything unrecognized:
		// pass through undecoded.
		return data, nil
	}
}

func flateDecode(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func lzwDecode(data []byte) ([]byte, error) {
	r := lzw.NewReader(bytes.NewReader(data), lzw.MSB, 8)
	defer r.Close()
	return io.ReadAll(r)
}

func asciiHexDecode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var hi byte
	haveHi := false
	for _, b := range data {
		if b == '>' {
			break
		}
		var v byte
		switch {
		case b >= '0' && b <= '9':
			v = b - '0'
		case b >= 'a' && b <= 'f':
			v = b - 'a' + 10
		case b >= 'A' && b <= 'F':
			v = b - 'A' + 10
		default:
			continue
		}
		if !haveHi {
			hi = v
			haveHi = true
		} else {
			buf.WriteByte(hi<<4 | v)
			haveHi = false
		}
	}
	if haveHi {
		buf.WriteByte(hi << 4)
	}
	return buf.Bytes(), nil
}

func ascii85Decode(data []byte) ([]byte, error) {
	data = bytes.TrimSpace(data)
	data = bytes.TrimPrefix(data, []byte("<~"))
	data = bytes.TrimSuffix(data, []byte("~>"))

	var buf bytes.Buffer
	var group [5]byte
	n := 0
	flush := func(count int) {
		for i := n; i < 5; i++ {
			group[i] = 'u'
		}
		var val uint32
		for _, c := range group {
			val = val*85 + uint32(c-'!')
		}
		out := []byte{byte(val >> 24), byte(val >> 16), byte(val >> 8), byte(val)}
		buf.Write(out[:count])
	}
	for _, b := range data {
		if b == 'z' && n == 0 {
			buf.Write([]byte{0, 0, 0, 0})
			continue
		}
		if b < '!' || b > 'u' {
			continue
		}
		group[n] = b
		n++
		if n == 5 {
			flush(4)
			n = 0
		}
	}
	if n > 0 {
		flush(n - 1)
	}
	return buf.Bytes(), nil
}

func runLengthDecode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	i := 0
	for i < len(data) {
		length := data[i]
		i++
		switch {
		case length == 128:
			return buf.Bytes(), nil
		case length < 128:
			n := int(length) + 1
			if i+n > len(data) {
				return nil, errors.New("truncated RunLengthDecode stream")
			}
			buf.Write(data[i : i+n])
			i += n
		default:
			if i >= len(data) {
				return nil, errors.New("truncated RunLengthDecode stream")
			}
			count := 257 - int(length)
			for j := 0; j < count; j++ {
				buf.WriteByte(data[i])
			}
			i++
		}
	}
	return buf.Bytes(), nil
}

// applyPredictor reverses the PNG/TIFF predictor used by many FlateDecode
// and LZWDecode image and font streams, per DecodeParms /Predictor.
func applyPredictor(data []byte, parm *PdfObjectDictionary) ([]byte, error) {
	if parm == nil {
		return data, nil
	}
	predictor, ok := GetIntValKey(parm, "Predictor")
	if !ok || predictor <= 1 {
		return data, nil
	}
	columns := 1
	if c, ok := GetIntValKey(parm, "Columns"); ok {
		columns = c
	}
	colors := 1
	if c, ok := GetIntValKey(parm, "Colors"); ok {
		colors = c
	}
	bpc := 8
	if b, ok := GetIntValKey(parm, "BitsPerComponent"); ok {
		bpc = b
	}
	bytesPerPixel := (colors*bpc + 7) / 8
	rowLen := (columns*colors*bpc + 7) / 8

	if predictor == 2 {
		return tiffPredictor(data, rowLen, bytesPerPixel), nil
	}

	// PNG predictors (predictor >= 10): each row is prefixed by a filter-type
	// byte.
	var out bytes.Buffer
	prev := make([]byte, rowLen)
	stride := rowLen + 1
	for i := 0; i+stride <= len(data); i += stride {
		filterType := data[i]
		row := append([]byte{}, data[i+1:i+stride]...)
		for j := range row {
			var a, b byte
			if j >= bytesPerPixel {
				a = row[j-bytesPerPixel]
			}
			b = prev[j]
			switch filterType {
			case 1:
				row[j] += a
			case 2:
				row[j] += b
			case 3:
				row[j] += byte((int(a) + int(b)) / 2)
			case 4:
				var c byte
				if j >= bytesPerPixel {
					c = prev[j-bytesPerPixel]
				}
				row[j] += paeth(a, b, c)
			}
		}
		out.Write(row)
		prev = row
	}
	return out.Bytes(), nil
}

func tiffPredictor(data []byte, rowLen, bytesPerPixel int) []byte {
	out := append([]byte{}, data...)
	for start := 0; start+rowLen <= len(out); start += rowLen {
		for j := bytesPerPixel; j < rowLen; j++ {
			out[start+j] += out[start+j-bytesPerPixel]
		}
	}
	return out
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package core implements the low-level PDF object model: the primitive
// object variants (name, number, string, array, dictionary, stream,
// indirect reference), a tokenizer/parser that locates and decodes indirect
// objects in a PDF file, and stream-filter decompression. This is the
// "object/stream parser" that the rest of the module treats as a
// self-contained foundation: page-tree traversal, font dictionaries and
// content streams are all read through it.
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PdfObject is implemented by every PDF primitive value.
type PdfObject interface {
	String() string
}

// PdfObjectBool is a PDF boolean.
type PdfObjectBool bool

// PdfObjectInteger is a PDF integer.
type PdfObjectInteger int64

// PdfObjectFloat is a PDF real number.
type PdfObjectFloat float64

// PdfObjectString is a PDF literal or hex string. It holds the raw decoded
// bytes (after escape/hex processing), returned by Bytes; the PDF spec does
// not mandate a text encoding for strings outside specific contexts (e.g.
// UTF-16BE for text strings), so callers interpret those bytes themselves.
type PdfObjectString struct {
	val    string
	isHex  bool
}

// PdfObjectName is a PDF name, e.g. /Font (the slash is not part of the
// value).
type PdfObjectName string

// PdfObjectArray is a PDF array.
type PdfObjectArray struct {
	elements []PdfObject
}

// PdfObjectDictionary is a PDF dictionary. Keys preserve insertion order for
// readable String() output; lookups are case-sensitive, as PDF names are.
type PdfObjectDictionary struct {
	dict  map[PdfObjectName]PdfObject
	keys  []PdfObjectName
}

// PdfObjectNull is the PDF null object.
type PdfObjectNull struct{}

// PdfObjectReference is an indirect reference "obj gen R".
type PdfObjectReference struct {
	ObjectNumber     int64
	GenerationNumber int64
	parser           *PdfParser
}

// PdfIndirectObject wraps a direct object with its object/generation number,
// as produced while parsing "N G obj ... endobj".
type PdfIndirectObject struct {
	ObjectNumber     int64
	GenerationNumber int64
	PdfObject
}

// PdfObjectStream is an indirect stream object: a dictionary plus raw
// (still-encoded) byte content.
type PdfObjectStream struct {
	PdfObjectDictionary
	ObjectNumber     int64
	GenerationNumber int64
	Raw              []byte
}

func MakeBool(v bool) *PdfObjectBool       { b := PdfObjectBool(v); return &b }
func MakeInteger(v int64) *PdfObjectInteger { i := PdfObjectInteger(v); return &i }
func MakeFloat(v float64) *PdfObjectFloat   { f := PdfObjectFloat(v); return &f }
func MakeName(s string) *PdfObjectName     { n := PdfObjectName(s); return &n }
func MakeNull() *PdfObjectNull             { return &PdfObjectNull{} }

// MakeString returns a literal PdfObjectString with decoded value s.
func MakeString(s string) *PdfObjectString {
	return &PdfObjectString{val: s}
}

// MakeHexString returns a PdfObjectString sourced from a hex string.
func MakeHexString(s string) *PdfObjectString {
	return &PdfObjectString{val: s, isHex: true}
}

// MakeArray returns an array containing objects.
func MakeArray(objects ...PdfObject) *PdfObjectArray {
	return &PdfObjectArray{elements: append([]PdfObject{}, objects...)}
}

// MakeArrayFromFloats returns an array of PdfObjectFloat from vals.
func MakeArrayFromFloats(vals []float64) *PdfObjectArray {
	arr := MakeArray()
	for _, v := range vals {
		arr.Append(MakeFloat(v))
	}
	return arr
}

// MakeDict returns an empty dictionary.
func MakeDict() *PdfObjectDictionary {
	return &PdfObjectDictionary{dict: map[PdfObjectName]PdfObject{}}
}

func (b *PdfObjectBool) String() string    { return strconv.FormatBool(bool(*b)) }
func (i *PdfObjectInteger) String() string { return strconv.FormatInt(int64(*i), 10) }
func (f *PdfObjectFloat) String() string   { return strconv.FormatFloat(float64(*f), 'f', -1, 64) }
func (n *PdfObjectNull) String() string    { return "null" }

// Bool returns the underlying value.
func (b *PdfObjectBool) Bool() bool { return bool(*b) }

// Int returns the underlying value.
func (i *PdfObjectInteger) Int() int64 { return int64(*i) }

// Float returns the underlying value as a float64.
func (f *PdfObjectFloat) Float() float64 { return float64(*f) }

func (s *PdfObjectString) String() string { return s.val }

// Bytes returns the decoded string content as bytes.
func (s *PdfObjectString) Bytes() []byte { return []byte(s.val) }

func (n *PdfObjectName) String() string { return string(*n) }

func (ref *PdfObjectReference) String() string {
	return fmt.Sprintf("%d %d R", ref.ObjectNumber, ref.GenerationNumber)
}

// Resolve follows the reference through its owning parser.
func (ref *PdfObjectReference) Resolve() PdfObject {
	if ref.parser == nil {
		return MakeNull()
	}
	obj, err := ref.parser.GetIndirectObject(ref.ObjectNumber)
	if err != nil {
		return MakeNull()
	}
	return obj
}

func (ind *PdfIndirectObject) String() string {
	return fmt.Sprintf("%d %d obj %s", ind.ObjectNumber, ind.GenerationNumber, ind.PdfObject)
}

func (s *PdfObjectStream) String() string {
	return fmt.Sprintf("%d %d stream (%d bytes)", s.ObjectNumber, s.GenerationNumber, len(s.Raw))
}

// Elements returns the array's elements.
func (arr *PdfObjectArray) Elements() []PdfObject {
	if arr == nil {
		return nil
	}
	return arr.elements
}

// Len returns the number of elements.
func (arr *PdfObjectArray) Len() int {
	if arr == nil {
		return 0
	}
	return len(arr.elements)
}

// Get returns the i'th element, or nil if out of range.
func (arr *PdfObjectArray) Get(i int) PdfObject {
	if arr == nil || i < 0 || i >= len(arr.elements) {
		return nil
	}
	return arr.elements[i]
}

// Append adds objects to the end of the array.
func (arr *PdfObjectArray) Append(objects ...PdfObject) {
	arr.elements = append(arr.elements, objects...)
}

func (arr *PdfObjectArray) String() string {
	parts := make([]string, len(arr.elements))
	for i, e := range arr.elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ToFloat64Array converts every element to float64, resolving references
// through resolver if non-nil.
func (arr *PdfObjectArray) ToFloat64Array(resolver func(PdfObject) PdfObject) ([]float64, error) {
	out := make([]float64, 0, arr.Len())
	for _, e := range arr.Elements() {
		if resolver != nil {
			e = resolver(e)
		}
		f, err := GetNumberAsFloat(e)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Set stores val under key, preserving insertion order for new keys.
func (d *PdfObjectDictionary) Set(key PdfObjectName, val PdfObject) {
	if d.dict == nil {
		d.dict = map[PdfObjectName]PdfObject{}
	}
	if _, exists := d.dict[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.dict[key] = val
}

// Get returns the value stored under key, or nil.
func (d *PdfObjectDictionary) Get(key PdfObjectName) PdfObject {
	if d == nil || d.dict == nil {
		return nil
	}
	return d.dict[key]
}

// Keys returns the dictionary's keys in insertion order.
func (d *PdfObjectDictionary) Keys() []PdfObjectName {
	if d == nil {
		return nil
	}
	return d.keys
}

func (d *PdfObjectDictionary) String() string {
	var b strings.Builder
	b.WriteString("<<")
	for _, k := range d.keys {
		fmt.Fprintf(&b, " /%s %s", k, d.dict[k])
	}
	b.WriteString(" >>")
	return b.String()
}

// GetNumberAsFloat coerces obj (an Integer or Float) to a float64.
func GetNumberAsFloat(obj PdfObject) (float64, error) {
	switch t := obj.(type) {
	case *PdfObjectFloat:
		return float64(*t), nil
	case *PdfObjectInteger:
		return float64(*t), nil
	}
	return 0, errors.New("not a number")
}

// GetNumbersAsFloat coerces every element of objects to a float64.
func GetNumbersAsFloat(objects []PdfObject) ([]float64, error) {
	out := make([]float64, len(objects))
	for i, o := range objects {
		f, err := GetNumberAsFloat(o)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// GetIntVal returns the int value of obj if it is a PdfObjectInteger.
func GetIntVal(obj PdfObject) (int, bool) {
	i, ok := obj.(*PdfObjectInteger)
	if !ok {
		return 0, false
	}
	return int(*i), true
}

// GetNameVal returns the name value of obj if it is a PdfObjectName.
func GetNameVal(obj PdfObject) (string, bool) {
	n, ok := obj.(*PdfObjectName)
	if !ok {
		return "", false
	}
	return string(*n), true
}

// GetName returns obj as a name, or nil; references are not resolved.
func GetName(obj PdfObject) (*PdfObjectName, bool) {
	n, ok := obj.(*PdfObjectName)
	return n, ok
}

// GetStringBytes returns the decoded bytes of a PdfObjectString.
func GetStringBytes(obj PdfObject) ([]byte, bool) {
	s, ok := obj.(*PdfObjectString)
	if !ok {
		return nil, false
	}
	return s.Bytes(), true
}

// GetArray returns obj as *PdfObjectArray, if it is one.
func GetArray(obj PdfObject) (*PdfObjectArray, bool) {
	a, ok := obj.(*PdfObjectArray)
	return a, ok
}

// GetDict returns obj as *PdfObjectDictionary, if it is one (including the
// dictionary embedded in a stream object).
func GetDict(obj PdfObject) (*PdfObjectDictionary, bool) {
	switch t := obj.(type) {
	case *PdfObjectDictionary:
		return t, true
	case *PdfObjectStream:
		return &t.PdfObjectDictionary, true
	}
	return nil, false
}

// IsNull reports whether obj is nil or the PDF null object.
func IsNull(obj PdfObject) bool {
	if obj == nil {
		return true
	}
	_, ok := obj.(*PdfObjectNull)
	return ok
}

// Resolve follows obj through one indirect reference if it is one, otherwise
// returns obj unchanged. Dictionary/array values read from a parsed document
// are frequently references and must be resolved before type-asserting.
func Resolve(obj PdfObject) PdfObject {
	if ref, ok := obj.(*PdfObjectReference); ok {
		return ref.Resolve()
	}
	return obj
}

// GetDictVal resolves and returns the dictionary stored under key.
func GetDictVal(d *PdfObjectDictionary, key PdfObjectName) (*PdfObjectDictionary, bool) {
	return GetDict(Resolve(d.Get(key)))
}

// GetArrayVal resolves and returns the array stored under key.
func GetArrayVal(d *PdfObjectDictionary, key PdfObjectName) (*PdfObjectArray, bool) {
	return GetArray(Resolve(d.Get(key)))
}

// GetNameValKey resolves and returns the name stored under key.
func GetNameValKey(d *PdfObjectDictionary, key PdfObjectName) (string, bool) {
	return GetNameVal(Resolve(d.Get(key)))
}

// GetNumberAsFloatKey resolves and coerces the number stored under key.
func GetNumberAsFloatKey(d *PdfObjectDictionary, key PdfObjectName) (float64, error) {
	return GetNumberAsFloat(Resolve(d.Get(key)))
}

// GetIntValKey resolves and returns the integer stored under key.
func GetIntValKey(d *PdfObjectDictionary, key PdfObjectName) (int, bool) {
	return GetIntVal(Resolve(d.Get(key)))
}

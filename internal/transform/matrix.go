/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package transform implements the 2D affine transforms used by the content
// stream interpreter: the current transformation matrix, the text and text
// line matrices, and the text rendering matrix they compose into.
package transform

import (
	"fmt"
	"math"

	"github.com/jackburrus/ripdoc/common"
)

// Matrix is a 2D affine transform in homogenous coordinates. Only 6 of the 9
// values are independent; the third column is always [0 0 1].
type Matrix [9]float64

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return NewMatrix(1, 0, 0, 1, 0, 0)
}

// TranslationMatrix returns a matrix that translates by tx, ty.
func TranslationMatrix(tx, ty float64) Matrix {
	return NewMatrix(1, 0, 0, 1, tx, ty)
}

// NewMatrix returns the affine transform
//
//	a  b  0
//	c  d  0
//	tx ty 1
func NewMatrix(a, b, c, d, tx, ty float64) Matrix {
	m := Matrix{
		a, b, 0,
		c, d, 0,
		tx, ty, 1,
	}
	m.clampRange()
	return m
}

// String returns a description of m.
func (m Matrix) String() string {
	a, b, c, d, tx, ty := m[0], m[1], m[3], m[4], m[6], m[7]
	return fmt.Sprintf("[%7.4f,%7.4f,%7.4f,%7.4f:%7.4f,%7.4f]", a, b, c, d, tx, ty)
}

// Set overwrites m with the affine transform a,b,c,d,tx,ty.
func (m *Matrix) Set(a, b, c, d, tx, ty float64) {
	m[0], m[1] = a, b
	m[3], m[4] = c, d
	m[6], m[7] = tx, ty
	m.clampRange()
}

// Concat sets m to b × m, i.e. the operator matrix b is pre-concatenated onto
// the existing transform. This is the native PDF content-stream convention:
// `cm` multiplies its operand on the left of the CTM, and swapping the
// operand order silently produces wrong glyph positions under rotation.
func (m *Matrix) Concat(b Matrix) {
	*m = Matrix{
		b[0]*m[0] + b[1]*m[3], b[0]*m[1] + b[1]*m[4], 0,
		b[3]*m[0] + b[4]*m[3], b[3]*m[1] + b[4]*m[4], 0,
		b[6]*m[0] + b[7]*m[3] + m[6], b[6]*m[1] + b[7]*m[4] + m[7], 1,
	}
	m.clampRange()
}

// Mult returns b × m without mutating m.
func (m Matrix) Mult(b Matrix) Matrix {
	m.Concat(b)
	return m
}

// Translate returns m with an additional translation of tx, ty.
func (m Matrix) Translate(tx, ty float64) Matrix {
	return NewMatrix(m[0], m[1], m[3], m[4], m[6]+tx, m[7]+ty)
}

// Translation returns the translation component of m.
func (m Matrix) Translation() (float64, float64) {
	return m[6], m[7]
}

// Transform returns x, y transformed by m.
func (m Matrix) Transform(x, y float64) (float64, float64) {
	xp := x*m[0] + y*m[3] + m[6]
	yp := x*m[1] + y*m[4] + m[7]
	return xp, yp
}

// ScalingFactorX returns the X scaling of m.
func (m Matrix) ScalingFactorX() float64 {
	return math.Hypot(m[0], m[1])
}

// ScalingFactorY returns the Y scaling of m. This is the "effective font
// size" computation of the text rendering matrix: the Euclidean length of
// the y-basis vector after all transforms have been applied.
func (m Matrix) ScalingFactorY() float64 {
	return math.Hypot(m[3], m[4])
}

// Upright reports whether m has no shear/rotation component, within tol.
func (m Matrix) Upright(tol float64) bool {
	return math.Abs(m[1]) < tol && math.Abs(m[3]) < tol
}

// Inverse returns the inverse of m, or ok=false if m is singular.
func (m Matrix) Inverse() (inv Matrix, ok bool) {
	a, b := m[0], m[1]
	c, d := m[3], m[4]
	tx, ty := m[6], m[7]
	det := a*d - b*c
	if math.Abs(det) < minDeterminant {
		return Matrix{}, false
	}
	aI, bI := d/det, -b/det
	cI, dI := -c/det, a/det
	txI := -(aI*tx + cI*ty)
	tyI := -(bI*tx + dI*ty)
	return NewMatrix(aI, bI, cI, dI, txI, tyI), true
}

// clampRange guards against unrealistic values from corrupt content streams.
func (m *Matrix) clampRange() {
	for i, x := range m {
		if x > maxAbsNumber {
			common.Log.Trace("CLAMP: %g -> %g", x, maxAbsNumber)
			m[i] = maxAbsNumber
		} else if x < -maxAbsNumber {
			common.Log.Trace("CLAMP: %g -> %g", x, -maxAbsNumber)
			m[i] = -maxAbsNumber
		}
	}
}

const (
	maxAbsNumber   = 1e9
	minDeterminant = 1.0e-6
)

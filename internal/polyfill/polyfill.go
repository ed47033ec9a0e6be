// Package polyfill selects the helper routine a WGSL backend emits for math
// builtins the language lacks.
//
// WGSL has no inverse() and no outerProduct(). When the intermediate
// representation asks for one of them on a floating-point matrix, FindOverload
// names the exact helper for that shape. Every legal shape maps to its own
// Function and no two shapes share one.
//
// FindOverload never fails. A false result means "no polyfill": the math
// function is native, or the operand has a shape or element kind no helper
// covers. Deciding which of those it was, and whether to report an error, is
// left to the caller.
package polyfill

import (
	"fmt"

	"github.com/HugoDaniel/wgsl-polyfill/internal/builtins"
	"github.com/HugoDaniel/wgsl-polyfill/internal/types"
)

// Function identifies one helper routine.
type Function uint8

const (
	noFunction Function = iota

	InverseMat2x2
	InverseMat3x3
	InverseMat4x4

	OuterProduct2x2
	OuterProduct3x3
	OuterProduct4x4

	OuterProduct3x2
	OuterProduct2x3

	OuterProduct4x2
	OuterProduct2x4

	OuterProduct4x3
	OuterProduct3x4

	numFunctions
)

const (
	firstInverse = InverseMat2x2
	firstOuter   = OuterProduct2x2

	numInverses      = int(firstOuter - firstInverse)
	numOuterProducts = int(numFunctions - firstOuter)
)

// The enumeration must have exactly one inverse per size and one outer
// product per (columns, rows) pair. Either array length goes negative and
// stops the build if the counts drift apart.
var (
	_ [numInverses - types.NumVectorSizes]struct{}
	_ [types.NumVectorSizes - numInverses]struct{}
	_ [numOuterProducts - types.NumVectorSizes*types.NumVectorSizes]struct{}
	_ [types.NumVectorSizes*types.NumVectorSizes - numOuterProducts]struct{}
)

// Positions of each size in the lookup tables.
const (
	bi   = int(types.Bi - types.Bi)
	tri  = int(types.Tri - types.Bi)
	quad = int(types.Quad - types.Bi)
)

// inverseTable is indexed by VectorSize.Index().
var inverseTable = [types.NumVectorSizes]Function{
	bi:   InverseMat2x2,
	tri:  InverseMat3x3,
	quad: InverseMat4x4,
}

// outerTable is indexed by [columns.Index()][rows.Index()].
var outerTable = [types.NumVectorSizes][types.NumVectorSizes]Function{
	bi: {
		bi:   OuterProduct2x2,
		tri:  OuterProduct2x3,
		quad: OuterProduct2x4,
	},
	tri: {
		bi:   OuterProduct3x2,
		tri:  OuterProduct3x3,
		quad: OuterProduct3x4,
	},
	quad: {
		bi:   OuterProduct4x2,
		tri:  OuterProduct4x3,
		quad: OuterProduct4x4,
	},
}

// shape is the matrix a helper operates on.
type shape struct {
	columns types.VectorSize
	rows    types.VectorSize
}

// shapes is the inverse of the lookup tables, indexed by Function.
var shapes [numFunctions]shape

func init() {
	for _, size := range types.VectorSizes {
		shapes[InverseForSize(size)] = shape{columns: size, rows: size}
	}
	for _, columns := range types.VectorSizes {
		for _, rows := range types.VectorSizes {
			shapes[OuterProductForSizes(columns, rows)] = shape{columns: columns, rows: rows}
		}
	}
}

// InverseForSize returns the inverse helper for a size x size matrix.
// It panics if size is not Bi, Tri or Quad.
func InverseForSize(size types.VectorSize) Function {
	return inverseTable[size.Index()]
}

// OuterProductForSizes returns the outer product helper producing a
// columns x rows matrix. Order matters: (Tri, Bi) and (Bi, Tri) are
// different helpers. It panics if either size is not Bi, Tri or Quad.
func OuterProductForSizes(columns, rows types.VectorSize) Function {
	return outerTable[columns.Index()][rows.Index()]
}

// Functions returns all helpers in declaration order.
func Functions() []Function {
	fns := make([]Function, 0, numFunctions-1)
	for fn := firstInverse; fn < numFunctions; fn++ {
		fns = append(fns, fn)
	}
	return fns
}

// Valid reports whether fn names a helper.
func (fn Function) Valid() bool {
	return fn > noFunction && fn < numFunctions
}

// IsInverse returns true for the matrix inverse helpers.
func (fn Function) IsInverse() bool {
	return fn >= firstInverse && fn < firstOuter
}

// IsOuterProduct returns true for the outer product helpers.
func (fn Function) IsOuterProduct() bool {
	return fn >= firstOuter && fn < numFunctions
}

// MathFunction returns the builtin fn replaces.
func (fn Function) MathFunction() builtins.MathFunction {
	if fn.IsInverse() {
		return builtins.MathInverse
	}
	return builtins.MathOuter
}

// Shape returns the column and row count of the matrix fn operates on.
// Both are zero for an invalid Function.
func (fn Function) Shape() (columns, rows types.VectorSize) {
	if !fn.Valid() {
		return 0, 0
	}
	s := shapes[fn]
	return s.columns, s.rows
}

func (fn Function) String() string {
	if !fn.Valid() {
		return fmt.Sprintf("Function(%d)", uint8(fn))
	}
	columns, rows := fn.Shape()
	if fn.IsInverse() {
		return fmt.Sprintf("InverseMat%dx%d", columns, rows)
	}
	return fmt.Sprintf("OuterProduct%dx%d", columns, rows)
}

// ----------------------------------------------------------------------------
// Overload Resolution
// ----------------------------------------------------------------------------

// Overload is a resolved polyfill: the helper and the byte width of the
// matrix elements it works on.
type Overload struct {
	Function Function
	Width    uint8
}

// DefaultHelperPrefix starts every generated helper name.
const DefaultHelperPrefix = "_polyfill_"

// FindOverload returns the helper that implements fn for an operand of type
// ty, or false if there is none.
//
// Only MathInverse and MathOuter are polyfilled, and only for matrices of
// floating-point elements. inverse additionally requires a square matrix.
// The returned width is the operand's element width, unchanged.
func FindOverload(fn builtins.MathFunction, ty types.Inner) (Overload, bool) {
	if fn != builtins.MathInverse && fn != builtins.MathOuter {
		return Overload{}, false
	}

	m, ok := types.AsMatrix(ty)
	if !ok || !m.Columns.Valid() || !m.Rows.Valid() {
		return Overload{}, false
	}
	if m.Scalar.Kind != types.ScalarFloat {
		return Overload{}, false
	}

	switch fn {
	case builtins.MathInverse:
		if m.Columns != m.Rows {
			return Overload{}, false
		}
		return Overload{Function: InverseForSize(m.Columns), Width: m.Scalar.Width}, true
	default:
		return Overload{Function: OuterProductForSizes(m.Columns, m.Rows), Width: m.Scalar.Width}, true
	}
}

// HelperName returns the symbol the backend gives the helper, such as
// "_polyfill_inverse_3x3_f32".
func (o Overload) HelperName() string {
	return o.HelperNameWithPrefix(DefaultHelperPrefix)
}

// HelperNameWithPrefix is like HelperName with a caller-chosen prefix.
func (o Overload) HelperNameWithPrefix(prefix string) string {
	columns, rows := o.Function.Shape()
	elem := types.Scalar{Kind: types.ScalarFloat, Width: o.Width}
	op := "outer_product"
	if o.Function.IsInverse() {
		op = "inverse"
	}
	return fmt.Sprintf("%s%s_%dx%d_%s", prefix, op, columns, rows, elem)
}

// Matrix returns the matrix type the helper operates on.
func (o Overload) Matrix() types.Matrix {
	columns, rows := o.Function.Shape()
	return types.Matrix{
		Columns: columns,
		Rows:    rows,
		Scalar:  types.Scalar{Kind: types.ScalarFloat, Width: o.Width},
	}
}

func (o Overload) String() string {
	return fmt.Sprintf("%s(width=%d)", o.Function, o.Width)
}

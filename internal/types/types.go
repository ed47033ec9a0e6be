// Package types describes the operand types a code generation backend hands to
// the polyfill resolver.
//
// The descriptors mirror the shape information of the intermediate
// representation: scalars carry a kind and a byte width, vectors and matrices
// carry extents drawn from the closed VectorSize set. All descriptors are plain
// values and safe to copy and share.
package types

import "fmt"

// Inner is the shape of a value in the intermediate representation.
type Inner interface {
	// String returns the WGSL spelling of the type.
	String() string
	// isInner is a marker method.
	isInner()
}

// ----------------------------------------------------------------------------
// Scalar Types
// ----------------------------------------------------------------------------

// ScalarKind classifies the elements of scalars, vectors and matrices.
type ScalarKind uint8

const (
	ScalarSint ScalarKind = iota
	ScalarUint
	ScalarFloat
	ScalarBool
	ScalarAbstractInt
	ScalarAbstractFloat
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarSint:
		return "sint"
	case ScalarUint:
		return "uint"
	case ScalarFloat:
		return "float"
	case ScalarBool:
		return "bool"
	case ScalarAbstractInt:
		return "abstract-int"
	case ScalarAbstractFloat:
		return "abstract-float"
	default:
		return "unknown"
	}
}

// Scalar is a scalar type. Width is the size of one element in bytes.
type Scalar struct {
	Kind  ScalarKind
	Width uint8
}

// Predeclared scalar types.
var (
	Bool = Scalar{Kind: ScalarBool, Width: 1}
	I32  = Scalar{Kind: ScalarSint, Width: 4}
	U32  = Scalar{Kind: ScalarUint, Width: 4}
	I64  = Scalar{Kind: ScalarSint, Width: 8}
	U64  = Scalar{Kind: ScalarUint, Width: 8}
	F16  = Scalar{Kind: ScalarFloat, Width: 2}
	F32  = Scalar{Kind: ScalarFloat, Width: 4}
	F64  = Scalar{Kind: ScalarFloat, Width: 8}
)

func (s Scalar) String() string {
	switch s.Kind {
	case ScalarBool:
		return "bool"
	case ScalarAbstractInt:
		return "abstract-int"
	case ScalarAbstractFloat:
		return "abstract-float"
	case ScalarSint:
		return fmt.Sprintf("i%d", int(s.Width)*8)
	case ScalarUint:
		return fmt.Sprintf("u%d", int(s.Width)*8)
	case ScalarFloat:
		return fmt.Sprintf("f%d", int(s.Width)*8)
	default:
		return "unknown"
	}
}

func (Scalar) isInner() {}

// IsFloat returns true if this is a floating-point type.
func (s Scalar) IsFloat() bool {
	return s.Kind == ScalarFloat || s.Kind == ScalarAbstractFloat
}

// ----------------------------------------------------------------------------
// Vector Sizes
// ----------------------------------------------------------------------------

// VectorSize is the extent of a vector, or of one matrix axis.
// It is a closed set: only Bi, Tri and Quad are legal.
type VectorSize uint8

const (
	Bi   VectorSize = 2
	Tri  VectorSize = 3
	Quad VectorSize = 4
)

// NumVectorSizes is the number of legal VectorSize values.
const NumVectorSizes = 3

// VectorSizes lists every legal VectorSize in ascending order.
var VectorSizes = [NumVectorSizes]VectorSize{Bi, Tri, Quad}

// VectorSizeFrom converts an integer extent into a VectorSize.
func VectorSizeFrom(n int) (VectorSize, bool) {
	s := VectorSize(n)
	if n < 0 || n > 255 || !s.Valid() {
		return 0, false
	}
	return s, true
}

// Valid reports whether s is one of Bi, Tri or Quad.
func (s VectorSize) Valid() bool {
	return s >= Bi && s <= Quad
}

// Index returns the zero-based position of s in VectorSizes.
// It panics if s is not a legal size.
func (s VectorSize) Index() int {
	if !s.Valid() {
		panic(fmt.Sprintf("types: invalid vector size %d", uint8(s)))
	}
	return int(s - Bi)
}

func (s VectorSize) String() string {
	return fmt.Sprintf("%d", uint8(s))
}

// ----------------------------------------------------------------------------
// Vector Types
// ----------------------------------------------------------------------------

// Vector represents vec2<T>, vec3<T>, vec4<T>.
type Vector struct {
	Size   VectorSize
	Scalar Scalar
}

func (v Vector) String() string {
	return fmt.Sprintf("vec%d<%s>", v.Size, v.Scalar)
}

func (Vector) isInner() {}

// ----------------------------------------------------------------------------
// Matrix Types
// ----------------------------------------------------------------------------

// Matrix represents matCxR<T>: Columns column vectors of Rows elements each.
type Matrix struct {
	Columns VectorSize
	Rows    VectorSize
	Scalar  Scalar
}

func (m Matrix) String() string {
	return fmt.Sprintf("mat%dx%d<%s>", m.Columns, m.Rows, m.Scalar)
}

func (Matrix) isInner() {}

// IsSquare returns true if the matrix has as many columns as rows.
func (m Matrix) IsSquare() bool {
	return m.Columns == m.Rows
}

// ----------------------------------------------------------------------------
// Array Types
// ----------------------------------------------------------------------------

// Array represents array<T, N> or array<T> (runtime-sized).
type Array struct {
	Base  Inner
	Count int // 0 for runtime-sized arrays
}

func (a Array) String() string {
	if a.IsRuntimeSized() {
		return fmt.Sprintf("array<%s>", a.Base)
	}
	return fmt.Sprintf("array<%s, %d>", a.Base, a.Count)
}

func (Array) isInner() {}

// IsRuntimeSized returns true if this is a runtime-sized array.
func (a Array) IsRuntimeSized() bool {
	return a.Count == 0
}

// AsMatrix returns the matrix described by t, accepting both Matrix and
// *Matrix. It returns false for every other shape.
func AsMatrix(t Inner) (Matrix, bool) {
	switch m := t.(type) {
	case Matrix:
		return m, true
	case *Matrix:
		if m == nil {
			return Matrix{}, false
		}
		return *m, true
	default:
		return Matrix{}, false
	}
}

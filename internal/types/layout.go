package types

import "math"

// Layout is the host-shareable memory layout of a type.
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
type Layout struct {
	Size      int
	Alignment int
	Stride    int // For arrays only (0 otherwise)
}

// LayoutOf computes the layout of ty. Abstract scalars have no layout and
// report false, as do arrays larger than 2^31-1 bytes. Runtime-sized arrays
// report a zero Size.
func LayoutOf(ty Inner) (Layout, bool) {
	switch t := ty.(type) {
	case Scalar:
		return scalarLayout(t)
	case Vector:
		elem, ok := scalarLayout(t.Scalar)
		if !ok {
			return Layout{}, false
		}
		return vecLayout(int(t.Size), elem.Size), true
	case Matrix:
		return matrixLayout(t)
	case *Matrix:
		if t == nil {
			return Layout{}, false
		}
		return matrixLayout(*t)
	case Array:
		elem, ok := LayoutOf(t.Base)
		if !ok || elem.Size == 0 {
			return Layout{}, false
		}
		stride := roundUp(elem.Size, elem.Alignment)
		if t.Count < 0 || t.Count > math.MaxInt32/stride {
			return Layout{}, false
		}
		return Layout{
			Size:      t.Count * stride,
			Alignment: elem.Alignment,
			Stride:    stride,
		}, true
	default:
		return Layout{}, false
	}
}

func scalarLayout(s Scalar) (Layout, bool) {
	switch s.Kind {
	case ScalarAbstractInt, ScalarAbstractFloat:
		return Layout{}, false
	case ScalarBool:
		// bool is 4 bytes wherever it is host-visible
		return Layout{Size: 4, Alignment: 4}, true
	default:
		return Layout{Size: int(s.Width), Alignment: int(s.Width)}, true
	}
}

// vecLayout computes the layout of a vector of n elements.
// vec3 has the alignment of vec4 but the size of 3 elements.
func vecLayout(n, elemSize int) Layout {
	align := elemSize * n
	if n == 3 {
		align = elemSize * 4
	}
	return Layout{Size: elemSize * n, Alignment: align}
}

// matrixLayout lays matCxR<T> out as C columns of vecR<T>.
// AlignOf(matCxR<T>) = AlignOf(vecR<T>)
func matrixLayout(m Matrix) (Layout, bool) {
	if !m.Columns.Valid() || !m.Rows.Valid() {
		return Layout{}, false
	}
	elem, ok := scalarLayout(m.Scalar)
	if !ok {
		return Layout{}, false
	}
	col := vecLayout(int(m.Rows), elem.Size)
	stride := roundUp(col.Size, col.Alignment)
	return Layout{
		Size:      int(m.Columns) * stride,
		Alignment: col.Alignment,
	}, true
}

// roundUp rounds x up to the nearest multiple of align.
func roundUp(x, align int) int {
	if align == 0 {
		return x
	}
	return ((x + align - 1) / align) * align
}

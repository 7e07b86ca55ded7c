// Package extent implements the extent algebra: converting
// a user-supplied per-axis selector into the storage engine's canonical
// (start, count, stride) triples, including the growing-dimension
// semantics for unlimited dimensions.
//
// The shape of this package — many ergonomic constructors collapsing into
// one canonical tree before resolution — mirrors a builder/tree split:
// several entry points normalize heterogeneous inputs into one canonical
// form before anything executes against it.
package extent

import "fmt"

// AxisExtent is a single-axis selector. Nothing is checked at construction:
// the zero Index selects position 0, while the zero Slice, SliceEnd and
// SliceCount carry a zero stride, which resolution rejects.
type AxisExtent interface {
	isAxisExtent()
	String() string
}

// Index selects exactly one element at position I.
type Index struct{ I int64 }

func (Index) isAxisExtent()    {}
func (e Index) String() string { return fmt.Sprintf("%d", e.I) }

// Slice is an open-ended range starting at Start with the given Stride
// (default 1 via NewSlice).
type Slice struct {
	Start  int64
	Stride int64
}

func (Slice) isAxisExtent()    {}
func (e Slice) String() string { return fmt.Sprintf("%d..;%d", e.Start, e.Stride) }

// NewSlice builds a Slice with the default stride of 1.
func NewSlice(start int64) Slice { return Slice{Start: start, Stride: 1} }

// SliceEnd is the half-open range [Start, End) with the given Stride.
type SliceEnd struct {
	Start, End, Stride int64
}

func (SliceEnd) isAxisExtent()    {}
func (e SliceEnd) String() string { return fmt.Sprintf("%d..%d;%d", e.Start, e.End, e.Stride) }

// SliceCount is a fixed element Count starting at Start with the given
// Stride.
type SliceCount struct {
	Start, Count, Stride int64
}

func (SliceCount) isAxisExtent()    {}
func (e SliceCount) String() string { return fmt.Sprintf("%d..+%d;%d", e.Start, e.Count, e.Stride) }

// boundedAbove reports whether the axis extent caps its own count (a
// SliceEnd/SliceCount can never grow an unlimited dimension; a bare Slice
// or an Index can).
func boundedAbove(e AxisExtent) bool {
	switch e.(type) {
	case SliceEnd, SliceCount:
		return true
	default:
		return false
	}
}

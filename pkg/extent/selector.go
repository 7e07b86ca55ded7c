package extent

// Selector is a full hyperslab selector: either All (every
// element of every axis) or an ordered list of AxisExtent, one per
// dimension.
type Selector struct {
	all     bool
	extents []AxisExtent
}

// All selects every element of every axis with stride 1.
func All() Selector { return Selector{all: true} }

// Of builds a selector from an explicit, ordered list of per-axis extents.
// Its rank must equal the target variable's rank; rank mismatches are
// caught at Resolve time, not here, so constructors can be composed freely
// before a variable is known.
func Of(extents ...AxisExtent) Selector { return Selector{extents: extents} }

// IsAll reports whether this selector is the All() selector.
func (s Selector) IsAll() bool { return s.all }

// Extents returns the ordered per-axis extents; empty (and meaningless) for
// an All() selector.
func (s Selector) Extents() []AxisExtent { return s.extents }

// Rank returns the number of axes this selector addresses, or -1 for
// All() (which adapts to any rank).
func (s Selector) Rank() int {
	if s.all {
		return -1
	}
	return len(s.extents)
}

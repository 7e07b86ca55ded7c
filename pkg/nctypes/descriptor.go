package nctypes

import "fmt"

// DescriptorKind discriminates the TypeDescriptor sum.
type DescriptorKind int

const (
	KindAtomic DescriptorKind = iota
	KindOpaque
	KindEnum
	KindVlen
	KindCompound
)

func (k DescriptorKind) String() string {
	switch k {
	case KindAtomic:
		return "Atomic"
	case KindOpaque:
		return "Opaque"
	case KindEnum:
		return "Enum"
	case KindVlen:
		return "Vlen"
	case KindCompound:
		return "Compound"
	default:
		return "Unknown"
	}
}

// EnumMember is one (name, value) pair of an enum type. Value is stored
// widened to int64; the base type determines how it is narrowed on disk.
type EnumMember struct {
	Name  string
	Value int64
}

// CompoundField is one field of a Compound descriptor, in declaration
// order. ArrayDims is empty for a scalar field.
type CompoundField struct {
	Name      string
	Elem      *TypeDescriptor
	ArrayDims []int
	Offset    int
}

// count returns the number of elements this field occupies (1 for a scalar
// field, the product of ArrayDims otherwise).
func (f CompoundField) count() int {
	n := 1
	for _, d := range f.ArrayDims {
		n *= d
	}
	return n
}

// TypeDescriptor is a tagged sum describing one on-disk type: an atomic
// type, or a user-defined opaque/enum/vlen/compound type.
type TypeDescriptor struct {
	Kind   DescriptorKind
	Atomic AtomicType // KindAtomic

	Name string // KindOpaque/Enum/Vlen/Compound

	OpaqueSize int // KindOpaque

	EnumBase    AtomicType   // KindEnum
	EnumMembers []EnumMember // KindEnum

	VlenElem *TypeDescriptor // KindVlen

	CompoundSize   int             // KindCompound
	CompoundFields []CompoundField // KindCompound
}

// NewAtomicDescriptor builds a scalar atomic descriptor.
func NewAtomicDescriptor(t AtomicType) *TypeDescriptor {
	return &TypeDescriptor{Kind: KindAtomic, Atomic: t}
}

// Size returns the descriptor's in-memory element byte size.
func (d *TypeDescriptor) Size() int {
	switch d.Kind {
	case KindAtomic:
		return d.Atomic.Size()
	case KindOpaque:
		return d.OpaqueSize
	case KindEnum:
		return d.EnumBase.Size()
	case KindVlen:
		return 16 // nc_vlen_t: size_t len + void *p, sized generously for 64-bit hosts
	case KindCompound:
		return d.CompoundSize
	default:
		return 0
	}
}

func (d *TypeDescriptor) String() string {
	switch d.Kind {
	case KindAtomic:
		return d.Atomic.String()
	case KindOpaque:
		return fmt.Sprintf("opaque %s(%d)", d.Name, d.OpaqueSize)
	case KindEnum:
		return fmt.Sprintf("enum %s:%s(%d members)", d.Name, d.EnumBase, len(d.EnumMembers))
	case KindVlen:
		return fmt.Sprintf("%s(*)", d.VlenElem)
	case KindCompound:
		return fmt.Sprintf("compound %s(%d bytes, %d fields)", d.Name, d.CompoundSize, len(d.CompoundFields))
	default:
		return "<invalid type descriptor>"
	}
}

// Equal implements structural
// equality for atomic/opaque/vlen/compound descriptors, and *order-insensitive*
// equality of (name,value) pairs for enums, since the C library tolerates
// out-of-order member insertion.
func (d *TypeDescriptor) Equal(o *TypeDescriptor) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Kind != o.Kind {
		return false
	}
	switch d.Kind {
	case KindAtomic:
		return d.Atomic == o.Atomic
	case KindOpaque:
		return d.Name == o.Name && d.OpaqueSize == o.OpaqueSize
	case KindEnum:
		if d.Name != o.Name || d.EnumBase != o.EnumBase || len(d.EnumMembers) != len(o.EnumMembers) {
			return false
		}
		want := make(map[string]int64, len(d.EnumMembers))
		for _, m := range d.EnumMembers {
			want[m.Name] = m.Value
		}
		for _, m := range o.EnumMembers {
			v, ok := want[m.Name]
			if !ok || v != m.Value {
				return false
			}
			delete(want, m.Name)
		}
		return len(want) == 0
	case KindVlen:
		return d.Name == o.Name && d.VlenElem.Equal(o.VlenElem)
	case KindCompound:
		if d.Name != o.Name || d.CompoundSize != o.CompoundSize || len(d.CompoundFields) != len(o.CompoundFields) {
			return false
		}
		for i := range d.CompoundFields {
			a, b := d.CompoundFields[i], o.CompoundFields[i]
			if a.Name != b.Name || a.Offset != b.Offset || len(a.ArrayDims) != len(b.ArrayDims) {
				return false
			}
			for j := range a.ArrayDims {
				if a.ArrayDims[j] != b.ArrayDims[j] {
					return false
				}
			}
			if !a.Elem.Equal(b.Elem) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsAtomicNumeric reports whether d is a numeric atomic descriptor,
// the precondition for the implicit-conversion I/O dispatch.
func (d *TypeDescriptor) IsAtomicNumeric() bool {
	return d.Kind == KindAtomic && d.Atomic.IsNumeric()
}

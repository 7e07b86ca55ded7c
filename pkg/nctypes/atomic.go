package nctypes

// AtomicType enumerates the netCDF built-in element types: the eight
// integer widths (signed/unsigned), the two float widths, char, and
// string.
type AtomicType int

const (
	Byte AtomicType = iota
	UByte
	Short
	UShort
	Int
	UInt
	Int64
	UInt64
	Float
	Double
	Char
	String
)

var atomicNames = map[AtomicType]string{
	Byte: "byte", UByte: "ubyte", Short: "short", UShort: "ushort",
	Int: "int", UInt: "uint", Int64: "int64", UInt64: "uint64",
	Float: "float", Double: "double", Char: "char", String: "string",
}

func (t AtomicType) String() string {
	if n, ok := atomicNames[t]; ok {
		return n
	}
	return "unknown"
}

// IsInteger reports whether t is one of the eight integer widths.
func (t AtomicType) IsInteger() bool {
	switch t {
	case Byte, UByte, Short, UShort, Int, UInt, Int64, UInt64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is Float or Double.
func (t AtomicType) IsFloat() bool { return t == Float || t == Double }

// IsNumeric reports whether t participates in the implicit numeric
// conversions (int<->int, int<->float, float<->float).
func (t AtomicType) IsNumeric() bool { return t.IsInteger() || t.IsFloat() }

// Size returns the in-memory byte size of one element of t.
func (t AtomicType) Size() int {
	switch t {
	case Byte, UByte, Char:
		return 1
	case Short, UShort:
		return 2
	case Int, UInt, Float:
		return 4
	case Int64, UInt64, Double:
		return 8
	case String:
		return 8 // a C char* on every platform this library targets
	default:
		return 0
	}
}

// Signed reports whether t is a signed integer width. Panics if t is not an
// integer type; callers must check IsInteger first.
func (t AtomicType) Signed() bool {
	switch t {
	case Byte, Short, Int, Int64:
		return true
	case UByte, UShort, UInt, UInt64:
		return false
	default:
		panic("nctypes: Signed called on non-integer AtomicType")
	}
}

package nctypes

import (
	"fmt"
	"math"
)

// Numeric is the set of host numeric types an AttributeValue can carry,
// matching the eight integer widths and two float widths netCDF defines.
type Numeric interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// AttributeValue is the sum of scalar/vector atomic numeric values plus
// scalar/vector string values. The scalar and vector forms are represented
// uniformly as a length-1-or-more slice: Scalar() reports which one a given
// value is, making the "length 1 means scalar, length > 1 means vector"
// distinction without a second type.
type AttributeValue struct {
	Kind AtomicType
	i64s []int64   // populated for any signed-integer Kind, widened
	u64s []uint64  // populated for any unsigned-integer Kind, widened
	f64s []float64 // populated for Float/Double
	strs []string  // populated for Char (len 1) / String
}

// NewNumeric builds a scalar or vector AttributeValue of the given Kind
// from concrete host values, widening each into the matching storage class.
func NewNumeric[T Numeric](kind AtomicType, values ...T) AttributeValue {
	av := AttributeValue{Kind: kind}
	if kind.IsFloat() {
		av.f64s = make([]float64, len(values))
		for i, v := range values {
			av.f64s[i] = float64(v)
		}
		return av
	}
	if kind.Signed() {
		av.i64s = make([]int64, len(values))
		for i, v := range values {
			av.i64s[i] = int64(v)
		}
		return av
	}
	av.u64s = make([]uint64, len(values))
	for i, v := range values {
		av.u64s[i] = uint64(v)
	}
	return av
}

// NewString builds a scalar Char/String AttributeValue.
func NewString(kind AtomicType, s string) AttributeValue {
	return AttributeValue{Kind: kind, strs: []string{s}}
}

// NewStrings builds a vector String AttributeValue (not valid for Char,
// which has no vector-of-strings variant on disk).
func NewStrings(values []string) AttributeValue {
	return AttributeValue{Kind: String, strs: append([]string(nil), values...)}
}

// Len reports the element count.
func (v AttributeValue) Len() int {
	switch {
	case v.i64s != nil:
		return len(v.i64s)
	case v.u64s != nil:
		return len(v.u64s)
	case v.f64s != nil:
		return len(v.f64s)
	default:
		return len(v.strs)
	}
}

// Scalar reports whether this value is the length-1 scalar variant.
func (v AttributeValue) Scalar() bool { return v.Len() == 1 }

// Ints returns the integer elements widened to int64. Valid only when Kind
// is a signed integer type.
func (v AttributeValue) Ints() ([]int64, bool) { return v.i64s, v.i64s != nil }

// UInts returns the integer elements widened to uint64. Valid only when
// Kind is an unsigned integer type.
func (v AttributeValue) UInts() ([]uint64, bool) { return v.u64s, v.u64s != nil }

// Floats returns the float elements widened to float64.
func (v AttributeValue) Floats() ([]float64, bool) { return v.f64s, v.f64s != nil }

// Strings returns the string elements (length 1 for Char or scalar String).
func (v AttributeValue) Strings() ([]string, bool) { return v.strs, v.strs != nil }

// As extracts a single concrete numeric type, widening-only: converting a
// stored int8 into an int64 destination is always allowed, but narrowing
// (stored int64 into an int8 destination) is fallible and returns
// ErrKindConversion if the value is out of T's representable range. This
// gives extraction widening-only implicit conversion with fallible
// narrowing.
func As[T Numeric](v AttributeValue, idx int) (T, error) {
	var zero T
	if idx < 0 || idx >= v.Len() {
		return zero, &Error{Kind: ErrKindBufferLen, Msg: fmt.Sprintf("attribute index %d out of range (len %d)", idx, v.Len())}
	}
	switch {
	case v.i64s != nil:
		return narrowInt[T](v.i64s[idx])
	case v.u64s != nil:
		return narrowUint[T](v.u64s[idx])
	case v.f64s != nil:
		return narrowFloat[T](v.f64s[idx])
	default:
		return zero, &Error{Kind: ErrKindConversion, Msg: "attribute holds a string, not a numeric value"}
	}
}

func narrowInt[T Numeric](x int64) (T, error) {
	var probe T
	switch any(probe).(type) {
	case int8:
		if x < math.MinInt8 || x > math.MaxInt8 {
			return probe, overflow(x)
		}
	case int16:
		if x < math.MinInt16 || x > math.MaxInt16 {
			return probe, overflow(x)
		}
	case int32:
		if x < math.MinInt32 || x > math.MaxInt32 {
			return probe, overflow(x)
		}
	case uint8:
		if x < 0 || x > math.MaxUint8 {
			return probe, overflow(x)
		}
	case uint16:
		if x < 0 || x > math.MaxUint16 {
			return probe, overflow(x)
		}
	case uint32:
		if x < 0 || x > math.MaxUint32 {
			return probe, overflow(x)
		}
	case uint64:
		if x < 0 {
			return probe, overflow(x)
		}
	}
	return T(x), nil
}

func narrowUint[T Numeric](x uint64) (T, error) {
	var probe T
	switch any(probe).(type) {
	case int8:
		if x > math.MaxInt8 {
			return probe, overflowU(x)
		}
	case uint8:
		if x > math.MaxUint8 {
			return probe, overflowU(x)
		}
	case int16:
		if x > math.MaxInt16 {
			return probe, overflowU(x)
		}
	case uint16:
		if x > math.MaxUint16 {
			return probe, overflowU(x)
		}
	case int32:
		if x > math.MaxInt32 {
			return probe, overflowU(x)
		}
	case uint32:
		if x > math.MaxUint32 {
			return probe, overflowU(x)
		}
	case int64:
		if x > math.MaxInt64 {
			return probe, overflowU(x)
		}
	}
	return T(x), nil
}

func narrowFloat[T Numeric](x float64) (T, error) {
	var probe T
	switch any(probe).(type) {
	case float64:
		return T(x), nil
	case float32:
		if x > math.MaxFloat32 || x < -math.MaxFloat32 {
			return probe, overflowF(x)
		}
		return T(x), nil
	}
	// Integer destination: the value must be a finite whole number that
	// fits the target's range, otherwise the narrowing fails.
	if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
		return probe, overflowF(x)
	}
	switch any(probe).(type) {
	case int8:
		if x < math.MinInt8 || x > math.MaxInt8 {
			return probe, overflowF(x)
		}
	case int16:
		if x < math.MinInt16 || x > math.MaxInt16 {
			return probe, overflowF(x)
		}
	case int32:
		if x < math.MinInt32 || x > math.MaxInt32 {
			return probe, overflowF(x)
		}
	case int64:
		// math.MaxInt64 rounds up to 2^63 as a float64, so the upper
		// comparison must be >= to exclude it.
		if x < math.MinInt64 || x >= math.MaxInt64 {
			return probe, overflowF(x)
		}
	case uint8:
		if x < 0 || x > math.MaxUint8 {
			return probe, overflowF(x)
		}
	case uint16:
		if x < 0 || x > math.MaxUint16 {
			return probe, overflowF(x)
		}
	case uint32:
		if x < 0 || x > math.MaxUint32 {
			return probe, overflowF(x)
		}
	case uint64:
		if x < 0 || x >= math.MaxUint64 {
			return probe, overflowF(x)
		}
	}
	return T(x), nil
}

func overflow(x int64) error {
	return &Error{Kind: ErrKindConversion, Msg: fmt.Sprintf("value %d does not fit destination type", x)}
}

func overflowU(x uint64) error {
	return &Error{Kind: ErrKindConversion, Msg: fmt.Sprintf("value %d does not fit destination type", x)}
}

func overflowF(x float64) error {
	return &Error{Kind: ErrKindConversion, Msg: fmt.Sprintf("value %v does not fit destination type", x)}
}

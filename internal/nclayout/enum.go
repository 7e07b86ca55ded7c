package nclayout

import (
	"fmt"
	"math"

	"github.com/ncgo/netcdf/pkg/nctypes"
)

// ValidateEnum checks an enum definition: the base type must be one of the
// eight atomic integer widths, member names must be unique, and every
// value must fit in the base type (values need not be dense).
func ValidateEnum(base nctypes.AtomicType, members []nctypes.EnumMember) error {
	if !base.IsInteger() {
		return &nctypes.Error{Kind: nctypes.ErrKindConversion, Msg: fmt.Sprintf("enum base type %s is not an integer type", base)}
	}
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if seen[m.Name] {
			return &nctypes.Error{Kind: nctypes.ErrKindConversion, Msg: fmt.Sprintf("duplicate enum member name %q", m.Name)}
		}
		seen[m.Name] = true
		if !fitsBase(base, m.Value) {
			return &nctypes.Error{Kind: nctypes.ErrKindOverflow, Msg: fmt.Sprintf("enum value %d does not fit in base type %s", m.Value, base)}
		}
	}
	return nil
}

func fitsBase(base nctypes.AtomicType, v int64) bool {
	switch base {
	case nctypes.Byte:
		return v >= math.MinInt8 && v <= math.MaxInt8
	case nctypes.UByte:
		return v >= 0 && v <= math.MaxUint8
	case nctypes.Short:
		return v >= math.MinInt16 && v <= math.MaxInt16
	case nctypes.UShort:
		return v >= 0 && v <= math.MaxUint16
	case nctypes.Int:
		return v >= math.MinInt32 && v <= math.MaxInt32
	case nctypes.UInt:
		return v >= 0 && v <= math.MaxUint32
	case nctypes.Int64:
		return true // v is already an int64
	case nctypes.UInt64:
		return v >= 0
	default:
		return false
	}
}

package netcdf

import (
	"github.com/ncgo/netcdf/bindings"
	"github.com/ncgo/netcdf/pkg/nctypes"
)

// Dimension is a read-only view of one dimension: a name, a
// length, and whether it may grow. It carries only the identifier pair and
// the name, never an owning handle.
type Dimension struct {
	id   nctypes.DimIdentifier
	name string
}

// Identifier returns the dimension's identifier, globally unique within its
// File and usable with AddVariableFromIdentifiers across nested groups.
func (d *Dimension) Identifier() nctypes.DimIdentifier { return d.id }

// Name returns the dimension's name.
func (d *Dimension) Name() string { return d.name }

// Len returns the dimension's current length. Every call queries the C
// library, for fixed-length and unlimited dimensions alike; the view caches
// no length.
func (d *Dimension) Len() (uint64, error) {
	_, length, err := bindings.InqDim(bindings.ID(d.id.ContainerID), bindings.ID(d.id.LocalID))
	if err != nil {
		return 0, wrapErr(err)
	}
	return length, nil
}

// IsUnlimited reports whether this dimension may grow on write.
func (d *Dimension) IsUnlimited() (bool, error) {
	unlimited, err := bindings.InqUnlimdims(bindings.ID(d.id.ContainerID))
	if err != nil {
		return false, wrapErr(err)
	}
	for _, u := range unlimited {
		if u == bindings.ID(d.id.LocalID) {
			return true, nil
		}
	}
	return false, nil
}

// Package ncwalk implements the ancestor-group walk behind variable
// creation's dimension-name resolution ("nearest ancestor wins")
// and by-name type lookup.
package ncwalk

import "github.com/ncgo/netcdf/pkg/nctypes"

// DimLookup is the subset of Group behavior ResolveDim needs: look for a
// dimension by name local to this group, and get the parent (if any).
type DimLookup interface {
	Parent() (DimLookup, bool)
	LocalDim(name string) (nctypes.DimIdentifier, uint64, bool, bool)
}

// ResolveDim walks from g upward through its ancestors (g itself first,
// then parent, then grandparent, ...) looking for a dimension named name.
// The nearest ancestor that has one wins.
func ResolveDim(g DimLookup, name string) (nctypes.DimIdentifier, uint64, bool, bool) {
	cur := g
	for {
		if id, length, unlimited, ok := cur.LocalDim(name); ok {
			return id, length, unlimited, true
		}
		parent, ok := cur.Parent()
		if !ok {
			return nctypes.DimIdentifier{}, 0, false, false
		}
		cur = parent
	}
}

// TypeLookup is the subset of Group behavior ResolveType needs.
type TypeLookup interface {
	Parent() (TypeLookup, bool)
	LocalType(name string) (*nctypes.TypeDescriptor, bool)
}

// ResolveType walks from g upward looking for a user-defined type named
// name, nearest ancestor wins.
func ResolveType(g TypeLookup, name string) (*nctypes.TypeDescriptor, bool) {
	cur := g
	for {
		if d, ok := cur.LocalType(name); ok {
			return d, true
		}
		parent, ok := cur.Parent()
		if !ok {
			return nil, false
		}
		cur = parent
	}
}

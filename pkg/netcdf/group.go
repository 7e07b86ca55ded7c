package netcdf

import (
	"strings"

	"github.com/ncgo/netcdf/bindings"
	"github.com/ncgo/netcdf/internal/ncindex"
	"github.com/ncgo/netcdf/internal/nctypeinstall"
	"github.com/ncgo/netcdf/internal/ncverify"
	"github.com/ncgo/netcdf/internal/ncwalk"
	"github.com/ncgo/netcdf/pkg/nctypes"
)

// Group is a read-only view of a container group: either the
// root (equal to the File's own container id) or nested under another
// Group. Only addressable when the underlying format supports groups.
type Group struct {
	file   *File
	ncid   bindings.ID
	parent *Group

	dims  *ncindex.Index[nctypes.DimIdentifier]
	vars  *ncindex.Index[bindings.ID]
	types *ncindex.Index[*nctypes.TypeDescriptor]
}

// GroupMut is an exclusively-borrowed mutable view of a Group, obtained via
// FileMut.RootMut, FileMut.GroupMut or GroupMut.GroupMut. Only one checkout
// may be held on a File at a time; GroupMut and VariableMut views derived
// from a checkout share it.
type GroupMut struct {
	*Group
	release func()
}

// Release gives back the File's single exclusive mutable-borrow slot. Safe
// to call once; a GroupMut obtained from FileMut.GroupMut should always have
// Release deferred immediately.
func (m *GroupMut) Release() {
	if m.release != nil {
		m.release()
		m.release = nil
	}
}

func newGroup(file *File, ncid bindings.ID, parent *Group) *Group {
	return &Group{
		file:   file,
		ncid:   ncid,
		parent: parent,
		dims:   ncindex.New[nctypes.DimIdentifier](8),
		vars:   ncindex.New[bindings.ID](8),
		types:  ncindex.New[*nctypes.TypeDescriptor](8),
	}
}

// File returns the owning File.
func (g *Group) File() *File { return g.file }

// ParentGroup returns g's parent group, or (nil, false) for the root.
func (g *Group) ParentGroup() (*Group, bool) {
	if g.parent == nil {
		return nil, false
	}
	return g.parent, true
}

// Name returns the group's local (not fully qualified) name.
func (g *Group) Name() (string, error) {
	if g.parent == nil {
		return "/", nil
	}
	name, err := bindings.InqGrpName(g.ncid)
	return name, wrapErr(err)
}

// --- ncwalk adapters ---------------------------------------------------

// groupDimLookup adapts *Group to ncwalk.DimLookup without widening
// Group's own public method set (ParentGroup returns a concrete *Group,
// which cannot also satisfy an interface method returning ncwalk.DimLookup).
type groupDimLookup struct{ g *Group }

func (w groupDimLookup) Parent() (ncwalk.DimLookup, bool) {
	p, ok := w.g.ParentGroup()
	if !ok {
		return nil, false
	}
	return groupDimLookup{p}, true
}

func (w groupDimLookup) LocalDim(name string) (nctypes.DimIdentifier, uint64, bool, bool) {
	return w.g.localDim(name)
}

type groupTypeLookup struct{ g *Group }

func (w groupTypeLookup) Parent() (ncwalk.TypeLookup, bool) {
	p, ok := w.g.ParentGroup()
	if !ok {
		return nil, false
	}
	return groupTypeLookup{p}, true
}

func (w groupTypeLookup) LocalType(name string) (*nctypes.TypeDescriptor, bool) {
	return w.g.localType(name)
}

// localDim looks up (and caches) a dimension defined directly in g, not
// any ancestor — the ancestor walk is ncwalk.ResolveDim's job.
func (g *Group) localDim(name string) (nctypes.DimIdentifier, uint64, bool, bool) {
	id, ok := g.dims.Get(name)
	if !ok {
		wireID, found, err := bindings.InqDimID(g.ncid, name)
		if err != nil || !found {
			return nctypes.DimIdentifier{}, 0, false, false
		}
		id = nctypes.DimIdentifier{ContainerID: nctypes.ContainerID(g.ncid), LocalID: nctypes.LocalID(wireID)}
		g.dims.Set(name, id)
	}
	_, length, err := bindings.InqDim(bindings.ID(id.ContainerID), bindings.ID(id.LocalID))
	if err != nil {
		return nctypes.DimIdentifier{}, 0, false, false
	}
	return id, length, g.dimIsUnlimited(id), true
}

func (g *Group) dimIsUnlimited(id nctypes.DimIdentifier) bool {
	unlimited, err := bindings.InqUnlimdims(bindings.ID(id.ContainerID))
	if err != nil {
		return false
	}
	for _, u := range unlimited {
		if u == bindings.ID(id.LocalID) {
			return true
		}
	}
	return false
}

// ResolveType walks g and its ancestors for a previously-installed
// user-defined type matching desc.Name and structurally equal to desc,
// nearest ancestor wins, the same resolution rule add_variable's
// dimension-name lookup uses. Atomic descriptors never
// match here, since they carry no name to resolve.
func (g *Group) ResolveType(desc *nctypes.TypeDescriptor) (bindings.ID, bool) {
	if desc.Kind == nctypes.KindAtomic {
		return 0, false
	}
	found, ok := ncwalk.ResolveType(groupTypeLookup{g}, desc.Name)
	if !ok || !found.Equal(desc) {
		return 0, false
	}
	for cur := g; cur != nil; cur = cur.parent {
		if d, ok := cur.localType(desc.Name); ok && d.Equal(desc) {
			if wireID, exists, err := bindings.InqTypeID(cur.ncid, desc.Name); err == nil && exists {
				return wireID, true
			}
		}
	}
	return 0, false
}

// localType looks up (and caches) a user-defined type installed directly
// in g, not any ancestor.
func (g *Group) localType(name string) (*nctypes.TypeDescriptor, bool) {
	if d, ok := g.types.Get(name); ok {
		return d, true
	}
	wireID, found, err := bindings.InqTypeID(g.ncid, name)
	if err != nil || !found {
		return nil, false
	}
	desc, err := nctypeinstall.Describe(g.ncid, wireID)
	if err != nil {
		return nil, false
	}
	g.types.Set(name, desc)
	return desc, true
}

// --- Dimensions ----------------------------------------------------------

// AddDimension registers a new dimension local to g. length == 0 means
// unlimited.
func (g *GroupMut) AddDimension(name string, length uint64) (*Dimension, error) {
	dimid, err := bindings.DefDim(g.ncid, name, length)
	if err != nil {
		return nil, wrapErr(err)
	}
	id := nctypes.DimIdentifier{ContainerID: nctypes.ContainerID(g.ncid), LocalID: nctypes.LocalID(dimid)}
	g.dims.Set(name, id)
	return &Dimension{id: id, name: name}, nil
}

// DimensionByName looks up a dimension defined directly in g, the
// group-relative, slash-free counterpart of the path-walking
// Group.Dimension.
func (g *Group) DimensionByName(name string) (*Dimension, bool) {
	id, _, _, ok := g.localDim(name)
	if !ok {
		return nil, false
	}
	return &Dimension{id: id, name: name}, true
}

// Dimension resolves a "group/path/name" relative to g, walking groups for
// every segment but the last.
func (g *Group) Dimension(path string) (*Dimension, bool, error) {
	parent, stem, err := g.tryResolveParent(path)
	if err != nil || parent == nil {
		return nil, false, err
	}
	d, ok := parent.DimensionByName(stem)
	if !ok {
		return nil, false, nil
	}
	return d, true, nil
}

// ResolveDimension walks from g upward through ancestor groups looking for
// name, nearest ancestor wins. This is the resolution rule variable
// creation uses for its dimension names, also handy for callers that just
// want a Dimension.
func (g *Group) ResolveDimension(name string) (*Dimension, error) {
	id, _, _, ok := ncwalk.ResolveDim(groupDimLookup{g}, name)
	if !ok {
		return nil, nctypes.NotFoundError("dimension " + name)
	}
	return &Dimension{id: id, name: name}, nil
}

// Dimensions lists every dimension defined directly in g, in definition
// order.
func (g *Group) Dimensions() ([]*Dimension, error) {
	ids, err := bindings.InqDimIDs(g.ncid)
	if err != nil {
		return nil, wrapErr(err)
	}
	out := make([]*Dimension, 0, len(ids))
	for _, wireID := range ids {
		name, _, err := bindings.InqDim(g.ncid, wireID)
		if err != nil {
			return nil, wrapErr(err)
		}
		id := nctypes.DimIdentifier{ContainerID: nctypes.ContainerID(g.ncid), LocalID: nctypes.LocalID(wireID)}
		g.dims.Set(name, id)
		out = append(out, &Dimension{id: id, name: name})
	}
	return out, nil
}

// --- Groups ---------------------------------------------------------------

// Groups lists every direct child group.
func (g *Group) Groups() ([]*Group, error) {
	ids, err := bindings.InqGrps(g.ncid)
	if err != nil {
		return nil, wrapErr(err)
	}
	out := make([]*Group, len(ids))
	for i, id := range ids {
		out[i] = newGroup(g.file, id, g)
	}
	return out, nil
}

// childGroup looks up (not creates) an immediate child group by local name.
func (g *Group) childGroup(name string) (*Group, bool, error) {
	id, ok, err := bindings.InqGrpNcid(g.ncid, name)
	if err != nil {
		return nil, false, wrapErr(err)
	}
	if !ok {
		return nil, false, nil
	}
	return newGroup(g.file, id, g), true, nil
}

// Group resolves a (possibly nested) path of the form "a/b/c" relative to
// g, walking child groups and returning the named group. An intermediate
// segment that does not exist is reported as (nil, false, nil).
func (g *Group) Group(path string) (*Group, bool, error) {
	cur := g
	for _, seg := range splitPath(path) {
		next, ok, err := cur.childGroup(seg)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		cur = next
	}
	return cur, true, nil
}

// AddGroup creates (auto-creating missing intermediate groups) the group
// named by path relative to g and returns it.
func (g *GroupMut) AddGroup(path string) (*Group, error) {
	cur := g.Group
	for _, seg := range splitPath(path) {
		next, ok, err := cur.childGroup(seg)
		if err != nil {
			return nil, err
		}
		if !ok {
			id, err := bindings.DefGrp(cur.ncid, seg)
			if err != nil {
				return nil, wrapErr(err)
			}
			next = newGroup(g.file, id, cur)
		}
		cur = next
	}
	return cur, nil
}

func splitPath(path string) []string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) == 1 && segs[0] == "" {
		return nil
	}
	return segs
}

// --- Variables --------------------------------------------------------------

// VariableByName looks up a variable defined directly in g by its local
// name (the group-relative convenience form).
func (g *Group) VariableByName(name string) (*Variable, bool, error) {
	id, ok := g.vars.Get(name)
	if !ok {
		wireID, found, err := bindings.InqVarID(g.ncid, name)
		if err != nil {
			return nil, false, wrapErr(err)
		}
		if !found {
			return nil, false, nil
		}
		id = wireID
		g.vars.Set(name, id)
	}
	v, err := g.loadVariable(id)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Variable resolves a "group/path/name" relative to g, walking groups for
// every segment but the last.
func (g *Group) Variable(path string) (*Variable, bool, error) {
	parent, stem, err := g.tryResolveParent(path)
	if err != nil || parent == nil {
		return nil, false, err
	}
	return parent.VariableByName(stem)
}

// Variables lists every variable declared directly in g.
func (g *Group) Variables() ([]*Variable, error) {
	ids, err := bindings.InqVarIDs(g.ncid)
	if err != nil {
		return nil, wrapErr(err)
	}
	out := make([]*Variable, 0, len(ids))
	for _, id := range ids {
		v, err := g.loadVariable(id)
		if err != nil {
			return nil, err
		}
		g.vars.Set(v.name, id)
		out = append(out, v)
	}
	return out, nil
}

func (g *Group) loadVariable(varid bindings.ID) (*Variable, error) {
	info, err := bindings.InqVar(g.ncid, varid)
	if err != nil {
		return nil, wrapErr(err)
	}
	elem, err := nctypeinstall.Describe(g.ncid, info.XType)
	if err != nil {
		return nil, wrapErr(err)
	}
	dims := make([]nctypes.DimIdentifier, len(info.DimIDs))
	for i, d := range info.DimIDs {
		dims[i] = nctypes.DimIdentifier{ContainerID: nctypes.ContainerID(g.ncid), LocalID: nctypes.LocalID(d)}
	}
	return &Variable{
		group: g,
		id:    varid,
		name:  info.Name,
		dims:  dims,
		elem:  elem,
	}, nil
}

// --- Attributes --------------------------------------------------------------

// FindAttribute looks up a group-level (global) attribute by name. Returns
// (nil, false, nil) only when the C library reports "no such attribute";
// any other failure propagates.
func (g *Group) FindAttribute(name string) (*Attribute, bool, error) {
	return findAttribute(g.ncid, bindings.Global, name)
}

// AttributeByName is an alias for FindAttribute, naming the convention
// used elsewhere in this package ("ByName" = group-relative lookup).
func (g *Group) AttributeByName(name string) (*Attribute, bool, error) {
	return g.FindAttribute(name)
}

// Attributes returns every group-level attribute, in the order the C
// library reports them. Materialized as a slice rather than a cursor: the
// C inquire calls are already index-based random access.
func (g *Group) Attributes() ([]*Attribute, error) {
	return listAttributes(g.ncid, bindings.Global)
}

// PutAttribute writes a group-level (global) attribute.
func (g *GroupMut) PutAttribute(name string, value nctypes.AttributeValue) error {
	return putAttribute(g.ncid, bindings.Global, name, value)
}

// GroupMut resolves a (possibly nested) child group path for mutation,
// sharing g's exclusive borrow.
func (g *GroupMut) GroupMut(path string) (*GroupMut, bool, error) {
	child, ok, err := g.Group.Group(path)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &GroupMut{Group: child, release: g.release}, true, nil
}

// GroupsMut lists every direct child group as a mutable view, all sharing
// g's exclusive borrow; releasing any one of them (or g) gives the slot
// back for the whole family.
func (g *GroupMut) GroupsMut() ([]*GroupMut, error) {
	children, err := g.Group.Groups()
	if err != nil {
		return nil, err
	}
	out := make([]*GroupMut, len(children))
	for i, c := range children {
		out[i] = &GroupMut{Group: c, release: g.release}
	}
	return out, nil
}

// AddGroupMut creates the group named by path (auto-creating missing
// intermediates) and returns it as a mutable view sharing g's exclusive
// borrow.
func (g *GroupMut) AddGroupMut(path string) (*GroupMut, error) {
	child, err := g.AddGroup(path)
	if err != nil {
		return nil, err
	}
	return &GroupMut{Group: child, release: g.release}, nil
}

// --- path resolution --------------------------------------------------------

// tryResolveParent implements try_get_parent_ncid_and_stem: names
// containing '/' are split on the last '/'; prefix segments are walked as
// groups. Returns (nil, "", nil) when an intermediate segment does not
// exist, rather than an error — used by lookup paths.
func (g *Group) tryResolveParent(path string) (*Group, string, error) {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return g, path, nil
	}
	prefix, stem := path[:idx], path[idx+1:]
	parent, ok, err := g.Group(prefix)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", nil
	}
	return parent, stem, nil
}

// resolveParent implements get_parent_ncid_and_stem: like
// tryResolveParent, but a missing intermediate segment is a NotFound error
// instead of a (nil, "", nil) result. Nothing in this package calls it.
func (g *Group) resolveParent(path string) (*Group, string, error) {
	parent, stem, err := g.tryResolveParent(path)
	if err != nil {
		return nil, "", err
	}
	if parent == nil {
		idx := strings.LastIndex(path, "/")
		return nil, "", nctypes.NotFoundError("group " + path[:idx])
	}
	return parent, stem, nil
}

// --- creation-time verification helper -------------------------------------

// verifyDimOwnership checks every dimension identifier used in
// AddVariableFromIdentifiers resolves in an ancestor of the creation site,
// by walking g's own ancestor chain and confirming
// each id's ContainerID matches some ancestor's ncid.
func (g *Group) verifyDimOwnership(ids []nctypes.DimIdentifier) error {
	for _, id := range ids {
		ok := false
		for cur := g; cur != nil; cur = cur.parent {
			if err := ncverify.DimensionOwnership(id, nctypes.ContainerID(cur.ncid)); err == nil {
				ok = true
				break
			}
		}
		if !ok {
			return &nctypes.Error{
				Kind: nctypes.ErrKindWrongDataset,
				Msg:  "dimension identifier does not resolve in an ancestor of this group",
				Err:  nctypes.ErrWrongDataset,
			}
		}
	}
	return nil
}

// dimLens resolves a variable's current dimension lengths and unlimited
// flags, used by the extent algebra at I/O time (pkg/extent).
func dimLens(dims []nctypes.DimIdentifier) ([]uint64, []bool, error) {
	lens := make([]uint64, len(dims))
	unlim := make([]bool, len(dims))
	for i, d := range dims {
		_, length, err := bindings.InqDim(bindings.ID(d.ContainerID), bindings.ID(d.LocalID))
		if err != nil {
			return nil, nil, wrapErr(err)
		}
		lens[i] = length
		unlimited, err := bindings.InqUnlimdims(bindings.ID(d.ContainerID))
		if err != nil {
			return nil, nil, wrapErr(err)
		}
		for _, u := range unlimited {
			if u == bindings.ID(d.LocalID) {
				unlim[i] = true
				break
			}
		}
	}
	return lens, unlim, nil
}

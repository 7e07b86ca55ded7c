// Package netcdf is the public facade of this library: File, Group,
// Dimension, Variable/VariableMut, and Attribute.
// Group, Variable, Dimension and Attribute are *views*: each carries the
// (container id, local id) pair bindings.ID already models, never an owning
// handle of its own; Group and Variable also keep a pointer back to the
// owning File. The File alone owns the underlying container identifier and
// is responsible for closing it.
//
// Go has no borrow checker, so the rule that a mutating view requires no
// other mutating borrow of the same File is enforced at
// runtime instead of compile time, via internal/ncdef.State.Borrow: taking
// a GroupMut (FileMut.RootMut or FileMut.GroupMut, directly or through the
// FileMut helpers built on them) checks out the file's single exclusive
// slot, VariableMut and child GroupMut views share that checkout, and
// Release gives it back. A FileMut itself checks out nothing. Read-only
// views never check out anything and may freely coexist.
//
// The facade favors plain option structs and top-level constructors
// (OpenWith, CreateWith, AppendWith, OpenFromMemory).
package netcdf

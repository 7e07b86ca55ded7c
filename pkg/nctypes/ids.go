package nctypes

// ContainerID is the numeric handle the C library assigns to an open file
// or group. It is never synthesized or
// modified by this library.
type ContainerID int32

// LocalID is a dimension/variable/type/attribute-position id local to one
// ContainerID.
type LocalID int32

// DimIdentifier globally (within one File) identifies a dimension, so it
// can be handed to AddVariableFromIdentifiers across
// nested groups.
type DimIdentifier struct {
	ContainerID ContainerID
	LocalID     LocalID
}

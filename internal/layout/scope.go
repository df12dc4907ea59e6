// Package layout implements the struct layout algorithm: a tree of
// allocator scopes (Top, Union, Group) that place fields into a
// two-section (data words + pointer slots) representation while honouring
// union overlap, group reuse, and natural alignment.
package layout

// Scope is the capability set shared by Top, Group, and the singleton-group
// wrapper a union field gets. Every allocation call travels up the scope
// tree: a child always asks its parent for raw storage, never reserves it
// directly.
type Scope interface {
	AddVoid()
	// AddData allocates a region of size 2^lgSize bits and returns its
	// offset expressed as a multiple of that size.
	AddData(lgSize int) uint32
	// AddPointer allocates one pointer slot and returns its index.
	AddPointer() uint32
	// TryExpandData grows an existing allocation in place; it either
	// succeeds completely or leaves all state unchanged.
	TryExpandData(oldLgSize int, oldOffset uint32, factor int) bool
}

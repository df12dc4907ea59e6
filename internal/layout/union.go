package layout

// DataLocation is a contiguous data region a Union reserves for one
// variant's storage; every variant of the union may reuse it.
type DataLocation struct {
	lgSize int
	offset uint32
	parent *Union
}

// LgSize returns the region's current size exponent.
func (d *DataLocation) LgSize() int { return d.lgSize }

// Offset returns the region's offset, expressed as a multiple of its own
// current size.
func (d *DataLocation) Offset() uint32 { return d.offset }

// TryExpandTo grows the location to newLgSize if it isn't already at least
// that big, by asking the union's parent scope to expand the underlying
// allocation.
func (d *DataLocation) TryExpandTo(newLgSize int) bool {
	if newLgSize <= d.lgSize {
		return true
	}
	factor := newLgSize - d.lgSize
	if !d.parent.parent.TryExpandData(d.lgSize, d.offset, factor) {
		return false
	}
	d.offset >>= uint(factor)
	d.lgSize = newLgSize
	return true
}

// Union belongs to exactly one parent scope (never another union). Its
// variants (Groups) share its DataLocations and pointer slots.
type Union struct {
	parent Scope

	groupCount int

	hasDiscriminant    bool
	discriminantOffset uint32 // multiple of 16 bits

	locations []*DataLocation
	pointers  []uint32
}

// NewUnion creates a union allocating out of parent.
func NewUnion(parent Scope) *Union {
	return &Union{parent: parent}
}

// ParentScope returns the scope this union allocates out of.
func (u *Union) ParentScope() Scope { return u.parent }

// Locations returns the union's DataLocations in the order they were
// created.
func (u *Union) Locations() []*DataLocation { return u.locations }

// PointerLocations returns the pointer slot indices reserved for this
// union's variants, in creation order.
func (u *Union) PointerLocations() []uint32 { return u.pointers }

// GroupCount returns how many variants have requested storage so far.
func (u *Union) GroupCount() int { return u.groupCount }

// HasDiscriminant reports whether a discriminant slot has been reserved.
func (u *Union) HasDiscriminant() bool { return u.hasDiscriminant }

// DiscriminantOffset returns the discriminant's offset (multiple of 16
// bits). Only meaningful once HasDiscriminant is true.
func (u *Union) DiscriminantOffset() uint32 { return u.discriminantOffset }

// AddNewDataLocation asks the parent scope for a fresh data allocation of
// the given size and records it as a new DataLocation.
func (u *Union) AddNewDataLocation(lgSize int) *DataLocation {
	offset := u.parent.AddData(lgSize)
	loc := &DataLocation{lgSize: lgSize, offset: offset, parent: u}
	u.locations = append(u.locations, loc)
	return loc
}

// AddNewPointerLocation asks the parent scope for a fresh pointer slot and
// records its index.
func (u *Union) AddNewPointerLocation() uint32 {
	idx := u.parent.AddPointer()
	u.pointers = append(u.pointers, idx)
	return idx
}

// NewGroupAddingFirstMember must be called exactly once per variant, the
// first time that variant allocates storage. Once a second variant shows
// up, the union needs a discriminant to tell them apart.
func (u *Union) NewGroupAddingFirstMember() {
	u.groupCount++
	if u.groupCount == 2 {
		u.AddDiscriminant()
	}
}

// AddDiscriminant reserves the union's 16-bit discriminant slot in its
// parent scope, if one hasn't been reserved yet. It returns true if it just
// reserved one, false if a discriminant already existed — the caller uses
// that to detect a union whose explicit ordinal arrives after the
// discriminant was already forced into existence by a second variant.
func (u *Union) AddDiscriminant() bool {
	if u.hasDiscriminant {
		return false
	}
	u.discriminantOffset = u.parent.AddData(4) // 16 bits = lgSize 4
	u.hasDiscriminant = true
	return true
}

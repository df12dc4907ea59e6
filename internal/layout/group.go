package layout

import "github.com/simonzhangsm/capnproto/internal/holeset"

// dataLocationUsage tracks how much of one parent DataLocation this group
// has actually used, plus holes within that used prefix.
type dataLocationUsage struct {
	isUsed     bool
	lgSizeUsed int
	holes      holeset.Set[uint8]
}

// score reports how well this location fits a request for lgSize, across
// four cases (unused prefix, grow-in-place, hole reuse, internal doubling).
// A smaller score is a better fit.
func (u *dataLocationUsage) score(location *DataLocation, lgSize int) (score int, ok bool) {
	switch {
	case !u.isUsed:
		if lgSize <= location.lgSize {
			return location.lgSize, true
		}
		return 0, false
	case lgSize >= u.lgSizeUsed:
		if lgSize < location.lgSize {
			return lgSize, true
		}
		return 0, false
	default:
		if hole, ok := u.holes.SmallestAtLeast(lgSize); ok {
			return hole, true
		}
		if u.lgSizeUsed < location.lgSize {
			return u.lgSizeUsed, true
		}
		return 0, false
	}
}

// allocateFromHole realises whichever of the four scoring cases applied,
// returning an offset local to location.
func (u *dataLocationUsage) allocateFromHole(location *DataLocation, lgSize int) uint32 {
	switch {
	case !u.isUsed:
		// Pure prefix allocation: take offset 0. Any remainder of a
		// larger location stays virtual — tracked only as lgSizeUsed <
		// location.lgSize — rather than being pre-holed here; later
		// smaller requests synthesize their own hole out of that virtual
		// remainder via the default case below, keeping lgSizeUsed in
		// sync with every bit actually claimed.
		u.isUsed = true
		u.lgSizeUsed = lgSize
		return 0
	case lgSize >= u.lgSizeUsed:
		// Doubling: the already-used prefix becomes the lower half of a
		// size-(lgSize+1) region; the new field takes the upper half.
		u.holes.AddHolesAtEnd(u.lgSizeUsed, 1, lgSize)
		u.lgSizeUsed = lgSize + 1
		return 1
	default:
		if offset, ok := u.holes.TryAllocate(lgSize); ok {
			// Normal hole consumption.
			return uint32(offset)
		}
		// Internal doubling: grow lgSizeUsed by one step, exposing a
		// fresh same-sized hole to allocate lgSize out of.
		u.holes.AddHolesAtEnd(u.lgSizeUsed, 1, u.lgSizeUsed+1)
		u.lgSizeUsed++
		offset, ok := u.holes.TryAllocate(lgSize)
		if !ok {
			panic("layout: internal doubling failed to produce an allocatable hole")
		}
		return uint32(offset)
	}
}

func scaledLocationOffset(location *DataLocation, lgSize int) uint32 {
	shift := uint(location.lgSize - lgSize)
	return location.offset << shift
}

// Group is one variant of a parent Union: a field declared directly inside
// a union is wrapped in a singleton Group so that fields and named groups
// of a union share this one allocation path.
type Group struct {
	parent       *Union
	usage        []dataLocationUsage
	pointerUsage int
	hasMembers   bool
}

// NewGroup creates a variant of parent.
func NewGroup(parent *Union) *Group {
	return &Group{parent: parent}
}

// HasMembers reports whether anything has been allocated into this group
// yet.
func (g *Group) HasMembers() bool { return g.hasMembers }

func (g *Group) ensureUsage() {
	locs := g.parent.locations
	for len(g.usage) < len(locs) {
		g.usage = append(g.usage, dataLocationUsage{})
	}
}

func (g *Group) AddVoid() {
	if !g.hasMembers {
		g.parent.NewGroupAddingFirstMember()
	}
	g.hasMembers = true
}

// AddData implements a best-fit-across-locations strategy: score every
// existing DataLocation, allocate from the best-scoring one, fall back to
// expanding a location in place, and only as a last resort ask the union
// for a brand-new DataLocation.
func (g *Group) AddData(lgSize int) uint32 {
	if !g.hasMembers {
		// The variant claims its own storage first, so the discriminant
		// does not take the room a shared location needs to grow into.
		defer g.parent.NewGroupAddingFirstMember()
	}
	g.hasMembers = true
	g.ensureUsage()

	bestIndex := -1
	bestScore := 0
	for i, loc := range g.parent.locations {
		score, ok := g.usage[i].score(loc, lgSize)
		if !ok {
			continue
		}
		if bestIndex == -1 || score < bestScore {
			bestIndex = i
			bestScore = score
		}
	}
	if bestIndex >= 0 {
		loc := g.parent.locations[bestIndex]
		local := g.usage[bestIndex].allocateFromHole(loc, lgSize)
		return scaledLocationOffset(loc, lgSize) + local
	}

	// Expansion fallback: try to physically grow a location (an unused one
	// to lgSize, a fully used one to one step past max(lgSizeUsed, lgSize),
	// which may be several steps) and allocate from the room that creates.
	for i, loc := range g.parent.locations {
		usage := &g.usage[i]
		if !usage.isUsed {
			if loc.TryExpandTo(lgSize) {
				local := usage.allocateFromHole(loc, lgSize)
				return scaledLocationOffset(loc, lgSize) + local
			}
			continue
		}
		if usage.lgSizeUsed == loc.lgSize && lgSize >= usage.lgSizeUsed {
			desiredUsage := max(usage.lgSizeUsed, lgSize) + 1
			if loc.TryExpandTo(desiredUsage) {
				local := usage.allocateFromHole(loc, lgSize)
				return scaledLocationOffset(loc, lgSize) + local
			}
		}
	}

	// Nothing existing could serve this request: ask the union for a
	// brand-new DataLocation sized exactly for it.
	loc := g.parent.AddNewDataLocation(lgSize)
	g.ensureUsage()
	idx := len(g.parent.locations) - 1
	g.usage[idx] = dataLocationUsage{isUsed: true, lgSizeUsed: lgSize}
	return loc.offset
}

// AddPointer reuses the parent union's already-allocated pointer slots
// first, only asking for a new one once this variant has already claimed
// every existing slot.
func (g *Group) AddPointer() uint32 {
	if !g.hasMembers {
		g.parent.NewGroupAddingFirstMember()
	}
	g.hasMembers = true

	if g.pointerUsage < len(g.parent.pointers) {
		idx := g.parent.pointers[g.pointerUsage]
		g.pointerUsage++
		return idx
	}
	idx := g.parent.AddNewPointerLocation()
	g.pointerUsage++
	return idx
}

// TryExpandData finds the DataLocation that currently holds
// (oldLgSize, oldOffset) and delegates the expansion to its usage record.
func (g *Group) TryExpandData(oldLgSize int, oldOffset uint32, factor int) bool {
	if oldLgSize+factor > holeset.NumSizes || factor < 0 {
		return false
	}
	if oldOffset%(1<<uint(factor)) != 0 {
		return false
	}
	idx, local, ok := g.findLocation(oldLgSize, oldOffset)
	if !ok {
		return false
	}
	loc := g.parent.locations[idx]
	return g.usage[idx].tryExpand(loc, oldLgSize, local, factor)
}

func (g *Group) findLocation(oldLgSize int, oldOffset uint32) (index int, local uint32, ok bool) {
	for i, loc := range g.parent.locations {
		if loc.lgSize < oldLgSize {
			continue
		}
		shift := uint(loc.lgSize - oldLgSize)
		if (oldOffset >> shift) != loc.offset {
			continue
		}
		scaled := loc.offset << shift
		return i, oldOffset - scaled, true
	}
	return 0, 0, false
}

// tryExpand grows this usage record's claim on location in place when it
// can, and otherwise defers to the hole set's own expansion.
func (u *dataLocationUsage) tryExpand(location *DataLocation, oldLgSize int, oldOffset uint32, factor int) bool {
	if oldOffset == 0 && u.lgSizeUsed == oldLgSize {
		newLgSize := oldLgSize + factor
		if newLgSize > location.lgSize {
			if !location.TryExpandTo(newLgSize) {
				return false
			}
		}
		u.lgSizeUsed = newLgSize
		return true
	}
	offset8, err := toUint8(oldOffset)
	if err != nil {
		return false
	}
	return u.holes.TryExpand(oldLgSize, offset8, factor)
}

func toUint8(v uint32) (uint8, error) {
	if v > 0xff {
		return 0, errOffsetTooWide
	}
	return uint8(v), nil
}

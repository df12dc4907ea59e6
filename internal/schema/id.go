package schema

import "fortio.org/safecast"

// GenerateGroupID derives a stable 64-bit id for a nested group/union node
// from its parent's id and its index among siblings. The mixing idiom
// (FNV-1a offset/prime, XOR-then-multiply) mirrors the fingerprint hashing
// used elsewhere in this codebase for deriving stable ids from structural
// position.
func GenerateGroupID(parentID uint64, indexAmongSiblings int) uint64 {
	const (
		fnvOffset64 = 1469598103934665603
		fnvPrime64  = 1099511628211
	)

	hash := uint64(fnvOffset64)
	mix := func(x uint64) {
		hash ^= x
		hash *= fnvPrime64
	}

	mix(parentID)
	idx, err := safecast.Conv[uint64](indexAmongSiblings)
	if err != nil {
		idx = 0
	}
	mix(idx)
	return hash
}

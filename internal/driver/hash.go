package driver

import "crypto/sha256"

// Digest is a content hash used to key the disk cache, the same 32-byte
// SHA-256 value the project package hashes module content into.
type Digest [sha256.Size]byte

// HashBytes hashes a single content blob, e.g. a struct declaration's
// canonical source text.
func HashBytes(content []byte) Digest {
	var out Digest
	sum := sha256.Sum256(content)
	copy(out[:], sum[:])
	return out
}

// CombineDigest folds deps into content, the same H(content || dep1 ||
// dep2...) construction used to build a module's aggregate hash from its
// own content plus its dependencies' hashes. Here it folds a struct's own
// source digest together with the digests of any named groups/unions or
// referenced constants that feed its layout, so changing a dependency
// invalidates the cache entry without re-hashing the whole file.
func CombineDigest(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	h.Write(content[:])
	for _, d := range deps {
		h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}

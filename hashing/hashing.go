// Package hashing provides order-sensitive content hashing built on XXH3.
// It is used to fingerprint flattened multimap contents cheaply; it is not a
// cryptographic hash.
package hashing

import (
	"encoding/binary"
	"hash"

	"github.com/zeebo/xxh3"
)

// HashFunc is a function that reduces a Hashable to a 64-bit digest.
// Sum64 is the default HashFunc. The indirection lets callers swap in a
// different hash without changing the types being hashed.
type HashFunc func(hashable Hashable) (uint64, error)

// Hashable is an interface that allows an object to feed its contents into a
// hash.Hash. Composite objects should delegate to the Hashable wrappers for
// their parts, length-prefixing variable-size parts to keep digests unambiguous.
type Hashable interface {
	UpdateHash(h hash.Hash) error
}

// New returns a fresh XXH3 hasher. The result implements hash.Hash, and its
// 64-bit digest is available through Sum64.
func New() *xxh3.Hasher {
	return xxh3.New()
}

// Sum64 returns the XXH3 digest of the given Hashable. If the Hashable fails
// to update the hash, an error is returned.
func Sum64(hashable Hashable) (uint64, error) {
	h := New()

	if err := hashable.UpdateHash(h); err != nil {
		return 0, err
	}

	return h.Sum64(), nil
}

// HashableString feeds a string's bytes into a hash, length-prefixed so that
// adjacent strings cannot collide by reassociation.
type HashableString string

func (s HashableString) String() string {
	return string(s)
}

func (s HashableString) UpdateHash(h hash.Hash) error {
	return HashableBytes(s).UpdateHash(h)
}

// HashableBytes feeds a byte slice into a hash, length-prefixed.
type HashableBytes []byte

func (b HashableBytes) UpdateHash(h hash.Hash) error {
	if err := HashableUint64(len(b)).UpdateHash(h); err != nil {
		return err
	}

	_, err := h.Write(b)

	return err
}

// HashableUint64 feeds an unsigned integer into a hash as 8 big-endian bytes.
type HashableUint64 uint64

func (u HashableUint64) UpdateHash(h hash.Hash) error {
	var buf [8]byte

	binary.BigEndian.PutUint64(buf[:], uint64(u))
	_, err := h.Write(buf[:])

	return err
}

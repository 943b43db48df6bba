package multimap

import (
	"hash"

	"github.com/amp-labs/multimap/hashing"
)

// Fingerprint returns an XXH3 digest of the multimap's flattened pair
// sequence: pair count, then each key and value in global insertion order,
// rendered through keyBytes and valueBytes. Two multimaps with identical
// flattened sequences always produce the same digest.
//
// The digest is sensitive to global interleaving, unlike Equal: it
// fingerprints the interchange representation (see Pairs), so it is suited to
// change detection on exported data, not as an equality shortcut.
func Fingerprint[K comparable, V any](
	m *ListMultimap[K, V],
	keyBytes func(K) []byte,
	valueBytes func(V) []byte,
) (uint64, error) {
	return hashing.Sum64(&flattened[K, V]{m: m, keyBytes: keyBytes, valueBytes: valueBytes})
}

// flattened adapts a multimap's global pair sequence to hashing.Hashable.
type flattened[K comparable, V any] struct {
	m          *ListMultimap[K, V]
	keyBytes   func(K) []byte
	valueBytes func(V) []byte
}

func (f *flattened[K, V]) UpdateHash(h hash.Hash) error {
	if err := hashing.HashableUint64(f.m.Len()).UpdateHash(h); err != nil {
		return err
	}

	for key, value := range f.m.Seq() {
		if err := hashing.HashableBytes(f.keyBytes(key)).UpdateHash(h); err != nil {
			return err
		}

		if err := hashing.HashableBytes(f.valueBytes(value)).UpdateHash(h); err != nil {
			return err
		}
	}

	return nil
}

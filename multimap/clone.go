package multimap

import (
	"github.com/amp-labs/multimap/compare"
)

// Clone returns a new multimap with the same per-key value sequences and the
// same global order: values of different keys retain their relative
// interleaving. Keys and values are copied as-is, not deep-copied. Indices are
// not carried over; the clone issues its own.
func (m *ListMultimap[K, V]) Clone() *ListMultimap[K, V] {
	clone := NewWithCapacity[K, V](m.KeysLen(), m.Len())

	for key, value := range m.Seq() {
		clone.Append(key, value)
	}

	return clone
}

// EqualFunc reports whether two multimaps hold the same key set with, for each
// key, the same value sequence in key-local order, using eq to compare values.
//
// Cross-key global interleaving is deliberately not compared: two maps built
// from the same per-key groups in different key orders are equal. The
// comparison walks per-key chains, so it never depends on hash iteration
// order.
func (m *ListMultimap[K, V]) EqualFunc(other *ListMultimap[K, V], eq func(a, b V) bool) bool {
	if m.KeysLen() != other.KeysLen() || m.Len() != other.Len() {
		return false
	}

	for key, entry := range m.index {
		otherEntry, ok := other.index[key]
		if !ok || otherEntry.length != entry.length {
			return false
		}

		otherCur := otherEntry.head

		for cur := entry.head; !cur.IsNone(); {
			node := m.values.MustGet(cur)
			otherNode := other.values.MustGet(otherCur)

			if !eq(node.value, otherNode.value) {
				return false
			}

			cur = node.next
			otherCur = otherNode.next
		}
	}

	return true
}

// Equal reports whether two multimaps are equal under ==, with EqualFunc's
// semantics.
func Equal[K comparable, V comparable](a, b *ListMultimap[K, V]) bool {
	return a.EqualFunc(b, func(x, y V) bool { return x == y })
}

// EqualComparable reports whether two multimaps are equal under the value
// type's own Equals method, with EqualFunc's semantics.
func EqualComparable[K comparable, V compare.Comparable[V]](a, b *ListMultimap[K, V]) bool {
	return a.EqualFunc(b, func(x, y V) bool { return x.Equals(y) })
}

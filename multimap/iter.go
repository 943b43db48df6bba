package multimap

import (
	"iter"

	"github.com/amp-labs/multimap/optional"
)

// Seq returns an iterator over all pairs in global insertion order. Each range
// over the returned iterator re-walks from the multimap's current head.
// Structurally mutating the multimap during a walk panics; use SetAt or the
// pointers from SeqMut for in-place value mutation instead.
//
// Compatible with Go 1.23+ range-over-func syntax:
//
//	for key, value := range m.Seq() { ... }
func (m *ListMultimap[K, V]) Seq() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m.values == nil {
			return
		}

		version := m.version
		cur, ok := m.values.Front()

		for ok {
			node := m.values.MustGet(cur)
			key := *m.keys.MustGet(node.keyIndex)

			if !yield(key, node.value) {
				return
			}

			if m.version != version {
				panic("multimap: structural mutation during iteration")
			}

			cur, ok = m.values.Next(cur)
		}
	}
}

// SeqMut is Seq with in-place access: it yields each key together with a
// pointer to its value. The pointers are valid only for the current iteration
// step's body; structural mutation during the walk panics.
func (m *ListMultimap[K, V]) SeqMut() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		if m.values == nil {
			return
		}

		version := m.version
		cur, ok := m.values.Front()

		for ok {
			node := m.values.MustGet(cur)
			key := *m.keys.MustGet(node.keyIndex)

			if !yield(key, &node.value) {
				return
			}

			if m.version != version {
				panic("multimap: structural mutation during iteration")
			}

			cur, ok = m.values.Next(cur)
		}
	}
}

// Keys returns an iterator over the distinct keys in first-appearance order.
// A key's position is fixed by its first value's insertion and is unaffected
// by later appends or inserts; only removing the key entirely forfeits it.
func (m *ListMultimap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		if m.keys == nil {
			return
		}

		version := m.version
		cur, ok := m.keys.Front()

		for ok {
			if !yield(*m.keys.MustGet(cur)) {
				return
			}

			if m.version != version {
				panic("multimap: structural mutation during iteration")
			}

			cur, ok = m.keys.Next(cur)
		}
	}
}

// Values returns an iterator over all values in global insertion order.
func (m *ListMultimap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, value := range m.Seq() {
			if !yield(value) {
				return
			}
		}
	}
}

// GetAll returns an iterator over the key's values in key-local order,
// regardless of how other keys' values interleave globally. An absent key
// yields nothing. Each range re-walks from the chain's current head.
func (m *ListMultimap[K, V]) GetAll(key K) iter.Seq[V] {
	return func(yield func(V) bool) {
		entry, ok := m.index[key]
		if !ok {
			return
		}

		version := m.version

		for cur := entry.head; !cur.IsNone(); {
			node := m.values.MustGet(cur)

			if !yield(node.value) {
				return
			}

			if m.version != version {
				panic("multimap: structural mutation during iteration")
			}

			cur = node.next
		}
	}
}

// GetAllMut is GetAll with in-place access, yielding pointers to the key's
// values. The pointers are valid only for the current iteration step's body.
func (m *ListMultimap[K, V]) GetAllMut(key K) iter.Seq[*V] {
	return func(yield func(*V) bool) {
		entry, ok := m.index[key]
		if !ok {
			return
		}

		version := m.version

		for cur := entry.head; !cur.IsNone(); {
			node := m.values.MustGet(cur)
			next := node.next

			if !yield(&node.value) {
				return
			}

			if m.version != version {
				panic("multimap: structural mutation during iteration")
			}

			cur = next
		}
	}
}

// Pairs flattens the multimap to a slice of pairs in global insertion order.
// Feeding the slice through FromPairs reconstructs an equal multimap; this is
// the interchange representation used by the JSON and YAML adapters.
func (m *ListMultimap[K, V]) Pairs() []KeyValuePair[K, V] {
	pairs := make([]KeyValuePair[K, V], 0, m.Len())

	for key, value := range m.Seq() {
		pairs = append(pairs, KeyValuePair[K, V]{Key: key, Value: value})
	}

	return pairs
}

// Drain empties the multimap and returns an iterator over the removed pairs
// in global insertion order. The pairs are detached eagerly, so the returned
// iterator is unaffected by later mutation of the multimap.
func (m *ListMultimap[K, V]) Drain() iter.Seq2[K, V] {
	pairs := m.Pairs()
	m.Clear()

	return func(yield func(K, V) bool) {
		for _, pair := range pairs {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// First returns the globally first pair, or None for an empty multimap.
func (m *ListMultimap[K, V]) First() optional.Value[KeyValuePair[K, V]] {
	if m.values == nil {
		return optional.None[KeyValuePair[K, V]]()
	}

	front, ok := m.values.Front()
	if !ok {
		return optional.None[KeyValuePair[K, V]]()
	}

	pair, err := m.At(front)
	if err != nil {
		return optional.None[KeyValuePair[K, V]]()
	}

	return optional.Some(pair)
}

// Last returns the globally last pair, or None for an empty multimap.
func (m *ListMultimap[K, V]) Last() optional.Value[KeyValuePair[K, V]] {
	if m.values == nil {
		return optional.None[KeyValuePair[K, V]]()
	}

	back, ok := m.values.Back()
	if !ok {
		return optional.None[KeyValuePair[K, V]]()
	}

	pair, err := m.At(back)
	if err != nil {
		return optional.None[KeyValuePair[K, V]]()
	}

	return optional.Some(pair)
}

// FindFirst returns the globally first pair satisfying the predicate, or None
// if no pair does.
func (m *ListMultimap[K, V]) FindFirst(predicate func(key K, value V) bool) optional.Value[KeyValuePair[K, V]] {
	for key, value := range m.Seq() {
		if predicate(key, value) {
			return optional.Some(KeyValuePair[K, V]{Key: key, Value: value})
		}
	}

	return optional.None[KeyValuePair[K, V]]()
}

// Collect builds a ListMultimap by appending every pair yielded by seq in
// iteration order.
func Collect[K comparable, V any](seq iter.Seq2[K, V]) *ListMultimap[K, V] {
	m := New[K, V]()
	m.Extend(seq)

	return m
}

// FromPairs builds a ListMultimap by appending the given pairs in slice
// order. It is the inverse of Pairs.
func FromPairs[K comparable, V any](pairs []KeyValuePair[K, V]) *ListMultimap[K, V] {
	m := NewWithCapacity[K, V](0, len(pairs))

	for _, pair := range pairs {
		m.Append(pair.Key, pair.Value)
	}

	return m
}

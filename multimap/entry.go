package multimap

import (
	"github.com/amp-labs/multimap/assert"
)

// Entry is a short-lived view of one key's slot in the multimap, obtained from
// ListMultimap.Entry. It caches the initial hash lookup so the usual
// check-then-mutate sequences touch the index once.
//
// An Entry is invalidated by any structural mutation of the multimap other
// than its own methods; using a stale Entry panics. Do not retain an Entry
// beyond the mutation it was created for.
type Entry[K comparable, V any] struct {
	m        *ListMultimap[K, V]
	key      K
	entry    keyEntry
	occupied bool
	version  uint64
}

// Entry returns a view of the key's slot, vacant or occupied, for chained
// conditional mutation:
//
//	m.Entry("visits").AndModify(func(n *int) { *n++ }).OrInsert(1)
func (m *ListMultimap[K, V]) Entry(key K) *Entry[K, V] {
	m.init()

	entry, occupied := m.index[key]

	return &Entry[K, V]{
		m:        m,
		key:      key,
		entry:    entry,
		occupied: occupied,
		version:  m.version,
	}
}

// Key returns the key this entry views.
func (e *Entry[K, V]) Key() K {
	return e.key
}

// Occupied reports whether the key currently has any values.
func (e *Entry[K, V]) Occupied() bool {
	e.check()

	return e.occupied
}

// Len returns the number of values for the key, 0 when vacant.
func (e *Entry[K, V]) Len() int {
	e.check()

	if !e.occupied {
		return 0
	}

	return e.entry.length
}

// Get returns the key's first value, by key-local order, when occupied.
func (e *Entry[K, V]) Get() (V, bool) {
	e.check()

	if !e.occupied {
		var zero V

		return zero, false
	}

	return e.m.values.MustGet(e.entry.head).value, true
}

// AndModify applies f to the key's first value in place when occupied, and
// does nothing when vacant. Returns the entry for chaining.
func (e *Entry[K, V]) AndModify(f func(value *V)) *Entry[K, V] {
	e.check()

	if e.occupied {
		f(&e.m.values.MustGet(e.entry.head).value)
	}

	return e
}

// OrInsert appends value when the key is vacant, then returns a pointer to the
// key's first value. The pointer is valid until the next structural mutation.
func (e *Entry[K, V]) OrInsert(value V) *V {
	e.check()

	if !e.occupied {
		e.m.Append(e.key, value)
		e.refresh()
	}

	return &e.m.values.MustGet(e.entry.head).value
}

// OrInsertWith is OrInsert with a lazily computed value; f runs only when the
// key is vacant.
func (e *Entry[K, V]) OrInsertWith(f func() V) *V {
	e.check()

	if !e.occupied {
		e.m.Append(e.key, f())
		e.refresh()
	}

	return &e.m.values.MustGet(e.entry.head).value
}

// Append adds a value at the end of the key's values, creating the key when
// vacant, and returns the new pair's index. The entry remains usable.
func (e *Entry[K, V]) Append(value V) Index {
	e.check()

	index, _ := e.m.Append(e.key, value)
	e.refresh()

	return index
}

// Insert performs the set-like replace for the key and returns the displaced
// values in their prior key-local order. The entry remains usable.
func (e *Entry[K, V]) Insert(value V) []V {
	e.check()

	displaced := e.m.InsertAll(e.key, value)
	e.refresh()

	return displaced
}

// check panics if the multimap was structurally mutated since this entry's
// cached lookup; the cached chain indices would be unreliable past that point.
func (e *Entry[K, V]) check() {
	assert.True(e.version == e.m.version, "multimap: entry handle invalidated by structural mutation")
}

// refresh re-reads the key's slot after a mutation performed through this
// entry, keeping the cached view and version current.
func (e *Entry[K, V]) refresh() {
	e.entry, e.occupied = e.m.index[e.key]
	e.version = e.m.version
}

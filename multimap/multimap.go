// Package multimap provides ListMultimap, an insertion-ordered multimap: a
// container that associates each key with a list of values while preserving
// one global insertion order across all key-value pairs, not just within a
// key's own values.
//
// Lookup by key is hash-map fast, while iteration is deterministic: Seq walks
// pairs in the order they were appended, GetAll walks one key's values in the
// order they were appended for that key, and Keys walks unique keys in
// first-appearance order. This combination suits callers that must reproduce
// observed ordering exactly, such as protocol header processing or repeated
// configuration keys.
//
// Storage is two arenas (see the arena package) threaded by two independent
// link sets: the arenas own the global order, and each value node carries
// key-local links owned by this package. Keys and values are held exactly once;
// value nodes refer to their key by index.
//
// A ListMultimap is not safe for concurrent use; callers sharing one across
// goroutines must provide their own mutual exclusion. Iterators and pointers
// obtained from the map are invalidated by structural mutation: iterating
// while mutating panics, in the manner of Go's built-in map.
package multimap

import (
	"iter"

	"github.com/amp-labs/multimap/arena"
	"github.com/amp-labs/multimap/assert"
)

// Index is a stable handle to one (key, value) pair in a ListMultimap. It
// remains valid until that specific pair is removed, regardless of unrelated
// insertions and removals; once removed, it resolves to arena.ErrStaleIndex
// rather than to whatever pair later reuses the storage.
type Index = arena.Index

// KeyValuePair is one (key, value) occurrence, as produced by Pairs, First,
// Last, and FindFirst, and consumed by FromPairs.
type KeyValuePair[K any, V any] struct {
	Key   K
	Value V
}

// keyEntry is the per-unique-key descriptor held in the hash index. It exists
// iff the key currently has at least one value (length > 0); the last removal
// for a key deletes its entry atomically.
type keyEntry struct {
	keyIndex arena.Index // position of the key in the key arena
	head     arena.Index // first value in key-local order
	tail     arena.Index // last value in key-local order
	length   int
}

// valueEntry is the payload stored per (key, value) pair in the value arena.
// The prev/next fields are the key-local chain links; the global links are
// owned by the arena and never appear here.
type valueEntry[V any] struct {
	value    V
	keyIndex arena.Index
	prev     arena.Index
	next     arena.Index
}

// ListMultimap is an insertion-ordered multimap from K to lists of V.
// See the package documentation for the ordering model.
//
// The zero ListMultimap is empty and ready to use; New and NewWithCapacity
// exist for symmetry and pre-sizing.
type ListMultimap[K comparable, V any] struct {
	keys    *arena.Arena[K]
	index   map[K]keyEntry
	values  *arena.Arena[valueEntry[V]]
	version uint64
}

// New creates an empty ListMultimap with no initial capacity.
func New[K comparable, V any]() *ListMultimap[K, V] {
	return NewWithCapacity[K, V](0, 0)
}

// NewWithCapacity creates an empty ListMultimap able to hold at least
// keyCapacity distinct keys and valueCapacity values without reallocating.
func NewWithCapacity[K comparable, V any](keyCapacity, valueCapacity int) *ListMultimap[K, V] {
	return &ListMultimap[K, V]{
		keys:   arena.NewWithCapacity[K](keyCapacity),
		index:  make(map[K]keyEntry, keyCapacity),
		values: arena.NewWithCapacity[valueEntry[V]](valueCapacity),
	}
}

// init makes the zero value usable on first mutation.
func (m *ListMultimap[K, V]) init() {
	if m.index == nil {
		m.index = make(map[K]keyEntry)
		m.keys = arena.New[K]()
		m.values = arena.New[valueEntry[V]]()
	}
}

// Len returns the number of values in the multimap, across all keys.
func (m *ListMultimap[K, V]) Len() int {
	if m.values == nil {
		return 0
	}

	return m.values.Len()
}

// KeysLen returns the number of distinct keys in the multimap.
func (m *ListMultimap[K, V]) KeysLen() int {
	return len(m.index)
}

// IsEmpty reports whether the multimap holds no values.
func (m *ListMultimap[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

// Clear removes all keys and values, retaining allocated capacity.
// All previously returned indices become stale.
func (m *ListMultimap[K, V]) Clear() {
	if m.index == nil {
		return
	}

	m.keys.Clear()
	m.values.Clear()
	clear(m.index)
	m.version++
}

// Contains reports whether the key has at least one value.
func (m *ListMultimap[K, V]) Contains(key K) bool {
	_, ok := m.index[key]

	return ok
}

// EntryLen returns the number of values currently associated with the key,
// or 0 if the key is absent. O(1).
func (m *ListMultimap[K, V]) EntryLen(key K) int {
	return m.index[key].length
}

// Append adds a value at the end of the key's values and at the global tail,
// never disturbing existing values. It returns the new pair's index and
// whether the key already had values. Amortized O(1).
func (m *ListMultimap[K, V]) Append(key K, value V) (Index, bool) {
	m.init()

	entry, exists := m.index[key]
	if !exists {
		keyIndex := m.keys.PushBack(key)
		index := m.values.PushBack(valueEntry[V]{value: value, keyIndex: keyIndex})
		m.index[key] = keyEntry{keyIndex: keyIndex, head: index, tail: index, length: 1}
		m.version++

		return index, false
	}

	index := m.values.PushBack(valueEntry[V]{value: value, keyIndex: entry.keyIndex, prev: entry.tail})
	m.values.MustGet(entry.tail).next = index
	entry.tail = index
	entry.length++
	m.index[key] = entry
	m.version++

	return index, true
}

// Insert performs a set-like replace: the key's values become exactly [value].
// It returns the first displaced value, by key-local order, and whether any
// value was displaced. For an unseen key it behaves as Append.
//
// The key keeps the global position of its first value across repeated
// inserts; only an intervening removal of the key forfeits the position.
// Amortized O(1) plus O(k) for the k displaced values.
func (m *ListMultimap[K, V]) Insert(key K, value V) (V, bool) {
	displaced := m.InsertAll(key, value)
	if len(displaced) == 0 {
		var zero V

		return zero, false
	}

	return displaced[0], true
}

// InsertAll performs a set-like replace and returns every displaced value in
// its prior key-local order. The slice is nil for an unseen key.
// See Insert for the global-position guarantee.
func (m *ListMultimap[K, V]) InsertAll(key K, value V) []V {
	m.init()

	entry, exists := m.index[key]
	if !exists {
		m.Append(key, value)

		return nil
	}

	// Splice the replacement right after the old head so it takes over the
	// key's original global position once the old chain is gone.
	replacement, err := m.values.InsertAfter(entry.head, valueEntry[V]{value: value, keyIndex: entry.keyIndex})
	assert.NoError(err)

	displaced := make([]V, 0, entry.length)

	for cur := entry.head; !cur.IsNone(); {
		node := m.values.MustGet(cur)
		next := node.next

		removed, err := m.values.Remove(cur)
		assert.NoError(err)

		displaced = append(displaced, removed.value)
		cur = next
	}

	m.index[key] = keyEntry{keyIndex: entry.keyIndex, head: replacement, tail: replacement, length: 1}
	m.version++

	return displaced
}

// Get returns the first value, by key-local order, associated with the key.
// O(1).
func (m *ListMultimap[K, V]) Get(key K) (V, bool) {
	entry, ok := m.index[key]
	if !ok {
		var zero V

		return zero, false
	}

	return m.values.MustGet(entry.head).value, true
}

// GetMut returns a pointer to the first value associated with the key, for
// in-place mutation. The pointer is valid until the next structural mutation
// of the multimap and must not be retained across one.
func (m *ListMultimap[K, V]) GetMut(key K) (*V, bool) {
	entry, ok := m.index[key]
	if !ok {
		return nil, false
	}

	return &m.values.MustGet(entry.head).value, true
}

// Remove removes and returns the first value, by key-local order, associated
// with the key, promoting the key's next value to the front. Removing the last
// value deletes the key entirely. O(1).
func (m *ListMultimap[K, V]) Remove(key K) (V, bool) {
	entry, ok := m.index[key]
	if !ok {
		var zero V

		return zero, false
	}

	return m.removeNode(entry.head), true
}

// RemoveAll removes every value associated with the key and returns them in
// key-local order, or nil if the key is absent. O(k) for k values.
func (m *ListMultimap[K, V]) RemoveAll(key K) []V {
	entry, ok := m.index[key]
	if !ok {
		return nil
	}

	removed := make([]V, 0, entry.length)

	for cur := entry.head; !cur.IsNone(); {
		node := m.values.MustGet(cur)
		next := node.next

		value, err := m.values.Remove(cur)
		assert.NoError(err)

		removed = append(removed, value.value)
		cur = next
	}

	_, err := m.keys.Remove(entry.keyIndex)
	assert.NoError(err)

	delete(m.index, key)
	m.version++

	return removed
}

// At resolves an index returned by Append back to its pair. A removed pair's
// index reports arena.ErrStaleIndex rather than resolving to an unrelated
// pair that reused the storage.
func (m *ListMultimap[K, V]) At(index Index) (KeyValuePair[K, V], error) {
	if m.values == nil {
		return KeyValuePair[K, V]{}, arena.ErrInvalidIndex
	}

	node, err := m.values.Get(index)
	if err != nil {
		return KeyValuePair[K, V]{}, err
	}

	return KeyValuePair[K, V]{Key: *m.keys.MustGet(node.keyIndex), Value: node.value}, nil
}

// SetAt overwrites the value of the pair identified by index in place. The
// pair keeps its key and both of its order positions. Not a structural
// mutation: live iterators are unaffected.
func (m *ListMultimap[K, V]) SetAt(index Index, value V) error {
	if m.values == nil {
		return arena.ErrInvalidIndex
	}

	node, err := m.values.Get(index)
	if err != nil {
		return err
	}

	node.value = value

	return nil
}

// RemoveAt removes the single pair identified by index from both orders and
// returns its value. Removing a key's last value deletes the key. O(1).
func (m *ListMultimap[K, V]) RemoveAt(index Index) (V, error) {
	if m.values == nil {
		var zero V

		return zero, arena.ErrInvalidIndex
	}

	if _, err := m.values.Get(index); err != nil {
		var zero V

		return zero, err
	}

	return m.removeNode(index), nil
}

// Retain keeps only the pairs for which predicate returns true, removing the
// rest. The predicate may mutate retained values through the pointer. One pass
// in global order, O(1) per removal, and the relative order of retained pairs
// is unchanged.
func (m *ListMultimap[K, V]) Retain(predicate func(key K, value *V) bool) {
	if m.values == nil {
		return
	}

	cur, ok := m.values.Front()

	for ok {
		next, nextOK := m.values.Next(cur)
		node := m.values.MustGet(cur)
		key := *m.keys.MustGet(node.keyIndex)

		if !predicate(key, &node.value) {
			m.removeNode(cur)
		}

		cur, ok = next, nextOK
	}
}

// Extend appends every pair yielded by seq, in iteration order.
func (m *ListMultimap[K, V]) Extend(seq iter.Seq2[K, V]) {
	for key, value := range seq {
		m.Append(key, value)
	}
}

// removeNode detaches one value node from its key-local chain, maintains or
// deletes the owning key's entry, and frees the node's slot. This is the
// single place the key lifecycle invariant (entry exists iff length > 0) is
// enforced after a removal.
func (m *ListMultimap[K, V]) removeNode(index arena.Index) V {
	node := m.values.MustGet(index)
	key := *m.keys.MustGet(node.keyIndex)
	entry, ok := m.index[key]
	assert.True(ok, "multimap: value node with no key entry")

	if node.prev.IsNone() {
		entry.head = node.next
	} else {
		m.values.MustGet(node.prev).next = node.next
	}

	if node.next.IsNone() {
		entry.tail = node.prev
	} else {
		m.values.MustGet(node.next).prev = node.prev
	}

	entry.length--

	if entry.length == 0 {
		_, err := m.keys.Remove(entry.keyIndex)
		assert.NoError(err)

		delete(m.index, key)
	} else {
		m.index[key] = entry
	}

	value, err := m.values.Remove(index)
	assert.NoError(err)

	m.version++

	return value.value
}

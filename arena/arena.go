// Package arena provides a vector-backed slot pool with stable, generation-tagged
// indices and a doubly linked traversal order threaded through its live slots.
//
// The arena is the storage primitive underneath the multimap package: elements get
// O(1) insertion anywhere in the maintained order, O(1) removal by index, and O(1)
// direct access, while freed slots are recycled through a free list. Indices are
// composite (slot, generation) handles, so a handle held across a remove-and-reuse
// of its slot is rejected with ErrStaleIndex instead of silently addressing an
// unrelated element.
//
// The arena has no knowledge of keys or multimap semantics; its payload type is
// opaque. It is not safe for concurrent use.
package arena

import (
	"errors"
	"iter"
)

var (
	// ErrInvalidIndex is returned when an index does not reference any slot in the
	// arena: the zero Index, a negative slot, or a slot beyond the backing vector.
	ErrInvalidIndex = errors.New("arena: invalid index")

	// ErrStaleIndex is returned when an index references a slot that was valid at
	// some point but has since been removed, and possibly reused for a different
	// element. The index can never become valid again.
	ErrStaleIndex = errors.New("arena: stale index")
)

// none marks the absence of a neighbor in the internal link fields.
const none = -1

// Index is a stable handle to one element in an Arena. It stays valid until that
// specific element is removed, regardless of unrelated insertions and removals.
//
// The zero Index references nothing; IsNone reports true for it. Indices are only
// meaningful for the arena that produced them.
type Index struct {
	slot       int
	generation uint64
}

// IsNone reports whether the index is the zero Index, referencing nothing.
func (i Index) IsNone() bool {
	return i.generation == 0
}

// slot is one storage position in the backing vector. A slot is either occupied
// (holding a value and its order links) or vacant (a member of the free list).
// The generation records which allocation currently occupies the slot, which is
// what invalidates handles to its previous occupants.
type slot[T any] struct {
	value      T
	generation uint64
	prev, next int // order links while occupied
	nextFree   int // free list link while vacant
	occupied   bool
}

// Arena is a slot pool maintaining one doubly linked order through its live
// elements. The backing vector only ever grows by appending slots, so existing
// indices are never moved by growth; Pack is the sole re-indexing operation.
//
// The zero value is not ready to use; call New or NewWithCapacity.
type Arena[T any] struct {
	slots     []slot[T]
	head      int
	tail      int
	firstFree int
	length    int
	version   uint64

	// generation is a monotonic allocation counter shared by all slots, so an
	// index can never collide with a later occupant of its slot, even across
	// Clear.
	generation uint64
}

// New creates an empty arena with no initial capacity.
func New[T any]() *Arena[T] {
	return NewWithCapacity[T](0)
}

// NewWithCapacity creates an empty arena able to hold at least capacity elements
// without growing the backing vector.
func NewWithCapacity[T any](capacity int) *Arena[T] {
	return &Arena[T]{
		slots:     make([]slot[T], 0, capacity),
		head:      none,
		tail:      none,
		firstFree: none,
	}
}

// Len returns the number of live elements in the arena.
func (a *Arena[T]) Len() int {
	return a.length
}

// Cap returns the number of elements the arena can hold without growing.
func (a *Arena[T]) Cap() int {
	return cap(a.slots)
}

// Reserve grows the backing vector so that at least additional more elements can
// be stored without another allocation. Existing indices are unaffected.
func (a *Arena[T]) Reserve(additional int) {
	if additional <= 0 {
		return
	}

	free := cap(a.slots) - len(a.slots) + a.freeCount()
	if free >= additional {
		return
	}

	grown := make([]slot[T], len(a.slots), len(a.slots)+additional-free)
	copy(grown, a.slots)
	a.slots = grown
}

// Clear removes all elements from the arena. All previously returned indices
// become stale. Capacity is retained.
func (a *Arena[T]) Clear() {
	a.slots = a.slots[:0]
	a.head = none
	a.tail = none
	a.firstFree = none
	a.length = 0
	a.version++
}

// PushBack inserts value at the end of the arena's order and returns its index.
// Amortized O(1).
func (a *Arena[T]) PushBack(value T) Index {
	idx := a.allocate(value)
	s := &a.slots[idx]
	s.prev = a.tail
	s.next = none

	if a.tail != none {
		a.slots[a.tail].next = idx
	} else {
		a.head = idx
	}

	a.tail = idx
	a.length++
	a.version++

	return Index{slot: idx, generation: s.generation}
}

// InsertAfter inserts value immediately after the element identified by anchor
// in the arena's order and returns the new element's index. O(1).
func (a *Arena[T]) InsertAfter(anchor Index, value T) (Index, error) {
	if err := a.check(anchor); err != nil {
		return Index{}, err
	}

	idx := a.allocate(value)
	anchorSlot := &a.slots[anchor.slot]
	s := &a.slots[idx]
	s.prev = anchor.slot
	s.next = anchorSlot.next

	if anchorSlot.next != none {
		a.slots[anchorSlot.next].prev = idx
	} else {
		a.tail = idx
	}

	anchorSlot.next = idx
	a.length++
	a.version++

	return Index{slot: idx, generation: s.generation}, nil
}

// Remove unlinks the element identified by index from the arena's order, recycles
// its slot, and returns the removed value. O(1).
func (a *Arena[T]) Remove(index Index) (T, error) {
	var zero T

	if err := a.check(index); err != nil {
		return zero, err
	}

	s := &a.slots[index.slot]

	if s.prev != none {
		a.slots[s.prev].next = s.next
	} else {
		a.head = s.next
	}

	if s.next != none {
		a.slots[s.next].prev = s.prev
	} else {
		a.tail = s.prev
	}

	value := s.value
	s.value = zero
	s.occupied = false
	s.nextFree = a.firstFree
	a.firstFree = index.slot
	a.length--
	a.version++

	return value, nil
}

// Get returns a pointer to the element identified by index. The pointer is valid
// for reading and in-place mutation until the next structural mutation of the
// arena; it must not be retained across one.
func (a *Arena[T]) Get(index Index) (*T, error) {
	if err := a.check(index); err != nil {
		return nil, err
	}

	return &a.slots[index.slot].value, nil
}

// MustGet is Get for indices the caller knows to be live, such as indices held
// inside a structure whose invariants guarantee validity. It panics on an invalid
// or stale index.
func (a *Arena[T]) MustGet(index Index) *T {
	value, err := a.Get(index)
	if err != nil {
		panic(err)
	}

	return value
}

// Front returns the index of the first element in the arena's order.
// The second return value is false if the arena is empty.
func (a *Arena[T]) Front() (Index, bool) {
	if a.head == none {
		return Index{}, false
	}

	return Index{slot: a.head, generation: a.slots[a.head].generation}, true
}

// Back returns the index of the last element in the arena's order.
// The second return value is false if the arena is empty.
func (a *Arena[T]) Back() (Index, bool) {
	if a.tail == none {
		return Index{}, false
	}

	return Index{slot: a.tail, generation: a.slots[a.tail].generation}, true
}

// Next returns the index of the element following index in the arena's order.
// The second return value is false at the end of the order or for a dead index.
func (a *Arena[T]) Next(index Index) (Index, bool) {
	if a.check(index) != nil {
		return Index{}, false
	}

	next := a.slots[index.slot].next
	if next == none {
		return Index{}, false
	}

	return Index{slot: next, generation: a.slots[next].generation}, true
}

// Prev returns the index of the element preceding index in the arena's order.
// The second return value is false at the start of the order or for a dead index.
func (a *Arena[T]) Prev(index Index) (Index, bool) {
	if a.check(index) != nil {
		return Index{}, false
	}

	prev := a.slots[index.slot].prev
	if prev == none {
		return Index{}, false
	}

	return Index{slot: prev, generation: a.slots[prev].generation}, true
}

// Seq returns an iterator over the live elements in the arena's order, yielding
// each element's index and a copy of its value. The walk starts from the current
// head each time the returned iterator is ranged over. Structurally mutating the
// arena during a walk panics.
//
// Compatible with Go 1.23+ range-over-func syntax:
//
//	for index, value := range a.Seq() { ... }
func (a *Arena[T]) Seq() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		version := a.version

		for cur := a.head; cur != none; {
			s := &a.slots[cur]
			if !yield(Index{slot: cur, generation: s.generation}, s.value) {
				return
			}

			if a.version != version {
				panic("arena: structural mutation during iteration")
			}

			cur = s.next
		}
	}
}

// Pack rebuilds the arena so that live elements occupy a contiguous prefix of a
// fresh backing vector with capacity at least minCapacity, preserving their
// order. Every existing index is invalidated; the returned map translates each
// old index to its replacement.
//
// Panics if minCapacity is less than the current length.
func (a *Arena[T]) Pack(minCapacity int) map[Index]Index {
	if minCapacity < a.length {
		panic("arena: cannot pack below current length")
	}

	remap := make(map[Index]Index, a.length)
	packed := NewWithCapacity[T](minCapacity)
	// Continue the generation sequence so no pre-pack index can collide with a
	// packed slot's occupant.
	packed.generation = a.generation

	for cur := a.head; cur != none; cur = a.slots[cur].next {
		s := &a.slots[cur]
		old := Index{slot: cur, generation: s.generation}
		remap[old] = packed.PushBack(s.value)
	}

	a.slots = packed.slots
	a.head = packed.head
	a.tail = packed.tail
	a.firstFree = packed.firstFree
	a.length = packed.length
	a.generation = packed.generation
	a.version++

	return remap
}

// allocate claims a slot for value, reusing the free list when possible, and
// returns its position. Link fields are left for the caller to wire.
func (a *Arena[T]) allocate(value T) int {
	a.generation++

	if a.firstFree != none {
		idx := a.firstFree
		s := &a.slots[idx]
		a.firstFree = s.nextFree
		s.value = value
		s.generation = a.generation
		s.occupied = true
		s.nextFree = none

		return idx
	}

	a.slots = append(a.slots, slot[T]{
		value:      value,
		generation: a.generation,
		occupied:   true,
		nextFree:   none,
	})

	return len(a.slots) - 1
}

// check classifies an index against the current arena state.
func (a *Arena[T]) check(index Index) error {
	if index.IsNone() || index.slot < 0 || index.slot >= len(a.slots) {
		return ErrInvalidIndex
	}

	s := &a.slots[index.slot]
	if !s.occupied || s.generation != index.generation {
		return ErrStaleIndex
	}

	return nil
}

// freeCount walks the free list. Only used by Reserve, which is not a hot path.
func (a *Arena[T]) freeCount() int {
	count := 0
	for cur := a.firstFree; cur != none; cur = a.slots[cur].nextFree {
		count++
	}

	return count
}

package multimap

// ReserveKeys grows the key storage so that at least additional more distinct
// keys can be stored without reallocating. Existing indices are unaffected.
func (m *ListMultimap[K, V]) ReserveKeys(additional int) {
	m.init()
	m.keys.Reserve(additional)
}

// ReserveValues grows the value storage so that at least additional more
// values can be stored without reallocating. Existing indices are unaffected.
func (m *ListMultimap[K, V]) ReserveValues(additional int) {
	m.init()
	m.values.Reserve(additional)
}

// KeysCapacity returns the number of distinct keys the multimap can hold
// without reallocating. This is a lower bound.
func (m *ListMultimap[K, V]) KeysCapacity() int {
	if m.keys == nil {
		return 0
	}

	return m.keys.Cap()
}

// ValuesCapacity returns the number of values the multimap can hold without
// reallocating. This is a lower bound.
func (m *ListMultimap[K, V]) ValuesCapacity() int {
	if m.values == nil {
		return 0
	}

	return m.values.Cap()
}

// PackTo rebuilds the multimap's storage for maximum spatial locality with the
// given capacities, which may shrink or grow the backing vectors. Both orders
// and all contents are preserved; every previously returned Index becomes
// stale.
//
// Panics if either capacity is below the corresponding current length.
func (m *ListMultimap[K, V]) PackTo(keyCapacity, valueCapacity int) {
	if keyCapacity < m.KeysLen() {
		panic("multimap: cannot pack keys below current length")
	}

	if valueCapacity < m.Len() {
		panic("multimap: cannot pack values below current length")
	}

	m.init()

	keyRemap := m.keys.Pack(keyCapacity)
	valueRemap := m.values.Pack(valueCapacity)

	// Both arenas now hold the same nodes at fresh indices; rewrite every
	// stored index through the remaps.
	cur, ok := m.values.Front()
	for ok {
		node := m.values.MustGet(cur)
		node.keyIndex = keyRemap[node.keyIndex]

		if !node.prev.IsNone() {
			node.prev = valueRemap[node.prev]
		}

		if !node.next.IsNone() {
			node.next = valueRemap[node.next]
		}

		cur, ok = m.values.Next(cur)
	}

	for key, entry := range m.index {
		entry.keyIndex = keyRemap[entry.keyIndex]
		entry.head = valueRemap[entry.head]
		entry.tail = valueRemap[entry.tail]
		m.index[key] = entry
	}

	m.version++
}

// PackToFit is PackTo with capacities exactly matching the current lengths.
func (m *ListMultimap[K, V]) PackToFit() {
	m.PackTo(m.KeysLen(), m.Len())
}

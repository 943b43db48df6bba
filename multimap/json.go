package multimap

import (
	"encoding/json"
	"fmt"
)

// The interchange representation for a multimap is a flat sequence of
// [key, value] tuples in global insertion order; decoding rebuilds the
// structure by sequential Append, which reproduces both the key-local
// sub-orders and the relative key interleaving exactly. A JSON object cannot
// serve here: it forbids neither duplicate keys nor reordering, but offers no
// portable guarantee of either.

// MarshalJSON encodes the multimap as a JSON array of [key, value] pair
// arrays in global insertion order. It implements json.Marshaler.
func (m *ListMultimap[K, V]) MarshalJSON() ([]byte, error) {
	pairs := make([][2]any, 0, m.Len())

	for key, value := range m.Seq() {
		pairs = append(pairs, [2]any{key, value})
	}

	return json.Marshal(pairs)
}

// UnmarshalJSON decodes a JSON array of [key, value] pair arrays, replacing
// the multimap's contents. It implements json.Unmarshaler.
func (m *ListMultimap[K, V]) UnmarshalJSON(data []byte) error {
	var pairs [][2]json.RawMessage

	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("multimap: decode pair sequence: %w", err)
	}

	m.init()
	m.Clear()
	m.ReserveValues(len(pairs))

	for i, pair := range pairs {
		var key K

		if err := json.Unmarshal(pair[0], &key); err != nil {
			return fmt.Errorf("multimap: decode key of pair %d: %w", i, err)
		}

		var value V

		if err := json.Unmarshal(pair[1], &value); err != nil {
			return fmt.Errorf("multimap: decode value of pair %d: %w", i, err)
		}

		m.Append(key, value)
	}

	return nil
}

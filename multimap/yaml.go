package multimap

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMalformedPairs is returned when a YAML document being decoded into a
// multimap is not a sequence of two-element [key, value] sequences.
var ErrMalformedPairs = errors.New("multimap: malformed pair sequence")

// MarshalYAML encodes the multimap as a YAML sequence of [key, value] pair
// sequences in global insertion order, the same shape as the JSON adapter.
// It implements yaml.Marshaler.
func (m *ListMultimap[K, V]) MarshalYAML() (any, error) {
	pairs := make([][2]any, 0, m.Len())

	for key, value := range m.Seq() {
		pairs = append(pairs, [2]any{key, value})
	}

	return pairs, nil
}

// UnmarshalYAML decodes a YAML sequence of [key, value] pair sequences,
// replacing the multimap's contents. Decoding is node-level so pair order is
// taken from the document, never from an intermediate map.
// It implements yaml.Unmarshaler.
func (m *ListMultimap[K, V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("%w: expected a sequence, got %s", ErrMalformedPairs, yamlKind(node.Kind))
	}

	m.init()
	m.Clear()
	m.ReserveValues(len(node.Content))

	for i, item := range node.Content {
		if item.Kind != yaml.SequenceNode || len(item.Content) != 2 {
			return fmt.Errorf("%w: pair %d is not a two-element sequence", ErrMalformedPairs, i)
		}

		var key K

		if err := item.Content[0].Decode(&key); err != nil {
			return fmt.Errorf("multimap: decode key of pair %d: %w", i, err)
		}

		var value V

		if err := item.Content[1].Decode(&value); err != nil {
			return fmt.Errorf("multimap: decode value of pair %d: %w", i, err)
		}

		m.Append(key, value)
	}

	return nil
}

// yamlKind names a yaml.Kind for error messages.
func yamlKind(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

package hashing_test

import (
	"errors"
	"hash"
	"testing"

	"github.com/amp-labs/multimap/hashing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum64(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		a, err := hashing.Sum64(hashing.HashableString("hello"))
		require.NoError(t, err)

		b, err := hashing.Sum64(hashing.HashableString("hello"))
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})

	t.Run("different inputs differ", func(t *testing.T) {
		t.Parallel()

		a, err := hashing.Sum64(hashing.HashableString("hello"))
		require.NoError(t, err)

		b, err := hashing.Sum64(hashing.HashableString("world"))
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("string and equal bytes hash alike", func(t *testing.T) {
		t.Parallel()

		a, err := hashing.Sum64(hashing.HashableString("hello"))
		require.NoError(t, err)

		b, err := hashing.Sum64(hashing.HashableBytes("hello"))
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})

	t.Run("propagates hashable errors", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("update failed")

		_, err := hashing.Sum64(failingHashable{err: wantErr})
		assert.ErrorIs(t, err, wantErr)
	})
}

func TestLengthPrefixing(t *testing.T) {
	t.Parallel()

	// Without prefixing, ("ab","c") and ("a","bc") would feed identical bytes.
	a, err := hashing.Sum64(concat{"ab", "c"})
	require.NoError(t, err)

	b, err := hashing.Sum64(concat{"a", "bc"})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashableUint64(t *testing.T) {
	t.Parallel()

	a, err := hashing.Sum64(hashing.HashableUint64(1))
	require.NoError(t, err)

	b, err := hashing.Sum64(hashing.HashableUint64(2))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

type concat []string

func (c concat) UpdateHash(h hash.Hash) error {
	for _, s := range c {
		if err := hashing.HashableString(s).UpdateHash(h); err != nil {
			return err
		}
	}

	return nil
}

type failingHashable struct {
	err error
}

func (f failingHashable) UpdateHash(hash.Hash) error {
	return f.err
}

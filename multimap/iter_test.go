package multimap_test

import (
	"testing"

	"github.com/amp-labs/multimap/multimap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *multimap.ListMultimap[string, int] {
	m := multimap.New[string, int]()
	m.Append("a", 1)
	m.Append("b", 10)
	m.Append("a", 2)
	m.Append("c", 100)
	m.Append("b", 20)

	return m
}

func TestListMultimap_Seq(t *testing.T) {
	t.Parallel()

	t.Run("walks pairs in global order", func(t *testing.T) {
		t.Parallel()

		m := sample()

		var got []multimap.KeyValuePair[string, int]
		for key, value := range m.Seq() {
			got = append(got, pair(key, value))
		}

		assert.Equal(t, []multimap.KeyValuePair[string, int]{
			pair("a", 1), pair("b", 10), pair("a", 2), pair("c", 100), pair("b", 20),
		}, got)
	})

	t.Run("supports early break", func(t *testing.T) {
		t.Parallel()

		m := sample()
		count := 0

		for range m.Seq() {
			count++
			if count == 2 {
				break
			}
		}

		assert.Equal(t, 2, count)
	})

	t.Run("empty map yields nothing", func(t *testing.T) {
		t.Parallel()

		var m multimap.ListMultimap[string, int]

		for range m.Seq() {
			t.Fatal("unexpected pair")
		}
	})

	t.Run("panics on structural mutation mid-walk", func(t *testing.T) {
		t.Parallel()

		m := sample()

		assert.Panics(t, func() {
			for key := range m.Seq() {
				m.Remove(key)
			}
		})
	})

	t.Run("restarts from the current head", func(t *testing.T) {
		t.Parallel()

		m := multimap.New[string, int]()
		m.Append("a", 1)
		m.Append("b", 2)

		seq := m.Seq()
		m.Remove("a")

		var got []string
		for key := range seq {
			got = append(got, key)
		}

		assert.Equal(t, []string{"b"}, got)
	})
}

func TestListMultimap_SeqMut(t *testing.T) {
	t.Parallel()

	m := sample()

	for key, value := range m.SeqMut() {
		if key == "a" {
			*value = -*value
		}
	}

	assert.Equal(t, []int{-1, -2}, values(m, "a"))
	assert.Equal(t, []int{10, 20}, values(m, "b"))
}

func TestListMultimap_Keys(t *testing.T) {
	t.Parallel()

	t.Run("first-appearance order", func(t *testing.T) {
		t.Parallel()

		m := sample()

		var keys []string
		for key := range m.Keys() {
			keys = append(keys, key)
		}

		assert.Equal(t, []string{"a", "b", "c"}, keys)
	})

	t.Run("append and insert do not reorder keys", func(t *testing.T) {
		t.Parallel()

		m := sample()
		m.Append("a", 3)
		m.Insert("c", 200)

		var keys []string
		for key := range m.Keys() {
			keys = append(keys, key)
		}

		assert.Equal(t, []string{"a", "b", "c"}, keys)
	})

	t.Run("panics when a key is removed mid-walk", func(t *testing.T) {
		t.Parallel()

		m := sample()

		assert.Panics(t, func() {
			for key := range m.Keys() {
				m.RemoveAll(key)
			}
		})
	})
}

func TestListMultimap_Values(t *testing.T) {
	t.Parallel()

	m := sample()

	var got []int
	for value := range m.Values() {
		got = append(got, value)
	}

	assert.Equal(t, []int{1, 10, 2, 100, 20}, got)
}

func TestListMultimap_GetAll(t *testing.T) {
	t.Parallel()

	t.Run("yields one key's values in key-local order", func(t *testing.T) {
		t.Parallel()

		m := sample()

		assert.Equal(t, []int{1, 2}, values(m, "a"))
		assert.Equal(t, []int{10, 20}, values(m, "b"))
		assert.Equal(t, []int{100}, values(m, "c"))
	})

	t.Run("absent key yields nothing", func(t *testing.T) {
		t.Parallel()

		m := sample()

		assert.Empty(t, values(m, "missing"))
	})

	t.Run("get all mut writes through", func(t *testing.T) {
		t.Parallel()

		m := sample()

		for value := range m.GetAllMut("b") {
			*value++
		}

		assert.Equal(t, []int{11, 21}, values(m, "b"))
	})

	t.Run("panics on structural mutation mid-walk", func(t *testing.T) {
		t.Parallel()

		m := sample()

		assert.Panics(t, func() {
			for range m.GetAll("a") {
				m.Append("a", 3)
			}
		})
	})
}

func TestListMultimap_PairsRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("from pairs rebuilds an equal map", func(t *testing.T) {
		t.Parallel()

		m := sample()
		rebuilt := multimap.FromPairs(m.Pairs())

		assert.True(t, multimap.Equal(m, rebuilt))
		assert.Equal(t, pairs(m), pairs(rebuilt))
	})

	t.Run("collect consumes a pair sequence", func(t *testing.T) {
		t.Parallel()

		m := sample()
		collected := multimap.Collect(m.Seq())

		assert.True(t, multimap.Equal(m, collected))
	})
}

func TestListMultimap_Drain(t *testing.T) {
	t.Parallel()

	m := sample()
	want := pairs(m)

	var got []multimap.KeyValuePair[string, int]
	for key, value := range m.Drain() {
		got = append(got, pair(key, value))
	}

	assert.Equal(t, want, got)
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.KeysLen())
}

func TestListMultimap_FirstLast(t *testing.T) {
	t.Parallel()

	t.Run("endpoints of the global order", func(t *testing.T) {
		t.Parallel()

		m := sample()

		first, ok := m.First().Get()
		require.True(t, ok)
		assert.Equal(t, pair("a", 1), first)

		last, ok := m.Last().Get()
		require.True(t, ok)
		assert.Equal(t, pair("b", 20), last)
	})

	t.Run("none on an empty map", func(t *testing.T) {
		t.Parallel()

		var m multimap.ListMultimap[string, int]

		assert.True(t, m.First().Empty())
		assert.True(t, m.Last().Empty())
	})
}

func TestListMultimap_FindFirst(t *testing.T) {
	t.Parallel()

	m := sample()

	found, ok := m.FindFirst(func(_ string, value int) bool {
		return value >= 20
	}).Get()
	require.True(t, ok)
	assert.Equal(t, pair("c", 100), found)

	missing := m.FindFirst(func(_ string, value int) bool {
		return value < 0
	})
	assert.True(t, missing.Empty())
}

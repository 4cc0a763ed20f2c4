package crdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLWWRegister_Merge(t *testing.T) {
	tests := []struct {
		name     string
		a        LWWRegister[string]
		b        LWWRegister[string]
		expected string
	}{
		{
			name:     "larger timestamp wins",
			a:        NewLWWRegister("old", 10, "node1"),
			b:        NewLWWRegister("new", 20, "node1"),
			expected: "new",
		},
		{
			name:     "older operand loses even from greater node",
			a:        NewLWWRegister("new", 20, "node1"),
			b:        NewLWWRegister("old", 10, "node9"),
			expected: "new",
		},
		{
			name:     "timestamp tie resolved by greater node id",
			a:        NewLWWRegister("from node1", 10, "node1"),
			b:        NewLWWRegister("from node2", 10, "node2"),
			expected: "from node2",
		},
		{
			name:     "full tie resolved by value",
			a:        NewLWWRegister("a", 10, "node1"),
			b:        NewLWWRegister("b", 10, "node1"),
			expected: "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Merge(tt.b).Get())
			assert.Equal(t, tt.expected, tt.b.Merge(tt.a).Get(), "Merge must be commutative")
		})
	}
}

func TestLWWRegister_FullTieDistinguishesValueTypes(t *testing.T) {
	number := NewLWWRegister[any](1, 10, "node1")
	text := NewLWWRegister[any]("1", 10, "node1")

	assert.True(t, number.IsNewerThan(text) != text.IsNewerThan(number),
		"Values that print alike must still be ordered")
	assert.Equal(t, number.Merge(text), text.Merge(number), "Merge must be commutative")
}

func TestLWWRegister_SetDoesNotMutate(t *testing.T) {
	reg := NewLWWRegister("v1", 10, "node1")

	updated := reg.Set("v2", 11, "node1")
	ignored := reg.Set("v0", 5, "node1")

	assert.Equal(t, "v1", reg.Get(), "Original register must stay unchanged")
	assert.Equal(t, "v2", updated.Get())
	assert.Equal(t, int64(11), updated.Timestamp)
	assert.Equal(t, "v1", ignored.Get(), "Older write must be ignored")
}

func TestLWWRegister_MergeLaws(t *testing.T) {
	samples := []LWWRegister[int]{
		NewLWWRegister(1, 10, "a"),
		NewLWWRegister(2, 10, "b"),
		NewLWWRegister(3, 20, "a"),
		NewLWWRegister(4, 20, "a"),
		NewLWWRegister(5, 5, "z"),
	}

	for _, a := range samples {
		assert.Equal(t, a, a.Merge(a), "idempotent")
		for _, b := range samples {
			assert.Equal(t, a.Merge(b), b.Merge(a), "commutative")
			for _, c := range samples {
				assert.Equal(t, a.Merge(b.Merge(c)), a.Merge(b).Merge(c), "associative")
			}
		}
	}
}

func TestMap_Merge(t *testing.T) {
	left := NewMap[string, string]().
		Set("title", "Picnic", 10, "phone").
		Set("location", "Park", 10, "phone")
	right := NewMap[string, string]().
		Set("title", "Picnic in the park", 20, "laptop").
		Set("notes", "Bring snacks", 15, "laptop")

	merged := left.Merge(right)

	require.Equal(t, 3, merged.Len())
	assert.Equal(t, map[string]string{
		"title":    "Picnic in the park",
		"location": "Park",
		"notes":    "Bring snacks",
	}, merged.Value())

	// входные значения не изменились
	assert.Equal(t, 2, left.Len())
	title, ok := left.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Picnic", title)
}

func TestMap_SetOlderWriteIgnored(t *testing.T) {
	m := NewMap[string, int]().Set("votes", 3, 20, "node1")
	m = m.Set("votes", 1, 10, "node2")

	v, ok := m.Get("votes")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	reg, ok := m.Register("votes")
	require.True(t, ok)
	assert.Equal(t, "node1", reg.NodeID)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestMap_MergeLaws(t *testing.T) {
	samples := []Map[string, int]{
		NewMap[string, int](),
		NewMap[string, int]().Set("x", 1, 10, "a"),
		NewMap[string, int]().Set("x", 2, 10, "b").Set("y", 5, 1, "a"),
		NewMap[string, int]().Set("y", 7, 3, "c").Set("z", 9, 9, "c"),
	}

	for _, a := range samples {
		assert.True(t, a.Merge(a).Equal(a), "idempotent: %s", a)
		for _, b := range samples {
			assert.True(t, a.Merge(b).Equal(b.Merge(a)), "commutative: %s %s", a, b)
			for _, c := range samples {
				left := a.Merge(b.Merge(c))
				right := a.Merge(b).Merge(c)
				assert.True(t, left.Equal(right), "associative: %s vs %s", left, right)
			}
		}
	}
}

func TestMap_ZeroValueUsable(t *testing.T) {
	var m Map[string, string]

	assert.Equal(t, 0, m.Len())
	m = m.Set("k", "v", 1, "n")
	v, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
	assert.ElementsMatch(t, []string{"k"}, m.Keys())
}

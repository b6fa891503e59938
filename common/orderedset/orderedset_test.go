package orderedset

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilacorp/go-diddoc/common/errs"
)

func identity[T comparable](v T) T { return v }

func TestAppendPrepend(t *testing.T) {
	set := New(identity[string])

	assert.True(t, set.Append("a"))
	assert.True(t, set.Append("b"))
	assert.True(t, set.Append("c"))
	assert.False(t, set.Append("b"))

	assert.Equal(t, []string{"a", "b", "c"}, set.Items())

	head, ok := set.Head()
	assert.True(t, ok)
	assert.Equal(t, "a", head)

	tail, ok := set.Tail()
	assert.True(t, ok)
	assert.Equal(t, "c", tail)

	set = New(identity[string])
	set.Prepend("a")
	set.Prepend("b")
	set.Prepend("c")
	assert.False(t, set.Prepend("a"))

	assert.Equal(t, []string{"c", "b", "a"}, set.Items())
}

func TestAppendDuplicateLeavesSetUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		dup   int
	}{
		{name: "head", items: []int{1, 2, 3}, dup: 1},
		{name: "middle", items: []int{1, 2, 3}, dup: 2},
		{name: "tail", items: []int{1, 2, 3}, dup: 3},
		{name: "single", items: []int{7}, dup: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := FromSlice(identity[int], tt.items)
			require.NoError(t, err)

			assert.False(t, set.Append(tt.dup))
			assert.False(t, set.Prepend(tt.dup))
			assert.Equal(t, tt.items, set.Items())
		})
	}
}

func TestFromSliceRejectsDuplicates(t *testing.T) {
	set, err := FromSlice(identity[int], []int{1, 2, 3, 3, 2, 4, 5, 1, 1})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidSet))
	assert.Nil(t, set)
}

func TestAppendDropsDuplicates(t *testing.T) {
	set := New(identity[int])

	for _, v := range []int{1, 2, 3, 3, 2, 4, 5, 1, 1} {
		set.Append(v)
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, set.Items())
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name        string
		items       []string
		current     string
		replacement string
		found       bool
		expected    []string
	}{
		{
			name:        "replace in place",
			items:       []string{"a", "b", "c"},
			current:     "b",
			replacement: "x",
			found:       true,
			expected:    []string{"a", "x", "c"},
		},
		{
			name:        "replacement collides with later entry",
			items:       []string{"a", "b", "c"},
			current:     "a",
			replacement: "c",
			found:       true,
			expected:    []string{"c", "b"},
		},
		{
			name:        "replacement collides with earlier entry",
			items:       []string{"a", "b", "c"},
			current:     "c",
			replacement: "a",
			found:       true,
			expected:    []string{"a", "b"},
		},
		{
			name:        "no match and no collision",
			items:       []string{"a", "b", "c"},
			current:     "z",
			replacement: "y",
			found:       false,
			expected:    []string{"a", "b", "c"},
		},
		{
			name:        "no current but replacement collides",
			items:       []string{"a", "b", "c"},
			current:     "z",
			replacement: "b",
			found:       true,
			expected:    []string{"a", "b", "c"},
		},
		{
			name:        "empty set",
			items:       nil,
			current:     "a",
			replacement: "b",
			found:       false,
			expected:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := FromSlice(identity[string], tt.items)
			require.NoError(t, err)

			assert.Equal(t, tt.found, set.Replace(tt.current, tt.replacement))
			assert.Equal(t, tt.expected, set.Items())
		})
	}
}

type entry struct {
	id    string
	value int
}

func TestUpdateKeepsPosition(t *testing.T) {
	key := func(e entry) string { return e.id }

	set, err := FromSlice(key, []entry{{"a", 1}, {"b", 2}, {"c", 3}})
	require.NoError(t, err)

	assert.True(t, set.Update(entry{"b", 20}))
	assert.False(t, set.Update(entry{"d", 4}))

	got, ok := set.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 20, got.value)
	assert.Equal(t, 1, set.Index("b"))
	assert.Equal(t, 3, set.Len())
}

func TestRemoveAndContains(t *testing.T) {
	set, err := FromSlice(identity[string], []string{"a", "b", "c"})
	require.NoError(t, err)

	assert.True(t, set.Contains("b"))
	assert.True(t, set.Remove("b"))
	assert.False(t, set.Remove("b"))
	assert.False(t, set.Contains("b"))
	assert.Equal(t, []string{"a", "c"}, set.Items())
	assert.Equal(t, -1, set.Index("b"))
}

func TestEmptySet(t *testing.T) {
	set := New(identity[string])

	assert.True(t, set.IsEmpty())
	assert.False(t, set.Contains("a"))

	_, ok := set.Head()
	assert.False(t, ok)

	_, ok = set.Tail()
	assert.False(t, ok)

	raw, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestMarshalJSON(t *testing.T) {
	set, err := FromSlice(identity[int], []int{3, 1, 2})
	require.NoError(t, err)

	raw, err := json.Marshal(set)
	require.NoError(t, err)
	assert.Equal(t, `[3,1,2]`, string(raw))
}

package qptrie

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	t.Parallel()

	qp := Empty()

	require.NotNil(t, qp)
	assert.Equal(t, 0, qp.Size())

	_, ok := qp.Get([]byte("anything"))
	assert.False(t, ok)
}

func TestGet(t *testing.T) {
	t.Parallel()

	qp := FromIterable(KV{[]byte("abc"), 123})

	for _, tcase := range []*struct {
		Key    []byte
		ExpVal any
		ExpOK  bool
	}{
		{nil, nil, false},
		{[]byte("\x00"), nil, false},
		{[]byte("\x00\x00\x00"), nil, false},
		{[]byte("unknown"), nil, false},
		{[]byte("abc"), 123, true},
		{[]byte("ABC"), nil, false},
		{[]byte("ab"), nil, false},
		{[]byte("abc."), nil, false},
		{[]byte("abc\x00"), nil, false},
	} {
		tcase := tcase

		t.Run(fmt.Sprintf("%q", tcase.Key), func(t *testing.T) {
			t.Parallel()

			val, ok := qp.Get(tcase.Key)

			assert.Equal(t, tcase.ExpVal, val)
			assert.Equal(t, tcase.ExpOK, ok)
		})
	}
}

func TestPut_Get_Size(t *testing.T) {
	t.Parallel()

	var (
		qp    = Empty()
		state = map[string]any{}
	)

	for _, tcase := range []*struct {
		Key []byte
		Val any
	}{
		{nil, 1},
		{[]byte("\x00"), 2},
		{[]byte("\x00\x00\x00"), 3},
		{[]byte("abcde"), 4},
		{[]byte("abcdE"), 5},
		{[]byte("ab"), 6},
		{[]byte("abcde"), 7}, // replace
		{[]byte("abcde\x00"), 8},
		{nil, 9}, // replace
		{[]byte("\xd0\x90\xd0\xb1\xd0\xb2"), 10},
		{[]byte("Banjo lo-fi brooklyn mlkshk cliche."), 11},
		{[]byte("Banjo lomo DIY whatever street."), 12},
	} {
		tcase := tcase

		t.Run(fmt.Sprintf("%q,%v", tcase.Key, tcase.Val), func(t *testing.T) {
			qp = qp.Put(tcase.Key, tcase.Val)
			state[string(tcase.Key)] = tcase.Val

			assert.Equal(t, len(state), qp.Size())

			for key, val := range state {
				actual, ok := qp.Get([]byte(key))

				assert.Equal(t, val, actual, key)
				assert.True(t, ok)
			}
		})
	}
}

func TestPut_StructuralSharing(t *testing.T) {
	t.Parallel()

	before := FromIterable(KV{[]byte("alpha"), 1}, KV{[]byte("album"), 2})
	after := before.Put([]byte("alter"), 3)

	assert.Equal(t, 2, before.Size())
	assert.Equal(t, 3, after.Size())

	v, ok := before.Get([]byte("alter"))
	assert.False(t, ok)
	assert.Nil(t, v)

	v, ok = before.Get([]byte("alpha"))
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	qp := FromIterable(
		KV{[]byte("alpha"), 1},
		KV{[]byte("album"), 2},
		KV{[]byte("alter"), 3},
	)

	removed := qp.Remove([]byte("album"))

	assert.Equal(t, 3, qp.Size())
	assert.Equal(t, 2, removed.Size())

	_, ok := removed.Get([]byte("album"))
	assert.False(t, ok)

	v, ok := removed.Get([]byte("alpha"))
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = removed.Get([]byte("alter"))
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestRemove_AbsentKeyIsNoop(t *testing.T) {
	t.Parallel()

	qp := FromIterable(KV{[]byte("alpha"), 1})
	same := qp.Remove([]byte("nowhere"))

	assert.Same(t, qp, same)
}

func TestRemove_EmptyTrieIsNoop(t *testing.T) {
	t.Parallel()

	qp := Empty()
	same := qp.Remove([]byte("anything"))

	assert.Same(t, qp, same)
}

func TestUpdate_NoopIdentity(t *testing.T) {
	t.Parallel()

	qp := FromIterable(KV{[]byte("key"), 42})

	same := qp.Update([]byte("key"), func(old any, ok bool) (any, bool) {
		require.True(t, ok)
		require.Equal(t, 42, old)
		return old, ok
	})

	assert.Same(t, qp, same)
}

func TestUpdate_ReplacingWithEqualValueIsNoop(t *testing.T) {
	t.Parallel()

	qp := FromIterable(KV{[]byte("key"), 42})
	same := qp.Put([]byte("key"), 42)

	assert.Same(t, qp, same)
}

func TestUpdate_DecliningToInsertLeavesTrieUntouched(t *testing.T) {
	t.Parallel()

	qp := Empty()
	same := qp.Update([]byte("key"), func(any, bool) (any, bool) {
		return nil, false
	})

	assert.Same(t, qp, same)
}

func TestPut_FakeDataVolume(t *testing.T) {
	t.Parallel()

	const (
		total       = 20_000
		seed        = 1234567890
		wordsPerKey = 5
	)

	var (
		qp    = Empty()
		state = map[string]any{}
		fake  = gofakeit.New(seed)
	)

	for i := 0; i < total; i++ {
		var (
			key = fake.HipsterSentence(wordsPerKey)
			val = fake.Name()
		)

		qp = qp.Put([]byte(key), val)
		state[key] = val
	}

	assert.Equal(t, len(state), qp.Size())

	for key, val := range state {
		actual, ok := qp.Get([]byte(key))

		assert.Equal(t, val, actual, key)
		assert.True(t, ok)
	}

	for key := range state {
		qp = qp.Remove([]byte(key))
	}

	assert.Equal(t, 0, qp.Size())
}

func TestString(t *testing.T) {
	t.Parallel()

	qp := FromIterable(KV{[]byte("a"), 1}, KV{[]byte("b"), 2})

	s := qp.String()
	assert.Contains(t, s, `"a": 1`)
	assert.Contains(t, s, `"b": 2`)
}

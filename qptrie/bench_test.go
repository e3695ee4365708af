package qptrie

import (
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

func getKeys(n int) [][]byte {
	fake := gofakeit.New(42)

	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = []byte(fake.HipsterSentence(3) + strconv.Itoa(i))
	}

	return keys
}

func BenchmarkGoMap_Put(b *testing.B) {
	var (
		keys = getKeys(b.N)
		m    = make(map[string]any, b.N)
	)

	b.ResetTimer()

	for i, key := range keys {
		m[string(key)] = i
	}
}

func BenchmarkGoMap_Get(b *testing.B) {
	var (
		keys = getKeys(b.N)
		m    = make(map[string]any, b.N)
	)

	for i, key := range keys {
		m[string(key)] = i
	}

	b.ResetTimer()

	for _, key := range keys {
		_ = m[string(key)]
	}
}

func BenchmarkQPTrie_Put(b *testing.B) {
	var (
		keys = getKeys(b.N)
		qp   = Empty()
	)

	b.ResetTimer()

	for i, key := range keys {
		qp = qp.Put(key, i)
	}
}

func BenchmarkQPTrie_Get(b *testing.B) {
	var (
		keys = getKeys(b.N)
		qp   = Empty()
	)

	for i, key := range keys {
		qp = qp.Put(key, i)
	}

	b.ResetTimer()

	for _, key := range keys {
		_, _ = qp.Get(key)
	}
}

func BenchmarkQPTrie_IteratorAscending(b *testing.B) {
	keys := getKeys(1000)
	qp := Empty()

	for i, key := range keys {
		qp = qp.Put(key, i)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		it := qp.IteratorAscending()
		for it.Next() {
		}
	}
}

package qptrie

import (
	"fmt"
	"strings"
)

// KV is a key/value pair, used by FromIterable to build a trie from a
// literal list and returned by callers that want to walk Iterator results
// into a slice.
type KV struct {
	Key   []byte
	Value any
}

// Trie is the persistent, immutable associative container keyed by
// arbitrary byte strings described in spec §1-§2. Every operation returns a
// (possibly identical) *Trie rather than mutating the receiver; a Trie
// handed to one goroutine while another holds an older or newer version is
// always safe to read from concurrently, since nothing underneath it is
// ever written to after construction. The zero value of Trie has no root and
// behaves as an empty trie, the same as Empty.
type Trie struct {
	root *oddNode
}

var emptyTrie = &Trie{}

// Empty returns the single canonical empty trie.
func Empty() *Trie {
	return emptyTrie
}

// FromIterable builds a trie out of a literal list of pairs, folding them
// through Put in order - later entries for a repeated key win.
func FromIterable(items ...KV) *Trie {
	t := Empty()
	for _, kv := range items {
		t = t.Put(kv.Key, kv.Value)
	}

	return t
}

// Size returns the number of stored key/value pairs (spec §4.4).
func (t *Trie) Size() int {
	if t.root == nil {
		return 0
	}

	return t.root.size
}

// Get performs spec §4.2's point lookup: O(|key|), independent of Size.
func (t *Trie) Get(key []byte) (any, bool) {
	if t.root == nil {
		return nil, false
	}

	return t.root.get(key)
}

// Update applies f to the current value stored at key (nil, false if
// absent) and replaces it with whatever f returns, or removes it entirely
// when f reports false. f is called exactly once. When f's result is
// identical to the prior state - same presence, same value - Update returns
// the receiver itself rather than a rebuilt copy (spec §6, §9).
func (t *Trie) Update(key []byte, f func(old any, ok bool) (val any, ok2 bool)) *Trie {
	if t.root == nil {
		val, ok := f(nil, false)
		if !ok {
			return t
		}

		return &Trie{root: &oddNode{
			prefix:   append([]byte(nil), key...),
			hasValue: true,
			value:    val,
			size:     1,
		}}
	}

	newRoot := t.root.update(key, updater(f))
	if newRoot == t.root {
		return t
	}

	return &Trie{root: newRoot}
}

// Put is Update with a transformer that unconditionally stores value.
func (t *Trie) Put(key []byte, value any) *Trie {
	return t.Update(key, func(any, bool) (any, bool) {
		return value, true
	})
}

// Remove is Update with a transformer that unconditionally deletes key.
// Removing an absent key returns the receiver unchanged.
func (t *Trie) Remove(key []byte) *Trie {
	return t.Update(key, func(any, bool) (any, bool) {
		return nil, false
	})
}

// IteratorAscending walks every stored pair in ascending key order.
func (t *Trie) IteratorAscending() Iterator {
	return newAscendingIterator(t.root)
}

// IteratorDescending walks every stored pair in descending key order.
func (t *Trie) IteratorDescending() Iterator {
	return newDescendingIterator(t.root)
}

// IteratorLessThanOrEqual walks every stored pair whose key is <= key, in
// descending order starting from key (or the nearest key below it).
func (t *Trie) IteratorLessThanOrEqual(key []byte) Iterator {
	return newLessThanOrEqualIterator(t.root, key)
}

// IteratorGreaterThanOrEqual walks every stored pair whose key is >= key, in
// ascending order starting from key (or the nearest key above it).
func (t *Trie) IteratorGreaterThanOrEqual(key []byte) Iterator {
	return newGreaterThanOrEqualIterator(t.root, key)
}

// IteratorStartsWith walks every stored pair whose key has prefix as a
// leading substring, in ascending order.
func (t *Trie) IteratorStartsWith(prefix []byte) Iterator {
	return newStartsWithIterator(t.root, prefix)
}

// IteratorPrefixOfOrEqualTo walks every stored pair whose key is a (possibly
// equal) prefix of key, shortest first. Unlike the other five, it is
// stateful and single-path rather than backed by the concatenating
// framework, since at most one branch of the trie is ever relevant.
func (t *Trie) IteratorPrefixOfOrEqualTo(key []byte) Iterator {
	return newPrefixOfOrEqualIterator(t.root, key)
}

// String renders a debug dump of every stored pair in ascending order. It is
// meant for tests and interactive inspection, not for serialization.
func (t *Trie) String() string {
	var b strings.Builder

	b.WriteString("qptrie.Trie{")

	it := t.IteratorAscending()
	first := true

	for it.Next() {
		if !first {
			b.WriteString(", ")
		}

		first = false

		fmt.Fprintf(&b, "%q: %v", it.Key(), it.Value())
	}

	b.WriteString("}")

	return b.String()
}

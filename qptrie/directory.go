package qptrie

import (
	"github.com/hideo55/go-popcount"
)

// directory is a small, sorted, persistent map from a nybble value (0..15) to
// a child of type T. It backs oddNode's high-nybble dispatch and evenNode's
// low-nybble dispatch (spec §4.1). It carries a 16-bit presence bitmap
// alongside the sorted nybbles/children arrays: the arrays are what callers
// walk during iteration (parallel, ascending), the bitmap is what locate
// consults so a lookup is a mask + popcount instead of a binary search — the
// same trick veb/set used for its 256-way integer fan-out, narrowed here to
// the trie's 16-way nybble fan-out.
type directory[T any] struct {
	bitmap   uint16
	nybbles  []byte
	children []T
}

// locate reports where v sits in the directory: a non-negative index if v is
// present, or -(insertionPoint+1) if it is absent.
func (d directory[T]) locate(v byte) int {
	mask := uint16(1) << v
	below := int(popcount.Count(uint64(d.bitmap & (mask - 1))))

	if d.bitmap&mask != 0 {
		return below
	}

	return -(below + 1)
}

func (d directory[T]) len() int {
	return len(d.nybbles)
}

func (d directory[T]) at(i int) (byte, T) {
	return d.nybbles[i], d.children[i]
}

// insertAt returns a new directory with (v, child) inserted at position i.
// i must be the insertion point locate(v) would report for an absent v.
func (d directory[T]) insertAt(i int, v byte, child T) directory[T] {
	n := len(d.nybbles)

	nybbles := make([]byte, n+1)
	copy(nybbles, d.nybbles[:i])
	nybbles[i] = v
	copy(nybbles[i+1:], d.nybbles[i:])

	children := make([]T, n+1)
	copy(children, d.children[:i])
	children[i] = child
	copy(children[i+1:], d.children[i:])

	return directory[T]{
		bitmap:   d.bitmap | uint16(1)<<v,
		nybbles:  nybbles,
		children: children,
	}
}

// removeAt returns a new directory with entry i removed.
func (d directory[T]) removeAt(i int) directory[T] {
	n := len(d.nybbles)
	v := d.nybbles[i]

	nybbles := make([]byte, n-1)
	copy(nybbles, d.nybbles[:i])
	copy(nybbles[i:], d.nybbles[i+1:])

	children := make([]T, n-1)
	copy(children, d.children[:i])
	copy(children[i:], d.children[i+1:])

	return directory[T]{
		bitmap:   d.bitmap &^ (uint16(1) << v),
		nybbles:  nybbles,
		children: children,
	}
}

// replaceAt returns a new directory with entry i's child swapped for child.
// The nybble at i is unchanged, so the backing nybbles slice (and bitmap) is
// shared with d — only the children slice is cloned.
func (d directory[T]) replaceAt(i int, child T) directory[T] {
	children := make([]T, len(d.children))
	copy(children, d.children)
	children[i] = child

	return directory[T]{
		bitmap:   d.bitmap,
		nybbles:  d.nybbles,
		children: children,
	}
}

// singletonDirectory builds a one-entry directory.
func singletonDirectory[T any](v byte, child T) directory[T] {
	return directory[T]{
		bitmap:   uint16(1) << v,
		nybbles:  []byte{v},
		children: []T{child},
	}
}

// pairDirectory builds a two-entry directory from two distinct nybbles,
// sorting them so the invariant "nybbles strictly ascending" holds.
func pairDirectory[T any](v1 byte, c1 T, v2 byte, c2 T) directory[T] {
	if v1 == v2 {
		panic("qptrie: pairDirectory called with equal nybbles")
	}

	if v1 > v2 {
		v1, c1, v2, c2 = v2, c2, v1, c1
	}

	return directory[T]{
		bitmap:   uint16(1)<<v1 | uint16(1)<<v2,
		nybbles:  []byte{v1, v2},
		children: []T{c1, c2},
	}
}

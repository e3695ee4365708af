package qptrie

// oddNode is the root-and-inner node shape of the trie: a compressed byte
// prefix, an optional value, a subtree size, and a sorted directory over high
// nybbles pointing at evenNodes (spec §4.2). Every field is written once at
// construction and never mutated afterwards; every public operation returns a
// freshly built spine of oddNode/evenNode values instead of touching an
// existing one.
type oddNode struct {
	prefix   []byte
	hasValue bool
	value    any
	size     int
	high     directory[*evenNode]
}

// updater is the transformer passed to update: it receives the current
// value (if any) and returns the value that should replace it (if any).
type updater func(old any, ok bool) (val any, ok2 bool)

func hasPrefix(key, prefix []byte) bool {
	if len(key) < len(prefix) {
		return false
	}

	for i, b := range prefix {
		if key[i] != b {
			return false
		}
	}

	return true
}

// get performs spec §4.2's point lookup.
func (n *oddNode) get(key []byte) (any, bool) {
	if !hasPrefix(key, n.prefix) {
		return nil, false
	}

	key = key[len(n.prefix):]

	if len(key) == 0 {
		if n.hasValue {
			return n.value, true
		}

		return nil, false
	}

	b := key[0]
	i := n.high.locate(highNybble(b))

	if i < 0 {
		return nil, false
	}

	_, even := n.high.at(i)

	return even.get(lowNybble(b), key[1:])
}

// sameValue reports whether a and b are the same optional value for the
// purposes of the no-op-identity guarantee (spec §6, §9): reference/value
// equality when comparable, false (never a false positive) when the dynamic
// type underneath the interface isn't comparable at all.
func sameValue(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()

	return a == b
}

// update implements spec §4.2's four-case descent. It never returns an error;
// f is evaluated exactly once. A nil *oddNode result means the subtree rooted
// here has been deleted entirely and the caller must remove the corresponding
// dispatch entry.
func (n *oddNode) update(key []byte, f updater) *oddNode {
	m := commonPrefixLen(n.prefix, key)

	switch {
	case m == len(n.prefix) && m == len(key):
		return n.updateHere(f)

	case m == len(n.prefix) && m < len(key):
		return n.updateThroughDispatch(key[m:], f)

	case m < len(n.prefix) && m < len(key):
		val, ok := f(nil, false)
		if !ok {
			return n
		}

		return n.splitDivergent(m, key[m:], val)

	default: // m < len(n.prefix) && m == len(key)
		val, ok := f(nil, false)
		if !ok {
			return n
		}

		return n.splitKeyExhausted(m, val)
	}
}

// updateHere handles case 1: full prefix match and key exhausted.
func (n *oddNode) updateHere(f updater) *oddNode {
	val, ok := f(n.value, n.hasValue)

	if ok == n.hasValue && (!ok || sameValue(val, n.value)) {
		return n // no-op identity (spec §6, §9)
	}

	delta := 0

	switch {
	case ok && !n.hasValue:
		delta = 1
	case !ok && n.hasValue:
		delta = -1
	}

	replaced := &oddNode{
		prefix:   n.prefix,
		hasValue: ok,
		value:    val,
		size:     n.size + delta,
		high:     n.high,
	}

	if delta != -1 {
		return replaced
	}

	if replaced.high.len() == 0 {
		return nil // this node's subtree is now empty
	}

	return maybeFuse(replaced)
}

// updateThroughDispatch handles case 2 (prefix matches, key has more bytes)
// plus the natural extension of inserting a brand-new leaf when the dispatch
// path doesn't exist yet (the descent in spec §4.2 case 2 assumes E and C
// already exist; when they don't, growing the directory with a fresh leaf is
// the only sensible reading, and mirrors how the teacher's Set() descent
// inserts a leaf the moment a bitmap probe misses).
func (n *oddNode) updateThroughDispatch(rest []byte, f updater) *oddNode {
	b := rest[0]
	tail := rest[1:]
	hi, lo := highNybble(b), lowNybble(b)

	hi_i := n.high.locate(hi)
	if hi_i < 0 {
		return n.insertFreshLeaf(hi_i, hi, nil, -1, lo, tail, f)
	}

	_, even := n.high.at(hi_i)
	lo_i := even.dir.locate(lo)

	if lo_i < 0 {
		return n.insertFreshLeaf(hi_i, hi, even, lo_i, lo, tail, f)
	}

	_, child := even.dir.at(lo_i)
	newChild := child.update(tail, f)

	if newChild == child {
		return n
	}

	if newChild == nil {
		return n.shrinkAfterDelete(hi_i, even, lo_i)
	}

	delta := newChild.size - child.size
	newEven := &evenNode{dir: even.dir.replaceAt(lo_i, newChild)}

	return &oddNode{
		prefix:   n.prefix,
		hasValue: n.hasValue,
		value:    n.value,
		size:     n.size + delta,
		high:     n.high.replaceAt(hi_i, newEven),
	}
}

// insertFreshLeaf grows the directory chain to insert a value that has no
// existing dispatch entry at either nybble level. even/lo_i are nil/-1 when
// even the high-nybble entry is missing.
func (n *oddNode) insertFreshLeaf(hi_i int, hi byte, even *evenNode, lo_i int, lo byte, tail []byte, f updater) *oddNode {
	val, ok := f(nil, false)
	if !ok {
		return n
	}

	leaf := &oddNode{
		prefix:   append([]byte(nil), tail...),
		hasValue: true,
		value:    val,
		size:     1,
	}

	var newHigh directory[*evenNode]

	if even == nil {
		newEven := &evenNode{dir: singletonDirectory(lo, leaf)}
		newHigh = n.high.insertAt(-(hi_i + 1), hi, newEven)
	} else {
		newEven := &evenNode{dir: even.dir.insertAt(-(lo_i + 1), lo, leaf)}
		newHigh = n.high.replaceAt(hi_i, newEven)
	}

	return &oddNode{
		prefix:   n.prefix,
		hasValue: n.hasValue,
		value:    n.value,
		size:     n.size + 1,
		high:     newHigh,
	}
}

// shrinkAfterDelete removes a deleted grandchild oddNode from even (at lo_i)
// and, if that empties even, drops the evenNode itself from n's directory.
func (n *oddNode) shrinkAfterDelete(hi_i int, even *evenNode, lo_i int) *oddNode {
	shrunkDir := even.dir.removeAt(lo_i)

	var newHigh directory[*evenNode]
	if shrunkDir.len() == 0 {
		newHigh = n.high.removeAt(hi_i)
	} else {
		newHigh = n.high.replaceAt(hi_i, &evenNode{dir: shrunkDir})
	}

	replaced := &oddNode{
		prefix:   n.prefix,
		hasValue: n.hasValue,
		value:    n.value,
		size:     n.size - 1,
		high:     newHigh,
	}

	if newHigh.len() == 0 && !replaced.hasValue {
		return nil
	}

	return maybeFuse(replaced)
}

// maybeFuse restores the path-compression invariant (spec §3 invariant 4):
// a valueless node with exactly one grandchild oddNode reachable through a
// single-entry evenNode must be fused with that grandchild.
func maybeFuse(n *oddNode) *oddNode {
	if n.hasValue || n.high.len() != 1 {
		return n
	}

	hi, even := n.high.at(0)
	if even.dir.len() != 1 {
		return n
	}

	lo, grandchild := even.dir.at(0)

	fused := make([]byte, 0, len(n.prefix)+1+len(grandchild.prefix))
	fused = append(fused, n.prefix...)
	fused = append(fused, dispatchByte(hi, lo))
	fused = append(fused, grandchild.prefix...)

	return &oddNode{
		prefix:   fused,
		hasValue: grandchild.hasValue,
		value:    grandchild.value,
		size:     grandchild.size,
		high:     grandchild.high,
	}
}

// splitDivergent handles case 3: the key diverges from the prefix at
// position m and still has bytes remaining beyond the divergence.
func (n *oddNode) splitDivergent(m int, keyRest []byte, val any) *oddNode {
	newPrefix := append([]byte(nil), n.prefix[:m]...)

	bOld, bNew := n.prefix[m], keyRest[0]

	shrunkSelf := &oddNode{
		prefix:   append([]byte(nil), n.prefix[m+1:]...),
		hasValue: n.hasValue,
		value:    n.value,
		size:     n.size,
		high:     n.high,
	}
	leaf := &oddNode{
		prefix:   append([]byte(nil), keyRest[1:]...),
		hasValue: true,
		value:    val,
		size:     1,
	}

	return &oddNode{
		prefix: newPrefix,
		size:   n.size + 1,
		high:   twoWayDispatch(bOld, shrunkSelf, bNew, leaf),
	}
}

// splitKeyExhausted handles case 4: the key ends inside this node's prefix.
func (n *oddNode) splitKeyExhausted(m int, val any) *oddNode {
	newPrefix := append([]byte(nil), n.prefix[:m]...)
	bOld := n.prefix[m]

	shrunkSelf := &oddNode{
		prefix:   append([]byte(nil), n.prefix[m+1:]...),
		hasValue: n.hasValue,
		value:    n.value,
		size:     n.size,
		high:     n.high,
	}

	even := &evenNode{dir: singletonDirectory(lowNybble(bOld), shrunkSelf)}

	return &oddNode{
		prefix:   newPrefix,
		hasValue: true,
		value:    val,
		size:     n.size + 1,
		high:     singletonDirectory(highNybble(bOld), even),
	}
}

// twoWayDispatch builds a high-nybble directory routing two distinct bytes
// to two distinct oddNode children, sharing an evenNode when the bytes share
// a high nybble.
func twoWayDispatch(b1 byte, c1 *oddNode, b2 byte, c2 *oddNode) directory[*evenNode] {
	hi1, lo1 := highNybble(b1), lowNybble(b1)
	hi2, lo2 := highNybble(b2), lowNybble(b2)

	if hi1 == hi2 {
		even := &evenNode{dir: pairDirectory(lo1, c1, lo2, c2)}
		return singletonDirectory(hi1, even)
	}

	even1 := &evenNode{dir: singletonDirectory(lo1, c1)}
	even2 := &evenNode{dir: singletonDirectory(lo2, c2)}

	return pairDirectory(hi1, even1, hi2, even2)
}

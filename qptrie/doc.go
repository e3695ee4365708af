// Package qptrie implements a persistent, structurally-shared QP-Trie: an
// associative container keyed by arbitrary byte strings, organised as a
// nybble-partitioned, path-compressed radix trie.
//
// A trie is a chain of two alternating node shapes:
//
//   - oddNode - carries a compressed prefix, an optional value, a subtree
//     size, and a sorted directory over high nybbles pointing at evenNodes.
//   - evenNode - a purely structural dispatch over low nybbles pointing at
//     oddNodes; it never stores a prefix or a value.
//
// Every mutation (Put/Remove/Update) rebuilds only the nodes on the path from
// the root to the touched key and returns a new *Trie; every node not on that
// path is shared, bit-for-bit, with the trie the mutation started from. A
// *Trie handle is therefore an immutable snapshot: once obtained, its Get and
// iterator results never change, regardless of what happens to other handles
// derived from the same ancestry.
//
// Example trie holding "/var/log/syslog", "/home/user1/tmp/1.txt",
// "/usr/bin/bash" and "/usr/bin/vim". Each arrow is labelled with the
// dispatch byte that a high-nybble directory and the evenNode below it route
// on together; a child oddNode's prefix starts right after that byte:
//
//	                 ,-- 'h' --> [odd:"ome/user1/tmp/1.txt"]
//	                 |
//	[odd:pfx="/"] ---+-- 'u' --> [odd:"sr/bin/"] --+-- 'b' --> [odd:"ash"]
//	                 |                              |
//	                 |                              `-- 'v' --> [odd:"im"]
//	                 |
//	                 `-- 'v' --> [odd:"ar/log/syslog"]
//
// Reads are lock-free and wait-free: nothing in the package performs I/O,
// blocks, or mutates a field after construction.
package qptrie

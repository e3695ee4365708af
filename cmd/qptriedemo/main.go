// Command qptriedemo builds a small qptrie.Trie and prints a few of the
// traversals the package supports. It exists to give the library a runnable
// entry point, not as a server or a persistence format.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/aglyzov/qptrie/qptrie"
)

func main() {
	var (
		leKey     = flag.String("le", "b/images", "print every key <= this one, descending")
		prefixKey = flag.String("prefix-of", "b/images/photo.png", "print every stored key that is a prefix of this one")
	)

	flag.Parse()

	qp := qptrie.FromIterable(
		qptrie.KV{Key: []byte("a"), Value: 1},
		qptrie.KV{Key: []byte("a/b"), Value: 2},
		qptrie.KV{Key: []byte("a/c"), Value: 3},
		qptrie.KV{Key: []byte("b"), Value: 4},
		qptrie.KV{Key: []byte("b/images"), Value: 5},
		qptrie.KV{Key: []byte("b/images/photo.png"), Value: 6},
		qptrie.KV{Key: []byte("b/video"), Value: 7},
		qptrie.KV{Key: []byte("c"), Value: 8},
	)

	log.SetFlags(0)
	log.Printf("built a trie with %d entries", qp.Size())

	fmt.Println("-- ascending --")
	dump(qp.IteratorAscending())

	fmt.Printf("-- <= %q, descending --\n", *leKey)
	dump(qp.IteratorLessThanOrEqual([]byte(*leKey)))

	fmt.Printf("-- prefix-of-or-equal-to %q --\n", *prefixKey)
	dump(qp.IteratorPrefixOfOrEqualTo([]byte(*prefixKey)))
}

func dump(it qptrie.Iterator) {
	for it.Next() {
		fmt.Printf("  %-24q -> %v\n", it.Key(), it.Value())
	}
}

package index

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/npillmayer/textrun/sortkey"
)

// entry is the value stored for a sort key. Most keys map to a single item,
// so a set is allocated only when a second item arrives.
type entry[T comparable] struct {
	one  T
	many *linkedhashset.Set // nil as long as there is only one item
}

func (e *entry[T]) add(item T) bool {
	if e.many == nil {
		if e.one == item {
			return false
		}
		e.many = linkedhashset.New(e.one, item)
		return true
	}
	if e.many.Contains(item) {
		return false
	}
	e.many.Add(item)
	return true
}

func (e *entry[T]) each(visit func(T)) {
	if e.many == nil {
		visit(e.one)
		return
	}
	e.many.Each(func(_ int, v interface{}) {
		visit(v.(T))
	})
}

// keyIndex is an ordered map from sort keys to items.
type keyIndex[T comparable] struct {
	tree  *redblacktree.Tree
	count int // number of (key, item) pairs
}

func newKeyIndex[T comparable]() *keyIndex[T] {
	return &keyIndex[T]{
		tree: redblacktree.NewWith(func(a, b interface{}) int {
			return sortkey.Compare(a.([]byte), b.([]byte))
		}),
	}
}

func (ki *keyIndex[T]) add(key []byte, item T) bool {
	if v, found := ki.tree.Get(key); found {
		if !v.(*entry[T]).add(item) {
			return false
		}
	} else {
		ki.tree.Put(key, &entry[T]{one: item})
	}
	ki.count++
	return true
}

// scan collects the items of all keys in range [lower, upper) into result.
// An upper bound of nil is open.
func (ki *keyIndex[T]) scan(lower, upper []byte, result *linkedhashset.Set) {
	node, _ := ki.tree.Ceiling(lower)
	for ; node != nil; node = successor(node) {
		if upper != nil && sortkey.Compare(node.Key.([]byte), upper) >= 0 {
			break
		}
		node.Value.(*entry[T]).each(func(item T) {
			result.Add(item)
		})
	}
}

// successor finds the in-order successor of node.
func successor(node *redblacktree.Node) *redblacktree.Node {
	if node.Right != nil {
		n := node.Right
		for n.Left != nil {
			n = n.Left
		}
		return n
	}
	p := node.Parent
	for p != nil && node == p.Right {
		node, p = p, p.Parent
	}
	return p
}

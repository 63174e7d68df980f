package frequency

import (
	iradix "github.com/hashicorp/go-immutable-radix"
)

// PrefixIndex answers "which words start with P" over a ranked list.
// It is immutable once built and safe for concurrent readers.
type PrefixIndex struct {
	tree *iradix.Tree
}

// NewPrefixIndex indexes every entry of l by word.
func NewPrefixIndex(l RankedList) *PrefixIndex {
	txn := iradix.New().Txn()
	for _, e := range l {
		txn.Insert([]byte(e.Word), e.Count)
	}
	return &PrefixIndex{tree: txn.Commit()}
}

// Count returns the count recorded for word.
func (p *PrefixIndex) Count(word string) (int, bool) {
	v, ok := p.tree.Get([]byte(word))
	if !ok {
		return 0, false
	}
	return v.(int), true
}

// WithPrefix returns the entries whose word starts with prefix, in rank order.
// An empty prefix matches every word.
func (p *PrefixIndex) WithPrefix(prefix string) RankedList {
	var out RankedList
	p.tree.Root().WalkPrefix([]byte(prefix), func(k []byte, v interface{}) bool {
		out = append(out, Entry{Word: string(k), Count: v.(int)})
		return false
	})
	out.sort()
	return out
}

// TopWithPrefix returns the k best-ranked entries whose word starts with
// prefix. k <= 0 behaves like WithPrefix.
func (p *PrefixIndex) TopWithPrefix(prefix string, k int) RankedList {
	if k <= 0 {
		return p.WithPrefix(prefix)
	}
	c := NewTopKCollector(k)
	p.tree.Root().WalkPrefix([]byte(prefix), func(key []byte, v interface{}) bool {
		c.Collect(Entry{Word: string(key), Count: v.(int)})
		return false
	})
	return c.Results()
}

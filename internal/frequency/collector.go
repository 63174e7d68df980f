package frequency

import "container/heap"

// TopKCollector keeps the K best-ranked entries seen so far using a
// min-heap, so selecting the top words of a large table does not sort it.
type TopKCollector struct {
	k int
	h entryHeap
}

// NewTopKCollector creates a collector for the top K entries.
func NewTopKCollector(k int) *TopKCollector {
	if k <= 0 {
		k = 10
	}
	return &TopKCollector{
		k: k,
		h: make(entryHeap, 0, k),
	}
}

// Collect offers an entry to the collector.
func (c *TopKCollector) Collect(e Entry) {
	if c.h.Len() < c.k {
		heap.Push(&c.h, e)
		return
	}
	if e.before(c.h[0]) {
		c.h[0] = e
		heap.Fix(&c.h, 0)
	}
}

// Results drains the collector and returns its entries in rank order.
func (c *TopKCollector) Results() RankedList {
	result := make(RankedList, c.h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(&c.h).(Entry)
	}
	return result
}

// TopK returns the k best-ranked entries of t. k <= 0 ranks the whole table.
func (t Table) TopK(k int) RankedList {
	if k <= 0 || k >= len(t) {
		return t.Ranked()
	}
	c := NewTopKCollector(k)
	for word, n := range t {
		c.Collect(Entry{Word: word, Count: n})
	}
	return c.Results()
}

// entryHeap is a min-heap whose root is the worst-ranked entry.
type entryHeap []Entry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return h[j].before(h[i]) }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)        { *h = append(*h, x.(Entry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

package frequency

import (
	"fmt"
	"sort"
)

// Entry is a word and its occurrence count.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// String renders the entry as "word : count".
func (e Entry) String() string {
	return fmt.Sprintf("%s : %d", e.Word, e.Count)
}

// before reports whether e ranks ahead of o: higher count first, then
// lexicographically smaller word.
func (e Entry) before(o Entry) bool {
	if e.Count != o.Count {
		return e.Count > o.Count
	}
	return e.Word < o.Word
}

// RankedList is a list of entries sorted by count descending, ties broken
// by word ascending.
type RankedList []Entry

// Rank counts tokens and returns one entry per distinct token.
// The empty sequence yields an empty list.
func Rank(tokens []string) RankedList {
	return Count(tokens).Ranked()
}

func (l RankedList) sort() {
	sort.Slice(l, func(i, j int) bool { return l[i].before(l[j]) })
}

// Total returns the sum of all counts.
func (l RankedList) Total() int {
	sum := 0
	for _, e := range l {
		sum += e.Count
	}
	return sum
}

// Top returns at most k leading entries. k <= 0 returns the whole list.
func (l RankedList) Top(k int) RankedList {
	if k <= 0 || k >= len(l) {
		return l
	}
	return l[:k]
}

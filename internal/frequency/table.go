// Package frequency aggregates word tokens into counts and ranks them.
package frequency

import "github.com/cespare/xxhash"

// Table maps each distinct token to its number of occurrences.
type Table map[string]int

// Count builds a Table in a single pass over tokens.
func Count(tokens []string) Table {
	t := make(Table)
	for _, tok := range tokens {
		t[tok]++
	}
	return t
}

// Total returns the sum of all counts, which equals the number of tokens
// the table was built from.
func (t Table) Total() int {
	sum := 0
	for _, n := range t {
		sum += n
	}
	return sum
}

// Ranked returns the table's entries sorted by count descending.
func (t Table) Ranked() RankedList {
	list := make(RankedList, 0, len(t))
	for word, n := range t {
		list = append(list, Entry{Word: word, Count: n})
	}
	list.sort()
	return list
}

// Fingerprint returns a 64-bit hash of raw text, used to tell analyses of
// different inputs apart.
func Fingerprint(text string) uint64 {
	return xxhash.Sum64String(text)
}

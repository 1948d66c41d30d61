// Package matcher finds dictionary candidates for a fill pattern: letters
// and '_' wildcards, an optional [min, max] rating range, and a requested
// sort order.
// Grounded on the teacher's pkg/wordlist.Match/MatchWithScores, generalized
// to the two explicit sort orders the core requires and backed by a trie
// (pkg/matcher/trie.go, adapted from the teacher's pkg/wordlist/trie.go)
// instead of a linear scan whenever that is cheaper.
package matcher

import (
	"sort"

	"github.com/crossgen/crossgen/pkg/dictionary"
)

// SortOrder selects how Candidates orders its results.
type SortOrder int

const (
	// RatingDesc orders candidates by descending rating; unrated candidates
	// sort after all rated ones, and ties (including all-unranked) break
	// alphabetically.
	RatingDesc SortOrder = iota
	// Alphabetical orders candidates lexicographically.
	Alphabetical
)

// RatingFilter is an optional [Min, Max] inclusive rating range. The zero
// value (both bounds nil) admits every entry, ranked or not. Whenever either
// bound is set, unranked entries are excluded - spec section 4.2's "unranked
// entries are excluded whenever any bound is set".
type RatingFilter struct {
	Min *int
	Max *int
}

// NoRatingFilter is the filter that admits every candidate regardless of
// rating, ranked or not - the filter the autofill search always uses.
var NoRatingFilter = RatingFilter{}

func (f RatingFilter) allows(e dictionary.Entry) bool {
	if f.Min == nil && f.Max == nil {
		return true
	}
	if !e.Rated {
		return false
	}
	if f.Min != nil && e.Rating < *f.Min {
		return false
	}
	if f.Max != nil && e.Rating > *f.Max {
		return false
	}
	return true
}

// Matcher answers pattern queries against a Dictionary, optionally
// accelerated by a per-length trie.
type Matcher struct {
	dict  *dictionary.Dictionary
	tries map[int]*Trie // lazily built per length
}

// New builds a Matcher over dict. No trie is built until first use of a
// given length.
func New(dict *dictionary.Dictionary) *Matcher {
	return &Matcher{dict: dict, tries: make(map[int]*Trie)}
}

// Candidates returns every dictionary word matching pattern ('_' is a
// wildcard, any other byte must match exactly) whose rating passes filter,
// ordered by order. A pattern of all wildcards matches every word of that
// length; a pattern with no wildcards is an exact membership test.
func (m *Matcher) Candidates(pattern string, filter RatingFilter, order SortOrder) []dictionary.Entry {
	length := len(pattern)
	entries := m.dict.OfLength(length)
	if len(entries) == 0 {
		return nil
	}

	var matches []dictionary.Entry
	if isWildcardHeavy(pattern) {
		matches = m.scan(entries, pattern, filter)
	} else {
		matches = m.trieSearch(length, entries, pattern, filter)
	}

	switch order {
	case Alphabetical:
		sort.Slice(matches, func(i, j int) bool { return matches[i].Word < matches[j].Word })
	default:
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].Rated != matches[j].Rated {
				return matches[i].Rated
			}
			if matches[i].Rating != matches[j].Rating {
				return matches[i].Rating > matches[j].Rating
			}
			return matches[i].Word < matches[j].Word
		})
	}
	return matches
}

// isWildcardHeavy reports whether pattern has at least as many wildcards as
// fixed letters; the trie buys less in that regime than a flat scan plus
// sort, since it still has to branch into most of the alphabet per position.
func isWildcardHeavy(pattern string) bool {
	wildcards := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '_' {
			wildcards++
		}
	}
	return wildcards*2 >= len(pattern)
}

func (m *Matcher) scan(entries []dictionary.Entry, pattern string, filter RatingFilter) []dictionary.Entry {
	var matches []dictionary.Entry
	for _, e := range entries {
		if !filter.allows(e) {
			continue
		}
		if matchesPattern(e.Word, pattern) {
			matches = append(matches, e)
		}
	}
	return matches
}

func (m *Matcher) trieSearch(length int, entries []dictionary.Entry, pattern string, filter RatingFilter) []dictionary.Entry {
	trie, ok := m.tries[length]
	if !ok {
		trie = NewTrie()
		for _, e := range entries {
			trie.Insert(e)
		}
		m.tries[length] = trie
	}

	var matches []dictionary.Entry
	for _, e := range trie.Match(pattern) {
		if filter.allows(e) {
			matches = append(matches, e)
		}
	}
	return matches
}

func matchesPattern(word, pattern string) bool {
	if len(word) != len(pattern) {
		return false
	}
	for i := 0; i < len(word); i++ {
		if pattern[i] != '_' && pattern[i] != word[i] {
			return false
		}
	}
	return true
}

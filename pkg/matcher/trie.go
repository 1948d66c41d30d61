package matcher

import "github.com/crossgen/crossgen/pkg/dictionary"

// Trie is a prefix tree over dictionary entries of a single word length,
// used to prune a pattern search to matching children instead of scanning
// every entry. Adapted from the teacher's pkg/wordlist/trie.go: Insert and
// Match keep the same recursive wildcard-branching shape, retargeted from
// the teacher's Word{Text,Score} to dictionary.Entry.
type Trie struct {
	root *trieNode
}

type trieNode struct {
	children map[rune]*trieNode
	isEnd    bool
	entry    dictionary.Entry
}

// NewTrie returns an empty Trie.
func NewTrie() *Trie {
	return &Trie{root: &trieNode{children: make(map[rune]*trieNode)}}
}

// Insert adds an entry to the trie, keyed by its word.
func (t *Trie) Insert(e dictionary.Entry) {
	if e.Word == "" {
		return
	}
	node := t.root
	for _, ch := range e.Word {
		child, ok := node.children[ch]
		if !ok {
			child = &trieNode{children: make(map[rune]*trieNode)}
			node.children[ch] = child
		}
		node = child
	}
	node.isEnd = true
	node.entry = e
}

// Match returns every entry whose word matches pattern ('_' matches any
// rune at that position), in no particular order.
func (t *Trie) Match(pattern string) []dictionary.Entry {
	var results []dictionary.Entry
	t.matchHelper(t.root, pattern, 0, &results)
	return results
}

func (t *Trie) matchHelper(node *trieNode, pattern string, pos int, results *[]dictionary.Entry) {
	if node == nil {
		return
	}
	if pos == len(pattern) {
		if node.isEnd {
			*results = append(*results, node.entry)
		}
		return
	}
	ch := rune(pattern[pos])
	if ch == '_' {
		for _, child := range node.children {
			t.matchHelper(child, pattern, pos+1, results)
		}
		return
	}
	if child, ok := node.children[ch]; ok {
		t.matchHelper(child, pattern, pos+1, results)
	}
}

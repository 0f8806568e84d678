package compression

import (
	"sort"

	"github.com/boljen/go-bitmap"
)

type trieNode struct {
	code     Code
	hasCode  bool
	children map[byte]*trieNode
}

func (node *trieNode) child(b byte) *trieNode {
	if node.children == nil {
		return nil
	}
	return node.children[b]
}

func (node *trieNode) addChild(b byte) *trieNode {
	if node.children == nil {
		node.children = make(map[byte]*trieNode)
	}
	newNode := &trieNode{}
	node.children[b] = newNode
	return newNode
}

// DictionaryEntry is a single pattern known to a [Dictionary] and the code
// assigned to it.
type DictionaryEntry struct {
	Code    Code
	Pattern []byte
}

// Dictionary maps patterns to codes for the compressor. It's a trie keyed by
// byte, so finding the longest known prefix of some data only takes one walk
// down the tree.
//
// A Dictionary only grows. Once a pattern has a code, neither changes.
type Dictionary struct {
	root trieNode
	// assigned has a bit set for every code in use, including the end-of-stream
	// marker.
	assigned bitmap.Bitmap
	// size is the number of codes in use, including the end-of-stream marker.
	size int
}

// NewDictionary creates a dictionary seeded with the single-byte patterns for
// 0 through 127. Every call returns an independent instance.
func NewDictionary() *Dictionary {
	dict := &Dictionary{
		assigned: bitmap.New(TotalCodes),
	}

	for i := 0; i < SeedSymbols; i++ {
		node := dict.root.addChild(byte(i))
		node.code = Code(i)
		node.hasCode = true
		dict.assigned.Set(i, true)
	}

	dict.assigned.Set(int(EOFCode), true)
	dict.size = SeedSymbols + 1
	return dict
}

// Insert adds `pattern` to the dictionary under `code`. It returns false and
// does nothing if:
//
//   - the dictionary is full,
//   - the pattern is empty or already present,
//   - `code` is the end-of-stream marker or already assigned.
func (dict *Dictionary) Insert(pattern []byte, code Code) bool {
	if len(pattern) == 0 || code == EOFCode || dict.Full() || dict.assigned.Get(int(code)) {
		return false
	}

	node := &dict.root
	for _, b := range pattern {
		next := node.child(b)
		if next == nil {
			next = node.addChild(b)
		}
		node = next
	}

	if node.hasCode {
		return false
	}

	node.code = code
	node.hasCode = true
	dict.assigned.Set(int(code), true)
	dict.size++
	return true
}

// Lookup returns the code for `pattern`. The boolean is false if the pattern
// isn't in the dictionary.
func (dict *Dictionary) Lookup(pattern []byte) (Code, bool) {
	if len(pattern) == 0 {
		return 0, false
	}

	node := &dict.root
	for _, b := range pattern {
		node = node.child(b)
		if node == nil {
			return 0, false
		}
	}
	return node.code, node.hasCode
}

// LongestPrefix finds the longest pattern in the dictionary that `data` begins
// with. It returns that pattern's code and length. If no prefix of `data` is
// known (including when `data` is empty), the length is 0.
func (dict *Dictionary) LongestPrefix(data []byte) (Code, int) {
	var bestCode Code
	bestLength := 0

	node := &dict.root
	for i, b := range data {
		node = node.child(b)
		if node == nil {
			break
		}
		if node.hasCode {
			bestCode = node.code
			bestLength = i + 1
		}
	}
	return bestCode, bestLength
}

// Len gives the number of patterns in the dictionary. The end-of-stream marker
// isn't a pattern and isn't counted.
func (dict *Dictionary) Len() int {
	return dict.size - 1
}

// Full returns true if every code has been assigned.
func (dict *Dictionary) Full() bool {
	return dict.size >= TotalCodes
}

// Entries returns every pattern in the dictionary, sorted by code.
func (dict *Dictionary) Entries() []DictionaryEntry {
	entries := make([]DictionaryEntry, 0, dict.Len())

	var walk func(node *trieNode, prefix []byte)
	walk = func(node *trieNode, prefix []byte) {
		for b, child := range node.children {
			pattern := extendPattern(prefix, b)
			if child.hasCode {
				entries = append(entries, DictionaryEntry{Code: child.code, Pattern: pattern})
			}
			walk(child, pattern)
		}
	}
	walk(&dict.root, nil)

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})
	return entries
}

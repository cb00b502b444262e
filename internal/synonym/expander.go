package synonym

import (
	"sort"
	"sync"
)

// Expander widens a token set with synonyms from the active table. The table
// can be swapped atomically while requests are in flight (see Watch).
type Expander struct {
	mu    sync.RWMutex
	table *Table
}

// NewExpander wraps a table for concurrent use.
func NewExpander(table *Table) *Expander {
	return &Expander{table: table}
}

// Expand returns the union of tokens, their direct synonyms, and for tokens
// that appear as someone's synonym, the owning key plus its other synonyms.
// The result is deduplicated and sorted, and always contains every input
// token, so it is never smaller than the input.
func (e *Expander) Expand(tokens []string) []string {
	e.mu.RLock()
	table := e.table
	e.mu.RUnlock()

	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		seen[tok] = struct{}{}
		for _, s := range table.Synonyms(tok) {
			seen[s] = struct{}{}
		}
		for _, key := range table.Keys(tok) {
			seen[key] = struct{}{}
			for _, sibling := range table.Synonyms(key) {
				seen[sibling] = struct{}{}
			}
		}
	}

	expanded := make([]string, 0, len(seen))
	for term := range seen {
		expanded = append(expanded, term)
	}
	sort.Strings(expanded)
	return expanded
}

// Swap replaces the active table.
func (e *Expander) Swap(table *Table) {
	e.mu.Lock()
	e.table = table
	e.mu.Unlock()
}

// TableLen reports the size of the active table.
func (e *Expander) TableLen() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.table.Len()
}

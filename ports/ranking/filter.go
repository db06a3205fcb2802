package ranking

import (
	"sort"
	"strings"
	"sync"
)

// FilterOptions is the derived input for the UI's league filter dropdowns:
// the union of the source collections, deduplicated by ID and sorted by
// name.
type FilterOptions struct {
	Leagues []LeagueRef
}

// Fingerprint reduces filter-source collections to a stable string over
// their identifying id+name pairs. Two logically equal collections yield
// the same fingerprint regardless of object identity, so it can stand in
// for deep comparison as a memoization key. Unit separators keep
// ambiguous concatenations ("a"+"bc" vs "ab"+"c") distinct.
func Fingerprint(collections ...[]LeagueRef) string {
	var b strings.Builder
	for i, coll := range collections {
		if i > 0 {
			b.WriteByte(0x1d) // group separator
		}
		for _, ref := range coll {
			b.WriteString(ref.ID)
			b.WriteByte(0x1f) // unit separator
			b.WriteString(ref.Name)
			b.WriteByte(0x1e) // record separator
		}
	}
	return b.String()
}

// DeriveFilterOptions computes filter options from scratch. Pure function;
// callers wanting memoization go through FilterMemo.
func DeriveFilterOptions(collections ...[]LeagueRef) FilterOptions {
	seen := make(map[string]bool)
	var out []LeagueRef
	for _, coll := range collections {
		for _, ref := range coll {
			if seen[ref.ID] {
				continue
			}
			seen[ref.ID] = true
			out = append(out, ref)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return FilterOptions{Leagues: out}
}

// FilterMemo caches the last derived FilterOptions against the fingerprint
// of its inputs. The derivation reruns only when the fingerprint string
// changes — never because a caller passed logically equal collections in
// fresh slices.
//
// Safe for concurrent use.
type FilterMemo struct {
	mu          sync.Mutex
	fingerprint string
	options     FilterOptions
	primed      bool
	computes    int
}

// Options returns the derived filter options for the given collections,
// recomputing only on a fingerprint change.
func (m *FilterMemo) Options(collections ...[]LeagueRef) FilterOptions {
	fp := Fingerprint(collections...)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.primed && m.fingerprint == fp {
		return m.options
	}

	m.options = DeriveFilterOptions(collections...)
	m.fingerprint = fp
	m.primed = true
	m.computes++
	return m.options
}

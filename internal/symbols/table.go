package symbols

import (
	"errors"
	"fmt"
	"slices"

	"cminus/internal/ast"
)

const (
	// TableSize is the fixed number of hash buckets.
	TableSize = 211
	hashShift = 4
)

// ErrDuplicate is returned by Insert when the (name, scope) pair is taken.
var ErrDuplicate = errors.New("duplicate symbol")

// Table is a hash-chained store of entries keyed by (name, scope).
// It never resizes; program symbol counts are bounded by source size.
type Table struct {
	buckets [TableSize]*Entry
	count   int
	next    int // next storage location
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

func hash(key string) int {
	h := 0
	for i := 0; i < len(key); i++ {
		h = ((h << hashShift) + int(key[i])) % TableSize
	}
	return h
}

// Insert adds a new entry at the head of its bucket chain and assigns it
// the next storage location. Callers check LookupInScope first; Insert
// refuses a second entry for the same (name, scope) and leaves the
// location counter untouched in that case.
func (t *Table) Insert(name string, line int, scope ast.ScopeID, typ ast.ExpType, kind SymbolKind) (*Entry, error) {
	if existing := t.LookupInScope(name, scope); existing != nil {
		return nil, fmt.Errorf("%w: %q in scope %d (location %d)", ErrDuplicate, name, scope, existing.Location)
	}
	h := hash(name)
	e := &Entry{
		Name:     name,
		Scope:    scope,
		Kind:     kind,
		Type:     typ,
		Location: t.next,
		DeclLine: line,
		next:     t.buckets[h],
	}
	t.buckets[h] = e
	t.next++
	t.count++
	return e, nil
}

// LookupAny returns the first entry named name in chain order (most
// recently inserted first), regardless of scope. It answers existence
// questions only; scope-correct resolution walks scopes with LookupInScope.
func (t *Table) LookupAny(name string) *Entry {
	for e := t.buckets[hash(name)]; e != nil; e = e.next {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// LookupInScope returns the entry declared as name in exactly scope.
func (t *Table) LookupInScope(name string, scope ast.ScopeID) *Entry {
	for e := t.buckets[hash(name)]; e != nil; e = e.next {
		if e.Name == name && e.Scope == scope {
			return e
		}
	}
	return nil
}

// SetParams replaces the parameter types of the entry LookupAny finds.
// Absent names are ignored.
func (t *Table) SetParams(name string, types []ast.ExpType) {
	e := t.LookupAny(name)
	if e == nil {
		return
	}
	e.Params = slices.Clone(types)
	if e.Params == nil {
		e.Params = []ast.ExpType{}
	}
}

// Len reports the number of entries.
func (t *Table) Len() int { return t.count }

// NextLocation is the location the next insertion will receive.
func (t *Table) NextLocation() int { return t.next }

// Entries lists every entry grouped by bucket, chain order within a bucket.
func (t *Table) Entries() []*Entry {
	out := make([]*Entry, 0, t.count)
	for i := range t.buckets {
		for e := t.buckets[i]; e != nil; e = e.next {
			out = append(out, e)
		}
	}
	return out
}

// InScope lists the entries declared in scope, ordered by location.
func (t *Table) InScope(scope ast.ScopeID) []*Entry {
	var out []*Entry
	for _, e := range t.Entries() {
		if e.Scope == scope {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b *Entry) int { return a.Location - b.Location })
	return out
}

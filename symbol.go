package schemelet

import "strings"

// symbolTable interns Symbol values so that two requests for the same
// name return the same *Symbol pointer, making eq? on symbols a
// pointer comparison. A map keeps lookup O(1) regardless of how many
// distinct identifiers a program uses.
//
// Case-insensitive and case-sensitive symbols are interned in
// separate tables, since `sym("Foo")` and `symCase("Foo")` must not
// collide with each other even though they share spelling.
type symbolTable struct {
	insensitive map[string]*Symbol
	sensitive   map[string]*Symbol
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		insensitive: make(map[string]*Symbol),
		sensitive:   make(map[string]*Symbol),
	}
}

// intern returns the interned Symbol for name, folding ASCII case
// first, so sym("FOO"), sym("foo") and sym("Foo") all return the same
// *Symbol. The second return value is true only the first time a
// given name is seen, telling the caller the Symbol is new and needs
// to be registered with the collector.
func (t *symbolTable) intern(name string) (*Symbol, bool) {
	key := strings.ToLower(name)
	if s, ok := t.insensitive[key]; ok {
		return s, false
	}
	s := &Symbol{Name: key}
	t.insensitive[key] = s
	return s, true
}

// internCase returns the interned case-sensitive Symbol for name,
// preserving spelling exactly. See intern for the bool's meaning.
func (t *symbolTable) internCase(name string) (*Symbol, bool) {
	if s, ok := t.sensitive[name]; ok {
		return s, false
	}
	s := &Symbol{Name: name, CaseSensitive: true}
	t.sensitive[name] = s
	return s, true
}

// all returns every interned symbol from both tables. The collector's
// sweep does not use it; it calls delete for each swept symbol (see
// heap.go's GC).
func (t *symbolTable) all() []*Symbol {
	out := make([]*Symbol, 0, len(t.insensitive)+len(t.sensitive))
	for _, s := range t.insensitive {
		out = append(out, s)
	}
	for _, s := range t.sensitive {
		out = append(out, s)
	}
	return out
}

// delete removes name from whichever table it belongs to, called only
// from the sweep phase for symbols that didn't survive collection.
func (t *symbolTable) delete(s *Symbol) {
	if s.CaseSensitive {
		delete(t.sensitive, s.Name)
	} else {
		delete(t.insensitive, s.Name)
	}
}

// Package symtab implements nested lexical scopes for the checker.
//
// Scopes live in an arena owned by the Table and refer to their parent by
// index. Popping a scope discards it, so the arena only ever holds the
// chain from the global scope to the current one.
package symtab

import (
	"fmt"

	"github.com/glebzikunov/MTRAN/internal/types"
)

type Kind int

const (
	Variable Kind = iota
	Param
	Array
	Func
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Param:
		return "parameter"
	case Array:
		return "array"
	case Func:
		return "function"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Symbol struct {
	Name string
	Type types.Type
	Kind Kind
	Line int // declaration line
}

// ScopeID indexes a scope in the arena. The global scope is 0.
type ScopeID int

const noScope ScopeID = -1

type scope struct {
	name    string
	parent  ScopeID
	symbols map[string]*Symbol
}

type Table struct {
	scopes  []scope
	current ScopeID
}

// New returns a table holding only the global scope.
func New() *Table {
	t := &Table{current: noScope}
	t.Push("global")
	return t
}

// DuplicateError is returned by Put when the current scope already holds
// a symbol with the same name.
type DuplicateError struct {
	Name     string
	Previous *Symbol
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("symbol '%s' already declared at line %d", e.Name, e.Previous.Line)
}

// Put declares sym in the current scope. Shadowing a symbol from an
// enclosing scope is allowed.
func (t *Table) Put(sym *Symbol) error {
	s := &t.scopes[t.current]
	if prev, ok := s.symbols[sym.Name]; ok {
		return &DuplicateError{Name: sym.Name, Previous: prev}
	}
	s.symbols[sym.Name] = sym
	return nil
}

// Get resolves name from the current scope outwards.
func (t *Table) Get(name string) (*Symbol, bool) {
	for id := t.current; id != noScope; id = t.scopes[id].parent {
		if sym, ok := t.scopes[id].symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Local looks name up in the current scope only.
func (t *Table) Local(name string) (*Symbol, bool) {
	sym, ok := t.scopes[t.current].symbols[name]
	return sym, ok
}

// Push opens a child of the current scope and makes it current.
func (t *Table) Push(name string) ScopeID {
	t.scopes = append(t.scopes, scope{
		name:    name,
		parent:  t.current,
		symbols: make(map[string]*Symbol),
	})
	t.current = ScopeID(len(t.scopes) - 1)
	return t.current
}

// Pop closes the current scope. It reports false, and does nothing, when
// the current scope is the global one.
func (t *Table) Pop() bool {
	parent := t.scopes[t.current].parent
	if parent == noScope {
		return false
	}
	t.scopes[t.current] = scope{}
	t.scopes = t.scopes[:t.current]
	t.current = parent
	return true
}

func (t *Table) Current() ScopeID { return t.current }

// Depth is the number of enclosing scopes; 0 in the global scope.
func (t *Table) Depth() int {
	d := 0
	for id := t.scopes[t.current].parent; id != noScope; id = t.scopes[id].parent {
		d++
	}
	return d
}

func (t *Table) ScopeName() string { return t.scopes[t.current].name }

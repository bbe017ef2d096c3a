// Package vars implements the variable store of the interpreter.
package vars

import (
	"strings"

	"src.noviq.dev/pkg/diag"
	"src.noviq.dev/pkg/vals"
)

// DefaultMaxVars is the default maximum number of variables in a Store.
const DefaultMaxVars = 1000

// Var is a named variable.
type Var struct {
	Name  string
	Value vals.Value
	Const bool
}

// Store maps names to variables. Variables can be added and updated, but never
// removed individually. The zero value is not usable; use NewStore.
//
// A Store is not safe for concurrent use; it has a single writer, the
// interpreter that owns it.
type Store struct {
	max   int
	vars  []*Var
	index map[string]int
}

// NewStore creates an empty Store that holds at most max variables. A
// non-positive max means DefaultMaxVars.
func NewStore(max int) *Store {
	if max <= 0 {
		max = DefaultMaxVars
	}
	return &Store{max: max, index: make(map[string]int)}
}

// Find looks up a variable. Spaces and tabs around name are ignored. The
// returned *Var is owned by the Store and must not be modified.
func (s *Store) Find(name string) (*Var, bool) {
	i, ok := s.index[strings.Trim(name, " \t")]
	if !ok {
		return nil, false
	}
	return s.vars[i], true
}

// Add sets the value of a variable, creating it if it doesn't exist. The type
// of an existing variable may change. It is an error to write to a constant,
// or to create a variable beyond the maximum.
func (s *Store) Add(name string, v vals.Value, isConst bool) error {
	if i, ok := s.index[name]; ok {
		existing := s.vars[i]
		if existing.Const {
			return diag.Errorf(diag.ConstModify, "Cannot modify constant '%s'", name)
		}
		existing.Value = v
		return nil
	}
	if len(s.vars) >= s.max {
		return diag.Errorf(diag.Memory, "Maximum number of variables (%d) exceeded", s.max)
	}
	s.index[name] = len(s.vars)
	s.vars = append(s.vars, &Var{Name: name, Value: v, Const: isConst})
	return nil
}

// Len returns the number of variables.
func (s *Store) Len() int { return len(s.vars) }

// Each calls f for each variable, in the order they were created.
func (s *Store) Each(f func(*Var)) {
	for _, v := range s.vars {
		f(v)
	}
}

// Names returns the names of all variables, in the order they were created.
func (s *Store) Names() []string {
	names := make([]string, len(s.vars))
	for i, v := range s.vars {
		names[i] = v.Name
	}
	return names
}

// Reset removes all variables.
func (s *Store) Reset() {
	s.vars = nil
	s.index = make(map[string]int)
}

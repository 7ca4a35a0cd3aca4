package pddl

import (
	"fmt"
	"sort"
	"strings"
)

// Atom is a predicate applied to an ordered argument tuple. In lifted
// conditions the arguments may be variables; a ground atom carries
// object names only. Two atoms are equal iff predicate and argument
// tuple are equal.
type Atom struct {
	Predicate string
	Args      []string
}

func (a Atom) initElement() {}

// Key returns the canonical identity of the atom, usable as a map key.
func (a Atom) Key() string {
	return a.Predicate + "(" + strings.Join(a.Args, ",") + ")"
}

func (a Atom) String() string {
	return a.Key()
}

// Rename returns the atom with every argument substituted through sub.
// Arguments absent from sub (constants) are kept as-is.
func (a Atom) Rename(sub map[string]string) Atom {
	args := make([]string, len(a.Args))
	for i, arg := range a.Args {
		if obj, ok := sub[arg]; ok {
			args[i] = obj
		} else {
			args[i] = arg
		}
	}
	return Atom{Predicate: a.Predicate, Args: args}
}

// Literal is an atom with a polarity.
type Literal struct {
	Atom    Atom
	Negated bool
}

func (l Literal) Key() string {
	if l.Negated {
		return "not " + l.Atom.Key()
	}
	return l.Atom.Key()
}

func (l Literal) String() string {
	return l.Key()
}

// AtomSet is a set of ground atoms keyed by their canonical form.
type AtomSet map[string]Atom

func NewAtomSet(atoms ...Atom) AtomSet {
	s := make(AtomSet, len(atoms))
	for _, a := range atoms {
		s.Add(a)
	}
	return s
}

func (s AtomSet) Add(a Atom) {
	s[a.Key()] = a
}

func (s AtomSet) Contains(a Atom) bool {
	_, ok := s[a.Key()]
	return ok
}

// Sorted returns the atoms in canonical-key order.
func (s AtomSet) Sorted() []Atom {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	atoms := make([]Atom, 0, len(keys))
	for _, key := range keys {
		atoms = append(atoms, s[key])
	}
	return atoms
}

// FunctionCall is a numeric function applied to an argument tuple.
type FunctionCall struct {
	Function string
	Args     []string
}

func (f FunctionCall) Key() string {
	return f.Function + "(" + strings.Join(f.Args, ",") + ")"
}

func (f FunctionCall) Rename(sub map[string]string) FunctionCall {
	args := make([]string, len(f.Args))
	for i, arg := range f.Args {
		if obj, ok := sub[arg]; ok {
			args[i] = obj
		} else {
			args[i] = arg
		}
	}
	return FunctionCall{Function: f.Function, Args: args}
}

// Assignment gives a numeric function value in the initial state.
type Assignment struct {
	Fluent FunctionCall
	Value  float64
}

func (a Assignment) initElement() {}

func (a Assignment) String() string {
	return fmt.Sprintf("%s = %v", a.Fluent.Key(), a.Value)
}

package pddl

import "errors"

// ErrImpossible signals that a condition contains a literal refuted by
// the static part of the initial state, so no reachable state can ever
// satisfy it. It is a controlled outcome, not a failure: callers check
// it with errors.Is and treat the enclosing instantiation as empty.
var ErrImpossible = errors.New("condition statically impossible")

// Condition is a lifted condition over schema parameters and
// constants. The normalized form is closed: Truth, Falsity, a single
// literal, or a conjunction of conditions.
type Condition interface {
	instantiate(sub map[string]string, init, fluents AtomSet, out *[]Literal) error
	eachLiteral(fn func(LiteralCondition))
}

// InstantiateCondition grounds a condition under the given
// substitution. Literals over fluent predicates are kept with their
// polarity. Literals over static atoms are resolved against the
// initial facts: satisfied ones are dropped, refuted ones make the
// whole condition fail with ErrImpossible.
func InstantiateCondition(cond Condition, sub map[string]string, init, fluents AtomSet) ([]Literal, error) {
	var result []Literal
	if err := cond.instantiate(sub, init, fluents, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ConditionPredicates reports the predicate name of every literal in
// the condition, in syntactic order.
func ConditionPredicates(cond Condition) []string {
	var names []string
	cond.eachLiteral(func(l LiteralCondition) {
		names = append(names, l.Atom.Predicate)
	})
	return names
}

// Truth is the empty condition, always satisfied.
type Truth struct{}

func (Truth) instantiate(map[string]string, AtomSet, AtomSet, *[]Literal) error { return nil }
func (Truth) eachLiteral(func(LiteralCondition))                                {}

// Falsity is never satisfied. Normalization produces it for
// contradictory conditions.
type Falsity struct{}

func (Falsity) instantiate(map[string]string, AtomSet, AtomSet, *[]Literal) error {
	return ErrImpossible
}
func (Falsity) eachLiteral(func(LiteralCondition)) {}

// LiteralCondition is a single (possibly negated) atom.
type LiteralCondition struct {
	Atom    Atom
	Negated bool
}

func (l LiteralCondition) instantiate(sub map[string]string, init, fluents AtomSet, out *[]Literal) error {
	atom := l.Atom.Rename(sub)
	if fluents.Contains(atom) {
		*out = append(*out, Literal{Atom: atom, Negated: l.Negated})
		return nil
	}
	// Static atom: its truth is fixed by the initial state.
	if l.Negated == init.Contains(atom) {
		return ErrImpossible
	}
	return nil
}

func (l LiteralCondition) eachLiteral(fn func(LiteralCondition)) { fn(l) }

// Conjunction is the conjunction of its parts.
type Conjunction struct {
	Parts []Condition
}

func (c Conjunction) instantiate(sub map[string]string, init, fluents AtomSet, out *[]Literal) error {
	for _, part := range c.Parts {
		if err := part.instantiate(sub, init, fluents, out); err != nil {
			return err
		}
	}
	return nil
}

func (c Conjunction) eachLiteral(fn func(LiteralCondition)) {
	for _, part := range c.Parts {
		part.eachLiteral(fn)
	}
}

// IsVariable reports whether a condition argument is a schema variable
// rather than an object constant. Variables carry a "?" prefix.
func IsVariable(arg string) bool {
	return len(arg) > 0 && arg[0] == '?'
}

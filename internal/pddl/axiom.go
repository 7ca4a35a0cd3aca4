package pddl

import "strings"

// Axiom is a derived-predicate schema: its name doubles as the derived
// predicate. The first HeadArity parameters are the head arguments;
// any remaining parameters are existential body variables introduced
// by normalization. Like actions, axioms are keyed by pointer
// identity, never by name.
type Axiom struct {
	Name       string
	Parameters []TypedVariable
	HeadArity  int
	Condition  Condition
}

// GroundAxiom is a variable-free derived-predicate rule: when every
// condition literal holds, the head atom holds.
type GroundAxiom struct {
	Name      string
	Condition []Literal
	Effect    Atom
}

// SortKey is a total order over ground axioms, stable across runs on
// the same input. Downstream stratified evaluation needs a fixed
// processing order.
func (g *GroundAxiom) SortKey() string {
	parts := make([]string, 0, len(g.Condition)+1)
	parts = append(parts, g.Effect.Key())
	for _, lit := range g.Condition {
		parts = append(parts, lit.Key())
	}
	return strings.Join(parts, "|")
}

// Instantiate grounds the axiom under sub. A statically refuted body
// yields nil, the expected outcome for pruned rules.
func (a *Axiom) Instantiate(sub map[string]string, init, fluents AtomSet) *GroundAxiom {
	condition, err := InstantiateCondition(a.Condition, sub, init, fluents)
	if err != nil {
		return nil
	}
	args := make([]string, a.HeadArity)
	for i := 0; i < a.HeadArity; i++ {
		args[i] = sub[a.Parameters[i].Name]
	}
	return &GroundAxiom{
		Name:      a.Name,
		Condition: condition,
		Effect:    Atom{Predicate: a.Name, Args: args},
	}
}

// Package model defines the reachability model consumed by the
// grounding engine: a finite sequence of facts over-approximating
// which ground atoms and schema parameter bindings can ever matter.
package model

import "groundwork/internal/pddl"

// Fact is one entry of the reachability model. It is a closed sum:
// an ordinary ground atom, a reachable action binding, a reachable
// axiom binding, or the sentinel marking the goal relaxed-reachable.
type Fact interface {
	fact()
}

// AtomFact is an ordinary ground atom derived by the oracle. It
// describes reachable state; the engine consumes these only through
// the fluent-fact projection.
type AtomFact struct {
	Atom pddl.Atom
}

// ActionFact marks a parameter binding of an action schema as
// reachable. The binding is the first len(Action.Parameters) entries
// of Args; trailing entries are oracle-internal bookkeeping.
type ActionFact struct {
	Action *pddl.Action
	Args   []string
}

// AxiomFact marks a parameter binding of an axiom schema as reachable.
type AxiomFact struct {
	Axiom *pddl.Axiom
	Args  []string
}

// GoalReachableFact is the sentinel recording that the goal is
// reachable under the delete relaxation.
type GoalReachableFact struct{}

func (AtomFact) fact()          {}
func (ActionFact) fact()        {}
func (AxiomFact) fact()         {}
func (GoalReachableFact) fact() {}

// Model is the oracle's output in derivation order.
type Model []Fact

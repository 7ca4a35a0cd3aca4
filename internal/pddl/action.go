package pddl

import (
	"fmt"
	"math"
	"strings"
)

// CostExpr is an action's cost term: a numeric constant or a static
// function looked up in the initial assignments.
type CostExpr struct {
	Constant float64
	Call     *FunctionCall
}

// Action is a parameterized action schema. Two schemas may share a
// display name after normalization splits a schema into
// specializations; everywhere a schema is referenced it is keyed by
// the *Action pointer, never by Name.
type Action struct {
	Name         string
	Parameters   []TypedVariable
	Precondition Condition
	Effects      []Effect
	Cost         *CostExpr
}

// GroundAction is a variable-free action: instantiated precondition,
// add and delete effects with their guards, and a concrete cost.
type GroundAction struct {
	Name         string
	Precondition []Literal
	AddEffects   []GroundEffect
	DelEffects   []GroundEffect
	Cost         int
}

// Instantiate grounds the schema under sub. It returns nil when the
// precondition is statically refuted or every effect branch is
// vacuous; both are expected outcomes, not errors. A non-nil error is
// reserved for genuine task inconsistencies (an unresolvable cost
// term).
func (a *Action) Instantiate(sub map[string]string, init AtomSet, assignments map[string]float64, fluents AtomSet, objectsByType map[string][]string, useCostMetric bool) (*GroundAction, error) {
	args := make([]string, len(a.Parameters))
	for i, par := range a.Parameters {
		args[i] = sub[par.Name]
	}
	name := fmt.Sprintf("(%s %s)", a.Name, strings.Join(args, " "))

	precondition, err := InstantiateCondition(a.Precondition, sub, init, fluents)
	if err != nil {
		return nil, nil
	}

	var adds, deletes []GroundEffect
	for _, eff := range a.Effects {
		eff.instantiate(sub, init, fluents, objectsByType, &adds, &deletes)
	}
	if len(adds) == 0 && len(deletes) == 0 {
		return nil, nil
	}

	cost := 1
	if useCostMetric {
		cost, err = a.evaluateCost(sub, assignments)
		if err != nil {
			return nil, fmt.Errorf("action %s: %w", name, err)
		}
	}

	return &GroundAction{
		Name:         name,
		Precondition: precondition,
		AddEffects:   adds,
		DelEffects:   deletes,
		Cost:         cost,
	}, nil
}

func (a *Action) evaluateCost(sub map[string]string, assignments map[string]float64) (int, error) {
	if a.Cost == nil {
		return 0, nil
	}
	if a.Cost.Call == nil {
		return int(math.Trunc(a.Cost.Constant)), nil
	}
	call := a.Cost.Call.Rename(sub)
	value, ok := assignments[call.Key()]
	if !ok {
		return 0, fmt.Errorf("cost term %s has no initial assignment", call.Key())
	}
	return int(math.Trunc(value)), nil
}

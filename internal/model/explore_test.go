package model

import (
	"testing"

	"groundwork/internal/pddl"
)

func deliveryTask() *pddl.Task {
	drive := &pddl.Action{
		Name: "drive",
		Parameters: []pddl.TypedVariable{
			{Name: "?t", Type: "truck"},
			{Name: "?from", Type: "location"},
			{Name: "?to", Type: "location"},
		},
		Precondition: pddl.Conjunction{Parts: []pddl.Condition{
			pddl.LiteralCondition{Atom: pddl.Atom{Predicate: "at", Args: []string{"?t", "?from"}}},
			pddl.LiteralCondition{Atom: pddl.Atom{Predicate: "road", Args: []string{"?from", "?to"}}},
		}},
		Effects: []pddl.Effect{
			{Condition: pddl.Truth{}, Literal: pddl.Literal{Atom: pddl.Atom{Predicate: "at", Args: []string{"?t", "?to"}}}},
			{Condition: pddl.Truth{}, Literal: pddl.Literal{Atom: pddl.Atom{Predicate: "at", Args: []string{"?t", "?from"}}, Negated: true}},
		},
	}
	return &pddl.Task{
		Domain: "delivery",
		Types:  []pddl.Type{{Name: "truck"}, {Name: "location"}},
		Objects: []pddl.Object{
			{Name: "red", Type: "truck"},
			{Name: "depot", Type: "location"},
			{Name: "market", Type: "location"},
			{Name: "island", Type: "location"},
		},
		Predicates: []pddl.Predicate{
			{Name: "at", Arity: 2},
			{Name: "road", Arity: 2},
		},
		Actions: []*pddl.Action{drive},
		Init: []pddl.InitElement{
			pddl.Atom{Predicate: "at", Args: []string{"red", "depot"}},
			pddl.Atom{Predicate: "road", Args: []string{"depot", "market"}},
		},
		Goal: pddl.LiteralCondition{Atom: pddl.Atom{Predicate: "at", Args: []string{"red", "market"}}},
	}
}

func modelAtoms(m Model) map[string]bool {
	atoms := make(map[string]bool)
	for _, fact := range m {
		if f, ok := fact.(AtomFact); ok {
			atoms[f.Atom.Key()] = true
		}
	}
	return atoms
}

func modelActionBindings(m Model, action *pddl.Action) [][]string {
	var bindings [][]string
	for _, fact := range m {
		if f, ok := fact.(ActionFact); ok && f.Action == action {
			bindings = append(bindings, f.Args)
		}
	}
	return bindings
}

func TestCompute(t *testing.T) {
	task := deliveryTask()
	m, err := Compute(task)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	atoms := modelAtoms(m)

	t.Run("initial atoms are in the model", func(t *testing.T) {
		if !atoms["at(red,depot)"] || !atoms["road(depot,market)"] {
			t.Fatalf("missing initial atoms: %#v", atoms)
		}
	})

	t.Run("positive effects are derived across roads", func(t *testing.T) {
		if !atoms["at(red,market)"] {
			t.Fatalf("expected derived atom, got %#v", atoms)
		}
	})

	t.Run("delete effects derive nothing", func(t *testing.T) {
		for key := range atoms {
			if key == "" {
				t.Fatalf("empty atom key")
			}
		}
		// The relaxation never invents road atoms, so the island stays
		// unreachable.
		if atoms["at(red,island)"] {
			t.Fatalf("island must be unreachable")
		}
	})

	t.Run("only supported bindings are emitted", func(t *testing.T) {
		bindings := modelActionBindings(m, task.Actions[0])
		if len(bindings) != 1 {
			t.Fatalf("expected one reachable binding, got %#v", bindings)
		}
		want := []string{"red", "depot", "market"}
		for i, arg := range want {
			if bindings[0][i] != arg {
				t.Fatalf("unexpected binding: %#v", bindings[0])
			}
		}
	})

	t.Run("goal sentinel is last when reachable", func(t *testing.T) {
		if len(m) == 0 {
			t.Fatalf("empty model")
		}
		if _, ok := m[len(m)-1].(GoalReachableFact); !ok {
			t.Fatalf("expected trailing goal sentinel, got %T", m[len(m)-1])
		}
	})

	t.Run("type atoms stay out of the model", func(t *testing.T) {
		if atoms["truck(red)"] || atoms["location(depot)"] {
			t.Fatalf("type-membership atoms must not be emitted: %#v", atoms)
		}
	})
}

func TestComputeUnreachableGoal(t *testing.T) {
	task := deliveryTask()
	task.Goal = pddl.LiteralCondition{Atom: pddl.Atom{Predicate: "at", Args: []string{"red", "island"}}}
	m, err := Compute(task)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, fact := range m {
		if _, ok := fact.(GoalReachableFact); ok {
			t.Fatalf("goal must not be marked reachable")
		}
	}
}

func TestComputeAxioms(t *testing.T) {
	task := deliveryTask()
	task.Axioms = []*pddl.Axiom{
		{
			Name: "served",
			Parameters: []pddl.TypedVariable{
				{Name: "?l", Type: "location"},
				{Name: "?t", Type: "truck"},
			},
			HeadArity: 1,
			Condition: pddl.LiteralCondition{Atom: pddl.Atom{Predicate: "at", Args: []string{"?t", "?l"}}},
		},
	}
	m, err := Compute(task)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	atoms := modelAtoms(m)
	if !atoms["served(depot)"] || !atoms["served(market)"] {
		t.Fatalf("expected derived axiom heads, got %#v", atoms)
	}
	if atoms["served(island)"] {
		t.Fatalf("island must stay unserved")
	}
	var axiomBindings int
	for _, fact := range m {
		if _, ok := fact.(AxiomFact); ok {
			axiomBindings++
		}
	}
	if axiomBindings != 2 {
		t.Fatalf("expected two reachable axiom bindings, got %d", axiomBindings)
	}
}

func TestComputeTypeConditions(t *testing.T) {
	// A precondition naming a type as a unary predicate is supported by
	// the membership atoms even though they never reach the model.
	task := deliveryTask()
	task.Actions[0].Precondition = pddl.LiteralCondition{Atom: pddl.Atom{Predicate: "truck", Args: []string{"?t"}}}
	m, err := Compute(task)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	bindings := modelActionBindings(m, task.Actions[0])
	// Every (from, to) pair is reachable once the road test is gone.
	if len(bindings) != 9 {
		t.Fatalf("expected nine bindings, got %d", len(bindings))
	}
}

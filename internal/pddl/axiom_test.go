package pddl

import (
	"reflect"
	"testing"
)

func TestAxiomInstantiate(t *testing.T) {
	axiom := &Axiom{
		Name: "reachable",
		Parameters: []TypedVariable{
			{Name: "?from", Type: "location"},
			{Name: "?to", Type: "location"},
			{Name: "?via", Type: "location"},
		},
		HeadArity: 2,
		Condition: Conjunction{Parts: []Condition{
			LiteralCondition{Atom: Atom{Predicate: "reachable", Args: []string{"?from", "?via"}}},
			LiteralCondition{Atom: Atom{Predicate: "road", Args: []string{"?via", "?to"}}},
		}},
	}
	init := NewAtomSet(Atom{Predicate: "road", Args: []string{"market", "port"}})
	fluents := NewAtomSet(Atom{Predicate: "reachable", Args: []string{"depot", "market"}})

	t.Run("head takes the external parameter prefix", func(t *testing.T) {
		sub := map[string]string{"?from": "depot", "?to": "port", "?via": "market"}
		ground := axiom.Instantiate(sub, init, fluents)
		if ground == nil {
			t.Fatalf("expected a ground axiom")
		}
		if ground.Effect.Key() != "reachable(depot,port)" {
			t.Fatalf("unexpected head: %s", ground.Effect)
		}
		wantCondition := []Literal{{Atom: Atom{Predicate: "reachable", Args: []string{"depot", "market"}}}}
		if !reflect.DeepEqual(ground.Condition, wantCondition) {
			t.Fatalf("unexpected condition: %#v", ground.Condition)
		}
	})

	t.Run("statically refuted body yields nothing", func(t *testing.T) {
		sub := map[string]string{"?from": "depot", "?to": "depot", "?via": "market"}
		if ground := axiom.Instantiate(sub, init, fluents); ground != nil {
			t.Fatalf("expected nil axiom, got %#v", ground)
		}
	})
}

func TestGroundAxiomSortKey(t *testing.T) {
	a := &GroundAxiom{
		Name:      "reachable",
		Condition: []Literal{{Atom: Atom{Predicate: "road", Args: []string{"a", "b"}}}},
		Effect:    Atom{Predicate: "reachable", Args: []string{"a", "b"}},
	}
	b := &GroundAxiom{
		Name:      "reachable",
		Condition: []Literal{{Atom: Atom{Predicate: "road", Args: []string{"b", "c"}}}},
		Effect:    Atom{Predicate: "reachable", Args: []string{"b", "c"}},
	}
	if a.SortKey() == b.SortKey() {
		t.Fatalf("expected distinct sort keys")
	}
	if !(a.SortKey() < b.SortKey()) {
		t.Fatalf("expected %q before %q", a.SortKey(), b.SortKey())
	}
}

package pddl

import (
	"errors"
	"reflect"
	"testing"
)

func TestInstantiateCondition(t *testing.T) {
	init := NewAtomSet(
		Atom{Predicate: "road", Args: []string{"depot", "market"}},
	)
	fluents := NewAtomSet(
		Atom{Predicate: "at", Args: []string{"red", "depot"}},
		Atom{Predicate: "at", Args: []string{"red", "market"}},
	)
	sub := map[string]string{"?t": "red", "?from": "depot", "?to": "market"}

	t.Run("fluent literal is kept", func(t *testing.T) {
		cond := LiteralCondition{Atom: Atom{Predicate: "at", Args: []string{"?t", "?from"}}}
		literals, err := InstantiateCondition(cond, sub, init, fluents)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []Literal{{Atom: Atom{Predicate: "at", Args: []string{"red", "depot"}}}}
		if !reflect.DeepEqual(literals, want) {
			t.Fatalf("unexpected literals: %#v", literals)
		}
	})

	t.Run("negated fluent literal keeps polarity", func(t *testing.T) {
		cond := LiteralCondition{Atom: Atom{Predicate: "at", Args: []string{"?t", "?to"}}, Negated: true}
		literals, err := InstantiateCondition(cond, sub, init, fluents)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(literals) != 1 || !literals[0].Negated {
			t.Fatalf("unexpected literals: %#v", literals)
		}
	})

	t.Run("satisfied static literal is dropped", func(t *testing.T) {
		cond := LiteralCondition{Atom: Atom{Predicate: "road", Args: []string{"?from", "?to"}}}
		literals, err := InstantiateCondition(cond, sub, init, fluents)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(literals) != 0 {
			t.Fatalf("expected no literals, got %#v", literals)
		}
	})

	t.Run("refuted static literal is impossible", func(t *testing.T) {
		cond := LiteralCondition{Atom: Atom{Predicate: "road", Args: []string{"?to", "?from"}}}
		_, err := InstantiateCondition(cond, sub, init, fluents)
		if !errors.Is(err, ErrImpossible) {
			t.Fatalf("expected ErrImpossible, got %v", err)
		}
	})

	t.Run("negated static literal present initially is impossible", func(t *testing.T) {
		cond := LiteralCondition{Atom: Atom{Predicate: "road", Args: []string{"?from", "?to"}}, Negated: true}
		_, err := InstantiateCondition(cond, sub, init, fluents)
		if !errors.Is(err, ErrImpossible) {
			t.Fatalf("expected ErrImpossible, got %v", err)
		}
	})

	t.Run("conjunction accumulates in order", func(t *testing.T) {
		cond := Conjunction{Parts: []Condition{
			LiteralCondition{Atom: Atom{Predicate: "at", Args: []string{"?t", "?from"}}},
			LiteralCondition{Atom: Atom{Predicate: "road", Args: []string{"?from", "?to"}}},
			LiteralCondition{Atom: Atom{Predicate: "at", Args: []string{"?t", "?to"}}},
		}}
		literals, err := InstantiateCondition(cond, sub, init, fluents)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []Literal{
			{Atom: Atom{Predicate: "at", Args: []string{"red", "depot"}}},
			{Atom: Atom{Predicate: "at", Args: []string{"red", "market"}}},
		}
		if !reflect.DeepEqual(literals, want) {
			t.Fatalf("unexpected literals: %#v", literals)
		}
	})

	t.Run("conjunction with impossible part fails", func(t *testing.T) {
		cond := Conjunction{Parts: []Condition{
			LiteralCondition{Atom: Atom{Predicate: "at", Args: []string{"?t", "?from"}}},
			Falsity{},
		}}
		_, err := InstantiateCondition(cond, sub, init, fluents)
		if !errors.Is(err, ErrImpossible) {
			t.Fatalf("expected ErrImpossible, got %v", err)
		}
	})

	t.Run("truth instantiates to nothing", func(t *testing.T) {
		literals, err := InstantiateCondition(Truth{}, nil, init, fluents)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(literals) != 0 {
			t.Fatalf("expected no literals, got %#v", literals)
		}
	})

	t.Run("constants pass through the substitution", func(t *testing.T) {
		cond := LiteralCondition{Atom: Atom{Predicate: "at", Args: []string{"red", "?from"}}}
		literals, err := InstantiateCondition(cond, sub, init, fluents)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(literals) != 1 || literals[0].Atom.Key() != "at(red,depot)" {
			t.Fatalf("unexpected literals: %#v", literals)
		}
	})
}

func TestConditionPredicates(t *testing.T) {
	cond := Conjunction{Parts: []Condition{
		LiteralCondition{Atom: Atom{Predicate: "at", Args: []string{"?t", "?from"}}},
		Conjunction{Parts: []Condition{
			LiteralCondition{Atom: Atom{Predicate: "road", Args: []string{"?from", "?to"}}, Negated: true},
		}},
		Truth{},
	}}
	got := ConditionPredicates(cond)
	if !reflect.DeepEqual(got, []string{"at", "road"}) {
		t.Fatalf("unexpected predicates: %#v", got)
	}
}

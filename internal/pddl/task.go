// Package pddl holds the lifted planning-task model: typed objects,
// predicates, action and axiom schemas, and the instantiation machinery
// that turns a schema plus a parameter binding into a ground action or
// axiom.
package pddl

// Type is a named object type. Supertypes lists every ancestor type
// name, not just the immediate parent.
type Type struct {
	Name       string
	Supertypes []string
}

// Object is a task object with its declared type.
type Object struct {
	Name string
	Type string
}

// Predicate declares a predicate name and its arity.
type Predicate struct {
	Name  string
	Arity int
}

// Function declares a numeric function symbol and its arity.
type Function struct {
	Name  string
	Arity int
}

// TypedVariable is a schema parameter: a variable name plus its type.
type TypedVariable struct {
	Name string
	Type string
}

// InitElement is one entry of the raw initial state: either an Atom
// (a boolean fact) or an Assignment (a numeric function value).
type InitElement interface {
	initElement()
}

// Task is the lifted task as produced by the task loader. It is
// read-only once built; grounding never mutates it.
type Task struct {
	Domain  string
	Problem string

	Types      []Type
	Objects    []Object
	Predicates []Predicate
	Functions  []Function

	Actions []*Action
	Axioms  []*Axiom

	Init []InitElement
	Goal Condition

	// UseMinCostMetric selects action costs from the task metric.
	// When false every ground action costs 1.
	UseMinCostMetric bool
}

// PredicateArity returns the declared arity of a predicate, or -1 if
// the predicate is not declared. Axiom heads count as predicates.
func (t *Task) PredicateArity(name string) int {
	for _, p := range t.Predicates {
		if p.Name == name {
			return p.Arity
		}
	}
	for _, ax := range t.Axioms {
		if ax.Name == name {
			return ax.HeadArity
		}
	}
	return -1
}

package ground

import (
	"fmt"
	"io"

	"groundwork/internal/model"
	"groundwork/internal/pddl"
)

// WriteFluentPredicates writes one "name arity" line per fluent
// predicate, sorted by name.
func WriteFluentPredicates(w io.Writer, task *pddl.Task, classification Classification) error {
	return writePredicateTable(w, task, classification.FluentNames())
}

// WriteStaticPredicates writes one "name arity" line per static
// predicate, sorted by name, followed by one synthetic unary predicate
// per type for the type-membership atoms.
func WriteStaticPredicates(w io.Writer, task *pddl.Task, classification Classification) error {
	if err := writePredicateTable(w, task, classification.StaticNames()); err != nil {
		return err
	}
	for _, t := range task.Types {
		if _, err := fmt.Fprintf(w, "%s 1\n", t.Name); err != nil {
			return err
		}
	}
	return nil
}

// WriteStaticAtoms writes every model atom over a static predicate in
// pred(arg,arg,...) form, in model order, followed by the
// type-membership atoms. A static atom absent from the initial state
// is an internal-consistency violation: static means never changes, so
// any static fact that is ever true was true initially.
func WriteStaticAtoms(w io.Writer, task *pddl.Task, classification Classification, m model.Model) error {
	initFacts, _ := SplitInitial(task.Init)
	for _, fact := range m {
		atomFact, ok := fact.(model.AtomFact)
		if !ok || !classification.IsStatic(atomFact.Atom.Predicate) {
			continue
		}
		if !initFacts.Contains(atomFact.Atom) {
			return fmt.Errorf("static atom %s is not in the initial state", atomFact.Atom)
		}
		if _, err := fmt.Fprintf(w, "%s\n", atomFact.Atom); err != nil {
			return err
		}
	}

	objectsByType, err := pddl.ObjectsByType(task.Objects, task.Types)
	if err != nil {
		return err
	}
	for _, t := range task.Types {
		for _, obj := range objectsByType[t.Name] {
			if _, err := fmt.Fprintf(w, "%s(%s)\n", t.Name, obj); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePredicateTable(w io.Writer, task *pddl.Task, names []string) error {
	for _, name := range names {
		arity := task.PredicateArity(name)
		if arity < 0 {
			return fmt.Errorf("predicate %s referenced by a schema but never declared", name)
		}
		if _, err := fmt.Fprintf(w, "%s %d\n", name, arity); err != nil {
			return err
		}
	}
	return nil
}

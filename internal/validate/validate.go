// Package validate runs consistency checks over a lifted task, its
// reachability model, and the grounding result, and reports findings
// without aborting: callers decide what is fatal.
package validate

import (
	"fmt"

	"groundwork/internal/ground"
	"groundwork/internal/model"
	"groundwork/internal/pddl"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeStaticAtomMissing = "static_atom_missing_from_init"
	codeGoalImpossible    = "goal_statically_impossible"
	codeGoalUnreachable   = "goal_not_relaxed_reachable"
	codeSchemaUnreachable = "schema_never_reachable"
	codeNoGroundActions   = "no_ground_actions"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Subject  string
}

type Report struct {
	Issues []Issue
}

// Run checks the grounding result against the task and model. Static
// atoms appearing in the model but missing from the initial state are
// errors: a static fact that is ever true must have been true
// initially. Unreachable schemas and goals are warnings; the grounded
// task is still usable.
func Run(task *pddl.Task, m model.Model, grounded *ground.Task) (*Report, error) {
	if task == nil {
		return nil, fmt.Errorf("task is required")
	}
	if grounded == nil {
		return nil, fmt.Errorf("grounded task is required")
	}

	var issues []Issue
	classification := ground.Classify(task)
	initFacts, _ := ground.SplitInitial(task.Init)

	for _, fact := range m {
		atomFact, ok := fact.(model.AtomFact)
		if !ok || !classification.IsStatic(atomFact.Atom.Predicate) {
			continue
		}
		if !initFacts.Contains(atomFact.Atom) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeStaticAtomMissing,
				Message:  "static atom derived by the model is not in the initial state",
				Subject:  atomFact.Atom.String(),
			})
		}
	}

	for _, action := range task.Actions {
		if len(grounded.ActionBindings[action]) == 0 {
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     codeSchemaUnreachable,
				Message:  "action schema has no reachable parameter binding",
				Subject:  action.Name,
			})
		}
	}
	for _, axiom := range task.Axioms {
		if len(grounded.AxiomBindings[axiom]) == 0 {
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     codeSchemaUnreachable,
				Message:  "axiom schema has no reachable parameter binding",
				Subject:  axiom.Name,
			})
		}
	}

	if grounded.GoalImpossible {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     codeGoalImpossible,
			Message:  "goal is refuted by the static initial facts; no plan exists",
			Subject:  "goal",
		})
	} else if !grounded.RelaxedReachable {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeGoalUnreachable,
			Message:  "goal is not reachable even under the delete relaxation",
			Subject:  "goal",
		})
	}

	if len(grounded.Actions) == 0 && len(task.Actions) > 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeNoGroundActions,
			Message:  "grounding produced no actions",
			Subject:  task.Domain,
		})
	}

	return &Report{Issues: issues}, nil
}

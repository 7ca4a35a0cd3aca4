package task

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"groundwork/internal/pddl"
)

func writeTask(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "task.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing task file: %v", err)
	}
	return path
}

const deliveryYAML = `
domain: delivery
problem: two-stops
metric: true
types:
  - name: object
  - name: truck
    parents: [object]
  - name: location
    parents: [object]
objects:
  - name: red
    type: truck
  - name: depot
    type: location
  - name: market
    type: location
predicates:
  - name: at
    arity: 2
  - name: road
    arity: 2
functions:
  - name: drive-cost
    arity: 2
actions:
  - name: drive
    parameters:
      - name: "?t"
        type: truck
      - name: "?from"
        type: location
      - name: "?to"
        type: location
    precondition:
      and:
        - predicate: at
          args: ["?t", "?from"]
        - predicate: road
          args: ["?from", "?to"]
    effects:
      - add:
          predicate: at
          args: ["?t", "?to"]
      - delete:
          predicate: at
          args: ["?t", "?from"]
    cost:
      function: drive-cost
      args: ["?from", "?to"]
axioms:
  - name: connected
    parameters:
      - name: "?from"
        type: location
      - name: "?to"
        type: location
    head_arity: 2
    condition:
      predicate: road
      args: ["?from", "?to"]
init:
  facts:
    - predicate: at
      args: [red, depot]
    - predicate: road
      args: [depot, market]
  assignments:
    - function: drive-cost
      args: [depot, market]
      value: 4
goal:
  predicate: at
  args: [red, market]
`

func TestLoad(t *testing.T) {
	task, err := Load(writeTask(t, deliveryYAML))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	t.Run("header", func(t *testing.T) {
		if task.Domain != "delivery" || task.Problem != "two-stops" {
			t.Fatalf("unexpected header: %s / %s", task.Domain, task.Problem)
		}
		if !task.UseMinCostMetric {
			t.Fatalf("expected cost metric")
		}
	})

	t.Run("declarations", func(t *testing.T) {
		if len(task.Types) != 3 || len(task.Objects) != 3 {
			t.Fatalf("unexpected declarations: %d types, %d objects", len(task.Types), len(task.Objects))
		}
		if task.PredicateArity("at") != 2 || task.PredicateArity("connected") != 2 {
			t.Fatalf("unexpected arities")
		}
		if len(task.Functions) != 1 || task.Functions[0].Name != "drive-cost" {
			t.Fatalf("unexpected functions: %#v", task.Functions)
		}
	})

	t.Run("action", func(t *testing.T) {
		if len(task.Actions) != 1 {
			t.Fatalf("expected one action")
		}
		action := task.Actions[0]
		if action.Name != "drive" || len(action.Parameters) != 3 {
			t.Fatalf("unexpected action: %#v", action)
		}
		if len(action.Effects) != 2 {
			t.Fatalf("expected two effects, got %d", len(action.Effects))
		}
		if !action.Effects[1].Literal.Negated {
			t.Fatalf("expected second effect to delete")
		}
		if action.Cost == nil || action.Cost.Call == nil || action.Cost.Call.Function != "drive-cost" {
			t.Fatalf("unexpected cost: %#v", action.Cost)
		}
	})

	t.Run("axiom", func(t *testing.T) {
		if len(task.Axioms) != 1 {
			t.Fatalf("expected one axiom")
		}
		axiom := task.Axioms[0]
		if axiom.Name != "connected" || axiom.HeadArity != 2 {
			t.Fatalf("unexpected axiom: %#v", axiom)
		}
	})

	t.Run("initial state", func(t *testing.T) {
		if len(task.Init) != 3 {
			t.Fatalf("expected three init elements, got %d", len(task.Init))
		}
		assign, ok := task.Init[2].(pddl.Assignment)
		if !ok {
			t.Fatalf("expected trailing assignment, got %T", task.Init[2])
		}
		if assign.Fluent.Key() != "drive-cost(depot,market)" || assign.Value != 4 {
			t.Fatalf("unexpected assignment: %#v", assign)
		}
	})

	t.Run("goal", func(t *testing.T) {
		lit, ok := task.Goal.(pddl.LiteralCondition)
		if !ok {
			t.Fatalf("expected literal goal, got %T", task.Goal)
		}
		if lit.Atom.Key() != "at(red,market)" {
			t.Fatalf("unexpected goal: %s", lit.Atom)
		}
	})
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load(writeTask(t, "domain: [unterminated")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadOmittedGoal(t *testing.T) {
	task, err := Load(writeTask(t, `
domain: empty
types:
  - name: object
objects:
  - name: a
    type: object
predicates:
  - name: marked
    arity: 1
actions:
  - name: mark
    parameters:
      - name: "?x"
        type: object
    effects:
      - add:
          predicate: marked
          args: ["?x"]
`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := task.Goal.(pddl.Truth); !ok {
		t.Fatalf("expected trivially true goal, got %T", task.Goal)
	}
}

func TestLoadRejects(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		message string
	}{
		{
			name:    "missing domain",
			yaml:    "problem: p",
			message: "domain name is required",
		},
		{
			name: "duplicate type",
			yaml: `
domain: d
types:
  - name: object
  - name: object
`,
			message: "duplicate type",
		},
		{
			name: "unknown supertype",
			yaml: `
domain: d
types:
  - name: truck
    parents: [vehicle]
`,
			message: "unknown supertype",
		},
		{
			name: "object with unknown type",
			yaml: `
domain: d
types:
  - name: object
objects:
  - name: red
    type: truck
`,
			message: "unknown type",
		},
		{
			name: "axiom colliding with predicate",
			yaml: `
domain: d
predicates:
  - name: reachable
    arity: 1
axioms:
  - name: reachable
`,
			message: "collides",
		},
		{
			name: "axiom head arity out of range",
			yaml: `
domain: d
types:
  - name: object
axioms:
  - name: reachable
    parameters:
      - name: "?x"
        type: object
    head_arity: 2
`,
			message: "head arity",
		},
		{
			name: "parameter without question mark",
			yaml: `
domain: d
types:
  - name: object
predicates:
  - name: marked
    arity: 1
actions:
  - name: mark
    parameters:
      - name: x
        type: object
    effects:
      - add:
          predicate: marked
          args: [x]
`,
			message: "must start with '?'",
		},
		{
			name: "unknown predicate in precondition",
			yaml: `
domain: d
types:
  - name: object
predicates:
  - name: marked
    arity: 1
actions:
  - name: mark
    parameters:
      - name: "?x"
        type: object
    precondition:
      predicate: shiny
      args: ["?x"]
    effects:
      - add:
          predicate: marked
          args: ["?x"]
`,
			message: "unknown predicate",
		},
		{
			name: "effect with add and delete",
			yaml: `
domain: d
types:
  - name: object
predicates:
  - name: marked
    arity: 1
actions:
  - name: mark
    parameters:
      - name: "?x"
        type: object
    effects:
      - add:
          predicate: marked
          args: ["?x"]
        delete:
          predicate: marked
          args: ["?x"]
`,
			message: "exactly one of add or delete",
		},
		{
			name: "action without effects",
			yaml: `
domain: d
types:
  - name: object
actions:
  - name: wait
`,
			message: "has no effects",
		},
		{
			name: "variable in goal",
			yaml: `
domain: d
predicates:
  - name: marked
    arity: 1
goal:
  predicate: marked
  args: ["?x"]
`,
			message: "not in scope",
		},
		{
			name: "unknown object in initial state",
			yaml: `
domain: d
predicates:
  - name: marked
    arity: 1
init:
  facts:
    - predicate: marked
      args: [ghost]
`,
			message: "unknown object",
		},
		{
			name: "arity mismatch",
			yaml: `
domain: d
types:
  - name: object
objects:
  - name: a
    type: object
predicates:
  - name: marked
    arity: 1
init:
  facts:
    - predicate: marked
      args: [a, a]
`,
			message: "takes 1 arguments",
		},
		{
			name: "unknown cost function",
			yaml: `
domain: d
types:
  - name: object
predicates:
  - name: marked
    arity: 1
actions:
  - name: mark
    parameters:
      - name: "?x"
        type: object
    effects:
      - add:
          predicate: marked
          args: ["?x"]
    cost:
      function: walk-cost
`,
			message: "unknown function",
		},
		{
			name: "cost with constant and function",
			yaml: `
domain: d
types:
  - name: object
predicates:
  - name: marked
    arity: 1
functions:
  - name: walk-cost
    arity: 0
actions:
  - name: mark
    parameters:
      - name: "?x"
        type: object
    effects:
      - add:
          predicate: marked
          args: ["?x"]
    cost:
      constant: 2
      function: walk-cost
`,
			message: "not both",
		},
		{
			name: "forall shadowing a parameter",
			yaml: `
domain: d
types:
  - name: object
predicates:
  - name: marked
    arity: 1
actions:
  - name: mark
    parameters:
      - name: "?x"
        type: object
    effects:
      - forall:
          - name: "?x"
            type: object
        add:
          predicate: marked
          args: ["?x"]
`,
			message: "shadows",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeTask(t, tc.yaml))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Fatalf("error %q does not mention %q", err, tc.message)
			}
		})
	}
}

func TestLoadAxiomDefaultHeadArity(t *testing.T) {
	task, err := Load(writeTask(t, `
domain: d
types:
  - name: object
objects:
  - name: a
    type: object
predicates:
  - name: linked
    arity: 2
axioms:
  - name: joined
    parameters:
      - name: "?x"
        type: object
      - name: "?y"
        type: object
    condition:
      predicate: linked
      args: ["?x", "?y"]
`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if task.Axioms[0].HeadArity != 2 {
		t.Fatalf("expected head arity to default to the parameter count, got %d", task.Axioms[0].HeadArity)
	}
}

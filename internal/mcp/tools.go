package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"groundwork/internal/ground"
	"groundwork/internal/model"
	"groundwork/internal/pddl"
	"groundwork/internal/task"
)

type GroundTaskInput struct {
	Path string `json:"path" jsonschema:"path to the lifted task YAML file"`
}

type GroundTaskOutput struct {
	Domain           string   `json:"domain"`
	Problem          string   `json:"problem"`
	RelaxedReachable bool     `json:"relaxed_reachable"`
	GoalImpossible   bool     `json:"goal_impossible"`
	FluentFactCount  int      `json:"fluent_fact_count"`
	ActionCount      int      `json:"action_count"`
	AxiomCount       int      `json:"axiom_count"`
	GoalLiterals     []string `json:"goal_literals"`
}

type ListPredicatesInput struct {
	Path string `json:"path" jsonschema:"path to the lifted task YAML file"`
}

type PredicateOutput struct {
	Name  string `json:"name"`
	Arity int    `json:"arity"`
}

type ListPredicatesOutput struct {
	Fluent []PredicateOutput `json:"fluent"`
	Static []PredicateOutput `json:"static"`
}

type ListStaticAtomsInput struct {
	Path string `json:"path" jsonschema:"path to the lifted task YAML file"`
}

type ListStaticAtomsOutput struct {
	Atoms []string `json:"atoms"`
}

type GetTaskInput struct {
	Path string `json:"path" jsonschema:"path to the lifted task YAML file"`
}

type GetTaskOutput struct {
	Domain  string   `json:"domain"`
	Problem string   `json:"problem"`
	Types   []string `json:"types"`
	Objects []string `json:"objects"`
	Actions []string `json:"actions"`
	Axioms  []string `json:"axioms"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "ground_task",
		Description: "Ground a lifted task file and summarise the result",
	}, s.handleGroundTask)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_predicates",
		Description: "Classify a task's predicates into fluent and static",
	}, s.handleListPredicates)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_static_atoms",
		Description: "List the static atoms of a task's reachability model",
	}, s.handleListStaticAtoms)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_task",
		Description: "Return the skeleton of a lifted task file",
	}, s.handleGetTask)
}

func (s *Server) handleGroundTask(ctx context.Context, req *sdk.CallToolRequest, input GroundTaskInput) (*sdk.CallToolResult, GroundTaskOutput, error) {
	lifted, grounded, err := groundFile(input.Path)
	if err != nil {
		return nil, GroundTaskOutput{}, err
	}

	goalLiterals := []string{}
	for _, lit := range grounded.Goal {
		goalLiterals = append(goalLiterals, lit.String())
	}
	return nil, GroundTaskOutput{
		Domain:           lifted.Domain,
		Problem:          lifted.Problem,
		RelaxedReachable: grounded.RelaxedReachable,
		GoalImpossible:   grounded.GoalImpossible,
		FluentFactCount:  len(grounded.FluentFacts),
		ActionCount:      len(grounded.Actions),
		AxiomCount:       len(grounded.Axioms),
		GoalLiterals:     goalLiterals,
	}, nil
}

func (s *Server) handleListPredicates(ctx context.Context, req *sdk.CallToolRequest, input ListPredicatesInput) (*sdk.CallToolResult, ListPredicatesOutput, error) {
	lifted, err := loadTask(input.Path)
	if err != nil {
		return nil, ListPredicatesOutput{}, err
	}
	classification := ground.Classify(lifted)

	output := ListPredicatesOutput{Fluent: []PredicateOutput{}, Static: []PredicateOutput{}}
	for _, name := range classification.FluentNames() {
		output.Fluent = append(output.Fluent, PredicateOutput{Name: name, Arity: lifted.PredicateArity(name)})
	}
	for _, name := range classification.StaticNames() {
		output.Static = append(output.Static, PredicateOutput{Name: name, Arity: lifted.PredicateArity(name)})
	}
	return nil, output, nil
}

func (s *Server) handleListStaticAtoms(ctx context.Context, req *sdk.CallToolRequest, input ListStaticAtomsInput) (*sdk.CallToolResult, ListStaticAtomsOutput, error) {
	lifted, err := loadTask(input.Path)
	if err != nil {
		return nil, ListStaticAtomsOutput{}, err
	}
	reachable, err := model.Compute(lifted)
	if err != nil {
		return nil, ListStaticAtomsOutput{}, err
	}

	var buf strings.Builder
	if err := ground.WriteStaticAtoms(&buf, lifted, ground.Classify(lifted), reachable); err != nil {
		return nil, ListStaticAtomsOutput{}, err
	}
	atoms := []string{}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if line != "" {
			atoms = append(atoms, line)
		}
	}
	return nil, ListStaticAtomsOutput{Atoms: atoms}, nil
}

func (s *Server) handleGetTask(ctx context.Context, req *sdk.CallToolRequest, input GetTaskInput) (*sdk.CallToolResult, GetTaskOutput, error) {
	lifted, err := loadTask(input.Path)
	if err != nil {
		return nil, GetTaskOutput{}, err
	}

	output := GetTaskOutput{
		Domain:  lifted.Domain,
		Problem: lifted.Problem,
		Types:   []string{},
		Objects: []string{},
		Actions: []string{},
		Axioms:  []string{},
	}
	for _, t := range lifted.Types {
		output.Types = append(output.Types, t.Name)
	}
	for _, obj := range lifted.Objects {
		output.Objects = append(output.Objects, obj.Name)
	}
	for _, action := range lifted.Actions {
		output.Actions = append(output.Actions, action.Name)
	}
	for _, axiom := range lifted.Axioms {
		output.Axioms = append(output.Axioms, axiom.Name)
	}
	return nil, output, nil
}

func loadTask(path string) (*pddl.Task, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return task.Load(path)
}

func groundFile(path string) (*pddl.Task, *ground.Task, error) {
	lifted, err := loadTask(path)
	if err != nil {
		return nil, nil, err
	}
	reachable, err := model.Compute(lifted)
	if err != nil {
		return nil, nil, err
	}
	grounded, err := ground.Instantiate(lifted, reachable)
	if err != nil {
		return nil, nil, err
	}
	return lifted, grounded, nil
}

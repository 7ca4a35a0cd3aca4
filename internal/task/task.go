// Package task loads a lifted planning task from its YAML form. The
// YAML file is the already-parsed representation of the task: typed
// objects, action and axiom schemas, the initial state, and the goal.
package task

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"groundwork/internal/pddl"
)

type fileTask struct {
	Domain     string          `yaml:"domain"`
	Problem    string          `yaml:"problem"`
	Metric     bool            `yaml:"metric"`
	Types      []fileType      `yaml:"types"`
	Objects    []fileObject    `yaml:"objects"`
	Predicates []fileDecl      `yaml:"predicates"`
	Functions  []fileDecl      `yaml:"functions"`
	Actions    []fileAction    `yaml:"actions"`
	Axioms     []fileAxiom     `yaml:"axioms"`
	Init       fileInit        `yaml:"init"`
	Goal       *fileCondition  `yaml:"goal"`
}

type fileType struct {
	Name    string   `yaml:"name"`
	Parents []string `yaml:"parents"`
}

type fileObject struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type fileDecl struct {
	Name  string `yaml:"name"`
	Arity int    `yaml:"arity"`
}

type fileParam struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type fileLiteral struct {
	Predicate string   `yaml:"predicate"`
	Args      []string `yaml:"args"`
}

type fileCondition struct {
	And       []fileCondition `yaml:"and"`
	Not       *fileLiteral    `yaml:"not"`
	Predicate string          `yaml:"predicate"`
	Args      []string        `yaml:"args"`
}

type fileEffect struct {
	Add    *fileLiteral   `yaml:"add"`
	Delete *fileLiteral   `yaml:"delete"`
	When   *fileCondition `yaml:"when"`
	Forall []fileParam    `yaml:"forall"`
}

type fileCost struct {
	Constant *float64 `yaml:"constant"`
	Function string   `yaml:"function"`
	Args     []string `yaml:"args"`
}

type fileAction struct {
	Name         string         `yaml:"name"`
	Parameters   []fileParam    `yaml:"parameters"`
	Precondition *fileCondition `yaml:"precondition"`
	Effects      []fileEffect   `yaml:"effects"`
	Cost         *fileCost      `yaml:"cost"`
}

type fileAxiom struct {
	Name       string         `yaml:"name"`
	Parameters []fileParam    `yaml:"parameters"`
	HeadArity  *int           `yaml:"head_arity"`
	Condition  *fileCondition `yaml:"condition"`
}

type fileAssignment struct {
	Function string   `yaml:"function"`
	Args     []string `yaml:"args"`
	Value    float64  `yaml:"value"`
}

type fileInit struct {
	Facts       []fileLiteral    `yaml:"facts"`
	Assignments []fileAssignment `yaml:"assignments"`
}

// Load reads a lifted task from path.
func Load(path string) (*pddl.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading task: %w", err)
	}

	var file fileTask
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("loading task: %w", err)
	}

	task, err := build(&file)
	if err != nil {
		return nil, fmt.Errorf("loading task: %w", err)
	}
	return task, nil
}

func build(file *fileTask) (*pddl.Task, error) {
	b := &builder{
		file:       file,
		typeNames:  make(map[string]struct{}),
		objects:    make(map[string]struct{}),
		predicates: make(map[string]int),
		functions:  make(map[string]int),
	}
	return b.build()
}

type builder struct {
	file       *fileTask
	typeNames  map[string]struct{}
	objects    map[string]struct{}
	predicates map[string]int
	functions  map[string]int
}

func (b *builder) build() (*pddl.Task, error) {
	task := &pddl.Task{
		Domain:           b.file.Domain,
		Problem:          b.file.Problem,
		UseMinCostMetric: b.file.Metric,
	}
	if task.Domain == "" {
		return nil, fmt.Errorf("domain name is required")
	}

	for i, t := range b.file.Types {
		if t.Name == "" {
			return nil, fmt.Errorf("type %d name is required", i)
		}
		if _, exists := b.typeNames[t.Name]; exists {
			return nil, fmt.Errorf("duplicate type name: %s", t.Name)
		}
		b.typeNames[t.Name] = struct{}{}
	}
	for _, t := range b.file.Types {
		for _, parent := range t.Parents {
			if _, ok := b.typeNames[parent]; !ok {
				return nil, fmt.Errorf("type %s lists unknown supertype %s", t.Name, parent)
			}
		}
		task.Types = append(task.Types, pddl.Type{Name: t.Name, Supertypes: t.Parents})
	}

	for i, obj := range b.file.Objects {
		if obj.Name == "" {
			return nil, fmt.Errorf("object %d name is required", i)
		}
		if _, exists := b.objects[obj.Name]; exists {
			return nil, fmt.Errorf("duplicate object name: %s", obj.Name)
		}
		if _, ok := b.typeNames[obj.Type]; !ok {
			return nil, fmt.Errorf("object %s declared with unknown type %s", obj.Name, obj.Type)
		}
		b.objects[obj.Name] = struct{}{}
		task.Objects = append(task.Objects, pddl.Object{Name: obj.Name, Type: obj.Type})
	}

	for _, p := range b.file.Predicates {
		if p.Name == "" {
			return nil, fmt.Errorf("predicate name is required")
		}
		if _, exists := b.predicates[p.Name]; exists {
			return nil, fmt.Errorf("duplicate predicate name: %s", p.Name)
		}
		if p.Arity < 0 {
			return nil, fmt.Errorf("predicate %s has negative arity", p.Name)
		}
		b.predicates[p.Name] = p.Arity
		task.Predicates = append(task.Predicates, pddl.Predicate{Name: p.Name, Arity: p.Arity})
	}
	for _, f := range b.file.Functions {
		if f.Name == "" {
			return nil, fmt.Errorf("function name is required")
		}
		if _, exists := b.functions[f.Name]; exists {
			return nil, fmt.Errorf("duplicate function name: %s", f.Name)
		}
		b.functions[f.Name] = f.Arity
		task.Functions = append(task.Functions, pddl.Function{Name: f.Name, Arity: f.Arity})
	}

	// Axiom heads act as derived predicates for conditions.
	for _, ax := range b.file.Axioms {
		if ax.Name == "" {
			return nil, fmt.Errorf("axiom name is required")
		}
		if _, exists := b.predicates[ax.Name]; exists {
			return nil, fmt.Errorf("axiom %s collides with a declared predicate", ax.Name)
		}
		head := len(ax.Parameters)
		if ax.HeadArity != nil {
			head = *ax.HeadArity
		}
		if head < 0 || head > len(ax.Parameters) {
			return nil, fmt.Errorf("axiom %s head arity %d out of range", ax.Name, head)
		}
		b.predicates[ax.Name] = head
	}

	for _, fa := range b.file.Actions {
		action, err := b.buildAction(fa)
		if err != nil {
			return nil, err
		}
		task.Actions = append(task.Actions, action)
	}

	for _, fx := range b.file.Axioms {
		axiom, err := b.buildAxiom(fx)
		if err != nil {
			return nil, err
		}
		task.Axioms = append(task.Axioms, axiom)
	}

	for _, fact := range b.file.Init.Facts {
		atom, err := b.groundAtom(fact)
		if err != nil {
			return nil, fmt.Errorf("initial state: %w", err)
		}
		task.Init = append(task.Init, atom)
	}
	for _, assign := range b.file.Init.Assignments {
		call, err := b.functionCall(assign.Function, assign.Args, nil)
		if err != nil {
			return nil, fmt.Errorf("initial state: %w", err)
		}
		task.Init = append(task.Init, pddl.Assignment{Fluent: call, Value: assign.Value})
	}

	if b.file.Goal != nil {
		goal, err := b.buildCondition(b.file.Goal, nil)
		if err != nil {
			return nil, fmt.Errorf("goal: %w", err)
		}
		task.Goal = goal
	} else {
		task.Goal = pddl.Truth{}
	}

	return task, nil
}

func (b *builder) buildAction(fa fileAction) (*pddl.Action, error) {
	if fa.Name == "" {
		return nil, fmt.Errorf("action name is required")
	}
	params, scope, err := b.buildParameters(fa.Name, fa.Parameters)
	if err != nil {
		return nil, err
	}

	precondition, err := b.buildCondition(fa.Precondition, scope)
	if err != nil {
		return nil, fmt.Errorf("action %s precondition: %w", fa.Name, err)
	}

	action := &pddl.Action{
		Name:         fa.Name,
		Parameters:   params,
		Precondition: precondition,
	}
	if len(fa.Effects) == 0 {
		return nil, fmt.Errorf("action %s has no effects", fa.Name)
	}
	for i, fe := range fa.Effects {
		effect, err := b.buildEffect(fe, scope)
		if err != nil {
			return nil, fmt.Errorf("action %s effect %d: %w", fa.Name, i, err)
		}
		action.Effects = append(action.Effects, effect)
	}

	if fa.Cost != nil {
		cost, err := b.buildCost(fa.Cost, scope)
		if err != nil {
			return nil, fmt.Errorf("action %s: %w", fa.Name, err)
		}
		action.Cost = cost
	}
	return action, nil
}

func (b *builder) buildAxiom(fx fileAxiom) (*pddl.Axiom, error) {
	params, scope, err := b.buildParameters(fx.Name, fx.Parameters)
	if err != nil {
		return nil, err
	}
	condition, err := b.buildCondition(fx.Condition, scope)
	if err != nil {
		return nil, fmt.Errorf("axiom %s condition: %w", fx.Name, err)
	}
	return &pddl.Axiom{
		Name:       fx.Name,
		Parameters: params,
		HeadArity:  b.predicates[fx.Name],
		Condition:  condition,
	}, nil
}

func (b *builder) buildParameters(owner string, fileParams []fileParam) ([]pddl.TypedVariable, map[string]struct{}, error) {
	params := make([]pddl.TypedVariable, 0, len(fileParams))
	scope := make(map[string]struct{}, len(fileParams))
	for _, par := range fileParams {
		if !pddl.IsVariable(par.Name) {
			return nil, nil, fmt.Errorf("%s: parameter %q must start with '?'", owner, par.Name)
		}
		if _, exists := scope[par.Name]; exists {
			return nil, nil, fmt.Errorf("%s: duplicate parameter %s", owner, par.Name)
		}
		if _, ok := b.typeNames[par.Type]; !ok {
			return nil, nil, fmt.Errorf("%s: parameter %s has unknown type %s", owner, par.Name, par.Type)
		}
		scope[par.Name] = struct{}{}
		params = append(params, pddl.TypedVariable{Name: par.Name, Type: par.Type})
	}
	return params, scope, nil
}

func (b *builder) buildEffect(fe fileEffect, scope map[string]struct{}) (pddl.Effect, error) {
	if (fe.Add == nil) == (fe.Delete == nil) {
		return pddl.Effect{}, fmt.Errorf("exactly one of add or delete is required")
	}

	effectScope := scope
	var forall []pddl.TypedVariable
	if len(fe.Forall) > 0 {
		effectScope = make(map[string]struct{}, len(scope)+len(fe.Forall))
		for name := range scope {
			effectScope[name] = struct{}{}
		}
		for _, par := range fe.Forall {
			if !pddl.IsVariable(par.Name) {
				return pddl.Effect{}, fmt.Errorf("forall parameter %q must start with '?'", par.Name)
			}
			if _, exists := effectScope[par.Name]; exists {
				return pddl.Effect{}, fmt.Errorf("forall parameter %s shadows another variable", par.Name)
			}
			if _, ok := b.typeNames[par.Type]; !ok {
				return pddl.Effect{}, fmt.Errorf("forall parameter %s has unknown type %s", par.Name, par.Type)
			}
			effectScope[par.Name] = struct{}{}
			forall = append(forall, pddl.TypedVariable{Name: par.Name, Type: par.Type})
		}
	}

	condition, err := b.buildCondition(fe.When, effectScope)
	if err != nil {
		return pddl.Effect{}, err
	}

	literal := fe.Add
	negated := false
	if fe.Delete != nil {
		literal = fe.Delete
		negated = true
	}
	atom, err := b.liftedAtom(*literal, effectScope)
	if err != nil {
		return pddl.Effect{}, err
	}

	return pddl.Effect{
		Parameters: forall,
		Condition:  condition,
		Literal:    pddl.Literal{Atom: atom, Negated: negated},
	}, nil
}

func (b *builder) buildCost(fc *fileCost, scope map[string]struct{}) (*pddl.CostExpr, error) {
	if fc.Constant != nil {
		if fc.Function != "" {
			return nil, fmt.Errorf("cost takes a constant or a function, not both")
		}
		return &pddl.CostExpr{Constant: *fc.Constant}, nil
	}
	call, err := b.functionCall(fc.Function, fc.Args, scope)
	if err != nil {
		return nil, fmt.Errorf("cost: %w", err)
	}
	return &pddl.CostExpr{Call: &call}, nil
}

func (b *builder) functionCall(name string, args []string, scope map[string]struct{}) (pddl.FunctionCall, error) {
	arity, ok := b.functions[name]
	if !ok {
		return pddl.FunctionCall{}, fmt.Errorf("unknown function %s", name)
	}
	if arity != len(args) {
		return pddl.FunctionCall{}, fmt.Errorf("function %s takes %d arguments, got %d", name, arity, len(args))
	}
	for _, arg := range args {
		if err := b.checkArg(arg, scope); err != nil {
			return pddl.FunctionCall{}, err
		}
	}
	return pddl.FunctionCall{Function: name, Args: args}, nil
}

// buildCondition turns a YAML condition node into its normalized form.
// A nil node is Truth.
func (b *builder) buildCondition(fc *fileCondition, scope map[string]struct{}) (pddl.Condition, error) {
	if fc == nil {
		return pddl.Truth{}, nil
	}
	forms := 0
	if len(fc.And) > 0 {
		forms++
	}
	if fc.Not != nil {
		forms++
	}
	if fc.Predicate != "" {
		forms++
	}
	if forms != 1 {
		return nil, fmt.Errorf("condition must be exactly one of and, not, or a literal")
	}

	switch {
	case len(fc.And) > 0:
		parts := make([]pddl.Condition, 0, len(fc.And))
		for i := range fc.And {
			part, err := b.buildCondition(&fc.And[i], scope)
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
		}
		return pddl.Conjunction{Parts: parts}, nil
	case fc.Not != nil:
		atom, err := b.liftedAtom(*fc.Not, scope)
		if err != nil {
			return nil, err
		}
		return pddl.LiteralCondition{Atom: atom, Negated: true}, nil
	default:
		atom, err := b.liftedAtom(fileLiteral{Predicate: fc.Predicate, Args: fc.Args}, scope)
		if err != nil {
			return nil, err
		}
		return pddl.LiteralCondition{Atom: atom}, nil
	}
}

// liftedAtom checks a literal whose arguments may be in-scope
// variables or declared objects.
func (b *builder) liftedAtom(lit fileLiteral, scope map[string]struct{}) (pddl.Atom, error) {
	arity, ok := b.predicates[lit.Predicate]
	if !ok {
		return pddl.Atom{}, fmt.Errorf("unknown predicate %s", lit.Predicate)
	}
	if arity != len(lit.Args) {
		return pddl.Atom{}, fmt.Errorf("predicate %s takes %d arguments, got %d", lit.Predicate, arity, len(lit.Args))
	}
	for _, arg := range lit.Args {
		if err := b.checkArg(arg, scope); err != nil {
			return pddl.Atom{}, err
		}
	}
	return pddl.Atom{Predicate: lit.Predicate, Args: lit.Args}, nil
}

// groundAtom checks a literal over declared objects only.
func (b *builder) groundAtom(lit fileLiteral) (pddl.Atom, error) {
	return b.liftedAtom(lit, nil)
}

func (b *builder) checkArg(arg string, scope map[string]struct{}) error {
	if pddl.IsVariable(arg) {
		if _, ok := scope[arg]; !ok {
			return fmt.Errorf("variable %s is not in scope", arg)
		}
		return nil
	}
	if _, ok := b.objects[arg]; !ok {
		return fmt.Errorf("unknown object %s", arg)
	}
	return nil
}

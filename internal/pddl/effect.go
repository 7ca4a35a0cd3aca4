package pddl

// Effect is one conditional effect of an action schema: an optional
// list of universally quantified parameters, a guard condition, and
// the literal the effect makes true (or false, when negated).
type Effect struct {
	Parameters []TypedVariable
	Condition  Condition
	Literal    Literal
}

// GroundEffect pairs an instantiated guard with the ground atom it
// adds or deletes.
type GroundEffect struct {
	Condition []Literal
	Atom      Atom
}

// instantiate expands the effect under sub, enumerating every binding
// of the universal parameters over the typed objects, and appends the
// surviving branches to adds/deletes. Branches whose guard is
// statically refuted are skipped; that is the expected outcome for
// pruned branches, not an error.
func (e Effect) instantiate(sub map[string]string, init, fluents AtomSet, objectsByType map[string][]string, adds, deletes *[]GroundEffect) {
	if len(e.Parameters) == 0 {
		e.instantiateOne(sub, init, fluents, adds, deletes)
		return
	}
	domains := make([][]string, len(e.Parameters))
	for i, par := range e.Parameters {
		domains[i] = objectsByType[par.Type]
	}
	eachTuple(domains, func(tuple []string) {
		branchSub := make(map[string]string, len(sub)+len(tuple))
		for name, obj := range sub {
			branchSub[name] = obj
		}
		for i, par := range e.Parameters {
			branchSub[par.Name] = tuple[i]
		}
		e.instantiateOne(branchSub, init, fluents, adds, deletes)
	})
}

func (e Effect) instantiateOne(sub map[string]string, init, fluents AtomSet, adds, deletes *[]GroundEffect) {
	condition, err := InstantiateCondition(e.Condition, sub, init, fluents)
	if err != nil {
		return
	}
	var effect []Literal
	lit := LiteralCondition{Atom: e.Literal.Atom, Negated: e.Literal.Negated}
	if err := lit.instantiate(sub, init, fluents, &effect); err != nil {
		return
	}
	// A statically satisfied effect instantiates to nothing.
	if len(effect) == 0 {
		return
	}
	ground := GroundEffect{Condition: condition, Atom: effect[0].Atom}
	if effect[0].Negated {
		*deletes = append(*deletes, ground)
	} else {
		*adds = append(*adds, ground)
	}
}

// eachTuple calls fn with every element of the cartesian product of
// the domains. An empty domain yields no tuples.
func eachTuple(domains [][]string, fn func([]string)) {
	tuple := make([]string, len(domains))
	var walk func(i int)
	walk = func(i int) {
		if i == len(domains) {
			fn(tuple)
			return
		}
		for _, obj := range domains[i] {
			tuple[i] = obj
			walk(i + 1)
		}
	}
	walk(0)
}

package pddl

// ConditionLiterals returns every literal of the condition in
// syntactic order, still lifted.
func ConditionLiterals(cond Condition) []LiteralCondition {
	var literals []LiteralCondition
	cond.eachLiteral(func(l LiteralCondition) {
		literals = append(literals, l)
	})
	return literals
}

// EachBinding enumerates every binding of the parameters over the
// typed-object index, in index order. fn receives the substitution and
// the bound argument tuple; both are reused across calls and must be
// copied if retained.
func EachBinding(params []TypedVariable, objectsByType map[string][]string, fn func(sub map[string]string, args []string)) {
	domains := make([][]string, len(params))
	for i, par := range params {
		domains[i] = objectsByType[par.Type]
	}
	sub := make(map[string]string, len(params))
	eachTuple(domains, func(tuple []string) {
		for i, par := range params {
			sub[par.Name] = tuple[i]
		}
		fn(sub, tuple)
	})
}

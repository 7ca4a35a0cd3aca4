package ground

import "groundwork/internal/pddl"

// SplitInitial separates the raw initial-state list into the boolean
// fact set and the numeric assignment mapping, keyed by the canonical
// form of the assigned function term. The split is purely syntactic:
// whether a function is static or fluent is not decided here.
func SplitInitial(init []pddl.InitElement) (pddl.AtomSet, map[string]float64) {
	facts := pddl.NewAtomSet()
	assignments := make(map[string]float64)
	for _, element := range init {
		switch e := element.(type) {
		case pddl.Atom:
			facts.Add(e)
		case pddl.Assignment:
			assignments[e.Fluent.Key()] = e.Value
		}
	}
	return facts, assignments
}

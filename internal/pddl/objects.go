package pddl

import "fmt"

// ObjectsByType builds the typed-object index: for every type, the
// objects declared with it or with any of its subtypes, in declaration
// order. Registration is idempotent per (type, object) pair. An object
// declared with a type missing from the task's type list is a
// malformed task, reported as an error.
func ObjectsByType(objects []Object, types []Type) (map[string][]string, error) {
	supertypes := make(map[string][]string, len(types))
	for _, t := range types {
		supertypes[t.Name] = t.Supertypes
	}

	result := make(map[string][]string)
	seen := make(map[string]map[string]struct{})
	register := func(typeName, objName string) {
		if seen[typeName] == nil {
			seen[typeName] = make(map[string]struct{})
		}
		if _, ok := seen[typeName][objName]; ok {
			return
		}
		seen[typeName][objName] = struct{}{}
		result[typeName] = append(result[typeName], objName)
	}

	for _, obj := range objects {
		ancestors, ok := supertypes[obj.Type]
		if !ok {
			return nil, fmt.Errorf("object %s declared with unknown type %s", obj.Name, obj.Type)
		}
		register(obj.Type, obj.Name)
		for _, ancestor := range ancestors {
			register(ancestor, obj.Name)
		}
	}
	return result, nil
}

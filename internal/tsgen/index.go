package tsgen

import (
	"github.com/hanpama/graphqlgen/internal/ir"
)

// Index associates object types with the input types their field arguments
// reference. It is built once per run and never mutated afterwards.
type Index struct {
	// Inputs maps an object type name to the input type names used by its
	// arguments, in field then argument order. Duplicates are kept.
	Inputs map[string][]string
	// InputTypes maps input type names to their declarations.
	InputTypes map[string]*ir.Type
}

// BuildIndex scans types once. Only object types with at least one input
// typed argument get an Inputs entry.
func BuildIndex(types []*ir.Type) *Index {
	idx := &Index{
		Inputs:     make(map[string][]string),
		InputTypes: make(map[string]*ir.Type),
	}
	for _, typ := range types {
		switch typ.Kind {
		case ir.TypeKindInputObject:
			idx.InputTypes[typ.Name] = typ
		case ir.TypeKindObject:
			var names []string
			for _, field := range typ.Fields {
				for _, arg := range field.Arguments {
					if arg.Type.IsInput() {
						names = append(names, arg.Type.Name)
					}
				}
			}
			if len(names) > 0 {
				idx.Inputs[typ.Name] = names
			}
		}
	}
	return idx
}

// InputsFor returns the input type names associated with an object type.
func (idx *Index) InputsFor(typeName string) []string {
	return idx.Inputs[typeName]
}

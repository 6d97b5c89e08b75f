package tsgen

import (
	"github.com/hanpama/graphqlgen/internal/ir"
)

// PrintType renders the TypeScript type of a field or argument reference.
// The array marker always precedes the nullable marker.
func PrintType(ref *ir.TypeRef, models ModelMap) string {
	return printTypeRef(ref, models, true)
}

// printInputFieldType renders input object fields. Nullability is not
// reflected on input interface fields.
func printInputFieldType(ref *ir.TypeRef, models ModelMap) string {
	return printTypeRef(ref, models, false)
}

func printTypeRef(ref *ir.TypeRef, models ModelMap, nullable bool) string {
	var s string
	switch {
	case ref.IsScalar():
		s = string(MapScalar(ref.Name))
	case ref.IsInput():
		s = ref.Name
	default:
		s = models.ModelName(ref.Name)
	}
	if ref.IsArray {
		s += "[]"
	}
	if nullable && !ref.IsRequired {
		s += " | null"
	}
	return s
}

package tsgen

// ScalarCategory is the TypeScript primitive a GraphQL scalar maps to.
type ScalarCategory string

const (
	ScalarBoolean ScalarCategory = "boolean"
	ScalarNumber  ScalarCategory = "number"
	ScalarString  ScalarCategory = "string"
)

// MapScalar maps a scalar name to its TypeScript primitive. Unknown and
// custom scalars map to string.
func MapScalar(name string) ScalarCategory {
	switch name {
	case "Int", "Float":
		return ScalarNumber
	case "Boolean":
		return ScalarBoolean
	case "String", "ID", "DateTime":
		return ScalarString
	}
	return ScalarString
}

package language

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// ParseSchema parses a single SDL source. name is used in positions of
// syntax errors and violations.
func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// TypeString renders a type reference in SDL notation, e.g. "[Post!]!".
func TypeString(t *Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// NamedType returns the innermost named type of t.
func NamedType(t *Type) string {
	for t != nil {
		if t.NamedType != "" {
			return t.NamedType
		}
		t = t.Elem
	}
	return ""
}

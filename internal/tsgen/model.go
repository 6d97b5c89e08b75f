package tsgen

import (
	"github.com/hanpama/graphqlgen/internal/introspect"
	"github.com/hanpama/graphqlgen/internal/ir"
)

// emptyType stands in for types without a registered model.
const emptyType = "{}"

// Model is the declaration backing a schema type at runtime.
type Model struct {
	// TypeName is the declaration name inside FilePath.
	TypeName string `json:"typeName" yaml:"typeName"`
	// FilePath locates the declaring file for introspection.
	FilePath string `json:"filePath" yaml:"filePath"`
	// ImportPath is the module specifier used from the generated file.
	ImportPath string `json:"importPath" yaml:"importPath"`
}

// ModelMap maps schema type names to their models.
type ModelMap map[string]Model

// Lookup returns the model registered for typeName.
func (m ModelMap) Lookup(typeName string) (Model, bool) {
	model, ok := m[typeName]
	return model, ok
}

// ModelName returns the model declaration name for typeName, or the empty
// object type when none is registered. Root operation types usually have none.
func (m ModelMap) ModelName(typeName string) string {
	if model, ok := m[typeName]; ok {
		return model.TypeName
	}
	return emptyType
}

// Context describes the resolver context declaration.
type Context struct {
	InterfaceName string `json:"interfaceName"`
	FilePath      string `json:"filePath"`
	ImportPath    string `json:"importPath"`
}

const defaultContextName = "Context"

func contextName(c *Context) string {
	if c == nil || c.InterfaceName == "" {
		return defaultContextName
	}
	return c.InterfaceName
}

// Input bundles everything one generation run needs.
type Input struct {
	Types        []*ir.Type
	Models       ModelMap
	Context      *Context
	Introspector introspect.Introspector
}

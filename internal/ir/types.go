package ir

// Project is the typed schema model produced by Build. It is read-only once
// returned.
type Project struct {
	Schema *Schema  `json:"schema"`
	Types  []*Type  `json:"types"`
	Files  []string `json:"files"`

	byName map[string]*Type
}

// Type returns the named type, including built-in scalars, or nil.
func (p *Project) Type(name string) *Type {
	if t, ok := p.byName[name]; ok {
		return t
	}
	return builtinScalars[name]
}

// Objects returns the object types in declaration order.
func (p *Project) Objects() []*Type { return p.filter(TypeKindObject) }

// Inputs returns the input object types in declaration order.
func (p *Project) Inputs() []*Type { return p.filter(TypeKindInputObject) }

func (p *Project) filter(kind TypeKind) []*Type {
	var out []*Type
	for _, t := range p.Types {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// Schema holds the root operation type names. Empty means absent.
type Schema struct {
	QueryType        string `json:"queryType,omitempty"`
	MutationType     string `json:"mutationType,omitempty"`
	SubscriptionType string `json:"subscriptionType,omitempty"`
}

// IsRoot reports whether name is one of the root operation types.
func (s *Schema) IsRoot(name string) bool {
	if s == nil || name == "" {
		return false
	}
	return name == s.QueryType || name == s.MutationType || name == s.SubscriptionType
}

type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// Type is a named schema declaration. Input objects keep their input values
// in Fields; they never carry arguments.
type Type struct {
	Name          string   `json:"name"`
	Kind          TypeKind `json:"kind"`
	Description   string   `json:"description,omitempty"`
	Fields        []*Field `json:"fields,omitempty"`
	Interfaces    []string `json:"interfaces,omitempty"`
	PossibleTypes []string `json:"possibleTypes,omitempty"`
	EnumValues    []string `json:"enumValues,omitempty"`
	BuiltIn       bool     `json:"builtIn,omitempty"`
}

// Field returns the field with the given name or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// HasField reports whether t declares a field called name.
func (t *Type) HasField(name string) bool { return t.Field(name) != nil }

type Field struct {
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	Type         *TypeRef    `json:"type"`
	Arguments    []*Argument `json:"arguments,omitempty"`
	DefaultValue string      `json:"defaultValue,omitempty"`
}

type Argument struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Type         *TypeRef `json:"type"`
	DefaultValue string   `json:"defaultValue,omitempty"`
}

// TypeRef describes a reference to a named type. Only the outermost list and
// non-null wrappers are reflected in IsArray and IsRequired; Raw keeps the
// original SDL spelling.
type TypeRef struct {
	Name       string   `json:"name"`
	Kind       TypeKind `json:"kind"`
	IsArray    bool     `json:"isArray,omitempty"`
	IsRequired bool     `json:"isRequired,omitempty"`
	Raw        string   `json:"raw"`
}

func (r *TypeRef) IsScalar() bool { return r != nil && r.Kind == TypeKindScalar }
func (r *TypeRef) IsInput() bool  { return r != nil && r.Kind == TypeKindInputObject }
func (r *TypeRef) IsEnum() bool   { return r != nil && r.Kind == TypeKindEnum }

// IsObject reports whether r points at an output composite type. Interfaces
// and unions count as objects here.
func (r *TypeRef) IsObject() bool {
	if r == nil {
		return false
	}
	switch r.Kind {
	case TypeKindObject, TypeKindInterface, TypeKindUnion:
		return true
	}
	return false
}

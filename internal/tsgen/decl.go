package tsgen

// Node is a declaration in the generated file. The tree is built first and
// serialized by Print in a single pass.
type Node interface{ node() }

// File is the root of a generated declaration file.
type File struct {
	// Banner is written as a line comment above the header.
	Banner string
	Header []Node
	Body   []Node
}

type Import struct {
	Names []string
	From  string
}

type TypeAlias struct {
	Name   string
	Type   string
	Export bool
}

type Namespace struct {
	Name    string
	Members []Node
}

type Interface struct {
	Name       string
	Properties []*Property
}

// Property is an interface member. Signature, when set, replaces Type with a
// function type.
type Property struct {
	Name      string
	Type      string
	Signature *Signature
}

// FuncType is an exported function type alias.
type FuncType struct {
	Name      string
	Signature *Signature
}

type Signature struct {
	Params  []*Param
	Returns string
}

type Param struct {
	Name string
	Type string
}

// ObjectConst is an exported object literal of named entries.
type ObjectConst struct {
	Name    string
	Entries []*Entry
}

type Entry struct {
	Key   string
	Value string
}

func (*Import) node()      {}
func (*TypeAlias) node()   {}
func (*Namespace) node()   {}
func (*Interface) node()   {}
func (*FuncType) node()    {}
func (*ObjectConst) node() {}

package language

import "github.com/vektah/gqlparser/v2/ast"

type (
	SchemaDocument              = ast.SchemaDocument
	Definition                  = ast.Definition
	DefinitionList              = ast.DefinitionList
	FieldDefinition             = ast.FieldDefinition
	ArgumentDefinition          = ast.ArgumentDefinition
	ArgumentDefinitionList      = ast.ArgumentDefinitionList
	EnumValueDefinition         = ast.EnumValueDefinition
	SchemaDefinition            = ast.SchemaDefinition
	OperationTypeDefinition     = ast.OperationTypeDefinition
	OperationTypeDefinitionList = ast.OperationTypeDefinitionList
	Type                        = ast.Type
	Value                       = ast.Value
	Position                    = ast.Position
)

type DefinitionKind = ast.DefinitionKind

type Operation = ast.Operation

const (
	Query        Operation = ast.Query
	Mutation     Operation = ast.Mutation
	Subscription Operation = ast.Subscription

	Object      DefinitionKind = ast.Object
	Interface   DefinitionKind = ast.Interface
	Union       DefinitionKind = ast.Union
	Scalar      DefinitionKind = ast.Scalar
	Enum        DefinitionKind = ast.Enum
	InputObject DefinitionKind = ast.InputObject
)

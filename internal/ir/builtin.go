package ir

var StringType = &Type{
	Name:        "String",
	Kind:        TypeKindScalar,
	Description: "The String scalar type represents textual data, represented as UTF-8 character sequences.",
	BuiltIn:     true,
}

var IntType = &Type{
	Name:        "Int",
	Kind:        TypeKindScalar,
	Description: "The Int scalar type represents non-fractional signed whole numeric values.",
	BuiltIn:     true,
}

var FloatType = &Type{
	Name:        "Float",
	Kind:        TypeKindScalar,
	Description: "The Float scalar type represents signed double-precision fractional values.",
	BuiltIn:     true,
}

var BooleanType = &Type{
	Name:        "Boolean",
	Kind:        TypeKindScalar,
	Description: "The Boolean scalar type represents true or false.",
	BuiltIn:     true,
}

var IDType = &Type{
	Name:        "ID",
	Kind:        TypeKindScalar,
	Description: "The ID scalar type represents a unique identifier, often used to refetch an object or as a key for caching.",
	BuiltIn:     true,
}

var builtinScalars = map[string]*Type{
	"String":  StringType,
	"Int":     IntType,
	"Float":   FloatType,
	"Boolean": BooleanType,
	"ID":      IDType,
}

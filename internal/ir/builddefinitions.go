package ir

import (
	language "github.com/hanpama/graphqlgen/internal/language"
)

var definitionKinds = map[language.DefinitionKind]TypeKind{
	language.Object:      TypeKindObject,
	language.Interface:   TypeKindInterface,
	language.Union:       TypeKindUnion,
	language.InputObject: TypeKindInputObject,
	language.Enum:        TypeKindEnum,
	language.Scalar:      TypeKindScalar,
}

func (b *builder) populateDefinitions() error {
	for _, doc := range b.docs {
		for _, node := range doc.Definitions {
			if _, ok := builtinScalars[node.Name]; ok && node.Kind == language.Scalar {
				// redeclaring a built-in scalar is harmless
				continue
			}
			if _, ok := b.byName[node.Name]; ok || builtinScalars[node.Name] != nil {
				b.addViolation(violationDefinitionAlreadyExists(node.Name, node.Position))
				continue
			}
			kind, ok := definitionKinds[node.Kind]
			if !ok {
				panic("unreachable")
			}
			def := &Type{
				Name:        node.Name,
				Kind:        kind,
				Description: node.Description,
			}
			b.byName[node.Name] = def
			b.Types = append(b.Types, def)
		}
	}

	for _, doc := range b.docs {
		for _, node := range doc.Extensions {
			def := b.byName[node.Name]
			if def == nil {
				b.addViolation(violationDefinitionNotFoundForExtension(node.Name, node.Position))
				continue
			}
			if def.Kind != definitionKinds[node.Kind] {
				b.addViolation(violationUnexpectedTypeForExtension(node, string(def.Kind)))
			}
		}
	}

	if len(b.violations) > 0 {
		return ValidationError(b.violations)
	}
	return nil
}

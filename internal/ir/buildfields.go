package ir

import (
	"strings"

	language "github.com/hanpama/graphqlgen/internal/language"
)

func (b *builder) populateReferences() error {
	for _, doc := range b.docs {
		for _, node := range doc.Definitions {
			if def := b.byName[node.Name]; def != nil {
				b.populateDefinitionReference(def, node)
			}
		}
	}
	for _, doc := range b.docs {
		for _, node := range doc.Extensions {
			b.populateDefinitionReference(b.byName[node.Name], node)
		}
	}
	if len(b.violations) > 0 {
		return ValidationError(b.violations)
	}
	return nil
}

func (b *builder) populateDefinitionReference(def *Type, node *language.Definition) {
	switch def.Kind {
	case TypeKindObject, TypeKindInterface:
		def.Interfaces = append(def.Interfaces, node.Interfaces...)
		b.extendOutputFields(def, node)
	case TypeKindUnion:
		for _, member := range node.Types {
			t := b.lookup(member)
			if t == nil {
				b.addViolation(violationTypeNotFound(member, node.Position))
				continue
			}
			if t.Kind != TypeKindObject {
				b.addViolation(violationUnionMemberNotObject(member, def.Name, node.Position))
				continue
			}
			def.PossibleTypes = append(def.PossibleTypes, member)
		}
	case TypeKindInputObject:
		b.extendInputFields(def, node)
	case TypeKindEnum:
		for _, value := range node.EnumValues {
			if containsString(def.EnumValues, value.Name) {
				b.addViolation(violationDuplicateEnumValue(value.Name, def.Name, value.Position))
				continue
			}
			def.EnumValues = append(def.EnumValues, value.Name)
		}
	case TypeKindScalar:
		// NOOP
	}
}

func (b *builder) extendOutputFields(def *Type, node *language.Definition) {
	kind := strings.ToLower(string(def.Kind))
	for _, fieldNode := range node.Fields {
		if strings.HasPrefix(fieldNode.Name, "__") {
			b.addViolation(violationReservedFieldPrefix("Field", fieldNode.Name, fieldNode.Position))
			continue
		}
		if def.HasField(fieldNode.Name) {
			b.addViolation(violationDuplicateField(kind, fieldNode.Name, def.Name, fieldNode.Position))
			continue
		}
		def.Fields = append(def.Fields, b.projectFieldDefinition(fieldNode))
	}
}

func (b *builder) extendInputFields(def *Type, node *language.Definition) {
	for _, fieldNode := range node.Fields {
		if def.HasField(fieldNode.Name) {
			b.addViolation(violationDuplicateInputValue(fieldNode.Name, def.Name, fieldNode.Position))
			continue
		}
		field := &Field{
			Name:        fieldNode.Name,
			Description: fieldNode.Description,
			Type:        b.projectTypeRef(fieldNode.Type, typeRefModeInput),
		}
		if fieldNode.DefaultValue != nil {
			field.DefaultValue = fieldNode.DefaultValue.String()
		}
		def.Fields = append(def.Fields, field)
	}
}

func (b *builder) projectFieldDefinition(node *language.FieldDefinition) *Field {
	def := &Field{
		Name:        node.Name,
		Description: node.Description,
		Type:        b.projectTypeRef(node.Type, typeRefModeOutput),
	}

	seen := make(map[string]bool, len(node.Arguments))
	for _, argNode := range node.Arguments {
		if strings.HasPrefix(argNode.Name, "__") {
			b.addViolation(violationReservedFieldPrefix("Argument", argNode.Name, argNode.Position))
			continue
		}
		if seen[argNode.Name] {
			b.addViolation(violationDuplicateArgument(argNode.Name, node.Name, argNode.Position))
			continue
		}
		seen[argNode.Name] = true
		def.Arguments = append(def.Arguments, b.projectArgumentDefinition(argNode))
	}
	return def
}

func (b *builder) projectArgumentDefinition(node *language.ArgumentDefinition) *Argument {
	def := &Argument{
		Name:        node.Name,
		Description: node.Description,
		Type:        b.projectTypeRef(node.Type, typeRefModeInput),
	}
	if node.DefaultValue != nil {
		def.DefaultValue = node.DefaultValue.String()
	}
	return def
}

// projectTypeRef flattens a wrapped SDL type into a TypeRef. Only the
// outermost non-null and list wrappers are kept.
func (b *builder) projectTypeRef(node *language.Type, mode typeRefMode) *TypeRef {
	name := language.NamedType(node)
	ref := &TypeRef{
		Name:       name,
		IsRequired: node.NonNull,
		IsArray:    node.Elem != nil,
		Raw:        language.TypeString(node),
	}
	def := b.lookup(name)
	if def == nil {
		b.addViolation(violationTypeNotFound(name, node.Position))
		return ref
	}
	ref.Kind = def.Kind
	switch mode {
	case typeRefModeInput:
		if def.Kind != TypeKindInputObject && def.Kind != TypeKindScalar && def.Kind != TypeKindEnum {
			b.addViolation(violationTypeNotInput(name, node.Position))
		}
	case typeRefModeOutput:
		if def.Kind == TypeKindInputObject {
			b.addViolation(violationTypeNotOutput(name, node.Position))
		}
	}
	return ref
}

type typeRefMode int

const (
	typeRefModeInput typeRefMode = iota
	typeRefModeOutput
)

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

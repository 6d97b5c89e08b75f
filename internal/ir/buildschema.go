package ir

import (
	language "github.com/hanpama/graphqlgen/internal/language"
)

func (b *builder) processSchemaDefinitions() error {
	for _, doc := range b.docs {
		for _, schemaDef := range doc.Schema {
			if b.Schema != nil {
				b.addViolation(violationSchemaAlreadyDefined(schemaDef.Position))
				continue
			}
			b.Schema = &Schema{}
			b.applyOperationTypes(schemaDef.OperationTypes)
		}
	}
	for _, doc := range b.docs {
		for _, schemaExt := range doc.SchemaExtension {
			if b.Schema == nil {
				b.Schema = &Schema{}
			}
			b.applyOperationTypes(schemaExt.OperationTypes)
		}
	}

	// Without a schema definition the conventional root names apply
	if b.Schema == nil {
		b.Schema = &Schema{}
		if t := b.byName["Query"]; t != nil && t.Kind == TypeKindObject {
			b.Schema.QueryType = t.Name
		}
		if t := b.byName["Mutation"]; t != nil && t.Kind == TypeKindObject {
			b.Schema.MutationType = t.Name
		}
		if t := b.byName["Subscription"]; t != nil && t.Kind == TypeKindObject {
			b.Schema.SubscriptionType = t.Name
		}
	}

	b.validateRootType("Query", b.Schema.QueryType)
	b.validateRootType("Mutation", b.Schema.MutationType)
	b.validateRootType("Subscription", b.Schema.SubscriptionType)

	if len(b.violations) > 0 {
		return ValidationError(b.violations)
	}
	return nil
}

func (b *builder) applyOperationTypes(ops language.OperationTypeDefinitionList) {
	for _, opType := range ops {
		switch opType.Operation {
		case language.Query:
			b.Schema.QueryType = opType.Type
		case language.Mutation:
			b.Schema.MutationType = opType.Type
		case language.Subscription:
			b.Schema.SubscriptionType = opType.Type
		}
	}
}

func (b *builder) validateRootType(kind, typeName string) {
	if typeName == "" {
		return
	}
	def, ok := b.byName[typeName]
	if !ok {
		b.addViolation(violationRootTypeNotFound(kind, typeName))
	} else if def.Kind != TypeKindObject {
		b.addViolation(violationRootTypeNotObject(kind, typeName))
	}
}

package ir

import (
	"context"

	language "github.com/hanpama/graphqlgen/internal/language"
)

type builder struct {
	Schema *Schema
	Types  []*Type

	byName     map[string]*Type
	files      []string
	violations []*Violation
	discovery  Discovery
	docs       []*language.SchemaDocument
}

// Build parses every source listed by disc and assembles the typed schema
// model. Definitions keep source order, sources keep discovery order.
func Build(ctx context.Context, disc Discovery) (*Project, error) {
	b := &builder{
		byName:    make(map[string]*Type),
		discovery: disc,
	}

	if err := b.build(ctx); err != nil {
		return nil, err
	}

	return &Project{
		Schema: b.Schema,
		Types:  b.Types,
		Files:  b.files,
		byName: b.byName,
	}, nil
}

func (b *builder) build(ctx context.Context) (err error) {
	metas, err := b.discovery.ListMetadata(ctx)
	if err != nil {
		return err
	}

	// Parse SDL sources
	for _, meta := range metas {
		sdl, err := b.discovery.ReadSource(ctx, meta.ID)
		if err != nil {
			return err
		}
		document, err := language.ParseSchema(meta.FilePath, sdl)
		if err != nil {
			return err
		}
		b.docs = append(b.docs, document)
		b.files = append(b.files, meta.FilePath)
	}

	// Populate definitions
	if err = b.populateDefinitions(); err != nil {
		return err
	}

	// Populate fields, arguments, enum values and union members
	if err = b.populateReferences(); err != nil {
		return err
	}

	// Process schema definitions
	if err = b.processSchemaDefinitions(); err != nil {
		return err
	}

	return nil
}

func (b *builder) lookup(name string) *Type {
	if t, ok := b.byName[name]; ok {
		return t
	}
	return builtinScalars[name]
}

func (b *builder) addViolation(v ...*Violation) {
	b.violations = append(b.violations, v...)
}

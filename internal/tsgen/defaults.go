package tsgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hanpama/graphqlgen/internal/eventbus"
	"github.com/hanpama/graphqlgen/internal/events"
	"github.com/hanpama/graphqlgen/internal/introspect"
	"github.com/hanpama/graphqlgen/internal/ir"
)

// DefaultResolver is a pass-through resolver reading FieldName off the parent
// model.
type DefaultResolver struct {
	FieldName string
	// Optional is set when the model member may be absent.
	Optional bool
}

// MissingModelError reports a registered model whose declaration cannot be
// found. It aborts the whole run.
type MissingModelError struct {
	TypeName      string
	ModelTypeName string
	FilePath      string
	Err           error
}

func (e *MissingModelError) Error() string {
	msg := fmt.Sprintf("no interface found for name %s in %s (model of type %s)", e.ModelTypeName, e.FilePath, e.TypeName)
	var nf *introspect.NotFoundError
	if errors.As(e.Err, &nf) && nf.Suggestion != "" {
		msg += fmt.Sprintf(", did you mean %q?", nf.Suggestion)
	}
	return msg
}

func (e *MissingModelError) Unwrap() error { return e.Err }

// DeriveDefaults intersects the members of typ's model with typ's fields. A
// type without a model yields no default resolvers and no error.
func DeriveDefaults(ctx context.Context, typ *ir.Type, models ModelMap, intro introspect.Introspector) ([]DefaultResolver, error) {
	model, ok := models.Lookup(typ.Name)
	if !ok {
		return nil, nil
	}
	if intro == nil {
		return nil, fmt.Errorf("type %s has model %s but no introspector is configured", typ.Name, model.TypeName)
	}

	eventbus.Publish(ctx, events.IntrospectStart{TypeName: typ.Name, Model: model.TypeName, File: model.FilePath})
	start := time.Now()
	members, err := intro.Members(ctx, model.FilePath, model.TypeName)
	eventbus.Publish(ctx, events.IntrospectFinish{
		TypeName: typ.Name,
		Model:    model.TypeName,
		File:     model.FilePath,
		Members:  len(members),
		Err:      err,
		Duration: time.Since(start),
	})
	if err != nil {
		if errors.Is(err, introspect.ErrNotFound) {
			return nil, &MissingModelError{
				TypeName:      typ.Name,
				ModelTypeName: model.TypeName,
				FilePath:      model.FilePath,
				Err:           err,
			}
		}
		return nil, fmt.Errorf("introspect model %s of type %s: %w", model.TypeName, typ.Name, err)
	}

	var defaults []DefaultResolver
	for _, m := range members {
		if typ.HasField(m.Name) {
			defaults = append(defaults, DefaultResolver{FieldName: m.Name, Optional: m.Optional})
		}
	}
	return defaults, nil
}

// resolverBody renders the arrow function of a default resolver.
func resolverBody(d DefaultResolver, parentType string) string {
	getter := "parent." + d.FieldName
	if d.Optional {
		getter = getter + " === undefined ? null : " + getter
	}
	return "(parent: " + parentType + ") => " + getter
}

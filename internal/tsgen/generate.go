package tsgen

import (
	"context"
	"runtime"
	"sort"

	"github.com/hanpama/graphqlgen/internal/ir"
	"golang.org/x/sync/errgroup"
)

const banner = "Code generated by graphqlgen, DO NOT EDIT."

// Generate renders the resolver declarations for in. The only failure is a
// model whose declaration cannot be introspected; no partial output is
// returned in that case.
func Generate(ctx context.Context, in Input) (string, error) {
	f, err := Build(ctx, in)
	if err != nil {
		return "", err
	}
	return Print(f), nil
}

// Build produces the declaration tree without serializing it.
func Build(ctx context.Context, in Input) (*File, error) {
	idx := BuildIndex(in.Types)

	var objects []*ir.Type
	for _, typ := range in.Types {
		if typ.Kind == ir.TypeKindObject {
			objects = append(objects, typ)
		}
	}

	defaults, err := deriveAll(ctx, objects, in)
	if err != nil {
		return nil, err
	}

	f := &File{Banner: banner, Header: renderHeader(in)}
	for i, typ := range objects {
		f.Body = append(f.Body, RenderNamespace(typ, idx, defaults[i], in.Models, in.Context))
	}
	f.Body = append(f.Body, renderResolvers(objects))
	return f, nil
}

// deriveAll introspects models concurrently. Every task runs to completion
// and the first error in declaration order wins, so failures do not depend on
// scheduling.
func deriveAll(ctx context.Context, objects []*ir.Type, in Input) ([][]DefaultResolver, error) {
	defaults := make([][]DefaultResolver, len(objects))
	errs := make([]error, len(objects))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, typ := range objects {
		if _, ok := in.Models.Lookup(typ.Name); !ok {
			continue
		}
		g.Go(func() error {
			defaults[i], errs[i] = DeriveDefaults(ctx, typ, in.Models, in.Introspector)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return defaults, nil
}

func renderHeader(in Input) []Node {
	header := []Node{
		&Import{Names: []string{infoType}, From: "graphql"},
	}
	if in.Context != nil {
		header = append(header, &Import{Names: []string{contextName(in.Context)}, From: in.Context.ImportPath})
	} else {
		header = append(header, &TypeAlias{Name: defaultContextName, Type: "any"})
	}

	typeNames := make([]string, 0, len(in.Models))
	for name := range in.Models {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)
	seen := make(map[Model]bool, len(typeNames))
	for _, name := range typeNames {
		m := in.Models[name]
		key := Model{TypeName: m.TypeName, ImportPath: m.ImportPath}
		if seen[key] {
			continue
		}
		seen[key] = true
		header = append(header, &Import{Names: []string{m.TypeName}, From: m.ImportPath})
	}
	return header
}

func renderResolvers(objects []*ir.Type) *Interface {
	iface := &Interface{Name: "Resolvers"}
	for _, typ := range objects {
		iface.Properties = append(iface.Properties, &Property{
			Name: typ.Name,
			Type: NamespaceName(typ.Name) + ".Type",
		})
	}
	return iface
}

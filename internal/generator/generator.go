// Package generator runs one graphqlgen generation: it loads the schema,
// registers models, renders the resolver declarations and writes them out.
package generator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hanpama/graphqlgen/internal/config"
	"github.com/hanpama/graphqlgen/internal/eventbus"
	"github.com/hanpama/graphqlgen/internal/events"
	"github.com/hanpama/graphqlgen/internal/introspect"
	"github.com/hanpama/graphqlgen/internal/ir"
	"github.com/hanpama/graphqlgen/internal/runid"
	"github.com/hanpama/graphqlgen/internal/suggest"
	"github.com/hanpama/graphqlgen/internal/tsgen"
)

// Introspector reads model declarations and lists the declarations of a file.
type Introspector interface {
	introspect.Introspector
	introspect.Lister
}

type Options struct {
	// DryRun renders the code without writing the output file.
	DryRun bool
	// Introspector replaces the TypeScript file reader.
	Introspector Introspector
	// Logf receives progress messages. Nil discards them.
	Logf func(format string, args ...any)
}

func (o Options) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

type Result struct {
	// Output is the absolute path of the generated file.
	Output string
	Code   string
	// Types counts the object types rendered.
	Types int
	// Models counts the registered models.
	Models int
	// Written is false on dry runs and when the file was already up to date.
	Written bool
}

// ErrContextNotFound is returned when the configured context declaration is
// missing from its file.
var ErrContextNotFound = errors.New("context declaration not found")

// Run performs one generation for cfg.
func Run(ctx context.Context, cfg *config.Config, opts Options) (res Result, err error) {
	ctx, rid := runid.NewContext(ctx)
	res.Output = cfg.OutputPath()
	schemaPath := cfg.SchemaPath()

	eventbus.Publish(ctx, events.GenerateStart{Schema: schemaPath, Output: res.Output})
	start := time.Now()
	defer func() {
		eventbus.Publish(ctx, events.GenerateFinish{
			Schema:   schemaPath,
			Output:   res.Output,
			Types:    res.Types,
			Models:   res.Models,
			Bytes:    len(res.Code),
			Err:      err,
			Duration: time.Since(start),
		})
	}()
	opts.logf("run %s: loading schema %s", rid, schemaPath)

	proj, err := ir.Load(ctx, schemaPath)
	if err != nil {
		return res, fmt.Errorf("load schema: %w", err)
	}

	intro := opts.Introspector
	if intro == nil {
		intro = introspect.NewTypeScript()
	}
	outDir := filepath.Dir(res.Output)

	models, err := buildModels(ctx, cfg, proj, intro, outDir)
	if err != nil {
		return res, err
	}
	opts.logf("run %s: registered %d models", rid, len(models))

	tsCtx, err := resolveContext(ctx, cfg, intro, outDir)
	if err != nil {
		return res, err
	}

	code, err := tsgen.Generate(ctx, tsgen.Input{
		Types:        proj.Types,
		Models:       models,
		Context:      tsCtx,
		Introspector: intro,
	})
	if err != nil {
		return res, err
	}
	res.Code = code
	res.Types = len(proj.Objects())
	res.Models = len(models)

	if opts.DryRun {
		return res, nil
	}
	written, err := writeFile(res.Output, []byte(code))
	if err != nil {
		return res, fmt.Errorf("write output: %w", err)
	}
	res.Written = written
	if written {
		opts.logf("run %s: wrote %s", rid, res.Output)
	} else {
		opts.logf("run %s: %s is up to date", rid, res.Output)
	}
	return res, nil
}

// buildModels registers every declaration in the model files whose name
// matches an object type, then applies overrides. The first file declaring a
// name wins.
func buildModels(ctx context.Context, cfg *config.Config, proj *ir.Project, intro Introspector, outDir string) (tsgen.ModelMap, error) {
	models := make(tsgen.ModelMap)
	for _, file := range cfg.ModelFiles() {
		names, err := intro.Declarations(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("scan model file: %w", err)
		}
		for _, name := range names {
			typ := proj.Type(name)
			if typ == nil || typ.Kind != ir.TypeKindObject {
				continue
			}
			if _, ok := models[name]; ok {
				continue
			}
			models[name] = tsgen.Model{TypeName: name, FilePath: file, ImportPath: importPath(outDir, file)}
		}
	}

	overrides, err := cfg.OverrideRefs()
	if err != nil {
		return nil, err
	}
	typeNames := make([]string, 0, len(overrides))
	for name := range overrides {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	var objectNames []string
	for _, typ := range proj.Objects() {
		objectNames = append(objectNames, typ.Name)
	}
	for _, name := range typeNames {
		typ := proj.Type(name)
		if typ == nil || typ.BuiltIn {
			return nil, fmt.Errorf("models.override: unknown schema type %q%s", name, suggest.Hint(name, objectNames))
		}
		if typ.Kind != ir.TypeKindObject {
			return nil, fmt.Errorf("models.override: %q is not an object type (%s)", name, typ.Kind)
		}
		ref := overrides[name]
		models[name] = tsgen.Model{TypeName: ref.Name, FilePath: ref.File, ImportPath: importPath(outDir, ref.File)}
	}
	return models, nil
}

func resolveContext(ctx context.Context, cfg *config.Config, intro Introspector, outDir string) (*tsgen.Context, error) {
	ref, err := cfg.ContextRef()
	if err != nil || ref == nil {
		return nil, err
	}
	if _, err := intro.Members(ctx, ref.File, ref.Name); err != nil {
		if errors.Is(err, introspect.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrContextNotFound, err)
		}
		return nil, fmt.Errorf("context: %w", err)
	}
	return &tsgen.Context{InterfaceName: ref.Name, FilePath: ref.File, ImportPath: importPath(outDir, ref.File)}, nil
}

// importPath returns the module specifier of file as seen from dir.
func importPath(dir, file string) string {
	rel, err := filepath.Rel(dir, file)
	if err != nil {
		rel = file
	}
	rel = filepath.ToSlash(rel)
	for _, ext := range []string{".d.ts", ".tsx", ".ts"} {
		if strings.HasSuffix(rel, ext) {
			rel = strings.TrimSuffix(rel, ext)
			break
		}
	}
	if !strings.HasPrefix(rel, ".") && !strings.HasPrefix(rel, "/") {
		rel = "./" + rel
	}
	return rel
}

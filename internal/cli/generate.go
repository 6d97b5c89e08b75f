package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hanpama/graphqlgen/internal/config"
	"github.com/hanpama/graphqlgen/internal/eventbus"
	"github.com/hanpama/graphqlgen/internal/events"
	"github.com/hanpama/graphqlgen/internal/generator"
	"github.com/hanpama/graphqlgen/internal/ir"
	"github.com/hanpama/graphqlgen/internal/otel"
	"github.com/hanpama/graphqlgen/internal/tsgen"
	"github.com/spf13/cobra"
)

var runGenerator = generator.Run

const watchDebounce = 200 * time.Millisecond

func newGenerateCmd() *cobra.Command {
	var (
		dryRun       bool
		watchMode    bool
		otelEndpoint string
		otelService  string
	)
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate TypeScript resolver types from the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if watchMode && dryRun {
				return wrapError("generate: --watch cannot be combined with --dry-run", errors.New("invalid flag combination"), "Remove --dry-run to enable watch mode.", 2)
			}
			cfg, err := loadProjectConfig(cmd)
			if err != nil {
				return err
			}

			bus := eventbus.New()
			eventbus.Use(bus)
			defer eventbus.Use(nil)
			if verbose {
				unsubscribe := eventbus.SubscribeTo(bus, func(ctx context.Context, e events.IntrospectFinish) {
					logVerbose(cmd, "introspected %s as %s in %s: %d members (%s)", e.TypeName, e.Model, e.File, e.Members, e.Duration)
				})
				defer unsubscribe()
			}
			shutdown, err := otel.Setup(otelEndpoint, otelService)
			if err != nil {
				return wrapError(fmt.Sprintf("generate: telemetry setup failed: %v", err), err, "Check --otel-endpoint or omit it to disable tracing.", 1)
			}
			defer func() { _ = shutdown(context.Background()) }()

			opts := generator.Options{
				DryRun: dryRun,
				Logf:   func(format string, args ...any) { logVerbose(cmd, format, args...) },
			}
			if watchMode {
				return runWatch(cmd, cfg, opts)
			}
			return executeGeneration(cmd, cfg, opts)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the generated code instead of writing it")
	cmd.Flags().BoolVar(&watchMode, "watch", false, "Regenerate when the schema, model or context files change")
	cmd.Flags().StringVar(&otelEndpoint, "otel-endpoint", "", "OTLP collector endpoint (tracing is off when empty)")
	cmd.Flags().StringVar(&otelService, "otel-service", "graphqlgen", "OpenTelemetry service name")
	return cmd
}

func executeGeneration(cmd *cobra.Command, cfg *config.Config, opts generator.Options) error {
	res, err := runGenerator(cmd.Context(), cfg, opts)
	if err != nil {
		return generationError("generate", err)
	}
	out := cmd.OutOrStdout()
	if opts.DryRun {
		fmt.Fprint(out, res.Code)
		return nil
	}
	rel := displayPath(res.Output)
	if res.Written {
		fmt.Fprintf(out, "generated %s (%d types, %d models)\n", rel, res.Types, res.Models)
	} else {
		fmt.Fprintf(out, "%s is up to date\n", rel)
	}
	return nil
}

// generationError maps pipeline failures to command errors with hints.
func generationError(command string, err error) error {
	var (
		missing *tsgen.MissingModelError
		invalid ir.ValidationError
	)
	switch {
	case errors.As(err, &missing):
		return wrapError(fmt.Sprintf("%s: %v", command, err), err, "Declare the model interface or fix models.files / models.override in the config.", 1)
	case errors.Is(err, generator.ErrContextNotFound):
		return wrapError(fmt.Sprintf("%s: %v", command, err), err, "Point the context entry at an exported interface, e.g. ./src/context.ts:Context.", 1)
	case errors.As(err, &invalid):
		return wrapError(fmt.Sprintf("%s: invalid schema: %v", command, err), err, "Fix the schema errors above and re-run.", 1)
	}
	return wrapError(fmt.Sprintf("%s: %v", command, err), err, "", 1)
}

func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil {
		return rel
	}
	return path
}

func runWatch(cmd *cobra.Command, cfg *config.Config, opts generator.Options) error {
	if err := executeGeneration(cmd, cfg, opts); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "generate: %v\n", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return wrapError(fmt.Sprintf("generate: watch failed: %v", err), err, "Install inotify/fsevents support and retry.", 1)
	}
	defer watcher.Close()

	targets, err := newWatchTargets(cfg)
	if err != nil {
		return wrapError(fmt.Sprintf("generate: watch failed: %v", err), err, "Ensure the schema and model paths exist before using --watch.", 1)
	}
	for _, dir := range targets.dirs {
		if err := watcher.Add(dir); err != nil {
			return wrapError(fmt.Sprintf("generate: unable to watch %s: %v", dir, err), err, "Ensure the directory exists before using --watch.", 1)
		}
		logVerbose(cmd, "watching %s", dir)
	}

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event := <-watcher.Events:
			if !targets.matches(event) {
				continue
			}
			logVerbose(cmd, "change detected: %s", event.Name)
			pending = true
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(watchDebounce)
		case err := <-watcher.Errors:
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "generate: watch error: %v\n", err)
			}
		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			if err := executeGeneration(cmd, cfg, opts); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "generate: watch run failed: %v\n", err)
			}
		}
	}
}

// watchTargets holds the directories to watch and the files in them that
// trigger a run.
type watchTargets struct {
	dirs []string
	// files are watched input files.
	files map[string]bool
	// schemaDirs contain SDL files of a directory schema.
	schemaDirs map[string]bool
}

func newWatchTargets(cfg *config.Config) (*watchTargets, error) {
	t := &watchTargets{files: make(map[string]bool), schemaDirs: make(map[string]bool)}
	seen := make(map[string]bool)
	addDir := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			t.dirs = append(t.dirs, dir)
		}
	}

	schemaPath := filepath.Clean(cfg.SchemaPath())
	info, err := os.Stat(schemaPath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		err := filepath.WalkDir(schemaPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				t.schemaDirs[path] = true
				addDir(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	for _, path := range cfg.WatchPaths() {
		path = filepath.Clean(path)
		if path == schemaPath && info.IsDir() {
			continue
		}
		t.files[path] = true
		addDir(filepath.Dir(path))
	}
	return t, nil
}

func (t *watchTargets) matches(event fsnotify.Event) bool {
	if event.Name == "" || (event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write)) {
		return false
	}
	name := filepath.Clean(event.Name)
	if t.files[name] {
		return true
	}
	return t.schemaDirs[filepath.Dir(name)] && ir.IsSchemaFile(name)
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/hanpama/graphqlgen/internal/config"
	"github.com/hanpama/graphqlgen/internal/generator"
	"github.com/hanpama/graphqlgen/internal/ir"
	"github.com/hanpama/graphqlgen/internal/tsgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"graphqlgen.yml":       "schema: ./schema\nmodels:\n  files: [./src/types.ts]\noutput: ./src/generated/graphqlgen.ts\n",
		"schema/query.graphql": "type Query {\n  me: User\n}\n",
		"schema/user.graphql":  "type User {\n  id: ID!\n  name: String\n}\n",
		"src/types.ts":         "export interface User {\n  id: string\n}\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestGenerateDryRunPrintsCode(t *testing.T) {
	dir := writeWorkspace(t)
	stdout, _, err := runCLI(t, "generate", "--dry-run", "--config", filepath.Join(dir, "graphqlgen.yml"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "// Code generated by graphqlgen, DO NOT EDIT.\n"))
	assert.Contains(t, stdout, "import { User } from '../types'\n")
	assert.Contains(t, stdout, "    id: (parent: User) => parent.id,\n")
	assert.Contains(t, stdout, "  User: UserResolvers.Type\n")

	_, err = os.Stat(filepath.Join(dir, "src", "generated", "graphqlgen.ts"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenAliasWritesFile(t *testing.T) {
	dir := writeWorkspace(t)
	stdout, stderr, err := runCLI(t, "gen", "-v", "-c", filepath.Join(dir, "graphqlgen.yml"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "generated ")
	assert.Contains(t, stdout, "(2 types, 1 models)")
	assert.Contains(t, stderr, "[verbose] loaded config")
	assert.Contains(t, stderr, "[verbose] introspected User as User")

	raw, err := os.ReadFile(filepath.Join(dir, "src", "generated", "graphqlgen.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "export namespace UserResolvers {")

	stdout, _, err = runCLI(t, "gen", "-c", filepath.Join(dir, "graphqlgen.yml"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "is up to date")
}

func TestGenerateForwardsOptions(t *testing.T) {
	original := runGenerator
	defer func() { runGenerator = original }()

	var captured generator.Options
	var capturedCfg *config.Config
	runGenerator = func(ctx context.Context, cfg *config.Config, opts generator.Options) (generator.Result, error) {
		captured = opts
		capturedCfg = cfg
		return generator.Result{Code: "// stub\n"}, nil
	}

	dir := writeWorkspace(t)
	stdout, _, err := runCLI(t, "generate", "--dry-run", "--config", filepath.Join(dir, "graphqlgen.yml"))
	require.NoError(t, err)
	assert.True(t, captured.DryRun)
	assert.NotNil(t, captured.Logf)
	assert.Equal(t, dir, capturedCfg.Dir)
	assert.Equal(t, "// stub\n", stdout)
}

func TestGenerateErrors(t *testing.T) {
	original := runGenerator
	defer func() { runGenerator = original }()

	dir := writeWorkspace(t)
	cfgPath := filepath.Join(dir, "graphqlgen.yml")
	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{"missing model", &tsgen.MissingModelError{TypeName: "User", ModelTypeName: "Usr", FilePath: "types.ts"}, "Declare the model interface"},
		{"missing context", generator.ErrContextNotFound, "Point the context entry"},
		{"invalid schema", ir.ValidationError{{Message: "Type \"X\" not found in definitions"}}, "Fix the schema errors"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runGenerator = func(context.Context, *config.Config, generator.Options) (generator.Result, error) {
				return generator.Result{}, tc.err
			}
			_, _, err := runCLI(t, "generate", "--config", cfgPath)
			require.Error(t, err)
			var cerr CommandError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, 1, cerr.ExitStatus())
			assert.Contains(t, cerr.Suggestion, tc.wantHint)
		})
	}
}

func TestGenerateRejectsWatchWithDryRun(t *testing.T) {
	_, _, err := runCLI(t, "generate", "--watch", "--dry-run")
	var cerr CommandError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 2, cerr.ExitStatus())
}

func TestMissingConfig(t *testing.T) {
	_, _, err := runCLI(t, "generate", "--config", filepath.Join(t.TempDir(), "nope.yml"))
	var cerr CommandError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 2, cerr.ExitStatus())
	assert.Contains(t, cerr.Suggestion, "graphqlgen init")

	var buf bytes.Buffer
	code := reportError(&buf, err)
	assert.Equal(t, 2, code)
	assert.Contains(t, buf.String(), "not found\n")
	assert.Contains(t, buf.String(), "hint: Run `graphqlgen init`")
}

func TestReportPlainError(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 1, reportError(&buf, errors.New("boom")))
	assert.Equal(t, "boom\n", buf.String())
}

func TestSchemaCommand(t *testing.T) {
	dir := writeWorkspace(t)
	stdout, _, err := runCLI(t, "schema", "--config", filepath.Join(dir, "graphqlgen.yml"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "type Query {\n  me: User\n}\n")
	assert.Contains(t, stdout, "type User {\n  id: ID!\n  name: String\n}\n")

	out := filepath.Join(dir, "build", "schema.graphql")
	_, _, err = runCLI(t, "schema", "--config", filepath.Join(dir, "graphqlgen.yml"), "--out", out)
	require.NoError(t, err)
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, stdout, string(raw))
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphqlgen.yml")
	stdout, _, err := runCLI(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote ")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.LanguageTypeScript, cfg.Language)

	_, _, err = runCLI(t, "init", "--config", path)
	var cerr CommandError
	require.True(t, errors.As(err, &cerr))
	assert.Contains(t, cerr.Suggestion, "--force")

	_, _, err = runCLI(t, "init", "--force", "--config", path)
	require.NoError(t, err)
}

func TestWatchTargets(t *testing.T) {
	dir := writeWorkspace(t)
	cfg, err := config.Load(filepath.Join(dir, "graphqlgen.yml"))
	require.NoError(t, err)

	targets, err := newWatchTargets(cfg)
	require.NoError(t, err)
	assert.Contains(t, targets.dirs, filepath.Join(dir, "schema"))
	assert.Contains(t, targets.dirs, filepath.Join(dir, "src"))

	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: filepath.Join(dir, "schema", "post.graphql"), Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: filepath.Join(dir, "schema", "notes.txt"), Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: filepath.Join(dir, "src", "types.ts"), Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: filepath.Join(dir, "src", "types.ts"), Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: filepath.Join(dir, "src", "other.ts"), Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: filepath.Join(dir, "src", "generated", "graphqlgen.ts"), Op: fsnotify.Write}, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, targets.matches(tc.event), tc.event.String())
	}
}

// Package config loads graphqlgen.yml.
//
// Paths in the file are relative to the directory holding it. Declarations
// are referenced as "<file>:<Name>", for example "./src/models.ts:PostModel".
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up when none is given.
const DefaultFile = "graphqlgen.yml"

// LanguageTypeScript is the only supported output language.
const LanguageTypeScript = "typescript"

type Config struct {
	Language string `yaml:"language"`
	// Schema is an SDL file or a directory of SDL files.
	Schema  string `yaml:"schema"`
	Context string `yaml:"context,omitempty"`
	Models  Models `yaml:"models"`
	Output  string `yaml:"output"`

	// Dir is the directory relative paths resolve against.
	Dir string `yaml:"-"`
}

type Models struct {
	// Files are scanned for declarations named like schema types.
	Files []string `yaml:"files,omitempty"`
	// Override maps schema type names to explicit declarations.
	Override map[string]string `yaml:"override,omitempty"`
}

// Ref names a declaration inside a file.
type Ref struct {
	File string
	Name string
}

func (r Ref) String() string { return r.File + ":" + r.Name }

// ParseRef splits "<file>:<Name>" at the last colon.
func ParseRef(s string) (Ref, error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return Ref{}, fmt.Errorf("invalid declaration reference %q: expected <file>:<Name>", s)
	}
	ref := Ref{File: strings.TrimSpace(s[:i]), Name: strings.TrimSpace(s[i+1:])}
	if ref.File == "" || ref.Name == "" {
		return Ref{}, fmt.Errorf("invalid declaration reference %q: expected <file>:<Name>", s)
	}
	return ref, nil
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(raw, filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes raw YAML. Unknown keys are rejected.
func Parse(raw []byte, dir string) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("config is empty")
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Dir = dir
	if cfg.Language == "" {
		cfg.Language = LanguageTypeScript
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Language != LanguageTypeScript {
		errs = append(errs, fmt.Errorf("unsupported language %q: only %q is supported", c.Language, LanguageTypeScript))
	}
	if c.Schema == "" {
		errs = append(errs, errors.New("schema is required"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output is required"))
	}
	if c.Context != "" {
		if _, err := ParseRef(c.Context); err != nil {
			errs = append(errs, fmt.Errorf("context: %w", err))
		}
	}
	for _, typeName := range sortedKeys(c.Models.Override) {
		if _, err := ParseRef(c.Models.Override[typeName]); err != nil {
			errs = append(errs, fmt.Errorf("models.override.%s: %w", typeName, err))
		}
	}
	return errors.Join(errs...)
}

// Resolve makes p absolute against the config directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

func (c *Config) SchemaPath() string { return c.Resolve(c.Schema) }

func (c *Config) OutputPath() string { return c.Resolve(c.Output) }

func (c *Config) ModelFiles() []string {
	files := make([]string, 0, len(c.Models.Files))
	for _, f := range c.Models.Files {
		files = append(files, c.Resolve(f))
	}
	return files
}

// ContextRef returns the resolved context declaration, or nil when none is
// configured.
func (c *Config) ContextRef() (*Ref, error) {
	if c.Context == "" {
		return nil, nil
	}
	ref, err := ParseRef(c.Context)
	if err != nil {
		return nil, err
	}
	ref.File = c.Resolve(ref.File)
	return &ref, nil
}

// OverrideRefs returns the resolved model overrides keyed by schema type.
func (c *Config) OverrideRefs() (map[string]Ref, error) {
	refs := make(map[string]Ref, len(c.Models.Override))
	for typeName, s := range c.Models.Override {
		ref, err := ParseRef(s)
		if err != nil {
			return nil, fmt.Errorf("models.override.%s: %w", typeName, err)
		}
		ref.File = c.Resolve(ref.File)
		refs[typeName] = ref
	}
	return refs, nil
}

// WatchPaths lists the inputs a generation run reads.
func (c *Config) WatchPaths() []string {
	paths := []string{c.SchemaPath()}
	paths = append(paths, c.ModelFiles()...)
	if ref, err := c.ContextRef(); err == nil && ref != nil {
		paths = append(paths, ref.File)
	}
	overrides, _ := c.OverrideRefs()
	for _, typeName := range sortedKeys(c.Models.Override) {
		paths = append(paths, overrides[typeName].File)
	}
	return paths
}

// Default is the starter config written by init.
func Default() *Config {
	return &Config{
		Language: LanguageTypeScript,
		Schema:   "./src/schema.graphql",
		Context:  "./src/context.ts:Context",
		Models:   Models{Files: []string{"./src/types.ts"}},
		Output:   "./src/generated/graphqlgen.ts",
	}
}

// Marshal encodes c as YAML with two-space indentation.
func Marshal(c *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# graphqlgen configuration\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

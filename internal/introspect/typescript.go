package introspect

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TypeScript introspects interface and object type alias declarations in
// TypeScript source files. Parsed files are cached for the lifetime of the
// value; create one per generation run.
type TypeScript struct {
	mu    sync.Mutex
	files map[string][]Declaration

	// ReadFile defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// NewTypeScript returns a TypeScript introspector reading from disk.
func NewTypeScript() *TypeScript {
	return &TypeScript{files: make(map[string][]Declaration)}
}

func (ts *TypeScript) Members(ctx context.Context, filePath, name string) ([]Member, error) {
	decls, err := ts.load(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return findMembers(decls, filePath, name)
}

func (ts *TypeScript) Declarations(ctx context.Context, filePath string) ([]string, error) {
	decls, err := ts.load(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return declarationNames(decls), nil
}

func (ts *TypeScript) load(ctx context.Context, filePath string) ([]Declaration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := filepath.Clean(filePath)

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.files == nil {
		ts.files = make(map[string][]Declaration)
	}
	if decls, ok := ts.files[key]; ok {
		return decls, nil
	}
	read := ts.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	src, err := read(key)
	if err != nil {
		return nil, fmt.Errorf("read model file %q: %w", filePath, err)
	}
	decls := ParseTypeScript(string(src))
	ts.files[key] = decls
	return decls, nil
}

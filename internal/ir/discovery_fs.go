package ir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FileSystemDiscovery implements Discovery over a single SDL file or a
// directory tree of *.graphql / *.gql files.
type FileSystemDiscovery struct {
	paths map[SourceID]string
	metas []*SourceMetadata
}

// NewFileSystemDiscovery creates a FileSystemDiscovery rooted at path.
func NewFileSystemDiscovery(ctx context.Context, path string) (*FileSystemDiscovery, error) {
	if path == "" {
		return nil, fmt.Errorf("schema path cannot be empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat schema path %q: %w", path, err)
	}
	discovery := &FileSystemDiscovery{paths: make(map[SourceID]string)}

	if !info.IsDir() {
		discovery.add(path, filepath.Base(path))
		return discovery, nil
	}

	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsSchemaFile(d.Name()) {
			return nil
		}
		relPath, err := filepath.Rel(path, p)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %q: %w", p, err)
		}
		discovery.add(p, filepath.ToSlash(relPath))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk schema directory %q: %w", path, err)
	}
	if len(discovery.metas) == 0 {
		return nil, fmt.Errorf("no schema files found in %q", path)
	}
	sort.Slice(discovery.metas, func(i, j int) bool { return discovery.metas[i].FilePath < discovery.metas[j].FilePath })
	return discovery, nil
}

func (d *FileSystemDiscovery) add(path, relPath string) {
	id := SourceID(relPath)
	d.paths[id] = path
	d.metas = append(d.metas, &SourceMetadata{ID: id, FilePath: relPath})
}

// ListMetadata returns the discovered sources ordered by relative path.
func (d *FileSystemDiscovery) ListMetadata(ctx context.Context) ([]*SourceMetadata, error) {
	return append([]*SourceMetadata(nil), d.metas...), nil
}

// ReadSource reads the SDL content of a discovered source.
func (d *FileSystemDiscovery) ReadSource(ctx context.Context, id SourceID) (string, error) {
	fp, ok := d.paths[id]
	if !ok {
		return "", fmt.Errorf("source %q not found", id)
	}
	content, err := os.ReadFile(fp)
	if err != nil {
		return "", fmt.Errorf("failed to read schema source %q: %w", id, err)
	}
	return string(content), nil
}

// IsSchemaFile reports whether name has an SDL file extension.
func IsSchemaFile(name string) bool {
	switch filepath.Ext(name) {
	case ".graphql", ".gql", ".graphqls":
		return true
	}
	return false
}

// Load is a convenience function that creates a FileSystemDiscovery and builds the project
func Load(ctx context.Context, path string) (*Project, error) {
	discovery, err := NewFileSystemDiscovery(ctx, path)
	if err != nil {
		return nil, err
	}
	return Build(ctx, discovery)
}

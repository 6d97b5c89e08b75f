package ir

import (
	"context"
	"fmt"
)

type InMemorySource struct {
	Name    string
	Content string
}

// InMemoryDiscovery is a test implementation of Discovery that stores data in memory
type InMemoryDiscovery struct {
	metas    []*SourceMetadata
	contents map[SourceID]string
}

// NewInMemoryDiscovery creates a new InMemoryDiscovery instance. Sources keep
// the given order.
func NewInMemoryDiscovery(srcs []InMemorySource) *InMemoryDiscovery {
	discovery := &InMemoryDiscovery{
		contents: make(map[SourceID]string),
	}
	for _, src := range srcs {
		id := SourceID(src.Name)
		discovery.metas = append(discovery.metas, &SourceMetadata{ID: id, FilePath: src.Name})
		discovery.contents[id] = src.Content
	}
	return discovery
}

// ListMetadata implements Discovery interface
func (d *InMemoryDiscovery) ListMetadata(ctx context.Context) ([]*SourceMetadata, error) {
	return append([]*SourceMetadata(nil), d.metas...), nil
}

// ReadSource implements Discovery interface
func (d *InMemoryDiscovery) ReadSource(ctx context.Context, id SourceID) (string, error) {
	content, exists := d.contents[id]
	if !exists {
		return "", fmt.Errorf("source %q not found", id)
	}
	return content, nil
}

// BuildFromSDL builds a project from a single SDL string.
func BuildFromSDL(sdl string) (*Project, error) {
	return Build(context.Background(), NewInMemoryDiscovery([]InMemorySource{{Name: "schema.graphql", Content: sdl}}))
}

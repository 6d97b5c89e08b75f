package ir

import (
	"context"
)

// SourceMetadata identifies one SDL document.
type SourceMetadata struct {
	ID       SourceID
	FilePath string
}

// SourceID is a unique identifier for a source, usually its path.
type SourceID string

type Discovery interface {
	ListMetadata(ctx context.Context) ([]*SourceMetadata, error)
	ReadSource(ctx context.Context, id SourceID) (string, error)
}

package introspect

import (
	"context"
	"sync"

	"github.com/hanpama/graphqlgen/internal/suggest"
)

// Static is an in-memory Introspector. The zero value is empty and ready to use.
type Static struct {
	mu    sync.RWMutex
	files map[string][]Declaration
}

// NewStatic returns an empty Static.
func NewStatic() *Static { return &Static{} }

// Add registers a declaration under filePath, merging members into an
// existing declaration of the same name.
func (s *Static) Add(filePath, name string, members ...Member) *Static {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string][]Declaration)
	}
	s.files[filePath] = mergeDeclaration(s.files[filePath], Declaration{Name: name, Members: members})
	return s
}

func (s *Static) Members(ctx context.Context, filePath, name string) ([]Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findMembers(s.files[filePath], filePath, name)
}

func (s *Static) Declarations(ctx context.Context, filePath string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return declarationNames(s.files[filePath]), nil
}

func findMembers(decls []Declaration, filePath, name string) ([]Member, error) {
	for _, d := range decls {
		if d.Name == name {
			return append([]Member(nil), d.Members...), nil
		}
	}
	return nil, &NotFoundError{
		Name:       name,
		File:       filePath,
		Suggestion: suggest.Closest(name, declarationNames(decls)),
	}
}

func declarationNames(decls []Declaration) []string {
	names := make([]string, 0, len(decls))
	for _, d := range decls {
		names = append(names, d.Name)
	}
	return names
}

// mergeDeclaration appends d, or merges it into an earlier declaration with
// the same name. Members already present keep their first position.
func mergeDeclaration(decls []Declaration, d Declaration) []Declaration {
	for i := range decls {
		if decls[i].Name != d.Name {
			continue
		}
		for _, m := range d.Members {
			if !hasMember(decls[i].Members, m.Name) {
				decls[i].Members = append(decls[i].Members, m)
			}
		}
		return decls
	}
	return append(decls, d)
}

func hasMember(members []Member, name string) bool {
	for _, m := range members {
		if m.Name == name {
			return true
		}
	}
	return false
}

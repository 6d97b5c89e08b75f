// Package introspect enumerates the members of named model declarations.
//
// Generators consume it through the Introspector interface so they never depend
// on a particular declaration source format. TypeScript reads .ts declaration
// files; Static serves fixed declarations from memory.
package introspect

import (
	"context"
	"errors"
	"fmt"
)

// Member is one property of a model declaration.
type Member struct {
	Name     string `json:"name"`
	Optional bool   `json:"optional,omitempty"`
}

// Declaration is a named member list found in a source file.
type Declaration struct {
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// Introspector returns the ordered members of the declaration called name in
// filePath. A missing declaration is reported with an error matching
// ErrNotFound.
type Introspector interface {
	Members(ctx context.Context, filePath, name string) ([]Member, error)
}

// Lister enumerates the declaration names of a file in source order.
type Lister interface {
	Declarations(ctx context.Context, filePath string) ([]string, error)
}

var ErrNotFound = errors.New("declaration not found")

// NotFoundError reports a declaration missing from a file. Suggestion holds
// the closest existing declaration name, if any.
type NotFoundError struct {
	Name       string
	File       string
	Suggestion string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("no interface found for name %s in %s", e.Name, e.File)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

package introspect

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelsTS = `
import { Thing } from './thing'

// A user of the blog.
export interface User {
  id: string
  name?: string // display name
  readonly email: string;
  'created-at'?: Date,
  /* legacy */ age?: number
  posts: Post[]
  tags:
    | 'a'
    | 'b'
  address: {
    street: string
    zip?: string
  }
  greet(name: string): string
  nickname?(): string
  [key: string]: unknown
  new (x: number): User
  (call: number): void
  get full(): string
  callback: (x: number) => void
  readonly?: boolean
}

export interface Post<T extends { id: string } = { id: string }> extends Base<T>, Other {
  id: string; title: string; body?: string
}

declare interface Post {
  author: User
}

export type Comment = {
  id: string
  text?: string
}

export type Alias = User
export type Mixed = { a: string } & Other
type Thing2 = Thing.type
const text = "interface Fake { nope: string }"
`

func TestParseTypeScript(t *testing.T) {
	decls := ParseTypeScript(modelsTS)

	want := []Declaration{
		{Name: "User", Members: []Member{
			{Name: "id"},
			{Name: "name", Optional: true},
			{Name: "email"},
			{Name: "created-at", Optional: true},
			{Name: "age", Optional: true},
			{Name: "posts"},
			{Name: "tags"},
			{Name: "address"},
			{Name: "callback"},
			{Name: "readonly", Optional: true},
		}},
		{Name: "Post", Members: []Member{
			{Name: "id"},
			{Name: "title"},
			{Name: "body", Optional: true},
			{Name: "author"},
		}},
		{Name: "Comment", Members: []Member{
			{Name: "id"},
			{Name: "text", Optional: true},
		}},
	}
	if diff := cmp.Diff(want, decls); diff != "" {
		t.Errorf("declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTypeScriptEmptyAndMalformed(t *testing.T) {
	assert.Empty(t, ParseTypeScript(""))
	assert.Empty(t, ParseTypeScript("interface"))
	assert.Empty(t, ParseTypeScript("/* unterminated"))

	decls := ParseTypeScript("interface Open { a: string")
	require.Len(t, decls, 1)
	assert.Equal(t, []Member{{Name: "a"}}, decls[0].Members)

	decls = ParseTypeScript("interface Empty {}")
	require.Len(t, decls, 1)
	assert.Empty(t, decls[0].Members)
}

func TestTypeScriptIntrospector(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.ts")
	require.NoError(t, os.WriteFile(path, []byte(modelsTS), 0o644))

	ts := NewTypeScript()
	members, err := ts.Members(t.Context(), path, "Comment")
	require.NoError(t, err)
	assert.Equal(t, []Member{{Name: "id"}, {Name: "text", Optional: true}}, members)

	names, err := ts.Declarations(t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"User", "Post", "Comment"}, names)

	_, err = ts.Members(t.Context(), path, "Usr")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Usr", nf.Name)
	assert.Equal(t, "User", nf.Suggestion)
	assert.Contains(t, err.Error(), `no interface found for name Usr in `)
	assert.Contains(t, err.Error(), `(did you mean "User"?)`)

	_, err = ts.Members(t.Context(), filepath.Join(dir, "missing.ts"), "User")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestTypeScriptCachesFiles(t *testing.T) {
	reads := 0
	ts := &TypeScript{ReadFile: func(name string) ([]byte, error) {
		reads++
		return []byte("interface A { x: string }"), nil
	}}
	for range 3 {
		_, err := ts.Members(context.Background(), "./models.ts", "A")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, reads)
}

func TestIntrospectorHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTypeScript().Members(ctx, "models.ts", "User")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = NewStatic().Members(ctx, "models.ts", "User")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatic(t *testing.T) {
	s := NewStatic().
		Add("models.ts", "User", Member{Name: "id"}).
		Add("models.ts", "User", Member{Name: "id"}, Member{Name: "name", Optional: true}).
		Add("models.ts", "Post", Member{Name: "title"})

	members, err := s.Members(context.Background(), "models.ts", "User")
	require.NoError(t, err)
	assert.Equal(t, []Member{{Name: "id"}, {Name: "name", Optional: true}}, members)

	names, err := s.Declarations(context.Background(), "models.ts")
	require.NoError(t, err)
	assert.Equal(t, []string{"User", "Post"}, names)

	_, err = s.Members(context.Background(), "other.ts", "User")
	assert.ErrorIs(t, err, ErrNotFound)

	var zero Static
	_, err = zero.Members(context.Background(), "models.ts", "User")
	assert.ErrorIs(t, err, ErrNotFound)
}

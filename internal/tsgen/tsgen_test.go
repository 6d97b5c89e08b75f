package tsgen

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hanpama/graphqlgen/internal/eventbus"
	"github.com/hanpama/graphqlgen/internal/events"
	"github.com/hanpama/graphqlgen/internal/introspect"
	"github.com/hanpama/graphqlgen/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userSDL = `
type Query {
  user(id: ID!): User
}

type Mutation {
  createUser(data: UserInput!): User!
}

type User {
  id: ID!
  name: String
}

input UserInput {
  name: String
}
`

const userGolden = `// Code generated by graphqlgen, DO NOT EDIT.

import { GraphQLResolveInfo } from 'graphql'
type Context = any
import { User } from './models'

export namespace QueryResolvers {
  export const defaultResolvers = {}

  export interface ArgsUser {
    id: string
  }

  export type UserResolver = (
    parent: {},
    args: ArgsUser,
    ctx: Context,
    info: GraphQLResolveInfo,
  ) => User | null | Promise<User | null>

  export interface Type {
    user: (
      parent: {},
      args: ArgsUser,
      ctx: Context,
      info: GraphQLResolveInfo,
    ) => User | null | Promise<User | null>
  }
}

export namespace MutationResolvers {
  export const defaultResolvers = {}

  export interface UserInput {
    name: string
  }

  export interface ArgsCreateUser {
    data: UserInput
  }

  export type CreateUserResolver = (
    parent: {},
    args: ArgsCreateUser,
    ctx: Context,
    info: GraphQLResolveInfo,
  ) => User | Promise<User>

  export interface Type {
    createUser: (
      parent: {},
      args: ArgsCreateUser,
      ctx: Context,
      info: GraphQLResolveInfo,
    ) => User | Promise<User>
  }
}

export namespace UserResolvers {
  export const defaultResolvers = {
    id: (parent: User) => parent.id,
    name: (parent: User) => parent.name === undefined ? null : parent.name,
  }

  export type IdResolver = (
    parent: User,
    args: {},
    ctx: Context,
    info: GraphQLResolveInfo,
  ) => string | Promise<string>

  export type NameResolver = (
    parent: User,
    args: {},
    ctx: Context,
    info: GraphQLResolveInfo,
  ) => string | null | Promise<string | null>

  export interface Type {
    id: (
      parent: User,
      args: {},
      ctx: Context,
      info: GraphQLResolveInfo,
    ) => string | Promise<string>
    name: (
      parent: User,
      args: {},
      ctx: Context,
      info: GraphQLResolveInfo,
    ) => string | null | Promise<string | null>
  }
}

export interface Resolvers {
  Query: QueryResolvers.Type
  Mutation: MutationResolvers.Type
  User: UserResolvers.Type
}
`

func userInput(t *testing.T) Input {
	t.Helper()
	proj, err := ir.BuildFromSDL(userSDL)
	require.NoError(t, err)
	return Input{
		Types:  proj.Types,
		Models: ModelMap{"User": {TypeName: "User", FilePath: "models.ts", ImportPath: "./models"}},
		Introspector: introspect.NewStatic().Add("models.ts", "User",
			introspect.Member{Name: "id"},
			introspect.Member{Name: "name", Optional: true},
			introspect.Member{Name: "passwordHash"},
		),
	}
}

func TestGenerateGolden(t *testing.T) {
	got, err := Generate(context.Background(), userInput(t))
	require.NoError(t, err)
	if diff := cmp.Diff(userGolden, got); diff != "" {
		t.Errorf("generated output mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	in := userInput(t)
	first, err := Generate(context.Background(), in)
	require.NoError(t, err)
	for range 5 {
		again, err := Generate(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGenerateWithContextImport(t *testing.T) {
	in := userInput(t)
	in.Context = &Context{InterfaceName: "AppContext", FilePath: "context.ts", ImportPath: "./context"}
	got, err := Generate(context.Background(), in)
	require.NoError(t, err)

	assert.Contains(t, got, "import { AppContext } from './context'\n")
	assert.NotContains(t, got, "type Context = any")
	assert.Contains(t, got, "    ctx: AppContext,\n")
	assert.NotContains(t, got, "ctx: Context,")
}

func TestGenerateMissingModelAborts(t *testing.T) {
	in := userInput(t)
	in.Models["User"] = Model{TypeName: "Usr", FilePath: "models.ts", ImportPath: "./models"}

	got, err := Generate(context.Background(), in)
	require.Error(t, err)
	assert.Empty(t, got)

	var missing *MissingModelError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "User", missing.TypeName)
	assert.Equal(t, "Usr", missing.ModelTypeName)
	assert.ErrorIs(t, err, introspect.ErrNotFound)
	assert.Equal(t, `no interface found for name Usr in models.ts (model of type User), did you mean "User"?`, err.Error())
}

func TestGenerateFirstErrorInDeclarationOrder(t *testing.T) {
	proj, err := ir.BuildFromSDL("type Query { a: A b: B }\ntype A { id: ID }\ntype B { id: ID }")
	require.NoError(t, err)
	in := Input{
		Types: proj.Types,
		Models: ModelMap{
			"A": {TypeName: "MissingA", FilePath: "a.ts", ImportPath: "./a"},
			"B": {TypeName: "MissingB", FilePath: "b.ts", ImportPath: "./b"},
		},
		Introspector: introspect.NewStatic(),
	}
	for range 10 {
		_, err := Generate(context.Background(), in)
		var missing *MissingModelError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "A", missing.TypeName)
	}
}

func TestEmptyArgsPlaceholder(t *testing.T) {
	got, err := Generate(context.Background(), userInput(t))
	require.NoError(t, err)
	assert.NotContains(t, got, "ArgsId")
	assert.NotContains(t, got, "ArgsName")
	assert.Contains(t, got, "export type IdResolver = (\n    parent: User,\n    args: {},\n")
}

func TestNamespaceForPostScenario(t *testing.T) {
	proj, err := ir.BuildFromSDL(`
type Mutation {
  createPost(data: PostInput!): Post!
  updatePost(id: ID!, data: PostInput!): Post
}
type Post { id: ID! }
input PostInput {
  title: String!
  body: String
  tags: [String!]
  meta: PostMeta
}
input PostMeta { views: Int }
`)
	require.NoError(t, err)
	idx := BuildIndex(proj.Types)
	ns := RenderNamespace(proj.Type("Mutation"), idx, nil, ModelMap{}, nil)

	var names []string
	for _, m := range ns.Members {
		switch m := m.(type) {
		case *ObjectConst:
			names = append(names, "const "+m.Name)
		case *Interface:
			names = append(names, "interface "+m.Name)
		case *FuncType:
			names = append(names, "type "+m.Name)
		}
	}
	want := []string{
		"const defaultResolvers",
		"interface PostInput",
		"interface PostInput",
		"interface PostMeta",
		"interface ArgsCreatePost",
		"interface ArgsUpdatePost",
		"type CreatePostResolver",
		"type UpdatePostResolver",
		"interface Type",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("namespace members mismatch (-want +got):\n%s", diff)
	}

	postInput := ns.Members[1].(*Interface)
	var fields []string
	for _, p := range postInput.Properties {
		fields = append(fields, p.Name+": "+p.Type)
	}
	assert.Equal(t, []string{"title: string", "body: string", "tags: string[]", "meta: PostMeta"}, fields)

	args := ns.Members[4].(*Interface)
	require.Len(t, args.Properties, 1)
	assert.Equal(t, "data", args.Properties[0].Name)
	assert.Equal(t, "PostInput", args.Properties[0].Type)

	createPost := ns.Members[6].(*FuncType)
	assert.Equal(t, "ArgsCreatePost", createPost.Signature.Params[1].Type)
	assert.Equal(t, "{} | Promise<{}>", createPost.Signature.Returns)
}

func TestPrintType(t *testing.T) {
	models := ModelMap{"Post": {TypeName: "PostModel"}}
	tests := []struct {
		name string
		ref  ir.TypeRef
		want string
	}{
		{"required scalar", ir.TypeRef{Name: "ID", Kind: ir.TypeKindScalar, IsRequired: true}, "string"},
		{"nullable int", ir.TypeRef{Name: "Int", Kind: ir.TypeKindScalar}, "number | null"},
		{"float list", ir.TypeRef{Name: "Float", Kind: ir.TypeKindScalar, IsArray: true, IsRequired: true}, "number[]"},
		{"nullable bool list", ir.TypeRef{Name: "Boolean", Kind: ir.TypeKindScalar, IsArray: true}, "boolean[] | null"},
		{"custom scalar", ir.TypeRef{Name: "DateTime", Kind: ir.TypeKindScalar, IsRequired: true}, "string"},
		{"modelled object", ir.TypeRef{Name: "Post", Kind: ir.TypeKindObject, IsRequired: true}, "PostModel"},
		{"object list", ir.TypeRef{Name: "Post", Kind: ir.TypeKindObject, IsArray: true}, "PostModel[] | null"},
		{"unmodelled object", ir.TypeRef{Name: "User", Kind: ir.TypeKindObject}, "{} | null"},
		{"enum", ir.TypeRef{Name: "Status", Kind: ir.TypeKindEnum, IsRequired: true}, "{}"},
		{"input", ir.TypeRef{Name: "PostInput", Kind: ir.TypeKindInputObject}, "PostInput | null"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PrintType(&tc.ref, models))
		})
	}
}

func TestMapScalar(t *testing.T) {
	assert.Equal(t, ScalarNumber, MapScalar("Int"))
	assert.Equal(t, ScalarNumber, MapScalar("Float"))
	assert.Equal(t, ScalarBoolean, MapScalar("Boolean"))
	assert.Equal(t, ScalarString, MapScalar("String"))
	assert.Equal(t, ScalarString, MapScalar("ID"))
	assert.Equal(t, ScalarString, MapScalar("JSON"))
}

func TestBuildIndexKeepsDuplicates(t *testing.T) {
	proj, err := ir.BuildFromSDL(`
type Query {
  a(x: In, y: Other): Int
  b(x: In, n: Int): Int
  c: Int
}
type Plain { id: ID }
input In { v: Int }
input Other { v: Int }
`)
	require.NoError(t, err)
	idx := BuildIndex(proj.Types)

	assert.Equal(t, []string{"In", "Other", "In"}, idx.InputsFor("Query"))
	assert.Nil(t, idx.InputsFor("Plain"))
	_, ok := idx.Inputs["Plain"]
	assert.False(t, ok)
	assert.Len(t, idx.InputTypes, 2)
}

func TestDeriveDefaults(t *testing.T) {
	in := userInput(t)
	proj, err := ir.BuildFromSDL(userSDL)
	require.NoError(t, err)

	defaults, err := DeriveDefaults(context.Background(), proj.Type("User"), in.Models, in.Introspector)
	require.NoError(t, err)
	assert.Equal(t, []DefaultResolver{{FieldName: "id"}, {FieldName: "name", Optional: true}}, defaults)

	defaults, err = DeriveDefaults(context.Background(), proj.Type("Query"), in.Models, in.Introspector)
	require.NoError(t, err)
	assert.Nil(t, defaults)

	_, err = DeriveDefaults(context.Background(), proj.Type("User"), in.Models, nil)
	require.Error(t, err)
}

type failingIntrospector struct{ err error }

func (f failingIntrospector) Members(context.Context, string, string) ([]introspect.Member, error) {
	return nil, f.err
}

func TestDeriveDefaultsWrapsOtherErrors(t *testing.T) {
	proj, err := ir.BuildFromSDL(userSDL)
	require.NoError(t, err)
	boom := errors.New("disk on fire")

	_, err = DeriveDefaults(context.Background(), proj.Type("User"), userInput(t).Models, failingIntrospector{err: boom})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var missing *MissingModelError
	assert.False(t, errors.As(err, &missing))
	assert.True(t, strings.HasPrefix(err.Error(), "introspect model User of type User"))
}

func TestDeriveDefaultsPublishesEvents(t *testing.T) {
	bus := eventbus.New()
	eventbus.Use(bus)
	t.Cleanup(func() { eventbus.Use(nil) })

	var mu sync.Mutex
	var started []string
	var finished []events.IntrospectFinish
	eventbus.SubscribeTo(bus, func(ctx context.Context, e events.IntrospectStart) {
		mu.Lock()
		defer mu.Unlock()
		started = append(started, e.TypeName)
	})
	eventbus.SubscribeTo(bus, func(ctx context.Context, e events.IntrospectFinish) {
		mu.Lock()
		defer mu.Unlock()
		finished = append(finished, e)
	})

	_, err := Generate(context.Background(), userInput(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"User"}, started)
	require.Len(t, finished, 1)
	assert.Equal(t, 3, finished[0].Members)
	assert.NoError(t, finished[0].Err)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "CreatePost", capitalize("createPost"))
	assert.Equal(t, "ArgsCreatePost", ArgsName("createPost"))
	assert.Equal(t, "IdResolver", ResolverName("id"))
	assert.Equal(t, "X", capitalize("x"))
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "PostResolvers", NamespaceName("Post"))
}

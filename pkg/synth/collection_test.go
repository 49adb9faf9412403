package synth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samwightt/autogql/pkg/introspection"
	"github.com/samwightt/autogql/pkg/postman"
	"github.com/samwightt/autogql/pkg/synth"
	"github.com/samwightt/autogql/pkg/testutil"
)

func itemNames(c *postman.Collection) []string {
	var names []string
	for _, item := range c.Item {
		names = append(names, item.Name)
	}
	return names
}

func TestAssemble_QueriesThenMutations(t *testing.T) {
	collection, err := synth.Assemble(testSchema(), endpoint)
	require.NoError(t, err)

	assert.Equal(t, []string{"user", "hello", "search", "node", "rename"}, itemNames(collection))
	assert.Equal(t, "api.example.com-autoGQL", collection.Info.Name)
	assert.Equal(t, postman.SchemaV21, collection.Info.Schema)
	assert.Empty(t, collection.Info.PostmanID)
}

func TestAssemble_UserQueryDocument(t *testing.T) {
	schema := &introspection.Schema{
		Types: []introspection.Type{
			{Kind: introspection.KindObject, Name: "Query", Fields: []introspection.Field{
				field("user", object("User"), arg("id", nonNullOf(scalar("ID")))),
			}},
			{Kind: introspection.KindObject, Name: "User", Fields: []introspection.Field{
				field("name", scalar("String")),
				field("id", nonNullOf(scalar("ID"))),
			}},
			{Kind: introspection.KindScalar, Name: "ID"},
			{Kind: introspection.KindScalar, Name: "String"},
		},
	}

	collection, err := synth.Assemble(schema, endpoint)
	require.NoError(t, err)
	require.Len(t, collection.Item, 1)

	gql := collection.Item[0].Request.Body.GraphQL
	assert.Contains(t, gql.Query, "query user($id: ID!)")
	assert.Equal(t, "query user($id: ID!) {\n  user(id: $id) {\n    name\n    id\n  }\n}", gql.Query)
	assert.Equal(t, "{\n\t\"id\": #\n}", gql.Variables)
}

func TestAssemble_WithoutMutationRoot(t *testing.T) {
	schema := testSchema()
	var types []introspection.Type
	for _, typ := range schema.Types {
		if typ.Name != "Mutation" {
			types = append(types, typ)
		}
	}
	schema.Types = types
	schema.MutationType = nil

	collection, err := synth.Assemble(schema, endpoint)
	require.NoError(t, err)
	assert.Equal(t, []string{"user", "hello", "search", "node"}, itemNames(collection))
}

func TestAssemble_MissingQueryRoot(t *testing.T) {
	schema := &introspection.Schema{
		Types: []introspection.Type{
			{Kind: introspection.KindObject, Name: "QueryRoot", Fields: []introspection.Field{field("orphan", object("Ghost"))}},
			{Kind: introspection.KindScalar, Name: "String"},
		},
	}

	collection, err := synth.Assemble(schema, endpoint)
	require.Error(t, err)
	assert.Nil(t, collection)

	// The integrity check runs before synthesis, so the broken field is
	// never reached.
	var integrityErr *synth.SchemaIntegrityError
	require.True(t, errors.As(err, &integrityErr))
	assert.True(t, errors.Is(err, synth.ErrQueryRootNotFound))
	assert.False(t, errors.Is(err, synth.ErrTypeNotFound))
	assert.Equal(t, "QueryRoot", integrityErr.Suggestion)
	assert.Contains(t, err.Error(), "did you mean 'QueryRoot'?")
}

func TestAssemble_LookupFailureAbortsEverything(t *testing.T) {
	schema := testSchema()
	query, _ := schema.Lookup("Query")
	query.Fields = append(query.Fields, field("orphan", object("Ghost")))

	collection, err := synth.Assemble(schema, endpoint)
	assert.Nil(t, collection)
	assert.True(t, errors.Is(err, synth.ErrTypeNotFound))
}

func TestAssemble_EmptySelectionAbortsUnlessFallback(t *testing.T) {
	schema := testSchema()
	query, _ := schema.Lookup("Query")
	query.Fields = append(query.Fields, field("viewer", object("Viewer")))

	collection, err := synth.Assemble(schema, endpoint)
	assert.Nil(t, collection)
	var compErr *synth.CompositionError
	require.True(t, errors.As(err, &compErr))
	assert.Equal(t, "viewer", compErr.Field)

	collection, err = synth.Assemble(schema, endpoint, synth.WithTypenameFallback())
	require.NoError(t, err)
	assert.Equal(t, []string{"user", "hello", "search", "node", "viewer", "rename"}, itemNames(collection))
	assert.Contains(t, collection.Item[4].Request.Body.GraphQL.Query, "    __typename\n")
}

func TestAssemble_Options(t *testing.T) {
	collection, err := synth.Assemble(testSchema(), "http://localhost:4000/api/graphql",
		synth.WithName("Example API"),
		synth.WithIDGenerator(func() string { return "fixed-id" }),
	)
	require.NoError(t, err)

	assert.Equal(t, "Example API", collection.Info.Name)
	assert.Equal(t, "fixed-id", collection.Info.PostmanID)
	assert.Equal(t, []string{"localhost:4000"}, collection.Item[0].Request.URL.Host)
	assert.Equal(t, []string{"api", "graphql"}, collection.Item[0].Request.URL.Path)
}

func TestConvert_UsesInjectedFetcher(t *testing.T) {
	calls := 0
	fetcher := introspection.FetcherFunc(func(ctx context.Context, url string) (*introspection.Schema, error) {
		calls++
		assert.Equal(t, endpoint, url)
		return testSchema(), nil
	})

	collection, err := synth.Convert(context.Background(), endpoint, fetcher)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Len(t, collection.Item, 5)
}

func TestConvert_TransportErrorIsReturnedUnchanged(t *testing.T) {
	transportErr := &introspection.TransportError{Endpoint: endpoint, Err: errors.New("connection refused")}
	fetcher := introspection.FetcherFunc(func(ctx context.Context, url string) (*introspection.Schema, error) {
		return nil, transportErr
	})

	_, err := synth.Convert(context.Background(), endpoint, fetcher)
	assert.Same(t, transportErr, err)
}

func TestConvert_InvalidEndpointSkipsFetch(t *testing.T) {
	fetcher := introspection.FetcherFunc(func(ctx context.Context, url string) (*introspection.Schema, error) {
		t.Fatal("fetch should not be called")
		return nil, nil
	})

	_, err := synth.Convert(context.Background(), "example.com/graphql", fetcher)
	assert.True(t, errors.Is(err, postman.ErrInvalidURL))
}

func TestConvert_LiveEndpoint(t *testing.T) {
	server := testutil.NewGraphQLServer(t, testutil.UserSchema)

	collection, err := synth.Convert(context.Background(), server.URL, introspection.NewClient())
	require.NoError(t, err)

	assert.Equal(t, []string{"user", "users", "hello", "rename"}, itemNames(collection))
	assert.Equal(t, postman.Authority(server.URL)+"-autoGQL", collection.Info.Name)

	user := collection.Item[0].Request.Body.GraphQL
	op := parseOperation(t, user.Query)
	assert.Equal(t, "user", op.Name)
	require.Len(t, op.VariableDefinitions, 1)
	assert.Equal(t, "ID!", op.VariableDefinitions[0].Type.String())
	assert.Contains(t, user.Query, "user(id: $id)")
	assert.Contains(t, user.Query, "\n    name\n")
	assert.Contains(t, user.Query, "\n    role\n")
	assert.NotContains(t, user.Query, "friends")

	rename := parseOperation(t, collection.Item[3].Request.Body.GraphQL.Query)
	assert.Equal(t, "mutation", string(rename.Operation))
}

func TestConvert_LiveQueryOnlyEndpoint(t *testing.T) {
	server := testutil.NewGraphQLServer(t, testutil.QueryOnlySchema)

	collection, err := synth.Convert(context.Background(), server.URL, introspection.NewClient())
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "user"}, itemNames(collection))
}

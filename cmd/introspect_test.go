package cmd_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samwightt/autogql/cmd"
	"github.com/samwightt/autogql/pkg/introspection"
	"github.com/samwightt/autogql/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntrospect_Stdout(t *testing.T) {
	server := testutil.NewGraphQLServer(t, testutil.QueryOnlySchema)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"introspect", server.URL})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "{\n\t\"data\": {\n\t\t\"__schema\""))
	schema, err := introspection.DecodeSnapshot([]byte(stdout))
	require.NoError(t, err)
	query, ok := schema.Lookup("Query")
	require.True(t, ok)
	require.Len(t, query.Fields, 2)
	assert.Equal(t, "hello", query.Fields[0].Name)
}

func TestIntrospect_FileRoundTrip(t *testing.T) {
	server := testutil.NewGraphQLServer(t, testutil.UserSchema)
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")

	_, stderr, err := cmd.ExecuteWithArgs([]string{"introspect", server.URL, "-o", schemaPath})
	require.NoError(t, err)
	assert.Contains(t, stderr, "types to "+schemaPath)

	live := filepath.Join(dir, "live.json")
	offline := filepath.Join(dir, "offline.json")
	_, _, err = cmd.ExecuteWithArgs([]string{"collection", server.URL, "-o", live, "--name", "api"})
	require.NoError(t, err)
	_, _, err = cmd.ExecuteWithArgs([]string{"collection", server.URL, "--schema-file", schemaPath, "-o", offline, "--name", "api"})
	require.NoError(t, err)

	liveItems := readCollection(t, live).Item
	offlineItems := readCollection(t, offline).Item
	assert.Equal(t, liveItems, offlineItems)
}

func TestCollection_MissingSchemaFile(t *testing.T) {
	_, _, err := cmd.ExecuteWithArgs([]string{"collection", "https://example.com/graphql", "--schema-file", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

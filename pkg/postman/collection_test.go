package postman

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		raw  string
		want URL
	}{
		{
			raw:  "https://api.example.com/graphql",
			want: URL{Raw: "https://api.example.com/graphql", Protocol: "https", Host: []string{"api", "example", "com"}, Path: []string{"graphql"}},
		},
		{
			raw:  "http://localhost:4000/v1/graphql",
			want: URL{Raw: "http://localhost:4000/v1/graphql", Protocol: "http", Host: []string{"localhost:4000"}, Path: []string{"v1", "graphql"}},
		},
		{
			raw:  "https://example.com",
			want: URL{Raw: "https://example.com", Protocol: "https", Host: []string{"example", "com"}, Path: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseURL(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseURL_Invalid(t *testing.T) {
	for _, raw := range []string{"", "example.com/graphql", "://missing", "https:///graphql"} {
		_, err := ParseURL(raw)
		assert.True(t, errors.Is(err, ErrInvalidURL), raw)
	}
}

func TestAuthority(t *testing.T) {
	assert.Equal(t, "api.example.com", Authority("https://api.example.com/graphql"))
	assert.Equal(t, "localhost:4000", Authority("http://localhost:4000"))
	assert.Equal(t, "", Authority("no-scheme"))
}

func TestWrite_TabIndentedWithEmptyArrays(t *testing.T) {
	u, err := ParseURL("https://example.com")
	require.NoError(t, err)
	c := &Collection{
		Info: Info{Name: "example.com-autoGQL", Schema: SchemaV21},
		Item: []Item{NewItem("hello", GraphQL{Query: "query hello {\n  hello\n}", Variables: "{\n\n}"}, u)},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, c))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "{\n\t\"info\": {\n\t\t\"name\": \"example.com-autoGQL\""))
	assert.Contains(t, out, `"header": []`)
	assert.Contains(t, out, `"response": []`)
	assert.Contains(t, out, `"path": []`)
	assert.Contains(t, out, `"method": "POST"`)
	assert.Contains(t, out, `"mode": "graphql"`)
	assert.NotContains(t, out, "_postman_id")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	items := decoded["item"].([]any)
	require.Len(t, items, 1)
	request := items[0].(map[string]any)["request"].(map[string]any)
	body := request["body"].(map[string]any)["graphql"].(map[string]any)
	assert.Equal(t, "query hello {\n  hello\n}", body["query"])
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	c := &Collection{Info: Info{PostmanID: "abc", Name: "n", Schema: SchemaV21}, Item: []Item{}}

	require.NoError(t, WriteFile(path, c))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\t\"item\": []")
	assert.Contains(t, string(raw), `"_postman_id": "abc"`)
}

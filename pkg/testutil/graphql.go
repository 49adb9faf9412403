// Package testutil serves real GraphQL schemas for tests that exercise
// introspection end to end.
package testutil

import (
	"net/http/httptest"
	"testing"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

// UserSchema is a small schema with a query root, a mutation root and one
// object type.
const UserSchema = `
	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		"""
		Look up a user.
		Returns null when missing.
		"""
		user(id: ID!): User
		users(first: Int, after: String): [User!]!
		hello: String!
	}

	type Mutation {
		rename(id: ID!, name: String): User
	}

	type User {
		id: ID!
		"""
		Display name.
		May be empty.
		Not unique.
		"""
		name: String
		role: Role!
		friends: [User!]!
	}

	enum Role {
		ADMIN
		MEMBER
	}
`

// QueryOnlySchema has no mutation root.
const QueryOnlySchema = `
	schema {
		query: Query
	}

	type Query {
		hello: String!
		user(id: ID!): User
	}

	type User {
		id: ID!
		name: String
	}
`

type userArgs struct {
	ID graphql.ID
}

type renameArgs struct {
	ID   graphql.ID
	Name *string
}

type pageArgs struct {
	First *int32
	After *string
}

type Resolver struct{}

func (*Resolver) User(args userArgs) *UserResolver { return nil }
func (*Resolver) Users(args pageArgs) []*UserResolver { return nil }
func (*Resolver) Hello() string { return "hello" }
func (*Resolver) Rename(args renameArgs) *UserResolver { return nil }

type UserResolver struct{}

func (*UserResolver) ID() graphql.ID { return "" }
func (*UserResolver) Name() *string { return nil }
func (*UserResolver) Role() string { return "MEMBER" }
func (*UserResolver) Friends() []*UserResolver { return nil }

// NewGraphQLServer serves sdl over the relay handler and closes the server
// when the test ends.
func NewGraphQLServer(t testing.TB, sdl string) *httptest.Server {
	t.Helper()
	schema := graphql.MustParseSchema(sdl, &Resolver{})
	server := httptest.NewServer(&relay.Handler{Schema: schema})
	t.Cleanup(server.Close)
	return server
}

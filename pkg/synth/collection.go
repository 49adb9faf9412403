// Package synth turns an introspected GraphQL schema into a Postman
// collection with one example request per query and mutation field.
package synth

import (
	"github.com/sirupsen/logrus"

	"github.com/samwightt/autogql/pkg/introspection"
	"github.com/samwightt/autogql/pkg/logging"
	"github.com/samwightt/autogql/pkg/postman"
)

const (
	queryRoot      = "Query"
	mutationRoot   = "Mutation"
	collectionTail = "-autoGQL"
)

type options struct {
	logger           logrus.FieldLogger
	name             string
	newID            func() string
	typenameFallback bool
}

type Option func(*options)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithName overrides the default "<authority>-autoGQL" collection name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithIDGenerator fills info._postman_id with the generator's result.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

// WithTypenameFallback selects __typename for object return types whose
// fields are all commented out. See TypeResolver.SetTypenameFallback.
func WithTypenameFallback() Option {
	return func(o *options) {
		o.typenameFallback = true
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: logging.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Assemble synthesizes one request per Query field, then one per Mutation
// field, in declaration order. A schema without a Query type is rejected
// before anything is synthesized; a missing Mutation type is not an error.
func Assemble(schema *introspection.Schema, endpoint string, opts ...Option) (*postman.Collection, error) {
	o := newOptions(opts)

	queryType, ok := schema.Lookup(queryRoot)
	if !ok {
		return nil, &SchemaIntegrityError{
			Root:       queryRoot,
			Suggestion: findClosest(queryRoot, schema.TypeNames()),
		}
	}
	mutationType, _ := schema.Lookup(mutationRoot)

	resolver := NewTypeResolver(schema)
	resolver.SetTypenameFallback(o.typenameFallback)
	items := []postman.Item{}

	roots := []struct {
		op  Operation
		typ *introspection.Type
	}{
		{OperationQuery, queryType},
		{OperationMutation, mutationType},
	}
	for _, root := range roots {
		if root.typ == nil {
			o.logger.WithField("root", mutationRoot).Debug("Schema has no mutation type")
			continue
		}
		for _, field := range root.typ.Fields {
			item, err := Synthesize(field, endpoint, resolver, root.op)
			if err != nil {
				return nil, err
			}
			o.logger.WithFields(logging.Fields{
				"operation": root.op,
				"field":     field.Name,
				"args":      len(field.Args),
			}).Debug("Synthesized request")
			items = append(items, item)
		}
	}

	name := o.name
	if name == "" {
		name = postman.Authority(endpoint) + collectionTail
	}
	collection := &postman.Collection{
		Info: postman.Info{
			Name:   name,
			Schema: postman.SchemaV21,
		},
		Item: items,
	}
	if o.newID != nil {
		collection.Info.PostmanID = o.newID()
	}
	return collection, nil
}

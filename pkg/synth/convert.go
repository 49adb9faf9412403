package synth

import (
	"context"

	"github.com/samwightt/autogql/pkg/introspection"
	"github.com/samwightt/autogql/pkg/logging"
	"github.com/samwightt/autogql/pkg/postman"
)

// Convert fetches the endpoint's schema once and assembles its collection.
// Every call uses a fresh TypeResolver, so separate conversions share no
// state.
func Convert(ctx context.Context, endpoint string, fetcher introspection.Fetcher, opts ...Option) (*postman.Collection, error) {
	if _, err := postman.ParseURL(endpoint); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	schema, err := fetcher.Fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	o.logger.WithFields(logging.Fields{
		"endpoint": endpoint,
		"types":    len(schema.Types),
	}).Debug("Fetched schema")
	return Assemble(schema, endpoint, opts...)
}

package introspection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	graphql "github.com/hasura/go-graphql-client"
	"github.com/sirupsen/logrus"

	"github.com/samwightt/autogql/pkg/logging"
)

// ErrEmptyData is wrapped by TransportError when the endpoint answers
// without a `data` member.
var ErrEmptyData = errors.New("introspection response has no data")

// TransportError is returned when the introspection request fails: network
// failure, non-2xx status, malformed JSON or GraphQL errors.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("introspecting %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves the introspection schema of an endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) (*Schema, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, endpoint string) (*Schema, error)

func (f FetcherFunc) Fetch(ctx context.Context, endpoint string) (*Schema, error) {
	return f(ctx, endpoint)
}

type ClientOption func(*Client)

// WithHeader adds a header to the introspection request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger logrus.FieldLogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client fetches introspection results over HTTP. Each Fetch issues exactly
// one POST request.
type Client struct {
	headers    http.Header
	httpClient *http.Client
	logger     logrus.FieldLogger
}

func NewClient(options ...ClientOption) *Client {
	c := &Client{
		headers:    http.Header{},
		httpClient: http.DefaultClient,
		logger:     logging.Discard(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *Client) modifyRequest(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
}

func (c *Client) Fetch(ctx context.Context, endpoint string) (*Schema, error) {
	log := c.logger.WithField("endpoint", endpoint)
	log.Debug("Sending introspection query")

	client := graphql.NewClient(endpoint, c.httpClient).WithRequestModifier(c.modifyRequest)
	data, err := client.ExecRaw(ctx, Query, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, &TransportError{Endpoint: endpoint, Err: ErrEmptyData}
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("decoding introspection data: %w", err)}
	}

	log.WithField("types", len(resp.Schema.Types)).Debug("Received introspection schema")
	return &resp.Schema, nil
}

// FileFetcher reads a saved introspection result instead of querying the
// endpoint. It accepts either a full response ({"data": {"__schema": ...}})
// or the bare data member ({"__schema": ...}).
type FileFetcher struct {
	Path string
}

func (f FileFetcher) Fetch(_ context.Context, _ string) (*Schema, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	return DecodeSnapshot(raw)
}

// DecodeSnapshot decodes a saved introspection result.
func DecodeSnapshot(raw []byte) (*Schema, error) {
	var doc struct {
		Data   *Response `json:"data"`
		Schema *Schema   `json:"__schema"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding introspection snapshot: %w", err)
	}
	switch {
	case doc.Data != nil:
		return &doc.Data.Schema, nil
	case doc.Schema != nil:
		return doc.Schema, nil
	default:
		return nil, fmt.Errorf("decoding introspection snapshot: %w", ErrEmptyData)
	}
}

// MarshalSnapshot encodes a schema in the same shape a server returns, so the
// result can be read back through FileFetcher.
func MarshalSnapshot(schema *Schema) ([]byte, error) {
	doc := struct {
		Data Response `json:"data"`
	}{Data: Response{Schema: *schema}}
	out, err := json.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(string(out)) + "\n"), nil
}

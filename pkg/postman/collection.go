// Package postman holds the Postman collection (v2.1) container that
// synthesized requests are written into.
package postman

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// SchemaV21 identifies the collection format version.
const SchemaV21 = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// ErrInvalidURL is returned for endpoints without a scheme or host.
var ErrInvalidURL = errors.New("invalid endpoint URL")

type Info struct {
	PostmanID string `json:"_postman_id,omitempty"`
	Name      string `json:"name"`
	Schema    string `json:"schema"`
}

type Collection struct {
	Info Info   `json:"info"`
	Item []Item `json:"item"`
}

type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type GraphQL struct {
	Query     string `json:"query"`
	Variables string `json:"variables"`
}

type Body struct {
	Mode    string  `json:"mode"`
	GraphQL GraphQL `json:"graphql"`
}

type URL struct {
	Raw      string   `json:"raw"`
	Protocol string   `json:"protocol"`
	Host     []string `json:"host"`
	Path     []string `json:"path"`
}

type Request struct {
	Method string   `json:"method"`
	Header []Header `json:"header"`
	Body   Body     `json:"body"`
	URL    URL      `json:"url"`
}

type Item struct {
	Name     string  `json:"name"`
	Request  Request `json:"request"`
	Response []any   `json:"response"`
}

// NewItem returns a POST item with empty header and response lists.
func NewItem(name string, body GraphQL, u URL) Item {
	return Item{
		Name: name,
		Request: Request{
			Method: "POST",
			Header: []Header{},
			Body: Body{
				Mode:    "graphql",
				GraphQL: body,
			},
			URL: u,
		},
		Response: []any{},
	}
}

// Authority returns the part of raw between "//" and the next "/".
func Authority(raw string) string {
	_, rest, found := strings.Cut(raw, "//")
	if !found {
		return ""
	}
	authority, _, _ := strings.Cut(rest, "/")
	return authority
}

// ParseURL splits an endpoint into the structured URL Postman expects.
// The host keeps any port attached to its last label.
func ParseURL(raw string) (URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return URL{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return URL{}, fmt.Errorf("%w: %q needs a scheme and a host", ErrInvalidURL, raw)
	}

	protocol, _, _ := strings.Cut(raw, "://")
	_, rest, _ := strings.Cut(raw, "//")
	segments := strings.Split(rest, "/")

	return URL{
		Raw:      raw,
		Protocol: protocol,
		Host:     strings.Split(segments[0], "."),
		Path:     append([]string{}, segments[1:]...),
	}, nil
}

// Write encodes the collection as JSON indented with one tab.
func Write(w io.Writer, c *Collection) error {
	out, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func WriteFile(path string, c *Collection) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

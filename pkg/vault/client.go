// Package vault reads a vault export file and serves it to the filter
// panels as reactive folder, collection and organization data.
package vault

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/itchyny/gojq"
	"github.com/pkg/errors"
)

// Client loads an export file and extracts entities with compiled jq
// queries.
type Client struct {
	path    string
	queries Queries
	code    map[string]*gojq.Code
}

// NewClient compiles the queries for the export at path. Empty queries use
// the defaults.
func NewClient(path string, queries Queries) (*Client, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid export path %s", path)
	}

	queries = queries.withDefaults()
	c := &Client{
		path:    abs,
		queries: queries,
		code:    make(map[string]*gojq.Code),
	}

	for name, src := range map[string]string{
		"folders":       queries.Folders,
		"collections":   queries.Collections,
		"organizations": queries.Organizations,
		"items":         queries.Items,
		"policies":      queries.Policies,
	} {
		query, err := gojq.Parse(src)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s query", name)
		}
		code, err := gojq.Compile(query)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to compile %s query", name)
		}
		c.code[name] = code
	}

	return c, nil
}

// Path returns the absolute export path.
func (c *Client) Path() string {
	return c.path
}

// Load reads and decodes the export file.
func (c *Client) Load(ctx context.Context) (*Export, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read export %s", c.path)
	}
	return c.Decode(ctx, data)
}

// Decode extracts an Export from raw export JSON.
func (c *Client) Decode(ctx context.Context, data []byte) (*Export, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse export")
	}

	export := &Export{}
	targets := []struct {
		name string
		dst  any
	}{
		{"organizations", &export.Organizations},
		{"folders", &export.Folders},
		{"collections", &export.Collections},
		{"items", &export.Items},
		{"policies", &export.Policies},
	}
	for _, target := range targets {
		if err := c.run(ctx, target.name, doc, target.dst); err != nil {
			return nil, err
		}
	}

	return export, nil
}

// run evaluates one query and decodes its first result into dst.
func (c *Client) run(ctx context.Context, name string, doc any, dst any) error {
	iter := c.code[name].RunWithContext(ctx, doc)
	result, ok := iter.Next()
	if !ok {
		return errors.Errorf("%s query produced no result", name)
	}
	if err, isErr := result.(error); isErr {
		return errors.Wrapf(err, "%s query failed", name)
	}

	// Round-trip through JSON to map the generic result onto typed structs.
	raw, err := json.Marshal(result)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s result", name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(err, "unexpected %s result shape", name)
	}
	return nil
}

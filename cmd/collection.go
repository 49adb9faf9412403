/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/samwightt/autogql/pkg/postman"
	"github.com/samwightt/autogql/pkg/render"
	"github.com/spf13/cobra"
)

type collectionOptions struct {
	output     string
	schemaFile string
	name       string
}

func formatRequestText(info RequestInfo) string {
	if len(info.Arguments) == 0 {
		return fmt.Sprintf("%s %s", info.Operation, info.Name)
	}
	return fmt.Sprintf("%s %s(%s)", info.Operation, info.Name, formatArguments(info.Arguments))
}

func requestRow(info RequestInfo) []string {
	return []string{info.Operation, info.Name, formatArguments(info.Arguments)}
}

func NewCollectionCmd() *cobra.Command {
	opts := &collectionOptions{}

	cmd := &cobra.Command{
		Use:   "collection [url]",
		Short: "Writes a Postman collection for every query and mutation",
		Args:  cobra.MaximumNArgs(1),
		Long: `Introspects the endpoint and writes a Postman collection (v2.1) with one
request per Query and Mutation field, in schema order.

The collection is written to --output, or to
"<host>-autoGQL.postman_collection.json" when no output is given. A summary
of the generated requests is printed to stdout.

Output formats (summary):
  text    "query user(id: ID!)", one request per line (default when piping)
  json    [{"name": "user", "operation": "query", "arguments": [...]}, ...]
  pretty  Formatted table with columns (default in terminal)`,
		Example: `  autogql collection https://api.example.com/graphql
  autogql collection https://api.example.com/graphql -o api.json --name "Example API"
  autogql collection https://api.example.com/graphql --schema-file schema.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollection(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "File to write the collection to")
	cmd.Flags().StringVar(&opts.schemaFile, "schema-file", "", "Read the introspection result from a file instead of the endpoint")
	cmd.Flags().StringVar(&opts.name, "name", "", "Collection name (default: <host>-autoGQL)")

	return cmd
}

func runCollection(cmd *cobra.Command, args []string, opts *collectionOptions) error {
	conv, err := convertEndpoint(cmd, args, opts.schemaFile, opts.name)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = conv.cfg.Output
	}
	if output == "" {
		output = conv.collection.Info.Name + ".postman_collection.json"
	}
	if err := postman.WriteFile(output, conv.collection); err != nil {
		return fmt.Errorf("writing collection: %w", err)
	}

	infos := make([]RequestInfo, 0, len(conv.collection.Item))
	for _, item := range conv.collection.Item {
		infos = append(infos, itemToInfo(item))
	}

	renderer := render.Renderer[RequestInfo]{
		Data:       infos,
		TextFormat: formatRequestText,
		Headers:    []string{"operation", "name", "arguments"},
		Row:        requestRow,
	}

	rendered, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d requests to %s\n", len(infos), output)
	return nil
}

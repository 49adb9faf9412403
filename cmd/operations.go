/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/samwightt/autogql/pkg/render"
	"github.com/spf13/cobra"
)

type operationsOptions struct {
	schemaFile string
	field      string
}

func formatOperationText(op OperationInfo) string {
	return fmt.Sprintf("# %s\n%s\n# variables\n%s\n", op.Name, op.Query, op.Variables)
}

func operationRow(op OperationInfo) []string {
	return []string{op.Operation, op.Name, op.Query}
}

func NewOperationsCmd() *cobra.Command {
	opts := &operationsOptions{}

	cmd := &cobra.Command{
		Use:   "operations [url]",
		Short: "Prints the synthesized operations without writing a collection",
		Args:  cobra.MaximumNArgs(1),
		Long: `Introspects the endpoint and prints every synthesized operation with its
variables template, in the order they would appear in the collection.

If a field is given with --field, only that operation is printed.`,
		Example: `  autogql operations https://api.example.com/graphql
  autogql operations https://api.example.com/graphql --field user -f json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperations(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.schemaFile, "schema-file", "", "Read the introspection result from a file instead of the endpoint")
	cmd.Flags().StringVar(&opts.field, "field", "", "Only print the operation for this field")

	return cmd
}

func runOperations(cmd *cobra.Command, args []string, opts *operationsOptions) error {
	conv, err := convertEndpoint(cmd, args, opts.schemaFile, "")
	if err != nil {
		return err
	}

	var ops []OperationInfo
	for _, item := range conv.collection.Item {
		if opts.field != "" && item.Name != opts.field {
			continue
		}
		info := OperationInfo{
			Name:      item.Name,
			Query:     item.Request.Body.GraphQL.Query,
			Variables: item.Request.Body.GraphQL.Variables,
		}
		if op := operationOf(item); op != nil {
			info.Operation = string(op.Operation)
		}
		ops = append(ops, info)
	}

	if opts.field != "" && len(ops) == 0 {
		return fmt.Errorf("field '%s' is not a query or mutation field", opts.field)
	}

	renderer := render.Renderer[OperationInfo]{
		Data:       ops,
		TextFormat: formatOperationText,
		Headers:    []string{"operation", "name", "query"},
		Row:        operationRow,
	}

	rendered, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(rendered, "\n"))
	return nil
}

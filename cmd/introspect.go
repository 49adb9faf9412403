/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/samwightt/autogql/pkg/introspection"
	"github.com/spf13/cobra"
)

func NewIntrospectCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "introspect [url]",
		Short: "Saves the endpoint's introspection result as JSON",
		Args:  cobra.MaximumNArgs(1),
		Long: `Runs the introspection query against the endpoint and writes the result.
The file can be passed back with --schema-file to build collections offline.`,
		Example: `  autogql introspect https://api.example.com/graphql -o schema.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntrospect(cmd, args, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write to (default: stdout)")

	return cmd
}

func runIntrospect(cmd *cobra.Command, args []string, output string) error {
	logger := newLogger(cmd)
	cfg, err := loadCliConfig(logger)
	if err != nil {
		return err
	}
	endpoint, err := resolveEndpoint(args, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	schema, err := newFetcher(cfg, "", logger).Fetch(ctx, endpoint)
	if err != nil {
		return explainError(cmd, err)
	}

	raw, err := introspection.MarshalSnapshot(schema)
	if err != nil {
		return err
	}
	if output == "" {
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	}
	if err := os.WriteFile(output, raw, 0644); err != nil {
		return fmt.Errorf("writing schema: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d types to %s\n", len(schema.Types), output)
	return nil
}

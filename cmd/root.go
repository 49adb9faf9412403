/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"os"
	"time"

	"github.com/samwightt/autogql/pkg/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	configPath       string
	headerFlags      []string
	timeout          time.Duration
	verbose          bool
	typenameFallback bool
	outputFormat     render.Format
)

func formatFlag() string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return string(render.FormatPretty)
	}
	return string(render.FormatText)
}

// NewRootCmd creates and returns the root command with all subcommands attached.
// This function creates a fresh command tree, ensuring no state leaks between invocations.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autogql",
		Short: "Generate a Postman collection from a live GraphQL endpoint",
		Long: `autogql introspects a GraphQL endpoint and writes a Postman collection
(format v2.1) with one ready-to-send request per query and mutation field.

Each request carries an operation document with every argument declared as a
variable, a selection of the returned object's scalar and enum fields, and a
variables template. Required arguments are marked with "#" and optional ones
default to null.

Settings can also come from a YAML file (-c), .env files and the
AUTOGQL_ENDPOINT, AUTOGQL_OUTPUT and AUTOGQL_TOKEN environment variables.`,
		Example: `  # Write countries.trevorblades.com-autoGQL.postman_collection.json
  autogql collection https://countries.trevorblades.com/graphql

  # Send an auth header with the introspection request
  autogql collection https://api.example.com/graphql -H "Authorization: Bearer $TOKEN"

  # Print the generated operations without writing anything
  autogql operations https://api.example.com/graphql

  # Save the schema once, then build collections offline
  autogql introspect https://api.example.com/graphql -o schema.json
  autogql collection https://api.example.com/graphql --schema-file schema.json`,
	}

	// Persistent flags
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringArrayVarP(&headerFlags, "header", "H", nil, `Header sent with the introspection request, as "Key: Value" (can be specified multiple times)`)
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Timeout for the introspection request (default 30s)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	cmd.PersistentFlags().BoolVar(&typenameFallback, "typename-fallback", false, "Select __typename when every field of a returned object is itself an object")

	var formatStr string
	cmd.PersistentFlags().StringVarP(&formatStr, "format", "f", formatFlag(), "Output format: json, text, pretty (default: pretty if interactive, text otherwise)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		outputFormat, err = render.ParseFormat(formatStr)
		return err
	}

	cmd.AddCommand(NewCollectionCmd())
	cmd.AddCommand(NewOperationsCmd())
	cmd.AddCommand(NewIntrospectCmd())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the CLI with the given arguments and returns stdout, stderr, and any error.
// This is useful for testing.
func ExecuteWithArgs(args []string) (stdout string, stderr string, err error) {
	cmd := NewRootCmd()

	stdoutBuf := new(bytes.Buffer)
	stderrBuf := new(bytes.Buffer)

	cmd.SetOut(stdoutBuf)
	cmd.SetErr(stderrBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()

	return stdoutBuf.String(), stderrBuf.String(), err
}

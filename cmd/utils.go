package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/samwightt/autogql/pkg/config"
	"github.com/samwightt/autogql/pkg/diagnostic"
	"github.com/samwightt/autogql/pkg/introspection"
	"github.com/samwightt/autogql/pkg/logging"
	"github.com/samwightt/autogql/pkg/postman"
	"github.com/samwightt/autogql/pkg/synth"
)

func newLogger(cmd *cobra.Command) logging.Logger {
	level := logging.LevelFromEnv(logrus.WarnLevel)
	if verbose {
		level = logrus.DebugLevel
	}
	return logging.NewLogger(cmd.ErrOrStderr(), level)
}

// loadCliConfig merges the config file, .env files, the environment and the
// persistent flags, in increasing order of precedence.
func loadCliConfig(logger logrus.FieldLogger) (*config.Config, error) {
	config.LoadEnv(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	for _, raw := range headerFlags {
		key, value, err := config.ParseHeader(raw)
		if err != nil {
			return nil, err
		}
		cfg.SetHeader(key, value)
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	return cfg, nil
}

func resolveEndpoint(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Endpoint != "" {
		return cfg.Endpoint, nil
	}
	return "", fmt.Errorf("an endpoint URL is required (argument, config endpoint or %s)", config.EnvEndpoint)
}

func newFetcher(cfg *config.Config, schemaFile string, logger logrus.FieldLogger) introspection.Fetcher {
	if schemaFile != "" {
		return introspection.FileFetcher{Path: schemaFile}
	}
	opts := []introspection.ClientOption{introspection.WithLogger(logger)}
	for key, value := range cfg.Headers {
		opts = append(opts, introspection.WithHeader(key, value))
	}
	return introspection.NewClient(opts...)
}

type conversion struct {
	endpoint   string
	cfg        *config.Config
	collection *postman.Collection
}

func convertEndpoint(cmd *cobra.Command, args []string, schemaFile string, name string) (*conversion, error) {
	logger := newLogger(cmd)
	cfg, err := loadCliConfig(logger)
	if err != nil {
		return nil, err
	}
	endpoint, err := resolveEndpoint(args, cfg)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = cfg.Name
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	opts := []synth.Option{
		synth.WithLogger(logger),
		synth.WithName(name),
		synth.WithIDGenerator(uuid.NewString),
	}
	if typenameFallback {
		opts = append(opts, synth.WithTypenameFallback())
	}
	collection, err := synth.Convert(ctx, endpoint, newFetcher(cfg, schemaFile, logger), opts...)
	if err != nil {
		return nil, explainError(cmd, err)
	}
	return &conversion{endpoint: endpoint, cfg: cfg, collection: collection}, nil
}

// explainError prints extra context for errors that carry it and returns a
// message suited to the terminal.
func explainError(cmd *cobra.Command, err error) error {
	var compErr *synth.CompositionError
	if errors.As(err, &compErr) {
		fmt.Fprintln(cmd.ErrOrStderr(), diagnostic.RenderParseError(compErr.Field+".graphql", compErr.Source, compErr.Err))
		if compErr.EmptySelection {
			return fmt.Errorf("%w (every field of its return type is an object; pass --typename-fallback to select __typename)", err)
		}
		return err
	}

	var transportErr *introspection.TransportError
	if errors.As(err, &transportErr) {
		return fmt.Errorf("could not fetch schema: %w", err)
	}

	if errors.Is(err, postman.ErrInvalidURL) {
		return fmt.Errorf("%w (expected something like https://example.com/graphql)", err)
	}
	return err
}

func operationOf(item postman.Item) *ast.OperationDefinition {
	doc, err := parser.ParseQuery(&ast.Source{Input: item.Request.Body.GraphQL.Query})
	if err != nil || len(doc.Operations) == 0 {
		return nil
	}
	return doc.Operations[0]
}

func itemToInfo(item postman.Item) RequestInfo {
	info := RequestInfo{Name: item.Name}
	op := operationOf(item)
	if op == nil {
		return info
	}
	info.Operation = string(op.Operation)
	for _, v := range op.VariableDefinitions {
		info.Arguments = append(info.Arguments, ArgumentInfo{
			Name: v.Variable,
			Type: v.Type.String(),
		})
	}
	return info
}

func formatArguments(args []ArgumentInfo) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, fmt.Sprintf("%s: %s", arg.Name, arg.Type))
	}
	return strings.Join(parts, ", ")
}

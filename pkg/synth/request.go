package synth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/samwightt/autogql/pkg/introspection"
	"github.com/samwightt/autogql/pkg/postman"
)

// Operation is the operation keyword a request is synthesized under.
type Operation string

const (
	OperationQuery    Operation = "query"
	OperationMutation Operation = "mutation"
)

// Above this many arguments, declarations and call sites are laid out one
// per line.
const inlineArgumentLimit = 3

type argumentBlock struct {
	declarations string
	calls        string
	variables    string
}

func formatArguments(args []introspection.InputValue, resolver *TypeResolver) argumentBlock {
	declPad, callPad := " ", " "
	multiline := len(args) > inlineArgumentLimit
	if multiline {
		declPad, callPad = "\n\t", "\n\t\t"
	}

	var decls, calls, vars strings.Builder
	for i, arg := range args {
		formatted := resolver.FormatArgument(arg)
		if i > 0 {
			decls.WriteString(",")
			calls.WriteString(", ")
			vars.WriteString(",\n")
		}
		fmt.Fprintf(&decls, "%s$%s: %s", declPad, arg.Name, formatted.TypeSignature)
		fmt.Fprintf(&calls, "%s%s: $%s", callPad, arg.Name, arg.Name)
		vars.WriteString("\t" + formatted.VariableAssignment)
	}
	if multiline {
		decls.WriteString("\n")
		calls.WriteString("\n\t")
	}

	return argumentBlock{
		declarations: decls.String(),
		calls:        calls.String(),
		variables:    vars.String(),
	}
}

// selectionBlock renders one line per field of an object return type and
// reports whether any of them is selected rather than commented out.
func selectionBlock(returned *introspection.Type, resolver *TypeResolver) (string, bool, error) {
	if returned.Kind != introspection.KindObject || len(returned.Fields) == 0 {
		return "", true, nil
	}

	var b strings.Builder
	selected := false
	for _, field := range returned.Fields {
		formatted, err := resolver.FormatField(field)
		if err != nil {
			return "", false, err
		}
		b.WriteString(formatted.SelectionLine)
		selected = selected || !formatted.Commented
	}
	if !selected && resolver.typenameFallback {
		b.WriteString("\t\t__typename\n")
		selected = true
	}
	return b.String(), selected, nil
}

func composeOperation(op Operation, name string, args argumentBlock, hasArgs bool, selection string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", op, name)
	if hasArgs {
		fmt.Fprintf(&b, "(%s)", args.declarations)
	}
	b.WriteString("{\n\t" + name)
	if hasArgs {
		fmt.Fprintf(&b, "(%s)", args.calls)
	}
	if selection != "" {
		b.WriteString("{\n" + selection + "\t}")
	}
	b.WriteString("\n}")
	return b.String()
}

// reprint parses source and prints it back in canonical form. Comments are
// dropped.
func reprint(fieldName, source string) (string, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: fieldName + ".graphql", Input: source})
	if err != nil {
		return "", &CompositionError{Field: fieldName, Source: source, Err: err}
	}

	return printDocument(doc), nil
}

// Synthesize builds the example request for one root field: the operation
// document, a variables template with a placeholder per argument, and the
// structured endpoint URL.
func Synthesize(field introspection.Field, endpoint string, resolver *TypeResolver, op Operation) (postman.Item, error) {
	u, err := postman.ParseURL(endpoint)
	if err != nil {
		return postman.Item{}, err
	}

	args := formatArguments(field.Args, resolver)

	base, err := resolver.UnwrapToBase(&field.Type)
	if err != nil {
		return postman.Item{}, fmt.Errorf("field '%s': %w", field.Name, err)
	}
	returned, ok := resolver.Schema().Lookup(base.Name)
	if !ok {
		return postman.Item{}, &TypeLookupError{Field: field.Name, TypeName: base.Name}
	}

	selection, selected, err := selectionBlock(returned, resolver)
	if err != nil {
		return postman.Item{}, err
	}

	source := composeOperation(op, field.Name, args, len(field.Args) > 0, selection)
	query, err := reprint(field.Name, source)
	if err != nil {
		var compErr *CompositionError
		if errors.As(err, &compErr) {
			compErr.EmptySelection = !selected
		}
		return postman.Item{}, err
	}

	body := postman.GraphQL{
		Query:     query,
		Variables: "{\n" + args.variables + "\n}",
	}
	return postman.NewItem(field.Name, body, u), nil
}

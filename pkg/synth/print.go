package synth

import (
	"strconv"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// maxLineLength is the width past which a field's arguments are broken onto
// their own lines.
const maxLineLength = 80

const indentUnit = "  "

// printDocument renders a parsed query document in the canonical GraphQL
// layout: two-space indentation, no space between a name and its argument
// list, and comments dropped.
func printDocument(doc *ast.QueryDocument) string {
	defs := make([]string, 0, len(doc.Operations)+len(doc.Fragments))
	for _, op := range doc.Operations {
		defs = append(defs, printOperation(op))
	}
	for _, frag := range doc.Fragments {
		defs = append(defs, printFragment(frag))
	}
	return strings.Join(defs, "\n\n")
}

func printOperation(op *ast.OperationDefinition) string {
	head := op.Name + wrap("(", joinVariables(op.VariableDefinitions), ")")
	prefix := join([]string{string(op.Operation), head, printDirectives(op.Directives)}, " ")
	if prefix == string(ast.Query) {
		return printSelectionSet(op.SelectionSet)
	}
	return prefix + " " + printSelectionSet(op.SelectionSet)
}

func printFragment(frag *ast.FragmentDefinition) string {
	return "fragment " + frag.Name + wrap("(", joinVariables(frag.VariableDefinition), ")") +
		" on " + frag.TypeCondition + " " +
		wrap("", printDirectives(frag.Directives), " ") +
		printSelectionSet(frag.SelectionSet)
}

func joinVariables(vars ast.VariableDefinitionList) string {
	parts := make([]string, 0, len(vars))
	for _, v := range vars {
		s := "$" + v.Variable + ": " + v.Type.String()
		if v.DefaultValue != nil {
			s += " = " + printValue(v.DefaultValue)
		}
		parts = append(parts, join([]string{s, printDirectives(v.Directives)}, " "))
	}
	return strings.Join(parts, ", ")
}

func printSelectionSet(set ast.SelectionSet) string {
	if len(set) == 0 {
		return ""
	}
	lines := make([]string, 0, len(set))
	for _, sel := range set {
		lines = append(lines, printSelection(sel))
	}
	return "{\n" + indent(strings.Join(lines, "\n")) + "\n}"
}

func printSelection(sel ast.Selection) string {
	switch s := sel.(type) {
	case *ast.Field:
		return printField(s)
	case *ast.FragmentSpread:
		return "..." + s.Name + wrap(" ", printDirectives(s.Directives), "")
	case *ast.InlineFragment:
		return join([]string{
			"...",
			wrap("on ", s.TypeCondition, ""),
			printDirectives(s.Directives),
			printSelectionSet(s.SelectionSet),
		}, " ")
	default:
		return ""
	}
}

func printField(f *ast.Field) string {
	prefix := f.Name
	if f.Alias != "" && f.Alias != f.Name {
		prefix = f.Alias + ": " + f.Name
	}
	args := printArguments(f.Arguments)
	line := prefix + wrap("(", strings.Join(args, ", "), ")")
	if len(line) > maxLineLength {
		line = prefix + wrap("(\n", indent(strings.Join(args, "\n")), "\n)")
	}
	return join([]string{line, printDirectives(f.Directives), printSelectionSet(f.SelectionSet)}, " ")
}

func printArguments(args ast.ArgumentList) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		out = append(out, arg.Name+": "+printValue(arg.Value))
	}
	return out
}

func printDirectives(dirs ast.DirectiveList) string {
	parts := make([]string, 0, len(dirs))
	for _, d := range dirs {
		parts = append(parts, "@"+d.Name+wrap("(", strings.Join(printArguments(d.Arguments), ", "), ")"))
	}
	return strings.Join(parts, " ")
}

func printValue(v *ast.Value) string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case ast.Variable:
		return "$" + v.Raw
	case ast.StringValue, ast.BlockValue:
		return strconv.Quote(v.Raw)
	case ast.ListValue:
		items := make([]string, 0, len(v.Children))
		for _, child := range v.Children {
			items = append(items, printValue(child.Value))
		}
		return "[" + strings.Join(items, ", ") + "]"
	case ast.ObjectValue:
		fields := make([]string, 0, len(v.Children))
		for _, child := range v.Children {
			fields = append(fields, child.Name+": "+printValue(child.Value))
		}
		return "{" + strings.Join(fields, ", ") + "}"
	default:
		return v.Raw
	}
}

// join concatenates the non-empty parts with sep.
func join(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// wrap surrounds s with start and end, or returns "" when s is empty.
func wrap(start, s, end string) string {
	if s == "" {
		return ""
	}
	return start + s + end
}

func indent(s string) string {
	if s == "" {
		return ""
	}
	return indentUnit + strings.ReplaceAll(s, "\n", "\n"+indentUnit)
}

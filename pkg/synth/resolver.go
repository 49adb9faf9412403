package synth

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/samwightt/autogql/pkg/introspection"
)

// BaseType is a type reference with every LIST and NON_NULL stripped.
type BaseType struct {
	Name string
	Kind introspection.Kind
}

// FormattedArgument is the rendered form of one field argument.
type FormattedArgument struct {
	TypeSignature      string
	VariableAssignment string
	DefaultValue       string
}

// FormattedField is one line of a selection block.
type FormattedField struct {
	SelectionLine string
	Commented     bool
}

const (
	requiredPlaceholder = "#"
	nullPlaceholder     = "null"
)

// TypeResolver resolves and renders type references from one introspected
// schema. Formatted arguments and fields are cached by name only, so two
// same-named arguments with different types overwrite each other; the last
// one formatted wins.
//
// A TypeResolver belongs to a single conversion and is not safe for
// concurrent use.
type TypeResolver struct {
	schema           *introspection.Schema
	args             map[string]FormattedArgument
	fields           map[string]FormattedField
	typenameFallback bool
}

func NewTypeResolver(schema *introspection.Schema) *TypeResolver {
	return &TypeResolver{
		schema: schema,
		args:   make(map[string]FormattedArgument),
		fields: make(map[string]FormattedField),
	}
}

func (r *TypeResolver) Schema() *introspection.Schema {
	return r.schema
}

// SetTypenameFallback makes selection blocks whose lines are all commented
// out select __typename instead, so the operation still parses. Off by
// default: such a block is rendered as is and fails composition.
func (r *TypeResolver) SetTypenameFallback(on bool) {
	r.typenameFallback = on
}

// UnwrapToBase follows ofType through LIST and NON_NULL wrappers down to the
// named leaf.
func (r *TypeResolver) UnwrapToBase(ref *introspection.TypeRef) (BaseType, error) {
	if ref == nil {
		return BaseType{}, ErrMalformedType
	}
	if ref.Kind.IsWrapper() {
		if ref.OfType == nil {
			return BaseType{}, fmt.Errorf("%w: %s without ofType", ErrMalformedType, ref.Kind)
		}
		return r.UnwrapToBase(ref.OfType)
	}
	return BaseType{Name: ref.Name, Kind: ref.Kind}, nil
}

// RenderTypeSignature renders a wrapped reference in GraphQL type syntax,
// e.g. NON_NULL(LIST(NON_NULL(SCALAR String))) becomes "[String!]!".
func RenderTypeSignature(ref *introspection.TypeRef) string {
	return typeToString(toAST(ref))
}

func toAST(ref *introspection.TypeRef) *ast.Type {
	switch {
	case ref == nil:
		return &ast.Type{}
	case ref.Kind == introspection.KindNonNull:
		inner := toAST(ref.OfType)
		inner.NonNull = true
		return inner
	case ref.Kind == introspection.KindList:
		return &ast.Type{Elem: toAST(ref.OfType)}
	default:
		// Scalars, enums, objects and any kind we do not recognise all
		// render as their bare name.
		return &ast.Type{NamedType: ref.Name}
	}
}

// typeToString converts an ast.Type to a human-readable string (e.g., "String!", "[User!]!").
func typeToString(typeDef *ast.Type) string {
	requiredStr := ""
	if typeDef.NonNull {
		requiredStr = "!"
	}
	if typeDef.Elem != nil {
		return fmt.Sprintf("[%s]%s", typeToString(typeDef.Elem), requiredStr)
	}
	return typeDef.NamedType + requiredStr
}

// FormatArgument renders arg and caches the result under its name. Non-null
// arguments get the "#" placeholder, nullable ones default to null.
func (r *TypeResolver) FormatArgument(arg introspection.InputValue) FormattedArgument {
	defaultValue := nullPlaceholder
	if arg.Type.Kind == introspection.KindNonNull {
		defaultValue = requiredPlaceholder
	}

	formatted := FormattedArgument{
		TypeSignature:      RenderTypeSignature(&arg.Type),
		VariableAssignment: fmt.Sprintf("%q: %s", arg.Name, defaultValue),
		DefaultValue:       defaultValue,
	}
	r.args[arg.Name] = formatted
	return formatted
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func describe(description string) string {
	if description == "" || description == "undefined" {
		return "\n"
	}
	return " # " + lineBreaks.Replace(description) + "\n"
}

// FormatField renders field as one selection line and caches it under its
// name. Only scalar and enum fields are selected; object and abstract fields
// are emitted as comments so the selection never recurses.
func (r *TypeResolver) FormatField(field introspection.Field) (FormattedField, error) {
	base, err := r.UnwrapToBase(&field.Type)
	if err != nil {
		return FormattedField{}, fmt.Errorf("field '%s': %w", field.Name, err)
	}

	comment := describe(field.Description)
	var formatted FormattedField
	switch base.Kind {
	case introspection.KindScalar, introspection.KindEnum:
		formatted = FormattedField{SelectionLine: "\t\t" + field.Name + comment}
	case introspection.KindObject:
		formatted = FormattedField{SelectionLine: "\t\t# " + field.Name + comment, Commented: true}
	default:
		formatted = FormattedField{
			SelectionLine: "\t\t# " + field.Name + comment + " # Type: " + string(field.Type.Kind) + "\n",
			Commented:     true,
		}
	}

	r.fields[field.Name] = formatted
	return formatted, nil
}

// Argument returns the cached rendering of the last argument formatted
// under name.
func (r *TypeResolver) Argument(name string) (FormattedArgument, bool) {
	arg, ok := r.args[name]
	return arg, ok
}

// Field returns the cached rendering of the last field formatted under name.
func (r *TypeResolver) Field(name string) (FormattedField, bool) {
	field, ok := r.fields[name]
	return field, ok
}

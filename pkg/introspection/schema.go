// Package introspection models the result of the standard GraphQL
// introspection query and fetches it from a live endpoint.
package introspection

// Kind is the __TypeKind of a type or type reference.
type Kind string

const (
	KindScalar      Kind = "SCALAR"
	KindObject      Kind = "OBJECT"
	KindInterface   Kind = "INTERFACE"
	KindUnion       Kind = "UNION"
	KindEnum        Kind = "ENUM"
	KindInputObject Kind = "INPUT_OBJECT"
	KindList        Kind = "LIST"
	KindNonNull     Kind = "NON_NULL"
)

// IsWrapper reports whether the kind wraps another type reference.
func (k Kind) IsWrapper() bool {
	return k == KindList || k == KindNonNull
}

// TypeRef is a node in the introspected type graph. Named leaves carry a
// Name; LIST and NON_NULL wrappers carry exactly one OfType.
type TypeRef struct {
	Kind   Kind     `json:"kind"`
	Name   string   `json:"name,omitempty"`
	OfType *TypeRef `json:"ofType,omitempty"`
}

// Named returns a leaf reference.
func Named(kind Kind, name string) *TypeRef {
	return &TypeRef{Kind: kind, Name: name}
}

// ListOf wraps of in a LIST.
func ListOf(of *TypeRef) *TypeRef {
	return &TypeRef{Kind: KindList, OfType: of}
}

// NonNullOf wraps of in a NON_NULL.
func NonNullOf(of *TypeRef) *TypeRef {
	return &TypeRef{Kind: KindNonNull, OfType: of}
}

type InputValue struct {
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Type         TypeRef `json:"type"`
	DefaultValue *string `json:"defaultValue,omitempty"`
}

type Field struct {
	Name              string       `json:"name"`
	Description       string       `json:"description,omitempty"`
	Args              []InputValue `json:"args"`
	Type              TypeRef      `json:"type"`
	IsDeprecated      bool         `json:"isDeprecated"`
	DeprecationReason *string      `json:"deprecationReason,omitempty"`
}

type EnumValue struct {
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	IsDeprecated      bool    `json:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason,omitempty"`
}

// Type is a full type definition from __schema.types.
type Type struct {
	Kind          Kind         `json:"kind"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Fields        []Field      `json:"fields,omitempty"`
	InputFields   []InputValue `json:"inputFields,omitempty"`
	Interfaces    []TypeRef    `json:"interfaces,omitempty"`
	EnumValues    []EnumValue  `json:"enumValues,omitempty"`
	PossibleTypes []TypeRef    `json:"possibleTypes,omitempty"`
}

type Directive struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Locations   []string     `json:"locations"`
	Args        []InputValue `json:"args"`
}

type RootType struct {
	Name string `json:"name"`
}

type Schema struct {
	QueryType        *RootType   `json:"queryType"`
	MutationType     *RootType   `json:"mutationType,omitempty"`
	SubscriptionType *RootType   `json:"subscriptionType,omitempty"`
	Types            []Type      `json:"types"`
	Directives       []Directive `json:"directives,omitempty"`
}

// Response is the `data` member of an introspection response.
type Response struct {
	Schema Schema `json:"__schema"`
}

// Lookup returns the full definition of the named type.
func (s *Schema) Lookup(name string) (*Type, bool) {
	for i := range s.Types {
		if s.Types[i].Name == name {
			return &s.Types[i], true
		}
	}
	return nil, false
}

// TypeNames lists every type name in declaration order.
func (s *Schema) TypeNames() []string {
	names := make([]string, 0, len(s.Types))
	for _, t := range s.Types {
		names = append(names, t.Name)
	}
	return names
}

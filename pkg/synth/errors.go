package synth

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
)

var (
	// ErrQueryRootNotFound is wrapped by SchemaIntegrityError.
	ErrQueryRootNotFound = errors.New("query root type not found")

	// ErrTypeNotFound is wrapped by TypeLookupError.
	ErrTypeNotFound = errors.New("type not found in schema")

	// ErrMalformedType is returned when a LIST or NON_NULL wrapper has no
	// ofType. Well-formed introspection never produces this.
	ErrMalformedType = errors.New("malformed type reference")
)

// SchemaIntegrityError reports a missing root operation type. The whole
// conversion is aborted.
type SchemaIntegrityError struct {
	Root       string
	Suggestion string
}

func (e *SchemaIntegrityError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s type not found in schema, did you mean '%s'?", e.Root, e.Suggestion)
	}
	return fmt.Sprintf("%s type not found in schema", e.Root)
}

func (e *SchemaIntegrityError) Unwrap() error {
	return ErrQueryRootNotFound
}

// TypeLookupError reports a field whose return type is missing from the
// schema's type list, which means the introspection snapshot is inconsistent.
type TypeLookupError struct {
	Field    string
	TypeName string
}

func (e *TypeLookupError) Error() string {
	return fmt.Sprintf("field '%s' returns type '%s' which does not exist in schema", e.Field, e.TypeName)
}

func (e *TypeLookupError) Unwrap() error {
	return ErrTypeNotFound
}

// CompositionError reports a synthesized operation that failed to parse.
// Source holds the text handed to the parser; Err is the parser's
// *gqlerror.Error. EmptySelection is set when every selection line was
// commented out.
type CompositionError struct {
	Field          string
	Source         string
	Err            error
	EmptySelection bool
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("synthesized operation for '%s' is not valid GraphQL: %v", e.Field, e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}

const maxSuggestionDistance = 5

func findClosest(input string, candidates []string) string {
	minDist := -1
	closest := ""
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(input, c)
		if minDist == -1 || dist < minDist {
			minDist = dist
			closest = c
		}
	}
	if minDist > maxSuggestionDistance {
		return ""
	}
	return closest
}

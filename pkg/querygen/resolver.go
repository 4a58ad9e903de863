package querygen

import (
	"regexp"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// BaseTypeName unwraps list and non-null layers and returns the bare name
// of the innermost named type.
func BaseTypeName(t *ast.Type) string {
	if t == nil {
		return ""
	}
	if t.Elem != nil {
		return BaseTypeName(t.Elem)
	}
	return t.NamedType
}

var nameRe = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// ValidName reports whether name matches the GraphQL Name grammar.
func ValidName(name string) bool {
	return nameRe.MatchString(name)
}

// hasFields reports whether a type exposes sub-fields to select.
func hasFields(def *ast.Definition) bool {
	return def != nil && len(def.Fields) > 0
}

// isIntrospection reports whether a field is one of the __-prefixed
// meta fields added by the schema loader.
func isIntrospection(name string) bool {
	return strings.HasPrefix(name, "__")
}

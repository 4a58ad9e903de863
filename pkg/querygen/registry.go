package querygen

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vektah/gqlparser/v2/ast"
)

// Variable is an operation variable declaration. Name includes the leading $.
type Variable struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// VariableRegistry collects the variables bound while expanding one root
// operation. Names are unique and kept in insertion order.
type VariableRegistry struct {
	vars  []Variable
	index map[string]int
}

// NewVariableRegistry creates an empty registry.
func NewVariableRegistry() *VariableRegistry {
	return &VariableRegistry{index: make(map[string]int)}
}

// Has reports whether a variable name (with its $) is registered.
func (r *VariableRegistry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Len returns the number of registered variables.
func (r *VariableRegistry) Len() int {
	return len(r.vars)
}

// Variables returns a copy of the registered variables in insertion order.
func (r *VariableRegistry) Variables() []Variable {
	out := make([]Variable, len(r.vars))
	copy(out, r.vars)
	return out
}

// Bind assigns a unique variable to each argument of a field and returns
// the rendered argument clause, e.g. "(id: $id, first: $first)".
//
// An argument keeps its own name unless that is taken. It is then qualified
// with the field names along the path, and a numeric suffix resolves any
// further collision.
func (r *VariableRegistry) Bind(path AncestryPath, field string, args ast.ArgumentDefinitionList) string {
	if len(args) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(args))
	for _, arg := range args {
		name := arg.Name
		if r.Has("$" + name) {
			parts := append(path.Fields(), field, arg.Name)
			name = camelCase(parts)
		}
		for r.Has("$" + name) {
			name = nextSuffix(name)
		}

		r.register("$"+name, arg.Type.String())
		pairs = append(pairs, arg.Name+": $"+name)
	}

	return "(" + strings.Join(pairs, ", ") + ")"
}

// Signature renders the variable declarations of an operation, or an empty
// string when no variable was bound.
func (r *VariableRegistry) Signature() string {
	if r.Len() == 0 {
		return ""
	}
	decls := make([]string, len(r.vars))
	for i, v := range r.vars {
		decls[i] = v.Name + ": " + v.Type
	}
	return "(" + strings.Join(decls, ", ") + ")"
}

func (r *VariableRegistry) register(name, typ string) {
	r.index[name] = len(r.vars)
	r.vars = append(r.vars, Variable{Name: name, Type: typ})
}

// camelCase joins parts keeping the first one as is. Every later part is
// capitalized and the rest of it lower-cased.
func camelCase(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		first, size := utf8.DecodeRuneInString(p)
		if size == 0 {
			continue
		}
		b.WriteRune(unicode.ToUpper(first))
		b.WriteString(strings.ToLower(p[size:]))
	}
	return b.String()
}

// nextSuffix increments a trailing number, or appends 1 when there is none.
func nextSuffix(name string) string {
	end := len(name)
	start := end
	for start > 0 && name[start-1] >= '0' && name[start-1] <= '9' {
		start--
	}
	if start == end {
		return name + "1"
	}
	n, err := strconv.ParseUint(name[start:], 10, 64)
	if err != nil {
		return name + "1"
	}
	return name[:start] + strconv.FormatUint(n+1, 10)
}

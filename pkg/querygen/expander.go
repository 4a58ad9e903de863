package querygen

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

const indentWidth = 4

// expander walks the schema for a single root operation. The registry is
// owned by that operation and discarded with the expander.
type expander struct {
	schema     *ast.Schema
	depthLimit int
	vars       *VariableRegistry
	// budget caps written when positive.
	budget  int
	written int
}

// charge accounts for n generated bytes and fails once the budget is spent.
func (e *expander) charge(n int) error {
	e.written += n
	if e.budget > 0 && e.written > e.budget {
		return fmt.Errorf("%w: %d bytes", ErrOutputTooLarge, e.budget)
	}
	return nil
}

func (e *expander) lookupType(name string) (*ast.Definition, error) {
	def := e.schema.Types[name]
	if def == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingType, name)
	}
	return def, nil
}

func (e *expander) lookupField(typeName, name string) (*ast.FieldDefinition, error) {
	def, err := e.lookupType(typeName)
	if err != nil {
		return nil, err
	}
	field := def.Fields.ForName(name)
	if field == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrMissingField, typeName, name)
	}
	return field, nil
}

// expandField renders a field with its arguments and, recursively, its
// sub-selection. path holds the fields selected above this one.
func (e *expander) expandField(name, parentType string, path AncestryPath, level int) (Fragment, error) {
	field, err := e.lookupField(parentType, name)
	if err != nil {
		return Fragment{}, err
	}

	typeName := BaseTypeName(field.Type)
	if path.HasType(typeName) {
		return Fragment{}, nil
	}
	def, err := e.lookupType(typeName)
	if err != nil {
		return Fragment{}, err
	}

	indent := strings.Repeat(" ", level*indentWidth)
	if err := e.charge(len(indent) + len(field.Name) + 1); err != nil {
		return Fragment{}, err
	}

	var b strings.Builder
	var meta Meta
	b.WriteString(indent)
	b.WriteString(field.Name)

	if len(field.Arguments) > 0 {
		meta.HasArgs = true
		b.WriteString(e.vars.Bind(path, field.Name, field.Arguments))
	}

	if hasFields(def) {
		meta.HasChildren = true

		childPath := path.Extend(field.Name, typeName)
		children := make([]string, 0, len(def.Fields))
		for _, child := range def.Fields {
			if isIntrospection(child.Name) || childPath.Has(child.Name, typeName) {
				continue
			}

			childDef, err := e.lookupType(BaseTypeName(child.Type))
			if err != nil {
				return Fragment{}, err
			}
			// Only fields with their own selection are depth limited.
			if hasFields(childDef) && level+1 >= e.depthLimit {
				continue
			}

			frag, err := e.expandField(child.Name, typeName, childPath, level+1)
			if err != nil {
				return Fragment{}, err
			}
			meta.HasArgs = meta.HasArgs || frag.Meta.HasArgs
			if frag.Text == "" {
				continue
			}
			children = append(children, frag.Text)
		}

		if len(children) > 0 {
			b.WriteString("{\n")
			b.WriteString(strings.Join(children, "\n"))
			b.WriteString("\n")
			b.WriteString(indent)
			b.WriteString("}")
		}
	}

	return Fragment{Text: b.String(), Meta: meta}, nil
}

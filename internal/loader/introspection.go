package loader

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sanixdarker/gqlg/pkg/querygen"
	"github.com/vektah/gqlparser/v2/ast"
)

// FormatIntrospection is the name of the introspection result loader.
const FormatIntrospection = "introspection"

type introspectionResponse struct {
	Data   *introspectionData  `json:"data"`
	Schema *introspectionSchema `json:"__schema"`
}

type introspectionData struct {
	Schema *introspectionSchema `json:"__schema"`
}

type introspectionSchema struct {
	QueryType        *introspectionTypeRef `json:"queryType"`
	MutationType     *introspectionTypeRef `json:"mutationType"`
	SubscriptionType *introspectionTypeRef `json:"subscriptionType"`
	Types            []introspectionType   `json:"types"`
}

type introspectionTypeRef struct {
	Kind   string                `json:"kind"`
	Name   string                `json:"name"`
	OfType *introspectionTypeRef `json:"ofType"`
}

type introspectionType struct {
	Kind          string                 `json:"kind"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Fields        []introspectionField   `json:"fields"`
	InputFields   []introspectionInput   `json:"inputFields"`
	Interfaces    []introspectionTypeRef `json:"interfaces"`
	EnumValues    []introspectionEnum    `json:"enumValues"`
	PossibleTypes []introspectionTypeRef `json:"possibleTypes"`
}

type introspectionField struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Args        []introspectionInput `json:"args"`
	Type        introspectionTypeRef `json:"type"`
}

type introspectionInput struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Type        introspectionTypeRef `json:"type"`
}

type introspectionEnum struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var kinds = map[string]ast.DefinitionKind{
	"SCALAR":       ast.Scalar,
	"OBJECT":       ast.Object,
	"INTERFACE":    ast.Interface,
	"UNION":        ast.Union,
	"ENUM":         ast.Enum,
	"INPUT_OBJECT": ast.InputObject,
}

// IntrospectionLoader loads the JSON result of an introspection query,
// either the full response or its bare __schema object.
type IntrospectionLoader struct{}

func (l *IntrospectionLoader) Name() string {
	return FormatIntrospection
}

func (l *IntrospectionLoader) CanHandle(filename string, content []byte) bool {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return bytes.Contains(trimmed, []byte(`"__schema"`))
}

func (l *IntrospectionLoader) Load(content []byte, opts *Options) (*ast.Schema, error) {
	var payload introspectionResponse
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse introspection result: %w", err)
	}

	raw := payload.Schema
	if payload.Data != nil && payload.Data.Schema != nil {
		raw = payload.Data.Schema
	}
	if raw == nil || raw.Types == nil {
		return nil, fmt.Errorf("introspection result has no __schema")
	}

	schema := &ast.Schema{
		Types:         make(map[string]*ast.Definition, len(raw.Types)),
		PossibleTypes: make(map[string][]*ast.Definition),
		Implements:    make(map[string][]*ast.Definition),
	}

	for _, t := range raw.Types {
		if t.Name == "" {
			continue
		}
		def, err := buildDefinition(t)
		if err != nil {
			return nil, err
		}
		schema.Types[def.Name] = def
	}

	for _, t := range raw.Types {
		def := schema.Types[t.Name]
		if def == nil {
			continue
		}
		for _, p := range t.PossibleTypes {
			if pd := schema.Types[p.Name]; pd != nil {
				schema.AddPossibleType(def.Name, pd)
				schema.AddImplements(pd.Name, def)
			}
		}
	}

	var err error
	if schema.Query, err = rootType(schema, raw.QueryType); err != nil {
		return nil, err
	}
	if schema.Mutation, err = rootType(schema, raw.MutationType); err != nil {
		return nil, err
	}
	if schema.Subscription, err = rootType(schema, raw.SubscriptionType); err != nil {
		return nil, err
	}

	return schema, nil
}

func buildDefinition(t introspectionType) (*ast.Definition, error) {
	if !querygen.ValidName(t.Name) {
		return nil, fmt.Errorf("invalid type name %q", t.Name)
	}
	kind, ok := kinds[t.Kind]
	if !ok {
		return nil, fmt.Errorf("type %s: unknown kind %q", t.Name, t.Kind)
	}

	def := &ast.Definition{
		Kind:        kind,
		Name:        t.Name,
		Description: t.Description,
		BuiltIn:     len(t.Name) > 1 && t.Name[:2] == "__",
	}

	for _, f := range t.Fields {
		if !querygen.ValidName(f.Name) {
			return nil, fmt.Errorf("type %s: invalid field name %q", t.Name, f.Name)
		}
		typ, err := buildType(&f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t.Name, f.Name, err)
		}
		field := &ast.FieldDefinition{
			Name:        f.Name,
			Description: f.Description,
			Type:        typ,
		}
		for _, a := range f.Args {
			if !querygen.ValidName(a.Name) {
				return nil, fmt.Errorf("field %s.%s: invalid argument name %q", t.Name, f.Name, a.Name)
			}
			argType, err := buildType(&a.Type)
			if err != nil {
				return nil, fmt.Errorf("argument %s.%s(%s): %w", t.Name, f.Name, a.Name, err)
			}
			field.Arguments = append(field.Arguments, &ast.ArgumentDefinition{
				Name:        a.Name,
				Description: a.Description,
				Type:        argType,
			})
		}
		def.Fields = append(def.Fields, field)
	}

	for _, f := range t.InputFields {
		if !querygen.ValidName(f.Name) {
			return nil, fmt.Errorf("input %s: invalid field name %q", t.Name, f.Name)
		}
		typ, err := buildType(&f.Type)
		if err != nil {
			return nil, fmt.Errorf("input field %s.%s: %w", t.Name, f.Name, err)
		}
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name:        f.Name,
			Description: f.Description,
			Type:        typ,
		})
	}

	for _, e := range t.EnumValues {
		def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{
			Name:        e.Name,
			Description: e.Description,
		})
	}
	for _, i := range t.Interfaces {
		def.Interfaces = append(def.Interfaces, i.Name)
	}
	for _, p := range t.PossibleTypes {
		if kind == ast.Union {
			def.Types = append(def.Types, p.Name)
		}
	}

	return def, nil
}

// buildType converts an introspection type reference into its wrapped form.
func buildType(ref *introspectionTypeRef) (*ast.Type, error) {
	if ref == nil {
		return nil, fmt.Errorf("missing type reference")
	}
	switch ref.Kind {
	case "NON_NULL":
		inner, err := buildType(ref.OfType)
		if err != nil {
			return nil, err
		}
		inner.NonNull = true
		return inner, nil
	case "LIST":
		elem, err := buildType(ref.OfType)
		if err != nil {
			return nil, err
		}
		return ast.ListType(elem, nil), nil
	}
	if ref.Name == "" {
		return nil, fmt.Errorf("unnamed %s type reference", ref.Kind)
	}
	if !querygen.ValidName(ref.Name) {
		return nil, fmt.Errorf("invalid type reference %q", ref.Name)
	}
	return ast.NamedType(ref.Name, nil), nil
}

func rootType(schema *ast.Schema, ref *introspectionTypeRef) (*ast.Definition, error) {
	if ref == nil || ref.Name == "" {
		return nil, nil
	}
	def := schema.Types[ref.Name]
	if def == nil {
		return nil, fmt.Errorf("root type %s is not defined", ref.Name)
	}
	return def, nil
}

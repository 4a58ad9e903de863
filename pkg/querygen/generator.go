package querygen

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Generator produces operation documents for the root fields of a schema.
// A Generator is safe for concurrent use: every document gets its own
// variable registry.
type Generator struct {
	schema     *ast.Schema
	depthLimit int
	maxOutput  int
}

// Option configures a Generator.
type Option func(*Generator)

// WithDepthLimit sets the nesting level at which fields with sub-fields are
// dropped. Negative values select DefaultDepthLimit.
func WithDepthLimit(limit int) Option {
	return func(g *Generator) {
		if limit < 0 {
			limit = DefaultDepthLimit
		}
		g.depthLimit = limit
	}
}

// WithMaxOutput bounds the number of bytes generated by one GenerateAll
// call, and by any single Generate call. Zero means no limit.
func WithMaxOutput(n int) Option {
	return func(g *Generator) {
		if n < 0 {
			n = 0
		}
		g.maxOutput = n
	}
}

// New creates a Generator for schema.
func New(schema *ast.Schema, opts ...Option) *Generator {
	g := &Generator{
		schema:     schema,
		depthLimit: DefaultDepthLimit,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RootType returns the schema's root type for kind, or nil.
func (g *Generator) RootType(kind Kind) *ast.Definition {
	switch kind {
	case KindQuery:
		return g.schema.Query
	case KindMutation:
		return g.schema.Mutation
	case KindSubscription:
		return g.schema.Subscription
	}
	return nil
}

// RootKind returns the operation kind whose root type is named parentType.
func (g *Generator) RootKind(parentType string) (Kind, error) {
	for _, kind := range []Kind{KindQuery, KindMutation, KindSubscription} {
		if def := g.RootType(kind); def != nil && def.Name == parentType {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnrecognizedRootType, parentType)
}

// Generate builds the operation document for the root field fieldName of
// parentType.
func (g *Generator) Generate(fieldName, parentType string) (*Document, error) {
	return g.generate(fieldName, parentType, g.maxOutput)
}

// generate builds one document within budget bytes, unlimited when zero.
func (g *Generator) generate(fieldName, parentType string, budget int) (*Document, error) {
	kind, err := g.RootKind(parentType)
	if err != nil {
		return nil, err
	}

	e := &expander{
		schema:     g.schema,
		depthLimit: g.depthLimit,
		vars:       NewVariableRegistry(),
		budget:     budget,
	}
	frag, err := e.expandField(fieldName, parentType, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("generate %s %s: %w", kind, fieldName, err)
	}

	var b strings.Builder
	b.WriteString(string(kind))
	b.WriteString(" ")
	b.WriteString(fieldName)
	b.WriteString(e.vars.Signature())
	b.WriteString(" {\n")
	b.WriteString(frag.Text)
	b.WriteString("\n}")

	return &Document{
		Kind:      kind,
		Name:      fieldName,
		Query:     b.String(),
		Variables: e.vars.Variables(),
		Meta:      frag.Meta,
	}, nil
}

// GenerateAll builds a document for every field of every root type present
// in the schema.
func (g *Generator) GenerateAll() (*Result, error) {
	res := &Result{DepthLimit: g.depthLimit}
	written := 0
	for _, kind := range Kinds {
		def := g.RootType(kind)
		if def == nil {
			continue
		}

		group := &Group{Kind: kind, RootType: def.Name}
		for _, field := range def.Fields {
			if isIntrospection(field.Name) {
				continue
			}
			budget := 0
			if g.maxOutput > 0 {
				budget = g.maxOutput - written
				if budget <= 0 {
					return nil, fmt.Errorf("%w: %d bytes", ErrOutputTooLarge, g.maxOutput)
				}
			}
			doc, err := g.generate(field.Name, def.Name, budget)
			if err != nil {
				return nil, err
			}
			written += len(doc.Query)
			group.Documents = append(group.Documents, doc)
		}
		res.Groups = append(res.Groups, group)
	}
	return res, nil
}

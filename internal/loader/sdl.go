package loader

import (
	"bytes"
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// FormatSDL is the name of the schema definition language loader.
const FormatSDL = "graphql"

// SDLLoader loads GraphQL SDL documents.
type SDLLoader struct{}

func (l *SDLLoader) Name() string {
	return FormatSDL
}

func (l *SDLLoader) CanHandle(filename string, content []byte) bool {
	ext := getExtension(filename)
	if ext == ".graphql" || ext == ".gql" || ext == ".graphqls" {
		return true
	}
	return bytes.Contains(content, []byte("type Query")) ||
		bytes.Contains(content, []byte("type Mutation")) ||
		bytes.Contains(content, []byte("schema {"))
}

func (l *SDLLoader) Load(content []byte, opts *Options) (*ast.Schema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{
		Name:  opts.sourceName(),
		Input: string(content),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema: %w", err)
	}
	return schema, nil
}

package loader

import (
	"testing"

	"github.com/sanixdarker/gqlg/pkg/querygen"
)

const sdl = `
type Query {
  user(id: ID!): User
}

type User {
  id: ID!
  name: String
  tags(first: Int): [String!]
}
`

const introspection = `{
  "data": {
    "__schema": {
      "queryType": {"name": "Query"},
      "mutationType": null,
      "subscriptionType": null,
      "types": [
        {
          "kind": "OBJECT",
          "name": "Query",
          "fields": [
            {
              "name": "user",
              "args": [
                {"name": "id", "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "ID", "ofType": null}}}
              ],
              "type": {"kind": "OBJECT", "name": "User", "ofType": null}
            }
          ]
        },
        {
          "kind": "OBJECT",
          "name": "User",
          "fields": [
            {"name": "id", "args": [], "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "ID", "ofType": null}}},
            {"name": "name", "args": [], "type": {"kind": "SCALAR", "name": "String", "ofType": null}},
            {
              "name": "tags",
              "args": [{"name": "first", "type": {"kind": "SCALAR", "name": "Int", "ofType": null}}],
              "type": {"kind": "LIST", "name": null, "ofType": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "String", "ofType": null}}}
            }
          ]
        },
        {"kind": "SCALAR", "name": "ID"},
        {"kind": "SCALAR", "name": "String"},
        {"kind": "SCALAR", "name": "Int"}
      ]
    }
  }
}`

func TestManager_DetectFormat(t *testing.T) {
	m := NewManager()

	tests := []struct {
		filename string
		content  string
		want     string
	}{
		{"schema.graphql", "", FormatSDL},
		{"schema.gql", "", FormatSDL},
		{"", "type Query { a: Int }", FormatSDL},
		{"schema.json", introspection, FormatIntrospection},
		{"", `{"__schema": {"types": []}}`, FormatIntrospection},
		{"notes.txt", "scalar Date", FormatSDL},
	}

	for _, tt := range tests {
		if got := m.DetectFormat(tt.filename, []byte(tt.content)); got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestManager_UnknownFormat(t *testing.T) {
	m := NewManager()
	if _, err := m.Load("openapi", []byte(sdl), nil); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSDLLoader_InvalidSchema(t *testing.T) {
	l := &SDLLoader{}
	if _, err := l.Load([]byte("type Query { user: Missing }"), nil); err == nil {
		t.Error("expected error for undefined type")
	}
}

func TestIntrospectionLoader_MissingSchema(t *testing.T) {
	l := &IntrospectionLoader{}
	if _, err := l.Load([]byte(`{"data": {}}`), nil); err == nil {
		t.Error("expected error for missing __schema")
	}
}

func TestIntrospectionLoader_UndefinedRoot(t *testing.T) {
	l := &IntrospectionLoader{}
	_, err := l.Load([]byte(`{"__schema": {"queryType": {"name": "Query"}, "types": []}}`), nil)
	if err == nil {
		t.Error("expected error for undefined root type")
	}
}

func TestIntrospectionLoader_RejectsInvalidNames(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"field path", `{"data":{"__schema":{"queryType":{"name":"Query"},"types":[
			{"kind":"OBJECT","name":"Query","fields":[{"name":"../../escaped","args":[],"type":{"kind":"SCALAR","name":"String"}}]},
			{"kind":"SCALAR","name":"String"}]}}}`},
		{"field quote", `{"__schema":{"queryType":{"name":"Query"},"types":[
			{"kind":"OBJECT","name":"Query","fields":[{"name":"a');evil('","args":[],"type":{"kind":"SCALAR","name":"String"}}]},
			{"kind":"SCALAR","name":"String"}]}}`},
		{"argument", `{"__schema":{"queryType":{"name":"Query"},"types":[
			{"kind":"OBJECT","name":"Query","fields":[{"name":"ping","args":[{"name":"a b","type":{"kind":"SCALAR","name":"String"}}],"type":{"kind":"SCALAR","name":"String"}}]},
			{"kind":"SCALAR","name":"String"}]}}`},
		{"type", `{"__schema":{"queryType":{"name":"Query"},"types":[
			{"kind":"OBJECT","name":"Query","fields":[]},
			{"kind":"SCALAR","name":"1String"}]}}`},
		{"type reference", `{"__schema":{"queryType":{"name":"Query"},"types":[
			{"kind":"OBJECT","name":"Query","fields":[{"name":"ping","args":[],"type":{"kind":"SCALAR","name":"../String"}}]}]}}`},
	}

	l := &IntrospectionLoader{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.Load([]byte(tt.content), nil); err == nil {
				t.Error("expected error for invalid name")
			}
		})
	}
}

func TestLoaders_ProduceSameDocuments(t *testing.T) {
	m := NewManager()

	fromSDL, err := m.Load("", []byte(sdl), &Options{SourcePath: "schema.graphql"})
	if err != nil {
		t.Fatalf("failed to load SDL: %v", err)
	}
	fromJSON, err := m.Load("", []byte(introspection), &Options{SourcePath: "schema.json"})
	if err != nil {
		t.Fatalf("failed to load introspection: %v", err)
	}

	a, err := querygen.New(fromSDL).Generate("user", "Query")
	if err != nil {
		t.Fatalf("failed to generate from SDL: %v", err)
	}
	b, err := querygen.New(fromJSON).Generate("user", "Query")
	if err != nil {
		t.Fatalf("failed to generate from introspection: %v", err)
	}

	if a.Query != b.Query {
		t.Errorf("documents differ:\n%s\n---\n%s", a.Query, b.Query)
	}

	expected := "query user($id: ID!, $first: Int) {\n" +
		"    user(id: $id){\n" +
		"        id\n" +
		"        name\n" +
		"        tags(first: $first)\n" +
		"    }\n" +
		"}"
	if b.Query != expected {
		t.Errorf("unexpected document:\n%s", b.Query)
	}
}

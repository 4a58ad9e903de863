package catalog

import (
	"strings"
	"testing"

	"github.com/sanixdarker/gqlg/pkg/querygen"
)

func testResult() *querygen.Result {
	return &querygen.Result{
		DepthLimit: 5,
		Groups: []*querygen.Group{
			{
				Kind:     querygen.KindMutation,
				RootType: "Mutation",
				Documents: []*querygen.Document{
					{Kind: querygen.KindMutation, Name: "setName", Query: "mutation setName($name: String!) {\n    setName(name: $name)\n}", Meta: querygen.Meta{HasArgs: true}},
				},
			},
			{
				Kind:     querygen.KindQuery,
				RootType: "Query",
				Documents: []*querygen.Document{
					{Kind: querygen.KindQuery, Name: "viewer", Query: "query viewer {\n    viewer{\n        id\n    }\n}", Meta: querygen.Meta{HasChildren: true}},
					{Kind: querygen.KindQuery, Name: "ping", Query: "query ping {\n    ping\n}"},
				},
			},
		},
	}
}

func TestRender_NilCatalog(t *testing.T) {
	out, err := Render(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestFromResult_Counts(t *testing.T) {
	c := FromResult("Test API", "schema.graphql", testResult())

	if c.Frontmatter.Queries != 2 || c.Frontmatter.Mutations != 1 || c.Frontmatter.Subscriptions != 0 {
		t.Errorf("unexpected counts: %+v", c.Frontmatter)
	}
	if c.Frontmatter.DepthLimit != 5 {
		t.Errorf("expected depth limit 5, got %d", c.Frontmatter.DepthLimit)
	}
	if len(c.Frontmatter.WithArgs) != 1 || c.Frontmatter.WithArgs[0] != "mutation.setName" {
		t.Errorf("unexpected with_args: %v", c.Frontmatter.WithArgs)
	}
}

func TestRender_Sections(t *testing.T) {
	out, err := Render(FromResult("Test API", "schema.graphql", testResult()))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, want := range []string{
		"---\nname: Test API\n",
		"depth_limit: 5",
		"# Test API",
		"## Mutations",
		"## Queries",
		"### viewer",
		"```graphql\nquery viewer {\n    viewer{\n        id\n    }\n}\n```",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "## Subscriptions") {
		t.Error("did not expect an empty Subscriptions section")
	}
	if strings.Index(out, "## Mutations") > strings.Index(out, "## Queries") {
		t.Error("expected mutations before queries")
	}
}

func TestParse_ReadsRenderedCatalog(t *testing.T) {
	original := FromResult("Test API", "schema.graphql", testResult())
	out, err := Render(original)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	parsed, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if parsed.Frontmatter.Name != "Test API" || parsed.Frontmatter.Queries != 2 {
		t.Errorf("unexpected frontmatter: %+v", parsed.Frontmatter)
	}
	if len(parsed.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(parsed.Entries))
	}
	viewer := parsed.EntriesOf(querygen.KindQuery)[0]
	if viewer.Name != "viewer" || viewer.Query != original.Entries[1].Query {
		t.Errorf("unexpected entry: %+v", viewer)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	c, err := Parse([]byte("# Notes\n\n## Queries\n\n### ping\n\n```graphql\nquery ping {\n    ping\n}\n```\n"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(c.Entries) != 1 || c.Entries[0].Name != "ping" {
		t.Errorf("unexpected entries: %+v", c.Entries)
	}
}

func TestHTML(t *testing.T) {
	html, err := HTML(FromResult("Test API", "schema.graphql", testResult()))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Contains(html, "depth_limit") {
		t.Error("expected frontmatter to be stripped from HTML")
	}
	if !strings.Contains(html, "<h2>Queries</h2>") {
		t.Errorf("expected Queries heading in:\n%s", html)
	}
	if !strings.Contains(html, `<code class="language-graphql">`) {
		t.Errorf("expected graphql code block in:\n%s", html)
	}
}

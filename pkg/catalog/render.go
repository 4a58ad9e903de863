package catalog

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sanixdarker/gqlg/pkg/querygen"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v2"
)

var sectionTitles = map[querygen.Kind]string{
	querygen.KindMutation:     "Mutations",
	querygen.KindQuery:        "Queries",
	querygen.KindSubscription: "Subscriptions",
}

// Render generates the README.md content of a catalog.
func Render(c *Catalog) (string, error) {
	if c == nil {
		return "", nil
	}

	fm, err := yaml.Marshal(&c.Frontmatter)
	if err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")

	b.WriteString("# ")
	b.WriteString(c.Frontmatter.Name)
	b.WriteString("\n\n")

	for _, kind := range querygen.Kinds {
		entries := c.EntriesOf(kind)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", sectionTitles[kind])
		for _, e := range entries {
			fmt.Fprintf(&b, "### %s\n\n", e.Name)
			b.WriteString("```graphql\n")
			b.WriteString(e.Query)
			b.WriteString("\n```\n\n")
		}
	}

	return strings.TrimSuffix(b.String(), "\n"), nil
}

// HTML renders the catalog body, without frontmatter, as HTML.
func HTML(c *Catalog) (string, error) {
	content, err := Render(c)
	if err != nil {
		return "", err
	}
	_, body := splitFrontmatter(content)

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// splitFrontmatter separates a leading --- delimited block from the body.
func splitFrontmatter(content string) (string, string) {
	if !strings.HasPrefix(content, "---\n") {
		return "", content
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return "", content
	}
	return rest[:end], rest[end+len("\n---\n"):]
}

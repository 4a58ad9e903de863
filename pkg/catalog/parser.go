package catalog

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/sanixdarker/gqlg/pkg/querygen"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// Parse parses README.md content back into a Catalog.
func Parse(content []byte) (*Catalog, error) {
	c := &Catalog{Raw: string(content)}

	rest, err := frontmatter.Parse(bytes.NewReader(content), &c.Frontmatter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	doc := md.Parser().Parse(text.NewReader(rest))

	var kind querygen.Kind
	var name string
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			title := extractTextContent(node, rest)
			switch node.Level {
			case 2:
				kind = kindForTitle(title)
				name = ""
			case 3:
				name = title
			}
		case *ast.FencedCodeBlock:
			if kind == "" || name == "" {
				return ast.WalkContinue, nil
			}
			c.Entries = append(c.Entries, Entry{
				Kind:  kind,
				Name:  name,
				Query: extractCodeBlockContent(node, rest),
			})
			name = ""
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

func kindForTitle(title string) querygen.Kind {
	for kind, t := range sectionTitles {
		if strings.EqualFold(t, title) {
			return kind
		}
	}
	return ""
}

// extractTextContent extracts text from a heading node.
func extractTextContent(n ast.Node, source []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}

// extractCodeBlockContent extracts content from a fenced code block.
func extractCodeBlockContent(n *ast.FencedCodeBlock, source []byte) string {
	var buf strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Package catalog provides the markdown catalog written next to generated
// operation documents.
package catalog

import (
	"time"

	"github.com/sanixdarker/gqlg/pkg/querygen"
)

// Catalog represents a README.md describing one generation.
type Catalog struct {
	Frontmatter Frontmatter `json:"frontmatter"`
	Entries     []Entry     `json:"entries"`
	Raw         string      `json:"-"`
}

// Frontmatter contains catalog metadata.
type Frontmatter struct {
	Name          string   `yaml:"name" json:"name"`
	Schema        string   `yaml:"schema,omitempty" json:"schema,omitempty"`
	DepthLimit    int      `yaml:"depth_limit" json:"depth_limit"`
	GeneratedAt   string   `yaml:"generated_at,omitempty" json:"generated_at,omitempty"`
	Queries       int      `yaml:"queries" json:"queries"`
	Mutations     int      `yaml:"mutations" json:"mutations"`
	Subscriptions int      `yaml:"subscriptions" json:"subscriptions"`
	WithArgs      []string `yaml:"with_args,flow,omitempty" json:"with_args,omitempty"`
}

// Entry is one generated document listed in the catalog.
type Entry struct {
	Kind  querygen.Kind `json:"kind"`
	Name  string        `json:"name"`
	Query string        `json:"query"`
}

// New creates an empty catalog.
func New(name string) *Catalog {
	return &Catalog{
		Frontmatter: Frontmatter{
			Name:        name,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// FromResult builds a catalog listing every document of a generation.
func FromResult(name, schemaPath string, res *querygen.Result) *Catalog {
	c := New(name)
	c.Frontmatter.Schema = schemaPath
	c.Frontmatter.DepthLimit = res.DepthLimit

	for _, g := range res.Groups {
		for _, d := range g.Documents {
			c.Add(d)
		}
	}
	return c
}

// Add appends a document to the catalog and updates the counters.
func (c *Catalog) Add(d *querygen.Document) {
	c.Entries = append(c.Entries, Entry{Kind: d.Kind, Name: d.Name, Query: d.Query})
	switch d.Kind {
	case querygen.KindQuery:
		c.Frontmatter.Queries++
	case querygen.KindMutation:
		c.Frontmatter.Mutations++
	case querygen.KindSubscription:
		c.Frontmatter.Subscriptions++
	}
	if d.HasArgs {
		c.Frontmatter.WithArgs = append(c.Frontmatter.WithArgs, string(d.Kind)+"."+d.Name)
	}
}

// EntriesOf returns the entries of one kind in catalog order.
func (c *Catalog) EntriesOf(kind querygen.Kind) []Entry {
	var out []Entry
	for _, e := range c.Entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

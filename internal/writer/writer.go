// Package writer lays out generated documents on disk.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sanixdarker/gqlg/pkg/catalog"
	"github.com/sanixdarker/gqlg/pkg/querygen"
)

const indexJsStart = `
const fs = require('fs');
const path = require('path');

`

// CatalogFile is the name of the markdown catalog written to the destination.
const CatalogFile = "README.md"

// Options holds writer options.
type Options struct {
	// Name is the catalog title.
	Name string
	// SchemaPath is recorded in the catalog frontmatter.
	SchemaPath string
	// NoCatalog disables README.md generation.
	NoCatalog bool
}

// Summary describes what was written.
type Summary struct {
	Dir   string
	Files map[querygen.Kind]int
}

// Writer writes documents below a destination directory.
type Writer struct {
	dest   string
	logger *log.Logger
}

// New creates a Writer for dest.
func New(dest string, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.Default()
	}
	return &Writer{dest: dest, logger: logger}
}

// Write replaces the mutations, queries and subscriptions folders of the
// destination with the documents of res. Each folder gets one .gql file per
// document and an index.js; the destination gets a root index.js.
func (w *Writer) Write(res *querygen.Result, opts *Options) (*Summary, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := os.MkdirAll(w.dest, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create destination: %w", err)
	}

	w.logger.Info("writing generated documents", "dest", w.dest)

	summary := &Summary{Dir: w.dest, Files: make(map[querygen.Kind]int)}
	var exportAll strings.Builder

	for _, kind := range querygen.Kinds {
		folder := filepath.Join(w.dest, kind.Folder())
		if err := os.RemoveAll(folder); err != nil {
			return nil, fmt.Errorf("failed to clean %s: %w", folder, err)
		}
		if err := os.Mkdir(folder, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", folder, err)
		}

		group := res.Group(kind)
		if group == nil {
			w.logger.Warn(fmt.Sprintf("No %s type found in your schema", kind))
			continue
		}

		index := indexJsStart
		for _, doc := range group.Documents {
			path, err := documentPath(folder, doc.Name)
			if err != nil {
				return nil, err
			}
			if err := os.WriteFile(path, []byte(doc.Query), 0o644); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", path, err)
			}
			index += fmt.Sprintf("module.exports.%s = fs.readFileSync(path.join(__dirname, '%s.gql'), 'utf8');\n", doc.Name, doc.Name)
			w.logger.Debug("wrote document", "kind", kind, "name", doc.Name)
		}
		if err := os.WriteFile(filepath.Join(folder, "index.js"), []byte(index), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s index: %w", kind, err)
		}

		fmt.Fprintf(&exportAll, "module.exports.%s = require('./%s');\n", kind.Folder(), kind.Folder())
		summary.Files[kind] = len(group.Documents)
	}

	if err := os.WriteFile(filepath.Join(w.dest, "index.js"), []byte(exportAll.String()), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write index: %w", err)
	}

	if !opts.NoCatalog {
		name := opts.Name
		if name == "" {
			name = "GraphQL operations"
		}
		content, err := catalog.Render(catalog.FromResult(name, opts.SchemaPath, res))
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(w.dest, CatalogFile), []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write catalog: %w", err)
		}
	}

	return summary, nil
}

// documentPath returns the .gql path of a document. Names become file names
// and JavaScript identifiers, so anything outside the GraphQL Name grammar
// or resolving outside folder is refused.
func documentPath(folder, name string) (string, error) {
	if !querygen.ValidName(name) {
		return "", fmt.Errorf("invalid document name %q", name)
	}
	path := filepath.Join(folder, name+".gql")
	rel, err := filepath.Rel(folder, path)
	if err != nil || rel != filepath.Base(path) {
		return "", fmt.Errorf("document %q resolves outside %s", name, folder)
	}
	return path, nil
}

// ReadCatalog loads the catalog of a previously written destination.
func ReadCatalog(dest string) (*catalog.Catalog, error) {
	content, err := os.ReadFile(filepath.Join(dest, CatalogFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return catalog.Parse(content)
}

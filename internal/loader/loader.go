// Package loader turns schema descriptions into an in-memory schema graph.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Loader defines the interface for schema loaders.
type Loader interface {
	// Name returns the format name.
	Name() string
	// Load parses content into a schema.
	Load(content []byte, opts *Options) (*ast.Schema, error)
	// CanHandle returns true if this loader recognizes the content.
	CanHandle(filename string, content []byte) bool
}

// Options holds loader options.
type Options struct {
	SourcePath string
}

func (o *Options) sourceName() string {
	if o == nil || o.SourcePath == "" {
		return "schema.graphql"
	}
	return filepath.Base(o.SourcePath)
}

// Manager manages the available loaders.
type Manager struct {
	loaders []Loader
}

// NewManager creates a manager with the built-in loaders. Introspection is
// registered first since SDL detection also matches JSON that mentions
// "type Query" inside descriptions.
func NewManager() *Manager {
	m := &Manager{}
	m.Register(&IntrospectionLoader{})
	m.Register(&SDLLoader{})
	return m
}

// Register adds a loader to the manager.
func (m *Manager) Register(l Loader) {
	m.loaders = append(m.loaders, l)
}

// Load parses content using the named format. An empty format is detected.
func (m *Manager) Load(format string, content []byte, opts *Options) (*ast.Schema, error) {
	if format == "" {
		name := ""
		if opts != nil {
			name = opts.SourcePath
		}
		format = m.DetectFormat(name, content)
	}
	for _, l := range m.loaders {
		if strings.EqualFold(l.Name(), format) {
			return l.Load(content, opts)
		}
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

// DetectFormat detects the format of the input content, defaulting to SDL.
func (m *Manager) DetectFormat(filename string, content []byte) string {
	for _, l := range m.loaders {
		if l.CanHandle(filename, content) {
			return l.Name()
		}
	}
	return FormatSDL
}

// SupportedFormats returns the names of the registered loaders.
func (m *Manager) SupportedFormats() []string {
	formats := make([]string, len(m.loaders))
	for i, l := range m.loaders {
		formats[i] = l.Name()
	}
	return formats
}

// getExtension returns the lowercase file extension.
func getExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

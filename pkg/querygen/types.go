// Package querygen generates GraphQL operation documents that select every
// reachable field of a root operation field, down to a depth limit.
package querygen

// DefaultDepthLimit is used when no depth limit is configured.
const DefaultDepthLimit = 100

// Kind is a root operation kind.
type Kind string

const (
	KindQuery        Kind = "query"
	KindMutation     Kind = "mutation"
	KindSubscription Kind = "subscription"
)

// Kinds lists the root operation kinds in generation order.
var Kinds = []Kind{KindMutation, KindQuery, KindSubscription}

// Folder returns the directory name documents of this kind are written to.
func (k Kind) Folder() string {
	switch k {
	case KindQuery:
		return "queries"
	case KindMutation:
		return "mutations"
	case KindSubscription:
		return "subscriptions"
	}
	return string(k)
}

// ParseKind resolves a kind from its keyword or folder name.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if s == string(k) || s == k.Folder() {
			return k, true
		}
	}
	return "", false
}

// Meta describes whether a field, or any of its descendants, carried
// arguments or sub-selections.
type Meta struct {
	HasArgs     bool `json:"has_args"`
	HasChildren bool `json:"has_children"`
}

// Fragment is the generated text for one field. Text is empty when the
// field contributed nothing.
type Fragment struct {
	Text string
	Meta Meta
}

// Document is a complete operation generated for one root field.
type Document struct {
	Kind  Kind   `json:"kind"`
	Name  string `json:"name"`
	Query string `json:"query"`
	// Variables is empty for documents rebuilt from history.
	Variables []Variable `json:"variables,omitempty"`
	Meta
}

// Group holds the documents generated for one root operation type, in the
// root type's field order.
type Group struct {
	Kind      Kind        `json:"kind"`
	RootType  string      `json:"root_type"`
	Documents []*Document `json:"documents"`
}

// Result is the output of a full generation pass over a schema.
type Result struct {
	DepthLimit int      `json:"depth_limit"`
	Groups     []*Group `json:"groups"`
}

// Group returns the group for kind, or nil if the schema has no such root type.
func (r *Result) Group(kind Kind) *Group {
	for _, g := range r.Groups {
		if g.Kind == kind {
			return g
		}
	}
	return nil
}

// Find returns the document generated for a root field.
func (r *Result) Find(kind Kind, name string) *Document {
	g := r.Group(kind)
	if g == nil {
		return nil
	}
	for _, d := range g.Documents {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Count returns the total number of generated documents.
func (r *Result) Count() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Documents)
	}
	return n
}

// Package history records generation runs and their documents.
package history

import (
	"time"

	"github.com/sanixdarker/gqlg/pkg/querygen"
)

// Run is one recorded generation pass over a schema.
type Run struct {
	ID            string    `json:"id"`
	SchemaName    string    `json:"schema_name"`
	SchemaHash    string    `json:"schema_hash"`
	DepthLimit    int       `json:"depth_limit"`
	DocumentCount int       `json:"document_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// StoredDocument is a generated document belonging to a run.
type StoredDocument struct {
	RunID string `json:"run_id"`
	querygen.Document
}

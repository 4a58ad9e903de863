package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sanixdarker/gqlg/pkg/querygen"
)

const testSchema = `
type Query {
  user(id: ID!): User
}

type User {
  id: ID!
  name: String
}
`

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gqlg.yml")
	content := "port: 9090\ndb: runs.db\ndepth_limit: 4\nmax_depth: 8\nmax_output: 1024\ncache_ttl: 30s\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadConfigFile(path, cfg, true); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 9090 || cfg.DBPath != "runs.db" || cfg.DepthLimit != 4 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.MaxDepth != 8 || cfg.MaxOutput != 1024 {
		t.Errorf("unexpected limits: max depth %d, max output %d", cfg.MaxDepth, cfg.MaxOutput)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("expected cache ttl 30s, got %v", cfg.CacheTTL)
	}
	if cfg.RateBurst != 10 {
		t.Errorf("expected defaults to survive, got burst %d", cfg.RateBurst)
	}
}

func TestLoadConfigFile_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yml")

	if err := LoadConfigFile(missing, DefaultConfig(), false); err != nil {
		t.Errorf("expected optional missing file to be ignored, got %v", err)
	}
	if err := LoadConfigFile(missing, DefaultConfig(), true); err == nil {
		t.Error("expected error for required missing file")
	}
}

func TestLoadConfigFile_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gqlg.yml")
	if err := os.WriteFile(path, []byte("depthLimit: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LoadConfigFile(path, DefaultConfig(), true); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestApp_Generate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DepthLimit = 3
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer a.Close()

	if a.History != nil {
		t.Error("expected no history without a database path")
	}

	res, err := a.Generate([]byte(testSchema), GenerateOptions{SourcePath: "schema.graphql", DepthLimit: -1})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.DepthLimit != 3 {
		t.Errorf("expected configured depth limit, got %d", res.DepthLimit)
	}

	doc := res.Find(querygen.KindQuery, "user")
	if doc == nil {
		t.Fatal("expected user document")
	}
	want := "query user($id: ID!) {\n    user(id: $id){\n        id\n        name\n    }\n}"
	if doc.Query != want {
		t.Errorf("unexpected document:\n%s\nwant:\n%s", doc.Query, want)
	}
}

func TestApp_GenerateInvalidSchema(t *testing.T) {
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if _, err := a.Generate([]byte("type Query {"), GenerateOptions{Format: "graphql", DepthLimit: -1}); err == nil {
		t.Error("expected error for invalid schema")
	}
}

func TestApp_WithDatabase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "gqlg.db")
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer a.Close()

	if a.History == nil {
		t.Fatal("expected history service")
	}
	res, err := a.Generate([]byte(testSchema), GenerateOptions{DepthLimit: 2})
	if err != nil {
		t.Fatal(err)
	}
	run, err := a.History.Record(context.Background(), "schema.graphql", []byte(testSchema), res)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if run.DocumentCount != 1 {
		t.Errorf("expected 1 document, got %d", run.DocumentCount)
	}
}

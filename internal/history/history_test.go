package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sanixdarker/gqlg/internal/storage"
	"github.com/sanixdarker/gqlg/pkg/querygen"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewService(NewRepository(db))
}

func testResult() *querygen.Result {
	return &querygen.Result{
		DepthLimit: 3,
		Groups: []*querygen.Group{
			{Kind: querygen.KindMutation, RootType: "Mutation", Documents: []*querygen.Document{
				{Kind: querygen.KindMutation, Name: "rename", Query: "mutation rename($name: String) {\n    rename(name: $name)\n}", Meta: querygen.Meta{HasArgs: true}},
			}},
			{Kind: querygen.KindQuery, RootType: "Query", Documents: []*querygen.Document{
				{Kind: querygen.KindQuery, Name: "viewer", Query: "query viewer {\n    viewer{\n        id\n    }\n}", Meta: querygen.Meta{HasChildren: true}},
				{Kind: querygen.KindQuery, Name: "ping", Query: "query ping {\n    ping\n}"},
			}},
		},
	}
}

func TestService_RecordAndRead(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	schema := []byte("type Query { ping: String }")

	run, err := svc.Record(ctx, "schema.graphql", schema, testResult())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if run.ID == "" || run.DocumentCount != 3 {
		t.Errorf("unexpected run: %+v", run)
	}

	got, err := svc.GetRun(ctx, run.ID)
	if err != nil || got == nil {
		t.Fatalf("expected run, got %v, %v", got, err)
	}
	if got.SchemaHash != HashSchema(schema) || got.DepthLimit != 3 {
		t.Errorf("unexpected stored run: %+v", got)
	}

	byPrefix, err := svc.GetRun(ctx, run.ID[:8])
	if err != nil || byPrefix == nil || byPrefix.ID != run.ID {
		t.Errorf("expected lookup by prefix to find the run, got %v, %v", byPrefix, err)
	}

	doc, err := svc.Document(ctx, run.ID, querygen.KindMutation, "rename")
	if err != nil || doc == nil {
		t.Fatalf("expected document, got %v, %v", doc, err)
	}
	if !doc.HasArgs || doc.HasChildren {
		t.Errorf("unexpected meta: %+v", doc.Meta)
	}

	missing, err := svc.Document(ctx, run.ID, querygen.KindQuery, "rename")
	if err != nil || missing != nil {
		t.Errorf("expected no document, got %v, %v", missing, err)
	}
}

func TestService_ResultKeepsOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	run, err := svc.Record(ctx, "schema.graphql", []byte("schema"), testResult())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	res, err := svc.Result(ctx, run)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(res.Groups) != 2 || res.Groups[0].Kind != querygen.KindMutation {
		t.Fatalf("unexpected groups: %+v", res.Groups)
	}
	queries := res.Group(querygen.KindQuery).Documents
	if len(queries) != 2 || queries[0].Name != "viewer" || queries[1].Name != "ping" {
		t.Errorf("unexpected query order: %+v", queries)
	}
}

func TestService_ListAndLatest(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	schema := []byte("type Query { ping: String }")

	if _, err := svc.Record(ctx, "a.graphql", schema, testResult()); err != nil {
		t.Fatal(err)
	}
	second, err := svc.Record(ctx, "b.graphql", schema, testResult())
	if err != nil {
		t.Fatal(err)
	}

	runs, total, err := svc.ListRuns(ctx, 1, 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if total != 2 || len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d (total %d)", len(runs), total)
	}

	latest, err := svc.Latest(ctx, schema, 3)
	if err != nil || latest == nil {
		t.Fatalf("expected latest run, got %v, %v", latest, err)
	}
	if latest.SchemaHash != second.SchemaHash {
		t.Errorf("unexpected latest run: %+v", latest)
	}

	none, err := svc.Latest(ctx, schema, 4)
	if err != nil || none != nil {
		t.Errorf("expected no run for another depth limit, got %v, %v", none, err)
	}
}

func TestService_DeleteRunCascades(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	run, err := svc.Record(ctx, "schema.graphql", []byte("schema"), testResult())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteRun(ctx, run.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	docs, err := svc.Documents(ctx, run.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected documents to be deleted, got %d", len(docs))
	}
}

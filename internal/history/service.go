package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sanixdarker/gqlg/pkg/querygen"
)

// Service provides the generation history on top of a Repository.
type Service struct {
	repo *Repository
}

// NewService creates a new Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// HashSchema returns the hex sha256 of a schema description.
func HashSchema(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Record stores a generation result as a new run.
func (s *Service) Record(ctx context.Context, schemaName string, schemaContent []byte, res *querygen.Result) (*Run, error) {
	var docs []*querygen.Document
	for _, g := range res.Groups {
		docs = append(docs, g.Documents...)
	}

	run := &Run{
		SchemaName: schemaName,
		SchemaHash: HashSchema(schemaContent),
		DepthLimit: res.DepthLimit,
	}
	if err := s.repo.Create(ctx, run, docs); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	return run, nil
}

// GetRun retrieves a run by its ID or a unique ID prefix.
func (s *Service) GetRun(ctx context.Context, id string) (*Run, error) {
	run, err := s.repo.GetByID(ctx, id)
	if err != nil || run != nil {
		return run, err
	}
	if len(id) < 4 {
		return nil, nil
	}

	// Short IDs as printed by the history command.
	runs, _, err := s.repo.List(ctx, 0, 1000)
	if err != nil {
		return nil, err
	}
	var match *Run
	for _, r := range runs {
		if strings.HasPrefix(r.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("run id prefix %q is ambiguous", id)
			}
			match = r
		}
	}
	return match, nil
}

// ListRuns retrieves a page of runs, newest first.
func (s *Service) ListRuns(ctx context.Context, page, pageSize int) ([]*Run, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	offset := (page - 1) * pageSize
	return s.repo.List(ctx, offset, pageSize)
}

// Documents retrieves the documents of a run.
func (s *Service) Documents(ctx context.Context, runID string) ([]*StoredDocument, error) {
	return s.repo.Documents(ctx, runID)
}

// Document retrieves one document of a run.
func (s *Service) Document(ctx context.Context, runID string, kind querygen.Kind, name string) (*StoredDocument, error) {
	return s.repo.Document(ctx, runID, kind, name)
}

// Result rebuilds the generation result of a run from its stored documents.
func (s *Service) Result(ctx context.Context, run *Run) (*querygen.Result, error) {
	docs, err := s.repo.Documents(ctx, run.ID)
	if err != nil {
		return nil, err
	}

	res := &querygen.Result{DepthLimit: run.DepthLimit}
	for _, d := range docs {
		g := res.Group(d.Kind)
		if g == nil {
			g = &querygen.Group{Kind: d.Kind}
			res.Groups = append(res.Groups, g)
		}
		doc := d.Document
		g.Documents = append(g.Documents, &doc)
	}
	return res, nil
}

// Latest returns the newest run recorded for the same schema and depth limit.
func (s *Service) Latest(ctx context.Context, schemaContent []byte, depthLimit int) (*Run, error) {
	return s.repo.FindByHash(ctx, HashSchema(schemaContent), depthLimit)
}

// DeleteRun removes a run.
func (s *Service) DeleteRun(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

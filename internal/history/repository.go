package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sanixdarker/gqlg/pkg/querygen"
)

// Repository handles database operations for runs.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a run together with its documents.
func (r *Repository) Create(ctx context.Context, run *Run, docs []*querygen.Document) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	run.CreatedAt = time.Now().UTC()
	run.DocumentCount = len(docs)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, schema_name, schema_hash, depth_limit, document_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.SchemaName, run.SchemaHash, run.DepthLimit, run.DocumentCount, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (run_id, position, kind, name, query, has_args, has_children)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare document insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range docs {
		if _, err := stmt.ExecContext(ctx, run.ID, i, string(d.Kind), d.Name, d.Query, d.HasArgs, d.HasChildren); err != nil {
			return fmt.Errorf("failed to store document %s %s: %w", d.Kind, d.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetByID retrieves a run by ID. It returns nil when there is no such run.
func (r *Repository) GetByID(ctx context.Context, id string) (*Run, error) {
	run := &Run{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, schema_name, schema_hash, depth_limit, document_count, created_at
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.SchemaName, &run.SchemaHash, &run.DepthLimit, &run.DocumentCount, &run.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// List retrieves runs, newest first, with pagination.
func (r *Repository) List(ctx context.Context, offset, limit int) ([]*Run, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count runs: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, schema_name, schema_hash, depth_limit, document_count, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(&run.ID, &run.SchemaName, &run.SchemaHash, &run.DepthLimit, &run.DocumentCount, &run.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, total, rows.Err()
}

// Documents retrieves the documents of a run in generation order.
func (r *Repository) Documents(ctx context.Context, runID string) ([]*StoredDocument, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT run_id, kind, name, query, has_args, has_children
		FROM documents WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*StoredDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Document retrieves one document of a run. It returns nil when not found.
func (r *Repository) Document(ctx context.Context, runID string, kind querygen.Kind, name string) (*StoredDocument, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT run_id, kind, name, query, has_args, has_children
		FROM documents WHERE run_id = ? AND kind = ? AND name = ?
	`, runID, string(kind), name)

	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return d, err
}

// FindByHash returns the most recent run for a schema hash and depth limit.
func (r *Repository) FindByHash(ctx context.Context, hash string, depthLimit int) (*Run, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM runs WHERE schema_hash = ? AND depth_limit = ?
		ORDER BY created_at DESC LIMIT 1
	`, hash, depthLimit).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find run: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a run and its documents.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*StoredDocument, error) {
	d := &StoredDocument{}
	var kind string
	if err := s.Scan(&d.RunID, &kind, &d.Name, &d.Query, &d.HasArgs, &d.HasChildren); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	d.Kind = querygen.Kind(kind)
	return d, nil
}

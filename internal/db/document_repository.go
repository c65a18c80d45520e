package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/mugo/internal/data"
)

// ErrNoRevision: в БД нет ни одной ревизии конфигурации.
var ErrNoRevision = errors.New("no configuration revision stored")

// Revision: сохранённый набор документов конфигурации.
type Revision struct {
	ID          int64
	Fingerprint [32]byte
	Label       string
	CreatedAt   time.Time
}

// DocumentRepository хранит документы игровой конфигурации по ревизиям.
// Implements data.DocumentSource: LoadDocuments отдаёт последнюю ревизию.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository создаёт новый DocumentRepository.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

var _ data.DocumentSource = (*DocumentRepository)(nil)

// SaveDocuments сохраняет документы новой ревизией.
//
// Ревизии дедуплицируются по fingerprint: повторное сохранение тех же
// документов возвращает существующую ревизию и created=false.
func (r *DocumentRepository) SaveDocuments(ctx context.Context, docs []data.Document, label string) (Revision, bool, error) {
	fingerprint := data.Fingerprint(docs)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Revision{}, false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op после Commit
	}()

	rev := Revision{Fingerprint: fingerprint, Label: label}
	err = tx.QueryRow(ctx,
		`INSERT INTO config_revisions (fingerprint, label)
		 VALUES ($1, $2)
		 ON CONFLICT (fingerprint) DO NOTHING
		 RETURNING id, created_at`,
		fingerprint[:], label,
	).Scan(&rev.ID, &rev.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		existing, err := r.revisionByFingerprint(ctx, tx, fingerprint)
		if err != nil {
			return Revision{}, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return Revision{}, false, fmt.Errorf("inserting revision: %w", err)
	}

	batch := &pgx.Batch{}
	for _, d := range docs {
		batch.Queue(
			`INSERT INTO config_documents (revision_id, name, content) VALUES ($1, $2, $3)`,
			rev.ID, d.Name, d.Content,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return Revision{}, false, fmt.Errorf("inserting documents of revision %d: %w", rev.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Revision{}, false, fmt.Errorf("committing revision %d: %w", rev.ID, err)
	}
	return rev, true, nil
}

func (r *DocumentRepository) revisionByFingerprint(ctx context.Context, tx pgx.Tx, fingerprint [32]byte) (Revision, error) {
	rev := Revision{Fingerprint: fingerprint}
	err := tx.QueryRow(ctx,
		`SELECT id, label, created_at FROM config_revisions WHERE fingerprint = $1`,
		fingerprint[:],
	).Scan(&rev.ID, &rev.Label, &rev.CreatedAt)
	if err != nil {
		return Revision{}, fmt.Errorf("querying revision by fingerprint: %w", err)
	}
	return rev, nil
}

// LoadDocuments возвращает документы последней ревизии.
// Returns ErrNoRevision if nothing was imported yet.
func (r *DocumentRepository) LoadDocuments(ctx context.Context) ([]data.Document, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM config_revisions ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoRevision
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest revision: %w", err)
	}
	return r.LoadRevision(ctx, id)
}

// LoadRevision возвращает документы указанной ревизии, упорядоченные по имени.
func (r *DocumentRepository) LoadRevision(ctx context.Context, revisionID int64) ([]data.Document, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, content FROM config_documents WHERE revision_id = $1 ORDER BY name`,
		revisionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying documents of revision %d: %w", revisionID, err)
	}
	defer rows.Close()

	docs := make([]data.Document, 0, len(data.KnownDocuments))
	for rows.Next() {
		var d data.Document
		if err := rows.Scan(&d.Name, &d.Content); err != nil {
			return nil, fmt.Errorf("scanning document of revision %d: %w", revisionID, err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents of revision %d: %w", revisionID, err)
	}
	return docs, nil
}

// Revisions возвращает все ревизии, новые первыми.
func (r *DocumentRepository) Revisions(ctx context.Context) ([]Revision, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, fingerprint, label, created_at FROM config_revisions ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying revisions: %w", err)
	}
	defer rows.Close()

	var revisions []Revision
	for rows.Next() {
		var (
			rev         Revision
			fingerprint []byte
		)
		if err := rows.Scan(&rev.ID, &fingerprint, &rev.Label, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning revision: %w", err)
		}
		copy(rev.Fingerprint[:], fingerprint)
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revisions: %w", err)
	}
	return revisions, nil
}

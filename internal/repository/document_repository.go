package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Document struct {
	ID        string
	GroupID   string
	Name      string
	Size      int64
	Path      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DocumentRepository interface {
	Create(ctx context.Context, d *Document) error
	FindByID(ctx context.Context, id string) (*Document, error)
	FindByGroup(ctx context.Context, groupID string) ([]*Document, error)
	Update(ctx context.Context, d *Document) error
	Delete(ctx context.Context, id string) error
}

type pgDocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) DocumentRepository {
	return &pgDocumentRepository{pool: pool}
}

func (r *pgDocumentRepository) Create(ctx context.Context, d *Document) error {
	query := `
		INSERT INTO documents (group_id, name, size, path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query, d.GroupID, d.Name, d.Size, d.Path).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *pgDocumentRepository) FindByID(ctx context.Context, id string) (*Document, error) {
	query := `
		SELECT id, group_id, name, size, path, created_at, updated_at
		FROM documents WHERE id = $1
	`
	d := &Document{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.GroupID, &d.Name, &d.Size, &d.Path, &d.CreatedAt, &d.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *pgDocumentRepository) FindByGroup(ctx context.Context, groupID string) ([]*Document, error) {
	query := `
		SELECT id, group_id, name, size, path, created_at, updated_at
		FROM documents WHERE group_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*Document
	for rows.Next() {
		d := &Document{}
		if err := rows.Scan(
			&d.ID, &d.GroupID, &d.Name, &d.Size, &d.Path, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}
	return documents, rows.Err()
}

func (r *pgDocumentRepository) Update(ctx context.Context, d *Document) error {
	query := `
		UPDATE documents SET name = $2, size = $3, path = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, d.ID, d.Name, d.Size, d.Path)
	return err
}

func (r *pgDocumentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM documents WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

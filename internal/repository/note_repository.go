package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Note struct {
	ID        string
	GroupID   string
	Title     string
	Content   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NoteRepository interface {
	Create(ctx context.Context, n *Note) error
	FindByID(ctx context.Context, id string) (*Note, error)
	FindByGroup(ctx context.Context, groupID string) ([]*Note, error)
	Update(ctx context.Context, n *Note) error
	Delete(ctx context.Context, id string) error
}

type pgNoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) NoteRepository {
	return &pgNoteRepository{pool: pool}
}

func (r *pgNoteRepository) Create(ctx context.Context, n *Note) error {
	query := `
		INSERT INTO notes (group_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query, n.GroupID, n.Title, n.Content).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

func (r *pgNoteRepository) FindByID(ctx context.Context, id string) (*Note, error) {
	query := `
		SELECT id, group_id, title, content, created_at, updated_at
		FROM notes WHERE id = $1
	`
	n := &Note{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.GroupID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *pgNoteRepository) FindByGroup(ctx context.Context, groupID string) ([]*Note, error) {
	query := `
		SELECT id, group_id, title, content, created_at, updated_at
		FROM notes WHERE group_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*Note
	for rows.Next() {
		n := &Note{}
		if err := rows.Scan(
			&n.ID, &n.GroupID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *pgNoteRepository) Update(ctx context.Context, n *Note) error {
	query := `
		UPDATE notes SET title = $2, content = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, n.ID, n.Title, n.Content)
	return err
}

func (r *pgNoteRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM notes WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

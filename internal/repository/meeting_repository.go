package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Meeting is a meeting record with an attached minutes file.
type Meeting struct {
	ID        string
	GroupID   string
	Title     string
	Name      string
	Size      int64
	Path      string
	Date      *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MeetingRepository interface {
	Create(ctx context.Context, m *Meeting) error
	FindByID(ctx context.Context, id string) (*Meeting, error)
	FindByGroup(ctx context.Context, groupID string) ([]*Meeting, error)
	Update(ctx context.Context, m *Meeting) error
	Delete(ctx context.Context, id string) error
}

type pgMeetingRepository struct {
	pool *pgxpool.Pool
}

func NewMeetingRepository(pool *pgxpool.Pool) MeetingRepository {
	return &pgMeetingRepository{pool: pool}
}

func (r *pgMeetingRepository) Create(ctx context.Context, m *Meeting) error {
	query := `
		INSERT INTO meetings (group_id, title, name, size, path, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query, m.GroupID, m.Title, m.Name, m.Size, m.Path, m.Date).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *pgMeetingRepository) FindByID(ctx context.Context, id string) (*Meeting, error) {
	query := `
		SELECT id, group_id, title, name, size, path, date, created_at, updated_at
		FROM meetings WHERE id = $1
	`
	m := &Meeting{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.GroupID, &m.Title, &m.Name, &m.Size, &m.Path, &m.Date, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgMeetingRepository) FindByGroup(ctx context.Context, groupID string) ([]*Meeting, error) {
	query := `
		SELECT id, group_id, title, name, size, path, date, created_at, updated_at
		FROM meetings WHERE group_id = $1
		ORDER BY date DESC NULLS LAST, created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []*Meeting
	for rows.Next() {
		m := &Meeting{}
		if err := rows.Scan(
			&m.ID, &m.GroupID, &m.Title, &m.Name, &m.Size, &m.Path, &m.Date, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func (r *pgMeetingRepository) Update(ctx context.Context, m *Meeting) error {
	query := `
		UPDATE meetings SET title = $2, name = $3, size = $4, path = $5, date = $6, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, m.ID, m.Title, m.Name, m.Size, m.Path, m.Date)
	return err
}

func (r *pgMeetingRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM meetings WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

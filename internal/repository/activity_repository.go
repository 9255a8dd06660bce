package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Activity struct {
	ID          string
	GroupID     string
	Name        string
	Description *string
	Date        *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ActivityRepository interface {
	Create(ctx context.Context, a *Activity) error
	FindByID(ctx context.Context, id string) (*Activity, error)
	FindByGroup(ctx context.Context, groupID string) ([]*Activity, error)
	Update(ctx context.Context, a *Activity) error
	Delete(ctx context.Context, id string) error
}

type pgActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &pgActivityRepository{pool: pool}
}

func (r *pgActivityRepository) Create(ctx context.Context, a *Activity) error {
	query := `
		INSERT INTO activities (group_id, title, description, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query, a.GroupID, a.Name, a.Description, a.Date).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *pgActivityRepository) FindByID(ctx context.Context, id string) (*Activity, error) {
	query := `
		SELECT id, group_id, title, description, date, created_at, updated_at
		FROM activities WHERE id = $1
	`
	a := &Activity{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.GroupID, &a.Name, &a.Description, &a.Date, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *pgActivityRepository) FindByGroup(ctx context.Context, groupID string) ([]*Activity, error) {
	query := `
		SELECT id, group_id, title, description, date, created_at, updated_at
		FROM activities WHERE group_id = $1
		ORDER BY date DESC NULLS LAST, created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*Activity
	for rows.Next() {
		a := &Activity{}
		if err := rows.Scan(
			&a.ID, &a.GroupID, &a.Name, &a.Description, &a.Date, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (r *pgActivityRepository) Update(ctx context.Context, a *Activity) error {
	query := `
		UPDATE activities SET title = $2, description = $3, date = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, a.ID, a.Name, a.Description, a.Date)
	return err
}

func (r *pgActivityRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM activities WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

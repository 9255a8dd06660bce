package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TypeUser struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TypeUserRepository interface {
	Create(ctx context.Context, t *TypeUser) error
	FindByID(ctx context.Context, id string) (*TypeUser, error)
	FindByName(ctx context.Context, name string) (*TypeUser, error)
	FindAll(ctx context.Context) ([]*TypeUser, error)
	Update(ctx context.Context, t *TypeUser) error
	Delete(ctx context.Context, id string) error
}

type pgTypeUserRepository struct {
	pool *pgxpool.Pool
}

func NewTypeUserRepository(pool *pgxpool.Pool) TypeUserRepository {
	return &pgTypeUserRepository{pool: pool}
}

func (r *pgTypeUserRepository) Create(ctx context.Context, t *TypeUser) error {
	query := `
		INSERT INTO type_users (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query, t.Name).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *pgTypeUserRepository) FindByID(ctx context.Context, id string) (*TypeUser, error) {
	query := `SELECT id, name, created_at, updated_at FROM type_users WHERE id = $1`
	t := &TypeUser{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgTypeUserRepository) FindByName(ctx context.Context, name string) (*TypeUser, error) {
	query := `SELECT id, name, created_at, updated_at FROM type_users WHERE LOWER(name) = LOWER($1)`
	t := &TypeUser{}
	err := r.pool.QueryRow(ctx, query, name).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgTypeUserRepository) FindAll(ctx context.Context) ([]*TypeUser, error) {
	query := `SELECT id, name, created_at, updated_at FROM type_users ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var typeUsers []*TypeUser
	for rows.Next() {
		t := &TypeUser{}
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		typeUsers = append(typeUsers, t)
	}
	return typeUsers, rows.Err()
}

func (r *pgTypeUserRepository) Update(ctx context.Context, t *TypeUser) error {
	query := `UPDATE type_users SET name = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, t.ID, t.Name)
	return err
}

func (r *pgTypeUserRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM type_users WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

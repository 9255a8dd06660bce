package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TypeGroup struct {
	ID        string
	Name      string
	Kind      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TypeGroupRepository interface {
	Create(ctx context.Context, t *TypeGroup) error
	CreateTx(ctx context.Context, tx pgx.Tx, t *TypeGroup) error
	FindByID(ctx context.Context, id string) (*TypeGroup, error)
	FindAll(ctx context.Context) ([]*TypeGroup, error)
	Update(ctx context.Context, t *TypeGroup) error
	UpdateTx(ctx context.Context, tx pgx.Tx, t *TypeGroup) error
	Delete(ctx context.Context, id string) error
	DeleteTx(ctx context.Context, tx pgx.Tx, id string) error
}

type pgTypeGroupRepository struct {
	pool *pgxpool.Pool
}

func NewTypeGroupRepository(pool *pgxpool.Pool) TypeGroupRepository {
	return &pgTypeGroupRepository{pool: pool}
}

func (r *pgTypeGroupRepository) Create(ctx context.Context, t *TypeGroup) error {
	query := `
		INSERT INTO type_groups (name, kind)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query, t.Name, t.Kind).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *pgTypeGroupRepository) CreateTx(ctx context.Context, tx pgx.Tx, t *TypeGroup) error {
	query := `
		INSERT INTO type_groups (name, kind)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	return tx.QueryRow(ctx, query, t.Name, t.Kind).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *pgTypeGroupRepository) FindByID(ctx context.Context, id string) (*TypeGroup, error) {
	query := `SELECT id, name, kind, created_at, updated_at FROM type_groups WHERE id = $1`
	t := &TypeGroup{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Kind, &t.CreatedAt, &t.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgTypeGroupRepository) FindAll(ctx context.Context) ([]*TypeGroup, error) {
	query := `SELECT id, name, kind, created_at, updated_at FROM type_groups ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var typeGroups []*TypeGroup
	for rows.Next() {
		t := &TypeGroup{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Kind, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		typeGroups = append(typeGroups, t)
	}
	return typeGroups, rows.Err()
}

func (r *pgTypeGroupRepository) Update(ctx context.Context, t *TypeGroup) error {
	query := `UPDATE type_groups SET name = $2, kind = $3, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, t.ID, t.Name, t.Kind)
	return err
}

func (r *pgTypeGroupRepository) UpdateTx(ctx context.Context, tx pgx.Tx, t *TypeGroup) error {
	query := `UPDATE type_groups SET name = $2, kind = $3, updated_at = NOW() WHERE id = $1`
	_, err := tx.Exec(ctx, query, t.ID, t.Name, t.Kind)
	return err
}

func (r *pgTypeGroupRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM type_groups WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *pgTypeGroupRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id string) error {
	query := `DELETE FROM type_groups WHERE id = $1`
	_, err := tx.Exec(ctx, query, id)
	return err
}

package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Representative is the contact record owned by a group. It is distinct
// from the representative role granted through group_has_representatives.
type Representative struct {
	ID        string
	Name      string
	Email     string
	UserID    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RepresentativeRepository interface {
	Create(ctx context.Context, rep *Representative) error
	CreateTx(ctx context.Context, tx pgx.Tx, rep *Representative) error
	FindByID(ctx context.Context, id string) (*Representative, error)
	FindPendingByEmail(ctx context.Context, email string) (*Representative, error)
	Update(ctx context.Context, rep *Representative) error
	UpdateTx(ctx context.Context, tx pgx.Tx, rep *Representative) error
	LinkUserTx(ctx context.Context, tx pgx.Tx, id, userID string) error
	Delete(ctx context.Context, id string) error
	DeleteTx(ctx context.Context, tx pgx.Tx, id string) error
}

type pgRepresentativeRepository struct {
	pool *pgxpool.Pool
}

func NewRepresentativeRepository(pool *pgxpool.Pool) RepresentativeRepository {
	return &pgRepresentativeRepository{pool: pool}
}

func scanRepresentative(row pgx.Row) (*Representative, error) {
	rep := &Representative{}
	err := row.Scan(&rep.ID, &rep.Name, &rep.Email, &rep.UserID, &rep.CreatedAt, &rep.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *pgRepresentativeRepository) Create(ctx context.Context, rep *Representative) error {
	query := `
		INSERT INTO representatives (name, email, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query, rep.Name, rep.Email, rep.UserID).
		Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
}

func (r *pgRepresentativeRepository) CreateTx(ctx context.Context, tx pgx.Tx, rep *Representative) error {
	query := `
		INSERT INTO representatives (name, email, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return tx.QueryRow(ctx, query, rep.Name, rep.Email, rep.UserID).
		Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
}

func (r *pgRepresentativeRepository) FindByID(ctx context.Context, id string) (*Representative, error) {
	query := `
		SELECT id, name, email, user_id, created_at, updated_at
		FROM representatives WHERE id = $1
	`
	return scanRepresentative(r.pool.QueryRow(ctx, query, id))
}

// FindPendingByEmail returns a representative contact that has not been
// linked to a platform user yet. Used at registration to resolve the new
// user's role.
func (r *pgRepresentativeRepository) FindPendingByEmail(ctx context.Context, email string) (*Representative, error) {
	query := `
		SELECT id, name, email, user_id, created_at, updated_at
		FROM representatives
		WHERE LOWER(email) = LOWER($1) AND user_id IS NULL
		LIMIT 1
	`
	return scanRepresentative(r.pool.QueryRow(ctx, query, email))
}

func (r *pgRepresentativeRepository) Update(ctx context.Context, rep *Representative) error {
	query := `
		UPDATE representatives SET name = $2, email = $3, user_id = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, rep.ID, rep.Name, rep.Email, rep.UserID)
	return err
}

func (r *pgRepresentativeRepository) UpdateTx(ctx context.Context, tx pgx.Tx, rep *Representative) error {
	query := `
		UPDATE representatives SET name = $2, email = $3, user_id = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := tx.Exec(ctx, query, rep.ID, rep.Name, rep.Email, rep.UserID)
	return err
}

func (r *pgRepresentativeRepository) LinkUserTx(ctx context.Context, tx pgx.Tx, id, userID string) error {
	query := `UPDATE representatives SET user_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := tx.Exec(ctx, query, id, userID)
	return err
}

func (r *pgRepresentativeRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM representatives WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *pgRepresentativeRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id string) error {
	query := `DELETE FROM representatives WHERE id = $1`
	_, err := tx.Exec(ctx, query, id)
	return err
}

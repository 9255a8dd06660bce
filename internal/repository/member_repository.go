package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Member struct {
	ID            string
	Name          string
	Email         string
	Phone         *string
	Role          *string
	EntryDate     *time.Time
	DepartureDate *time.Time
	UserID        *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type MemberHasGroup struct {
	ID        string
	MemberID  string
	GroupID   string
	CreatedAt time.Time
}

type MemberRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, m *Member) error
	AddToGroupTx(ctx context.Context, tx pgx.Tx, memberID, groupID string) error
	ExistsInGroupTx(ctx context.Context, tx pgx.Tx, groupID, email string) (bool, error)
	FindByID(ctx context.Context, id string) (*Member, error)
	FindByGroup(ctx context.Context, groupID string) ([]*Member, error)
	FindPendingByEmail(ctx context.Context, email string) (*Member, error)
	Update(ctx context.Context, m *Member) error
	LinkUserTx(ctx context.Context, tx pgx.Tx, id, userID string) error
	Delete(ctx context.Context, id string) error
	DeleteByGroupTx(ctx context.Context, tx pgx.Tx, groupID string) error
}

type pgMemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &pgMemberRepository{pool: pool}
}

func scanMember(row pgx.Row) (*Member, error) {
	m := &Member{}
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.Role,
		&m.EntryDate, &m.DepartureDate, &m.UserID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgMemberRepository) CreateTx(ctx context.Context, tx pgx.Tx, m *Member) error {
	query := `
		INSERT INTO members (name, email, phone, role, entry_date, departure_date, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return tx.QueryRow(ctx, query,
		m.Name, m.Email, m.Phone, m.Role, m.EntryDate, m.DepartureDate, m.UserID,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *pgMemberRepository) AddToGroupTx(ctx context.Context, tx pgx.Tx, memberID, groupID string) error {
	query := `
		INSERT INTO member_has_groups (member_id, group_id)
		VALUES ($1, $2)
		ON CONFLICT (member_id, group_id) DO NOTHING
	`
	_, err := tx.Exec(ctx, query, memberID, groupID)
	return err
}

// ExistsInGroupTx reports whether the email already belongs to a member of
// the group. Runs inside the batch-create transaction so earlier inserts in
// the same batch are visible.
func (r *pgMemberRepository) ExistsInGroupTx(ctx context.Context, tx pgx.Tx, groupID, email string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM members m
			JOIN member_has_groups mg ON mg.member_id = m.id
			WHERE mg.group_id = $1 AND LOWER(m.email) = LOWER($2)
		)
	`
	var exists bool
	err := tx.QueryRow(ctx, query, groupID, email).Scan(&exists)
	return exists, err
}

func (r *pgMemberRepository) FindByID(ctx context.Context, id string) (*Member, error) {
	query := `
		SELECT id, name, email, phone, role, entry_date, departure_date, user_id, created_at, updated_at
		FROM members WHERE id = $1
	`
	return scanMember(r.pool.QueryRow(ctx, query, id))
}

func (r *pgMemberRepository) FindByGroup(ctx context.Context, groupID string) ([]*Member, error) {
	query := `
		SELECT m.id, m.name, m.email, m.phone, m.role, m.entry_date, m.departure_date,
		       m.user_id, m.created_at, m.updated_at
		FROM members m
		JOIN member_has_groups mg ON mg.member_id = m.id
		WHERE mg.group_id = $1
		ORDER BY m.name
	`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Phone, &m.Role,
			&m.EntryDate, &m.DepartureDate, &m.UserID, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *pgMemberRepository) FindPendingByEmail(ctx context.Context, email string) (*Member, error) {
	query := `
		SELECT id, name, email, phone, role, entry_date, departure_date, user_id, created_at, updated_at
		FROM members
		WHERE LOWER(email) = LOWER($1) AND user_id IS NULL
		LIMIT 1
	`
	return scanMember(r.pool.QueryRow(ctx, query, email))
}

func (r *pgMemberRepository) Update(ctx context.Context, m *Member) error {
	query := `
		UPDATE members SET role = $2, phone = $3, entry_date = $4, departure_date = $5, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, m.ID, m.Role, m.Phone, m.EntryDate, m.DepartureDate)
	return err
}

func (r *pgMemberRepository) LinkUserTx(ctx context.Context, tx pgx.Tx, id, userID string) error {
	query := `UPDATE members SET user_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := tx.Exec(ctx, query, id, userID)
	return err
}

func (r *pgMemberRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM members WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// DeleteByGroupTx removes the group's join rows and any member left without
// a group. Runs first in the group-delete transaction.
func (r *pgMemberRepository) DeleteByGroupTx(ctx context.Context, tx pgx.Tx, groupID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM member_has_groups WHERE group_id = $1`, groupID); err != nil {
		return err
	}
	query := `
		DELETE FROM members m
		WHERE NOT EXISTS (SELECT 1 FROM member_has_groups mg WHERE mg.member_id = m.id)
	`
	_, err := tx.Exec(ctx, query)
	return err
}

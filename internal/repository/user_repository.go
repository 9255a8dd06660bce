package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User struct {
	ID           string
	Name         string
	Email        string
	Password     string
	TypeUserID   string
	TypeUserName string
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ApiToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type PasswordResetToken struct {
	Email     string
	Token     string
	CreatedAt time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	CreateTx(ctx context.Context, tx pgx.Tx, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByIDAny(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByEmailAny(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID, hash string) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error

	SaveApiToken(ctx context.Context, token *ApiToken) error
	FindApiToken(ctx context.Context, token string) (*ApiToken, error)
	FindApiTokenByUser(ctx context.Context, userID string) (*ApiToken, error)
	DeleteApiTokenByUser(ctx context.Context, userID string) error
	DeleteExpiredApiTokens(ctx context.Context) (int64, error)

	SavePasswordResetToken(ctx context.Context, t *PasswordResetToken) error
	FindPasswordResetToken(ctx context.Context, token string) (*PasswordResetToken, error)
	DeletePasswordResetTokens(ctx context.Context, email string) error
	DeleteStalePasswordResetTokens(ctx context.Context, olderThan time.Duration) (int64, error)
}

type pgUserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgUserRepository{pool: pool}
}

const userSelect = `
	SELECT u.id, u.name, u.email, u.password, u.type_user_id, t.name,
	       u.deleted_at, u.created_at, u.updated_at
	FROM users u
	JOIN type_users t ON u.type_user_id = t.id
`

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.TypeUserID,
		&user.TypeUserName, &user.DeletedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *pgUserRepository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (name, email, password, type_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.Password, user.TypeUserID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *pgUserRepository) CreateTx(ctx context.Context, tx pgx.Tx, user *User) error {
	query := `
		INSERT INTO users (name, email, password, type_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return tx.QueryRow(ctx, query,
		user.Name, user.Email, user.Password, user.TypeUserID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := userSelect + `WHERE u.id = $1 AND u.deleted_at IS NULL`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *pgUserRepository) FindByIDAny(ctx context.Context, id string) (*User, error) {
	query := userSelect + `WHERE u.id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := userSelect + `WHERE LOWER(u.email) = LOWER($1) AND u.deleted_at IS NULL`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *pgUserRepository) FindByEmailAny(ctx context.Context, email string) (*User, error) {
	query := userSelect + `WHERE LOWER(u.email) = LOWER($1)`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *pgUserRepository) FindAll(ctx context.Context) ([]*User, error) {
	query := userSelect + `WHERE u.deleted_at IS NULL ORDER BY u.name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.Password, &user.TypeUserID,
			&user.TypeUserName, &user.DeletedAt, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *pgUserRepository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users SET name = $2, email = $3, type_user_id = $4, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	_, err := r.pool.Exec(ctx, query, user.ID, user.Name, user.Email, user.TypeUserID)
	return err
}

func (r *pgUserRepository) UpdatePassword(ctx context.Context, userID, hash string) error {
	query := `UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, userID, hash)
	return err
}

func (r *pgUserRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE users SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *pgUserRepository) Restore(ctx context.Context, id string) error {
	query := `UPDATE users SET deleted_at = NULL, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// ============================================
// API Tokens (one row per user)
// ============================================

func (r *pgUserRepository) SaveApiToken(ctx context.Context, token *ApiToken) error {
	query := `
		INSERT INTO api_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET token = $2, expires_at = $3, created_at = NOW()
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query, token.UserID, token.Token, token.ExpiresAt).
		Scan(&token.ID, &token.CreatedAt)
}

func (r *pgUserRepository) FindApiToken(ctx context.Context, token string) (*ApiToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM api_tokens WHERE token = $1
	`
	t := &ApiToken{}
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgUserRepository) FindApiTokenByUser(ctx context.Context, userID string) (*ApiToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM api_tokens WHERE user_id = $1
	`
	t := &ApiToken{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgUserRepository) DeleteApiTokenByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM api_tokens WHERE user_id = $1`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

func (r *pgUserRepository) DeleteExpiredApiTokens(ctx context.Context) (int64, error) {
	query := `DELETE FROM api_tokens WHERE expires_at < NOW()`
	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ============================================
// Password Reset Tokens
// ============================================

func (r *pgUserRepository) SavePasswordResetToken(ctx context.Context, t *PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (email, token)
		VALUES ($1, $2)
		RETURNING created_at
	`
	return r.pool.QueryRow(ctx, query, t.Email, t.Token).Scan(&t.CreatedAt)
}

func (r *pgUserRepository) FindPasswordResetToken(ctx context.Context, token string) (*PasswordResetToken, error) {
	query := `
		SELECT email, token, created_at
		FROM password_reset_tokens WHERE token = $1
	`
	t := &PasswordResetToken{}
	err := r.pool.QueryRow(ctx, query, token).Scan(&t.Email, &t.Token, &t.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgUserRepository) DeletePasswordResetTokens(ctx context.Context, email string) error {
	query := `DELETE FROM password_reset_tokens WHERE LOWER(email) = LOWER($1)`
	_, err := r.pool.Exec(ctx, query, email)
	return err
}

func (r *pgUserRepository) DeleteStalePasswordResetTokens(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `DELETE FROM password_reset_tokens WHERE created_at < $1`
	tag, err := r.pool.Exec(ctx, query, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Group struct {
	ID               string
	Name             string
	Description      *string
	TypeGroupID      string
	RepresentativeID string
	CreatorUserID    string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Loaded by FindByID
	TypeGroup      *TypeGroup
	Representative *Representative
}

type GroupHasRepresentative struct {
	ID        string
	GroupID   string
	UserID    string
	CreatedAt time.Time
}

type GroupRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, g *Group) error
	FindByID(ctx context.Context, id string) (*Group, error)
	FindAll(ctx context.Context) ([]*Group, error)
	FindByFilters(ctx context.Context, filters map[string]string) ([]*Group, error)
	Update(ctx context.Context, g *Group) error
	UpdateTx(ctx context.Context, tx pgx.Tx, g *Group) error
	DeleteTx(ctx context.Context, tx pgx.Tx, id string) error

	AddRepresentativeTx(ctx context.Context, tx pgx.Tx, groupID, userID string) error
	RemoveRepresentativeTx(ctx context.Context, tx pgx.Tx, groupID, userID string) error
	FindRepresentativeUserIDs(ctx context.Context, groupID string) ([]string, error)
}

type pgGroupRepository struct {
	pool *pgxpool.Pool
}

func NewGroupRepository(pool *pgxpool.Pool) GroupRepository {
	return &pgGroupRepository{pool: pool}
}

func (r *pgGroupRepository) CreateTx(ctx context.Context, tx pgx.Tx, g *Group) error {
	query := `
		INSERT INTO groups (name, description, type_group_id, representative_id, creator_user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return tx.QueryRow(ctx, query,
		g.Name, g.Description, g.TypeGroupID, g.RepresentativeID, g.CreatorUserID,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (r *pgGroupRepository) FindByID(ctx context.Context, id string) (*Group, error) {
	query := `
		SELECT g.id, g.name, g.description, g.type_group_id, g.representative_id,
		       g.creator_user_id, g.created_at, g.updated_at,
		       t.id, t.name, t.kind,
		       rep.id, rep.name, rep.email, rep.user_id
		FROM groups g
		JOIN type_groups t ON g.type_group_id = t.id
		JOIN representatives rep ON g.representative_id = rep.id
		WHERE g.id = $1
	`
	g := &Group{TypeGroup: &TypeGroup{}, Representative: &Representative{}}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.Name, &g.Description, &g.TypeGroupID, &g.RepresentativeID,
		&g.CreatorUserID, &g.CreatedAt, &g.UpdatedAt,
		&g.TypeGroup.ID, &g.TypeGroup.Name, &g.TypeGroup.Kind,
		&g.Representative.ID, &g.Representative.Name, &g.Representative.Email, &g.Representative.UserID,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *pgGroupRepository) FindAll(ctx context.Context) ([]*Group, error) {
	return r.FindByFilters(ctx, nil)
}

// FindByFilters accepts a whitelisted filter map. Unknown keys are ignored;
// an empty result is not an error.
func (r *pgGroupRepository) FindByFilters(ctx context.Context, filters map[string]string) ([]*Group, error) {
	query := `
		SELECT g.id, g.name, g.description, g.type_group_id, g.representative_id,
		       g.creator_user_id, g.created_at, g.updated_at
		FROM groups g
		JOIN type_groups t ON g.type_group_id = t.id
	`
	var conditions []string
	var args []interface{}

	addFilter := func(cond string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if v, ok := filters["name"]; ok && v != "" {
		addFilter("g.name ILIKE $%d", "%"+v+"%")
	}
	if v, ok := filters["type_group_id"]; ok && v != "" {
		addFilter("g.type_group_id = $%d", v)
	}
	if v, ok := filters["kind"]; ok && v != "" {
		addFilter("t.kind = $%d", v)
	}
	if v, ok := filters["creator_user_id"]; ok && v != "" {
		addFilter("g.creator_user_id = $%d", v)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY g.name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		g := &Group{}
		if err := rows.Scan(
			&g.ID, &g.Name, &g.Description, &g.TypeGroupID, &g.RepresentativeID,
			&g.CreatorUserID, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *pgGroupRepository) Update(ctx context.Context, g *Group) error {
	query := `
		UPDATE groups SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, g.ID, g.Name, g.Description)
	return err
}

func (r *pgGroupRepository) UpdateTx(ctx context.Context, tx pgx.Tx, g *Group) error {
	query := `
		UPDATE groups SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := tx.Exec(ctx, query, g.ID, g.Name, g.Description)
	return err
}

func (r *pgGroupRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id string) error {
	query := `DELETE FROM groups WHERE id = $1`
	_, err := tx.Exec(ctx, query, id)
	return err
}

// ============================================
// Representative grants (authorization set)
// ============================================

func (r *pgGroupRepository) AddRepresentativeTx(ctx context.Context, tx pgx.Tx, groupID, userID string) error {
	query := `
		INSERT INTO group_has_representatives (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`
	_, err := tx.Exec(ctx, query, groupID, userID)
	return err
}

func (r *pgGroupRepository) RemoveRepresentativeTx(ctx context.Context, tx pgx.Tx, groupID, userID string) error {
	query := `DELETE FROM group_has_representatives WHERE group_id = $1 AND user_id = $2`
	_, err := tx.Exec(ctx, query, groupID, userID)
	return err
}

func (r *pgGroupRepository) FindRepresentativeUserIDs(ctx context.Context, groupID string) ([]string, error) {
	query := `SELECT user_id FROM group_has_representatives WHERE group_id = $1`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// RoleStorage роли пользователей (таблица user_roles)
type RoleStorage interface {
	HasRole(ctx context.Context, userID int64, role string) (bool, error)
	GrantRole(ctx context.Context, userID int64, role string) error
}

type roleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) RoleStorage {
	return &roleRepository{db: db}
}

func (r *roleRepository) HasRole(ctx context.Context, userID int64, role string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)", userID, role,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check role: %w", err)
	}
	return exists, nil
}

// GrantRole повторная выдача той же роли не считается ошибкой
func (r *roleRepository) GrantRole(ctx context.Context, userID int64, role string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_roles (id, user_id, role) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, role) DO NOTHING`,
		uuid.New(), userID, role,
	)
	if err != nil {
		return fmt.Errorf("failed to grant role: %w", err)
	}
	return nil
}

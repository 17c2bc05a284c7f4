package repository

import (
	"context"
	"time"
)

// EnsureRole 保证角色存在，重复调用是幂等的。
func (r *Repository) EnsureRole(name string) error {
	query := `
		INSERT INTO roles (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, name)
	return err
}

// ResolveRoleID 按符号名解析角色的数值 id，角色不存在时返回 sql.ErrNoRows。
func (r *Repository) ResolveRoleID(name string) (int32, error) {
	query := `
		SELECT id
		FROM roles
		WHERE name = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var id int32
	if err := r.dbpool.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/sysu-ecnc-dev/student-manager/backend/internal/domain"
)

// 学生相关的语句都自带角色过滤：role_id 通过子查询按符号名解析，
// 过滤和变更在同一条语句里完成，不做先查后改。
// 没有命中任何行时统一向上抛 sql.ErrNoRows，由业务层翻译成 NotFound。

func (r *Repository) FindStudents(filters domain.StudentFilters) ([]*domain.Student, error) {
	query := `
		SELECT id, email, full_name, class, section, roll, is_active, reviewer_id, created_at, updated_at
		FROM users
		WHERE role_id = (SELECT id FROM roles WHERE name = $1) AND is_active = TRUE
	`

	args := []any{domain.RoleStudent}
	if filters.Name != "" {
		args = append(args, "%"+filters.Name+"%")
		query += ` AND full_name ILIKE $` + strconv.Itoa(len(args))
	}
	if filters.Class != "" {
		args = append(args, filters.Class)
		query += ` AND class = $` + strconv.Itoa(len(args))
	}
	if filters.Section != "" {
		args = append(args, filters.Section)
		query += ` AND section = $` + strconv.Itoa(len(args))
	}
	if filters.Roll != "" {
		args = append(args, filters.Roll)
		query += ` AND roll = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]*domain.Student, 0)
	for rows.Next() {
		student := &domain.Student{}
		dst := []any{&student.ID, &student.Email, &student.Name, &student.Class, &student.Section, &student.Roll, &student.IsActive, &student.ReviewerID, &student.CreatedAt, &student.UpdatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// UpsertStudent 按邮箱登记学生：不存在则插入，已存在且角色相同则更新资料。
// 冲突更新不会触碰 password_hash 和 is_active；邮箱被非学生账号占用时
// WHERE 子句让整条语句不返回任何行，调用方会拿到 sql.ErrNoRows。
func (r *Repository) UpsertStudent(student *domain.Student) (bool, error) {
	// xmax = 0 说明该行是本条语句新插入的，冲突更新的行不满足这个条件
	query := `
		INSERT INTO users (email, password_hash, full_name, class, section, roll, role_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE
		SET
			full_name = EXCLUDED.full_name,
			class = EXCLUDED.class,
			section = EXCLUDED.section,
			roll = EXCLUDED.roll,
			updated_at = now()
		WHERE users.role_id = EXCLUDED.role_id
		RETURNING id, is_active, reviewer_id, created_at, updated_at, (xmax = 0)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	created := false
	args := []any{student.Email, student.PasswordHash, student.Name, student.Class, student.Section, student.Roll, student.RoleID}
	dst := []any{&student.ID, &student.IsActive, &student.ReviewerID, &student.CreatedAt, &student.UpdatedAt, &created}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return false, err
	}

	return created, nil
}

func (r *Repository) FindStudentByID(id int64) (*domain.Student, error) {
	query := `
		SELECT email, full_name, class, section, roll, is_active, reviewer_id, created_at, updated_at
		FROM users
		WHERE id = $1 AND role_id = (SELECT id FROM roles WHERE name = $2) AND is_active = TRUE
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	student := &domain.Student{ID: id}
	dst := []any{&student.Email, &student.Name, &student.Class, &student.Section, &student.Roll, &student.IsActive, &student.ReviewerID, &student.CreatedAt, &student.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id, domain.RoleStudent).Scan(dst...); err != nil {
		return nil, err
	}

	return student, nil
}

// UpdateStudentFields 按补丁更新学生资料并返回更新后的行。
// COALESCE 让未提供的字段保持原值，部分更新不需要先把行读出来。
func (r *Repository) UpdateStudentFields(id int64, patch *domain.StudentUpdate) (*domain.Student, error) {
	query := `
		UPDATE users
		SET
			email = COALESCE($1, email),
			full_name = COALESCE($2, full_name),
			class = COALESCE($3, class),
			section = COALESCE($4, section),
			roll = COALESCE($5, roll),
			updated_at = now()
		WHERE id = $6 AND role_id = (SELECT id FROM roles WHERE name = $7) AND is_active = TRUE
		RETURNING email, full_name, class, section, roll, is_active, reviewer_id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	student := &domain.Student{ID: id}
	args := []any{patch.Email, patch.Name, patch.Class, patch.Section, patch.Roll, id, domain.RoleStudent}
	dst := []any{&student.Email, &student.Name, &student.Class, &student.Section, &student.Roll, &student.IsActive, &student.ReviewerID, &student.CreatedAt, &student.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return nil, err
	}

	return student, nil
}

// SetStudentActive 启用或停用学生并记录操作者。
// 有意不按当前 is_active 过滤：停用的学生可以重新启用，
// 对已停用学生再次停用也不算失败。
func (r *Repository) SetStudentActive(id int64, active bool, reviewerID int64) (*domain.Student, error) {
	query := `
		UPDATE users
		SET is_active = $1, reviewer_id = $2, updated_at = now()
		WHERE id = $3 AND role_id = (SELECT id FROM roles WHERE name = $4)
		RETURNING email, full_name, class, section, roll, is_active, reviewer_id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	student := &domain.Student{ID: id}
	args := []any{active, reviewerID, id, domain.RoleStudent}
	dst := []any{&student.Email, &student.Name, &student.Class, &student.Section, &student.Roll, &student.IsActive, &student.ReviewerID, &student.CreatedAt, &student.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return nil, err
	}

	return student, nil
}

package domain

import "time"

// RoleStudent 是学生角色在 roles 表中的符号名。
// 业务代码只依赖这个名字，角色的数值 id 永远在存储层内部解析。
const RoleStudent = "student"

type Student struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Class        string    `json:"class"`
	Section      string    `json:"section"`
	Roll         string    `json:"roll"`
	RoleID       int32     `json:"-"`
	IsActive     bool      `json:"isActive"`
	ReviewerID   *int64    `json:"reviewerId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewStudent 是通过校验后的登记载荷，邮箱已经规范化。
type NewStudent struct {
	Email   string
	Name    string
	Class   string
	Section string
	Roll    string
}

// StudentUpdate 是通过校验后的部分更新载荷，nil 表示对应字段保持原值。
type StudentUpdate struct {
	Email   *string
	Name    *string
	Class   *string
	Section *string
	Roll    *string
}

// StudentFilters 是列表与导出共用的筛选条件，空串表示不过滤。
// Name 按包含匹配，其余字段按相等匹配。
type StudentFilters struct {
	Name    string
	Class   string
	Section string
	Roll    string
}

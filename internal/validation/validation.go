package validation

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/sysu-ecnc-dev/student-manager/backend/internal/domain"
)

// 这个包里的校验都是纯函数：不碰存储、不产生副作用，
// 失败时统一返回带分类的 *domain.Error。

// ValidateID 把路径里的学生标识解析成正整数。
func ValidateID(raw string) (int64, error) {
	if raw == "" {
		return 0, domain.NewInvalidArgument("缺少学生 ID")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewInvalidArgument("学生 ID 必须为十进制整数")
	}
	if id <= 0 {
		return 0, domain.NewInvalidArgument("学生 ID 必须为正整数")
	}

	return id, nil
}

// 只做结构性检查：@ 前后非空，@ 之后必须出现「.」且两侧非空。
// 有意不做完整的 RFC 校验，避免把少见但合法的地址拒之门外。
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail 去掉首尾空白、统一小写，然后做最小的格式检查。
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", domain.NewInvalidArgument("邮箱不能为空")
	}
	if !emailPattern.MatchString(email) {
		return "", domain.NewInvalidArgument("邮箱格式不正确")
	}

	return email, nil
}

// CreatePayload 是登记学生的原始请求体，指针用来区分「未提供」和空串。
type CreatePayload struct {
	Email   *string `json:"email" validate:"required"`
	Name    *string `json:"name"`
	Class   *string `json:"class"`
	Section *string `json:"section"`
	Roll    *string `json:"roll"`
}

func (p *CreatePayload) empty() bool {
	return p == nil || (p.Email == nil && p.Name == nil && p.Class == nil && p.Section == nil && p.Roll == nil)
}

// ValidateCreate 要求请求体非空且带有合法邮箱。
// 其余字段对业务层是不透明的：原样透传，不做任何内容检查。
func ValidateCreate(p *CreatePayload) (*domain.NewStudent, error) {
	if p.empty() {
		return nil, domain.NewInvalidArgument("请求体不能为空")
	}
	if p.Email == nil {
		return nil, domain.NewInvalidArgument("缺少 email 字段")
	}

	email, err := NormalizeEmail(*p.Email)
	if err != nil {
		return nil, err
	}

	in := &domain.NewStudent{Email: email}
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Class != nil {
		in.Class = *p.Class
	}
	if p.Section != nil {
		in.Section = *p.Section
	}
	if p.Roll != nil {
		in.Roll = *p.Roll
	}

	return in, nil
}

// UpdatePayload 是部分更新的原始请求体。这里没有 id 字段：
// 请求体里携带的任何标识在解码时会被直接丢弃，资源只由路径决定。
type UpdatePayload struct {
	Email   *string `json:"email"`
	Name    *string `json:"name"`
	Class   *string `json:"class"`
	Section *string `json:"section"`
	Roll    *string `json:"roll"`
}

func (p *UpdatePayload) empty() bool {
	return p == nil || (p.Email == nil && p.Name == nil && p.Class == nil && p.Section == nil && p.Roll == nil)
}

// ValidateUpdate 只要求请求体非空；email 如果出现则必须合法。
func ValidateUpdate(p *UpdatePayload) (*domain.StudentUpdate, error) {
	if p.empty() {
		return nil, domain.NewInvalidArgument("请求体不能为空")
	}

	patch := &domain.StudentUpdate{
		Name:    p.Name,
		Class:   p.Class,
		Section: p.Section,
		Roll:    p.Roll,
	}
	if p.Email != nil {
		email, err := NormalizeEmail(*p.Email)
		if err != nil {
			return nil, err
		}
		patch.Email = &email
	}

	return patch, nil
}

// StatusPayload 保留 status 的原始 JSON，这样既能区分「缺少字段」
// 和「类型不对」，也不会把 null 误当成 false。
type StatusPayload struct {
	Status json.RawMessage `json:"status"`
}

// ValidateStatus 要求 status 必须是严格的 JSON 布尔值。
func ValidateStatus(p *StatusPayload) (bool, error) {
	if p == nil || len(p.Status) == 0 {
		return false, domain.NewInvalidArgument("缺少 status 字段")
	}
	// json.Unmarshal 会把 null 当成无操作并返回 nil，这里必须显式挡掉
	if string(p.Status) == "null" {
		return false, domain.NewInvalidArgument("status 字段必须为布尔值")
	}

	var status bool
	if err := json.Unmarshal(p.Status, &status); err != nil {
		return false, domain.NewInvalidArgument("status 字段必须为布尔值")
	}

	return status, nil
}

// RequireCaller 确认适配层已经把调用者身份附加到请求上。
// 身份缺失必须在任何存储访问发生之前拦截。
func RequireCaller(callerID int64) (int64, error) {
	if callerID <= 0 {
		return 0, domain.NewUnauthenticated("用户未登录")
	}
	return callerID, nil
}

package validation

import (
	"encoding/json"
	"testing"

	"github.com/sysu-ecnc-dev/student-manager/backend/internal/domain"
)

func mustBeInvalidArgument(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("期望返回错误，实际成功")
	}
	if !domain.IsKind(err, domain.ErrInvalidArgument) {
		t.Fatalf("期望 invalid_argument，实际 %v", err)
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{"正常的 ID", "42", 42, false},
		{"带正号", "+7", 7, false},
		{"前导零", "007", 7, false},
		{"零", "0", 0, true},
		{"负数", "-3", 0, true},
		{"小数", "3.14", 0, true},
		{"科学计数法", "1e3", 0, true},
		{"十六进制", "0x1f", 0, true},
		{"非数字", "abc", 0, true},
		{"数字带后缀", "42abc", 0, true},
		{"带空格", " 42", 0, true},
		{"空字符串", "", 0, true},
		{"超出 int64 范围", "92233720368547758080", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateID(tt.raw)
			if tt.wantErr {
				mustBeInvalidArgument(t, err)
				return
			}
			if err != nil {
				t.Fatalf("期望成功，实际报错: %v", err)
			}
			if got != tt.want {
				t.Fatalf("期望 %d，实际 %d", tt.want, got)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"普通邮箱", "zhangsan@example.com", "zhangsan@example.com", false},
		{"去掉首尾空白", "  zhangsan@example.com  ", "zhangsan@example.com", false},
		{"统一小写", "ZhangSan@Example.COM", "zhangsan@example.com", false},
		{"子域名", "a@mail.example.com", "a@mail.example.com", false},
		{"空字符串", "", "", true},
		{"全是空白", "   ", "", true},
		{"没有 @", "zhangsan.example.com", "", true},
		{"@ 后没有点", "zhangsan@example", "", true},
		{"点只在 @ 前", "zhang.san@example", "", true},
		{"@ 前为空", "@example.com", "", true},
		{"@ 后为空", "zhangsan@", "", true},
		{"以点结尾", "zhangsan@example.", "", true},
		{"中间有空格", "zhang san@example.com", "", true},
		{"多个 @", "a@b@example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeEmail(tt.raw)
			if tt.wantErr {
				mustBeInvalidArgument(t, err)
				return
			}
			if err != nil {
				t.Fatalf("期望成功，实际报错: %v", err)
			}
			if got != tt.want {
				t.Fatalf("期望 %q，实际 %q", tt.want, got)
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func TestValidateCreate(t *testing.T) {
	t.Run("完整载荷原样透传", func(t *testing.T) {
		in, err := ValidateCreate(&CreatePayload{
			Email:   strPtr("  LiSi@Example.com "),
			Name:    strPtr("李四"),
			Class:   strPtr("三年级二班"),
			Section: strPtr("A"),
			Roll:    strPtr("20240012"),
		})
		if err != nil {
			t.Fatalf("期望成功，实际报错: %v", err)
		}
		if in.Email != "lisi@example.com" {
			t.Fatalf("邮箱未规范化: %q", in.Email)
		}
		if in.Name != "李四" || in.Class != "三年级二班" || in.Section != "A" || in.Roll != "20240012" {
			t.Fatalf("字段未透传: %+v", in)
		}
	})

	t.Run("未提供的字段取零值", func(t *testing.T) {
		in, err := ValidateCreate(&CreatePayload{Email: strPtr("a@b.cn")})
		if err != nil {
			t.Fatalf("期望成功，实际报错: %v", err)
		}
		if in.Name != "" || in.Class != "" || in.Section != "" || in.Roll != "" {
			t.Fatalf("期望空字段，实际 %+v", in)
		}
	})

	t.Run("空字符串字段允许透传", func(t *testing.T) {
		in, err := ValidateCreate(&CreatePayload{Email: strPtr("a@b.cn"), Name: strPtr("")})
		if err != nil {
			t.Fatalf("期望成功，实际报错: %v", err)
		}
		if in.Name != "" {
			t.Fatalf("期望空姓名，实际 %q", in.Name)
		}
	})

	t.Run("nil 载荷", func(t *testing.T) {
		_, err := ValidateCreate(nil)
		mustBeInvalidArgument(t, err)
	})

	t.Run("空载荷", func(t *testing.T) {
		_, err := ValidateCreate(&CreatePayload{})
		mustBeInvalidArgument(t, err)
	})

	t.Run("缺少邮箱", func(t *testing.T) {
		_, err := ValidateCreate(&CreatePayload{Name: strPtr("李四")})
		mustBeInvalidArgument(t, err)
	})

	t.Run("邮箱格式非法", func(t *testing.T) {
		_, err := ValidateCreate(&CreatePayload{Email: strPtr("not-an-email")})
		mustBeInvalidArgument(t, err)
	})
}

func TestValidateUpdate(t *testing.T) {
	t.Run("只更新提供的字段", func(t *testing.T) {
		patch, err := ValidateUpdate(&UpdatePayload{Name: strPtr("王五")})
		if err != nil {
			t.Fatalf("期望成功，实际报错: %v", err)
		}
		if patch.Name == nil || *patch.Name != "王五" {
			t.Fatalf("姓名未透传: %+v", patch)
		}
		if patch.Email != nil || patch.Class != nil || patch.Section != nil || patch.Roll != nil {
			t.Fatalf("未提供的字段应保持 nil: %+v", patch)
		}
	})

	t.Run("邮箱出现时会被规范化", func(t *testing.T) {
		patch, err := ValidateUpdate(&UpdatePayload{Email: strPtr(" WangWu@Example.com ")})
		if err != nil {
			t.Fatalf("期望成功，实际报错: %v", err)
		}
		if patch.Email == nil || *patch.Email != "wangwu@example.com" {
			t.Fatalf("邮箱未规范化: %+v", patch.Email)
		}
	})

	t.Run("邮箱非法时整体失败", func(t *testing.T) {
		_, err := ValidateUpdate(&UpdatePayload{Name: strPtr("王五"), Email: strPtr("bad")})
		mustBeInvalidArgument(t, err)
	})

	t.Run("空载荷", func(t *testing.T) {
		_, err := ValidateUpdate(&UpdatePayload{})
		mustBeInvalidArgument(t, err)
	})

	t.Run("nil 载荷", func(t *testing.T) {
		_, err := ValidateUpdate(nil)
		mustBeInvalidArgument(t, err)
	})
}

func TestValidateStatus(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    bool
		wantErr bool
	}{
		{"true", `true`, true, false},
		{"false", `false`, false, false},
		{"null", `null`, false, true},
		{"字符串", `"true"`, false, true},
		{"数字", `1`, false, true},
		{"对象", `{"value":true}`, false, true},
		{"数组", `[true]`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateStatus(&StatusPayload{Status: json.RawMessage(tt.raw)})
			if tt.wantErr {
				mustBeInvalidArgument(t, err)
				return
			}
			if err != nil {
				t.Fatalf("期望成功，实际报错: %v", err)
			}
			if got != tt.want {
				t.Fatalf("期望 %v，实际 %v", tt.want, got)
			}
		})
	}

	t.Run("缺少 status 字段", func(t *testing.T) {
		_, err := ValidateStatus(&StatusPayload{})
		mustBeInvalidArgument(t, err)
	})

	t.Run("nil 载荷", func(t *testing.T) {
		_, err := ValidateStatus(nil)
		mustBeInvalidArgument(t, err)
	})
}

func TestRequireCaller(t *testing.T) {
	t.Run("已登录", func(t *testing.T) {
		id, err := RequireCaller(7)
		if err != nil {
			t.Fatalf("期望成功，实际报错: %v", err)
		}
		if id != 7 {
			t.Fatalf("期望 7，实际 %d", id)
		}
	})

	t.Run("身份缺失", func(t *testing.T) {
		_, err := RequireCaller(0)
		if !domain.IsKind(err, domain.ErrUnauthenticated) {
			t.Fatalf("期望 unauthenticated，实际 %v", err)
		}
	})

	t.Run("非法身份", func(t *testing.T) {
		_, err := RequireCaller(-1)
		if !domain.IsKind(err, domain.ErrUnauthenticated) {
			t.Fatalf("期望 unauthenticated，实际 %v", err)
		}
	})
}

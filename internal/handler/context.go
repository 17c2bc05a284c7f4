package handler

import "context"

type ContextKey string

var (
	CallerCtxKey ContextKey = "caller"
)

// TokenCookieName 是登录态 cookie 的名字，签发方和这里必须保持一致。
const TokenCookieName = "__ecnc_student_manager_token"

// callerID 取出 identity 中间件附加的调用者 ID，没有附加时返回 0。
func callerID(ctx context.Context) int64 {
	id, _ := ctx.Value(CallerCtxKey).(int64)
	return id
}

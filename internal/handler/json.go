package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/domain"
)

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("写入响应失败", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

// ErrorResponse 是所有错误出口的统一形状。
type ErrorResponse struct {
	Error string `json:"error"`
}

// serviceError 按错误分类渲染稳定的状态码和 {"error": ...} 响应体。
// 分类之外的错误一律按存储故障处理；内部错误文本只进日志，不回给调用方。
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		domainErr = domain.NewStorageFailure(err)
	}

	h.logger.Log(r.Context(), domainErr.Kind.Severity(), "请求处理失败",
		"method", r.Method, "path", r.URL.Path, "kind", string(domainErr.Kind), "error", domainErr.Error())
	h.writeJSON(w, r, domainErr.Kind.StatusCode(), ErrorResponse{Error: domainErr.Message})
}

// badRequest 把请求体解码和形状校验的错误统一成参数错误。
func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.serviceError(w, r, domain.NewInvalidArgument("请求体格式不正确"))
		return
	}

	h.serviceError(w, r, domain.NewInvalidArgument(validationErrors[0].Translate(h.translator)))
}

package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// ErrorKind 是业务错误的封闭分类，每个分类对应一个稳定的 HTTP 状态码。
// 新增分类必须同时扩展 StatusCode 与 Severity。
type ErrorKind string

const (
	ErrInvalidArgument ErrorKind = "invalid_argument"
	ErrUnauthenticated ErrorKind = "unauthenticated"
	ErrNotFound        ErrorKind = "not_found"
	ErrStorageFailure  ErrorKind = "storage_failure"
)

// StatusCode 返回分类对应的状态码，未知分类按存储故障处理。
func (k ErrorKind) StatusCode() int {
	switch k {
	case ErrInvalidArgument:
		return http.StatusBadRequest
	case ErrUnauthenticated:
		return http.StatusUnauthorized
	case ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Severity 返回分类的日志级别：调用方错误记 WARN，存储故障记 ERROR。
func (k ErrorKind) Severity() slog.Level {
	if k == ErrStorageFailure {
		return slog.LevelError
	}
	return slog.LevelWarn
}

// Error 携带分类、对外提示与内部原因。
// Message 可以原样返回给调用方，Err 只允许进日志，
// 存储层的原始错误文本不允许出现在响应里。
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewInvalidArgument(message string) *Error {
	return &Error{Kind: ErrInvalidArgument, Message: message}
}

func NewUnauthenticated(message string) *Error {
	return &Error{Kind: ErrUnauthenticated, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// NewStorageFailure 包装底层存储错误，对外只暴露统一提示语。
func NewStorageFailure(err error) *Error {
	return &Error{Kind: ErrStorageFailure, Message: "服务器内部错误", Err: err}
}

// IsKind 判断 err 所在的错误链里是否有指定分类的业务错误。
func IsKind(err error, kind ErrorKind) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Kind == kind
}

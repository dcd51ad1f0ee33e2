package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 业务错误码 → HTTP状态码
// 规则：404xx → 404，其余4xxxx → 400，5xxxx及未知 → 500
func (e *AppError) HTTPStatus() int {
	switch {
	case e.Code >= 40400 && e.Code < 40500:
		return http.StatusNotFound
	case e.Code >= 40000 && e.Code < 50000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsInternal 是否为服务端错误（需要记录日志）
func (e *AppError) IsInternal() bool {
	return e.HTTPStatus() == http.StatusInternalServerError
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// WrapWithCode 包装系统错误并指定错误码
// 用途：区分错误来源（数据库、Redis），日志中可按错误码检索
func WrapWithCode(code int, err error, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、资源不存在）
// - 5xxxx: 服务端错误（数据库异常、缓存异常）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 资源错误（40400-40499）
	ErrCodeNotFound     = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound = 40402 // 图书不存在

	// 参数错误（40900-40999）
	ErrCodeBindError        = 40901 // 请求体不是合法JSON
	ErrCodeWrongContentType = 40902 // 请求体不是字段映射
	ErrCodeMissingField     = 40903 // 缺少必填字段
	ErrCodeInvalidField     = 40904 // 不允许的字段
	ErrCodeInvalidValue     = 40905 // 字段值类型错误
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal = New(ErrCodeInternal, "Internal Server Error")

	// 资源不存在
	ErrNotFound     = New(ErrCodeNotFound, "Resource not found")
	ErrBookNotFound = New(ErrCodeBookNotFound, "Book not found")

	// 参数错误
	ErrBindError        = New(ErrCodeBindError, "Malformed JSON payload")
	ErrWrongContentType = New(ErrCodeWrongContentType, "Content-type must be application/json")
)

// MissingField 缺少必填字段
func MissingField(name string) *AppError {
	return New(ErrCodeMissingField, "missing required field: "+name)
}

// InvalidField 字段不在白名单内
func InvalidField(name string) *AppError {
	return New(ErrCodeInvalidField, "invalid field: "+name)
}

// InvalidValue 字段值类型或取值不合法
func InvalidValue(name string) *AppError {
	return New(ErrCodeInvalidValue, "invalid value for field: "+name)
}

// =========================================
// 辅助函数
// =========================================

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}

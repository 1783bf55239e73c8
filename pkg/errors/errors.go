package errors

import (
	"errors"
	"fmt"
)

// Kind 错误类别
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindForeignKeyViolation
	KindUniqueKeyViolation
	KindNotFound
	KindUnauthorized
	KindForbidden
)

// String 返回类别名称
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindForeignKeyViolation:
		return "foreign_key_violation"
	case KindUniqueKeyViolation:
		return "unique_key_violation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// 部门模块错误消息
const (
	MsgEmptyID                   = "部门ID不能为空"
	MsgEmptyRoomNumber           = "房间号不能为空"
	MsgEmptyDepartmentName       = "部门名称不能为空"
	MsgRoleFK                    = "关联的角色或账号不存在"
	MsgPKExist                   = "部门ID已存在"
	MsgDepartmentNameUnavailable = "部门名称不可用"
)

// 预定义错误
var (
	ErrUnauthorized = New(KindUnauthorized, 401, "未授权")
	ErrForbidden    = New(KindForbidden, 403, "禁止访问")
	ErrInternal     = New(KindInternal, 500, "服务器内部错误")
)

// AppError 应用错误
type AppError struct {
	Kind    Kind   `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 解包错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 同类别同消息视为相同错误
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// New 创建新错误
func New(kind Kind, code int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(err error, kind Kind, code int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation 创建验证错误
func Validation(message string) *AppError {
	return New(KindValidation, 422, message)
}

// ForeignKey 创建外键冲突错误
func ForeignKey(err error, message string) *AppError {
	return Wrap(err, KindForeignKeyViolation, 409, message)
}

// UniqueKey 创建唯一键冲突错误
func UniqueKey(err error, message string) *AppError {
	return Wrap(err, KindUniqueKeyViolation, 409, message)
}

// NotFound 创建未找到错误
func NotFound(resource string) *AppError {
	return New(KindNotFound, 404, fmt.Sprintf("%s不存在", resource))
}

// Unauthorized 创建未授权错误
func Unauthorized(message string) *AppError {
	if message == "" {
		message = "未授权"
	}
	return New(KindUnauthorized, 401, message)
}

// Forbidden 创建禁止访问错误
func Forbidden(message string) *AppError {
	if message == "" {
		message = "禁止访问"
	}
	return New(KindForbidden, 403, message)
}

// Is 检查是否为指定错误
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As 类型转换错误
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// KindOf 获取错误链中第一个AppError的类别
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// GetCode 获取错误码
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 500
}

// GetMessage 获取错误消息
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

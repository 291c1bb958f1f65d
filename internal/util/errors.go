package util

import (
	"errors"
	"net/http"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
)

// ErrorKind 业务错误分类，决定 HTTP 状态码
type ErrorKind string

const (
	KindValidation           ErrorKind = "validation"
	KindPermission           ErrorKind = "permission"
	KindReferentialIntegrity ErrorKind = "referential_integrity"
	KindConfiguration        ErrorKind = "configuration"
	KindLockedState          ErrorKind = "locked_state"
	KindNotFound             ErrorKind = "not_found"
	KindCopy                 ErrorKind = "copy"
)

// DomainError 携带面向用户的提示信息，Error() 原样返回
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func ValidationError(msg string) error {
	return &DomainError{Kind: KindValidation, Message: msg}
}

func PermissionError(msg string) error {
	return &DomainError{Kind: KindPermission, Message: msg}
}

func ReferentialIntegrityError(msg string) error {
	return &DomainError{Kind: KindReferentialIntegrity, Message: msg}
}

func ConfigurationError(msg string) error {
	return &DomainError{Kind: KindConfiguration, Message: msg}
}

func LockedStateError(msg string) error {
	return &DomainError{Kind: KindLockedState, Message: msg}
}

func NotFoundError(msg string) error {
	return &DomainError{Kind: KindNotFound, Message: msg}
}

func CopyError(msg string) error {
	return &DomainError{Kind: KindCopy, Message: msg}
}

// IsKind 判断 err 链中是否存在指定分类的业务错误
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

func StatusFor(err error) int {
	var de *DomainError
	if !errors.As(err, &de) {
		if errors.Is(err, ErrPermissionDenied) {
			return http.StatusForbidden
		}
		return http.StatusInternalServerError
	}

	switch de.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindPermission:
		return http.StatusForbidden
	case KindReferentialIntegrity:
		return http.StatusConflict
	case KindConfiguration:
		return http.StatusUnprocessableEntity
	case KindLockedState:
		return http.StatusLocked
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

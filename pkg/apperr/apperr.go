package apperr

import (
	"errors"
	"fmt"
)

// Kind บอกชนิดความผิดพลาดระดับ domain — ชั้น HTTP เอาไป map เป็น status เอง
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindTenantContext
	KindConflict
	KindForbidden
	KindProviderNotImplemented
	KindStorageUnavailable
)

// Error = error กลางของระบบ: Kind สำหรับ map status, Code เป็น snake_case ไว้ให้ client
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

// ----- Constructors -----

func Validation(code, msg string) error {
	return &Error{Kind: KindValidation, Code: code, Message: msg}
}

func NotFound(code string) error {
	return &Error{Kind: KindNotFound, Code: code}
}

func Conflict(code string) error {
	return &Error{Kind: KindConflict, Code: code, Message: "resource was modified concurrently"}
}

func Forbidden(code string) error {
	return &Error{Kind: KindForbidden, Code: code}
}

func TenantContextMissing() error {
	return &Error{Kind: KindTenantContext, Code: "tenant_context_missing", Message: "request has no tenant context"}
}

func ProviderNotImplemented(name string) error {
	return &Error{Kind: KindProviderNotImplemented, Code: "provider_not_implemented",
		Message: fmt.Sprintf("provider %s is not implemented", name)}
}

// StorageUnavailable: durable write ยืนยันไม่ได้ ห้ามตอบสำเร็จ
func StorageUnavailable(err error) error {
	return &Error{Kind: KindStorageUnavailable, Code: "storage_unavailable", Err: err}
}

func Internal(err error) error {
	return &Error{Kind: KindInternal, Code: "internal_error", Err: err}
}

// ----- Inspection -----

func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return "internal_error"
}

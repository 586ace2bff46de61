package domain

import "errors"

// Sentinel kinds for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrStorage      = errors.New("storage unavailable")
)

// Error pairs a sentinel kind with the exact detail string returned to the
// client. Error() is the wire message; errors.Is against the kind selects the
// HTTP status.
type Error struct {
	kind   error
	detail string
}

func (e *Error) Error() string { return e.detail }
func (e *Error) Unwrap() error { return e.kind }

func Unauthorized(detail string) error { return &Error{kind: ErrUnauthorized, detail: detail} }
func Forbidden(detail string) error    { return &Error{kind: ErrForbidden, detail: detail} }
func NotFound(detail string) error     { return &Error{kind: ErrNotFound, detail: detail} }
func Validation(detail string) error   { return &Error{kind: ErrValidation, detail: detail} }
func Storage(detail string) error      { return &Error{kind: ErrStorage, detail: detail} }

package domain

import "errors"

// ErrNotFound is returned by repositories when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindValidation
	KindPasswordMismatch
	KindDuplicateEmail
	KindUserNotFound
	KindNotFound
	KindInvalidCode
	KindCodeExpired
	KindAccountNotVerified
	KindBadCredentials
	KindInvalidToken
	KindMissingField
	KindConflict
)

var kindCodes = map[ErrorKind]string{
	KindUnexpected:         "UNEXPECTED_ERROR",
	KindValidation:         "VALIDATION_ERROR",
	KindPasswordMismatch:   "PASSWORD_MISMATCH",
	KindDuplicateEmail:     "DUPLICATE_EMAIL",
	KindUserNotFound:       "USER_NOT_FOUND",
	KindNotFound:           "NOT_FOUND",
	KindInvalidCode:        "INVALID_CODE",
	KindCodeExpired:        "CODE_EXPIRED",
	KindAccountNotVerified: "ACCOUNT_NOT_VERIFIED",
	KindBadCredentials:     "BAD_CREDENTIALS",
	KindInvalidToken:       "INVALID_TOKEN",
	KindMissingField:       "MISSING_FIELD",
	KindConflict:           "CONFLICT",
}

func (k ErrorKind) String() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return kindCodes[KindUnexpected]
}

// Error is the failure type every service operation returns. Message is safe
// to show to API clients; Err keeps the underlying cause for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns KindUnexpected for errors that are not *Error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

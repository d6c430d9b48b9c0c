package apperror

import "errors"

// Kind classifies a failure independently of the domain that raised it.
type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Conflict
	Forbidden
	InvalidCredentials
	Unauthorized
	TooManyRequests
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "VALIDATION_ERROR"
	case NotFound:
		return "NOT_FOUND"
	case Conflict:
		return "CONFLICT"
	case Forbidden:
		return "FORBIDDEN"
	case InvalidCredentials:
		return "INVALID_CREDENTIALS"
	case Unauthorized:
		return "UNAUTHORIZED"
	case TooManyRequests:
		return "TOO_MANY_REQUESTS"
	}
	return "INTERNAL_ERROR"
}

// =====================================================
// ERROR TYPE
// =====================================================

// Error is a typed domain failure. Sentinels are declared once per domain
// (e.g. book.ErrBookNotFound) and compared with errors.Is.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
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

// Is matches two *Error values by code so that a sentinel still matches after
// Wrap attached a cause to a copy of it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Kind == t.Kind
}

// New creates a sentinel-style error.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap returns a copy of base carrying err as its cause.
func Wrap(base *Error, err error) *Error {
	return &Error{Kind: base.Kind, Code: base.Code, Message: base.Message, Err: err}
}

// Validationf builds an ad-hoc validation failure (malformed body, bad id).
func Validationf(message string, err error) *Error {
	return &Error{Kind: Validation, Code: Validation.String(), Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}

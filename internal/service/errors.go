package service

import (
	"errors"

	"github.com/noah-isme/edgylearn-api/internal/session"
)

var (
	// ErrUnknownAccount is returned when a login email matches no account.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrSessionNotFound is returned for closed or expired sessions.
	ErrSessionNotFound = session.ErrNotFound
	// ErrCourseNotFound is returned when a course id matches nothing.
	ErrCourseNotFound = errors.New("course not found")
	// ErrUserNotFound is returned when a user id matches nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCatalogQuery is returned for malformed catalog filters.
	ErrInvalidCatalogQuery = errors.New("invalid catalog query")
	// ErrWrongRole is returned when a session asks for another role's dashboard.
	ErrWrongRole = errors.New("dashboard not available for this role")
)

// FormCategory classifies why a creation form was rejected.
type FormCategory string

const (
	FormRequired FormCategory = "required"
	FormEmail    FormCategory = "email"
	FormPassword FormCategory = "password"
)

// FormError describes a rejected creation form. Nothing was created.
type FormError struct {
	Field    string       `json:"field"`
	Category FormCategory `json:"category"`
	Message  string       `json:"message"`
}

func (e *FormError) Error() string {
	return e.Message
}

// AsFormError unwraps a FormError from err.
func AsFormError(err error) (*FormError, bool) {
	var formErr *FormError
	if errors.As(err, &formErr) {
		return formErr, true
	}
	return nil, false
}

package apperr

import "net/http"

// Error is an application error that carries the HTTP status it should be
// surfaced with. Services return these; controllers translate them.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound reports a missing entity ("Answer not found.", ...).
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Validation reports a field-level rule violation. Raised before any write.
func Validation(message string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message}
}

// RelationRequired reports a create that references a missing parent entity.
func RelationRequired(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Forbidden reports a mutation attempted by a non-owner.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

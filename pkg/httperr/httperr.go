// Package httperr carries error values that handlers map onto HTTP statuses
// without importing net/http into domain code.
package httperr

import (
	"errors"
	"fmt"
)

type BadRequestError struct {
	msg string
}

func (e *BadRequestError) Error() string { return e.msg }

func NewBadRequest(msg string) error { return &BadRequestError{msg: msg} }

func IsBadRequest(err error) bool {
	_, ok := errors.AsType[*BadRequestError](err)
	return ok
}

type NotFoundError struct {
	kind string
	id   string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %q not found", e.kind, e.id) }

func NewNotFound(kind string, id string) error { return &NotFoundError{kind: kind, id: id} }

func IsNotFound(err error) bool {
	_, ok := errors.AsType[*NotFoundError](err)
	return ok
}

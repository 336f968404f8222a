package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrNotFound       = errors.New("not found")
	ErrInvalidRecord  = errors.New("invalid record")
)

// Fields a signup may collide on.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldTaxID    = "tax_id"
)

// DuplicateFieldError reports which unique field an append collided on.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate %s", e.Field)
}

func (e *DuplicateFieldError) Is(target error) bool {
	return target == ErrDuplicateEntry
}

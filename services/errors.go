package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds returned by every service operation. Test with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// CustomError carries a caller-facing message and the kind it belongs to.
type CustomError struct {
	Message string
	kind    error
}

func (e *CustomError) Error() string {
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.kind
}

func newError(kind error, format string, args ...interface{}) error {
	return &CustomError{Message: fmt.Sprintf(format, args...), kind: kind}
}

// lookupError turns a failed point lookup into ErrNotFound, or wraps the
// storage error as is.
func lookupError(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(ErrNotFound, "%s %d not found", what, id)
	}
	return fmt.Errorf("load %s %d: %w", what, id, err)
}

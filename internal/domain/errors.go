package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrNoTagSelected         = errors.New("no tag selected")
	ErrAlreadyRunning        = errors.New("timer already running")
	ErrNotRunning            = errors.New("timer is not running")
	ErrTagChangeWhileRunning = errors.New("cannot change tag while the timer is running")
	ErrTagNotFound           = errors.New("tag not found")
	ErrEmptyLabel            = errors.New("tag label cannot be empty")
	ErrBackupMissingSessions = errors.New("unknown backup format: a sessions array is required")
	ErrInvalidBackup         = errors.New("backup is not valid JSON")
	ErrInvalidRange          = errors.New("end date is before start date")
	ErrRangeTooLong          = errors.New("report range is longer than 10 years")
	ErrInvalidDate           = errors.New("invalid date (expected YYYY-MM-DD)")
	ErrInvalidGroupBy        = errors.New("invalid grouping (expected day or tag)")
	ErrNoFieldsToUpdate      = errors.New("no fields to update")
	ErrConfigExists          = errors.New("config file already exists")
)

// ValidationError reports a user operation that violated a precondition.
// No state is mutated when one is returned.
type ValidationError struct {
	Err error
}

// NewValidationError wraps err as a ValidationError.
func NewValidationError(err error) *ValidationError {
	return &ValidationError{Err: err}
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// StorageError reports a failed read, write or parse at the persistence boundary.
// Fields are ordered to minimize memory padding.
type StorageError struct {
	Err error
	Op  string // "read", "write" or "parse"
	Key string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var s *StorageError
	return errors.As(err, &s)
}

// IsReadFailure reports whether err is a StorageError for a stored value that exists
// but could not be read. Such a value must not be overwritten with defaults.
func IsReadFailure(err error) bool {
	var s *StorageError
	return errors.As(err, &s) && s.Op == "read"
}

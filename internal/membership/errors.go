package membership

import (
	"errors"
	"fmt"
)

// Sentinel errors for the membership lifecycle
var (
	ErrUnauthenticated  = errors.New("not authenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
)

// ConflictError is returned when an approval or promotion would put a second
// approved member into an already-occupied office. The request is refused
// before any write happens.
type ConflictError struct {
	Office Role
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("team already has an approved %s", e.Office)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

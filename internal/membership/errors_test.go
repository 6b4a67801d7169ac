package membership

import (
	"errors"
	"fmt"
	"testing"
)

func TestConflictError(t *testing.T) {
	err := &ConflictError{Office: RolePresident}
	if got := err.Error(); got != "team already has an approved president" {
		t.Errorf("unexpected message %q", got)
	}

	if !IsConflict(err) {
		t.Error("IsConflict must match a bare ConflictError")
	}
	if !IsConflict(fmt.Errorf("approving member: %w", err)) {
		t.Error("IsConflict must match a wrapped ConflictError")
	}
	if IsConflict(errors.New("something else")) {
		t.Error("IsConflict must not match unrelated errors")
	}
	if IsConflict(nil) {
		t.Error("IsConflict must not match nil")
	}
}

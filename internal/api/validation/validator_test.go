package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

func TestValidateRole(t *testing.T) {
	v := newValidator()
	type payload struct {
		Role string `validate:"clubrole"`
	}

	for _, role := range []string{"president", "vice_president", "admin", "player"} {
		if err := v.Struct(payload{Role: role}); err != nil {
			t.Errorf("expected %q to validate, got %v", role, err)
		}
	}
	for _, role := range []string{"", "coach", "PRESIDENT", "vice president"} {
		if err := v.Struct(payload{Role: role}); err == nil {
			t.Errorf("expected %q to be rejected", role)
		}
	}
}

func TestValidateTeamName(t *testing.T) {
	v := newValidator()
	type payload struct {
		Name string `validate:"teamname"`
	}

	valid := []string{"FC Test", "Real Madrid B", "1860 München", "St. Pauli U-19"}
	for _, name := range valid {
		if err := v.Struct(payload{Name: name}); err != nil {
			t.Errorf("expected %q to validate, got %v", name, err)
		}
	}

	invalid := []string{"", "x", " leading space", "bad|chars", "-starts-with-dash"}
	for _, name := range invalid {
		if err := v.Struct(payload{Name: name}); err == nil {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}

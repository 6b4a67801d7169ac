package validation

import (
	"regexp"

	"rosterhub/internal/membership"

	"github.com/go-playground/validator/v10"
)

var (
	teamNameRegex = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N}\s\-_.']{1,99}$`)
)

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("clubrole", validateRole)
	v.RegisterValidation("teamname", validateTeamName)
}

// validateRole checks that the value is one of the known club roles
func validateRole(fl validator.FieldLevel) bool {
	return membership.Role(fl.Field().String()).Valid()
}

// validateTeamName checks team name shape and length
func validateTeamName(fl validator.FieldLevel) bool {
	return teamNameRegex.MatchString(fl.Field().String())
}

// ValidationError represents a validation error
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// FormatValidationError formats validation errors into a user-friendly response
func FormatValidationError(err error) []ValidationError {
	var out []ValidationError
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			out = append(out, ValidationError{
				Field: e.Field(),
				Tag:   e.Tag(),
				Value: e.Param(),
			})
		}
	}
	return out
}

package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates a struct using its `validate` tags
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

var emailRe = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// IsValidEmail reports whether the address looks like an email
func IsValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(strings.ToLower(email)))
}

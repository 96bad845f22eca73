package userservice

import (
	"strings"

	"github.com/sushihentaime/blogsite/internal/common"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(v *common.Validator, name string) {
	v.Check(common.NotBlank(name), "name", "must be provided")
	v.Check(len(name) <= 250, "name", "must not be more than 250 bytes long")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(common.NotBlank(email), "email", "must be provided")
	v.Check(len(email) <= 250, "email", "must not be more than 250 bytes long")
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) <= maxPasswordBytes, "password", "must not be more than 72 bytes long")
}

func ValidateToken(v *common.Validator, token string) {
	v.Check(token != "", "token", "must be provided")
	v.Check(len(token) == 26, "token", "invalid token")
}

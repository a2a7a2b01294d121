package userservice

import (
	"github.com/sushihentaime/bloglist/internal/common"
)

const minCredentialLength = 3

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	if username != "" {
		v.Check(v.CheckMinLength(username, minCredentialLength), "username", "must be at least 3 characters long")
	}
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	if password != "" {
		v.Check(v.CheckMinLength(password, minCredentialLength), "password", "must be at least 3 characters long")
	}
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}

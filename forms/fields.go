package forms

import (
	"fmt"

	"github.com/2HgO/signup-go/errors"
)

type Field string

const (
	Username        Field = "username"
	Password        Field = "password"
	ConfirmPassword Field = "confirmPassword"
)

// Fields lists the sign-up form fields in display order.
var Fields = []Field{Username, Password, ConfirmPassword}

func (f Field) String() string {
	return string(f)
}

var ErrUnknownField = errors.NewValidationError("unknown form field")

func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	e := ErrUnknownField
	e.Internal = fmt.Sprintf("field %q", name)
	return "", e
}

// Values holds the current input of the sign-up form. The validate tags
// are the declarative rule set; see Rules.
type Values struct {
	Username        string `form:"username" validate:"required,min=6,max=15"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password,min=8"`
}

func (v Values) Get(f Field) string {
	switch f {
	case Username:
		return v.Username
	case Password:
		return v.Password
	case ConfirmPassword:
		return v.ConfirmPassword
	}
	return ""
}

func (v *Values) set(f Field, value string) {
	switch f {
	case Username:
		v.Username = value
	case Password:
		v.Password = value
	case ConfirmPassword:
		v.ConfirmPassword = value
	}
}
